package wire

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/report"
)

var flagTable bool

func init() {
	cmd := &cobra.Command{
		Use:   "describe [type-glob]",
		Short: "Show message types and their redaction plans",
		Long:  "Describe lists the message types in the loaded schema and, for each, which fields its redaction plan clears and which nested messages it descends into. An optional glob filters by qualified type name (e.g. 'acme.*').",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDescribe,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagTable, "table", false, "render as a table")
}

func runDescribe(_ *cobra.Command, args []string) error {
	gcfg, lcfg := loadConfigs()
	set, err := loadSchemaSet(gcfg, lcfg)
	if err != nil {
		return err
	}

	filter := "*"
	if len(args) == 1 {
		filter = args[0]
	}
	reg := redactor.NewRegistry()
	infos, err := report.Describe(set, reg, filter)
	if err != nil {
		return err
	}

	if flagJSON {
		return report.PrintJSON(os.Stdout, set, infos)
	}
	opts := report.PrintOptions{
		NoColor: pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		Filter:  filter,
	}
	if flagTable {
		return report.PrintTable(os.Stdout, set, infos, opts)
	}
	return report.PrintText(os.Stdout, set, infos, opts)
}
