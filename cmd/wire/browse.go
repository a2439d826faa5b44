package wire

import (
	"github.com/spf13/cobra"

	"github.com/is00hcw/wire/internal/redactor"
	"github.com/is00hcw/wire/internal/tui"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse message types interactively",
		Long:  "Browse opens a terminal UI listing the schema's message types. Selecting a type shows its fields, its redaction plan, and a before/after preview on a sample message.",
		RunE: func(_ *cobra.Command, _ []string) error {
			gcfg, lcfg := loadConfigs()
			set, err := loadSchemaSet(gcfg, lcfg)
			if err != nil {
				return err
			}
			return tui.Run(set, redactor.NewRegistry())
		},
	}
	rootCmd.AddCommand(cmd)
}
