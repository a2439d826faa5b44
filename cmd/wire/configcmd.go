package wire

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/is00hcw/wire/internal/config"
)

var (
	cfgSchema  string
	cfgType    string
	cfgOutput  string
	cfgPretty  bool
	cfgNoColor bool
	cfgAudit   bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .wire.yml with selected schema and options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgSchema, "schema", "", "comma-separated schema file globs")
	initCmd.Flags().StringVar(&cfgType, "type", "", "default qualified message type")
	initCmd.Flags().StringVar(&cfgOutput, "output", ".wire.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgPretty, "pretty", false, "pretty-print output by default")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgAudit, "audit", false, "record an audit log entry per run")
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	fc := config.FileConfig{
		Schema:  optStrPtr(cfgSchema),
		Type:    optStrPtr(cfgType),
		Pretty:  boolPtr(cfgPretty),
		NoColor: boolPtr(cfgNoColor),
		Audit:   boolPtr(cfgAudit),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Println("Wrote", cfgOutput)
	return nil
}

func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func boolPtr(v bool) *bool { return &v }
