package wire

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagSchema        string
	flagJSON          bool
	flagNoColor       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the wire CLI.
var rootCmd = &cobra.Command{
	Use:           "wire",
	Short:         "Redact sensitive fields from schema-typed messages",
	Long:          "Wire compiles redaction plans from schema annotations and applies them to JSON messages: redacted fields are cleared, nested messages are redacted recursively, everything else passes through untouched.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the wire CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSchema, "schema", "s", "", "comma-separated schema file globs (** supported)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
