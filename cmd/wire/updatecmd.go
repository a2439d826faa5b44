package wire

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update wire to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := selfUpdate(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stderr, "updated to latest release")
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
