package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every saved result",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all saved results; re-run with --yes to confirm")
		}

		d, err := buildDeps(cmd, depsOpts{needStore: true})
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.repo().Purge(cmd.Context())
		if err != nil {
			return fmt.Errorf("purge reports: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d saved results.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
