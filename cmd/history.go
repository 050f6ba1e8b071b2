package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		id, _ := cmd.Flags().GetString("instrument")
		escalated, _ := cmd.Flags().GetBool("escalated")

		d, err := buildDeps(cmd, depsOpts{needStore: true})
		if err != nil {
			return err
		}
		defer d.Close()

		recs, err := d.repo().List(cmd.Context(), store.QueryOpts{
			Limit:         limit,
			InstrumentID:  id,
			EscalatedOnly: escalated,
		})
		if err != nil {
			return fmt.Errorf("list reports: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No saved results.")
			return nil
		}

		fmt.Fprintf(out, "%5s  %-17s  %-6s  %7s  %-20s  %s\n",
			"#", "Completed", "ID", "Score", "Severity", "Escalated")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, r := range recs {
			esc := ""
			if r.Escalate {
				esc = strings.Join(r.Reasons, ", ")
			}
			fmt.Fprintf(out, "%5d  %-17s  %-6s  %3d/%-3d  %-20s  %s\n",
				r.ID, r.CompletedAt.Local().Format("2006-01-02 15:04"),
				r.InstrumentID, r.Total, r.MaxScore, r.BandLabel, esc)
		}

		total, err := d.repo().Count(cmd.Context())
		if err != nil {
			return fmt.Errorf("count reports: %w", err)
		}
		fmt.Fprintf(out, "\n%d shown, %d saved\n", len(recs), total)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of results (0 = all)")
	historyCmd.Flags().String("instrument", "", "Only show this instrument (e.g. phq9)")
	historyCmd.Flags().Bool("escalated", false, "Only show results that needed follow-up")
}
