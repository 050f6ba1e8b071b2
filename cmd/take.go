package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellcheck/internal/dispatch"
	"github.com/abhisek/wellcheck/internal/instrument"
	"github.com/abhisek/wellcheck/internal/notify"
	"github.com/abhisek/wellcheck/internal/screening"
	"github.com/abhisek/wellcheck/internal/session"
)

var takeCmd = &cobra.Command{
	Use:   "take <instrument>",
	Short: "Score an assessment from answers given on the command line",
	Example: "  wellcheck take phq9 --answers 0,1,0,2,1,0,0,1,0\n" +
		"  wellcheck take gad7 --answers 1,1,1,1,1,1,1",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("answers")
		values, err := parseAnswers(raw)
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd, depsOpts{notify: true})
		if err != nil {
			return err
		}
		defer d.Close()

		report, err := administer(session.New(d.engine), instrument.ID(args[0]), values)
		if err != nil {
			return withAvailable(err, d.engine.Catalog())
		}

		out := cmd.OutOrStdout()
		printReport(out, report)

		outcome, err := d.dispatcher.Handle(cmd.Context(), report)
		printOutcome(out, outcome)
		if err != nil {
			return fmt.Errorf("dispatch report: %w", err)
		}
		return nil
	},
}

func init() {
	takeCmd.Flags().String("answers", "", "Comma-separated answer values in question order")
	_ = takeCmd.MarkFlagRequired("answers")
}

// parseAnswers splits "0,1,2" into values. Range checks are left to the
// collector so errors name the offending question.
func parseAnswers(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("no answers given")
	}
	parts := strings.Split(raw, ",")
	values := make([]int, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, p)
		}
		values = append(values, v)
	}
	return values, nil
}

// administer runs one full administration through the state machine.
func administer(m *session.Machine, id instrument.ID, values []int) (screening.Report, error) {
	if err := m.Select(id); err != nil {
		return screening.Report{}, err
	}
	questions := m.Instrument().Questions
	if len(values) != len(questions) {
		return screening.Report{}, fmt.Errorf("%s has %d questions, got %d answers",
			id, len(questions), len(values))
	}
	for i, q := range questions {
		if err := m.RecordAnswer(q.ID, values[i]); err != nil {
			return screening.Report{}, err
		}
	}
	return m.Finalize()
}

func printReport(w io.Writer, r screening.Report) {
	fmt.Fprintf(w, "%s\n", r.Title())
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Score:     %d / %d\n", r.Total(), r.MaxScore())
	fmt.Fprintf(w, "Severity:  %s\n", r.Band().Label)
	fmt.Fprintf(w, "Completed: %s\n", r.CompletedAt().Local().Format("Jan 02, 2006 15:04"))
	fmt.Fprintf(w, "\n%s\n", r.Advisory())

	recs := r.Recommendations()
	printList(w, "Immediate actions", recs.Immediate)
	printList(w, "Follow-up care", recs.FollowUp)

	if r.SeekProfessional() {
		fmt.Fprintf(w, "\nImportant notice: %s\n", screening.ProfessionalNotice)
	}

	if !r.Escalate() {
		return
	}
	fmt.Fprintln(w, "\n!! This result needs urgent follow-up.")
	for _, reason := range r.Reasons() {
		fmt.Fprintf(w, "   - %s\n", reason.Description())
	}
	fmt.Fprintln(w, "\nCrisis support:")
	for _, c := range notify.CrisisContacts {
		fmt.Fprintf(w, "   %-40s  %s\n", c.Name, c.Phone)
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "   - %s\n", item)
	}
}

func printOutcome(w io.Writer, o dispatch.Outcome) {
	if o.Saved {
		fmt.Fprintf(w, "\nSaved to history as #%d.\n", o.ReportID)
	}
	if o.Notified {
		fmt.Fprintln(w, "Escalation notice sent.")
	}
}
