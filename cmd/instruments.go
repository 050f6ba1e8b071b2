package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wellcheck/internal/instrument"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the available questionnaires",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-8s  %-36s  %9s  %5s  %s\n",
			"ID", "Title", "Questions", "Max", "Duration")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		cat := engine.Catalog()
		for _, in := range cat.All() {
			fmt.Fprintf(out, "%-8s  %-36s  %9d  %5d  %s\n",
				in.ID, in.Title, len(in.Questions), in.MaxScore(), in.Duration)
		}

		fmt.Fprintf(out, "\n%d instruments\n", cat.Len())
		return nil
	},
}

var instrumentsShowCmd = &cobra.Command{
	Use:   "show <instrument>",
	Short: "Show the questions, scale and severity bands of one questionnaire",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engine, err := loadEngine(cfg)
		if err != nil {
			return err
		}
		in, err := engine.Catalog().Get(instrument.ID(args[0]))
		if err != nil {
			return withAvailable(err, engine.Catalog())
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s, version %s)\n", in.Title, in.ID, in.Version)
		fmt.Fprintf(out, "%s\n\n%s\n\n", in.Description, in.Stem)

		for _, q := range in.Questions {
			flag := ""
			if q.HighRisk {
				flag = "  [high risk]"
			}
			fmt.Fprintf(out, "%2d. %s%s\n", q.Position, q.Prompt, flag)
		}

		fmt.Fprintln(out, "\nScale:")
		for _, o := range in.Scale {
			fmt.Fprintf(out, "  %d  %s\n", o.Value, o.Label)
		}

		fmt.Fprintln(out, "\nSeverity bands:")
		for _, b := range in.Bands {
			note := ""
			if b.SeekProfessional {
				note = "  [see a professional]"
			}
			fmt.Fprintf(out, "  %2d-%-2d  %s%s\n", b.Min, b.Max, b.Label, note)
		}
		return nil
	},
}

// withAvailable adds the catalog's IDs to an unknown-instrument error.
func withAvailable(err error, cat *instrument.Catalog) error {
	var unknown *instrument.ErrUnknownInstrument
	if !errors.As(err, &unknown) {
		return err
	}
	ids := make([]string, 0, cat.Len())
	for _, id := range cat.IDs() {
		ids = append(ids, string(id))
	}
	return fmt.Errorf("%w (available: %s)", err, strings.Join(ids, ", "))
}

func init() {
	instrumentsCmd.AddCommand(instrumentsShowCmd)
}
