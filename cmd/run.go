package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wellcheck/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd, depsOpts{tui: true, notify: true})
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Engine:     d.engine,
		Dispatcher: d.dispatcher,
		Repo:       d.repo(),
		Logger:     d.log,
	})
}
