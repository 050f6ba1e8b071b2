package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wellcheck/internal/config"
	"github.com/abhisek/wellcheck/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wellcheck",
	Short: "PHQ-9 and GAD-7 screening in the terminal",
	Long: "wellcheck administers standard depression and anxiety questionnaires, " +
		"scores them, and flags results that need urgent follow-up.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WELLCHECK_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides WELLCHECK_LOG_LEVEL)")

	rootCmd.AddCommand(instrumentsCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env and the environment, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db / WELLCHECK_DB
// (highest priority), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
