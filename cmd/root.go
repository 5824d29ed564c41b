package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathrecall/internal/app"
	"github.com/abhisek/pathrecall/internal/config"
	"github.com/abhisek/pathrecall/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "pathrecall",
	Short: "Spaced-repetition practice for learning paths",
	Long: `pathrecall schedules reviews of imported learning paths with a Leitner-style
spaced-repetition policy. Running it without a subcommand starts a review of
everything that is due.`,
	SilenceUsage: true,
	RunE:         runReview,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PATHRECALL_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config/config.yaml)")
	rootCmd.PersistentFlags().String("user", "", "Learner ID (overrides the configured user)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(versionCmd)
}

// openApp loads configuration and connects the backend. Flags take
// priority over the config file and environment.
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.User = u
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, _ := cmd.Flags().GetString("db")
	a, err := app.Open(cmd.Context(), app.Options{
		Config: cfg,
		DBPath: dbPath,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
