package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/logging"
)

var (
	dbPath       string
	configPath   string
	logLevel     string
	outputFormat string

	// settings is the configuration loaded for the running command.
	settings = config.Default()

	// RootCmd is the root command for basketlift
	RootCmd = &cobra.Command{
		Use:   "basketlift",
		Short: "Market-basket analysis: frequent pairs, association rules and recommendations",
		Long: `basketlift reads purchase transactions, groups them into baskets and mines
pairwise association rules with support, confidence and lift.

Transactions come from a CSV file (--csv) or from a dataset previously
imported into the local database. The default columns match the public
groceries dataset: Member_number and itemDescription.

Quick Start:
  1. basketlift import Groceries_dataset.csv
  2. basketlift summary
  3. basketlift rules --min-support 0.01 --min-confidence 0.1
  4. basketlift recommend "whole milk"

Thresholds:
  • min support: a pair must appear in at least floor(s × baskets) combinations
  • min confidence: a rule A -> B is kept when P(B|A) ≥ c

Examples:
  # Analyze a CSV without importing it
  basketlift rules --csv Groceries_dataset.csv

  # Machine-readable output
  basketlift rules --format json

  # Re-run the analysis whenever the file changes
  basketlift watch Groceries_dataset.csv`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "basketlift: market-basket analysis")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run 'basketlift import <csv>' to load transactions.")
			fmt.Fprintln(out, "Run 'basketlift --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.basketlift/basketlift.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/basketlift/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "output format: table or json")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return describeError(RootCmd.Execute())
}

// loadSettings layers flags over the file and environment configuration and
// initializes logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("db") {
		cfg.Database.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	settings = cfg
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	logging.Debug().Str("command", cmd.Name()).Msg("configuration loaded")
	return nil
}

// getDBPath returns the database path from flags or configuration, falling
// back to ~/.basketlift/basketlift.db
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if settings.Database.Path != "" {
		return settings.Database.Path, nil
	}
	return stateFile("basketlift.db")
}

// getDefaultPIDFile returns the default PID file path
func getDefaultPIDFile() (string, error) {
	return stateFile("watch.pid")
}

// getDefaultLogFile returns the default log file path
func getDefaultLogFile() (string, error) {
	return stateFile("watch.log")
}

// stateFile returns ~/.basketlift/name, creating the directory.
func stateFile(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".basketlift")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create basketlift directory: %w", err)
	}

	return filepath.Join(dir, name), nil
}
