package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/loader"
	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/store"
	"github.com/blackwell-systems/basketlift/internal/watcher"
)

// errDiagnostics is returned when doctor finds a critical issue.
var errDiagnostics = errors.New("diagnostics failed")

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration, database and dataset problems",
	Long: `Runs diagnostic checks on your basketlift setup.

Checks:
  • Configuration loads and validates
  • Database exists and has a schema
  • The configured dataset has transactions
  • The full analysis pipeline runs on that dataset
  • Watch daemon status`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&srcDataset, "dataset", "", "dataset to check (default from config: default)")
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Running basketlift diagnostics...")
	fmt.Fprintln(out)

	criticalIssues := 0
	warningIssues := 0

	// Check 1: configuration (already loaded by the root command)
	fmt.Fprintf(out, "✓ Configuration valid (min support %.3f, min confidence %.3f, workers %d)\n",
		settings.Analysis.MinSupport, settings.Analysis.MinConfidence, settings.Analysis.Workers)
	if dir, err := config.Dir(); err == nil {
		if aliases, err := config.LoadAliases(dir); err != nil {
			fmt.Fprintln(out, "⚠ Cannot read aliases file:", err)
			warningIssues++
		} else if n := len(aliases.Aliases); n > 0 {
			fmt.Fprintf(out, "✓ %d item aliases loaded\n", n)
		}
	}

	// Check 2: database
	ds := datasetSettings(cmd)
	resolvedDBPath, err := getDBPath()
	var st *store.Store
	if err != nil {
		fmt.Fprintln(out, "✗ Database path error:", err)
		criticalIssues++
	} else if _, err := os.Stat(resolvedDBPath); os.IsNotExist(err) {
		fmt.Fprintln(out, "✗ Database not found at:", resolvedDBPath)
		fmt.Fprintln(out, "  Action: Run 'basketlift import <csv>' to create it")
		criticalIssues++
	} else if st, err = store.New(resolvedDBPath); err != nil {
		fmt.Fprintln(out, "✗ Cannot open database:", err)
		criticalIssues++
	} else {
		defer st.Close()
		fmt.Fprintln(out, "✓ Database found:", resolvedDBPath)
	}

	// Check 3: dataset
	var baskets []analyzer.Basket
	if st != nil {
		baskets, err = (&loader.StoreSource{Store: st, Dataset: ds.Name}).LoadBaskets()
		switch {
		case errors.Is(err, store.ErrNotInitialized):
			fmt.Fprintln(out, "✗ Database has no schema")
			fmt.Fprintln(out, "  Action: Run 'basketlift import <csv>'")
			criticalIssues++
		case err != nil:
			fmt.Fprintf(out, "✗ Dataset %q has no transactions\n", ds.Name)
			fmt.Fprintf(out, "  Action: Run 'basketlift import <csv> --dataset %s'\n", ds.Name)
			criticalIssues++
		default:
			fmt.Fprintf(out, "✓ Dataset %q: %d baskets\n", ds.Name, len(baskets))
		}
	}

	// Check 4: end-to-end pipeline (only with data)
	if len(baskets) > 0 {
		start := time.Now()
		a := analyzer.New(analysisOptions(cmd), logging.Logger())
		analysis, err := a.Run(baskets)
		elapsed := time.Since(start).Round(time.Millisecond)
		if err != nil {
			fmt.Fprintf(out, "✗ Pipeline test: fail (%v)\n  %v\n", elapsed, err)
			criticalIssues++
		} else {
			fmt.Fprintf(out, "✓ Pipeline test: %d pairs, %d rules (%v)\n",
				len(analysis.Cooccurrence), len(analysis.Rules), elapsed)
			if len(analysis.Rules) == 0 {
				fmt.Fprintln(out, "⚠ No rules at the current thresholds")
				fmt.Fprintln(out, "  Action: lower analysis.min_support or analysis.min_confidence in the config file")
				fmt.Fprintln(out, "          (or set BASKETLIFT_MIN_SUPPORT / BASKETLIFT_MIN_CONFIDENCE)")
				warningIssues++
			}
		}
	}

	// Check 5: watch daemon (informational)
	if pidFile, err := getDefaultPIDFile(); err == nil {
		if running, _ := watcher.IsDaemonRunning(pidFile); running {
			fmt.Fprintln(out, "✓ Watch daemon running")
		} else {
			fmt.Fprintln(out, "· Watch daemon not running")
		}
	}

	fmt.Fprintln(out)
	if criticalIssues > 0 {
		fmt.Fprintf(out, "Found %d critical issue(s) and %d warning(s).\n", criticalIssues, warningIssues)
		return errDiagnostics
	}
	if warningIssues > 0 {
		fmt.Fprintf(out, "Found %d warning(s). basketlift is functional.\n", warningIssues)
		return nil
	}
	fmt.Fprintln(out, "✓ All checks passed!")
	return nil
}
