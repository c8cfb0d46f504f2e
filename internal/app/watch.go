package app

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/output"
	"github.com/blackwell-systems/basketlift/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchImport      bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool
	watchDebounce    time.Duration

	watchCmd = &cobra.Command{
		Use:   "watch [csv]",
		Short: "Re-run the analysis whenever a CSV changes",
		Long: `Watch a transactions CSV and recompute everything from scratch each time it
is saved: baskets, item counts, pairs and rules. Nothing is carried over
between runs.

Watch modes:
  • Foreground (default): print the rule table after every change
  • --import: also replace the stored dataset on every change
  • Daemon: keep the stored dataset in sync in the background
  • Stop: stop a running daemon`,
		Example: `  # Print fresh rules every time the file is saved (Ctrl+C to stop)
  basketlift watch Groceries_dataset.csv --min-confidence 0.1

  # Keep the "default" dataset in sync in the background
  basketlift watch Groceries_dataset.csv --daemon

  # Stop the background watcher
  basketlift watch --stop`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatch,
	}
)

func init() {
	addThresholdFlags(watchCmd, true)
	addLimitFlag(watchCmd, "limit", "number of rules to show, 0 for all (default from config: 15)")
	watchCmd.Flags().StringVar(&srcDataset, "dataset", "", "dataset to replace with --import (default from config: default)")
	watchCmd.Flags().StringVar(&srcKeyColumn, "key-column", "", "CSV column holding the basket key (default: Member_number)")
	watchCmd.Flags().StringVar(&srcItemColumn, "item-column", "", "CSV column holding the item (default: itemDescription)")
	watchCmd.Flags().BoolVar(&watchImport, "import", false, "replace the stored dataset on every change")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon (implies --import)")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.basketlift/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.basketlift/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "quiet period before re-running")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		p, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = p
	}
	if watchLogFile == "" {
		p, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = p
	}

	if watchStop {
		return stopWatchDaemon(cmd)
	}

	if len(args) == 0 {
		return fmt.Errorf("watch needs a CSV path (or --stop)")
	}
	path := args[0]

	if watchDaemon {
		return startWatchDaemon(cmd, path)
	}

	w, err := watcher.New(path, func() { rerun(cmd, path) },
		watcher.Options{Debounce: watchDebounce}, logging.Logger())
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if watchDaemonChild {
		watchImport = true
		rerun(cmd, path)
		return watcher.RunUntilSignal(w, watchPIDFile)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching %s (press Ctrl+C to stop)...\n\n", w.Path())
	rerun(cmd, path)

	if err := watcher.RunUntilSignal(w, ""); err != nil {
		return err
	}
	fmt.Fprintln(out, "Watcher stopped")
	return nil
}

// rerun recomputes everything from the file. Errors are reported and the
// watcher keeps going, so a half-saved file does not end the session.
func rerun(cmd *cobra.Command, path string) {
	ds := datasetSettings(cmd)
	ds.Path = path

	if watchImport {
		st, err := openStore()
		if err != nil {
			logging.Error().Err(err).Msg("re-import failed")
			return
		}
		defer st.Close()
		if err := st.CreateSchema(); err != nil {
			logging.Error().Err(err).Msg("re-import failed")
			return
		}

		prevQuiet := importQuiet
		importQuiet = true
		imp, err := importFile(cmd, st, ds.Path, ds.Name, ds.KeyColumn, ds.ItemColumn)
		importQuiet = prevQuiet
		if err != nil {
			logging.Error().Err(describeError(err)).Msg("re-import failed")
			return
		}
		logging.Info().Str("dataset", imp.Dataset).Int("rows", imp.RowCount).Msg("dataset refreshed")
	}

	if watchDaemonChild {
		return
	}

	analysis, err := analyze(cmd, ds)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "── %s ──\n", time.Now().Format("15:04:05"))
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n\n", describeError(err))
		return
	}

	limit := limitFor(cmd, "limit", settings.Output.RuleLimit)
	if err := render(out, output.RenderRuleTable(analysis.Rules, limit), output.RuleViews(analysis.Rules, limit)); err != nil {
		logging.Error().Err(err).Msg("failed to write rules")
	}
	fmt.Fprintln(out)
}

func startWatchDaemon(cmd *cobra.Command, path string) error {
	ds := datasetSettings(cmd)

	dbFile, err := getDBPath()
	if err != nil {
		return err
	}

	childArgs := []string{"watch", path, "--daemon-child",
		"--db", dbFile,
		"--dataset", ds.Name,
		"--key-column", ds.KeyColumn,
		"--item-column", ds.ItemColumn,
		"--pid-file", watchPIDFile,
		"--debounce", watchDebounce.String(),
		"--log-level", "info",
	}
	if configPath != "" {
		childArgs = append(childArgs, "--config", configPath)
	}

	spinner := output.NewSpinner("Starting daemon")
	spinner.SetWriter(cmd.ErrOrStderr())
	spinner.Start()
	pid, err := watcher.StartDaemon(watchPIDFile, watchLogFile, childArgs)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Watch daemon started (PID %d)\n", pid)
	fmt.Fprintf(out, "  Dataset:  %s\n", ds.Name)
	fmt.Fprintf(out, "  PID file: %s\n", watchPIDFile)
	fmt.Fprintf(out, "  Log file: %s\n", watchLogFile)
	fmt.Fprintf(out, "\nTo stop: basketlift watch --stop\n")
	return nil
}

func stopWatchDaemon(cmd *cobra.Command) error {
	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	out := cmd.OutOrStdout()
	if !running {
		fmt.Fprintln(out, "Daemon is not running")
		return nil
	}

	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	fmt.Fprintln(out, "✓ Daemon stopped")
	return nil
}
