package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/output"
	"github.com/blackwell-systems/basketlift/internal/store"
	"github.com/blackwell-systems/basketlift/internal/watcher"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show imported datasets and watch daemon status",
	Long: `Display the database location, every imported dataset with its row and
basket counts and last import, and whether a watch daemon is running.`,
	Example: `  basketlift status
  basketlift status --format json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

// statusJSON is the --format json shape of status.
type statusJSON struct {
	Database      string               `json:"database"`
	DaemonRunning bool                 `json:"daemon_running"`
	Datasets      []output.DatasetJSON `json:"datasets"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return fmt.Errorf("failed to get PID file path: %w", err)
	}
	daemonRunning, err := watcher.IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	var infos []*store.DatasetInfo
	if _, err := os.Stat(path); err == nil {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.CreateSchema(); err != nil {
			return err
		}
		if infos, err = st.ListDatasets(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return output.WriteJSON(out, statusJSON{
			Database:      path,
			DaemonRunning: daemonRunning,
			Datasets:      output.DatasetViews(infos),
		})
	}

	const label = "%-10s"
	fmt.Fprintf(out, label+"%s\n", "Database:", path)
	if daemonRunning {
		fmt.Fprintf(out, label+"running (PID file %s)\n", "Watching:", pidFile)
	} else {
		fmt.Fprintf(out, label+"stopped\n", "Watching:")
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderDatasetTable(infos))
	return nil
}
