package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/store"
)

var dropYes bool

var dropCmd = &cobra.Command{
	Use:   "drop <dataset>",
	Short: "Delete a stored dataset and its import history",
	Long: `Remove every transaction stored under a dataset name, along with its
import records. The CSV it came from is not touched; re-import it to get
the dataset back.`,
	Example: `  basketlift drop orders
  basketlift drop default --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVar(&dropYes, "yes", false, "skip the confirmation prompt")
	RootCmd.AddCommand(dropCmd)
}

func runDrop(cmd *cobra.Command, args []string) error {
	dataset := args[0]

	path, err := getDBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: no database at %s", store.ErrNotInitialized, path)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if !dropYes && !confirmDrop(cmd.InOrStdin(), out, dataset) {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	if err := st.DeleteDataset(dataset); err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			return fmt.Errorf("dataset %q does not exist (see 'basketlift status')", dataset)
		}
		return err
	}

	logging.Info().Str("dataset", dataset).Msg("dataset dropped")
	fmt.Fprintf(out, "✓ Dropped dataset %q\n", dataset)
	return nil
}

// confirmDrop accepts "y" or "yes".
func confirmDrop(in io.Reader, out io.Writer, dataset string) bool {
	fmt.Fprintf(out, "Drop dataset %q? [y/N]: ", dataset)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
