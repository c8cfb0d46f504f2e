package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/loader"
	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/output"
	"github.com/blackwell-systems/basketlift/internal/store"
)

var importQuiet bool

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Load a transactions CSV into the local database",
	Long: `Read a transactions CSV and store its rows under a dataset name.

Importing replaces any rows already stored under the same dataset, so
re-importing an updated file never double counts. Analysis commands read
the dataset when --csv is not given.

The CSV needs a header row. The basket key and item columns default to
Member_number and itemDescription; other columns are ignored. Rows with an
empty key or item are skipped.`,
	Example: `  # Import the groceries dataset as "default"
  basketlift import Groceries_dataset.csv

  # Import under another name with custom columns
  basketlift import orders.csv --dataset orders --key-column order_id --item-column sku`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&srcDataset, "dataset", "", "dataset name to store rows under (default from config: default)")
	importCmd.Flags().StringVar(&srcKeyColumn, "key-column", "", "CSV column holding the basket key (default: Member_number)")
	importCmd.Flags().StringVar(&srcItemColumn, "item-column", "", "CSV column holding the item (default: itemDescription)")
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "suppress progress output")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ds := datasetSettings(cmd)
	ds.Path = args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return err
	}

	imp, err := importFile(cmd, st, ds.Path, ds.Name, ds.KeyColumn, ds.ItemColumn)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d rows (%d baskets) into dataset %q\n",
		imp.RowCount, imp.BasketCount, imp.Dataset)
	return nil
}

// importFile reads path and replaces dataset with its rows.
func importFile(cmd *cobra.Command, st *store.Store, path, dataset, keyCol, itemCol string) (*store.Import, error) {
	var spinner *output.Spinner
	if !importQuiet {
		spinner = output.NewSpinner(fmt.Sprintf("Reading %s", filepath.Base(path)))
		spinner.SetWriter(cmd.ErrOrStderr())
		spinner.Start()
	}

	txns, err := loader.ReadFile(path, keyCol, itemCol, loadAliases())
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}

	var progress func(int)
	var bar *output.ProgressBar
	if !importQuiet {
		bar = output.NewProgress(len(txns), "Importing rows")
		bar.SetWriter(cmd.ErrOrStderr())
		progress = bar.SetCurrent
	}

	start := time.Now()
	if err := st.ReplaceDataset(dataset, txns, progress); err != nil {
		return nil, err
	}
	if bar != nil {
		bar.Finish()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	imp := &store.Import{
		Dataset:     dataset,
		SourcePath:  abs,
		ImportedAt:  time.Now(),
		RowCount:    len(txns),
		BasketCount: len(loader.GroupBaskets(txns).Keys),
	}
	if imp.ID, err = st.RecordImport(imp); err != nil {
		return nil, err
	}

	logging.Info().
		Str("dataset", dataset).
		Int("rows", imp.RowCount).
		Int("baskets", imp.BasketCount).
		Dur("took", time.Since(start)).
		Msg("imported transactions")
	return imp, nil
}
