package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/loader"
	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/output"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// Flags shared by the analysis commands. Each command binds its own FlagSet
// to these variables; values only override configuration when set.
var (
	srcCSV        string
	srcDataset    string
	srcKeyColumn  string
	srcItemColumn string
	minSupport    float64
	minConfidence float64
	dedupe        bool
	rowLimit      int
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&srcCSV, "csv", "", "read transactions from this CSV instead of the database")
	cmd.Flags().StringVar(&srcDataset, "dataset", "", "database dataset name (default from config: default)")
	cmd.Flags().StringVar(&srcKeyColumn, "key-column", "", "CSV column holding the basket key (default: Member_number)")
	cmd.Flags().StringVar(&srcItemColumn, "item-column", "", "CSV column holding the item (default: itemDescription)")
}

func addThresholdFlags(cmd *cobra.Command, withConfidence bool) {
	cmd.Flags().Float64Var(&minSupport, "min-support", analyzer.DefaultMinSupport, "minimum pair support in [0,1]")
	if withConfidence {
		cmd.Flags().Float64Var(&minConfidence, "min-confidence", analyzer.DefaultMinConfidence, "minimum rule confidence in [0,1]")
	}
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "count each item at most once per basket")
}

func addLimitFlag(cmd *cobra.Command, name, usage string) {
	cmd.Flags().IntVar(&rowLimit, name, 0, usage)
}

// datasetSettings returns the dataset configuration with flag overrides applied.
func datasetSettings(cmd *cobra.Command) config.DatasetConfig {
	ds := settings.Dataset
	flags := cmd.Flags()
	if flags.Changed("csv") {
		ds.Path = srcCSV
	}
	if flags.Changed("dataset") {
		ds.Name = srcDataset
	}
	if flags.Changed("key-column") {
		ds.KeyColumn = srcKeyColumn
	}
	if flags.Changed("item-column") {
		ds.ItemColumn = srcItemColumn
	}
	return ds
}

// analysisOptions returns the pipeline options with flag overrides applied.
func analysisOptions(cmd *cobra.Command) analyzer.Options {
	a := settings.Analysis
	opts := analyzer.Options{
		MinSupport:    a.MinSupport,
		MinConfidence: a.MinConfidence,
		Workers:       a.Workers,
		DedupeBaskets: a.DedupeBaskets,
	}
	if cmd.Flags().Changed("min-support") {
		opts.MinSupport = minSupport
	}
	if cmd.Flags().Changed("min-confidence") {
		opts.MinConfidence = minConfidence
	}
	if cmd.Flags().Changed("dedupe") {
		opts.DedupeBaskets = dedupe
	}
	return opts
}

// limitFor returns the flag value when set, otherwise fallback.
func limitFor(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		return rowLimit
	}
	return fallback
}

// loadAliases reads the optional alias file from the config directory.
func loadAliases() *config.AliasConfig {
	dir, err := config.Dir()
	if err != nil {
		return nil
	}
	aliases, err := config.LoadAliases(dir)
	if err != nil {
		logging.Warn().Err(err).Msg("ignoring unreadable aliases file")
		return nil
	}
	return aliases
}

// openStore opens the database at the configured path.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return st, nil
}

// loadBaskets reads baskets from --csv when given, otherwise from the
// configured database dataset.
func loadBaskets(cmd *cobra.Command) ([]analyzer.Basket, error) {
	return loadBasketsFrom(datasetSettings(cmd))
}

// loadBasketsFrom reads ds.Path when set, otherwise the dataset ds.Name.
func loadBasketsFrom(ds config.DatasetConfig) ([]analyzer.Basket, error) {
	if ds.Path != "" {
		src := &loader.CSVSource{
			Path:       ds.Path,
			KeyColumn:  ds.KeyColumn,
			ItemColumn: ds.ItemColumn,
			Aliases:    loadAliases(),
		}
		return src.LoadBaskets()
	}

	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: no database at %s", store.ErrNotInitialized, path)
	}

	st, err := openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	src := &loader.StoreSource{Store: st, Dataset: ds.Name}
	return src.LoadBaskets()
}

// runAnalysis loads baskets and runs the full pipeline.
func runAnalysis(cmd *cobra.Command) (*analyzer.Analysis, error) {
	return analyze(cmd, datasetSettings(cmd))
}

// analyze runs the full pipeline over the baskets described by ds.
func analyze(cmd *cobra.Command, ds config.DatasetConfig) (*analyzer.Analysis, error) {
	baskets, err := loadBasketsFrom(ds)
	if err != nil {
		return nil, err
	}

	a := analyzer.New(analysisOptions(cmd), logging.Logger())
	return a.Run(baskets)
}

// jsonOutput reports whether --format json is in effect.
func jsonOutput() bool {
	return settings.Output.Format == "json"
}

// render writes either the table text or the JSON encoding of view.
func render(w io.Writer, table string, view any) error {
	if jsonOutput() {
		return output.WriteJSON(w, view)
	}
	_, err := io.WriteString(w, table)
	return err
}
