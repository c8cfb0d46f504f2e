package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/config"
	"github.com/blackwell-systems/basketlift/internal/logging"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// ReadTransactions reads (key, item) records from CSV data with a header
// row naming keyCol and itemCol. Rows with an empty key or item are skipped.
// Aliases, if non-nil, rewrite item names as they are read.
func ReadTransactions(r io.Reader, keyCol, itemCol string, aliases *config.AliasConfig) ([]store.Transaction, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrDataUnavailable, err)
	}

	keyIdx, itemIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case keyCol:
			keyIdx = i
		case itemCol:
			itemIdx = i
		}
	}
	var missing []string
	if keyIdx < 0 {
		missing = append(missing, keyCol)
	}
	if itemIdx < 0 {
		missing = append(missing, itemCol)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s) %s", ErrDataUnavailable, strings.Join(missing, ", "))
	}

	var txns []store.Transaction
	skipped := 0
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: malformed CSV at line %d: %v", ErrDataUnavailable, line, err)
		}

		if keyIdx >= len(row) || itemIdx >= len(row) {
			skipped++
			continue
		}
		key := strings.TrimSpace(row[keyIdx])
		item := strings.TrimSpace(row[itemIdx])
		if key == "" || item == "" {
			skipped++
			continue
		}

		txns = append(txns, store.Transaction{Key: key, Item: aliases.Resolve(item)})
	}

	if skipped > 0 {
		logging.Warn().Int("rows", skipped).Msg("skipped rows with empty key or item")
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrDataUnavailable)
	}
	return txns, nil
}

// ReadFile opens path and reads its transactions.
func ReadFile(path, keyCol, itemCol string, aliases *config.AliasConfig) ([]store.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer func() { _ = file.Close() }()

	txns, err := ReadTransactions(file, keyCol, itemCol, aliases)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return txns, nil
}

// CSVSource loads baskets straight from a CSV file.
type CSVSource struct {
	Path       string
	KeyColumn  string
	ItemColumn string
	Aliases    *config.AliasConfig
}

// LoadBaskets implements Source.
func (s *CSVSource) LoadBaskets() ([]analyzer.Basket, error) {
	txns, err := ReadFile(s.Path, s.KeyColumn, s.ItemColumn, s.Aliases)
	if err != nil {
		return nil, err
	}

	g := GroupBaskets(txns)
	logging.Debug().
		Str("path", s.Path).
		Int("rows", len(txns)).
		Int("baskets", len(g.Baskets)).
		Msg("loaded CSV")
	return g.Baskets, nil
}
