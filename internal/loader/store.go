package loader

import (
	"errors"
	"fmt"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// StoreSource loads baskets from a dataset previously imported into the store.
type StoreSource struct {
	Store   *store.Store
	Dataset string
}

// LoadBaskets implements Source. A dataset with no rows is reported as
// ErrDataUnavailable; a database without schema keeps ErrNotInitialized
// in the chain.
func (s *StoreSource) LoadBaskets() ([]analyzer.Basket, error) {
	txns, err := s.Store.ListTransactions(s.Dataset)
	if errors.Is(err, store.ErrDatasetNotFound) {
		return nil, fmt.Errorf("%w: dataset %q has no transactions", ErrDataUnavailable, s.Dataset)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}

	return GroupBaskets(txns).Baskets, nil
}
