package app

import (
	"errors"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/loader"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// hintedError appends a suggested next step to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string {
	return e.err.Error() + "\n  Hint: " + e.hint
}

func (e *hintedError) Unwrap() error {
	return e.err
}

// describeError attaches a hint for the error kinds a user can act on.
func describeError(err error) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, store.ErrNotInitialized):
		hint = "import a CSV first, or pass --csv to analyze a file directly"
	case errors.Is(err, loader.ErrDataUnavailable):
		hint = "check the file path and the --key-column/--item-column names (defaults: Member_number, itemDescription)"
	case errors.Is(err, analyzer.ErrInvalidInput):
		hint = "thresholds must be between 0 and 1, and the data must contain at least one basket"
	case errors.Is(err, analyzer.ErrInconsistency):
		hint = "item counts and pair counts came from different data; re-run the analysis on a single load"
	default:
		return err
	}
	return &hintedError{err: err, hint: hint}
}
