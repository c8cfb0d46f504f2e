package analyzer

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned when a ratio would divide by a zero basket
	// count or a threshold lies outside [0, 1].
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistency is returned when the frequency table and the
	// co-occurrence table were not built from the same baskets.
	ErrInconsistency = errors.New("inconsistent inputs")
)

// validateThreshold rejects NaN and values outside [0, 1].
func validateThreshold(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidInput, name, v)
	}
	return nil
}
