// Package analyzer is the basket analysis engine: item frequency counting,
// pairwise co-occurrence support, and confidence/lift rule derivation.
//
// The stage functions (CountItems, ComputeCooccurrence, DeriveRules,
// Recommend) are pure and may be called on their own. Analyzer chains them
// with a fixed set of Options.
package analyzer

import (
	"time"

	"github.com/rs/zerolog"
)

// Options controls one pipeline run.
type Options struct {
	MinSupport    float64
	MinConfidence float64

	// Workers > 1 shards counting across goroutines.
	Workers int

	// DedupeBaskets collapses repeated items inside each basket before
	// counting, making every count basket-level.
	DedupeBaskets bool
}

// DefaultOptions returns the standard thresholds with serial counting.
func DefaultOptions() Options {
	return Options{
		MinSupport:    DefaultMinSupport,
		MinConfidence: DefaultMinConfidence,
		Workers:       1,
	}
}

// Analyzer runs frequency -> co-occurrence -> rules over a basket collection.
// It holds no results between runs.
type Analyzer struct {
	opts Options
	log  zerolog.Logger
}

// New creates a new Analyzer with the given options and logger.
func New(opts Options, log zerolog.Logger) *Analyzer {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Analyzer{opts: opts, log: log.With().Str("component", "analyzer").Logger()}
}

// Options returns the options the analyzer was built with.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Run executes the full pipeline. baskets is not modified.
func (a *Analyzer) Run(baskets []Basket) (*Analysis, error) {
	if err := validateThreshold("min support", a.opts.MinSupport); err != nil {
		return nil, err
	}
	if err := validateThreshold("min confidence", a.opts.MinConfidence); err != nil {
		return nil, err
	}

	if a.opts.DedupeBaskets {
		baskets = Dedupe(baskets)
	}

	start := time.Now()
	freq := CountItemsParallel(baskets, a.opts.Workers)
	a.log.Debug().
		Int("baskets", len(baskets)).
		Int("items", len(freq)).
		Dur("took", time.Since(start)).
		Msg("counted item frequencies")

	start = time.Now()
	co, err := ComputeCooccurrenceParallel(baskets, a.opts.MinSupport, a.opts.Workers)
	if err != nil {
		return nil, err
	}
	a.log.Debug().
		Int("pairs", len(co)).
		Int("min_count", MinimumCount(a.opts.MinSupport, len(baskets))).
		Dur("took", time.Since(start)).
		Msg("computed co-occurrence")

	start = time.Now()
	rules, err := DeriveRules(co, freq, len(baskets), a.opts.MinConfidence)
	if err != nil {
		return nil, err
	}
	a.log.Debug().
		Int("rules", len(rules)).
		Dur("took", time.Since(start)).
		Msg("derived rules")

	return &Analysis{
		TotalBaskets:  len(baskets),
		MinSupport:    a.opts.MinSupport,
		MinConfidence: a.opts.MinConfidence,
		Frequencies:   freq,
		Cooccurrence:  co,
		Rules:         rules,
	}, nil
}
