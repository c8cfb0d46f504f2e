package analyzer

import "fmt"

// Explanation shows the arithmetic behind one directional rule, whether or
// not the rule survives the thresholds.
type Explanation struct {
	Antecedent Item
	Consequent Item

	TotalBaskets    int
	AntecedentCount int
	ConsequentCount int
	PairCount       int
	MinCount        int

	Support    float64
	Confidence float64 // 0 when the antecedent never occurs
	Lift       float64 // 0 when either item never occurs

	MinSupport    float64
	MinConfidence float64
}

// MeetsSupport reports whether the pair would be kept by ComputeCooccurrence.
func (e Explanation) MeetsSupport() bool {
	return e.PairCount > 0 && e.PairCount >= e.MinCount
}

// MeetsConfidence reports whether the rule would be kept by DeriveRules.
// A pair that never co-occurs yields no rule at any threshold.
func (e Explanation) MeetsConfidence() bool {
	return e.PairCount > 0 && e.Confidence >= e.MinConfidence
}

// Explain computes the counts and measures of antecedent -> consequent over
// baskets using the analyzer's options.
func (a *Analyzer) Explain(baskets []Basket, antecedent, consequent Item) (Explanation, error) {
	if len(baskets) == 0 {
		return Explanation{}, fmt.Errorf("%w: explain needs at least one basket", ErrInvalidInput)
	}
	if antecedent == consequent {
		return Explanation{}, fmt.Errorf("%w: a rule needs two different items", ErrInvalidInput)
	}
	if err := validateThreshold("min support", a.opts.MinSupport); err != nil {
		return Explanation{}, err
	}
	if err := validateThreshold("min confidence", a.opts.MinConfidence); err != nil {
		return Explanation{}, err
	}

	if a.opts.DedupeBaskets {
		baskets = Dedupe(baskets)
	}

	freq := CountItems(baskets)
	counts := make(map[Pair]int)
	countPairsInto(counts, baskets)

	total := len(baskets)
	e := Explanation{
		Antecedent:      antecedent,
		Consequent:      consequent,
		TotalBaskets:    total,
		AntecedentCount: freq[antecedent],
		ConsequentCount: freq[consequent],
		PairCount:       counts[NewPair(antecedent, consequent)],
		MinCount:        MinimumCount(a.opts.MinSupport, total),
		MinSupport:      a.opts.MinSupport,
		MinConfidence:   a.opts.MinConfidence,
	}

	e.Support = float64(e.PairCount) / float64(total)
	if e.AntecedentCount > 0 {
		e.Confidence = float64(e.PairCount) / float64(e.AntecedentCount)
		if e.ConsequentCount > 0 {
			e.Lift = e.Confidence / (float64(e.ConsequentCount) / float64(total))
		}
	}
	return e, nil
}
