package analyzer

import (
	"fmt"
	"sort"
)

// DefaultMinConfidence is the confidence threshold used when none is configured.
const DefaultMinConfidence = 0.3

// DeriveRules evaluates both directions of every pair in co and returns the
// rules whose confidence reaches minConfidence.
//
// confidence(A -> B) = count(A, B) / freq(A)
// lift(A -> B)       = confidence(A -> B) / (freq(B) / totalBaskets)
//
// Rules are ordered by confidence, then lift (both descending), then
// antecedent and consequent name.
func DeriveRules(co Cooccurrence, freq ItemFrequencies, totalBaskets int, minConfidence float64) ([]Rule, error) {
	if totalBaskets <= 0 {
		return nil, fmt.Errorf("%w: total basket count must be positive, got %d", ErrInvalidInput, totalBaskets)
	}
	if err := validateThreshold("min confidence", minConfidence); err != nil {
		return nil, err
	}

	rules := make([]Rule, 0, len(co))
	for pair, stats := range co {
		freqA, freqB := freq[pair.A], freq[pair.B]
		if freqA == 0 || freqB == 0 {
			return nil, fmt.Errorf("%w: pair (%s, %s) has no frequency for one of its items",
				ErrInconsistency, pair.A, pair.B)
		}

		if r, ok := directional(pair.A, pair.B, stats, freqA, freqB, totalBaskets, minConfidence); ok {
			rules = append(rules, r)
		}
		if r, ok := directional(pair.B, pair.A, stats, freqB, freqA, totalBaskets, minConfidence); ok {
			rules = append(rules, r)
		}
	}

	SortRules(rules)
	return rules, nil
}

func directional(antecedent, consequent Item, stats PairStats, freqAnte, freqCons, total int, minConfidence float64) (Rule, bool) {
	confidence := float64(stats.Count) / float64(freqAnte)
	if confidence < minConfidence {
		return Rule{}, false
	}

	return Rule{
		Antecedent: antecedent,
		Consequent: consequent,
		Support:    stats.Support,
		Confidence: confidence,
		Lift:       confidence / (float64(freqCons) / float64(total)),
	}, true
}

// SortRules orders rules in place by confidence and lift descending, then by
// antecedent and consequent.
func SortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := rules[i], rules[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Lift != b.Lift {
			return a.Lift > b.Lift
		}
		if a.Antecedent != b.Antecedent {
			return a.Antecedent < b.Antecedent
		}
		return a.Consequent < b.Consequent
	})
}
