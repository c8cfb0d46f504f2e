package analyzer

import (
	"fmt"
	"math"
	"sort"
)

// DefaultMinSupport is the support threshold used when none is configured.
const DefaultMinSupport = 0.05

// ComputeCooccurrence counts how often each unordered pair of distinct items
// appears together and keeps the pairs whose count reaches
// floor(minSupport * len(baskets)).
//
// Every combination of two positions in a basket is counted, so a basket
// holding "a" once and "b" twice adds 2 to (a, b). Combinations of an item
// with itself are skipped.
func ComputeCooccurrence(baskets []Basket, minSupport float64) (Cooccurrence, error) {
	if len(baskets) == 0 {
		return nil, fmt.Errorf("%w: co-occurrence needs at least one basket", ErrInvalidInput)
	}
	if err := validateThreshold("min support", minSupport); err != nil {
		return nil, err
	}

	counts := make(map[Pair]int)
	countPairsInto(counts, baskets)

	return filterPairs(counts, len(baskets), minSupport), nil
}

func countPairsInto(counts map[Pair]int, baskets []Basket) {
	for _, basket := range baskets {
		if len(basket) < 2 {
			continue
		}
		for i := 0; i < len(basket); i++ {
			for j := i + 1; j < len(basket); j++ {
				if basket[i] == basket[j] {
					continue
				}
				counts[NewPair(basket[i], basket[j])]++
			}
		}
	}
}

// MinimumCount converts a support threshold into the smallest joint count a
// pair must reach for total baskets.
func MinimumCount(minSupport float64, total int) int {
	return int(math.Floor(minSupport * float64(total)))
}

func filterPairs(counts map[Pair]int, total int, minSupport float64) Cooccurrence {
	minCount := MinimumCount(minSupport, total)

	kept := make(Cooccurrence)
	for pair, count := range counts {
		if count < minCount {
			continue
		}
		kept[pair] = PairStats{
			Count:   count,
			Support: float64(count) / float64(total),
		}
	}
	return kept
}

// Count returns the joint count for x and y in either order.
func (c Cooccurrence) Count(x, y Item) int {
	return c[NewPair(x, y)].Count
}

// PairEntry is one row of a ranked co-occurrence table.
type PairEntry struct {
	Pair
	PairStats
}

// Ranked returns the pairs ordered by count descending, then by A and B.
func (c Cooccurrence) Ranked() []PairEntry {
	entries := make([]PairEntry, 0, len(c))
	for pair, stats := range c {
		entries = append(entries, PairEntry{Pair: pair, PairStats: stats})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if entries[i].A != entries[j].A {
			return entries[i].A < entries[j].A
		}
		return entries[i].B < entries[j].B
	})
	return entries
}
