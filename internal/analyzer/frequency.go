package analyzer

import (
	"fmt"
	"sort"
)

// CountItems returns the number of occurrences of every item across baskets.
// An item repeated inside one basket contributes once per occurrence.
func CountItems(baskets []Basket) ItemFrequencies {
	freq := make(ItemFrequencies)
	countInto(freq, baskets)
	return freq
}

func countInto(freq ItemFrequencies, baskets []Basket) {
	for _, basket := range baskets {
		for _, item := range basket {
			freq[item]++
		}
	}
}

// TopItems returns items ranked by count (highest first), ties broken by
// item name. n <= 0 returns every item.
func TopItems(freq ItemFrequencies, n int) []ItemCount {
	ranked := make([]ItemCount, 0, len(freq))
	for item, count := range freq {
		ranked = append(ranked, ItemCount{Item: item, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Item < ranked[j].Item
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Summarize reports basket count, distinct items and mean basket size.
func Summarize(baskets []Basket) (Summary, error) {
	if len(baskets) == 0 {
		return Summary{}, fmt.Errorf("%w: no baskets to summarize", ErrInvalidInput)
	}

	seen := make(map[Item]struct{})
	total := 0
	for _, basket := range baskets {
		total += len(basket)
		for _, item := range basket {
			seen[item] = struct{}{}
		}
	}

	return Summary{
		Baskets:        len(baskets),
		DistinctItems:  len(seen),
		TotalItems:     total,
		ItemsPerBasket: float64(total) / float64(len(baskets)),
	}, nil
}

// Dedupe returns copies of the baskets with repeated items removed, keeping
// the first occurrence of each. The input is not modified.
func Dedupe(baskets []Basket) []Basket {
	out := make([]Basket, len(baskets))
	for i, basket := range baskets {
		seen := make(map[Item]struct{}, len(basket))
		unique := make(Basket, 0, len(basket))
		for _, item := range basket {
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			unique = append(unique, item)
		}
		out[i] = unique
	}
	return out
}
