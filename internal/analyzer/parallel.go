package analyzer

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// shard splits baskets into at most n contiguous, non-empty slices.
// The returned slices alias the input.
func shard(baskets []Basket, n int) [][]Basket {
	if n < 1 {
		n = 1
	}
	if n > len(baskets) {
		n = len(baskets)
	}
	if n == 0 {
		return nil
	}

	shards := make([][]Basket, 0, n)
	size := (len(baskets) + n - 1) / n
	for start := 0; start < len(baskets); start += size {
		end := start + size
		if end > len(baskets) {
			end = len(baskets)
		}
		shards = append(shards, baskets[start:end])
	}
	return shards
}

// CountItemsParallel is CountItems spread over workers goroutines. Each
// shard is counted independently and the partial tables are summed.
func CountItemsParallel(baskets []Basket, workers int) ItemFrequencies {
	shards := shard(baskets, workers)
	if len(shards) <= 1 {
		return CountItems(baskets)
	}

	partials := make([]ItemFrequencies, len(shards))
	var wg sync.WaitGroup
	for i, s := range shards {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partials[i] = CountItems(s)
		}()
	}
	wg.Wait()

	return MergeFrequencies(partials...)
}

// MergeFrequencies sums frequency tables.
func MergeFrequencies(tables ...ItemFrequencies) ItemFrequencies {
	merged := make(ItemFrequencies)
	for _, t := range tables {
		for item, count := range t {
			merged[item] += count
		}
	}
	return merged
}

// ComputeCooccurrenceParallel is ComputeCooccurrence with pair counting
// spread over workers goroutines. The threshold is applied after the raw
// counts of all shards are summed, so the result matches the serial call.
func ComputeCooccurrenceParallel(baskets []Basket, minSupport float64, workers int) (Cooccurrence, error) {
	if len(baskets) == 0 {
		return nil, fmt.Errorf("%w: co-occurrence needs at least one basket", ErrInvalidInput)
	}
	if err := validateThreshold("min support", minSupport); err != nil {
		return nil, err
	}

	shards := shard(baskets, workers)
	partials := make([]map[Pair]int, len(shards))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, s := range shards {
		g.Go(func() error {
			counts := make(map[Pair]int)
			countPairsInto(counts, s)
			partials[i] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count pairs: %w", err)
	}

	total := make(map[Pair]int)
	for _, p := range partials {
		for pair, count := range p {
			total[pair] += count
		}
	}

	return filterPairs(total, len(baskets), minSupport), nil
}
