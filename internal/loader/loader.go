// Package loader turns raw transaction records into baskets.
//
// A record is a (basket key, item) pair. Records come from a CSV file or
// from the SQLite store; either way they are grouped by key with items kept
// in the order they were recorded.
package loader

import (
	"errors"
	"sort"
	"strconv"

	"github.com/blackwell-systems/basketlift/internal/analyzer"
	"github.com/blackwell-systems/basketlift/internal/store"
)

// ErrDataUnavailable is returned when a source is missing, unreadable,
// lacks a required column or holds no records.
var ErrDataUnavailable = errors.New("transaction data unavailable")

// Source produces the basket collection for one analysis run.
type Source interface {
	LoadBaskets() ([]analyzer.Basket, error)
}

// Grouped is the result of grouping records by basket key.
type Grouped struct {
	Keys    []string
	Baskets []analyzer.Basket
}

// GroupBaskets groups records by key. Items keep record order within each
// basket. Baskets are ordered by key: numerically when every key is an
// integer, otherwise lexically.
func GroupBaskets(txns []store.Transaction) Grouped {
	index := make(map[string]int)
	var g Grouped

	for _, t := range txns {
		i, ok := index[t.Key]
		if !ok {
			i = len(g.Keys)
			index[t.Key] = i
			g.Keys = append(g.Keys, t.Key)
			g.Baskets = append(g.Baskets, nil)
		}
		g.Baskets[i] = append(g.Baskets[i], t.Item)
	}

	sort.Sort(byKey{g: &g, numeric: allIntegers(g.Keys)})
	return g
}

func allIntegers(keys []string) bool {
	for _, k := range keys {
		if _, err := strconv.ParseInt(k, 10, 64); err != nil {
			return false
		}
	}
	return true
}

type byKey struct {
	g       *Grouped
	numeric bool
}

func (b byKey) Len() int { return len(b.g.Keys) }

func (b byKey) Swap(i, j int) {
	b.g.Keys[i], b.g.Keys[j] = b.g.Keys[j], b.g.Keys[i]
	b.g.Baskets[i], b.g.Baskets[j] = b.g.Baskets[j], b.g.Baskets[i]
}

func (b byKey) Less(i, j int) bool {
	if b.numeric {
		x, _ := strconv.ParseInt(b.g.Keys[i], 10, 64)
		y, _ := strconv.ParseInt(b.g.Keys[j], 10, 64)
		return x < y
	}
	return b.g.Keys[i] < b.g.Keys[j]
}
