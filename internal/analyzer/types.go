package analyzer

// Item is an opaque item identifier, e.g. "whole milk".
type Item = string

// Basket is the items recorded under one transaction key, in recorded order.
// Repeated items are kept. Nothing in this package modifies a Basket.
type Basket []Item

// ItemFrequencies maps each item to its number of occurrences across all baskets.
type ItemFrequencies map[Item]int

// Pair is an unordered item pair stored in canonical order (A < B).
type Pair struct {
	A Item
	B Item
}

// NewPair returns the canonical pair for x and y.
func NewPair(x, y Item) Pair {
	if x > y {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// PairStats holds the joint count and support of a pair.
type PairStats struct {
	Count   int     // position combinations containing both items
	Support float64 // Count / total baskets
}

// Cooccurrence maps canonical pairs to their stats.
type Cooccurrence map[Pair]PairStats

// Rule is a directional association rule Antecedent -> Consequent.
type Rule struct {
	Antecedent Item
	Consequent Item
	Support    float64
	Confidence float64
	Lift       float64
}

// ItemCount is one row of a popularity ranking.
type ItemCount struct {
	Item  Item
	Count int
}

// Summary describes a basket collection at a glance.
type Summary struct {
	Baskets        int
	DistinctItems  int
	TotalItems     int
	ItemsPerBasket float64
}

// Analysis bundles the outputs of one full pipeline run.
type Analysis struct {
	TotalBaskets  int
	MinSupport    float64
	MinConfidence float64
	Frequencies   ItemFrequencies
	Cooccurrence  Cooccurrence
	Rules         []Rule
}
