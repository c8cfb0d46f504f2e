package analyzer

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// groceryBaskets is the three-basket example used throughout these tests.
func groceryBaskets() []Basket {
	return []Basket{
		{"milk", "bread"},
		{"milk", "bread"},
		{"milk", "eggs"},
	}
}

// randomBaskets builds a reproducible collection without repeated items.
func randomBaskets(n int, seed int64) []Basket {
	catalog := []Item{"bread", "butter", "cheese", "coffee", "eggs", "jam", "milk", "soda", "tea", "yogurt"}
	r := rand.New(rand.NewSource(seed))

	baskets := make([]Basket, n)
	for i := range baskets {
		size := 1 + r.Intn(5)
		perm := r.Perm(len(catalog))[:size]
		b := make(Basket, 0, size)
		for _, p := range perm {
			b = append(b, catalog[p])
		}
		baskets[i] = b
	}
	return baskets
}

func TestNewPair_Canonical(t *testing.T) {
	assert.Equal(t, Pair{A: "bread", B: "milk"}, NewPair("milk", "bread"))
	assert.Equal(t, Pair{A: "bread", B: "milk"}, NewPair("bread", "milk"))
}

func TestCountItems(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		freq := CountItems(nil)
		require.NotNil(t, freq)
		assert.Empty(t, freq)
	})

	t.Run("counts every occurrence", func(t *testing.T) {
		freq := CountItems([]Basket{{"milk", "milk", "bread"}, {"milk"}})
		assert.Equal(t, ItemFrequencies{"milk": 3, "bread": 1}, freq)
	})

	t.Run("single item basket still counted", func(t *testing.T) {
		freq := CountItems([]Basket{{"milk"}})
		assert.Equal(t, 1, freq["milk"])
	})
}

func TestCountItems_PartitionAdditive(t *testing.T) {
	baskets := randomBaskets(200, 7)
	whole := CountItems(baskets)

	for _, cut := range []int{0, 1, 50, 123, 199, 200} {
		t.Run(fmt.Sprintf("cut at %d", cut), func(t *testing.T) {
			merged := MergeFrequencies(CountItems(baskets[:cut]), CountItems(baskets[cut:]))
			assert.Equal(t, whole, merged)
		})
	}
}

func TestComputeCooccurrence_ScenarioA(t *testing.T) {
	co, err := ComputeCooccurrence(groceryBaskets(), 0.3)
	require.NoError(t, err)
	require.Len(t, co, 2)

	bm := co[NewPair("bread", "milk")]
	assert.Equal(t, 2, bm.Count)
	assert.InDelta(t, 2.0/3.0, bm.Support, eps)

	em := co[NewPair("eggs", "milk")]
	assert.Equal(t, 1, em.Count)
	assert.InDelta(t, 1.0/3.0, em.Support, eps)
}

func TestComputeCooccurrence_NoBaskets(t *testing.T) {
	_, err := ComputeCooccurrence(nil, DefaultMinSupport)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ComputeCooccurrenceParallel([]Basket{}, DefaultMinSupport, 4)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeCooccurrence_ThresholdValidation(t *testing.T) {
	tests := []struct {
		name    string
		support float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"default", DefaultMinSupport, false},
		{"one", 1, false},
		{"negative", -0.01, true},
		{"above one", 1.5, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeCooccurrence(groceryBaskets(), tt.support)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComputeCooccurrence_SingleItemBasket(t *testing.T) {
	baskets := []Basket{{"milk"}, {"bread"}}

	co, err := ComputeCooccurrence(baskets, 0)
	require.NoError(t, err)
	assert.Empty(t, co)

	freq := CountItems(baskets)
	assert.Equal(t, 1, freq["milk"])
	assert.Equal(t, 1, freq["bread"])
}

func TestComputeCooccurrence_RepeatedItems(t *testing.T) {
	baskets := []Basket{{"a", "b", "b"}}

	co, err := ComputeCooccurrence(baskets, 0)
	require.NoError(t, err)

	_, selfPair := co[Pair{A: "b", B: "b"}]
	assert.False(t, selfPair, "an item must not pair with itself")
	assert.Equal(t, 2, co.Count("a", "b"), "each position combination counts")

	deduped, err := ComputeCooccurrence(Dedupe(baskets), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, deduped.Count("b", "a"))
}

func TestComputeCooccurrence_SupportFilter(t *testing.T) {
	// (a,b) in 3 of 10 baskets, (a,c) in 1.
	baskets := []Basket{
		{"a", "b"}, {"a", "b"}, {"b", "a"}, {"a", "c"},
		{"d"}, {"d"}, {"d"}, {"d"}, {"d"}, {"d"},
	}

	co, err := ComputeCooccurrence(baskets, 0.2)
	require.NoError(t, err)
	assert.Len(t, co, 1)
	assert.Equal(t, 3, co.Count("a", "b"))
	assert.Equal(t, 0, co.Count("a", "c"))

	co, err = ComputeCooccurrence(baskets, 0.4)
	require.NoError(t, err)
	assert.Empty(t, co)
}

func TestComputeCooccurrence_Properties(t *testing.T) {
	baskets := randomBaskets(500, 11)
	minSupport := 0.02

	co, err := ComputeCooccurrence(baskets, minSupport)
	require.NoError(t, err)
	require.NotEmpty(t, co)

	minCount := MinimumCount(minSupport, len(baskets))
	for pair, stats := range co {
		assert.Less(t, pair.A, pair.B, "pair keys are canonical")
		assert.GreaterOrEqual(t, stats.Count, minCount)
		assert.InDelta(t, float64(stats.Count)/float64(len(baskets)), stats.Support, eps)
		assert.Greater(t, stats.Support, 0.0)
		assert.LessOrEqual(t, stats.Support, 1.0)
		assert.Equal(t, co.Count(pair.A, pair.B), co.Count(pair.B, pair.A))
	}
}

func TestCooccurrence_Ranked(t *testing.T) {
	co := Cooccurrence{
		NewPair("milk", "eggs"):  {Count: 1, Support: 0.1},
		NewPair("milk", "bread"): {Count: 2, Support: 0.2},
		NewPair("bread", "eggs"): {Count: 1, Support: 0.1},
	}

	ranked := co.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, Pair{A: "bread", B: "milk"}, ranked[0].Pair)
	assert.Equal(t, Pair{A: "bread", B: "eggs"}, ranked[1].Pair)
	assert.Equal(t, Pair{A: "eggs", B: "milk"}, ranked[2].Pair)
	assert.Equal(t, 2, ranked[0].Count)
}

func TestMinimumCount(t *testing.T) {
	assert.Equal(t, 0, MinimumCount(0.3, 3))
	assert.Equal(t, 0, MinimumCount(0.05, 10))
	assert.Equal(t, 2, MinimumCount(0.2, 10))
	assert.Equal(t, 500, MinimumCount(0.05, 10000))
}

func TestDeriveRules_ScenarioA(t *testing.T) {
	baskets := groceryBaskets()
	co, err := ComputeCooccurrence(baskets, 0.3)
	require.NoError(t, err)

	rules, err := DeriveRules(co, CountItems(baskets), len(baskets), 0.3)
	require.NoError(t, err)
	require.Len(t, rules, 4)

	want := []struct {
		ante, cons string
		conf       float64
	}{
		{"bread", "milk", 1.0},
		{"eggs", "milk", 1.0},
		{"milk", "bread", 2.0 / 3.0},
		{"milk", "eggs", 1.0 / 3.0},
	}
	for i, w := range want {
		assert.Equal(t, w.ante, rules[i].Antecedent, "rule %d antecedent", i)
		assert.Equal(t, w.cons, rules[i].Consequent, "rule %d consequent", i)
		assert.InDelta(t, w.conf, rules[i].Confidence, eps, "rule %d confidence", i)
		assert.InDelta(t, 1.0, rules[i].Lift, eps, "milk is in every basket so lift is 1")
	}
	assert.InDelta(t, 2.0/3.0, rules[0].Support, eps)
}

func TestDeriveRules_ConfidenceFilter(t *testing.T) {
	baskets := groceryBaskets()
	co, err := ComputeCooccurrence(baskets, 0)
	require.NoError(t, err)

	rules, err := DeriveRules(co, CountItems(baskets), len(baskets), 0.5)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Empty(t, Recommend(rules, "milk")[1:], "milk -> eggs is below 0.5")

	rules, err = DeriveRules(co, CountItems(baskets), len(baskets), 1)
	require.NoError(t, err)
	assert.Len(t, rules, 2, "only the certain directions survive")
}

func TestDeriveRules_InvalidInput(t *testing.T) {
	co := Cooccurrence{NewPair("a", "b"): {Count: 1, Support: 1}}
	freq := ItemFrequencies{"a": 1, "b": 1}

	_, err := DeriveRules(co, freq, 0, 0.3)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DeriveRules(co, freq, 1, 1.2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DeriveRules(co, freq, 1, -0.1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeriveRules_Inconsistency(t *testing.T) {
	co := Cooccurrence{NewPair("a", "b"): {Count: 1, Support: 0.5}}

	_, err := DeriveRules(co, ItemFrequencies{"a": 2}, 2, 0.3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistency)
	assert.Contains(t, err.Error(), "(a, b)")
}

func TestDeriveRules_EmptyCooccurrence(t *testing.T) {
	rules, err := DeriveRules(Cooccurrence{}, ItemFrequencies{}, 5, 0.3)
	require.NoError(t, err)
	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}

func TestDeriveRules_Properties(t *testing.T) {
	baskets := randomBaskets(400, 3)
	minConfidence := 0.25

	co, err := ComputeCooccurrence(baskets, 0.01)
	require.NoError(t, err)
	freq := CountItems(baskets)

	rules, err := DeriveRules(co, freq, len(baskets), minConfidence)
	require.NoError(t, err)
	require.NotEmpty(t, rules)

	for i, r := range rules {
		assert.Greater(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
		assert.GreaterOrEqual(t, r.Confidence, minConfidence)

		// Recompute from the raw baskets without the engine's tables.
		var joint, ante, cons int
		for _, b := range baskets {
			hasA, hasC := contains(b, r.Antecedent), contains(b, r.Consequent)
			if hasA {
				ante++
			}
			if hasC {
				cons++
			}
			if hasA && hasC {
				joint++
			}
		}
		conf := float64(joint) / float64(ante)
		lift := conf / (float64(cons) / float64(len(baskets)))
		assert.InDelta(t, conf, r.Confidence, eps)
		assert.InDelta(t, lift, r.Lift, eps)
		assert.InDelta(t, float64(joint)/float64(len(baskets)), r.Support, eps)

		if i > 0 {
			assert.GreaterOrEqual(t, rules[i-1].Confidence, r.Confidence, "sorted by confidence")
		}
	}
}

func contains(b Basket, item Item) bool {
	for _, x := range b {
		if x == item {
			return true
		}
	}
	return false
}

func TestSortRules_TieBreak(t *testing.T) {
	rules := []Rule{
		{Antecedent: "b", Consequent: "x", Confidence: 0.5, Lift: 1},
		{Antecedent: "a", Consequent: "y", Confidence: 0.5, Lift: 1},
		{Antecedent: "a", Consequent: "x", Confidence: 0.5, Lift: 1},
		{Antecedent: "z", Consequent: "x", Confidence: 0.5, Lift: 2},
		{Antecedent: "c", Consequent: "x", Confidence: 0.9, Lift: 0.5},
	}
	SortRules(rules)

	var got []string
	for _, r := range rules {
		got = append(got, r.Antecedent+">"+r.Consequent)
	}
	assert.Equal(t, []string{"c>x", "z>x", "a>x", "a>y", "b>x"}, got)
}

func TestRecommend_ScenarioD(t *testing.T) {
	baskets := groceryBaskets()
	co, err := ComputeCooccurrence(baskets, 0.3)
	require.NoError(t, err)
	rules, err := DeriveRules(co, CountItems(baskets), len(baskets), 0.3)
	require.NoError(t, err)

	recs := Recommend(rules, "milk")
	require.Len(t, recs, 2)
	assert.Equal(t, "bread", recs[0].Consequent)
	assert.Equal(t, "eggs", recs[1].Consequent)
	assert.GreaterOrEqual(t, recs[0].Confidence, recs[1].Confidence)
}

func TestRecommend_NoMatch(t *testing.T) {
	recs := Recommend([]Rule{{Antecedent: "milk", Consequent: "bread"}}, "caviar")
	assert.NotNil(t, recs)
	assert.Empty(t, recs)

	assert.NotNil(t, Recommend(nil, "milk"))
}

func TestTopItems(t *testing.T) {
	freq := ItemFrequencies{"milk": 5, "bread": 3, "eggs": 3, "jam": 1}

	assert.Equal(t, []ItemCount{{"milk", 5}, {"bread", 3}}, TopItems(freq, 2))
	assert.Len(t, TopItems(freq, 0), 4)
	assert.Equal(t, ItemCount{"eggs", 3}, TopItems(freq, 10)[2])
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]Basket{{"milk", "bread"}, {"milk"}, {"eggs", "milk", "jam"}})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Baskets)
	assert.Equal(t, 4, s.DistinctItems)
	assert.Equal(t, 6, s.TotalItems)
	assert.InDelta(t, 2.0, s.ItemsPerBasket, eps)

	_, err = Summarize(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDedupe_DoesNotModifyInput(t *testing.T) {
	in := []Basket{{"a", "a", "b", "a"}}
	out := Dedupe(in)

	assert.Equal(t, Basket{"a", "b"}, out[0])
	assert.Equal(t, Basket{"a", "a", "b", "a"}, in[0])
}

func TestParallel_MatchesSerial(t *testing.T) {
	baskets := randomBaskets(333, 5)
	wantFreq := CountItems(baskets)
	wantCo, err := ComputeCooccurrence(baskets, 0.03)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 2, 3, 7, 64, 1000} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			assert.Equal(t, wantFreq, CountItemsParallel(baskets, workers))

			co, err := ComputeCooccurrenceParallel(baskets, 0.03, workers)
			require.NoError(t, err)
			assert.Equal(t, wantCo, co)
		})
	}
}

func TestShard(t *testing.T) {
	baskets := randomBaskets(10, 1)

	shards := shard(baskets, 3)
	require.Len(t, shards, 3)
	total := 0
	for _, s := range shards {
		assert.NotEmpty(t, s)
		total += len(s)
	}
	assert.Equal(t, 10, total)

	assert.Nil(t, shard(nil, 4))
	assert.Len(t, shard(baskets, 50), 10)
}

func TestAnalyzer_Run(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	opts := DefaultOptions()
	opts.MinSupport = 0.3
	a := New(opts, log)

	result, err := a.Run(groceryBaskets())
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalBaskets)
	assert.Equal(t, 3, result.Frequencies["milk"])
	assert.Len(t, result.Cooccurrence, 2)
	assert.Len(t, result.Rules, 4)

	assert.Contains(t, buf.String(), "derived rules")
	assert.Contains(t, buf.String(), `"component":"analyzer"`)
}

func TestAnalyzer_Deterministic(t *testing.T) {
	baskets := randomBaskets(300, 9)
	opts := Options{MinSupport: 0.01, MinConfidence: 0.2, Workers: 4}

	first, err := New(opts, zerolog.Nop()).Run(baskets)
	require.NoError(t, err)
	second, err := New(opts, zerolog.Nop()).Run(baskets)
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("%#v", first.Rules), fmt.Sprintf("%#v", second.Rules))
}

func TestAnalyzer_Errors(t *testing.T) {
	_, err := New(DefaultOptions(), zerolog.Nop()).Run(nil)
	assert.ErrorIs(t, err, ErrInvalidInput, "scenario B: zero baskets")

	_, err = New(Options{MinSupport: 2, MinConfidence: 0.3}, zerolog.Nop()).Run(groceryBaskets())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyzer_DedupeKeepsConfidenceBounded(t *testing.T) {
	baskets := []Basket{{"a", "b", "b"}, {"a"}, {"b", "c"}}

	raw, err := New(Options{MinConfidence: 0}, zerolog.Nop()).Run(baskets)
	require.NoError(t, err)
	// a appears twice, (a,b) counted twice: confidence(a -> b) = 2/2.
	assert.InDelta(t, 1.0, Recommend(raw.Rules, "a")[0].Confidence, eps)

	deduped, err := New(Options{MinConfidence: 0, DedupeBaskets: true}, zerolog.Nop()).Run(baskets)
	require.NoError(t, err)
	for _, r := range deduped.Rules {
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}
	assert.InDelta(t, 0.5, Recommend(deduped.Rules, "a")[0].Confidence, eps)
	assert.Equal(t, 2, deduped.Frequencies["b"])
	assert.Equal(t, 3, raw.Frequencies["b"])
}
