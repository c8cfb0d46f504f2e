package analyzer

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain_MatchesDerivedRule(t *testing.T) {
	opts := Options{MinSupport: 0.3, MinConfidence: 0.5, Workers: 1}
	a := New(opts, zerolog.Nop())

	e, err := a.Explain(groceryBaskets(), "bread", "milk")
	require.NoError(t, err)

	assert.Equal(t, 3, e.TotalBaskets)
	assert.Equal(t, 2, e.AntecedentCount)
	assert.Equal(t, 3, e.ConsequentCount)
	assert.Equal(t, 2, e.PairCount)
	assert.Equal(t, 0, e.MinCount)
	assert.InDelta(t, 2.0/3.0, e.Support, eps)
	assert.InDelta(t, 1.0, e.Confidence, eps)
	assert.InDelta(t, 1.0, e.Lift, eps)
	assert.True(t, e.MeetsSupport())
	assert.True(t, e.MeetsConfidence())

	analysis, err := a.Run(groceryBaskets())
	require.NoError(t, err)
	var found bool
	for _, r := range analysis.Rules {
		if r.Antecedent == "bread" && r.Consequent == "milk" {
			found = true
			assert.InDelta(t, r.Confidence, e.Confidence, eps)
			assert.InDelta(t, r.Lift, e.Lift, eps)
			assert.InDelta(t, r.Support, e.Support, eps)
		}
	}
	assert.True(t, found)
}

func TestExplain_BelowThresholds(t *testing.T) {
	a := New(Options{MinSupport: 0.9, MinConfidence: 0.9, Workers: 1}, zerolog.Nop())

	e, err := a.Explain(groceryBaskets(), "milk", "eggs")
	require.NoError(t, err)

	assert.Equal(t, 1, e.PairCount)
	assert.Equal(t, 2, e.MinCount)
	assert.False(t, e.MeetsSupport())
	assert.InDelta(t, 1.0/3.0, e.Confidence, eps)
	assert.False(t, e.MeetsConfidence())
}

func TestExplain_UnknownItem(t *testing.T) {
	a := New(DefaultOptions(), zerolog.Nop())

	e, err := a.Explain(groceryBaskets(), "caviar", "milk")
	require.NoError(t, err)

	assert.Equal(t, 0, e.AntecedentCount)
	assert.Equal(t, 0, e.PairCount)
	assert.Zero(t, e.Confidence)
	assert.Zero(t, e.Lift)
	assert.False(t, e.MeetsSupport())
	assert.False(t, e.MeetsConfidence())
}

func TestExplain_NeverTogetherAtZeroThresholds(t *testing.T) {
	a := New(Options{MinSupport: 0, MinConfidence: 0, Workers: 1}, zerolog.Nop())
	baskets := []Basket{{"a"}, {"b"}}

	e, err := a.Explain(baskets, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0, e.PairCount)
	assert.False(t, e.MeetsSupport())
	assert.False(t, e.MeetsConfidence())

	analysis, err := a.Run(baskets)
	require.NoError(t, err)
	assert.Empty(t, analysis.Rules)
}

func TestExplain_Errors(t *testing.T) {
	a := New(DefaultOptions(), zerolog.Nop())

	_, err := a.Explain(nil, "milk", "bread")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = a.Explain(groceryBaskets(), "milk", "milk")
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad := New(Options{MinSupport: 2, MinConfidence: 0.3}, zerolog.Nop())
	_, err = bad.Explain(groceryBaskets(), "milk", "bread")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
