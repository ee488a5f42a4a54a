package coarsening

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// newSampleHypergraph builds {0,2} {0,1,3,4} {3,4,6} {2,5,6} on 7 nodes.
func newSampleHypergraph(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	hg, err := hypergraph.New(7, 4,
		[]int{0, 2, 6, 9, 12},
		[]hypergraph.NodeID{0, 2, 0, 1, 3, 4, 3, 4, 6, 2, 5, 6},
		2)
	require.NoError(t, err)
	return hg
}

func TestRate_HeavyEdge(t *testing.T) {
	hg := newSampleHypergraph(t)
	r := NewRater(hg, 10, FirstRatingWins{}, true)

	rating := r.Rate(0)
	require.True(t, rating.Valid)
	assert.Equal(t, hypergraph.NodeID(2), rating.Target)
	assert.InDelta(t, 1.0, rating.Value, 1e-9)
	assert.Equal(t, 0, r.TouchedCount())

	rating = r.Rate(3)
	require.True(t, rating.Valid)
	assert.Equal(t, hypergraph.NodeID(4), rating.Target)
	assert.InDelta(t, 1.0/3+1.0/2, rating.Value, 1e-9)
	assert.Equal(t, 0, r.TouchedCount())
}

func TestRate_TieBreaking(t *testing.T) {
	hg := newSampleHypergraph(t)

	// node 1 only sits in {0,1,3,4}, all partners score 1/3
	first := NewRater(hg, 10, FirstRatingWins{}, true).Rate(1)
	last := NewRater(hg, 10, LastRatingWins{}, true).Rate(1)

	require.True(t, first.Valid)
	require.True(t, last.Valid)
	assert.NotEqual(t, first.Target, last.Target)
	assert.Contains(t, []hypergraph.NodeID{0, 3, 4}, first.Target)
	assert.Contains(t, []hypergraph.NodeID{0, 3, 4}, last.Target)
	assert.InDelta(t, first.Value, last.Value, 1e-12)

	random := NewRater(hg, 10, NewRandomRatingWins(rand.New(rand.NewSource(7))), true)
	for i := 0; i < 20; i++ {
		rating := random.Rate(1)
		require.True(t, rating.Valid)
		assert.Contains(t, []hypergraph.NodeID{0, 3, 4}, rating.Target)
		assert.Equal(t, 0, random.TouchedCount())
	}
}

func TestRate_WeightBound(t *testing.T) {
	hg := newSampleHypergraph(t)
	r := NewRater(hg, 1, FirstRatingWins{}, true)

	for _, u := range hg.Nodes() {
		rating := r.Rate(u)
		assert.False(t, rating.Valid, "node %d", u)
		assert.Equal(t, 0, r.TouchedCount())
	}
}

func TestRate_SameBlockOnly(t *testing.T) {
	hg := newSampleHypergraph(t)
	blocks := []hypergraph.PartitionID{0, 0, 1, 0, 0, 1, 1}
	for u, p := range blocks {
		hg.SetNodePart(hypergraph.NodeID(u), p)
	}
	r := NewRater(hg, 10, LastRatingWins{}, true)

	for _, u := range hg.Nodes() {
		rating := r.Rate(u)
		if rating.Valid {
			assert.NotEqual(t, u, rating.Target)
			assert.Equal(t, hg.PartID(u), hg.PartID(rating.Target))
			assert.LessOrEqual(t, hg.NodeWeight(u)+hg.NodeWeight(rating.Target), r.MaxNodeWeight())
		}
		assert.Equal(t, 0, r.TouchedCount())
	}

	// 0 prefers 2 through {0,2} but 2 lives in the other block
	rating := r.Rate(0)
	require.True(t, rating.Valid)
	assert.NotEqual(t, hypergraph.NodeID(2), rating.Target)
}

func TestRate_NormalizesByNodeWeight(t *testing.T) {
	hg := newSampleHypergraph(t)
	r := NewRater(hg, 10, FirstRatingWins{}, true)

	hg.Contract(3, 4) // weight(3) = 2, {3,4,6} shrinks to {3,6}
	rating := r.Rate(6)
	require.True(t, rating.Valid)
	// 3: w({3,6})/1 / (1*2) = 0.5, 2 and 5: w({2,5,6})/2 / 1 = 0.5
	assert.InDelta(t, 0.5, rating.Value, 1e-9)
	assert.Equal(t, 0, r.TouchedCount())
}

func TestRate_LeftoverScratchStatePanics(t *testing.T) {
	hg := newSampleHypergraph(t)
	r := NewRater(hg, 10, FirstRatingWins{}, true)
	r.usedEntries = append(r.usedEntries, 2)

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "expected an assertion panic")
		assert.True(t, errors.HasAssertionFailure(err))
	}()
	r.Rate(0)
}

func TestNewTieBreakingPolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, name := range []string{"first", "last", "random"} {
		policy, err := NewTieBreakingPolicy(name, rng)
		require.NoError(t, err)
		assert.Equal(t, name, policy.Name())
	}
	_, err := NewTieBreakingPolicy("best", rng)
	assert.Error(t, err)
}
