package coarsening

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

func TestCoarsenUncoarsen(t *testing.T) {
	ctrl := gomock.NewController(t)
	hg := newSampleHypergraph(t)
	for _, u := range hg.Nodes() {
		hg.SetNodePart(u, 0)
	}
	pinsBefore := make([][]hypergraph.NodeID, hg.NumEdges())
	for _, e := range hg.Edges() {
		pinsBefore[e] = append([]hypergraph.NodeID(nil), hg.Pins(e)...)
	}

	rng := rand.New(rand.NewSource(42))
	rater := NewRater(hg, 7, NewRandomRatingWins(rng), true)
	c := NewHeavyEdgeCoarsener(hg, rater, 5, rng, zerolog.Nop())

	c.Coarsen(2)
	assert.Equal(t, 2, hg.NumNodes())
	assert.Equal(t, 7, hg.PartWeight(0))
	assert.Equal(t, 5.0, c.Stats().Get("contractions"))

	refiner := partition.NewMockRefiner(ctrl)
	refiner.EXPECT().Refine(hg, gomock.Len(2), 5).Return(false).Times(5)
	c.Uncoarsen(refiner)

	assert.Equal(t, 7, hg.NumNodes())
	assert.Equal(t, 12, hg.NumPins())
	for _, e := range hg.Edges() {
		assert.ElementsMatch(t, pinsBefore[e], hg.Pins(e), "edge %d", e)
	}
	for _, u := range hg.Nodes() {
		assert.Equal(t, 1, hg.NodeWeight(u))
	}
	assert.Contains(t, c.PolicyString(), "tie_breaking=random")
}

func TestCoarsen_RespectsWeightBound(t *testing.T) {
	hg := newSampleHypergraph(t)
	rng := rand.New(rand.NewSource(3))
	c := NewHeavyEdgeCoarsener(hg, NewRater(hg, 2, FirstRatingWins{}, true), 4, rng, zerolog.Nop())

	c.Coarsen(1)
	assert.Greater(t, hg.NumNodes(), 1)
	for _, u := range hg.Nodes() {
		assert.LessOrEqual(t, hg.NodeWeight(u), 2)
	}
}

func TestCoarsen_StopsWithoutPartners(t *testing.T) {
	hg, err := hypergraph.New(3, 0, []int{0}, nil, 2)
	assert.NoError(t, err)
	rng := rand.New(rand.NewSource(1))
	c := NewHeavyEdgeCoarsener(hg, NewRater(hg, 10, FirstRatingWins{}, true), 2, rng, zerolog.Nop())

	c.Coarsen(1)
	assert.Equal(t, 3, hg.NumNodes())
	assert.Equal(t, 0.0, c.Stats().Get("contractions"))
}
