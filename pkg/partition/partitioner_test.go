package partition

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

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

func newTestConfig(totalWeight int) *Config {
	cfg := NewConfig()
	cfg.Set("partition.k", 2)
	cfg.Set("partition.epsilon", 0.05)
	cfg.Set("partition.initial_partitioning_attempts", 3)
	cfg.Set("coarsening.minimal_node_count", 2)
	cfg.RecalculateBalanceConstraints(totalWeight)
	return cfg
}

type mocks struct {
	coarsener *MockCoarsener
	refiner   *MockRefiner
	initial   *MockInitialPartitioner
}

func newMocks(t *testing.T) mocks {
	ctrl := gomock.NewController(t)
	m := mocks{
		coarsener: NewMockCoarsener(ctrl),
		refiner:   NewMockRefiner(ctrl),
		initial:   NewMockInitialPartitioner(ctrl),
	}
	m.initial.EXPECT().Name().Return("mock").AnyTimes()
	return m
}

var (
	cut3 = []hypergraph.PartitionID{0, 0, 0, 0, 1, 1, 1}
	cut2 = []hypergraph.PartitionID{0, 0, 0, 1, 1, 1, 1}
)

func TestRun_VCycles(t *testing.T) {
	hg := newSampleHypergraph(t)
	cfg := newTestConfig(hg.TotalWeight())
	cfg.Set("partition.global_search_iterations", 2)
	m := newMocks(t)

	gomock.InOrder(
		m.coarsener.EXPECT().Coarsen(2),
		m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return(cut3, nil),
		m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return(cut2, nil),
		m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return(nil, errors.New("backend crashed")),
		m.coarsener.EXPECT().Uncoarsen(m.refiner),
		m.coarsener.EXPECT().Coarsen(2),
		m.coarsener.EXPECT().Uncoarsen(m.refiner),
	)

	p := NewPartitioner(cfg, m.initial, rand.New(rand.NewSource(1)), zerolog.Nop())
	result, err := p.Run(hg, m.coarsener, m.refiner)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Cut)
	assert.Equal(t, []int{3, 2}, result.AttemptCuts)
	assert.Equal(t, []int{2, 2}, result.VCycleCuts)
	assert.Empty(t, result.UnresolvedEdges)
	for u, want := range cut2 {
		assert.Equal(t, want, hg.PartID(hypergraph.NodeID(u)))
	}
}

func TestRun_InitialRequest(t *testing.T) {
	hg := newSampleHypergraph(t)
	cfg := newTestConfig(hg.TotalWeight())
	cfg.Set("partition.initial_partitioning_attempts", 2)
	m := newMocks(t)

	seeds := rand.New(rand.NewSource(5))
	wantSeeds := []int64{seeds.Int63(), seeds.Int63()}
	var gotSeeds []int64

	m.coarsener.EXPECT().Coarsen(2)
	m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).
		DoAndReturn(func(dense *hypergraph.Hypergraph, req InitialRequest) ([]hypergraph.PartitionID, error) {
			assert.Equal(t, 7, dense.NumNodes())
			assert.Equal(t, 2, req.K)
			assert.InDelta(t, 0.05, req.Epsilon, 1e-12)
			assert.InDelta(t, RecursiveBisectionBalanceFactor(2, 0.05, 7), req.BalanceFactor, 1e-12)
			gotSeeds = append(gotSeeds, req.Seed)
			return cut2, nil
		}).Times(2)
	m.coarsener.EXPECT().Uncoarsen(m.refiner)

	p := NewPartitioner(cfg, m.initial, rand.New(rand.NewSource(5)), zerolog.Nop())
	_, err := p.Run(hg, m.coarsener, m.refiner)
	require.NoError(t, err)
	assert.Equal(t, wantSeeds, gotSeeds)
}

func TestRun_AllAttemptsFail(t *testing.T) {
	hg := newSampleHypergraph(t)
	cfg := newTestConfig(hg.TotalWeight())
	m := newMocks(t)
	backendErr := errors.New("backend crashed")

	m.coarsener.EXPECT().Coarsen(2)
	m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return(nil, backendErr).Times(3)

	p := NewPartitioner(cfg, m.initial, rand.New(rand.NewSource(1)), zerolog.Nop())
	_, err := p.Run(hg, m.coarsener, m.refiner)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInitialPartition))
	assert.True(t, errors.Is(err, backendErr))
}

func TestRun_InvalidAssignment(t *testing.T) {
	hg := newSampleHypergraph(t)
	cfg := newTestConfig(hg.TotalWeight())
	m := newMocks(t)

	m.coarsener.EXPECT().Coarsen(2)
	m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return([]hypergraph.PartitionID{0, 1}, nil)

	p := NewPartitioner(cfg, m.initial, rand.New(rand.NewSource(1)), zerolog.Nop())
	_, err := p.Run(hg, m.coarsener, m.refiner)
	assert.True(t, errors.Is(err, ErrInvalidAssignment))

	hg = newSampleHypergraph(t)
	m = newMocks(t)
	m.coarsener.EXPECT().Coarsen(2)
	m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return([]hypergraph.PartitionID{0, 1, 2, 0, 1, 0, 1}, nil)

	p = NewPartitioner(cfg, m.initial, rand.New(rand.NewSource(1)), zerolog.Nop())
	_, err = p.Run(hg, m.coarsener, m.refiner)
	assert.True(t, errors.Is(err, ErrInvalidAssignment))
}

func TestRun_CutWorsenedAssertion(t *testing.T) {
	for _, checks := range []bool{true, false} {
		hg := newSampleHypergraph(t)
		cfg := newTestConfig(hg.TotalWeight())
		cfg.Set("partition.global_search_iterations", 2)
		cfg.Set("partition.initial_partitioning_attempts", 1)
		cfg.Set("debug.check_invariants", checks)
		m := newMocks(t)

		gomock.InOrder(
			m.coarsener.EXPECT().Coarsen(2),
			m.initial.EXPECT().Partition(gomock.Any(), gomock.Any()).Return(cut2, nil),
			m.coarsener.EXPECT().Uncoarsen(m.refiner),
			m.coarsener.EXPECT().Coarsen(2),
			// a broken refiner that moves node 3 back into block 0
			m.coarsener.EXPECT().Uncoarsen(m.refiner).Do(func(Refiner) {
				hg.ChangeNodePart(3, 1, 0)
			}),
		)

		p := NewPartitioner(cfg, m.initial, rand.New(rand.NewSource(1)), zerolog.Nop())
		result, err := p.Run(hg, m.coarsener, m.refiner)
		if checks {
			require.Error(t, err)
			assert.True(t, errors.IsAssertionFailure(err))
		} else {
			require.NoError(t, err)
			assert.Equal(t, []int{2, 3}, result.VCycleCuts)
		}
	}
}

func TestRecursiveBisectionBalanceFactor(t *testing.T) {
	// k=2: 50*(2*(1+eps)*ceil(n/2)/n - 1)
	assert.InDelta(t, 50*(2*1.03*0.5-1), RecursiveBisectionBalanceFactor(2, 0.03, 100), 1e-9)
	assert.InDelta(t, 50*(2*1.1*4.0/7-1), RecursiveBisectionBalanceFactor(2, 0.1, 7), 1e-9)
	assert.Greater(t, RecursiveBisectionBalanceFactor(4, 0.03, 1000), 0.0)
}
