package partition

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// Timings accumulates the wall time spent per phase.
type Timings struct {
	Coarsening             time.Duration `json:"coarsening"`
	InitialPartitioning    time.Duration `json:"initial_partitioning"`
	UncoarseningRefinement time.Duration `json:"uncoarsening_refinement"`
}

// Result summarizes one Run.
type Result struct {
	Cut             int                 `json:"cut"`
	Imbalance       float64             `json:"imbalance"`
	VCycleCuts      []int               `json:"vcycle_cuts"`
	AttemptCuts     []int               `json:"attempt_cuts"`
	RemovedEdges    int                 `json:"removed_edges"`
	UnresolvedEdges []hypergraph.EdgeID `json:"unresolved_edges,omitempty"`
	Timings         Timings             `json:"timings"`
	RuntimeMS       int64               `json:"runtime_ms"`
}

// Partitioner drives the multilevel cycle: large hyperedge exclusion,
// repeated coarsen / initial partition / uncoarsen-refine V-cycles and
// balance-aware restoration of the excluded hyperedges.
type Partitioner struct {
	cfg     *Config
	initial InitialPartitioner
	rng     *rand.Rand
	logger  zerolog.Logger
}

// NewPartitioner creates a driver. rng supplies the seeds of the initial
// partitioning attempts and is consumed in a fixed order.
func NewPartitioner(cfg *Config, initial InitialPartitioner, rng *rand.Rand, logger zerolog.Logger) *Partitioner {
	return &Partitioner{
		cfg:     cfg,
		initial: initial,
		rng:     rng,
		logger:  logger,
	}
}

// Run partitions hg in place. Balance constraints must have been derived
// from hg with Config.RecalculateBalanceConstraints before calling Run.
func (p *Partitioner) Run(hg *hypergraph.Hypergraph, coarsener Coarsener, refiner Refiner) (*Result, error) {
	startTime := time.Now()
	result := &Result{}

	p.logger.Info().
		Int("nodes", hg.NumNodes()).
		Int("edges", hg.NumEdges()).
		Int("k", p.cfg.K()).
		Float64("epsilon", p.cfg.Epsilon()).
		Msg("Starting multilevel partitioning")

	removed := p.RemoveLargeHyperedges(hg)
	result.RemovedEdges = len(removed)

	previousCut := math.MaxInt
	for vcycle := 0; vcycle < p.cfg.GlobalSearchIterations(); vcycle++ {
		start := time.Now()
		coarsener.Coarsen(p.cfg.MinimalNodeCount())
		result.Timings.Coarsening += time.Since(start)

		if vcycle == 0 {
			start = time.Now()
			attemptCuts, err := p.performInitialPartitioning(hg)
			if err != nil {
				return nil, err
			}
			result.AttemptCuts = attemptCuts
			result.Timings.InitialPartitioning = time.Since(start)
		}

		start = time.Now()
		coarsener.Uncoarsen(refiner)
		result.Timings.UncoarseningRefinement += time.Since(start)

		cut := hypergraph.Cut(hg)
		p.logger.Info().
			Int("vcycle", vcycle).
			Int("cut", cut).
			Msg("V-cycle completed")
		if err := p.assertf(cut <= previousCut,
			"uncoarsening worsened cut: %d > %d", cut, previousCut); err != nil {
			return nil, err
		}
		previousCut = cut
		result.VCycleCuts = append(result.VCycleCuts, cut)
	}

	unresolved, err := p.RestoreLargeHyperedges(hg, removed)
	if err != nil {
		return nil, err
	}
	result.UnresolvedEdges = unresolved

	result.Cut = hypergraph.Cut(hg)
	result.Imbalance = hypergraph.Imbalance(hg)
	result.RuntimeMS = time.Since(startTime).Milliseconds()

	p.logger.Info().
		Int("cut", result.Cut).
		Float64("imbalance", result.Imbalance).
		Int("unresolved_edges", len(unresolved)).
		Int64("runtime_ms", result.RuntimeMS).
		Msg("Partitioning completed")

	return result, nil
}
