// Package pipeline assembles the partitioner components selected by a
// Config and runs them on one hypergraph.
package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/coarsening"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hgrio"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/initial"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/refinement"
)

// Pipeline runs the multilevel partitioner with the components named in
// its configuration.
type Pipeline struct {
	cfg    *partition.Config
	logger zerolog.Logger
}

// Output contains the complete pipeline output
type Output struct {
	Hypergraph *hypergraph.Hypergraph
	Result     *partition.Result
	Coarsener  partition.Coarsener
	Refiner    partition.Refiner
	Elapsed    time.Duration
}

// New creates a pipeline over cfg.
func New(cfg *partition.Config, logger zerolog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *partition.Config { return p.cfg }

// RunFile reads an hMetis file and partitions it.
func (p *Pipeline) RunFile(path string) (*Output, error) {
	hg, err := hgrio.ReadHypergraphFile(path, p.cfg.K())
	if err != nil {
		return nil, err
	}
	p.cfg.Set("partition.graph_filename", path)
	return p.Run(hg)
}

// Run partitions hg in place.
func (p *Pipeline) Run(hg *hypergraph.Hypergraph) (*Output, error) {
	startTime := time.Now()

	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if hg.K() != p.cfg.K() {
		return nil, fmt.Errorf("hypergraph was built for k=%d, configuration has k=%d", hg.K(), p.cfg.K())
	}
	p.cfg.RecalculateBalanceConstraints(hg.TotalWeight())

	p.logger.Info().
		Int("nodes", hg.NumNodes()).
		Int("edges", hg.NumEdges()).
		Int("pins", hg.NumPins()).
		Int("total_weight", hg.TotalWeight()).
		Int("max_part_size", p.cfg.MaxPartSize()).
		Int("max_node_weight", p.cfg.MaxAllowedNodeWeight()).
		Msg("Hypergraph loaded")

	rng := rand.New(rand.NewSource(p.cfg.Seed()))
	tieBreaking, err := coarsening.NewTieBreakingPolicy(p.cfg.TieBreaking(), rng)
	if err != nil {
		return nil, err
	}

	refiner := refinement.NewGreedy(p.cfg.RefinementMaxPasses(), p.logger)
	rater := coarsening.NewRater(hg, p.cfg.MaxAllowedNodeWeight(), tieBreaking, p.cfg.CheckInvariants())
	coarsener := coarsening.NewHeavyEdgeCoarsener(hg, rater, p.cfg.MaxPartSize(), rng, p.logger)

	ip, err := NewInitialPartitioner(p.cfg, refiner, p.logger)
	if err != nil {
		return nil, err
	}

	result, err := partition.NewPartitioner(p.cfg, ip, rng, p.logger).Run(hg, coarsener, refiner)
	if err != nil {
		return nil, err
	}

	return &Output{
		Hypergraph: hg,
		Result:     result,
		Coarsener:  coarsener,
		Refiner:    refiner,
		Elapsed:    time.Since(startTime),
	}, nil
}

// NewInitialPartitioner builds the initial partitioning strategy named by
// initial.algorithm.
func NewInitialPartitioner(cfg *partition.Config, refiner partition.Refiner, logger zerolog.Logger) (partition.InitialPartitioner, error) {
	switch cfg.InitialAlgorithm() {
	case "growing":
		selector, err := initial.NewStartNodeSelector(cfg.StartNodes())
		if err != nil {
			return nil, err
		}
		return initial.NewGrowing(selector, refiner, cfg.UnassignedPart(), logger), nil
	case "random":
		return initial.NewRandom(refiner, logger), nil
	case "hmetis":
		return initial.NewHMetis(cfg.HMetisPath(), logger), nil
	default:
		return nil, fmt.Errorf("unknown initial partitioning algorithm %q", cfg.InitialAlgorithm())
	}
}
