package initial

import (
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// Growing grows all blocks simultaneously from one start node each, in
// breadth-first order through the hyperedges. Blocks take turns in
// ascending order; a block that can no longer grow is disabled.
type Growing struct {
	startNodes     StartNodeSelector
	refiner        partition.Refiner
	unassignedPart hypergraph.PartitionID
	logger         zerolog.Logger
}

// NewGrowing creates a growing partitioner. unassignedPart is the block
// all nodes start in, or hypergraph.InvalidPartition.
func NewGrowing(startNodes StartNodeSelector, refiner partition.Refiner, unassignedPart hypergraph.PartitionID, logger zerolog.Logger) *Growing {
	return &Growing{
		startNodes:     startNodes,
		refiner:        refiner,
		unassignedPart: unassignedPart,
		logger:         logger,
	}
}

func (g *Growing) Name() string { return "growing_" + g.startNodes.Name() }

// Partition implements partition.InitialPartitioner.
func (g *Growing) Partition(hg *hypergraph.Hypergraph, req partition.InitialRequest) ([]hypergraph.PartitionID, error) {
	rng := rand.New(rand.NewSource(req.Seed))
	cfg := NewConfig(req.K, req.Epsilon, hg.TotalWeight(), g.unassignedPart)
	if cfg.UnassignedPart >= hypergraph.PartitionID(cfg.K) {
		return nil, errors.Newf("unassigned block %d is not a block of a %d-way partition", cfg.UnassignedPart, cfg.K)
	}
	b := NewBase(hg, cfg, rng, g.refiner, g.logger)
	run := newGrowingRun(b, g.startNodes)
	if err := run.grow(); err != nil {
		return nil, err
	}
	return b.Assignment(), nil
}

// growingRun is the state of one growing pass.
type growingRun struct {
	*Base
	startNodes StartNodeSelector

	queues           [][]hypergraph.NodeID
	enabled          []bool
	inQueue          *bitset.BitSet // (block, node)
	hyperedgeInQueue *bitset.BitSet // (block, edge)
}

func newGrowingRun(b *Base, startNodes StartNodeSelector) *growingRun {
	k := uint(b.cfg.K)
	return &growingRun{
		Base:             b,
		startNodes:       startNodes,
		queues:           make([][]hypergraph.NodeID, b.cfg.K),
		enabled:          make([]bool, b.cfg.K),
		inQueue:          bitset.New(k * uint(b.hg.InitialNumNodes())),
		hyperedgeInQueue: bitset.New(k * uint(b.hg.InitialNumEdges())),
	}
}

func (r *growingRun) nodeBit(p hypergraph.PartitionID, u hypergraph.NodeID) uint {
	return uint(int(p)*r.hg.InitialNumNodes() + int(u))
}

func (r *growingRun) edgeBit(p hypergraph.PartitionID, e hypergraph.EdgeID) uint {
	return uint(int(p)*r.hg.InitialNumEdges() + int(e))
}

// pushIncidentHypernodes enqueues the unassigned neighbors of u for u's
// block. Each hyperedge is expanded at most once per block.
func (r *growingRun) pushIncidentHypernodes(u hypergraph.NodeID) {
	p := r.hg.PartID(u)
	for _, e := range r.hg.IncidentEdges(u) {
		if r.hyperedgeInQueue.Test(r.edgeBit(p, e)) {
			continue
		}
		for _, v := range r.hg.Pins(e) {
			if r.hg.PartID(v) == r.cfg.UnassignedPart && !r.inQueue.Test(r.nodeBit(p, v)) {
				r.queues[p] = append(r.queues[p], v)
				r.inQueue.Set(r.nodeBit(p, v))
			}
		}
		r.hyperedgeInQueue.Set(r.edgeBit(p, e))
	}
}

// pop returns the first queued node of block p that is still unassigned.
func (r *growingRun) pop(p int) hypergraph.NodeID {
	for len(r.queues[p]) > 0 {
		u := r.queues[p][0]
		r.queues[p] = r.queues[p][1:]
		if r.hg.PartID(u) == r.cfg.UnassignedPart {
			return u
		}
	}
	return hypergraph.InvalidNode
}

func (r *growingRun) grow() error {
	r.ResetPartitioning()
	r.inQueue.ClearAll()
	r.hyperedgeInQueue.ClearAll()
	for p := range r.queues {
		r.queues[p] = r.queues[p][:0]
		r.enabled[p] = true
	}

	assignedWeight := 0
	if unassigned := r.cfg.UnassignedPart; unassigned != hypergraph.InvalidPartition {
		r.enabled[unassigned] = false
		// nodes left in the unassigned block count as placed once the other
		// blocks hold all but (1-epsilon) of its perfect weight
		assignedWeight = int(float64(r.cfg.PerfectBalancePartitionWeight[unassigned]) * (1.0 - r.cfg.Epsilon))
	}

	for p, u := range r.startNodes.StartNodes(r.hg, r.cfg.K, r.rng) {
		r.queues[p] = append(r.queues[p], u)
		r.inQueue.Set(r.nodeBit(hypergraph.PartitionID(p), u))
	}

	for assignedWeight < r.hg.TotalWeight() {
		everyPartDisabled := true
		for p := 0; p < r.cfg.K; p++ {
			if !r.enabled[p] {
				continue
			}
			everyPartDisabled = false
			block := hypergraph.PartitionID(p)

			u := r.pop(p)
			if u == hypergraph.InvalidNode {
				u = r.GetUnassignedNode()
			}
			if u == hypergraph.InvalidNode {
				r.enabled[p] = false
				continue
			}

			r.inQueue.Set(r.nodeBit(block, u))
			if r.AssignHypernodeToPartition(u, block) {
				assignedWeight += r.hg.NodeWeight(u)
				r.pushIncidentHypernodes(u)
			} else if len(r.queues[p]) == 0 {
				r.enabled[p] = false
			}
		}
		if everyPartDisabled {
			break
		}
	}

	r.RollbackToBestCut()
	if !r.checkFeasible() {
		r.logger.Debug().
			Int("assigned_nodes", r.hg.NumAssignedNodes()).
			Int("nodes", r.hg.NumNodes()).
			Msg("Growing stopped before reaching a feasible partition")
		return ErrTargetUnreachable
	}
	r.PerformRefinement()
	return nil
}
