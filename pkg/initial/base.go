package initial

import (
	"math"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// move undoes one accepted assignment.
type move struct {
	node hypergraph.NodeID
	from hypergraph.PartitionID
}

// Base holds the state shared by the initial partitioners: assign-once
// bookkeeping, the current cut, the best complete and balanced state seen
// so far and the pool of unassigned nodes.
//
// The best state is kept as a prefix of the move log; rolling back undoes
// every move after that prefix.
type Base struct {
	hg      *hypergraph.Hypergraph
	cfg     Config
	rng     *rand.Rand
	refiner partition.Refiner
	logger  zerolog.Logger

	moves      []move
	currentCut int
	bestCut    int
	bestMoves  int

	pool []hypergraph.NodeID
}

// NewBase creates a Base over hg. refiner may be nil.
func NewBase(hg *hypergraph.Hypergraph, cfg Config, rng *rand.Rand, refiner partition.Refiner, logger zerolog.Logger) *Base {
	return &Base{
		hg:      hg,
		cfg:     cfg,
		rng:     rng,
		refiner: refiner,
		logger:  logger,
		bestCut: math.MaxInt,
	}
}

// ResetPartitioning places every node into the unassigned block and clears
// the move log, the best state and the unassigned node pool.
func (b *Base) ResetPartitioning() {
	b.hg.ResetPartitioning()
	if b.cfg.UnassignedPart != hypergraph.InvalidPartition {
		for _, u := range b.hg.Nodes() {
			b.hg.SetNodePart(u, b.cfg.UnassignedPart)
		}
	}
	b.moves = b.moves[:0]
	b.currentCut = hypergraph.Cut(b.hg)
	b.bestCut = math.MaxInt
	b.bestMoves = 0

	b.pool = b.hg.Nodes()
	b.rng.Shuffle(len(b.pool), func(i, j int) { b.pool[i], b.pool[j] = b.pool[j], b.pool[i] })

	b.updateBestCut()
}

// AssignHypernodeToPartition moves the unassigned node u into block p. It
// fails without touching any state if u is already assigned or p would
// exceed its upper weight bound.
func (b *Base) AssignHypernodeToPartition(u hypergraph.NodeID, p hypergraph.PartitionID) bool {
	from := b.hg.PartID(u)
	if from != b.cfg.UnassignedPart || p == from {
		return false
	}
	if p < 0 || int(p) >= b.cfg.K {
		return false
	}
	if b.hg.PartWeight(p)+b.hg.NodeWeight(u) > b.cfg.UpperAllowedPartitionWeight[p] {
		return false
	}

	delta := b.applyMove(u, from, p)
	b.currentCut += delta
	b.moves = append(b.moves, move{node: u, from: from})
	b.updateBestCut()
	return true
}

// applyMove relocates u and returns the resulting change of the cut.
func (b *Base) applyMove(u hypergraph.NodeID, from, to hypergraph.PartitionID) int {
	hg := b.hg
	delta := 0
	for _, e := range hg.IncidentEdges(u) {
		if hg.Connectivity(e) > 1 {
			delta -= hg.EdgeWeight(e)
		}
	}
	switch {
	case from == hypergraph.InvalidPartition:
		hg.SetNodePart(u, to)
	case to == hypergraph.InvalidPartition:
		hg.UnsetNodePart(u)
	default:
		hg.ChangeNodePart(u, from, to)
	}
	for _, e := range hg.IncidentEdges(u) {
		if hg.Connectivity(e) > 1 {
			delta += hg.EdgeWeight(e)
		}
	}
	return delta
}

// updateBestCut records the current state if it is complete, balanced and
// strictly better than the best one.
func (b *Base) updateBestCut() {
	if b.currentCut >= b.bestCut || !b.checkFeasible() {
		return
	}
	b.bestCut = b.currentCut
	b.bestMoves = len(b.moves)
}

// RollbackToBestCut undoes all moves made after the best recorded state if
// that state has a lower cut than the current one, or if the current state
// is not feasible.
func (b *Base) RollbackToBestCut() {
	if b.bestCut == math.MaxInt {
		return
	}
	if b.bestCut >= b.currentCut && b.checkFeasible() {
		return
	}
	b.logger.Debug().
		Int("from_cut", b.currentCut).
		Int("to_cut", b.bestCut).
		Int("undone_moves", len(b.moves)-b.bestMoves).
		Msg("Rolling back to best cut")
	for i := len(b.moves) - 1; i >= b.bestMoves; i-- {
		m := b.moves[i]
		b.currentCut += b.applyMove(m.node, b.hg.PartID(m.node), m.from)
	}
	b.moves = b.moves[:b.bestMoves]
}

// GetUnassignedNode returns a random node that is still unassigned, or
// hypergraph.InvalidNode. The same node is returned until it is assigned.
func (b *Base) GetUnassignedNode() hypergraph.NodeID {
	for len(b.pool) > 0 {
		u := b.pool[len(b.pool)-1]
		if b.hg.PartID(u) == b.cfg.UnassignedPart {
			return u
		}
		b.pool = b.pool[:len(b.pool)-1]
	}
	return hypergraph.InvalidNode
}

// PerformRefinement runs one refinement call over all nodes.
func (b *Base) PerformRefinement() {
	if b.refiner == nil {
		return
	}
	if b.refiner.Refine(b.hg, b.hg.Nodes(), b.cfg.MaxUpperAllowedPartitionWeight()) {
		b.currentCut = hypergraph.Cut(b.hg)
	}
}

// Cut returns the cut of the current assignment.
func (b *Base) Cut() int { return b.currentCut }

// BestCut returns the best recorded cut, or math.MaxInt.
func (b *Base) BestCut() int { return b.bestCut }

// Assignment returns the block of every node of the dense hypergraph.
func (b *Base) Assignment() []hypergraph.PartitionID {
	assignment := make([]hypergraph.PartitionID, b.hg.InitialNumNodes())
	for u := range assignment {
		assignment[u] = b.hg.PartID(hypergraph.NodeID(u))
	}
	return assignment
}

// checkFeasible verifies that every node is assigned and every block is
// within its bound.
func (b *Base) checkFeasible() bool {
	if b.hg.NumAssignedNodes() != b.hg.NumNodes() {
		return false
	}
	for p := 0; p < b.cfg.K; p++ {
		if b.hg.PartWeight(hypergraph.PartitionID(p)) > b.cfg.UpperAllowedPartitionWeight[p] {
			return false
		}
	}
	return true
}
