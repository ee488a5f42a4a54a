package refinement

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// Greedy moves nodes to the block with the largest positive cut gain as
// long as the target block stays within the weight bound. A move is only
// taken when it strictly lowers the cut, so the cut never increases.
type Greedy struct {
	maxPasses int
	logger    zerolog.Logger
	stats     *partition.Stats
}

// NewGreedy creates a refiner making at most maxPasses sweeps per call.
func NewGreedy(maxPasses int, logger zerolog.Logger) *Greedy {
	return &Greedy{
		maxPasses: max(1, maxPasses),
		logger:    logger,
		stats:     partition.NewStats(),
	}
}

// Refine sweeps over nodes until a pass makes no move. It reports whether
// the cut was improved.
func (g *Greedy) Refine(hg *hypergraph.Hypergraph, nodes []hypergraph.NodeID, maxPartWeight int) bool {
	improved := false
	for pass := 0; pass < g.maxPasses; pass++ {
		moves := 0
		for _, u := range nodes {
			if !hg.NodeIsEnabled(u) || hg.PartID(u) == hypergraph.InvalidPartition {
				continue
			}
			to, gain := bestMove(hg, u, maxPartWeight)
			if gain <= 0 {
				continue
			}
			hg.ChangeNodePart(u, hg.PartID(u), to)
			g.stats.Add("moves", 1)
			g.stats.Add("gain", float64(gain))
			moves++
		}
		g.stats.Add("passes", 1)
		if moves == 0 {
			break
		}
		improved = true
		g.logger.Trace().Int("pass", pass).Int("moves", moves).Msg("Refinement pass")
	}
	return improved
}

// bestMove returns the block whose selection for u reduces the cut the
// most, together with that reduction.
func bestMove(hg *hypergraph.Hypergraph, u hypergraph.NodeID, maxPartWeight int) (hypergraph.PartitionID, int) {
	from := hg.PartID(u)
	weight := hg.NodeWeight(u)

	best := from
	bestGain := 0
	for block := 0; block < hg.K(); block++ {
		to := hypergraph.PartitionID(block)
		if to == from || hg.PartWeight(to)+weight > maxPartWeight {
			continue
		}
		if gain := moveGain(hg, u, from, to); gain > bestGain {
			best = to
			bestGain = gain
		}
	}
	return best, bestGain
}

// moveGain is the cut reduction of moving u from one block to another.
func moveGain(hg *hypergraph.Hypergraph, u hypergraph.NodeID, from, to hypergraph.PartitionID) int {
	gain := 0
	for _, e := range hg.IncidentEdges(u) {
		if hg.EdgeSize(e) < 2 {
			continue
		}
		w := hg.EdgeWeight(e)
		cutBefore := hg.Connectivity(e) > 1

		connAfter := hg.Connectivity(e)
		if hg.PinCountInPart(e, from) == 1 {
			connAfter--
		}
		if hg.PinCountInPart(e, to) == 0 {
			connAfter++
		}
		cutAfter := connAfter > 1

		switch {
		case cutBefore && !cutAfter:
			gain += w
		case !cutBefore && cutAfter:
			gain -= w
		}
	}
	return gain
}

func (g *Greedy) PolicyString() string {
	return fmt.Sprintf(" refiner=greedy max_passes=%d", g.maxPasses)
}

func (g *Greedy) Stats() *partition.Stats { return g.stats }
