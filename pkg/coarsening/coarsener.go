package coarsening

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// HeavyEdgeCoarsener contracts each node with its best heavy-edge rated
// partner, pass by pass, and keeps the contraction history for
// uncoarsening.
type HeavyEdgeCoarsener struct {
	hg            *hypergraph.Hypergraph
	rater         *Rater
	maxPartWeight int
	rng           *rand.Rand
	logger        zerolog.Logger
	history       []hypergraph.Memento
	levels        []int // history length at the end of each pass
	stats         *partition.Stats
}

// NewHeavyEdgeCoarsener creates a coarsener operating on hg. maxPartWeight
// is handed to the refiner during uncoarsening.
func NewHeavyEdgeCoarsener(hg *hypergraph.Hypergraph, rater *Rater, maxPartWeight int, rng *rand.Rand, logger zerolog.Logger) *HeavyEdgeCoarsener {
	return &HeavyEdgeCoarsener{
		hg:            hg,
		rater:         rater,
		maxPartWeight: maxPartWeight,
		rng:           rng,
		logger:        logger,
		stats:         partition.NewStats(),
	}
}

// Coarsen contracts until at most minNodes nodes remain or a whole pass
// finds no valid contraction partner.
func (c *HeavyEdgeCoarsener) Coarsen(minNodes int) {
	startTime := time.Now()
	startNodes := c.hg.NumNodes()
	c.history = c.history[:0]
	c.levels = c.levels[:0]

	for c.hg.NumNodes() > minNodes {
		contracted := 0
		nodes := c.hg.Nodes()
		c.rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

		for _, u := range nodes {
			if c.hg.NumNodes() <= minNodes {
				break
			}
			if !c.hg.NodeIsEnabled(u) {
				continue
			}
			rating := c.rater.Rate(u)
			if !rating.Valid {
				continue
			}
			c.history = append(c.history, c.hg.Contract(u, rating.Target))
			contracted++
		}

		if contracted == 0 {
			break
		}
		c.levels = append(c.levels, len(c.history))
		c.logger.Debug().
			Int("level", len(c.levels)).
			Int("contractions", contracted).
			Int("nodes", c.hg.NumNodes()).
			Msg("Coarsening pass completed")
	}

	c.stats.Add("contractions", float64(len(c.history)))
	c.stats.Add("levels", float64(len(c.levels)))
	c.logger.Info().
		Int("from_nodes", startNodes).
		Int("to_nodes", c.hg.NumNodes()).
		Int("levels", len(c.levels)).
		Int64("runtime_ms", time.Since(startTime).Milliseconds()).
		Msg("Coarsening completed")
}

// Uncoarsen reverts the contractions in reverse order and refines around
// each restored pair.
func (c *HeavyEdgeCoarsener) Uncoarsen(refiner partition.Refiner) {
	startTime := time.Now()
	improved := 0
	for i := len(c.history) - 1; i >= 0; i-- {
		m := c.history[i]
		c.hg.Uncontract(m)
		if refiner.Refine(c.hg, []hypergraph.NodeID{m.U, m.V}, c.maxPartWeight) {
			improved++
		}
	}
	c.history = c.history[:0]
	c.levels = c.levels[:0]

	c.stats.Add("improving_refinements", float64(improved))
	c.logger.Info().
		Int("nodes", c.hg.NumNodes()).
		Int("improving_refinements", improved).
		Int64("runtime_ms", time.Since(startTime).Milliseconds()).
		Msg("Uncoarsening completed")
}

func (c *HeavyEdgeCoarsener) PolicyString() string {
	return fmt.Sprintf(" coarsener=heavy_edge tie_breaking=%s max_node_weight=%d",
		c.rater.tieBreaking.Name(), c.rater.MaxNodeWeight())
}

func (c *HeavyEdgeCoarsener) Stats() *partition.Stats { return c.stats }
