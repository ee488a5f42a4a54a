package initial

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// Random assigns nodes in random order to a random block that can still
// take them.
type Random struct {
	refiner partition.Refiner
	logger  zerolog.Logger
}

// NewRandom creates a random partitioner. refiner may be nil.
func NewRandom(refiner partition.Refiner, logger zerolog.Logger) *Random {
	return &Random{refiner: refiner, logger: logger}
}

func (r *Random) Name() string { return "random" }

// Partition implements partition.InitialPartitioner.
func (r *Random) Partition(hg *hypergraph.Hypergraph, req partition.InitialRequest) ([]hypergraph.PartitionID, error) {
	rng := rand.New(rand.NewSource(req.Seed))
	cfg := NewConfig(req.K, req.Epsilon, hg.TotalWeight(), hypergraph.InvalidPartition)
	b := NewBase(hg, cfg, rng, r.refiner, r.logger)
	b.ResetPartitioning()

	for u := b.GetUnassignedNode(); u != hypergraph.InvalidNode; u = b.GetUnassignedNode() {
		assigned := false
		for _, p := range rng.Perm(cfg.K) {
			if b.AssignHypernodeToPartition(u, hypergraph.PartitionID(p)) {
				assigned = true
				break
			}
		}
		if !assigned {
			r.logger.Debug().Int("node", int(u)).Msg("No block can take node")
			return nil, ErrTargetUnreachable
		}
	}

	b.PerformRefinement()
	return b.Assignment(), nil
}
