package partition

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// denseMapping is the bijection between the live nodes of a coarsened
// hypergraph and the dense ID space 0..n-1 used by initial partitioners.
type denseMapping struct {
	toDense  []hypergraph.NodeID // indexed by coarse ID, InvalidNode if disabled
	toCoarse []hypergraph.NodeID // indexed by dense ID
}

func newDenseMapping(hg *hypergraph.Hypergraph) denseMapping {
	m := denseMapping{
		toDense:  make([]hypergraph.NodeID, hg.InitialNumNodes()),
		toCoarse: hg.Nodes(),
	}
	for i := range m.toDense {
		m.toDense[i] = hypergraph.InvalidNode
	}
	for dense, coarse := range m.toCoarse {
		m.toDense[coarse] = hypergraph.NodeID(dense)
	}
	return m
}

// compactHypergraph copies the live part of hg into a hypergraph over the
// dense ID space, keeping node and edge weights.
func compactHypergraph(hg *hypergraph.Hypergraph, m denseMapping) (*hypergraph.Hypergraph, error) {
	nodeWeights := make([]int, len(m.toCoarse))
	for dense, coarse := range m.toCoarse {
		nodeWeights[dense] = hg.NodeWeight(coarse)
	}

	edges := hg.Edges()
	edgeIndex := make([]int, 0, len(edges)+1)
	edgeWeights := make([]int, 0, len(edges))
	pins := make([]hypergraph.NodeID, 0, hg.NumPins())
	edgeIndex = append(edgeIndex, 0)
	for _, e := range edges {
		for _, pin := range hg.Pins(e) {
			pins = append(pins, m.toDense[pin])
		}
		edgeIndex = append(edgeIndex, len(pins))
		edgeWeights = append(edgeWeights, hg.EdgeWeight(e))
	}

	return hypergraph.New(len(m.toCoarse), len(edges), edgeIndex, pins, hg.K(),
		hypergraph.WithNodeWeights(nodeWeights),
		hypergraph.WithEdgeWeights(edgeWeights))
}

// RecursiveBisectionBalanceFactor inverts the worst-case block weight of a
// recursive bisection partitioner, 0.5+(b/100)^(log2 k) per level, so that
// the realized bound equals (1+epsilon)*ceil(n/k).
func RecursiveBisectionBalanceFactor(k int, epsilon float64, numNodes int) float64 {
	exp := 1.0 / math.Log2(float64(k))
	share := math.Ceil(float64(numNodes)/float64(k)) / float64(numNodes)
	return 50.0 * (2*math.Pow(1+epsilon, exp)*math.Pow(share, exp) - 1)
}

// performInitialPartitioning runs the configured strategy on the coarsest
// hypergraph for the configured number of attempts and commits the
// assignment with the smallest cut. It returns the cut of every attempt.
func (p *Partitioner) performInitialPartitioning(hg *hypergraph.Hypergraph) ([]int, error) {
	mapping := newDenseMapping(hg)
	dense, err := compactHypergraph(hg, mapping)
	if err != nil {
		return nil, errors.Wrap(err, "building coarse hypergraph for initial partitioning")
	}

	numUnconnected := 0
	for _, u := range dense.Nodes() {
		if dense.NodeDegree(u) == 0 {
			numUnconnected++
		}
	}
	p.logger.Info().
		Str("algorithm", p.initial.Name()).
		Int("nodes", dense.NumNodes()).
		Int("edges", dense.NumEdges()).
		Int("unconnected_nodes", numUnconnected).
		Msg("Starting initial partitioning")

	req := InitialRequest{
		K:             p.cfg.K(),
		Epsilon:       p.cfg.Epsilon(),
		BalanceFactor: RecursiveBisectionBalanceFactor(p.cfg.K(), p.cfg.Epsilon(), hg.InitialNumNodes()),
	}

	bestCut := math.MaxInt
	var best []hypergraph.PartitionID
	var attemptCuts []int
	var lastErr error

	for attempt := 0; attempt < p.cfg.InitialPartitioningAttempts(); attempt++ {
		req.Seed = p.rng.Int63()
		assignment, err := p.initial.Partition(dense, req)
		if err != nil {
			p.logger.Warn().Err(err).Int("attempt", attempt).Int64("seed", req.Seed).Msg("Initial partitioning attempt failed")
			lastErr = err
			continue
		}
		if err := validateAssignment(dense, assignment); err != nil {
			return nil, err
		}

		cut := hypergraph.CutOf(dense, assignment)
		attemptCuts = append(attemptCuts, cut)
		p.logger.Debug().
			Int("attempt", attempt).
			Int64("seed", req.Seed).
			Int("cut", cut).
			Float64("imbalance", hypergraph.ImbalanceOf(dense, assignment)).
			Msg("Initial partitioning attempt")
		if cut < bestCut {
			p.logger.Debug().Int("attempt", attempt).Int("from", bestCut).Int("to", cut).Msg("Attempt improved initial cut")
			best = assignment
			bestCut = cut
		}
	}

	if best == nil {
		if lastErr != nil {
			return nil, errors.Mark(
				errors.Wrapf(lastErr, "no initial partition after %d attempts", p.cfg.InitialPartitioningAttempts()),
				ErrNoInitialPartition)
		}
		return nil, ErrNoInitialPartition
	}

	for dense, block := range best {
		hg.SetNodePart(mapping.toCoarse[dense], block)
	}
	if err := p.assertf(hypergraph.Cut(hg) == bestCut,
		"cut induced by hypergraph (%d) does not equal best initial cut (%d)", hypergraph.Cut(hg), bestCut); err != nil {
		return nil, err
	}

	samples := make([]float64, len(attemptCuts))
	for i, c := range attemptCuts {
		samples[i] = float64(c)
	}
	event := p.logger.Info().
		Int("best_cut", bestCut).
		Int("successful_attempts", len(attemptCuts)).
		Float64("mean_cut", stat.Mean(samples, nil))
	if len(samples) > 1 {
		event = event.Float64("stddev_cut", stat.StdDev(samples, nil))
	}
	event.Msg("Initial partitioning completed")

	return attemptCuts, nil
}

func validateAssignment(hg *hypergraph.Hypergraph, assignment []hypergraph.PartitionID) error {
	if len(assignment) != hg.NumNodes() {
		return errors.Wrapf(ErrInvalidAssignment, "listing has %d entries for %d nodes", len(assignment), hg.NumNodes())
	}
	for u, block := range assignment {
		if block < 0 || int(block) >= hg.K() {
			return errors.Wrapf(ErrInvalidAssignment, "node %d assigned to block %d", u, block)
		}
	}
	return nil
}
