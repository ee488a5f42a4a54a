package coarsening

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// Rating is the outcome of rating a contraction source. Target and Value
// are only meaningful when Valid is set.
type Rating struct {
	Target hypergraph.NodeID
	Value  float64
	Valid  bool
}

// Rater scores contraction partners with the heavy-edge metric
//
//	r(u,v) = sum over shared edges e of w(e)/(|e|-1), divided by w(u)*w(v)
//
// restricted to partners in the same block whose merged weight stays
// within the node weight bound. The scratch accumulator, stack and visited
// set are sized by the initial node count and are empty between calls.
type Rater struct {
	hg              *hypergraph.Hypergraph
	maxNodeWeight   int
	tieBreaking     TieBreakingPolicy
	checkInvariants bool

	tmpRatings  []float64
	usedEntries []hypergraph.NodeID
	visited     *bitset.BitSet
}

// NewRater creates a rater bound to hg.
func NewRater(hg *hypergraph.Hypergraph, maxNodeWeight int, tieBreaking TieBreakingPolicy, checkInvariants bool) *Rater {
	n := hg.InitialNumNodes()
	return &Rater{
		hg:              hg,
		maxNodeWeight:   maxNodeWeight,
		tieBreaking:     tieBreaking,
		checkInvariants: checkInvariants,
		tmpRatings:      make([]float64, n),
		usedEntries:     make([]hypergraph.NodeID, 0, n),
		visited:         bitset.New(uint(n)),
	}
}

// Rate returns the best contraction partner of u. The rating is invalid if
// no neighbor satisfies the block and weight constraints.
func (r *Rater) Rate(u hypergraph.NodeID) Rating {
	if r.checkInvariants && len(r.usedEntries) != 0 {
		panic(errors.AssertionFailedf("rater scratch state not empty before rating %d", u))
	}

	hg := r.hg
	part := hg.PartID(u)
	for _, e := range hg.IncidentEdges(u) {
		size := hg.EdgeSize(e)
		if size < 2 {
			continue
		}
		score := float64(hg.EdgeWeight(e)) / float64(size-1)
		for _, v := range hg.Pins(e) {
			if v == u || !r.belowThresholdNodeWeight(u, v) || hg.PartID(v) != part {
				continue
			}
			r.tmpRatings[v] += score
			if !r.visited.Test(uint(v)) {
				r.visited.Set(uint(v))
				r.usedEntries = append(r.usedEntries, v)
			}
		}
	}

	var ret Rating
	found := false
	maxRating := 0.0
	target := hypergraph.InvalidNode
	for len(r.usedEntries) > 0 {
		v := r.usedEntries[len(r.usedEntries)-1]
		r.usedEntries = r.usedEntries[:len(r.usedEntries)-1]

		tmp := r.tmpRatings[v] / float64(hg.NodeWeight(u)*hg.NodeWeight(v))
		r.tmpRatings[v] = 0
		r.visited.Clear(uint(v))
		if !found || r.acceptRating(tmp, maxRating) {
			found = true
			maxRating = tmp
			target = v
		}
	}

	if found {
		ret = Rating{Target: target, Value: maxRating, Valid: true}
		if r.checkInvariants && hg.PartID(target) != part {
			panic(errors.AssertionFailedf("representative %d and contraction target %d are in different blocks", u, target))
		}
	}
	return ret
}

// MaxNodeWeight returns the weight bound for contracted nodes.
func (r *Rater) MaxNodeWeight() int { return r.maxNodeWeight }

// TouchedCount returns the number of scratch entries currently in use.
// It is zero whenever Rate is not running.
func (r *Rater) TouchedCount() int {
	return len(r.usedEntries) + int(r.visited.Count())
}

func (r *Rater) belowThresholdNodeWeight(u, v hypergraph.NodeID) bool {
	return r.hg.NodeWeight(u)+r.hg.NodeWeight(v) <= r.maxNodeWeight
}

func (r *Rater) acceptRating(tmp, maxRating float64) bool {
	return maxRating < tmp || (maxRating == tmp && r.tieBreaking.AcceptEqual())
}
