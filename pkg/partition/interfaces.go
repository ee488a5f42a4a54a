package partition

import (
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

//go:generate mockgen -source=interfaces.go -destination=mock_partition.go -package=partition

// Coarsener contracts a hypergraph in place and later undoes the
// contractions while a Refiner improves the partition level by level.
type Coarsener interface {
	// Coarsen contracts until at most minNodes nodes remain or no further
	// contraction is possible.
	Coarsen(minNodes int)
	// Uncoarsen reverts all contractions of the last Coarsen call.
	Uncoarsen(refiner Refiner)
	PolicyString() string
	Stats() *Stats
}

// Refiner locally improves the partition around the given nodes. It must
// never increase the cut and never push a block above maxPartWeight.
type Refiner interface {
	Refine(hg *hypergraph.Hypergraph, nodes []hypergraph.NodeID, maxPartWeight int) bool
	PolicyString() string
	Stats() *Stats
}

// InitialRequest carries the per-attempt parameters handed to an
// InitialPartitioner.
type InitialRequest struct {
	K       int
	Epsilon float64
	Seed    int64
	// BalanceFactor is the strategy specific imbalance parameter derived
	// from Epsilon for strategies with a known worst-case balance formula.
	BalanceFactor float64
}

// InitialPartitioner computes a k-way partition of a hypergraph whose nodes
// are numbered 0..n-1. The returned slice is indexed by node ID.
type InitialPartitioner interface {
	Partition(hg *hypergraph.Hypergraph, req InitialRequest) ([]hypergraph.PartitionID, error)
	Name() string
}
