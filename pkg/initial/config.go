package initial

import (
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// Config holds the balance constraints of one initial partitioning run.
type Config struct {
	K       int
	Epsilon float64
	// UnassignedPart is the block every node starts in, or
	// hypergraph.InvalidPartition to start with all nodes unassigned.
	UnassignedPart                hypergraph.PartitionID
	PerfectBalancePartitionWeight []int
	UpperAllowedPartitionWeight   []int
}

// NewConfig derives perfect and upper block weights for a hypergraph of
// total weight totalWeight.
func NewConfig(k int, epsilon float64, totalWeight int, unassigned hypergraph.PartitionID) Config {
	perfect := hypergraph.PerfectBalanceWeight(totalWeight, k)
	upper := int((1.0 + epsilon) * float64(perfect))
	cfg := Config{
		K:                             k,
		Epsilon:                       epsilon,
		UnassignedPart:                unassigned,
		PerfectBalancePartitionWeight: make([]int, k),
		UpperAllowedPartitionWeight:   make([]int, k),
	}
	for i := 0; i < k; i++ {
		cfg.PerfectBalancePartitionWeight[i] = perfect
		cfg.UpperAllowedPartitionWeight[i] = upper
	}
	return cfg
}

// MaxUpperAllowedPartitionWeight returns the largest per-block bound.
func (c Config) MaxUpperAllowedPartitionWeight() int {
	m := 0
	for _, w := range c.UpperAllowedPartitionWeight {
		m = max(m, w)
	}
	return m
}
