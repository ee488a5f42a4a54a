package hypergraph

import (
	"math"
)

// Cut returns the total weight of enabled edges spanning more than one block.
func Cut(h *Hypergraph) int {
	cut := 0
	for e := range h.edges {
		if h.edges[e].enabled && h.connectivity[e] > 1 {
			cut += h.edges[e].weight
		}
	}
	return cut
}

// CutOf evaluates the cut of an assignment given by node ID without
// touching the partition stored in h.
func CutOf(h *Hypergraph, assignment []PartitionID) int {
	cut := 0
	for e := range h.edges {
		if !h.edges[e].enabled {
			continue
		}
		pins := h.edges[e].pins
		if len(pins) == 0 {
			continue
		}
		first := assignment[pins[0]]
		for _, pin := range pins[1:] {
			if assignment[pin] != first {
				cut += h.edges[e].weight
				break
			}
		}
	}
	return cut
}

// PerfectBalanceWeight returns ceil(totalWeight / k).
func PerfectBalanceWeight(totalWeight, k int) int {
	return int(math.Ceil(float64(totalWeight) / float64(k)))
}

// Imbalance returns max_p weight(p) / ceil(W/k) - 1 for the partition in h.
func Imbalance(h *Hypergraph) float64 {
	heaviest := 0
	for _, w := range h.partWeights {
		heaviest = max(heaviest, w)
	}
	return imbalance(heaviest, h.totalWeight, h.k)
}

// ImbalanceOf returns the imbalance of an assignment given by node ID.
func ImbalanceOf(h *Hypergraph, assignment []PartitionID) float64 {
	weights := make([]int, h.k)
	for u := range h.nodes {
		if h.nodes[u].enabled && assignment[u] != InvalidPartition {
			weights[assignment[u]] += h.nodes[u].weight
		}
	}
	heaviest := 0
	for _, w := range weights {
		heaviest = max(heaviest, w)
	}
	return imbalance(heaviest, h.totalWeight, h.k)
}

func imbalance(heaviest, totalWeight, k int) float64 {
	perfect := PerfectBalanceWeight(totalWeight, k)
	if perfect == 0 {
		return 0
	}
	return float64(heaviest)/float64(perfect) - 1.0
}
