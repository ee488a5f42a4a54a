package hypergraph

import (
	"fmt"
)

// NodeID identifies a hypernode. IDs are dense and stable for the lifetime
// of a Hypergraph; contraction disables nodes instead of renumbering them.
type NodeID int

// EdgeID identifies a hyperedge.
type EdgeID int

// PartitionID identifies a block of the partition.
type PartitionID int

const (
	// InvalidPartition marks an unassigned hypernode.
	InvalidPartition PartitionID = -1
	// InvalidNode is returned where no hypernode could be found.
	InvalidNode NodeID = -1
)

type hypernode struct {
	edges   []EdgeID
	weight  int
	part    PartitionID
	enabled bool
}

type hyperedge struct {
	pins    []NodeID
	weight  int
	enabled bool
}

// Hypergraph is a weighted hypergraph with an attached k-way partition.
// Pin counts per block, edge connectivity and block weights are maintained
// incrementally by every partition-changing operation.
type Hypergraph struct {
	nodes []hypernode
	edges []hyperedge
	k     int

	pinCounts    []int // pinCounts[e*k+p] = pins of e in block p
	connectivity []int // number of blocks with at least one pin of e
	partWeights  []int
	partSizes    []int

	numNodes    int
	numEdges    int
	numPins     int
	totalWeight int
}

// Option customizes hypergraph construction.
type Option func(*options)

type options struct {
	nodeWeights []int
	edgeWeights []int
}

// WithNodeWeights sets per-node weights (default 1).
func WithNodeWeights(weights []int) Option {
	return func(o *options) { o.nodeWeights = weights }
}

// WithEdgeWeights sets per-edge weights (default 1).
func WithEdgeWeights(weights []int) Option {
	return func(o *options) { o.edgeWeights = weights }
}

// New builds a hypergraph from a CSR style incidence description: edge e
// owns pins[edgeIndex[e]:edgeIndex[e+1]]. k is the number of blocks the
// hypergraph will be partitioned into.
func New(numNodes, numEdges int, edgeIndex []int, pins []NodeID, k int, opts ...Option) (*Hypergraph, error) {
	if numNodes < 0 || numEdges < 0 {
		return nil, fmt.Errorf("negative size: nodes=%d edges=%d", numNodes, numEdges)
	}
	if k < 1 {
		return nil, fmt.Errorf("number of blocks must be positive: %d", k)
	}
	if len(edgeIndex) != numEdges+1 {
		return nil, fmt.Errorf("edge index has length %d, want %d", len(edgeIndex), numEdges+1)
	}
	if edgeIndex[numEdges] != len(pins) {
		return nil, fmt.Errorf("edge index sentinel %d does not match pin count %d", edgeIndex[numEdges], len(pins))
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.nodeWeights != nil && len(o.nodeWeights) != numNodes {
		return nil, fmt.Errorf("got %d node weights for %d nodes", len(o.nodeWeights), numNodes)
	}
	if o.edgeWeights != nil && len(o.edgeWeights) != numEdges {
		return nil, fmt.Errorf("got %d edge weights for %d edges", len(o.edgeWeights), numEdges)
	}

	h := &Hypergraph{
		nodes:        make([]hypernode, numNodes),
		edges:        make([]hyperedge, numEdges),
		k:            k,
		pinCounts:    make([]int, numEdges*k),
		connectivity: make([]int, numEdges),
		partWeights:  make([]int, k),
		partSizes:    make([]int, k),
		numNodes:     numNodes,
		numEdges:     numEdges,
		numPins:      len(pins),
	}

	for u := range h.nodes {
		w := 1
		if o.nodeWeights != nil {
			w = o.nodeWeights[u]
		}
		if w < 1 {
			return nil, fmt.Errorf("node %d has non-positive weight %d", u, w)
		}
		h.nodes[u] = hypernode{weight: w, part: InvalidPartition, enabled: true}
		h.totalWeight += w
	}

	for e := 0; e < numEdges; e++ {
		begin, end := edgeIndex[e], edgeIndex[e+1]
		if begin > end {
			return nil, fmt.Errorf("edge %d has decreasing index range [%d,%d)", e, begin, end)
		}
		w := 1
		if o.edgeWeights != nil {
			w = o.edgeWeights[e]
		}
		if w < 1 {
			return nil, fmt.Errorf("edge %d has non-positive weight %d", e, w)
		}
		edgePins := make([]NodeID, end-begin)
		copy(edgePins, pins[begin:end])
		for _, pin := range edgePins {
			if pin < 0 || int(pin) >= numNodes {
				return nil, fmt.Errorf("edge %d references invalid node %d", e, pin)
			}
			h.nodes[pin].edges = append(h.nodes[pin].edges, EdgeID(e))
		}
		h.edges[e] = hyperedge{pins: edgePins, weight: w, enabled: true}
	}

	return h, nil
}

// K returns the number of blocks.
func (h *Hypergraph) K() int { return h.k }

// InitialNumNodes returns the number of nodes the hypergraph was built with.
func (h *Hypergraph) InitialNumNodes() int { return len(h.nodes) }

// InitialNumEdges returns the number of edges the hypergraph was built with.
func (h *Hypergraph) InitialNumEdges() int { return len(h.edges) }

// NumNodes returns the number of currently enabled nodes.
func (h *Hypergraph) NumNodes() int { return h.numNodes }

// NumEdges returns the number of currently enabled edges.
func (h *Hypergraph) NumEdges() int { return h.numEdges }

// NumPins returns the number of pins of all enabled edges.
func (h *Hypergraph) NumPins() int { return h.numPins }

// TotalWeight returns the summed weight of all enabled nodes.
func (h *Hypergraph) TotalWeight() int { return h.totalWeight }

// Nodes returns the IDs of all enabled nodes in ascending order.
func (h *Hypergraph) Nodes() []NodeID {
	ids := make([]NodeID, 0, h.numNodes)
	for u := range h.nodes {
		if h.nodes[u].enabled {
			ids = append(ids, NodeID(u))
		}
	}
	return ids
}

// Edges returns the IDs of all enabled edges in ascending order.
func (h *Hypergraph) Edges() []EdgeID {
	ids := make([]EdgeID, 0, h.numEdges)
	for e := range h.edges {
		if h.edges[e].enabled {
			ids = append(ids, EdgeID(e))
		}
	}
	return ids
}

// IncidentEdges returns the enabled edges incident to u. The slice is owned
// by the hypergraph and must not be modified.
func (h *Hypergraph) IncidentEdges(u NodeID) []EdgeID { return h.nodes[u].edges }

// Pins returns the pins of e. The slice is owned by the hypergraph.
func (h *Hypergraph) Pins(e EdgeID) []NodeID { return h.edges[e].pins }

func (h *Hypergraph) EdgeSize(e EdgeID) int       { return len(h.edges[e].pins) }
func (h *Hypergraph) EdgeWeight(e EdgeID) int     { return h.edges[e].weight }
func (h *Hypergraph) NodeWeight(u NodeID) int     { return h.nodes[u].weight }
func (h *Hypergraph) NodeDegree(u NodeID) int     { return len(h.nodes[u].edges) }
func (h *Hypergraph) NodeIsEnabled(u NodeID) bool { return h.nodes[u].enabled }
func (h *Hypergraph) EdgeIsEnabled(e EdgeID) bool { return h.edges[e].enabled }

// PartID returns the block of u, or InvalidPartition.
func (h *Hypergraph) PartID(u NodeID) PartitionID { return h.nodes[u].part }

// PartWeight returns the summed weight of the enabled nodes in block p.
func (h *Hypergraph) PartWeight(p PartitionID) int { return h.partWeights[p] }

// PartSize returns the number of enabled nodes in block p.
func (h *Hypergraph) PartSize(p PartitionID) int { return h.partSizes[p] }

// PinCountInPart returns how many pins of e lie in block p.
func (h *Hypergraph) PinCountInPart(e EdgeID, p PartitionID) int {
	return h.pinCounts[int(e)*h.k+int(p)]
}

// Connectivity returns the number of distinct blocks that e spans.
func (h *Hypergraph) Connectivity(e EdgeID) int { return h.connectivity[e] }

// NumAssignedNodes returns the number of enabled nodes with a block.
func (h *Hypergraph) NumAssignedNodes() int {
	assigned := 0
	for _, size := range h.partSizes {
		assigned += size
	}
	return assigned
}

// SetNodePart assigns the unassigned node u to block p.
func (h *Hypergraph) SetNodePart(u NodeID, p PartitionID) {
	if h.nodes[u].part != InvalidPartition {
		panic(fmt.Sprintf("hypernode %d is already assigned to block %d", u, h.nodes[u].part))
	}
	h.checkPart(p)
	h.nodes[u].part = p
	h.partWeights[p] += h.nodes[u].weight
	h.partSizes[p]++
	for _, e := range h.nodes[u].edges {
		h.incrementPinCount(e, p)
	}
}

// ChangeNodePart moves u from block from to block to.
func (h *Hypergraph) ChangeNodePart(u NodeID, from, to PartitionID) {
	if h.nodes[u].part != from {
		panic(fmt.Sprintf("hypernode %d is in block %d, not %d", u, h.nodes[u].part, from))
	}
	h.checkPart(to)
	if from == to {
		return
	}
	w := h.nodes[u].weight
	h.nodes[u].part = to
	h.partWeights[from] -= w
	h.partSizes[from]--
	h.partWeights[to] += w
	h.partSizes[to]++
	for _, e := range h.nodes[u].edges {
		h.decrementPinCount(e, from)
		h.incrementPinCount(e, to)
	}
}

// UnsetNodePart removes u from its block.
func (h *Hypergraph) UnsetNodePart(u NodeID) {
	p := h.nodes[u].part
	if p == InvalidPartition {
		return
	}
	h.nodes[u].part = InvalidPartition
	h.partWeights[p] -= h.nodes[u].weight
	h.partSizes[p]--
	for _, e := range h.nodes[u].edges {
		h.decrementPinCount(e, p)
	}
}

// ResetPartitioning marks every node as unassigned.
func (h *Hypergraph) ResetPartitioning() {
	for u := range h.nodes {
		h.nodes[u].part = InvalidPartition
	}
	clear(h.pinCounts)
	clear(h.connectivity)
	clear(h.partWeights)
	clear(h.partSizes)
}

func (h *Hypergraph) checkPart(p PartitionID) {
	if p < 0 || int(p) >= h.k {
		panic(fmt.Sprintf("block %d out of range [0,%d)", p, h.k))
	}
}

func (h *Hypergraph) incrementPinCount(e EdgeID, p PartitionID) {
	idx := int(e)*h.k + int(p)
	h.pinCounts[idx]++
	if h.pinCounts[idx] == 1 {
		h.connectivity[e]++
	}
}

func (h *Hypergraph) decrementPinCount(e EdgeID, p PartitionID) {
	idx := int(e)*h.k + int(p)
	h.pinCounts[idx]--
	if h.pinCounts[idx] == 0 {
		h.connectivity[e]--
	}
}
