package hypergraph

import (
	"fmt"
)

// pinSlot records the position a pin occupied inside an edge's pin list.
type pinSlot struct {
	edge EdgeID
	slot int
}

// Memento is the information needed to undo one contraction. Mementos must
// be passed to Uncontract in reverse order of creation.
type Memento struct {
	U, V NodeID

	uDegree  int       // len(IncidentEdges(U)) before the contraction
	dropped  []pinSlot // edges containing both U and V: V was moved to the tail
	relinked []pinSlot // edges containing only V: V was replaced by U
}

// Contract merges v into the representative u. Both nodes must be enabled
// and lie in the same block (or both be unassigned). v is disabled, its
// weight is added to u and every edge of v is rewired to u.
func (h *Hypergraph) Contract(u, v NodeID) Memento {
	if u == v || !h.nodes[u].enabled || !h.nodes[v].enabled {
		panic(fmt.Sprintf("cannot contract hypernodes %d and %d", u, v))
	}
	if h.nodes[u].part != h.nodes[v].part {
		panic(fmt.Sprintf("hypernodes %d and %d are in different blocks (%d, %d)",
			u, v, h.nodes[u].part, h.nodes[v].part))
	}

	m := Memento{U: u, V: v, uDegree: len(h.nodes[u].edges)}
	part := h.nodes[v].part

	for _, e := range h.nodes[v].edges {
		pins := h.edges[e].pins
		vSlot := -1
		containsU := false
		for i, pin := range pins {
			if pin == v {
				vSlot = i
			} else if pin == u {
				containsU = true
			}
		}

		if containsU {
			last := len(pins) - 1
			pins[vSlot], pins[last] = pins[last], pins[vSlot]
			h.edges[e].pins = pins[:last]
			h.numPins--
			if part != InvalidPartition {
				h.decrementPinCount(e, part)
			}
			m.dropped = append(m.dropped, pinSlot{edge: e, slot: vSlot})
		} else {
			pins[vSlot] = u
			h.nodes[u].edges = append(h.nodes[u].edges, e)
			m.relinked = append(m.relinked, pinSlot{edge: e, slot: vSlot})
		}
	}

	h.nodes[u].weight += h.nodes[v].weight
	h.nodes[v].enabled = false
	h.numNodes--
	if part != InvalidPartition {
		h.partSizes[part]--
	}
	return m
}

// Uncontract reverts the contraction described by m. v is re-enabled and
// placed in u's current block.
func (h *Hypergraph) Uncontract(m Memento) {
	u, v := m.U, m.V
	part := h.nodes[u].part

	for _, r := range m.relinked {
		h.edges[r.edge].pins[r.slot] = v
	}
	h.nodes[u].edges = h.nodes[u].edges[:m.uDegree]

	for i := len(m.dropped) - 1; i >= 0; i-- {
		d := m.dropped[i]
		pins := h.edges[d.edge].pins
		pins = pins[:len(pins)+1]
		last := len(pins) - 1
		pins[d.slot], pins[last] = pins[last], pins[d.slot]
		h.edges[d.edge].pins = pins
		h.numPins++
	}

	h.nodes[u].weight -= h.nodes[v].weight
	h.nodes[v].enabled = true
	h.nodes[v].part = part
	h.numNodes++

	if part != InvalidPartition {
		h.partSizes[part]++
		for _, d := range m.dropped {
			h.incrementPinCount(d.edge, part)
		}
	}
}

// RemoveEdge disables e and unlinks it from its pins. When
// disableUnconnected is set, pins left without any incident edge are
// disabled too; they lose their block and are re-enabled, unassigned, by
// RestoreEdge.
func (h *Hypergraph) RemoveEdge(e EdgeID, disableUnconnected bool) {
	if !h.edges[e].enabled {
		panic(fmt.Sprintf("hyperedge %d is already removed", e))
	}
	for _, pin := range h.edges[e].pins {
		h.unlinkEdge(pin, e)
		if disableUnconnected && len(h.nodes[pin].edges) == 0 {
			h.UnsetNodePart(pin)
			h.nodes[pin].enabled = false
			h.numNodes--
			h.totalWeight -= h.nodes[pin].weight
		}
	}
	h.edges[e].enabled = false
	h.numEdges--
	h.numPins -= len(h.edges[e].pins)
	for p := 0; p < h.k; p++ {
		h.pinCounts[int(e)*h.k+p] = 0
	}
	h.connectivity[e] = 0
}

// RestoreEdge re-enables a removed edge. Edges must be restored in reverse
// order of removal and after all contractions have been undone.
func (h *Hypergraph) RestoreEdge(e EdgeID) {
	if h.edges[e].enabled {
		panic(fmt.Sprintf("hyperedge %d is not removed", e))
	}
	h.edges[e].enabled = true
	h.numEdges++
	h.numPins += len(h.edges[e].pins)
	for _, pin := range h.edges[e].pins {
		if !h.nodes[pin].enabled {
			h.nodes[pin].enabled = true
			h.nodes[pin].part = InvalidPartition
			h.numNodes++
			h.totalWeight += h.nodes[pin].weight
		}
		h.nodes[pin].edges = append(h.nodes[pin].edges, e)
		if p := h.nodes[pin].part; p != InvalidPartition {
			h.incrementPinCount(e, p)
		}
	}
}

func (h *Hypergraph) unlinkEdge(u NodeID, e EdgeID) {
	edges := h.nodes[u].edges
	for i, he := range edges {
		if he == e {
			last := len(edges) - 1
			edges[i] = edges[last]
			h.nodes[u].edges = edges[:last]
			return
		}
	}
}
