package partition

import (
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// RemoveLargeHyperedges removes every hyperedge larger than the configured
// threshold and returns them in removal order. Pins left without edges are
// disabled so that neither coarsening nor initial partitioning sees them.
func (p *Partitioner) RemoveLargeHyperedges(hg *hypergraph.Hypergraph) []hypergraph.EdgeID {
	threshold := p.cfg.HyperedgeSizeThreshold()
	if threshold == NoHyperedgeSizeThreshold {
		return nil
	}

	var removed []hypergraph.EdgeID
	for _, e := range hg.Edges() {
		if hg.EdgeSize(e) > threshold {
			p.logger.Debug().
				Int("edge", int(e)).
				Int("size", hg.EdgeSize(e)).
				Int("threshold", threshold).
				Msg("Removing large hyperedge")
			removed = append(removed, e)
			hg.RemoveEdge(e, true)
		}
	}
	if len(removed) > 0 {
		p.logger.Info().Int("removed", len(removed)).Msg("Large hyperedges removed")
	}
	return removed
}

// RestoreLargeHyperedges restores removed edges in reverse order and assigns
// their still unassigned pins. Edges whose pins could not be placed are
// returned; their pins stay unassigned.
func (p *Partitioner) RestoreLargeHyperedges(hg *hypergraph.Hypergraph, removed []hypergraph.EdgeID) ([]hypergraph.EdgeID, error) {
	if p.cfg.HyperedgeSizeThreshold() == NoHyperedgeSizeThreshold {
		return nil, nil
	}

	var unresolved []hypergraph.EdgeID
	for i := len(removed) - 1; i >= 0; i-- {
		e := removed[i]
		hg.RestoreEdge(e)
		if !p.partitionUnpartitionedPins(hg, e) {
			p.logger.Warn().
				Int("edge", int(e)).
				Int("size", hg.EdgeSize(e)).
				Msg("No block has room for unassigned hyperedge")
			unresolved = append(unresolved, e)
		}
	}

	if len(unresolved) == 0 {
		for block := 0; block < hg.K(); block++ {
			weight := hg.PartWeight(hypergraph.PartitionID(block))
			if err := p.assertf(weight <= p.cfg.MaxPartSize(),
				"final assignment of unpartitioned pins violated balance constraint: block %d has weight %d > %d",
				block, weight, p.cfg.MaxPartSize()); err != nil {
				return unresolved, err
			}
		}
	}
	return unresolved, nil
}

// partitionUnpartitionedPins places the unassigned pins of e. It reports
// false only when every pin is unassigned and neither block 0 nor block 1
// can take the whole edge.
func (p *Partitioner) partitionUnpartitionedPins(hg *hypergraph.Hypergraph, e hypergraph.EdgeID) bool {
	numUnassigned := 0
	unassignedWeight := 0
	for _, pin := range hg.Pins(e) {
		if hg.PartID(pin) == hypergraph.InvalidPartition {
			numUnassigned++
			unassignedWeight += hg.NodeWeight(pin)
		}
	}
	if numUnassigned == 0 {
		return true
	}

	maxPartSize := p.cfg.MaxPartSize()
	fits := func(block hypergraph.PartitionID) bool {
		return hg.PartWeight(block)+unassignedWeight <= maxPartSize
	}

	if numUnassigned == hg.EdgeSize(e) {
		switch {
		case fits(0):
			p.assignUnpartitionedPins(hg, e, 0)
		case fits(1):
			p.assignUnpartitionedPins(hg, e, 1)
		default:
			return false
		}
		return true
	}

	inZero := hg.PinCountInPart(e, 0) > 0
	inOne := hg.PinCountInPart(e, 1) > 0
	switch {
	case inZero && !inOne && fits(0):
		p.assignUnpartitionedPins(hg, e, 0)
	case inOne && !inZero && fits(1):
		p.assignUnpartitionedPins(hg, e, 1)
	default:
		p.distributePinsAcrossPartitions(hg, e)
	}
	return true
}

func (p *Partitioner) assignUnpartitionedPins(hg *hypergraph.Hypergraph, e hypergraph.EdgeID, block hypergraph.PartitionID) {
	p.logger.Debug().Int("edge", int(e)).Int("block", int(block)).Msg("Assigning unpartitioned pins")
	for _, pin := range hg.Pins(e) {
		if hg.PartID(pin) == hypergraph.InvalidPartition {
			hg.SetNodePart(pin, block)
		}
	}
}

// distributePinsAcrossPartitions assigns each unassigned pin to the
// currently lightest block.
func (p *Partitioner) distributePinsAcrossPartitions(hg *hypergraph.Hypergraph, e hypergraph.EdgeID) {
	p.logger.Debug().Int("edge", int(e)).Msg("Distributing pins across blocks")
	for _, pin := range hg.Pins(e) {
		if hg.PartID(pin) != hypergraph.InvalidPartition {
			continue
		}
		lightest := hypergraph.PartitionID(0)
		for block := 1; block < hg.K(); block++ {
			if hg.PartWeight(hypergraph.PartitionID(block)) < hg.PartWeight(lightest) {
				lightest = hypergraph.PartitionID(block)
			}
		}
		hg.SetNodePart(pin, lightest)
	}
}
