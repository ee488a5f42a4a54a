package partition

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoInitialPartition indicates that no initial partitioning attempt
	// produced an assignment.
	ErrNoInitialPartition = errors.New("partition: no initial partitioning attempt succeeded")
	// ErrInvalidAssignment indicates an initial partitioner returned a listing
	// that does not fit the coarsened hypergraph.
	ErrInvalidAssignment = errors.New("partition: initial assignment does not match hypergraph")
)

// assertf reports an invariant violation when invariant checks are enabled.
func (p *Partitioner) assertf(cond bool, format string, args ...interface{}) error {
	if !p.cfg.CheckInvariants() || cond {
		return nil
	}
	err := errors.AssertionFailedf(format, args...)
	p.logger.Error().Err(err).Msg("Invariant violated")
	return err
}
