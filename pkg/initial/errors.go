package initial

import (
	"github.com/cockroachdb/errors"
)

// ErrTargetUnreachable is returned when every block was disabled before
// all nodes could be placed within the block weight bounds. Callers retry
// with another seed or start node strategy.
var ErrTargetUnreachable = errors.New("initial: every block disabled before all nodes were assigned")
