package initial

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hgrio"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// HMetis delegates initial partitioning to an external hMetis binary. The
// binary is called as
//
//	<path> <graph.hgr> <k> -seed=<seed> -ufactor=<balance factor>
//
// and must write <graph.hgr>.part.<k>.
type HMetis struct {
	path   string
	logger zerolog.Logger
}

// NewHMetis creates a backend calling the binary at path.
func NewHMetis(path string, logger zerolog.Logger) *HMetis {
	return &HMetis{path: path, logger: logger}
}

func (h *HMetis) Name() string { return "hmetis" }

// Partition implements partition.InitialPartitioner.
func (h *HMetis) Partition(hg *hypergraph.Hypergraph, req partition.InitialRequest) ([]hypergraph.PartitionID, error) {
	dir, err := os.MkdirTemp("", "hmetis-")
	if err != nil {
		return nil, errors.Wrap(err, "creating hmetis work directory")
	}
	defer os.RemoveAll(dir)

	graphFile := filepath.Join(dir, "coarse.hgr")
	if err := hgrio.WriteHypergraphFile(graphFile, hg); err != nil {
		return nil, errors.Wrap(err, "writing coarse hypergraph")
	}

	args := []string{
		graphFile,
		strconv.Itoa(req.K),
		fmt.Sprintf("-seed=%d", req.Seed),
		fmt.Sprintf("-ufactor=%f", req.BalanceFactor),
	}
	h.logger.Debug().Str("path", h.path).Strs("args", args).Msg("Calling hmetis")

	cmd := exec.Command(h.path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, errors.Wrapf(err, "hmetis failed: %s", out)
	}

	partFile := fmt.Sprintf("%s.part.%d", graphFile, req.K)
	parts, err := hgrio.ReadPartitionFile(partFile)
	if err != nil {
		return nil, err
	}
	if len(parts) != hg.NumNodes() {
		return nil, errors.Wrapf(partition.ErrInvalidAssignment,
			"partition file has %d entries for %d nodes", len(parts), hg.NumNodes())
	}
	return parts, nil
}
