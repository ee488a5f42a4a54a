// Package serializer appends one line per partitioning run to a result log
// in the RESULT key=value format read by plotting tools.
package serializer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// Record is everything one RESULT line reports.
type Record struct {
	RunID      uuid.UUID
	Config     *partition.Config
	Hypergraph *hypergraph.Hypergraph
	Coarsener  partition.Coarsener
	Refiner    partition.Refiner
	Result     *partition.Result
	Elapsed    time.Duration
}

var mu sync.Mutex

// Format renders the record as a single RESULT line without trailing
// newline.
func Format(r Record) string {
	cfg := r.Config
	hg := r.Hypergraph

	var b strings.Builder
	b.WriteString("RESULT")
	fmt.Fprintf(&b, " run=%s", r.RunID)
	fmt.Fprintf(&b, " graph=%s", filepath.Base(cfg.GraphFilename()))
	fmt.Fprintf(&b, " numHNs=%d numHEs=%d", hg.InitialNumNodes(), hg.InitialNumEdges())
	fmt.Fprintf(&b, " k=%d epsilon=%v L_max=%d seed=%d", cfg.K(), cfg.Epsilon(), cfg.MaxPartSize(), cfg.Seed())
	fmt.Fprintf(&b, " numInitialPartitions=%d numVCycles=%d HESizeThreshold=%d",
		cfg.InitialPartitioningAttempts(), cfg.GlobalSearchIterations(), cfg.HyperedgeSizeThreshold())
	fmt.Fprintf(&b, " initialPartitioner=%s", cfg.InitialAlgorithm())
	if r.Coarsener != nil {
		b.WriteString(r.Coarsener.PolicyString())
	}
	fmt.Fprintf(&b, " coarseningNodeWeightFraction=%v coarseningNodeWeightThreshold=%d coarseningMinNodeCount=%d",
		cfg.HypernodeWeightFraction(), cfg.MaxAllowedNodeWeight(), cfg.MinimalNodeCount())
	if r.Coarsener != nil {
		b.WriteString(r.Coarsener.Stats().String())
	}
	if r.Refiner != nil {
		b.WriteString(r.Refiner.PolicyString())
		b.WriteString(r.Refiner.Stats().String())
	}
	fmt.Fprintf(&b, " cut=%d", hypergraph.Cut(hg))
	for p := 0; p < hg.K(); p++ {
		fmt.Fprintf(&b, " part%d=%d", p, hg.PartWeight(hypergraph.PartitionID(p)))
	}
	fmt.Fprintf(&b, " imbalance=%v", hypergraph.Imbalance(hg))
	if r.Result != nil {
		fmt.Fprintf(&b, " unresolvedHEs=%d", len(r.Result.UnresolvedEdges))
	}
	fmt.Fprintf(&b, " time=%v", r.Elapsed.Seconds())
	return b.String()
}

// WriteResult appends the record to the log at path.
func WriteResult(path string, r Record) error {
	line := Format(r) + "\n"

	mu.Lock()
	defer mu.Unlock()

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open result log: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("failed to append result: %w", err)
	}
	return file.Close()
}
