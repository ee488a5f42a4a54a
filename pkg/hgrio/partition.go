package hgrio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// ReadPartition reads one block ID per line.
func ReadPartition(r io.Reader) ([]hypergraph.PartitionID, error) {
	lr := newLineReader(r)
	var parts []hypergraph.PartitionID
	for {
		fields, err := lr.next()
		if err == io.EOF {
			return parts, nil
		}
		if err != nil {
			return nil, err
		}
		if len(fields) != 1 {
			return nil, errors.Wrapf(ErrMalformed, "line %d: expected one block id", lr.line)
		}
		p, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "line %d: %q is not a block id", lr.line, fields[0])
		}
		parts = append(parts, hypergraph.PartitionID(p))
	}
}

// ReadPartitionFile reads a partition file.
func ReadPartitionFile(path string) ([]hypergraph.PartitionID, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open partition file %s: %w", path, err)
	}
	defer file.Close()
	return ReadPartition(file)
}

// WritePartition writes the block of every node of hg, including disabled
// nodes, in node ID order.
func WritePartition(w io.Writer, hg *hypergraph.Hypergraph) error {
	bw := bufio.NewWriter(w)
	for u := 0; u < hg.InitialNumNodes(); u++ {
		bw.WriteString(strconv.Itoa(int(hg.PartID(hypergraph.NodeID(u)))))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WritePartitionFile writes the partition of hg to path.
func WritePartitionFile(path string, hg *hypergraph.Hypergraph) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create partition file: %w", err)
	}
	defer file.Close()

	if err := WritePartition(file, hg); err != nil {
		return err
	}
	return file.Close()
}
