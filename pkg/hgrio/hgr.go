// Package hgrio reads and writes hypergraphs in the hMetis .hgr format and
// partition files with one block ID per line.
package hgrio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

// ErrMalformed is returned for input that does not follow the format.
var ErrMalformed = errors.New("hgrio: malformed input")

// MaxHeaderCount bounds the hyperedge and hypernode counts accepted from
// an .hgr header.
const MaxHeaderCount = 1 << 26

// header counts are untrusted, slices beyond this grow on demand
const maxPrealloc = 1 << 16

// .hgr header format flags
const (
	fmtUnweighted  = 0
	fmtEdgeWeights = 1
	fmtNodeWeights = 10
	fmtBothWeights = 11
)

// lineReader yields non-empty lines that are not '%' comments.
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	return &lineReader{scanner: scanner}
}

func (lr *lineReader) next() ([]string, error) {
	for lr.scanner.Scan() {
		lr.line++
		line := strings.TrimSpace(lr.scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := lr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (lr *lineReader) ints(fields []string) ([]int, error) {
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformed, "line %d: %q is not an integer", lr.line, f)
		}
		values[i] = v
	}
	return values, nil
}

// ReadHypergraph parses an .hgr stream into a hypergraph to be split into
// k blocks.
func ReadHypergraph(r io.Reader, k int) (*hypergraph.Hypergraph, error) {
	lr := newLineReader(r)

	fields, err := lr.next()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMalformed, "missing header")
	}
	if err != nil {
		return nil, err
	}
	header, err := lr.ints(fields)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 || len(header) > 3 {
		return nil, errors.Wrapf(ErrMalformed, "header has %d fields", len(header))
	}
	numEdges, numNodes := header[0], header[1]
	if numEdges < 0 || numNodes < 0 {
		return nil, errors.Wrapf(ErrMalformed, "negative header counts: %d hyperedges, %d hypernodes", numEdges, numNodes)
	}
	if numEdges > MaxHeaderCount || numNodes > MaxHeaderCount {
		return nil, errors.Wrapf(ErrMalformed, "header counts %d hyperedges, %d hypernodes exceed %d", numEdges, numNodes, MaxHeaderCount)
	}
	format := fmtUnweighted
	if len(header) == 3 {
		format = header[2]
	}
	if format != fmtUnweighted && format != fmtEdgeWeights && format != fmtNodeWeights && format != fmtBothWeights {
		return nil, errors.Wrapf(ErrMalformed, "unknown format %d", format)
	}
	hasEdgeWeights := format == fmtEdgeWeights || format == fmtBothWeights
	hasNodeWeights := format == fmtNodeWeights || format == fmtBothWeights

	edgeIndex := make([]int, 0, min(numEdges, maxPrealloc)+1)
	edgeIndex = append(edgeIndex, 0)
	pins := make([]hypergraph.NodeID, 0, 2*min(numEdges, maxPrealloc))
	var edgeWeights []int
	if hasEdgeWeights {
		edgeWeights = make([]int, 0, min(numEdges, maxPrealloc))
	}

	for e := 0; e < numEdges; e++ {
		fields, err := lr.next()
		if err == io.EOF {
			return nil, errors.Wrapf(ErrMalformed, "expected %d hyperedges, got %d", numEdges, e)
		}
		if err != nil {
			return nil, err
		}
		values, err := lr.ints(fields)
		if err != nil {
			return nil, err
		}
		if hasEdgeWeights {
			edgeWeights = append(edgeWeights, values[0])
			values = values[1:]
		}
		if len(values) == 0 {
			return nil, errors.Wrapf(ErrMalformed, "line %d: hyperedge %d has no pins", lr.line, e)
		}
		for _, pin := range values {
			if pin < 1 || pin > numNodes {
				return nil, errors.Wrapf(ErrMalformed, "line %d: pin %d out of range [1,%d]", lr.line, pin, numNodes)
			}
			pins = append(pins, hypergraph.NodeID(pin-1))
		}
		edgeIndex = append(edgeIndex, len(pins))
	}

	var nodeWeights []int
	if hasNodeWeights {
		nodeWeights = make([]int, 0, min(numNodes, maxPrealloc))
		for len(nodeWeights) < numNodes {
			fields, err := lr.next()
			if err == io.EOF {
				return nil, errors.Wrapf(ErrMalformed, "expected %d node weights, got %d", numNodes, len(nodeWeights))
			}
			if err != nil {
				return nil, err
			}
			values, err := lr.ints(fields)
			if err != nil {
				return nil, err
			}
			nodeWeights = append(nodeWeights, values...)
		}
		if len(nodeWeights) != numNodes {
			return nil, errors.Wrapf(ErrMalformed, "expected %d node weights, got %d", numNodes, len(nodeWeights))
		}
	}

	var opts []hypergraph.Option
	if edgeWeights != nil {
		opts = append(opts, hypergraph.WithEdgeWeights(edgeWeights))
	}
	if nodeWeights != nil {
		opts = append(opts, hypergraph.WithNodeWeights(nodeWeights))
	}
	hg, err := hypergraph.New(numNodes, numEdges, edgeIndex, pins, k, opts...)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "%v", err)
	}
	return hg, nil
}

// ReadHypergraphFile reads an .hgr file.
func ReadHypergraphFile(path string, k int) (*hypergraph.Hypergraph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open hypergraph file %s: %w", path, err)
	}
	defer file.Close()

	hg, err := ReadHypergraph(file, k)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return hg, nil
}

// WriteHypergraph writes the enabled part of hg. Nodes must be numbered
// densely; weights are only emitted when some weight differs from 1.
func WriteHypergraph(w io.Writer, hg *hypergraph.Hypergraph) error {
	edges := hg.Edges()
	nodes := hg.Nodes()

	hasEdgeWeights := false
	for _, e := range edges {
		if hg.EdgeWeight(e) != 1 {
			hasEdgeWeights = true
			break
		}
	}
	hasNodeWeights := false
	for _, u := range nodes {
		if hg.NodeWeight(u) != 1 {
			hasNodeWeights = true
			break
		}
	}

	bw := bufio.NewWriter(w)
	switch {
	case hasEdgeWeights && hasNodeWeights:
		fmt.Fprintf(bw, "%d %d %d\n", len(edges), len(nodes), fmtBothWeights)
	case hasNodeWeights:
		fmt.Fprintf(bw, "%d %d %d\n", len(edges), len(nodes), fmtNodeWeights)
	case hasEdgeWeights:
		fmt.Fprintf(bw, "%d %d %d\n", len(edges), len(nodes), fmtEdgeWeights)
	default:
		fmt.Fprintf(bw, "%d %d\n", len(edges), len(nodes))
	}

	for _, e := range edges {
		if hasEdgeWeights {
			fmt.Fprintf(bw, "%d ", hg.EdgeWeight(e))
		}
		for i, pin := range hg.Pins(e) {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(pin) + 1))
		}
		bw.WriteByte('\n')
	}
	if hasNodeWeights {
		for _, u := range nodes {
			fmt.Fprintf(bw, "%d\n", hg.NodeWeight(u))
		}
	}
	return bw.Flush()
}

// WriteHypergraphFile writes hg to path.
func WriteHypergraphFile(path string, hg *hypergraph.Hypergraph) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create hypergraph file: %w", err)
	}
	defer file.Close()

	if err := WriteHypergraph(file, hg); err != nil {
		return err
	}
	return file.Close()
}
