package hgrio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

const sampleHgr = `% 7 nodes, 4 hyperedges
4 7
1 3
1 2 4 5
4 5 7
3 6 7
`

func TestReadHypergraph(t *testing.T) {
	hg, err := ReadHypergraph(strings.NewReader(sampleHgr), 2)
	require.NoError(t, err)

	assert.Equal(t, 7, hg.NumNodes())
	assert.Equal(t, 4, hg.NumEdges())
	assert.Equal(t, 12, hg.NumPins())
	assert.Equal(t, []hypergraph.NodeID{0, 1, 3, 4}, hg.Pins(1))
	assert.Equal(t, 2, hg.K())
}

func TestReadHypergraph_Weights(t *testing.T) {
	input := "2 3 11\n5 1 2\n1 2 3\n4\n1\n2\n"
	hg, err := ReadHypergraph(strings.NewReader(input), 2)
	require.NoError(t, err)

	assert.Equal(t, 5, hg.EdgeWeight(0))
	assert.Equal(t, 1, hg.EdgeWeight(1))
	assert.Equal(t, []hypergraph.NodeID{1, 2}, hg.Pins(1))
	assert.Equal(t, 4, hg.NodeWeight(0))
	assert.Equal(t, 7, hg.TotalWeight())
}

func TestReadHypergraph_Malformed(t *testing.T) {
	cases := map[string]string{
		"Empty":         "",
		"BadHeader":     "4\n",
		"UnknownFmt":    "1 2 5\n1 2\n",
		"MissingEdges":  "2 2\n1 2\n",
		"PinRange":      "1 2\n1 3\n",
		"NotANumber":    "1 2\n1 x\n",
		"MissingNodeW":  "1 2 10\n1 2\n3\n",
		"NegativeEdges": "-5 3\n",
		"NegativeNodes": "1 -3\n1\n",
		"HugeEdges":     "4611686018427387904 1\n1\n",
		"HugeNodes":     "1 4611686018427387904\n1\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadHypergraph(strings.NewReader(input), 2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestWriteHypergraph_ReadBack(t *testing.T) {
	input := "2 3 11\n5 1 2\n1 2 3\n4\n1\n2\n"
	hg, err := ReadHypergraph(strings.NewReader(input), 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHypergraph(&buf, hg))
	assert.Equal(t, input, buf.String())

	path := filepath.Join(t.TempDir(), "sample.hgr")
	unweighted, err := ReadHypergraph(strings.NewReader(sampleHgr), 2)
	require.NoError(t, err)
	require.NoError(t, WriteHypergraphFile(path, unweighted))

	again, err := ReadHypergraphFile(path, 2)
	require.NoError(t, err)
	for _, e := range unweighted.Edges() {
		assert.Equal(t, unweighted.Pins(e), again.Pins(e))
	}
}

func TestPartitionFile(t *testing.T) {
	hg, err := ReadHypergraph(strings.NewReader(sampleHgr), 2)
	require.NoError(t, err)
	blocks := []hypergraph.PartitionID{0, 0, 0, 1, 1, 1, 1}
	for u, p := range blocks {
		hg.SetNodePart(hypergraph.NodeID(u), p)
	}

	path := filepath.Join(t.TempDir(), "sample.hgr.part.2")
	require.NoError(t, WritePartitionFile(path, hg))

	parts, err := ReadPartitionFile(path)
	require.NoError(t, err)
	assert.Equal(t, blocks, parts)

	_, err = ReadPartition(strings.NewReader("0\n1 1\n"))
	assert.True(t, errors.Is(err, ErrMalformed))
}
