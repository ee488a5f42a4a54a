package initial

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
)

// roundRobinScript stands in for hmetis: it assigns node i to block i mod k.
const roundRobinScript = `#!/bin/sh
read m n rest < "$1"
out="$1.part.$2"
: > "$out"
i=0
while [ "$i" -lt "$n" ]; do
	echo $((i % $2)) >> "$out"
	i=$((i + 1))
done
`

const shortScript = `#!/bin/sh
echo 0 > "$1.part.$2"
`

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "hmetis")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestHMetis_Partition(t *testing.T) {
	hg := newSampleHypergraph(t)
	h := NewHMetis(writeScript(t, roundRobinScript), zerolog.Nop())

	parts, err := h.Partition(hg, partition.InitialRequest{K: 2, Epsilon: 0.03, Seed: 7, BalanceFactor: 1.5})
	require.NoError(t, err)
	assert.Equal(t, []hypergraph.PartitionID{0, 1, 0, 1, 0, 1, 0}, parts)
}

func TestHMetis_WrongLength(t *testing.T) {
	hg := newSampleHypergraph(t)
	h := NewHMetis(writeScript(t, shortScript), zerolog.Nop())

	_, err := h.Partition(hg, partition.InitialRequest{K: 2, Seed: 1})
	assert.True(t, errors.Is(err, partition.ErrInvalidAssignment), "got %v", err)
}

func TestHMetis_MissingBinary(t *testing.T) {
	hg := newSampleHypergraph(t)
	h := NewHMetis(filepath.Join(t.TempDir(), "does-not-exist"), zerolog.Nop())

	_, err := h.Partition(hg, partition.InitialRequest{K: 2, Seed: 1})
	assert.Error(t, err)
}
