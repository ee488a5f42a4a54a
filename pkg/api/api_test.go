package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hgrio"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
)

func newTestServer(t *testing.T) (*httptest.Server, *ServerConfig) {
	t.Helper()
	cfg := &ServerConfig{
		MaxWorkers:     2,
		MaxBodyBytes:   1 << 20,
		ResultLog:      filepath.Join(t.TempDir(), "results.txt"),
		AllowedOrigins: []string{"*"},
	}
	server := httptest.NewServer(NewHandler(cfg))
	t.Cleanup(server.Close)
	return server, cfg
}

// twoRingsHgr renders two rings of ten nodes joined by two bridges plus a
// large edge over the even nodes.
func twoRingsHgr(t *testing.T) []byte {
	t.Helper()
	var edges [][]hypergraph.NodeID
	for c := 0; c < 2; c++ {
		base := hypergraph.NodeID(10 * c)
		for i := hypergraph.NodeID(0); i < 10; i++ {
			edges = append(edges, []hypergraph.NodeID{base + i, base + (i+1)%10})
			edges = append(edges, []hypergraph.NodeID{base + i, base + (i+2)%10, base + (i+3)%10})
		}
	}
	edges = append(edges, []hypergraph.NodeID{9, 10}, []hypergraph.NodeID{0, 19})
	var large []hypergraph.NodeID
	for u := hypergraph.NodeID(0); u < 20; u += 2 {
		large = append(large, u)
	}
	edges = append(edges, large)

	edgeIndex := []int{0}
	var pins []hypergraph.NodeID
	for _, e := range edges {
		pins = append(pins, e...)
		edgeIndex = append(edgeIndex, len(pins))
	}
	hg, err := hypergraph.New(20, len(edges), edgeIndex, pins, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, hgrio.WriteHypergraph(&buf, hg))
	return buf.Bytes()
}

const ringsQuery = "?k=2&epsilon=0.2&seed=17&vcycles=2&threshold=8&min_nodes=6&max_node_weight=4"

func TestHealthCheck(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
}

func TestListAlgorithms(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/algorithms")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Data map[string][]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data["initial"], "growing")
	assert.Contains(t, body.Data["start_nodes"], "bfs")
}

func TestPartition(t *testing.T) {
	server, cfg := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/partitions"+ringsQuery, "text/plain", bytes.NewReader(twoRingsHgr(t)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    PartitionResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Data.RunID)
	require.Len(t, body.Data.Partition, 20)
	for u, p := range body.Data.Partition {
		assert.True(t, p == 0 || p == 1, "node %d in block %d", u, p)
	}
	require.Len(t, body.Data.BlockWeights, 2)
	assert.Equal(t, 20, body.Data.BlockWeights[0]+body.Data.BlockWeights[1])
	for _, w := range body.Data.BlockWeights {
		assert.LessOrEqual(t, w, 12)
	}
	assert.Equal(t, 1, body.Data.Result.RemovedEdges)
	assert.LessOrEqual(t, body.Data.Result.Imbalance, 0.2)

	logged, err := os.ReadFile(cfg.ResultLog)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(logged), "RESULT run="+body.Data.RunID))
}

func TestPartition_InvalidQuery(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/partitions?k=two&epsilon=x", "text/plain", bytes.NewReader(twoRingsHgr(t)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Data struct {
			ValidationErrors map[string]string `json:"validation_errors"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Data.ValidationErrors, "k")
	assert.Contains(t, body.Data.ValidationErrors, "epsilon")
}

func TestPartition_BadRequests(t *testing.T) {
	server, _ := newTestServer(t)

	cases := map[string]struct {
		query string
		body  string
	}{
		"MalformedHypergraph": {"?k=2", "2 3\n1 2\n"},
		"SingleBlock":         {"?k=1", "1 2\n1 2\n"},
		"NegativeEpsilon":     {"?k=2&epsilon=-1", "1 2\n1 2\n"},
		"NegativeEdgeCount":   {"?k=2", "-5 3\n"},
		"HugeEdgeCount":       {"?k=2", "4611686018427387904 1\n1\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, err := http.Post(server.URL+"/api/v1/partitions"+tc.query, "text/plain", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body APIResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestPartition_MethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/partitions")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/v1/partitions", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := LoggingMiddleware(RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("hypernode 3 is already assigned to block 0")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
}
