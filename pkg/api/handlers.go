// Package api exposes the partitioner over HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gilchrisn/hypergraph-partitioner/pkg/hgrio"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/hypergraph"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/partition"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/pipeline"
	"github.com/gilchrisn/hypergraph-partitioner/pkg/serializer"
)

type paramKind int

const (
	intParam paramKind = iota
	floatParam
	stringParam
)

type queryParam struct {
	key  string
	kind paramKind
}

// queryParams maps request query parameters onto configuration keys.
var queryParams = map[string]queryParam{
	"k":               {"partition.k", intParam},
	"epsilon":         {"partition.epsilon", floatParam},
	"seed":            {"partition.seed", intParam},
	"nruns":           {"partition.initial_partitioning_attempts", intParam},
	"vcycles":         {"partition.global_search_iterations", intParam},
	"threshold":       {"partition.hyperedge_size_threshold", intParam},
	"min_nodes":       {"coarsening.minimal_node_count", intParam},
	"max_node_weight": {"coarsening.max_allowed_node_weight", intParam},
	"tie_breaking":    {"coarsening.tie_breaking", stringParam},
	"initial":         {"initial.algorithm", stringParam},
	"start_nodes":     {"initial.start_nodes", stringParam},
}

// PartitionResponse is returned by a successful partitioning request.
type PartitionResponse struct {
	RunID        string                   `json:"run_id"`
	Result       *partition.Result        `json:"result"`
	Partition    []hypergraph.PartitionID `json:"partition"`
	BlockWeights []int                    `json:"block_weights"`
}

// Handlers contains HTTP request handlers
type Handlers struct {
	cfg     *ServerConfig
	workers chan struct{}
}

// NewHandlers creates new API handlers. At most cfg.MaxWorkers partitioning
// runs execute at once.
func NewHandlers(cfg *ServerConfig) *Handlers {
	return &Handlers{
		cfg:     cfg,
		workers: make(chan struct{}, max(1, cfg.MaxWorkers)),
	}
}

// Partition partitions the .hgr hypergraph in the request body.
func (h *Handlers) Partition(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Logger()

	cfg := partition.NewConfig()
	if h.cfg.ConfigFile != "" {
		if err := cfg.LoadFromFile(h.cfg.ConfigFile); err != nil {
			logger.Error().Err(err).Str("file", h.cfg.ConfigFile).Msg("Failed to load partitioner config")
			WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load partitioner config", err)
			return
		}
	}
	if invalid := applyQueryParams(cfg, r); len(invalid) > 0 {
		WriteValidationErrorResponse(w, "Invalid query parameters", invalid)
		return
	}
	if err := cfg.Validate(); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid partitioner configuration", err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	hg, err := hgrio.ReadHypergraph(body, cfg.K())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to read hypergraph")
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid hypergraph", err)
		return
	}

	select {
	case h.workers <- struct{}{}:
		defer func() { <-h.workers }()
	case <-r.Context().Done():
		WriteErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled while waiting for a worker", r.Context().Err())
		return
	}

	logger.Info().
		Int("nodes", hg.NumNodes()).
		Int("edges", hg.NumEdges()).
		Int("k", cfg.K()).
		Float64("epsilon", cfg.Epsilon()).
		Msg("Partitioning request accepted")

	out, err := pipeline.New(cfg, logger).Run(hg)
	if err != nil {
		logger.Error().Err(err).Msg("Partitioning failed")
		status := http.StatusInternalServerError
		if errors.Is(err, partition.ErrNoInitialPartition) {
			status = http.StatusUnprocessableEntity
		}
		WriteErrorResponse(w, status, "Partitioning failed", err)
		return
	}

	if h.cfg.ResultLog != "" {
		record := serializer.Record{
			RunID:      runID,
			Config:     cfg,
			Hypergraph: out.Hypergraph,
			Coarsener:  out.Coarsener,
			Refiner:    out.Refiner,
			Result:     out.Result,
			Elapsed:    out.Elapsed,
		}
		if err := serializer.WriteResult(h.cfg.ResultLog, record); err != nil {
			logger.Warn().Err(err).Msg("Failed to append result log")
		}
	}

	response := PartitionResponse{
		RunID:        runID.String(),
		Result:       out.Result,
		Partition:    make([]hypergraph.PartitionID, hg.InitialNumNodes()),
		BlockWeights: make([]int, hg.K()),
	}
	for u := range response.Partition {
		response.Partition[u] = hg.PartID(hypergraph.NodeID(u))
	}
	for p := range response.BlockWeights {
		response.BlockWeights[p] = hg.PartWeight(hypergraph.PartitionID(p))
	}
	WriteSuccessResponse(w, "Hypergraph partitioned successfully", response)
}

// applyQueryParams copies recognized query parameters into cfg and returns
// the ones that failed to parse.
func applyQueryParams(cfg *partition.Config, r *http.Request) map[string]string {
	invalid := make(map[string]string)
	query := r.URL.Query()
	for name, param := range queryParams {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		switch param.kind {
		case intParam:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				invalid[name] = "must be an integer"
				continue
			}
			cfg.Set(param.key, v)
		case floatParam:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				invalid[name] = "must be a number"
				continue
			}
			cfg.Set(param.key, v)
		default:
			cfg.Set(param.key, raw)
		}
	}
	return invalid
}

// HealthCheck returns server health status
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteSuccessResponse(w, "Service is healthy", map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ListAlgorithms lists the selectable components.
func (h *Handlers) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	WriteSuccessResponse(w, "Algorithms retrieved successfully", map[string][]string{
		"initial":      {"growing", "random", "hmetis"},
		"start_nodes":  {"bfs", "random", "max_degree"},
		"tie_breaking": {"first", "last", "random"},
		"coarsening":   {"heavy_edge"},
		"refinement":   {"greedy"},
	})
}
