package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/internal/dataset"
	"github.com/maxpieter/eu-network-graph/internal/graph/filter"
	"github.com/maxpieter/eu-network-graph/internal/observability"
	"github.com/maxpieter/eu-network-graph/pkg/api"
)

// GraphHandler serves the filtered network graph.
type GraphHandler struct {
	loader  *dataset.Loader
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewGraphHandler creates a graph handler. metrics may be nil when
// metrics are disabled.
func NewGraphHandler(loader *dataset.Loader, logger *zap.Logger, metrics *observability.Collector) *GraphHandler {
	return &GraphHandler{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
	}
}

// GetGraph handles GET /api/graph.
//
// Invalid filter parameters are rejected with 400 before any work
// happens. An unavailable dataset is served as an empty graph with
// 200: the renderer treats empty as "no data" and shows its own
// notice.
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	opts, err := filter.ParseOptions(r.URL.Query())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	g := h.loader.Load(r.Context())
	if h.metrics != nil {
		h.metrics.DatasetNodes.Set(float64(len(g.Nodes)))
		h.metrics.DatasetEdges.Set(float64(len(g.Edges)))
	}

	start := time.Now()
	result := filter.Apply(g, opts)

	if h.metrics != nil {
		h.metrics.FilterDuration.Observe(time.Since(start).Seconds())
		h.metrics.GraphNodesServed.Observe(float64(len(result.Nodes)))
		h.metrics.GraphEdgesServed.Observe(float64(len(result.Edges)))
	}

	h.logger.Debug("graph filtered",
		zap.String("mode", string(opts.Mode)),
		zap.Int("nodes_in", len(g.Nodes)),
		zap.Int("edges_in", len(g.Edges)),
		zap.Int("nodes_out", len(result.Nodes)),
		zap.Int("edges_out", len(result.Edges)),
	)

	api.Success(w, http.StatusOK, api.NewGraphResponse(result))
}

// Health handles GET /api/health.
func (h *GraphHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}
