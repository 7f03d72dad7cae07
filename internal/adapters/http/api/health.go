// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/melodig/trackmix/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthResponse mirrors the OpenAPI schema for GET /health.
type healthResponse struct {
	Status         string `json:"status"`
	OfflineUsers   int    `json:"offline_users"`
	SimilarityRows int    `json:"similar_tracks_count"`
	PopularityRows int    `json:"popular_tracks_count"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	deps Dependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps Dependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

// HandleHealth handles GET /health requests with a JSON snapshot of the
// candidate table sizes. The service reports healthy even when degraded to
// empty tables; the sizes tell the rest of the story.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.deps.Health(r.Context())
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "healthy",
		OfflineUsers:   stats.OfflineUsers,
		SimilarityRows: stats.SimilarityRows,
		PopularityRows: stats.PopularityRows,
	})
}

// MetricsHandler serves the Prometheus registry.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// HandleMetrics handles GET /metrics requests.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
