// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/melodig/trackmix/internal/adapters/catalog"
	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recommend produces the ranked recommendation list and strategy label.
	Recommend(ctx context.Context, userID types.UserID, n int) ([]types.Recommendation, types.Strategy, error)

	// UpdateHistory replaces the user's session history wholesale.
	UpdateHistory(ctx context.Context, userID types.UserID, trackIDs []types.TrackID) (int, error)

	// ClearHistory removes the user's session history; false if absent.
	ClearHistory(ctx context.Context, userID types.UserID) (bool, error)

	// Health exposes the candidate snapshot sizes.
	Health(ctx context.Context) catalog.Stats

	// Track resolves catalog metadata for a track id.
	Track(ctx context.Context, id types.TrackID) (model.Track, bool)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler            *RootHandler
	healthHandler          *HealthHandler
	metricsHandler         *MetricsHandler
	statsHandler           *StatsHandler
	recommendationsHandler *RecommendationsHandler
	historyHandler         *HistoryHandler
	tracksHandler          *TracksHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, defaultCount, maxCount int) *Server {
	return &Server{
		rootHandler:            NewRootHandler(),
		healthHandler:          NewHealthHandler(deps),
		metricsHandler:         NewMetricsHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		recommendationsHandler: NewRecommendationsHandler(deps, defaultCount, maxCount),
		historyHandler:         NewHistoryHandler(deps),
		tracksHandler:          NewTracksHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/metrics", s.metricsHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/recommendations/", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/online_history", MetricsMiddleware(s.historyHandler.HandleUpdateHistory, "online_history"))
	mux.HandleFunc("/online_history/", MetricsMiddleware(s.historyHandler.HandleClearHistory, "online_history"))
	mux.HandleFunc("/tracks/", MetricsMiddleware(s.tracksHandler.HandleGetTrack, "tracks"))
	mux.HandleFunc("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
}

// historyRequest mirrors the OpenAPI schema for POST /online_history.
type historyRequest struct {
	UserID   *types.UserID   `json:"user_id"`
	TrackIDs []types.TrackID `json:"track_ids"`
}

func (h historyRequest) validate() error {
	switch {
	case h.UserID == nil:
		return ErrMissingUserID
	case *h.UserID < 0:
		return ErrNegativeUserID
	}
	for _, id := range h.TrackIDs {
		if id < 0 {
			return ErrNegativeTrackID
		}
	}
	return nil
}

// recommendationsResponse mirrors the OpenAPI schema for GET /recommendations.
type recommendationsResponse struct {
	UserID          types.UserID           `json:"user_id"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Strategy        types.Strategy         `json:"strategy"`
	TotalCount      int                    `json:"total_count"`
}

type historyAckResponse struct {
	Status      string       `json:"status"`
	UserID      types.UserID `json:"user_id"`
	TracksCount int          `json:"tracks_count"`
}

type clearResponse struct {
	Status  string `json:"status"`
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
