// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/melodig/trackmix/internal/domain/types"
)

// RecommendationDependencies defines the interface for recommendation operations.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, userID types.UserID, n int) ([]types.Recommendation, types.Strategy, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps         RecommendationDependencies
	defaultCount int
	maxCount     int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, defaultCount, maxCount int) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:         deps,
		defaultCount: defaultCount,
		maxCount:     maxCount,
	}
}

// HandleGetRecommendations handles GET /recommendations/{user_id}?n=N requests.
// An out-of-range n is rejected here; it never reaches the blending engine.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	userID, err := userIDFromPath(r.URL.Path, "/recommendations/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	n := h.defaultCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 1 || n > h.maxCount {
			writeError(w, http.StatusBadRequest, "bad_request",
				fmt.Errorf("%s: %w [1,%d]", op, ErrInvalidCount, h.maxCount))
			return
		}
	}

	recs, strategy, err := h.deps.Recommend(r.Context(), userID, n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}
	if recs == nil {
		recs = []types.Recommendation{}
	}

	writeJSON(w, http.StatusOK, recommendationsResponse{
		UserID:          userID,
		Recommendations: recs,
		Strategy:        strategy,
		TotalCount:      len(recs),
	})
}

// userIDFromPath extracts and validates the user id path parameter.
func userIDFromPath(path, prefix string) (types.UserID, error) {
	raw := strings.TrimPrefix(path, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return 0, ErrInvalidUserID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrInvalidUserID
	}
	return id, nil
}
