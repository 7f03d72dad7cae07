// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/melodig/trackmix/internal/domain/types"
)

// HistoryDependencies defines the interface for session history operations.
type HistoryDependencies interface {
	UpdateHistory(ctx context.Context, userID types.UserID, trackIDs []types.TrackID) (int, error)
	ClearHistory(ctx context.Context, userID types.UserID) (bool, error)
}

// HistoryHandler handles session history requests.
type HistoryHandler struct {
	deps HistoryDependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

// HandleUpdateHistory handles POST /online_history requests. The report
// replaces any previous history wholesale and always succeeds.
func (h *HistoryHandler) HandleUpdateHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_history"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req historyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w: %v", op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	count, err := h.deps.UpdateHistory(r.Context(), *req.UserID, req.TrackIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	writeJSON(w, http.StatusOK, historyAckResponse{
		Status:      "success",
		UserID:      *req.UserID,
		TracksCount: count,
	})
}

// HandleClearHistory handles DELETE /online_history/{user_id} requests.
// Clearing an absent history is not an error; it reports not_found.
func (h *HistoryHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.clear_history"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	userID, err := userIDFromPath(r.URL.Path, "/online_history/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, err))
		return
	}

	found, err := h.deps.ClearHistory(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	if !found {
		writeJSON(w, http.StatusOK, clearResponse{
			Status:  "not_found",
			Found:   false,
			Message: fmt.Sprintf("no history for user %d", userID),
		})
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{
		Status:  "success",
		Found:   true,
		Message: fmt.Sprintf("history for user %d cleared", userID),
	})
}
