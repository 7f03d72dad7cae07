// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/types"
)

// TrackDependencies defines the interface for catalog lookups.
type TrackDependencies interface {
	Track(ctx context.Context, id types.TrackID) (model.Track, bool)
}

// trackResponse mirrors the OpenAPI schema for GET /tracks/{track_id}.
type trackResponse struct {
	TrackID types.TrackID `json:"track_id"`
	Title   string        `json:"title,omitempty"`
	Artist  string        `json:"artist,omitempty"`
	Album   string        `json:"album,omitempty"`
}

// TracksHandler handles track catalog requests.
type TracksHandler struct {
	deps TrackDependencies
}

// NewTracksHandler creates a new tracks handler.
func NewTracksHandler(deps TrackDependencies) *TracksHandler {
	return &TracksHandler{deps: deps}
}

// HandleGetTrack handles GET /tracks/{track_id} requests.
func (h *TracksHandler) HandleGetTrack(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_track"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	trackID, err := userIDFromPath(r.URL.Path, "/tracks/")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrInvalidTrackID))
		return
	}

	track, ok := h.deps.Track(r.Context(), trackID)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%s: track %d not in catalog", op, trackID))
		return
	}

	writeJSON(w, http.StatusOK, trackResponse{
		TrackID: track.ID,
		Title:   track.Title,
		Artist:  track.Artist,
		Album:   track.Album,
	})
}
