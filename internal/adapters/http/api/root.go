// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// rootResponse is the service index returned by GET /.
type rootResponse struct {
	Service   string            `json:"service"`
	Endpoints map[string]string `json:"endpoints"`
}

// RootHandler serves the service index.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests. The "/" pattern on ServeMux catches
// every unmatched path, so anything other than the exact root is a 404.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, rootResponse{
		Service: "Music Recommendations API",
		Endpoints: map[string]string{
			"health":          "/health",
			"metrics":         "/metrics",
			"stats":           "/stats",
			"recommendations": "/recommendations/{user_id}",
			"tracks":          "/tracks/{track_id}",
			"online_history":  "/online_history (POST), /online_history/{user_id} (DELETE)",
		},
	})
}
