package probe

import "time"

// Config holds configuration for the service probe
type Config struct {
	BaseURL       string        // Base URL of the service
	Count         int           // Number of recommendations to request
	KnownUserID   int64         // User expected to have an offline ranking
	UnknownUserID int64         // User expected to be absent from the rankings
	Timeout       time.Duration // HTTP request timeout
	LogFile       string        // Log file for probe output
	Verbose       bool          // Enable verbose logging
}

// Recommendation mirrors a single entry of the recommendations response
type Recommendation struct {
	TrackID int64 `json:"track_id"`
	Rank    int   `json:"rank"`
}

// RecommendationsResponse mirrors GET /recommendations/{user_id}
type RecommendationsResponse struct {
	UserID          int64            `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
	Strategy        string           `json:"strategy"`
	TotalCount      int              `json:"total_count"`
}

// HealthResponse mirrors GET /health
type HealthResponse struct {
	Status         string `json:"status"`
	OfflineUsers   int    `json:"offline_users"`
	SimilarityRows int    `json:"similar_tracks_count"`
	PopularityRows int    `json:"popular_tracks_count"`
}

// HistoryAck mirrors the POST /online_history response
type HistoryAck struct {
	Status      string `json:"status"`
	UserID      int64  `json:"user_id"`
	TracksCount int    `json:"tracks_count"`
}

// ClearAck mirrors the DELETE /online_history/{user_id} response
type ClearAck struct {
	Status string `json:"status"`
	Found  bool   `json:"found"`
}

// Stats holds probe statistics
type Stats struct {
	ScenariosRun    int
	ScenariosPassed int
	ScenariosFailed int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
