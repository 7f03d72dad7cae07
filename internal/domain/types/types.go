// Package types contains common types used across the application
package types

// TrackID identifies a track in the catalog. Opaque, non-negative.
type TrackID = int64

// UserID identifies a listener. Opaque, non-negative.
type UserID = int64

// RankedTrack is a candidate carrying its source rank (1 = best).
type RankedTrack struct {
	TrackID TrackID
	Rank    int
}

// ScoredTrack is a candidate carrying an affinity score (higher = better).
// Rank is implicit by position in the slice that holds it.
type ScoredTrack struct {
	TrackID TrackID
	Score   float64
}

// Recommendation is a single entry of a recommendation response.
type Recommendation struct {
	TrackID TrackID `json:"track_id"`
	Rank    int     `json:"rank"`
}

// Strategy labels the blending path that produced a response.
type Strategy string

const (
	// StrategyMixed blends similarity expansion of recent history with
	// offline candidates under the 30/70 quota.
	StrategyMixed Strategy = "mixed_online_offline"
	// StrategyOffline returns the stored offline ranking as-is.
	StrategyOffline Strategy = "offline_only"
	// StrategyPopular falls back to the global popularity ranking.
	StrategyPopular Strategy = "popular_fallback"
)
