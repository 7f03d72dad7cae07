// Package model contains domain models passed between layers.
package model

import "github.com/melodig/trackmix/internal/domain/types"

// Track is a catalog row. Only the id is mandatory; the metadata columns
// are present when the items dataset carries them.
type Track struct {
	ID     types.TrackID
	Title  string
	Artist string
	Album  string
}

// HistoryReport is a wholesale report of a user's recent plays.
// The latest report is authoritative and total; order inside TrackIDs
// is not significant to the aggregator.
type HistoryReport struct {
	UserID   types.UserID
	TrackIDs []types.TrackID
}

// SimilarTrack pairs a related track with its affinity to a seed.
type SimilarTrack struct {
	TrackID types.TrackID
	Score   float64
}
