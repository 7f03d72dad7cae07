// Package catalog holds the immutable candidate tables loaded at startup.
package catalog

import (
	"sort"

	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/types"
)

// Tables is the raw content of the four candidate datasets.
type Tables struct {
	// Offline maps a user to their batch-computed ranking.
	Offline map[types.UserID][]types.RankedTrack

	// Similar maps a seed track to its related tracks with affinity scores.
	Similar map[types.TrackID][]model.SimilarTrack

	// Popular is the global popularity ranking.
	Popular []types.RankedTrack

	// Items is the track catalog keyed by track id.
	Items map[types.TrackID]model.Track
}

// Stats summarizes snapshot sizes for health reporting.
type Stats struct {
	OfflineUsers   int `json:"offline_users"`
	SimilarityRows int `json:"similar_tracks_count"`
	PopularityRows int `json:"popular_tracks_count"`
	CatalogTracks  int `json:"catalog_tracks"`
}

// Snapshot is a read-only view over the candidate tables. It is built once
// at startup and shared by reference; no synchronization is needed for reads.
type Snapshot struct {
	tables Tables
	stats  Stats
}

// NewSnapshot builds a Snapshot, normalizing rank order so lookups can rely
// on it. Nil tables degrade to empty ones; an all-empty snapshot is valid
// and simply serves empty results.
func NewSnapshot(t Tables) *Snapshot {
	if t.Offline == nil {
		t.Offline = map[types.UserID][]types.RankedTrack{}
	}
	if t.Similar == nil {
		t.Similar = map[types.TrackID][]model.SimilarTrack{}
	}
	if t.Items == nil {
		t.Items = map[types.TrackID]model.Track{}
	}

	for _, cands := range t.Offline {
		sort.Slice(cands, func(i, j int) bool { return cands[i].Rank < cands[j].Rank })
	}
	sort.Slice(t.Popular, func(i, j int) bool { return t.Popular[i].Rank < t.Popular[j].Rank })

	rows := 0
	for _, rels := range t.Similar {
		rows += len(rels)
	}

	return &Snapshot{
		tables: t,
		stats: Stats{
			OfflineUsers:   len(t.Offline),
			SimilarityRows: rows,
			PopularityRows: len(t.Popular),
			CatalogTracks:  len(t.Items),
		},
	}
}

// OfflineFor returns the user's offline ranking ascending by rank, truncated
// to limit. Unknown users get an empty list.
func (s *Snapshot) OfflineFor(userID types.UserID, limit int) []types.RankedTrack {
	cands, ok := s.tables.Offline[userID]
	if !ok {
		return nil
	}
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]types.RankedTrack, len(cands))
	copy(out, cands)
	return out
}

// Popular returns the popularity ranking with exclude removed, truncated to
// limit. Rank values come from the source table, not renumbered.
func (s *Snapshot) Popular(limit int, exclude []types.TrackID) []types.RankedTrack {
	skip := make(map[types.TrackID]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}

	out := make([]types.RankedTrack, 0, limit)
	for _, c := range s.tables.Popular {
		if limit > 0 && len(out) >= limit {
			break
		}
		if _, excluded := skip[c.TrackID]; excluded {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SimilarTo returns the related tracks for a seed, empty if none are known.
func (s *Snapshot) SimilarTo(trackID types.TrackID) []model.SimilarTrack {
	return s.tables.Similar[trackID]
}

// Track returns catalog metadata for a track id.
func (s *Snapshot) Track(id types.TrackID) (model.Track, bool) {
	t, ok := s.tables.Items[id]
	return t, ok
}

// Stats returns the snapshot's table sizes.
func (s *Snapshot) Stats() Stats {
	return s.stats
}
