// Package similar expands recently heard tracks into candidates via the
// co-occurrence similarity table.
package similar

import (
	"context"
	"sort"

	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/types"
)

// Lookup resolves a seed track to its related tracks with affinity scores.
// Implemented by the catalog snapshot; lookups are always by seed track,
// symmetry is not assumed.
type Lookup interface {
	SimilarTo(trackID types.TrackID) []model.SimilarTrack
}

// Expander produces a ranked candidate list from a set of seed tracks.
type Expander interface {
	Expand(ctx context.Context, seeds []types.TrackID, limit int, exclude []types.TrackID) []types.ScoredTrack
}

// Aggregator implements Expander by summed-affinity aggregation over the
// similarity table. Pure function of its inputs and the immutable table.
type Aggregator struct {
	lookup Lookup
}

// NewAggregator creates an Aggregator over the given similarity lookup.
func NewAggregator(lookup Lookup) *Aggregator {
	return &Aggregator{lookup: lookup}
}

// Expand returns up to limit candidates ordered by descending summed affinity.
// Tracks in seeds or exclude never appear in the output. Multiple seeds
// pointing at the same related track accumulate their scores, which rewards
// tracks related to more than one recently played track.
func (a *Aggregator) Expand(_ context.Context, seeds []types.TrackID, limit int, exclude []types.TrackID) []types.ScoredTrack {
	if len(seeds) == 0 {
		return nil
	}

	excluded := make(map[types.TrackID]struct{}, len(seeds)+len(exclude))
	for _, id := range seeds {
		excluded[id] = struct{}{}
	}
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	summed := make(map[types.TrackID]float64)
	for _, seed := range seeds {
		for _, rel := range a.lookup.SimilarTo(seed) {
			if _, skip := excluded[rel.TrackID]; skip {
				continue
			}
			summed[rel.TrackID] += rel.Score
		}
	}

	if len(summed) == 0 {
		return nil
	}

	out := make([]types.ScoredTrack, 0, len(summed))
	for id, score := range summed {
		out = append(out, types.ScoredTrack{TrackID: id, Score: score})
	}

	// Descending by score; ties break by ascending track id so results
	// are deterministic.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TrackID < out[j].TrackID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
