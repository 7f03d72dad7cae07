// Package blend implements the strategy selection and merge algorithm that
// turns offline, similarity and popularity candidates into one ranked list.
package blend

import (
	"context"
	"fmt"

	"github.com/melodig/trackmix/internal/domain/history"
	"github.com/melodig/trackmix/internal/domain/similar"
	"github.com/melodig/trackmix/internal/domain/types"
)

// Merge quota: 30% of the output slots go to similarity-derived candidates,
// the rest to offline candidates. Fixed, not configurable.
const onlineWeightPercent = 30

// defaultOfflineFetchLimit is how many offline candidates are fetched
// regardless of the requested n, so the merge has enough material to
// dedupe against online picks without falling short.
const defaultOfflineFetchLimit = 100

// CandidateSource exposes the immutable candidate tables the engine reads.
// Implemented by the catalog snapshot.
type CandidateSource interface {
	// OfflineFor returns the user's offline ranking, ascending by rank,
	// truncated to limit. Empty if the user is unknown.
	OfflineFor(userID types.UserID, limit int) []types.RankedTrack

	// Popular returns the global popularity ranking with any track in
	// exclude removed, truncated to limit. Source ranks are preserved.
	Popular(limit int, exclude []types.TrackID) []types.RankedTrack
}

// Engine selects a blending strategy per request and merges candidate lists.
// It holds no per-request state; every call is a one-shot evaluation.
type Engine struct {
	source   CandidateSource
	history  history.Cache
	expander similar.Expander

	offlineFetchLimit int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithOfflineFetchLimit overrides how many offline candidates are fetched
// for the merge, independent of the requested result count.
func WithOfflineFetchLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.offlineFetchLimit = limit
		}
	}
}

// New constructs a blending engine over the given collaborators.
func New(source CandidateSource, cache history.Cache, expander similar.Expander, opts ...Option) *Engine {
	e := &Engine{
		source:            source,
		history:           cache,
		expander:          expander,
		offlineFetchLimit: defaultOfflineFetchLimit,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Recommend produces up to n ranked recommendations for userID together with
// the strategy label that describes which path produced them.
//
// Strategy selection:
//   - history and offline candidates both present: similarity expansion of
//     the history merged with offline under the 30/70 quota
//   - offline candidates only: the stored offline ranking, truncated
//   - no offline candidates: global popularity minus the user's history
//
// An unknown user is not an error; it lands on the popularity fallback.
func (e *Engine) Recommend(ctx context.Context, userID types.UserID, n int) ([]types.Recommendation, types.Strategy, error) {
	// Fetch offline candidates wider than n so the merge can skip
	// duplicates of online picks without running short.
	fetchLimit := e.offlineFetchLimit
	if n > fetchLimit {
		fetchLimit = n
	}
	offline := e.source.OfflineFor(userID, fetchLimit)

	heard, err := e.history.Get(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("history lookup for user %d: %w", userID, err)
	}

	switch {
	case len(heard) > 0 && len(offline) > 0:
		online := e.expander.Expand(ctx, heard, n, heard)
		return e.merge(online, offline, n), types.StrategyMixed, nil

	case len(offline) > 0:
		recs := make([]types.Recommendation, 0, n)
		for _, c := range offline {
			if len(recs) >= n {
				break
			}
			recs = append(recs, types.Recommendation{TrackID: c.TrackID, Rank: c.Rank})
		}
		return recs, types.StrategyOffline, nil

	default:
		popular := e.source.Popular(n, heard)
		recs := make([]types.Recommendation, 0, len(popular))
		for _, c := range popular {
			recs = append(recs, types.Recommendation{TrackID: c.TrackID, Rank: c.Rank})
		}
		return recs, types.StrategyPopular, nil
	}
}

// merge fills up to n output slots: the first n*30% from the online list in
// score order, the rest from the offline list in stored rank order, skipping
// tracks already placed. Output ranks are sequential 1..k.
//
// An online shortfall is deliberately not redistributed: the offline fill is
// bounded only by the total output length, never by its own quota.
func (e *Engine) merge(online []types.ScoredTrack, offline []types.RankedTrack, n int) []types.Recommendation {
	result := make([]types.Recommendation, 0, n)
	seen := make(map[types.TrackID]struct{}, n)

	nOnline := n * onlineWeightPercent / 100
	if nOnline > len(online) {
		nOnline = len(online)
	}

	for _, c := range online[:nOnline] {
		if _, dup := seen[c.TrackID]; dup {
			continue
		}
		result = append(result, types.Recommendation{TrackID: c.TrackID, Rank: len(result) + 1})
		seen[c.TrackID] = struct{}{}
	}

	for _, c := range offline {
		if len(result) >= n {
			break
		}
		if _, dup := seen[c.TrackID]; dup {
			continue
		}
		result = append(result, types.Recommendation{TrackID: c.TrackID, Rank: len(result) + 1})
		seen[c.TrackID] = struct{}{}
	}

	return result
}
