package probe

import (
	"fmt"
)

// verifyAscendingRanks checks the response ranks strictly increase. The
// offline and popularity strategies keep the stored ranks, so gaps are fine
// but inversions are not.
func verifyAscendingRanks(recs []Recommendation) error {
	for i := 1; i < len(recs); i++ {
		if recs[i].Rank <= recs[i-1].Rank {
			return fmt.Errorf("rank inversion at position %d: %d after %d", i, recs[i].Rank, recs[i-1].Rank)
		}
	}
	return nil
}

// verifySequentialRanks checks the response ranks run 1..len with no gaps.
// The mixed blend renumbers its output.
func verifySequentialRanks(recs []Recommendation) error {
	for i, rec := range recs {
		if rec.Rank != i+1 {
			return fmt.Errorf("rank gap at position %d: got rank %d, want %d", i, rec.Rank, i+1)
		}
	}
	return nil
}

// historyLeaks returns the session tracks that appear in the recommendations.
func historyLeaks(recs []Recommendation, history []int64) []int64 {
	heard := make(map[int64]struct{}, len(history))
	for _, id := range history {
		heard[id] = struct{}{}
	}

	var leaked []int64
	for _, rec := range recs {
		if _, ok := heard[rec.TrackID]; ok {
			leaked = append(leaked, rec.TrackID)
		}
	}
	return leaked
}

// firstTrackIDs returns up to n leading track ids for log output.
func firstTrackIDs(recs []Recommendation, n int) []int64 {
	if len(recs) < n {
		n = len(recs)
	}
	ids := make([]int64, 0, n)
	for _, rec := range recs[:n] {
		ids = append(ids, rec.TrackID)
	}
	return ids
}
