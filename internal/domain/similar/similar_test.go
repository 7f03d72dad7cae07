package similar_test

import (
	"context"
	"testing"

	"github.com/melodig/trackmix/internal/domain/model"
	"github.com/melodig/trackmix/internal/domain/similar"
	"github.com/melodig/trackmix/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// tableLookup is a fixed in-memory similarity table for tests.
type tableLookup map[types.TrackID][]model.SimilarTrack

func (t tableLookup) SimilarTo(trackID types.TrackID) []model.SimilarTrack {
	return t[trackID]
}

func TestAggregator(t *testing.T) {
	ctx := context.Background()

	Convey("Given a similarity table", t, func() {
		table := tableLookup{
			5: {{TrackID: 9, Score: 5.0}, {TrackID: 6, Score: 1.0}},
			6: {{TrackID: 9, Score: 2.0}, {TrackID: 8, Score: 2.0}, {TrackID: 5, Score: 4.0}},
		}
		agg := similar.NewAggregator(table)

		Convey("When expanding with no seeds", func() {
			got := agg.Expand(ctx, nil, 10, []types.TrackID{1, 2})

			Convey("Then the result is empty regardless of limit and exclusions", func() {
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When expanding a single seed", func() {
			got := agg.Expand(ctx, []types.TrackID{5}, 10, nil)

			Convey("Then related tracks come back by descending score", func() {
				So(got, ShouldResemble, []types.ScoredTrack{
					{TrackID: 9, Score: 5.0},
					{TrackID: 6, Score: 1.0},
				})
			})
		})

		Convey("When two seeds point at the same related track", func() {
			got := agg.Expand(ctx, []types.TrackID{5, 6}, 10, nil)

			Convey("Then its scores accumulate and seeds never appear", func() {
				So(got, ShouldResemble, []types.ScoredTrack{
					{TrackID: 9, Score: 7.0},
					{TrackID: 8, Score: 2.0},
				})
			})
		})

		Convey("When an exclusion list is supplied", func() {
			got := agg.Expand(ctx, []types.TrackID{5}, 10, []types.TrackID{9})

			Convey("Then excluded tracks are discarded before aggregation", func() {
				So(got, ShouldResemble, []types.ScoredTrack{{TrackID: 6, Score: 1.0}})
			})
		})

		Convey("When scores tie", func() {
			tied := tableLookup{
				1: {{TrackID: 30, Score: 2.0}, {TrackID: 20, Score: 2.0}, {TrackID: 10, Score: 2.0}},
			}
			got := similar.NewAggregator(tied).Expand(ctx, []types.TrackID{1}, 10, nil)

			Convey("Then ties break by ascending track id", func() {
				So(got, ShouldResemble, []types.ScoredTrack{
					{TrackID: 10, Score: 2.0},
					{TrackID: 20, Score: 2.0},
					{TrackID: 30, Score: 2.0},
				})
			})
		})

		Convey("When the limit is smaller than the candidate set", func() {
			got := agg.Expand(ctx, []types.TrackID{5, 6}, 1, nil)

			Convey("Then the list is truncated after sorting", func() {
				So(got, ShouldResemble, []types.ScoredTrack{{TrackID: 9, Score: 7.0}})
			})
		})

		Convey("When no seed has similarity rows", func() {
			got := agg.Expand(ctx, []types.TrackID{777}, 10, nil)

			Convey("Then the result is empty", func() {
				So(got, ShouldBeEmpty)
			})
		})
	})
}
