package types_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/melodig/trackmix/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecommendationJSON(t *testing.T) {
	Convey("Given a recommendation entry", t, func() {
		rec := types.Recommendation{TrackID: 531892, Rank: 1}

		Convey("When encoding to JSON", func() {
			data, err := json.Marshal(rec)

			Convey("Then it should use the wire field names", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"track_id":531892,"rank":1}`)
			})
		})
	})
}

func TestStrategyLabels(t *testing.T) {
	Convey("Given the blending strategies", t, func() {
		Convey("Then the labels should match the public contract", func() {
			So(string(types.StrategyMixed), ShouldEqual, "mixed_online_offline")
			So(string(types.StrategyOffline), ShouldEqual, "offline_only")
			So(string(types.StrategyPopular), ShouldEqual, "popular_fallback")
		})
	})
}
