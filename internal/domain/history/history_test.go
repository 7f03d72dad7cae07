package history_test

import (
	"context"
	"sync"
	"testing"

	"github.com/melodig/trackmix/internal/domain/history"
	"github.com/melodig/trackmix/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new in-memory history cache", t, func() {
		c := history.NewInMemoryCache()

		Convey("When no entry exists for a user", func() {
			got, err := c.Get(ctx, 42)

			Convey("Then Get returns empty without error", func() {
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
			})

			Convey("And Clear reports that nothing was found", func() {
				found, err := c.Clear(ctx, 42)
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
			})
		})

		Convey("When setting a history entry", func() {
			So(c.Set(ctx, 7, []types.TrackID{1, 2, 3}), ShouldBeNil)

			Convey("Then Get returns the stored tracks in order", func() {
				got, err := c.Get(ctx, 7)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []types.TrackID{1, 2, 3})
				So(c.Size(ctx), ShouldEqual, 1)
			})

			Convey("And a later report replaces the entry wholesale", func() {
				So(c.Set(ctx, 7, []types.TrackID{9}), ShouldBeNil)
				got, err := c.Get(ctx, 7)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []types.TrackID{9})
				So(c.Size(ctx), ShouldEqual, 1)
			})

			Convey("And Clear removes it exactly once", func() {
				found, err := c.Clear(ctx, 7)
				So(err, ShouldBeNil)
				So(found, ShouldBeTrue)

				found, err = c.Clear(ctx, 7)
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
				So(c.Size(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the caller mutates its slice after Set", func() {
			report := []types.TrackID{5, 6}
			So(c.Set(ctx, 1, report), ShouldBeNil)
			report[0] = 999

			Convey("Then the stored entry is unaffected", func() {
				got, err := c.Get(ctx, 1)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []types.TrackID{5, 6})
			})
		})

		Convey("When many goroutines mutate different users", func() {
			var wg sync.WaitGroup
			for i := 0; i < 64; i++ {
				wg.Add(1)
				go func(id types.UserID) {
					defer wg.Done()
					_ = c.Set(ctx, id, []types.TrackID{int64(id) * 10})
					_, _ = c.Get(ctx, id)
				}(types.UserID(i))
			}
			wg.Wait()

			Convey("Then every user keeps its own entry", func() {
				So(c.Size(ctx), ShouldEqual, 64)
				got, err := c.Get(ctx, 13)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []types.TrackID{130})
			})
		})

		Convey("When setting an empty report", func() {
			So(c.Set(ctx, 3, nil), ShouldBeNil)

			Convey("Then the entry exists but is empty", func() {
				got, err := c.Get(ctx, 3)
				So(err, ShouldBeNil)
				So(got, ShouldBeEmpty)
				So(c.Size(ctx), ShouldEqual, 1)
			})
		})
	})

	Convey("Given a cache with a pre-sized map", t, func() {
		c := history.NewInMemoryCache(history.WithInitialCapacity(1024))

		Convey("Then it behaves like the default cache", func() {
			So(c.Size(ctx), ShouldEqual, 0)
			So(c.Set(ctx, 1, []types.TrackID{1}), ShouldBeNil)
			So(c.Size(ctx), ShouldEqual, 1)
		})
	})
}
