package config_test

import (
	"testing"

	"github.com/melodig/trackmix/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.DefaultCount, convey.ShouldEqual, 50)
			convey.So(cfg.MaxCount, convey.ShouldEqual, 100)
			convey.So(cfg.OfflineFetchLimit, convey.ShouldEqual, 100)
			convey.So(cfg.DataSource, convey.ShouldEqual, "local")
			convey.So(cfg.HistoryBackend, convey.ShouldEqual, "memory")
		})
	})
}
