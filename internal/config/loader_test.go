package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/melodig/trackmix/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then defaults are returned", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8000")
			So(cfg.DataSource, ShouldEqual, "local")
			So(cfg.HistoryBackend, ShouldEqual, "memory")
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRACKMIX_ADDR", ":9000")
	t.Setenv("TRACKMIX_DATA_DIR", "/srv/datasets")
	t.Setenv("TRACKMIX_HISTORY_BACKEND", "redis")

	Convey("Given env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9000")
			So(cfg.DataDir, ShouldEqual, "/srv/datasets")
			So(cfg.HistoryBackend, ShouldEqual, "redis")
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\ndefault_count: 25\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRACKMIX_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.DefaultCount, ShouldEqual, 25)
		})
	})
}

func TestLoadFileEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TRACKMIX_CONFIG", path)
	t.Setenv("TRACKMIX_ADDR", ":6060")

	Convey("Given both a config file and an env override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then env wins", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})
}

func TestLoadInvalidDataSource(t *testing.T) {
	t.Setenv("TRACKMIX_DATA_SOURCE", "ftp")

	Convey("Given an unknown data source", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with an invalid-config error", func() {
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}

func TestLoadInvalidDefaultCount(t *testing.T) {
	t.Setenv("TRACKMIX_DEFAULT_COUNT", "500")

	Convey("Given a default count above max", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with an invalid-config error", func() {
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("TRACKMIX_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a config path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails loudly", func() {
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})
}
