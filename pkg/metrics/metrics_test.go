package metrics_test

import (
	"testing"

	"github.com/melodig/trackmix/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func gatherValue(t *testing.T, name string, labels map[string]string) (float64, bool) {
	t.Helper()
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	metric:
		for _, m := range fam.GetMetric() {
			for k, v := range labels {
				if !hasLabel(m, k, v) {
					continue metric
				}
			}
			switch fam.GetType() {
			case dto.MetricType_COUNTER:
				return m.GetCounter().GetValue(), true
			case dto.MetricType_GAUGE:
				return m.GetGauge().GetValue(), true
			default:
				return 0, false
			}
		}
	}
	return 0, false
}

func hasLabel(m *dto.Metric, key, value string) bool {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == key && lp.GetValue() == value {
			return true
		}
	}
	return false
}

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording served recommendations", func() {
			before, _ := gatherValue(t, "trackmix_recommender_recommendations_served_total", map[string]string{"strategy": "popular_fallback"})
			metrics.RecordRecommendationServed("popular_fallback")
			after, ok := gatherValue(t, "trackmix_recommender_recommendations_served_total", map[string]string{"strategy": "popular_fallback"})

			Convey("Then the strategy-labelled counter increments", func() {
				So(ok, ShouldBeTrue)
				So(after, ShouldEqual, before+1)
			})
		})

		Convey("When updating dataset rows", func() {
			metrics.UpdateDatasetRows("popular", 1234)
			v, ok := gatherValue(t, "trackmix_recommender_dataset_rows", map[string]string{"dataset": "popular"})

			Convey("Then the gauge reflects the latest value", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1234)
			})
		})

		Convey("When updating the history cache size", func() {
			metrics.UpdateHistoryCacheSize(7)
			v, ok := gatherValue(t, "trackmix_recommender_history_cache_size", nil)

			Convey("Then the gauge reflects the latest value", func() {
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 7)
			})
		})
	})

	Convey("Given a manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(reg),
			metrics.WithNamespace("test"),
			metrics.WithSubsystem("mix"),
		)

		Convey("Then construction registers without panicking", func() {
			So(m, ShouldNotBeNil)
			families, err := reg.Gather()
			So(err, ShouldBeNil)
			// Gauges and counters register lazily; vec metrics appear once used.
			So(families, ShouldNotBeEmpty)
		})
	})
}
