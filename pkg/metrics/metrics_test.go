package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created and registered", func() {
				So(manager, ShouldNotBeNil)
				manager.cacheHits.WithLabelValues("memory").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names carry the namespace and subsystem", func() {
				manager.refreshCycles.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_refresh_cycles_total")
			})
		})

		Convey("When options are empty", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "edgeboard")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording dataset fetches", func() {
			before := testutil.ToFloat64(globalManager.datasetFetches.WithLabelValues("games"))
			RecordDatasetFetch("games", 12)
			RecordDatasetFetchError("games", "retryable")
			RecordDatasetFetchRetry("games")
			UpdateDatasetRows("games", 544)

			Convey("Then counters and gauges move", func() {
				So(testutil.ToFloat64(globalManager.datasetFetches.WithLabelValues("games")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.datasetRows.WithLabelValues("games")), ShouldEqual, 544)
			})
		})

		Convey("When recording cache traffic", func() {
			hits := testutil.ToFloat64(globalManager.cacheHits.WithLabelValues("memory"))
			misses := testutil.ToFloat64(globalManager.cacheMisses.WithLabelValues("memory"))
			RecordCacheHit("memory")
			RecordCacheMiss("memory")
			RecordCacheError("memory", "get")

			Convey("Then hits and misses are counted separately", func() {
				So(testutil.ToFloat64(globalManager.cacheHits.WithLabelValues("memory")), ShouldEqual, hits+1)
				So(testutil.ToFloat64(globalManager.cacheMisses.WithLabelValues("memory")), ShouldEqual, misses+1)
			})
		})

		Convey("When recording the rest", func() {
			So(func() {
				RecordRefreshCycle(40, 1)
				RecordCalculator("ats", 1.5, 32)
				RecordHTTPRequest("ats", "GET", "200")
				RecordHTTPRequestDuration("ats", "GET", "200", 3)
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
