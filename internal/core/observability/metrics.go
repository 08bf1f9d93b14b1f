// Package observability exposes Prometheus metrics for the pipeline.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "route", "status"},
	)

	ingestFeaturesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_features_total",
			Help: "Dataset features seen at ingestion by outcome.",
		},
		[]string{"category", "outcome"},
	)

	datasetFetchSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_fetch_duration_seconds",
			Help:    "Latency of dataset fetches in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"category", "outcome"},
	)

	filterRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filter_runs_total",
			Help: "Full predicate evaluations over the point store.",
		},
	)

	filterMemoResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filter_memo_results_total",
			Help: "Filter result memo lookups by outcome.",
		},
		[]string{"outcome"},
	)

	markerCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marker_cache_results_total",
			Help: "Marker handle cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	visiblePoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "viewport_visible_points",
			Help:    "Size of the materialized visible set per recomputation.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 11), // 1 to 1024
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)
)

func ObserveHTTP(method, route string, status int, durationSeconds float64) {
	st := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, st).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, st).Observe(durationSeconds)
}

func IncIngestAccepted(category string) {
	ingestFeaturesTotal.WithLabelValues(category, "accepted").Inc()
}

func IncIngestSkipped(category string) {
	ingestFeaturesTotal.WithLabelValues(category, "skipped").Inc()
}

func ObserveDatasetFetch(category string, ok bool, durationSeconds float64) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	datasetFetchSeconds.WithLabelValues(category, outcome).Observe(durationSeconds)
}

func IncFilterRun() {
	filterRunsTotal.Inc()
}

func IncFilterMemoHit()  { filterMemoResults.WithLabelValues("hit").Inc() }
func IncFilterMemoMiss() { filterMemoResults.WithLabelValues("miss").Inc() }

func IncMarkerCacheHit()  { markerCacheResults.WithLabelValues("hit").Inc() }
func IncMarkerCacheMiss() { markerCacheResults.WithLabelValues("miss").Inc() }

func ObserveVisiblePoints(n int) {
	visiblePoints.Observe(float64(n))
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}
