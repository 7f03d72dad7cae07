// Package metrics provides Prometheus metrics for the trackmix recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the trackmix service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics - what really matters for a recommender
	recommendationsServed *prometheus.CounterVec
	recommendationsEmpty  prometheus.Counter
	blendLatency          prometheus.Histogram
	historyUpdates        prometheus.Counter
	historyClears         prometheus.Counter

	// Candidate store metrics
	datasetRows      *prometheus.GaugeVec
	datasetsDegraded prometheus.Counter
	datasetLoadMs    prometheus.Histogram

	// Operational health metrics
	historyCacheSize prometheus.Gauge
	offlineUsers     prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "trackmix",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.recommendationsServed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendations_served_total",
			Help:      "Total number of recommendation responses served, by blending strategy",
		},
		[]string{"strategy"},
	)

	m.recommendationsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_empty_total",
		Help:      "Total number of recommendation responses with zero results",
	})

	m.blendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "blend_latency_milliseconds",
		Help:      "Histogram of blending engine latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.historyUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_updates_total",
		Help:      "Total number of session history updates accepted",
	})

	m.historyClears = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_clears_total",
		Help:      "Total number of session history clear requests",
	})

	m.datasetRows = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "dataset_rows",
			Help:      "Number of rows loaded per dataset",
		},
		[]string{"dataset"},
	)

	m.datasetsDegraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "datasets_degraded_total",
		Help:      "Total number of datasets that failed to load and were degraded to empty",
	})

	m.datasetLoadMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_milliseconds",
		Help:      "Histogram of per-dataset load duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
	})

	m.historyCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_cache_size",
		Help:      "Current number of users with a session history entry",
	})

	m.offlineUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "offline_users",
		Help:      "Number of distinct users with offline recommendations",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordRecommendationServed increments the served counter for a strategy.
func RecordRecommendationServed(strategy string) {
	globalManager.recommendationsServed.WithLabelValues(strategy).Inc()
}

// RecordRecommendationEmpty increments the empty-response counter.
func RecordRecommendationEmpty() {
	globalManager.recommendationsEmpty.Inc()
}

// RecordBlendLatency records blending engine latency in milliseconds.
func RecordBlendLatency(latencyMs float64) {
	globalManager.blendLatency.Observe(latencyMs)
}

// RecordHistoryUpdate increments the history updates counter.
func RecordHistoryUpdate() {
	globalManager.historyUpdates.Inc()
}

// RecordHistoryClear increments the history clears counter.
func RecordHistoryClear() {
	globalManager.historyClears.Inc()
}

// UpdateDatasetRows sets the row count for a dataset.
func UpdateDatasetRows(dataset string, rows int) {
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordDatasetDegraded increments the degraded datasets counter.
func RecordDatasetDegraded() {
	globalManager.datasetsDegraded.Inc()
}

// RecordDatasetLoadDuration records a per-dataset load duration in milliseconds.
func RecordDatasetLoadDuration(latencyMs float64) {
	globalManager.datasetLoadMs.Observe(latencyMs)
}

// UpdateHistoryCacheSize sets the current history cache size.
func UpdateHistoryCacheSize(size int) {
	globalManager.historyCacheSize.Set(float64(size))
}

// UpdateOfflineUsers sets the distinct offline users gauge.
func UpdateOfflineUsers(count int) {
	globalManager.offlineUsers.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
