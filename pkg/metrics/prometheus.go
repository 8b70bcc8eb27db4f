// Package metrics provides Prometheus metrics for the edgeboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Data source
	datasetFetches      *prometheus.CounterVec
	datasetFetchErrors  *prometheus.CounterVec
	datasetFetchRetries *prometheus.CounterVec
	datasetFetchLatency *prometheus.HistogramVec
	datasetRows         *prometheus.GaugeVec

	// Cache
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheErrors *prometheus.CounterVec

	// Refresh loop
	refreshCycles   prometheus.Counter
	refreshFailures prometheus.Counter
	refreshDuration prometheus.Histogram

	// Calculators
	calculatorLatency *prometheus.HistogramVec
	calculatorRows    *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // custom registry keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "edgeboard",
		subsystem:        "",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.datasetFetches = m.counterVec("dataset_fetches_total", "Dataset fetch attempts by dataset", "dataset")
	m.datasetFetchErrors = m.counterVec("dataset_fetch_errors_total", "Failed dataset fetches by dataset and kind", "dataset", "kind")
	m.datasetFetchRetries = m.counterVec("dataset_fetch_retries_total", "Retried dataset fetches by dataset", "dataset")
	m.datasetFetchLatency = m.histogramVec("dataset_fetch_latency_milliseconds", "Dataset fetch latency in milliseconds", m.histogramBuckets, "dataset")
	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dataset_rows",
		Help:        "Row count of the last fetched copy of each dataset",
		ConstLabels: m.constLabels,
	}, []string{"dataset"})

	m.cacheHits = m.counterVec("cache_hits_total", "Dataset cache hits by backend", "backend")
	m.cacheMisses = m.counterVec("cache_misses_total", "Dataset cache misses by backend", "backend")
	m.cacheErrors = m.counterVec("cache_errors_total", "Dataset cache errors by backend and operation", "backend", "op")

	m.refreshCycles = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "refresh_cycles_total",
		Help:        "Completed dataset refresh cycles",
		ConstLabels: m.constLabels,
	})
	m.refreshFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "refresh_failures_total",
		Help:        "Datasets that failed to refresh",
		ConstLabels: m.constLabels,
	})
	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "refresh_duration_milliseconds",
		Help:        "Duration of a full refresh cycle in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.calculatorLatency = m.histogramVec("calculator_latency_milliseconds", "Calculator latency in milliseconds, excluding dataset load", m.histogramBuckets, "calculator")
	m.calculatorRows = m.histogramVec("calculator_output_rows", "Rows returned per calculator call",
		[]float64{0, 1, 5, 11, 32, 64, 128, 256, 512}, "calculator")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds",
		m.histogramBuckets, "endpoint", "method", "status_code")
}

// RecordDatasetFetch counts a fetch attempt and its latency.
func RecordDatasetFetch(dataset string, latencyMs float64) {
	globalManager.datasetFetches.WithLabelValues(dataset).Inc()
	globalManager.datasetFetchLatency.WithLabelValues(dataset).Observe(latencyMs)
}

// RecordDatasetFetchError counts a failed fetch. kind is "retryable" or "terminal".
func RecordDatasetFetchError(dataset, kind string) {
	globalManager.datasetFetchErrors.WithLabelValues(dataset, kind).Inc()
}

// RecordDatasetFetchRetry counts a retry of a dataset fetch.
func RecordDatasetFetchRetry(dataset string) {
	globalManager.datasetFetchRetries.WithLabelValues(dataset).Inc()
}

// UpdateDatasetRows sets the row gauge for a dataset.
func UpdateDatasetRows(dataset string, rows int) {
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordCacheHit increments cache hits for backend.
func RecordCacheHit(backend string) {
	globalManager.cacheHits.WithLabelValues(backend).Inc()
}

// RecordCacheMiss increments cache misses for backend.
func RecordCacheMiss(backend string) {
	globalManager.cacheMisses.WithLabelValues(backend).Inc()
}

// RecordCacheError increments cache errors for backend and op ("get" or "set").
func RecordCacheError(backend, op string) {
	globalManager.cacheErrors.WithLabelValues(backend, op).Inc()
}

// RecordRefreshCycle records a completed refresh cycle.
func RecordRefreshCycle(durationMs float64, failures int) {
	globalManager.refreshCycles.Inc()
	globalManager.refreshDuration.Observe(durationMs)
	globalManager.refreshFailures.Add(float64(failures))
}

// RecordCalculator records latency and output size of a calculator call.
func RecordCalculator(calculator string, latencyMs float64, rows int) {
	globalManager.calculatorLatency.WithLabelValues(calculator).Observe(latencyMs)
	globalManager.calculatorRows.WithLabelValues(calculator).Observe(float64(rows))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
