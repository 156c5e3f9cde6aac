// Package metrics provides Prometheus metrics for statsboard.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Page outcomes recorded by the ingestion runner.
const (
	OutcomeOK                  = "ok"
	OutcomeUpstreamUnavailable = "upstream_unavailable"
	OutcomeMalformedResponse   = "malformed_response"
)

// Manager owns every Prometheus collector statsboard exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	ingestPages         *prometheus.CounterVec
	ingestRowsWritten   *prometheus.GaugeVec
	ingestNullsImputed  *prometheus.CounterVec
	ingestRunDuration   *prometheus.HistogramVec
	ingestLastRunUnix   *prometheus.GaugeVec
	ingestWriteFailures *prometheus.CounterVec

	// Dashboard
	datasetRows         *prometheus.GaugeVec
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "statsboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.ingestPages = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_pages_total",
		Help:      "Pages requested during ingestion by sport and outcome",
	}, []string{"sport", "outcome"})

	m.ingestRowsWritten = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_rows_written",
		Help:      "Rows persisted by the last ingestion run",
	}, []string{"sport"})

	m.ingestNullsImputed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_nulls_imputed_total",
		Help:      "Null cells replaced with zero before persistence",
	}, []string{"sport"})

	m.ingestRunDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_run_duration_seconds",
		Help:      "Wall time of an ingestion run",
		Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
	}, []string{"sport"})

	m.ingestLastRunUnix = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_last_run_unix",
		Help:      "Unix time of the last finished ingestion run",
	}, []string{"sport"})

	m.ingestWriteFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_write_failures_total",
		Help:      "Snapshot writes that failed",
	}, []string{"sport"})

	m.datasetRows = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Rows loaded from the snapshot of each sport",
	}, []string{"sport"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordPage counts one ingestion page with its outcome.
func (m *Manager) RecordPage(sport, outcome string) error {
	switch outcome {
	case OutcomeOK, OutcomeUpstreamUnavailable, OutcomeMalformedResponse:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, outcome)
	}
	m.ingestPages.WithLabelValues(sport, outcome).Inc()
	return nil
}

// RecordPage counts one ingestion page on the global manager.
func RecordPage(sport, outcome string) error {
	return globalManager.RecordPage(sport, outcome)
}

// RecordRowsWritten sets the row count of the last persisted snapshot.
func RecordRowsWritten(sport string, rows int) {
	globalManager.ingestRowsWritten.WithLabelValues(sport).Set(float64(rows))
}

// RecordNullsImputed adds to the imputed-cell counter.
func RecordNullsImputed(sport string, cells int) {
	globalManager.ingestNullsImputed.WithLabelValues(sport).Add(float64(cells))
}

// RecordRunFinished observes the run duration and stamps the finish time.
func RecordRunFinished(sport string, seconds float64, finishedUnix int64) {
	globalManager.ingestRunDuration.WithLabelValues(sport).Observe(seconds)
	globalManager.ingestLastRunUnix.WithLabelValues(sport).Set(float64(finishedUnix))
}

// RecordWriteFailure counts a failed snapshot write.
func RecordWriteFailure(sport string) {
	globalManager.ingestWriteFailures.WithLabelValues(sport).Inc()
}

// UpdateDatasetRows sets the loaded row count of a sport's dataset.
func UpdateDatasetRows(sport string, rows int) {
	globalManager.datasetRows.WithLabelValues(sport).Set(float64(rows))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
