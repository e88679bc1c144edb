// Package metrics provides Prometheus metrics for the rating pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Batch metrics - one rating pass over the match table
	matchesProcessed prometheus.Counter
	matchesSkipped   prometheus.Counter
	batchRuns        prometheus.Counter
	batchDurationMs  prometheus.Histogram

	// State metrics
	playersTracked  prometheus.Gauge
	snapshotLogSize prometheus.Gauge

	// Export metrics
	exportRows *prometheus.CounterVec

	// HTTP metrics for the read-only reporting API
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByComponent *prometheus.CounterVec
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
		namespace:        "tennis",
		subsystem:        "elo",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.matchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_processed_total",
		Help:      "Total number of valid matches applied to the rating store",
	})

	m.matchesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_skipped_total",
		Help:      "Total number of records skipped for data-quality reasons",
	})

	m.batchRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_runs_total",
		Help:      "Total number of completed batch rating passes",
	})

	m.batchDurationMs = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of batch pass duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_tracked",
		Help:      "Number of competitors materialized in the rating store",
	})

	m.snapshotLogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_log_size",
		Help:      "Number of pre-match snapshots recorded so far",
	})

	m.exportRows = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "export_rows_total",
			Help:      "Total rows written per export artifact",
		},
		[]string{"artifact"},
	)

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

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total errors by component and kind",
		},
		[]string{"component", "kind"},
	)
}

// GetRegistry returns the custom registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// AddMatchesProcessed adds to the processed-matches counter.
func AddMatchesProcessed(n int) {
	globalManager.matchesProcessed.Add(float64(n))
}

// AddMatchesSkipped adds to the skipped-records counter.
func AddMatchesSkipped(n int) {
	globalManager.matchesSkipped.Add(float64(n))
}

// RecordBatchRun marks one completed batch pass.
func RecordBatchRun() {
	globalManager.batchRuns.Inc()
}

// RecordBatchDuration observes the duration of a batch pass in milliseconds.
func RecordBatchDuration(ms float64) {
	globalManager.batchDurationMs.Observe(ms)
}

// UpdatePlayersTracked sets the players-tracked gauge.
func UpdatePlayersTracked(count int) {
	globalManager.playersTracked.Set(float64(count))
}

// UpdateSnapshotLogSize sets the snapshot-log-size gauge.
func UpdateSnapshotLogSize(size int) {
	globalManager.snapshotLogSize.Set(float64(size))
}

// RecordExport adds rows to the per-artifact export counter.
func RecordExport(artifact string, rows int) {
	globalManager.exportRows.WithLabelValues(artifact).Add(float64(rows))
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByComponent records an error by component and kind.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}
