// Package metrics implements the types.Metrics contract on top of the
// Prometheus client library. Metric names are prefixed with the service name
// and follow Prometheus naming conventions.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dowjones/factiva-core-go/observability/types"
)

// PrometheusMetrics records request and download measurements.
type PrometheusMetrics struct {
	processedTotal  *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	durationSeconds *prometheus.HistogramVec
	fileSizeBytes   *prometheus.HistogramVec
	inProgress      *prometheus.GaugeVec
}

var _ types.Metrics = (*PrometheusMetrics)(nil)

// New creates a PrometheusMetrics instance and registers its collectors with
// registerer. Passing prometheus.DefaultRegisterer is the usual choice; tests
// pass a private registry. Registration failures panic, matching the client
// library's MustRegister behavior.
func New(serviceName string, registerer prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		processedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_processed_total", serviceName),
				Help: fmt.Sprintf("Total processed operations by %s", serviceName),
			},
			[]string{"status", "type"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: fmt.Sprintf("%s_errors_total", serviceName),
				Help: fmt.Sprintf("Total errors in %s", serviceName),
			},
			[]string{"error_type", "operation"},
		),
		durationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    fmt.Sprintf("%s_duration_seconds", serviceName),
				Help:    fmt.Sprintf("Operation duration in %s", serviceName),
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		fileSizeBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: fmt.Sprintf("%s_file_size_bytes", serviceName),
				Help: fmt.Sprintf("File sizes processed by %s", serviceName),
				Buckets: []float64{
					1024,       // 1KB
					10240,      // 10KB
					102400,     // 100KB
					1048576,    // 1MB
					10485760,   // 10MB
					104857600,  // 100MB
					1073741824, // 1GB
				},
			},
			[]string{"file_type"},
		),
		inProgress: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: fmt.Sprintf("%s_in_progress", serviceName),
				Help: fmt.Sprintf("Operations currently in progress in %s", serviceName),
			},
			[]string{"operation"},
		),
	}

	registerer.MustRegister(
		m.processedTotal,
		m.errorsTotal,
		m.durationSeconds,
		m.fileSizeBytes,
		m.inProgress,
	)

	return m
}

func (m *PrometheusMetrics) RecordSuccess(operation string) {
	m.processedTotal.WithLabelValues("success", operation).Inc()
}

func (m *PrometheusMetrics) RecordError(operation, errorType string) {
	m.processedTotal.WithLabelValues("error", operation).Inc()
	m.errorsTotal.WithLabelValues(errorType, operation).Inc()
}

func (m *PrometheusMetrics) RecordDuration(operation string, seconds float64) {
	m.durationSeconds.WithLabelValues(operation).Observe(seconds)
}

func (m *PrometheusMetrics) RecordFileSize(fileType string, bytes int64) {
	m.fileSizeBytes.WithLabelValues(fileType).Observe(float64(bytes))
}

func (m *PrometheusMetrics) StartOperation(operation string) {
	m.inProgress.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) EndOperation(operation string) {
	m.inProgress.WithLabelValues(operation).Dec()
}
