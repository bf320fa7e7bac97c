package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the timesheet operations. A nil
// *Metrics is valid and records nothing, so tests can build services without
// touching the default registry.
type Metrics struct {
	operations *prometheus.CounterVec
	rejections *prometheus.CounterVec
	opLatency  *prometheus.HistogramVec
}

// New creates and registers all timesheet metrics
func New() *Metrics {
	return &Metrics{
		operations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timesheet_operations_total",
				Help: "Total number of timesheet operations by result",
			},
			[]string{"operation", "result"},
		),
		rejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timesheet_rejections_total",
				Help: "Business-rule rejections by reason",
			},
			[]string{"operation", "reason"},
		),
		opLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "timesheet_operation_duration_ms",
				Help:    "Latency of timesheet operations in milliseconds",
				Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"operation"},
		),
	}
}

// RecordOperation increments the operation counter for the given result.
func (m *Metrics) RecordOperation(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// RecordRejection increments the rejection counter for a business-rule failure.
func (m *Metrics) RecordRejection(operation, reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, reason).Inc()
}

// ObserveDuration records the latency of an operation started at start.
func (m *Metrics) ObserveDuration(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.opLatency.WithLabelValues(operation).Observe(float64(time.Since(start).Milliseconds()))
}
