// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "search-bot/internal/common/errors"
)

var (
	QueriesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchbot_queries_total",
			Help: "Total number of queries handled, by classification kind and final state",
		},
		[]string{"kind", "state"},
	)

	QueriesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "searchbot_queries_active",
			Help: "Number of queries currently in the pipeline",
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "searchbot_stage_duration_seconds",
			Help:    "Duration of each pipeline stage in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"},
	)

	PipelineErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchbot_errors_total",
			Help: "Total number of pipeline errors, including ones absorbed by a fallback",
		},
		[]string{"error_code", "category"},
	)

	DeliveryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchbot_delivery_outcomes_total",
			Help: "Total number of response deliveries by outcome",
		},
		[]string{"status"},
	)

	UpdatesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchbot_updates_total",
			Help: "Total number of webhook updates by routing result",
		},
		[]string{"result"},
	)
)

// RecordError is an errors.Recorder backed by PipelineErrors.
func RecordError(code apperrors.ErrorCode, category string) {
	PipelineErrors.WithLabelValues(string(code), category).Inc()
}
