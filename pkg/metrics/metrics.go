// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// PlansTotal tracks generated travel plans by style and pipeline path.
	PlansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travel_plans_total",
			Help: "Total travel plans generated",
		},
		[]string{"style", "path"},
	)

	// PlanDuration tracks end-to-end plan generation duration.
	PlanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travel_plan_duration_seconds",
			Help:    "Travel plan generation duration",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"style"},
	)

	// LLMCallDuration tracks LLM completion call duration.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "LLM completion call duration",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60},
		},
		[]string{"operation", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"model", "direction"},
	)

	// FallbacksTotal tracks pipeline stages that degraded to the
	// deterministic fallback path.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_fallbacks_total",
			Help: "Pipeline stages degraded to fallback",
		},
		[]string{"stage", "reason"},
	)

	// AmbiguitiesDetected tracks clarification questions surfaced per request.
	AmbiguitiesDetected = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ambiguities_detected",
			Help:    "Clarification questions surfaced per request",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"path"},
	)

	// DocumentBytesExtracted tracks bytes of text extracted from uploads.
	DocumentBytesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_bytes_extracted_total",
			Help: "Bytes of text extracted from uploaded documents",
		},
		[]string{"kind"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordPlan records metrics for a generated plan.
func RecordPlan(style, path string, duration float64) {
	PlansTotal.WithLabelValues(style, path).Inc()
	PlanDuration.WithLabelValues(style).Observe(duration)
}

// RecordLLMCall records metrics for one LLM completion call.
func RecordLLMCall(operation, status, model string, duration float64, tokensIn, tokensOut int) {
	LLMCallDuration.WithLabelValues(operation, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(model, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(model, "out").Add(float64(tokensOut))
}

// RecordFallback records a pipeline stage degrading to its fallback path.
func RecordFallback(stage, reason string) {
	FallbacksTotal.WithLabelValues(stage, reason).Inc()
}
