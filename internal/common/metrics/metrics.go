// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExtractionFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_fallbacks_total",
			Help: "Total number of extraction tasks that degraded to their fallback value",
		},
		[]string{"task_type", "reason"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "extraction_duration_seconds",
			Help: "Duration of a single extraction task including the model call",
		},
		[]string{"task_type"},
	)

	AnalysisRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total number of conversation analyses performed",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "analysis_duration_seconds",
			Help: "Wall-clock duration of a full conversation analysis",
		},
	)

	TemplatesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "templates_generated_total",
			Help: "Total number of Notion template generation attempts",
		},
		[]string{"status"},
	)

	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)
