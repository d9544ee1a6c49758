package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	submissionsTotal      prometheus.Counter
	metricFailuresTotal   *prometheus.CounterVec
	metricDurationSeconds *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors for the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edutrans_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edutrans_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edutrans_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		submissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "edutrans_submissions_scored_total",
			Help: "Total number of submissions scored and recorded.",
		})

		metricFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edutrans_metric_failures_total",
			Help: "Scoring metrics that failed or timed out, by metric name.",
		}, []string{"metric"})

		metricDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edutrans_metric_duration_seconds",
			Help:    "Duration of individual scoring metric computations.",
			Buckets: []float64{0.001, 0.01, 0.05, 0.25, 1.0, 2.5, 5.0, 10.0},
		}, []string{"metric"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			submissionsTotal,
			metricFailuresTotal,
			metricDurationSeconds,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// SubmissionsScored exposes the counter for recorded submissions.
func SubmissionsScored() prometheus.Counter {
	RegisterMetrics()
	return submissionsTotal
}

// MetricFailures exposes the counter for failed scoring metrics.
func MetricFailures() *prometheus.CounterVec {
	RegisterMetrics()
	return metricFailuresTotal
}

// MetricDuration exposes the duration histogram for scoring metrics.
func MetricDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return metricDurationSeconds
}
