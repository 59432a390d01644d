package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_estimates_total",
			Help: "Delivery time estimates by outcome (ok, rejected, error)",
		},
		[]string{"outcome"},
	)

	EstimateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_estimate_duration_seconds",
			Help:    "End-to-end duration of one estimate",
			Buckets: prometheus.DefBuckets,
		},
	)

	ModelPredictDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_predict_duration_seconds",
			Help:    "Duration of a single model predict call",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	EstimateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_estimate_cache_lookups_total",
			Help: "Estimate cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveEstimate records one finished estimate.
func ObserveEstimate(outcome string, d time.Duration) {
	EstimatesTotal.WithLabelValues(outcome).Inc()
	EstimateDuration.Observe(d.Seconds())
}

// ObservePredict records one model call for the given backend.
func ObservePredict(backend string, d time.Duration) {
	ModelPredictDuration.WithLabelValues(backend).Observe(d.Seconds())
}
