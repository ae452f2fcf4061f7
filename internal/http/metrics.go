package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "divvy_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		},
		[]string{"code", "method"},
	)
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "divvy_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

func instrumentMetrics(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(httpDuration,
		promhttp.InstrumentHandlerCounter(httpRequests, next))
}
