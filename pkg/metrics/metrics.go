package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmconnect", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmconnect", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	RecordsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmconnect", Name: "records_created_total", Help: "Number of records inserted by collection."},
		[]string{"collection"},
	)
	StorageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmconnect", Name: "storage_errors_total", Help: "Number of failed storage operations by collection and operation."},
		[]string{"collection", "op"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "farmconnect", Name: "http_requests_total", Help: "Number of HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "farmconnect", Name: "http_request_duration_seconds", Help: "HTTP request latency by route and method.", Buckets: prometheus.DefBuckets},
		[]string{"route", "method"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(RecordsCreated)
	reg.MustRegister(StorageErrors)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
}
