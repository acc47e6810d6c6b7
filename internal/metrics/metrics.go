package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	QueriesCompiled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_queries_compiled_total",
		Help: "List and lookup queries compiled per resource",
	}, []string{"resource"})

	StorageQuerySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shopadmin_storage_query_seconds",
		Help:    "Latency of storage queries per resource and operation",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "op"})

	StorageErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_storage_errors_total",
		Help: "Storage queries that failed per resource and operation",
	}, []string{"resource", "op"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(QueriesCompiled, StorageQuerySeconds, StorageErrors, HTTPRequests)
}

// ObserveStorage records the latency of one storage call and whether it failed.
func ObserveStorage(resource, op string, start time.Time, err error) {
	StorageQuerySeconds.WithLabelValues(resource, op).Observe(time.Since(start).Seconds())
	if err != nil {
		StorageErrors.WithLabelValues(resource, op).Inc()
	}
}
