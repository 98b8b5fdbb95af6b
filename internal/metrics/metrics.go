// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "railmap"

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "HTTP requests by method, route template and status code",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ElementRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "element_requests_total",
			Help:      "Element set requests by route filter",
		},
		[]string{"filter"},
	)

	ElementCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "element_cache_hits_total",
			Help:      "Element sets served from cache",
		},
	)

	ElementCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "element_cache_misses_total",
			Help:      "Element sets built on demand",
		},
	)

	DanglingRoutes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dangling_routes",
			Help:      "Routes dropped because a station is missing from the coordinate lookup",
		},
	)

	SkippedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "skipped_transaction_rows",
			Help:      "Transaction rows ignored because a required field was blank",
		},
	)

	TransactionsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transactions_loaded",
			Help:      "Transactions held in memory",
		},
	)

	HoverRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hover_requests_total",
			Help:      "Hover formatting requests by target kind",
		},
		[]string{"kind"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordElementRequest counts a request for the given filter and whether it
// was answered from cache.
func RecordElementRequest(filter string, cached bool) {
	ElementRequests.WithLabelValues(filter).Inc()
	if cached {
		ElementCacheHits.Inc()
	} else {
		ElementCacheMisses.Inc()
	}
}

// RecordLoad publishes the result of the startup load.
func RecordLoad(transactions, skipped, dangling int) {
	TransactionsLoaded.Set(float64(transactions))
	SkippedRows.Set(float64(skipped))
	DanglingRoutes.Set(float64(dangling))
}

// RecordHover counts a hover request; kind is node or edge.
func RecordHover(kind string) {
	HoverRequests.WithLabelValues(kind).Inc()
}
