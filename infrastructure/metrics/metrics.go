// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RendersTotal counts render attempts by output format and result.
	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wifiqr_renders_total",
			Help: "Total number of Wi-Fi QR code renders.",
		},
		[]string{"format", "result"},
	)
	// RenderDuration observes time spent rendering, cache hits excluded.
	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wifiqr_render_duration_seconds",
			Help:    "Wi-Fi QR code render duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)
	// CacheLookupsTotal counts render cache lookups by result (hit or miss).
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wifiqr_cache_lookups_total",
			Help: "Render cache lookups.",
		},
		[]string{"result"},
	)
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

func init() {
	prometheus.MustRegister(
		RendersTotal,
		RenderDuration,
		CacheLookupsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
