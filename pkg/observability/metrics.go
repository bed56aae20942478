// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring llmhub.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts HTTP requests by method, status class, and route.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmhub_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "route"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmhub_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "route"},
	)

	// InflightRequests tracks requests currently being served.
	InflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "llmhub_inflight_requests",
			Help: "Requests in flight",
		},
	)

	// VendorRequestsTotal counts calls made to vendor APIs.
	VendorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmhub_vendor_requests_total",
			Help: "Vendor requests",
		},
		[]string{"vendor", "model", "status"},
	)

	// VendorLatency records vendor call latency in seconds.
	VendorLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmhub_vendor_latency_seconds",
			Help:    "Vendor latency",
			Buckets: LLMBuckets,
		},
		[]string{"vendor", "model"},
	)

	// CatalogLoadFailuresTotal counts failed catalog loads by catalog name.
	CatalogLoadFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmhub_catalog_load_failures_total",
			Help: "Catalog load failures",
		},
		[]string{"catalog"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		InflightRequests,
		VendorRequestsTotal,
		VendorLatency,
		CatalogLoadFailuresTotal,
	)
}

// ObserveVendorCall records one vendor call. status is "ok" or "error".
func ObserveVendorCall(vendor, model, status string, seconds float64) {
	VendorRequestsTotal.WithLabelValues(vendor, model, status).Inc()
	VendorLatency.WithLabelValues(vendor, model).Observe(seconds)
}

// CatalogLoadFailed records a failed catalog load.
func CatalogLoadFailed(catalog string, _ error) {
	CatalogLoadFailuresTotal.WithLabelValues(catalog).Inc()
}
