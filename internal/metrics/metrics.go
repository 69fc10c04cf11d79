package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequestsTotal counts requests served by the desk's own REST surface
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoice_desk_http_requests_total",
		Help: "Total HTTP requests processed, by method, path and status",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration observes request latency per method and path
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "invoice_desk_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// RemoteCallsTotal counts calls to the external invoice service
var RemoteCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoice_desk_remote_calls_total",
		Help: "Calls to the remote invoice API, by method and outcome",
	},
	[]string{"method", "status"},
)

// RendersTotal counts PDF render attempts by outcome
var RendersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoice_desk_pdf_renders_total",
		Help: "Invoice PDF render attempts, by outcome",
	},
	[]string{"outcome"},
)
