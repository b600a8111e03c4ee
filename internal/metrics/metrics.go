package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assay_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assay_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	LedgerEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assay_ledger_entries_total",
			Help: "Committed credit history entries by type.",
		},
		[]string{"type"},
	)

	LedgerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assay_ledger_failures_total",
			Help: "Rejected or rolled back ledger applies by reason.",
		},
		[]string{"reason"},
	)

	EventPublishFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assay_event_publish_failures_total",
			Help: "Ledger events that could not be delivered, by sink.",
		},
		[]string{"sink"},
	)
)
