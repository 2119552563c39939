// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transaction outcomes recorded by the storage gateway.
const (
	TxCommit      = "commit"
	TxRollback    = "rollback"
	TxBeginError  = "begin_error"
	TxCommitError = "commit_error"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qaboard_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qaboard_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	StorageTransactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qaboard_storage_transactions_total",
			Help: "Total number of storage transactions by outcome",
		},
		[]string{"outcome"},
	)
)
