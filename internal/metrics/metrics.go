// Package metrics holds the prometheus collectors shared by the services
// and the HTTP middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ModelCalls counts generative model requests by stage and outcome
	ModelCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_calls_total",
			Help: "Generative model calls",
		},
		[]string{"stage", "outcome"},
	)

	// QueriesTotal counts generated queries by outcome (executed, rejected, failed)
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sql_queries_total",
			Help: "Generated SQL queries by outcome",
		},
		[]string{"outcome"},
	)

	// CommentPages counts comment page fetches by outcome
	CommentPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_comment_pages_total",
			Help: "YouTube comment page requests",
		},
		[]string{"outcome"},
	)

	// CommentsAnalyzed counts classified comments by sentiment
	CommentsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comments_analyzed_total",
			Help: "Comments scored, by sentiment category",
		},
		[]string{"sentiment"},
	)
)
