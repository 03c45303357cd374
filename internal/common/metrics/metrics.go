// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_queries_completed_total",
			Help: "Total number of completed analysis queries by composition branch",
		},
		[]string{"branch"},
	)

	QueriesDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_queries_degraded_total",
			Help: "Total number of queries that produced a generic degraded response",
		},
	)

	QueriesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_queries_rejected_total",
			Help: "Total number of rejected query submissions",
		},
		[]string{"reason"},
	)

	QueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_query_duration_seconds",
			Help:    "Duration of one full query cycle in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
		},
	)

	HumanDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "human_decisions_total",
			Help: "Total number of accept/modify/reject decisions recorded",
		},
		[]string{"verdict"},
	)

	PriceRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_refreshes_total",
			Help: "Total number of price snapshot refreshes by source",
		},
		[]string{"source"},
	)

	QuestRoundTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quest_round_trips_total",
			Help: "Total number of on-chain quest round trips by outcome",
		},
		[]string{"outcome"},
	)
)
