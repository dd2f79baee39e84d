package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	ScoringRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "role_scoring_requests_total",
			Help: "Total number of scoring requests by outcome",
		},
		[]string{"outcome"},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "role_scoring_duration_seconds",
			Help:    "Duration of the scoring pipeline in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		},
	)

	ResultCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "role_scoring_cache_lookups_total",
			Help: "Result cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)
