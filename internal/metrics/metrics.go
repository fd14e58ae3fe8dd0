// Package metrics provides Prometheus metrics for the feed service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bghfeed"

var (
	// RefreshTotal counts cache refresh attempts by outcome.
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Total number of post cache refresh attempts",
		},
		[]string{"status"},
	)

	// RefreshDuration measures how long a full refresh takes.
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duration of post cache refreshes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// CachedPosts is the size of the current cache generation.
	CachedPosts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_posts",
			Help:      "Number of posts in the current cache generation",
		},
	)

	// UpstreamRequests counts WordPress API requests by endpoint and outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of WordPress API requests",
		},
		[]string{"endpoint", "outcome"},
	)
)

// Refresh outcomes.
const (
	StatusSuccess     = "success"
	StatusRemoteError = "remote_error"
	StatusCacheError  = "cache_error"
)
