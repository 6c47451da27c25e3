// Package metrics provides Prometheus metrics for the recommendation backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EvaluationsTotal counts recommendation results by response branch and source.
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sareefinder",
			Name:      "evaluations_total",
			Help:      "Total number of recommendation results",
		},
		[]string{"outcome", "source"},
	)

	// FacetMatchesTotal counts facets recognized in queries.
	FacetMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sareefinder",
			Name:      "facet_matches_total",
			Help:      "Total number of facet values extracted from queries",
		},
		[]string{"facet"},
	)

	// CacheLookupsTotal counts cache lookups by result.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sareefinder",
			Name:      "cache_lookups_total",
			Help:      "Total number of cache lookups",
		},
		[]string{"result"},
	)

	// AssistantRequestsTotal counts external assistant calls by status.
	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sareefinder",
			Name:      "assistant_requests_total",
			Help:      "Total number of external assistant requests",
		},
		[]string{"status"},
	)

	// CacheEntries reports the number of entries held by the in-memory cache.
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sareefinder",
			Name:      "cache_entries",
			Help:      "Number of entries in the in-memory cache",
		},
	)

	// HTTPRequestDuration measures request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sareefinder",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordEvaluation records a produced recommendation result.
func RecordEvaluation(outcome, source string) {
	EvaluationsTotal.WithLabelValues(outcome, source).Inc()
}

// RecordFacetMatch records an extracted facet.
func RecordFacetMatch(facet string) {
	FacetMatchesTotal.WithLabelValues(facet).Inc()
}

// RecordCacheHit records a cache hit.
func RecordCacheHit() {
	CacheLookupsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss() {
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// SetCacheEntries records the current in-memory cache size.
func SetCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// RecordAssistantRequest records an assistant call outcome ("ok" or "error").
func RecordAssistantRequest(status string) {
	AssistantRequestsTotal.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func ObserveHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
