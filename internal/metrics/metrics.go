// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream Service Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_upstream_requests_total",
			Help: "Total number of requests sent to upstream music services",
		},
		[]string{"service", "endpoint", "status"}, // status: HTTP code or "error"
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastegraph_upstream_request_duration_seconds",
			Help:    "Duration of upstream music service requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "endpoint"},
	)

	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_upstream_retries_total",
			Help: "Total number of retried upstream requests (429 and 5xx)",
		},
		[]string{"service"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Engine Metrics
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastegraph_recommend_duration_seconds",
			Help:    "End-to-end duration of recommendation operations in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"operation"}, // "profile", "recommendations", "custom"
	)

	RecommendationsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_recommendations_returned_total",
			Help: "Total number of recommendations returned by source",
		},
		[]string{"source"},
	)

	StrategyCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_strategy_candidates_total",
			Help: "Total number of candidates produced per discovery strategy",
		},
		[]string{"strategy"},
	)

	StrategyFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_strategy_failures_total",
			Help: "Total number of discovery strategy failures",
		},
		[]string{"strategy"},
	)

	PlaceholderResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastegraph_placeholder_responses_total",
			Help: "Total number of responses that fell back to the placeholder set",
		},
	)

	ProfileSignalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_profile_signal_failures_total",
			Help: "Total number of failed listener signal fetches during aggregation",
		},
		[]string{"signal"}, // "liked", "playlists", "playlist_tracks", "recent", "top_tracks", "top_artists"
	)

	FeatureBatchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastegraph_feature_batch_failures_total",
			Help: "Total number of audio feature batches skipped after a failure",
		},
	)

	// Cache Metrics
	SimilarityCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_similarity_cache_total",
			Help: "Similarity service cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Handoff Store Metrics
	HandoffOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastegraph_handoff_operations_total",
			Help: "Total number of handoff store operations",
		},
		[]string{"backend", "operation", "result"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordUpstreamRequest records one upstream call. A zero status means the
// request failed before a response arrived.
func RecordUpstreamRequest(service, endpoint string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(service, endpoint, label).Inc()
	UpstreamRequestDuration.WithLabelValues(service, endpoint).Observe(duration.Seconds())
}

// RecordUpstreamRetry counts a retried upstream request.
func RecordUpstreamRetry(service string) {
	UpstreamRetries.WithLabelValues(service).Inc()
}

// RecordRecommendOperation records the duration of an engine entry point.
func RecordRecommendOperation(operation string, duration time.Duration) {
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRecommendationsReturned counts returned recommendations for a source.
func RecordRecommendationsReturned(source string, count int) {
	if count <= 0 {
		return
	}
	RecommendationsReturned.WithLabelValues(source).Add(float64(count))
}

// RecordStrategyResult records the outcome of one discovery strategy run.
func RecordStrategyResult(strategy string, candidates int, err error) {
	if err != nil {
		StrategyFailures.WithLabelValues(strategy).Inc()
	}
	if candidates > 0 {
		StrategyCandidates.WithLabelValues(strategy).Add(float64(candidates))
	}
}

// RecordPlaceholderResponse counts a placeholder fallback.
func RecordPlaceholderResponse() {
	PlaceholderResponses.Inc()
}

// RecordSignalFailure counts a failed listener signal fetch.
func RecordSignalFailure(signal string) {
	ProfileSignalFailures.WithLabelValues(signal).Inc()
}

// RecordFeatureBatchFailure counts a skipped audio feature batch.
func RecordFeatureBatchFailure() {
	FeatureBatchFailures.Inc()
}

// RecordSimilarityCache records a similarity cache lookup.
func RecordSimilarityCache(hit bool) {
	if hit {
		SimilarityCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	SimilarityCacheTotal.WithLabelValues("miss").Inc()
}

// RecordHandoffOperation records a handoff store operation. result is a short
// outcome label such as "ok", "not_found" or "error".
func RecordHandoffOperation(backend, operation, result string) {
	HandoffOperations.WithLabelValues(backend, operation, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
