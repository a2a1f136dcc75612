// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package metrics provides Prometheus instrumentation for the recommendation
service.

All collectors are registered with the default registry through promauto and
are exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Upstream calls (catalog and similarity services):
  - tastegraph_upstream_requests_total{service,endpoint,status}
  - tastegraph_upstream_request_duration_seconds{service,endpoint}
  - tastegraph_upstream_retries_total{service}

Circuit breakers:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Recommendation engine:
  - tastegraph_recommend_duration_seconds{operation}
  - tastegraph_recommendations_returned_total{source}
  - tastegraph_strategy_candidates_total{strategy}
  - tastegraph_strategy_failures_total{strategy}
  - tastegraph_placeholder_responses_total
  - tastegraph_profile_signal_failures_total{signal}
  - tastegraph_feature_batch_failures_total

Cache and handoff:
  - tastegraph_similarity_cache_total{result}
  - tastegraph_handoff_operations_total{backend,operation,result}

HTTP API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

# Usage

	start := time.Now()
	// ... call upstream ...
	metrics.RecordUpstreamRequest("catalog", "audio-features", "200", time.Since(start))

Helper functions never return errors and are safe for concurrent use.
*/
package metrics
