// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package api provides the HTTP surface of the recommendation service using
// the Chi router.
//
// # Endpoints
//
//	GET  /api/v1/health/live                 liveness, always 200
//	GET  /api/v1/health/ready                upstream circuit breaker states
//	GET  /api/v1/profile[?include=raw]       taste profile and signal counts
//	GET  /api/v1/recommendations[?limit=N]   ranked recommendations (0..100, default 20)
//	POST /api/v1/recommendations/custom      feature-target discovery
//	POST /api/v1/handoff                     store the caller's credential for one-time pickup
//	POST /api/v1/handoff/{code}/redeem       redeem a handoff code once
//	GET  /metrics                            Prometheus metrics
//
// Listener endpoints read the catalog credential from the
// "Authorization: Bearer <token>" header and forward it upstream. The
// credential is never stored except by the handoff endpoint, and never
// logged.
//
// # Responses
//
// Every JSON response uses the models.APIResponse envelope:
//
//	{"status": "success", "data": {...}, "metadata": {"timestamp": "...", "query_time_ms": 812, "request_id": "..."}}
//	{"status": "error", "data": null, "metadata": {...}, "error": {"code": "INVALID_CREDENTIAL", "message": "..."}}
//
// # Error Codes
//
//	400 VALIDATION_ERROR      malformed query or body
//	400 INVALID_SEEDS         seeded discovery rejected the seeds
//	401 MISSING_CREDENTIAL    no bearer token
//	401 INVALID_CREDENTIAL    the catalog rejected the token
//	404 HANDOFF_NOT_FOUND     unknown or already redeemed code
//	410 HANDOFF_EXPIRED       code past its TTL
//	502 UPSTREAM_ERROR        catalog failure
//	503 UPSTREAM_UNAVAILABLE  catalog circuit breaker open
//	504 UPSTREAM_TIMEOUT      request deadline exceeded
//
// # Middleware
//
// Global: request ID and logging context, RealIP, Recoverer, CORS.
// Under /api/v1: per-IP rate limit, Prometheus metrics, security headers,
// gzip compression.
package api
