// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package middleware provides HTTP middleware components for the API.

Key Components:

  - RequestID: request and correlation IDs for logging.Ctx
  - PrometheusMetrics: request counts, latency and in-flight gauge, labelled by route pattern
  - Compression: gzip for clients that accept it, bodies of 1 KiB or more

All three use the http.HandlerFunc middleware shape; the api package adapts
them to chi with its chiMiddleware helper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Thread Safety:

The middleware holds no per-request state outside the request; the gzip
writer pool is a sync.Pool.
*/
package middleware
