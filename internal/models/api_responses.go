// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" (see Data) or "error" (see Error).
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": [...], "taste_profile": {...}, "stats": {...}},
//	  "metadata": {"timestamp": "2026-10-18T12:00:00Z", "query_time_ms": 812}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing information for a response. QueryTimeMS covers the
// whole upstream fan-out for the request, not a single call.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError describes a failed request.
//
// Codes in use:
//   - VALIDATION_ERROR: invalid query or body parameters
//   - MISSING_CREDENTIAL / INVALID_CREDENTIAL: listener credential absent or rejected upstream
//   - INVALID_SEEDS: seeded request with zero or too many seeds
//   - UPSTREAM_ERROR: catalog or similarity service failure on a mandatory path
//   - HANDOFF_NOT_FOUND / HANDOFF_EXPIRED: handoff code unknown or past its TTL
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
