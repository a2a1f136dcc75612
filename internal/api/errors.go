// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/handoff"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

// Error codes returned in APIError.Code.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeInvalidSeeds        = "INVALID_SEEDS"
	CodeMissingCredential   = "MISSING_CREDENTIAL"
	CodeInvalidCredential   = "INVALID_CREDENTIAL"
	CodeHandoffNotFound     = "HANDOFF_NOT_FOUND"
	CodeHandoffExpired      = "HANDOFF_EXPIRED"
	CodeHandoffError        = "HANDOFF_ERROR"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamTimeout     = "UPSTREAM_TIMEOUT"
	CodeRateLimited         = "RATE_LIMITED"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
)

// errorResponse is the status, code and client message for an error.
type errorResponse struct {
	status  int
	code    string
	message string
}

// classifyEngineError maps recommendation and catalog errors to a response.
// Order matters: an unauthorized catalog error can arrive wrapped in a
// deadline, and the credential problem is the actionable one.
func classifyEngineError(err error) errorResponse {
	switch {
	case errors.Is(err, recommend.ErrMissingCredential):
		return errorResponse{http.StatusUnauthorized, CodeMissingCredential, "A bearer credential is required"}
	case errors.Is(err, catalog.ErrUnauthorized):
		return errorResponse{http.StatusUnauthorized, CodeInvalidCredential, "The catalog rejected the credential"}
	case errors.Is(err, catalog.ErrNoSeeds), errors.Is(err, catalog.ErrTooManySeeds):
		return errorResponse{http.StatusBadRequest, CodeInvalidSeeds, err.Error()}
	case errors.Is(err, resilience.ErrUnavailable):
		return errorResponse{http.StatusServiceUnavailable, CodeUpstreamUnavailable, "The catalog is temporarily unavailable"}
	case errors.Is(err, context.DeadlineExceeded):
		return errorResponse{http.StatusGatewayTimeout, CodeUpstreamTimeout, "The catalog did not respond in time"}
	default:
		return errorResponse{http.StatusBadGateway, CodeUpstreamError, "The catalog request failed"}
	}
}

// classifyHandoffError maps handoff store errors to a response.
func classifyHandoffError(err error) errorResponse {
	switch {
	case errors.Is(err, handoff.ErrNotFound):
		return errorResponse{http.StatusNotFound, CodeHandoffNotFound, "Unknown or already redeemed handoff code"}
	case errors.Is(err, handoff.ErrExpired):
		return errorResponse{http.StatusGone, CodeHandoffExpired, "Handoff code has expired"}
	case errors.Is(err, handoff.ErrEmptyCredential):
		return errorResponse{http.StatusUnauthorized, CodeMissingCredential, "A bearer credential is required"}
	default:
		return errorResponse{http.StatusInternalServerError, CodeHandoffError, "Handoff store failure"}
	}
}
