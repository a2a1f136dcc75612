// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package similarity

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDisabled is returned by calls on a client without an API key.
var ErrDisabled = errors.New("similarity service not configured")

// Service error codes carried in response bodies.
const (
	codeInvalidService    = 2
	codeInvalidParameters = 6 // artist or track not found
	codeInvalidAPIKey     = 10
	codeOperationFailed   = 8
	codeServiceOffline    = 11
	codeTemporaryError    = 16
	codeSuspendedAPIKey   = 26
	codeRateLimitExceeded = 29
)

// APIError is a failed similarity service call.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Method     string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("similarity %s: status %d (code %d): %s", e.Method, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("similarity %s: status %d", e.Method, e.StatusCode)
}

// HTTPStatus returns the effective HTTP status.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// NotFound reports whether the service did not recognise the artist or track.
func (e *APIError) NotFound() bool {
	return e.Code == codeInvalidParameters || e.StatusCode == http.StatusNotFound
}

// statusForCode maps a body error code to the HTTP status it behaves like.
func statusForCode(code int) int {
	switch code {
	case codeInvalidParameters:
		return http.StatusNotFound
	case codeInvalidAPIKey, codeSuspendedAPIKey:
		return http.StatusForbidden
	case codeRateLimitExceeded:
		return http.StatusTooManyRequests
	case codeOperationFailed, codeServiceOffline, codeTemporaryError:
		return http.StatusServiceUnavailable
	case codeInvalidService:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
