// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized means the listener credential was rejected (HTTP 401/403).
	ErrUnauthorized = errors.New("catalog credential rejected")

	// ErrNoSeeds is returned by SeededRecommendations when no seed is supplied.
	ErrNoSeeds = errors.New("seeded recommendations requires at least one seed")

	// ErrTooManySeeds is returned when more than MaxSeeds seeds are combined.
	ErrTooManySeeds = fmt.Errorf("seeded recommendations accepts at most %d seeds", MaxSeeds)

	// ErrBatchTooLarge is returned by AudioFeatures for more than MaxFeatureBatch IDs.
	ErrBatchTooLarge = fmt.Errorf("audio feature batch exceeds %d ids", MaxFeatureBatch)

	// ErrUntrustedPageURL is returned when a pagination cursor points outside the configured API.
	ErrUntrustedPageURL = errors.New("pagination url outside catalog base url")
)

// APIError is a non-2xx response from the catalog.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("catalog %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// HTTPStatus returns the response status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Is maps 401 and 403 onto ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}
