// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package handoff

import "errors"

var (
	// ErrNotFound is returned for a code that does not exist or was already redeemed.
	ErrNotFound = errors.New("handoff code not found")

	// ErrExpired is returned for a code whose TTL has passed.
	ErrExpired = errors.New("handoff code expired")

	// ErrEmptyCredential is returned when Put is called without a credential.
	ErrEmptyCredential = errors.New("handoff credential cannot be empty")

	// ErrUnknownBackend is returned by NewStore for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown handoff backend")
)
