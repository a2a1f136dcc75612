// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package catalog is the client for the music catalog Web API (Spotify shaped).

A single Client is shared by the whole process. It owns the upstream rate
limiter and circuit breaker. Each request for a listener gets its own Session
via ForCredential, which injects the listener's bearer credential through an
oauth2.Transport:

	client := catalog.NewClient(catalog.Config{BaseURL: "https://api.spotify.com/v1"})
	session := client.ForCredential(token)
	user, err := session.CurrentUser(ctx)

# Request Pipeline

Every call goes through the same steps:
 1. client-side rate limit (golang.org/x/time/rate)
 2. circuit breaker (sony/gobreaker via internal/resilience)
 3. retry on HTTP 429 and 5xx with exponential backoff, honouring Retry-After
 4. JSON decoding with goccy/go-json

# Quota Rules

Some limits are enforced before any network call:
  - AudioFeatures rejects more than 100 IDs with ErrBatchTooLarge
  - SeededRecommendations rejects zero seeds with ErrNoSeeds and more than
    five seeds with ErrTooManySeeds

Upstream 401 and 403 responses satisfy errors.Is(err, ErrUnauthorized).
*/
package catalog
