// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package similarity is the client for the music metadata service that answers
"what sounds like this" questions (Last.fm shaped).

It is optional. A nil *Client, or one without an API key, reports
Enabled() == false and the recommendation engine falls back to catalog-only
discovery.

Responses for similar artists and similar tracks are public metadata, so they
are cached process-wide in a bounded TTL cache keyed by the normalized query.

The service reports some failures inside HTTP 200 bodies as
{"error": <code>, "message": "..."}; those are translated to *APIError with
an equivalent HTTP status so the shared retry and circuit breaker rules apply.
*/
package similarity
