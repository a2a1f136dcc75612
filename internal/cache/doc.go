// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package cache provides a thread-safe, bounded LRU cache with per-entry TTL.

It backs two process-wide pieces of state:
  - the similarity service response cache (similar artists per seed name)
  - the in-memory handoff token store

Neither holds per-listener recommendation state; entries are either shared
public metadata or short-lived, one-time handoff credentials.

# Usage

	c := cache.NewTTLCache[[]similarity.SimilarArtist](1000, 6*time.Hour)
	if artists, ok := c.Get("radiohead"); ok {
	    return artists
	}
	c.Set("radiohead", artists)

Expiration is lazy on reads; CleanupExpired sweeps the whole list and is
called periodically by the supervisor janitor service.
*/
package cache
