// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package recommend builds listener taste profiles and music recommendations
// from a streaming catalog and an optional listening-similarity service.
//
// # Pipeline
//
// Every call works on fresh data for one listener credential:
//
//   - Aggregator: liked tracks, owned playlists and their tracks, recent plays,
//     top tracks and top artists, fetched concurrently with per-signal isolation
//   - Calculator: audio features for a priority subset, averaged into a
//     TasteProfile with ranked genres and artists
//   - Strategies: collaborative (similar artists), track similarity, and a
//     genre-search fallback, tried in order until the limit is met
//   - Ranker: ID dedup, exclusion of known tracks, scoring, jittered ordering,
//     and the placeholder set when nothing survives
//
// GetCustomRecommendations is a separate path that sends an explicit target
// vector and seeds straight to the catalog.
//
// # Degradation
//
// Only credential validity and listener identity are mandatory. Any other
// failure (a signal, a feature batch, a strategy) is logged, counted and
// replaced with an empty or neutral value, so GetRecommendations always
// returns a well-formed result once the listener is known.
//
// # Usage
//
//	cat := catalog.NewClient(catalog.DefaultConfig())
//	sim := similarity.NewClient(similarity.DefaultConfig())
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), recommend.CatalogSessions(cat), sim, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := engine.GetRecommendations(ctx, credential, 20)
//
// # Thread Safety
//
// The engine is safe for concurrent use. The only shared mutable state is the
// ranking random source, which is guarded by a mutex.
package recommend
