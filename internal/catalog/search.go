// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tomtom215/tastegraph/internal/models"
)

// SearchTracks runs a track search. query uses the catalog's field syntax,
// e.g. `artist:"Radiohead"` or `genre:"jazz" year:2024-2026`.
func (s *Session) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	q := url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {strconv.Itoa(clampLimit(limit, MaxSearchLimit))},
	}
	if s.client.cfg.Market != "" {
		q.Set("market", s.client.cfg.Market)
	}

	var resp searchResponse
	if err := s.doRequest(ctx, requestConfig{endpoint: "search", path: "/search", query: q}, &resp); err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}
	return mapTracks(resp.Tracks.Items), nil
}

// Artist fetches one artist by ID.
func (s *Session) Artist(ctx context.Context, id string) (models.Artist, error) {
	var a wireArtist
	cfg := requestConfig{endpoint: "artist", path: "/artists/" + url.PathEscape(id)}
	if err := s.doRequest(ctx, cfg, &a); err != nil {
		return models.Artist{}, fmt.Errorf("artist %s: %w", id, err)
	}
	return a.toModel(), nil
}
