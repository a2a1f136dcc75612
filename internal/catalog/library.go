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

// Time windows accepted by the top items endpoints.
const (
	WindowShort  = "short_term"
	WindowMedium = "medium_term"
	WindowLong   = "long_term"
)

const playlistTrackPageSize = 100

// CurrentUser resolves the listener behind the session credential.
func (s *Session) CurrentUser(ctx context.Context) (models.User, error) {
	var u wireUser
	if err := s.doRequest(ctx, requestConfig{endpoint: "me", path: "/me"}, &u); err != nil {
		return models.User{}, fmt.Errorf("current user: %w", err)
	}
	return models.User{ID: u.ID, DisplayName: u.DisplayName, Country: u.Country}, nil
}

// LikedTracks returns the listener's whole saved-track library, following the
// pagination cursor until it is exhausted.
func (s *Session) LikedTracks(ctx context.Context) ([]models.Track, error) {
	var tracks []models.Track
	cfg := requestConfig{
		endpoint: "me-tracks",
		path:     "/me/tracks",
		query:    url.Values{"limit": {strconv.Itoa(MaxPageSize)}},
	}

	seen := make(map[string]struct{})
	for {
		var page savedTrackPage
		if err := s.doRequest(ctx, cfg, &page); err != nil {
			return tracks, fmt.Errorf("liked tracks: %w", err)
		}
		tracks = append(tracks, mapSavedTracks(page.Items)...)

		if page.Next == "" {
			return tracks, nil
		}
		// A repeated cursor would loop forever.
		if _, dup := seen[page.Next]; dup {
			return tracks, nil
		}
		seen[page.Next] = struct{}{}
		cfg.pageURL = page.Next
	}
}

// OwnedPlaylists scans up to limit of the listener's playlists and keeps only
// those owned by userID, dropping followed and catalog-curated ones.
func (s *Session) OwnedPlaylists(ctx context.Context, userID string, limit int) ([]models.Playlist, error) {
	if limit <= 0 {
		return []models.Playlist{}, nil
	}

	owned := make([]models.Playlist, 0, limit)
	scanned := 0
	cfg := requestConfig{
		endpoint: "me-playlists",
		path:     "/me/playlists",
		query:    url.Values{"limit": {strconv.Itoa(min(limit, MaxPageSize))}},
	}

	for scanned < limit {
		var page playlistPage
		if err := s.doRequest(ctx, cfg, &page); err != nil {
			return owned, fmt.Errorf("playlists: %w", err)
		}
		for i := range page.Items {
			if scanned >= limit {
				break
			}
			scanned++
			if page.Items[i].Owner.ID == userID {
				owned = append(owned, page.Items[i].toModel())
			}
		}
		if page.Next == "" || len(page.Items) == 0 {
			break
		}
		cfg.pageURL = page.Next
	}
	return owned, nil
}

// PlaylistTracks returns a playlist's tracks, reading at most
// Config.PlaylistTrackPageLimit pages.
func (s *Session) PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error) {
	var tracks []models.Track
	cfg := requestConfig{
		endpoint: "playlist-tracks",
		path:     "/playlists/" + url.PathEscape(playlistID) + "/tracks",
		query:    url.Values{"limit": {strconv.Itoa(playlistTrackPageSize)}},
	}

	for pages := 0; pages < s.client.cfg.PlaylistTrackPageLimit; pages++ {
		var page savedTrackPage
		if err := s.doRequest(ctx, cfg, &page); err != nil {
			return tracks, fmt.Errorf("playlist %s tracks: %w", playlistID, err)
		}
		tracks = append(tracks, mapSavedTracks(page.Items)...)
		if page.Next == "" {
			break
		}
		cfg.pageURL = page.Next
	}
	return tracks, nil
}

// TopTracks returns the listener's most played tracks over window.
func (s *Session) TopTracks(ctx context.Context, window string, limit int) ([]models.Track, error) {
	var page trackPage
	cfg := requestConfig{
		endpoint: "me-top-tracks",
		path:     "/me/top/tracks",
		query:    topQuery(window, limit),
	}
	if err := s.doRequest(ctx, cfg, &page); err != nil {
		return nil, fmt.Errorf("top tracks: %w", err)
	}
	return mapTracks(page.Items), nil
}

// TopArtists returns the listener's most played artists over window, in catalog order.
func (s *Session) TopArtists(ctx context.Context, window string, limit int) ([]models.Artist, error) {
	var page artistPage
	cfg := requestConfig{
		endpoint: "me-top-artists",
		path:     "/me/top/artists",
		query:    topQuery(window, limit),
	}
	if err := s.doRequest(ctx, cfg, &page); err != nil {
		return nil, fmt.Errorf("top artists: %w", err)
	}

	artists := make([]models.Artist, 0, len(page.Items))
	for i := range page.Items {
		if page.Items[i].ID != "" {
			artists = append(artists, page.Items[i].toModel())
		}
	}
	return artists, nil
}

// RecentlyPlayed returns the most recent plays, newest first. Repeated plays
// of a track appear more than once.
func (s *Session) RecentlyPlayed(ctx context.Context, limit int) ([]models.Track, error) {
	var page savedTrackPage
	cfg := requestConfig{
		endpoint: "me-recently-played",
		path:     "/me/player/recently-played",
		query:    url.Values{"limit": {strconv.Itoa(clampLimit(limit, MaxPageSize))}},
	}
	if err := s.doRequest(ctx, cfg, &page); err != nil {
		return nil, fmt.Errorf("recently played: %w", err)
	}
	return mapSavedTracks(page.Items), nil
}

func topQuery(window string, limit int) url.Values {
	if window == "" {
		window = WindowMedium
	}
	return url.Values{
		"time_range": {window},
		"limit":      {strconv.Itoa(clampLimit(limit, MaxPageSize))},
	}
}

func clampLimit(limit, maxLimit int) int {
	if limit <= 0 {
		return 1
	}
	return min(limit, maxLimit)
}
