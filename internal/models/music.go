// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package models holds the catalog snapshots, derived taste data and API
// envelopes shared between the clients, the recommendation engine and the
// HTTP layer.
package models

import "strings"

// Image is one rendition of album artwork.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Album is the album a track belongs to.
type Album struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Images []Image `json:"images,omitempty"`
}

// ArtistRef identifies a credited artist on a track.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track is an immutable snapshot of a catalog track at fetch time.
type Track struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []ArtistRef `json:"artists"`
	Album       Album       `json:"album"`
	Popularity  int         `json:"popularity"`
	DurationMS  int         `json:"duration_ms"`
	ExternalURL string      `json:"external_url,omitempty"`
}

// PrimaryArtist returns the first credited artist name, or "" when the track has none.
func (t *Track) PrimaryArtist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].Name
}

// NameKey returns the lower-cased "artist-track" key used to compare tracks
// across services that do not share identifiers.
func (t *Track) NameKey() string {
	return TrackNameKey(t.PrimaryArtist(), t.Name)
}

// TrackNameKey builds the lower-cased "artist-track" key for an artist and track name.
func TrackNameKey(artist, track string) string {
	return strings.ToLower(strings.TrimSpace(artist) + "-" + strings.TrimSpace(track))
}

// Artist is a catalog artist with its genre tags.
type Artist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
}

// Playlist is a listener playlist summary.
type Playlist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"owner_id"`
	TrackCount int    `json:"track_count"`
}

// User is the authenticated listener as reported by the catalog.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country,omitempty"`
}
