// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import "github.com/tomtom215/tastegraph/internal/models"

// Wire types mirror the catalog JSON and are mapped to models at the edge.

type wireImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type wireArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireAlbum struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Images []wireImage `json:"images"`
}

type wireExternalURLs struct {
	Spotify string `json:"spotify"`
}

type wireTrack struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Artists      []wireArtistRef  `json:"artists"`
	Album        wireAlbum        `json:"album"`
	Popularity   int              `json:"popularity"`
	DurationMS   int              `json:"duration_ms"`
	ExternalURLs wireExternalURLs `json:"external_urls"`
	IsLocal      bool             `json:"is_local"`
}

type wireArtist struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
}

type wirePlaylist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner struct {
		ID string `json:"id"`
	} `json:"owner"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

type wireUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

// wireSavedTrack wraps tracks in library, playlist and history pages. Track is
// null for removed or unavailable items.
type wireSavedTrack struct {
	Track *wireTrack `json:"track"`
}

type savedTrackPage struct {
	Items []wireSavedTrack `json:"items"`
	Next  string           `json:"next"`
}

type trackPage struct {
	Items []wireTrack `json:"items"`
	Next  string      `json:"next"`
}

type artistPage struct {
	Items []wireArtist `json:"items"`
	Next  string       `json:"next"`
}

type playlistPage struct {
	Items []wirePlaylist `json:"items"`
	Next  string         `json:"next"`
}

type searchResponse struct {
	Tracks trackPage `json:"tracks"`
}

type recommendationsResponse struct {
	Tracks []wireTrack `json:"tracks"`
}

type wireAudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
}

// audioFeaturesResponse holds one entry per requested ID; unknown IDs are null.
type audioFeaturesResponse struct {
	AudioFeatures []*wireAudioFeatures `json:"audio_features"`
}

func (w *wireTrack) toModel() models.Track {
	artists := make([]models.ArtistRef, 0, len(w.Artists))
	for _, a := range w.Artists {
		artists = append(artists, models.ArtistRef{ID: a.ID, Name: a.Name})
	}
	images := make([]models.Image, 0, len(w.Album.Images))
	for _, img := range w.Album.Images {
		images = append(images, models.Image{URL: img.URL, Width: img.Width, Height: img.Height})
	}
	return models.Track{
		ID:          w.ID,
		Name:        w.Name,
		Artists:     artists,
		Album:       models.Album{ID: w.Album.ID, Name: w.Album.Name, Images: images},
		Popularity:  w.Popularity,
		DurationMS:  w.DurationMS,
		ExternalURL: w.ExternalURLs.Spotify,
	}
}

// usable reports whether a track can take part in recommendations. Local
// files have no catalog ID.
func (w *wireTrack) usable() bool {
	return w != nil && w.ID != "" && !w.IsLocal
}

func (w *wireArtist) toModel() models.Artist {
	genres := w.Genres
	if genres == nil {
		genres = []string{}
	}
	return models.Artist{
		ID:         w.ID,
		Name:       w.Name,
		Genres:     genres,
		Popularity: w.Popularity,
		Followers:  w.Followers.Total,
	}
}

func (w *wirePlaylist) toModel() models.Playlist {
	return models.Playlist{
		ID:         w.ID,
		Name:       w.Name,
		OwnerID:    w.Owner.ID,
		TrackCount: w.Tracks.Total,
	}
}

func (w *wireAudioFeatures) toModel() models.AudioFeatures {
	return models.AudioFeatures{
		ID:               w.ID,
		Danceability:     w.Danceability,
		Energy:           w.Energy,
		Valence:          w.Valence,
		Acousticness:     w.Acousticness,
		Instrumentalness: w.Instrumentalness,
		Liveness:         w.Liveness,
		Speechiness:      w.Speechiness,
		Tempo:            w.Tempo,
	}
}

func mapTracks(in []wireTrack) []models.Track {
	out := make([]models.Track, 0, len(in))
	for i := range in {
		if in[i].usable() {
			out = append(out, in[i].toModel())
		}
	}
	return out
}

func mapSavedTracks(in []wireSavedTrack) []models.Track {
	out := make([]models.Track, 0, len(in))
	for _, item := range in {
		if item.Track.usable() {
			out = append(out, item.Track.toModel())
		}
	}
	return out
}
