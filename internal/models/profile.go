// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package models

// WeightedGenre is a genre tag with its accumulated artist popularity.
type WeightedGenre struct {
	Genre  string `json:"genre"`
	Weight int    `json:"weight"`
}

// WeightedArtist is one of the listener's preferred artists. Weight is the
// artist's catalog popularity.
type WeightedArtist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// TasteProfile is the averaged listening character of one listener. It is
// derived per request and never stored.
type TasteProfile struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`

	PreferredGenres  []WeightedGenre  `json:"preferred_genres"`
	PreferredArtists []WeightedArtist `json:"preferred_artists"`

	// FeatureCount is the number of vectors that were averaged.
	FeatureCount int `json:"feature_count"`
	// Neutral is true when no vector resolved and the neutral scalars were used.
	Neutral bool `json:"neutral"`
}

// Features returns the profile scalars as a feature vector so it can be
// compared against a track with the same accessors.
func (p *TasteProfile) Features() AudioFeatures {
	return AudioFeatures{
		Danceability:     p.Danceability,
		Energy:           p.Energy,
		Valence:          p.Valence,
		Acousticness:     p.Acousticness,
		Instrumentalness: p.Instrumentalness,
		Liveness:         p.Liveness,
		Speechiness:      p.Speechiness,
		Tempo:            p.Tempo,
	}
}

// SetFeatures copies the scalars of f into the profile.
//
//nolint:gocritic // mirrors Features
func (p *TasteProfile) SetFeatures(f AudioFeatures) {
	p.Danceability = f.Danceability
	p.Energy = f.Energy
	p.Valence = f.Valence
	p.Acousticness = f.Acousticness
	p.Instrumentalness = f.Instrumentalness
	p.Liveness = f.Liveness
	p.Speechiness = f.Speechiness
	p.Tempo = f.Tempo
}

// GenreNames returns the preferred genre tags in rank order.
func (p *TasteProfile) GenreNames() []string {
	names := make([]string, 0, len(p.PreferredGenres))
	for _, g := range p.PreferredGenres {
		names = append(names, g.Genre)
	}
	return names
}

// UserMusicProfile is everything gathered about one listener during a single
// aggregation call.
type UserMusicProfile struct {
	UserID         string                   `json:"user_id"`
	LikedTracks    []Track                  `json:"liked_tracks"`
	Playlists      []Playlist               `json:"playlists"`
	PlaylistTracks map[string][]Track       `json:"playlist_tracks"`
	RecentTracks   []Track                  `json:"recent_tracks"`
	TopTracks      []Track                  `json:"top_tracks"`
	TopArtists     []Artist                 `json:"top_artists"`
	Features       map[string]AudioFeatures `json:"features"`
	Taste          TasteProfile             `json:"taste"`
}

// PlaylistTrackCount returns the number of playlist tracks fetched across all playlists.
func (p *UserMusicProfile) PlaylistTrackCount() int {
	n := 0
	for _, tracks := range p.PlaylistTracks {
		n += len(tracks)
	}
	return n
}

// KnownTrackIDs returns the set of track IDs the listener already has in their
// liked, recent, top or playlist corpus.
func (p *UserMusicProfile) KnownTrackIDs() map[string]struct{} {
	known := make(map[string]struct{}, len(p.LikedTracks)+len(p.RecentTracks)+len(p.TopTracks))
	add := func(tracks []Track) {
		for i := range tracks {
			if tracks[i].ID != "" {
				known[tracks[i].ID] = struct{}{}
			}
		}
	}
	add(p.LikedTracks)
	add(p.RecentTracks)
	add(p.TopTracks)
	for _, tracks := range p.PlaylistTracks {
		add(tracks)
	}
	return known
}
