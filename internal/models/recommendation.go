// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package models

// Source identifies which discovery path produced a recommendation.
type Source string

const (
	SourceContentBased  Source = "content-based"
	SourceCollaborative Source = "collaborative"
	SourceHybrid        Source = "hybrid"
	SourceCustom        Source = "custom"
)

// Recommendation is a scored, explained track suggestion.
type Recommendation struct {
	Track    Track         `json:"track"`
	Features AudioFeatures `json:"features"`
	Score    float64       `json:"score"`
	Reasons  []string      `json:"reasons"`
	Source   Source        `json:"source"`
}

// StrategyStat records what one discovery strategy contributed to a request.
type StrategyStat struct {
	Name       string `json:"name"`
	Candidates int    `json:"candidates"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RecommendationStats reports the inputs and intermediate counts behind a
// recommendation list.
type RecommendationStats struct {
	LikedTracks    int `json:"liked_tracks"`
	Playlists      int `json:"playlists"`
	PlaylistTracks int `json:"playlist_tracks"`
	RecentTracks   int `json:"recent_tracks"`
	TopTracks      int `json:"top_tracks"`
	TopArtists     int `json:"top_artists"`

	AnalyzedTracks int `json:"analyzed_tracks"`
	FeatureVectors int `json:"feature_vectors"`

	CandidatesGenerated int `json:"candidates_generated"`
	CandidatesExcluded  int `json:"candidates_excluded"`
	Returned            int `json:"returned"`

	Strategies           []StrategyStat `json:"strategies"`
	Placeholder          bool           `json:"placeholder"`
	CollaborativeEnabled bool           `json:"collaborative_enabled"`
	DurationMS           int64          `json:"duration_ms"`
}

// CustomStats reports how a custom request was interpreted.
type CustomStats struct {
	SeedsUsed        []string           `json:"seeds_used"`
	TargetsApplied   map[string]float64 `json:"targets_applied"`
	TargetsDropped   []string           `json:"targets_dropped,omitempty"`
	UsedDefaultSeeds bool               `json:"used_default_seeds"`
	Returned         int                `json:"returned"`
	DurationMS       int64              `json:"duration_ms"`
}
