// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Aggregation bounds the raw-signal fetches.
	Aggregation AggregationConfig `json:"aggregation"`

	// Taste controls which tracks feed the feature average.
	Taste TasteConfig `json:"taste"`

	// Collaborative contains fan-out parameters for similar-artist discovery.
	Collaborative CollaborativeConfig `json:"collaborative"`

	// TrackSimilarity contains fan-out parameters for similar-track discovery.
	TrackSimilarity TrackSimilarityConfig `json:"track_similarity"`

	// Genre contains parameters for the genre-search fallback.
	Genre GenreConfig `json:"genre"`

	// Ranking contains parameters for the final ordering.
	Ranking RankingConfig `json:"ranking"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// DefaultSeedGenres seeds custom requests and the genre fallback when the
	// listener supplies or has no genres.
	DefaultSeedGenres []string `json:"default_seed_genres"`

	// Seed is the random seed for the ranking jitter. Zero seeds from the
	// clock so rankings differ across restarts.
	Seed int64 `json:"seed"`
}

// AggregationConfig bounds what is fetched from the catalog per listener.
type AggregationConfig struct {
	// PlaylistScanLimit is how many playlists are listed before owner filtering.
	PlaylistScanLimit int `json:"playlist_scan_limit"`

	// PlaylistFetchLimit is how many owned playlists have their tracks fetched.
	PlaylistFetchLimit int `json:"playlist_fetch_limit"`

	// RecentLimit is the number of recent plays requested.
	RecentLimit int `json:"recent_limit"`

	// TopLimit is the number of top tracks and top artists requested.
	TopLimit int `json:"top_limit"`

	// TimeWindow is the affinity window for top items.
	TimeWindow string `json:"time_window"`
}

// TasteConfig controls the priority subset and feature batching.
type TasteConfig struct {
	// RecentFillTo stops adding recent tracks once the subset reaches this size.
	RecentFillTo int `json:"recent_fill_to"`

	// LikedCap is the most liked tracks admitted to the subset.
	LikedCap int `json:"liked_cap"`

	// PriorityCap is the maximum size of the subset.
	PriorityCap int `json:"priority_cap"`

	// FeatureBatchSize is the number of IDs per feature request (catalog max 100).
	FeatureBatchSize int `json:"feature_batch_size"`

	// FeatureBatchConcurrency bounds concurrent feature requests.
	FeatureBatchConcurrency int `json:"feature_batch_concurrency"`

	// MaxGenres is the number of preferred genres kept.
	MaxGenres int `json:"max_genres"`

	// MaxArtists is the number of preferred artists kept.
	MaxArtists int `json:"max_artists"`
}

// CollaborativeConfig contains similar-artist fan-out parameters.
type CollaborativeConfig struct {
	Enabled        bool `json:"enabled"`
	SeedArtists    int  `json:"seed_artists"`
	SimilarArtists int  `json:"similar_artists"`
	ArtistsUsed    int  `json:"artists_used"`
	SearchLimit    int  `json:"search_limit"`
}

// TrackSimilarityConfig contains similar-track fan-out parameters.
type TrackSimilarityConfig struct {
	Enabled       bool `json:"enabled"`
	SeedTracks    int  `json:"seed_tracks"`
	SimilarTracks int  `json:"similar_tracks"`
}

// GenreConfig contains genre-fallback parameters.
type GenreConfig struct {
	// SeedGenres is how many preferred genres are searched.
	SeedGenres int `json:"seed_genres"`

	// RecentYears is the width of the release-year window ending at the current year.
	RecentYears int `json:"recent_years"`
}

// RankingConfig contains ordering parameters.
type RankingConfig struct {
	// Jitter is the half-width of the uniform noise added to each score.
	Jitter float64 `json:"jitter"`

	// PlaceholderSize is the most placeholder items returned on exhaustion.
	PlaceholderSize int `json:"placeholder_size"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is used when a caller does not specify a limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of recommendations per request.
	MaxLimit int `json:"max_limit"`

	// RequestTimeout bounds a whole recommendation request.
	RequestTimeout time.Duration `json:"request_timeout"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Aggregation: AggregationConfig{
			PlaylistScanLimit:  50,
			PlaylistFetchLimit: 10,
			RecentLimit:        50,
			TopLimit:           50,
			TimeWindow:         "medium_term",
		},
		Taste: TasteConfig{
			RecentFillTo:            200,
			LikedCap:                300,
			PriorityCap:             500,
			FeatureBatchSize:        100,
			FeatureBatchConcurrency: 2,
			MaxGenres:               10,
			MaxArtists:              20,
		},
		Collaborative: CollaborativeConfig{
			Enabled:        true,
			SeedArtists:    5,
			SimilarArtists: 10,
			ArtistsUsed:    3,
			SearchLimit:    5,
		},
		TrackSimilarity: TrackSimilarityConfig{
			Enabled:       true,
			SeedTracks:    3,
			SimilarTracks: 5,
		},
		Genre: GenreConfig{
			SeedGenres:  3,
			RecentYears: 2,
		},
		Ranking: RankingConfig{
			Jitter:          0.1,
			PlaceholderSize: 5,
		},
		Limits: LimitsConfig{
			DefaultLimit:   20,
			MaxLimit:       100,
			RequestTimeout: 30 * time.Second,
		},
		DefaultSeedGenres: []string{"pop", "rock"},
		Seed:              0,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Aggregation.PlaylistScanLimit <= 0 {
		return fmt.Errorf("aggregation.playlist_scan_limit must be positive, got %d", c.Aggregation.PlaylistScanLimit)
	}
	if c.Aggregation.PlaylistFetchLimit < 0 {
		return fmt.Errorf("aggregation.playlist_fetch_limit must be non-negative, got %d", c.Aggregation.PlaylistFetchLimit)
	}
	if c.Aggregation.RecentLimit <= 0 || c.Aggregation.RecentLimit > 50 {
		return fmt.Errorf("aggregation.recent_limit must be in [1, 50], got %d", c.Aggregation.RecentLimit)
	}
	if c.Aggregation.TopLimit <= 0 || c.Aggregation.TopLimit > 50 {
		return fmt.Errorf("aggregation.top_limit must be in [1, 50], got %d", c.Aggregation.TopLimit)
	}
	switch c.Aggregation.TimeWindow {
	case "short_term", "medium_term", "long_term":
	default:
		return fmt.Errorf("aggregation.time_window must be short_term, medium_term or long_term, got %q", c.Aggregation.TimeWindow)
	}

	if c.Taste.FeatureBatchSize <= 0 || c.Taste.FeatureBatchSize > 100 {
		return fmt.Errorf("taste.feature_batch_size must be in [1, 100], got %d", c.Taste.FeatureBatchSize)
	}
	if c.Taste.FeatureBatchConcurrency <= 0 {
		return fmt.Errorf("taste.feature_batch_concurrency must be positive, got %d", c.Taste.FeatureBatchConcurrency)
	}
	if c.Taste.PriorityCap <= 0 {
		return fmt.Errorf("taste.priority_cap must be positive, got %d", c.Taste.PriorityCap)
	}
	if c.Taste.RecentFillTo < 0 || c.Taste.LikedCap < 0 {
		return fmt.Errorf("taste.recent_fill_to and taste.liked_cap must be non-negative, got %d and %d",
			c.Taste.RecentFillTo, c.Taste.LikedCap)
	}
	if c.Taste.MaxGenres <= 0 || c.Taste.MaxArtists <= 0 {
		return fmt.Errorf("taste.max_genres and taste.max_artists must be positive, got %d and %d",
			c.Taste.MaxGenres, c.Taste.MaxArtists)
	}

	if c.Collaborative.SeedArtists < 0 || c.Collaborative.SimilarArtists < 0 ||
		c.Collaborative.ArtistsUsed < 0 || c.Collaborative.SearchLimit < 0 {
		return fmt.Errorf("collaborative fan-out values must be non-negative")
	}
	if c.Collaborative.SearchLimit > 50 {
		return fmt.Errorf("collaborative.search_limit must be at most 50, got %d", c.Collaborative.SearchLimit)
	}
	if c.TrackSimilarity.SeedTracks < 0 || c.TrackSimilarity.SimilarTracks < 0 {
		return fmt.Errorf("track_similarity fan-out values must be non-negative")
	}

	if c.Genre.SeedGenres <= 0 {
		return fmt.Errorf("genre.seed_genres must be positive, got %d", c.Genre.SeedGenres)
	}
	if c.Genre.RecentYears < 0 {
		return fmt.Errorf("genre.recent_years must be non-negative, got %d", c.Genre.RecentYears)
	}

	if c.Ranking.Jitter < 0 || c.Ranking.Jitter > 0.5 {
		return fmt.Errorf("ranking.jitter must be in [0, 0.5], got %f", c.Ranking.Jitter)
	}
	if c.Ranking.PlaceholderSize <= 0 {
		return fmt.Errorf("ranking.placeholder_size must be positive, got %d", c.Ranking.PlaceholderSize)
	}

	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.RequestTimeout <= 0 {
		return fmt.Errorf("limits.request_timeout must be positive, got %v", c.Limits.RequestTimeout)
	}

	if len(c.DefaultSeedGenres) == 0 {
		return fmt.Errorf("default_seed_genres must not be empty")
	}
	if len(c.DefaultSeedGenres) > 5 {
		return fmt.Errorf("default_seed_genres must have at most 5 entries, got %d", len(c.DefaultSeedGenres))
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.DefaultSeedGenres = append([]string(nil), c.DefaultSeedGenres...)
	return &clone
}
