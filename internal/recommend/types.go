// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"

	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/models"
	"github.com/tomtom215/tastegraph/internal/similarity"
)

// FeatureSource resolves audio feature vectors for up to 100 track IDs.
type FeatureSource interface {
	AudioFeatures(ctx context.Context, ids []string) ([]models.AudioFeatures, error)
}

// CatalogSession is the catalog API bound to one listener credential.
// *catalog.Session implements it.
type CatalogSession interface {
	FeatureSource

	CurrentUser(ctx context.Context) (models.User, error)
	LikedTracks(ctx context.Context) ([]models.Track, error)
	OwnedPlaylists(ctx context.Context, userID string, limit int) ([]models.Playlist, error)
	PlaylistTracks(ctx context.Context, playlistID string) ([]models.Track, error)
	TopTracks(ctx context.Context, window string, limit int) ([]models.Track, error)
	TopArtists(ctx context.Context, window string, limit int) ([]models.Artist, error)
	RecentlyPlayed(ctx context.Context, limit int) ([]models.Track, error)
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)
	Artist(ctx context.Context, id string) (models.Artist, error)
	SeededRecommendations(ctx context.Context, seeds catalog.Seeds, targets map[models.Feature]float64, limit int) ([]models.Track, error)
}

// SessionFactory binds a listener credential to a catalog session.
type SessionFactory func(credential string) CatalogSession

// CatalogSessions adapts a catalog client to a SessionFactory.
func CatalogSessions(c *catalog.Client) SessionFactory {
	return func(credential string) CatalogSession {
		return c.ForCredential(credential)
	}
}

// SimilarityService looks up listening-similarity data keyed by names.
// *similarity.Client implements it; a nil or disabled client turns the
// similarity-backed strategies off.
type SimilarityService interface {
	Enabled() bool
	SimilarArtists(ctx context.Context, name string, limit int) ([]similarity.SimilarArtist, error)
	SimilarTracks(ctx context.Context, artist, track string, limit int) ([]similarity.SimilarTrack, error)
}

// RandomSource drives the ranking shuffle and jitter. *rand.Rand implements it.
type RandomSource interface {
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Candidate is a track proposed by one strategy, before scoring.
type Candidate struct {
	Track    models.Track
	Features models.AudioFeatures

	// FeaturesResolved is false when Features holds the neutral placeholder.
	FeaturesResolved bool

	// Match is the similarity-service match in [0,1], or 1 when not applicable.
	Match float64

	Source models.Source

	// LeadReasons precede the scorer's explanations.
	LeadReasons []string
}

// RecommendationResult is the outcome of GetRecommendations.
type RecommendationResult struct {
	Recommendations []models.Recommendation    `json:"recommendations"`
	TasteProfile    models.TasteProfile        `json:"taste_profile"`
	Stats           models.RecommendationStats `json:"stats"`
}

// CustomRequest describes an explicit, listener-chosen target.
type CustomRequest struct {
	// FeatureTargets maps feature names to target values. Unknown names and
	// out-of-range values are dropped.
	FeatureTargets map[string]float64 `json:"feature_targets"`
	SeedGenres     []string           `json:"seed_genres"`
	SeedArtists    []string           `json:"seed_artists"`
	Limit          int                `json:"limit"`
}

// CustomResult is the outcome of GetCustomRecommendations.
type CustomResult struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Stats           models.CustomStats      `json:"stats"`
}
