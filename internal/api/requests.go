// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import "github.com/tomtom215/tastegraph/internal/models"

// Request types validated with go-playground/validator. Validation rejects
// malformed input only. Out-of-range feature targets and surplus seeds are
// accepted here and reported back by the engine as dropped or truncated.

// ProfileRequest holds query parameters for GET /profile.
type ProfileRequest struct {
	Include string `json:"include" validate:"omitempty,oneof=raw"`
}

// RecommendationsRequest holds query parameters for GET /recommendations.
type RecommendationsRequest struct {
	Limit int `json:"limit" validate:"min=0,max=100"`
}

// CustomRecommendationsRequest is the body of POST /recommendations/custom.
type CustomRecommendationsRequest struct {
	FeatureTargets map[string]float64 `json:"feature_targets" validate:"omitempty,max=16"`
	SeedGenres     []string           `json:"seed_genres" validate:"omitempty,max=20,dive,seed"`
	SeedArtists    []string           `json:"seed_artists" validate:"omitempty,max=20,dive,seed"`
	Limit          int                `json:"limit" validate:"min=0,max=100"`
}

// HandoffRequest is the optional body of POST /handoff. Zero selects the
// store's configured TTL.
type HandoffRequest struct {
	TTLSeconds int `json:"ttl_seconds" validate:"min=0,max=3600"`
}

// RedeemRequest holds the path parameter of POST /handoff/{code}/redeem.
type RedeemRequest struct {
	Code string `json:"code" validate:"required,uuid"`
}

// ProfileSummary is the default GET /profile payload.
type ProfileSummary struct {
	UserID         string              `json:"user_id"`
	LikedTracks    int                 `json:"liked_tracks"`
	Playlists      int                 `json:"playlists"`
	PlaylistTracks int                 `json:"playlist_tracks"`
	RecentTracks   int                 `json:"recent_tracks"`
	TopTracks      int                 `json:"top_tracks"`
	TopArtists     int                 `json:"top_artists"`
	FeatureVectors int                 `json:"feature_vectors"`
	Taste          models.TasteProfile `json:"taste"`
}

// HandoffResponse is returned by POST /handoff.
type HandoffResponse struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

// RedeemResponse is returned by POST /handoff/{code}/redeem.
type RedeemResponse struct {
	Credential string `json:"credential"`
}

// ReadinessResponse is returned by GET /health/ready.
type ReadinessResponse struct {
	Status   string            `json:"status"`
	Uptime   string            `json:"uptime"`
	Breakers map[string]string `json:"breakers"`
	Degraded []string          `json:"degraded,omitempty"`
}
