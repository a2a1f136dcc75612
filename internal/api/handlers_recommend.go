// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/recommend"
)

// credentialOrReject extracts the bearer credential, writing a 401 when it
// is missing.
func credentialOrReject(w http.ResponseWriter, r *http.Request) (string, bool) {
	credential, err := bearerCredential(r)
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, CodeMissingCredential, "A bearer credential is required", nil)
		return "", false
	}
	return credential, true
}

// Profile returns the listener's taste profile and signal counts. With
// ?include=raw the full aggregated corpus is returned instead.
//
// Method: GET
// Path: /api/v1/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := ProfileRequest{Include: r.URL.Query().Get("include")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	credential, ok := credentialOrReject(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profile, err := h.engine.BuildUserMusicProfile(ctx, credential)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	if req.Include == "raw" {
		respondSuccess(w, r, http.StatusOK, profile, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, ProfileSummary{
		UserID:         profile.UserID,
		LikedTracks:    len(profile.LikedTracks),
		Playlists:      len(profile.Playlists),
		PlaylistTracks: profile.PlaylistTrackCount(),
		RecentTracks:   len(profile.RecentTracks),
		TopTracks:      len(profile.TopTracks),
		TopArtists:     len(profile.TopArtists),
		FeatureVectors: len(profile.Features),
		Taste:          profile.Taste,
	}, start)
}

// Recommendations returns ranked recommendations for the listener.
//
// Method: GET
// Path: /api/v1/recommendations
//
// Query Parameters:
//   - limit: number of recommendations, 0..100 (default 20)
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := getIntParam(r, "limit", h.defaultLimit)
	if !ok {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "limit must be an integer", nil)
		return
	}
	req := RecommendationsRequest{Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	credential, ok := credentialOrReject(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.engine.GetRecommendations(ctx, credential, req.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, result, start)
}

// CustomRecommendations returns discovery recommendations for explicit
// feature targets and seeds.
//
// Method: POST
// Path: /api/v1/recommendations/custom
//
// Body:
//
//	{"feature_targets": {"energy": 0.8}, "seed_genres": ["techno"], "seed_artists": [], "limit": 20}
func (h *Handler) CustomRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CustomRecommendationsRequest
	if err := decodeJSONBody(w, r, &req, false); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Request body must be a valid JSON object", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	credential, ok := credentialOrReject(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.engine.GetCustomRecommendations(ctx, credential, recommend.CustomRequest{
		FeatureTargets: req.FeatureTargets,
		SeedGenres:     req.SeedGenres,
		SeedArtists:    req.SeedArtists,
		Limit:          req.Limit,
	})
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, result, start)
}

// respondEngineError writes the classified engine error. A request the
// client already abandoned is logged and not answered.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		logging.Ctx(r.Context()).Debug().Msg("Client went away before the response was ready")
		return
	}
	respondClassified(w, r, classifyEngineError(err), err)
}
