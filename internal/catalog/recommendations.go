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
	"strings"

	"github.com/tomtom215/tastegraph/internal/models"
)

// MaxRecommendationLimit is the largest page the recommendations endpoint returns.
const MaxRecommendationLimit = 100

// Seeds are the inputs to SeededRecommendations. At least one and at most
// MaxSeeds values may be supplied across all three lists.
type Seeds struct {
	Tracks  []string
	Artists []string
	Genres  []string
}

// Count returns the number of seeds across all kinds.
func (s Seeds) Count() int {
	return len(s.Tracks) + len(s.Artists) + len(s.Genres)
}

// Validate enforces the seed quota before any network call.
func (s Seeds) Validate() error {
	n := s.Count()
	if n == 0 {
		return ErrNoSeeds
	}
	if n > MaxSeeds {
		return fmt.Errorf("%w: got %d", ErrTooManySeeds, n)
	}
	return nil
}

// SeededRecommendations asks the catalog for tracks near the seeds, steered
// by optional feature targets. Targets are sent as target_<feature>; callers
// are responsible for range checking them.
func (s *Session) SeededRecommendations(ctx context.Context, seeds Seeds, targets map[models.Feature]float64, limit int) ([]models.Track, error) {
	if err := seeds.Validate(); err != nil {
		return nil, err
	}

	q := url.Values{"limit": {strconv.Itoa(clampLimit(limit, MaxRecommendationLimit))}}
	if len(seeds.Tracks) > 0 {
		q.Set("seed_tracks", strings.Join(seeds.Tracks, ","))
	}
	if len(seeds.Artists) > 0 {
		q.Set("seed_artists", strings.Join(seeds.Artists, ","))
	}
	if len(seeds.Genres) > 0 {
		q.Set("seed_genres", strings.Join(seeds.Genres, ","))
	}
	for feature, v := range targets {
		q.Set("target_"+string(feature), strconv.FormatFloat(v, 'f', -1, 64))
	}
	if s.client.cfg.Market != "" {
		q.Set("market", s.client.cfg.Market)
	}

	var resp recommendationsResponse
	if err := s.doRequest(ctx, requestConfig{endpoint: "recommendations", path: "/recommendations", query: q}, &resp); err != nil {
		return nil, fmt.Errorf("seeded recommendations: %w", err)
	}
	return mapTracks(resp.Tracks), nil
}
