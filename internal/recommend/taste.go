// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/models"
)

// Calculator derives a TasteProfile from an aggregated listener profile.
type Calculator struct {
	cfg      TasteConfig
	features *featureFetcher
	logger   zerolog.Logger
}

// NewCalculator creates a taste calculator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCalculator(cfg TasteConfig, logger zerolog.Logger) *Calculator {
	return &Calculator{
		cfg: cfg,
		features: &featureFetcher{
			batchSize:   cfg.FeatureBatchSize,
			concurrency: cfg.FeatureBatchConcurrency,
			logger:      logger,
		},
		logger: logger,
	}
}

// Calculate resolves vectors for the priority subset, stores them in
// profile.Features and sets profile.Taste. It returns the size of the subset.
// Missing vectors never fail the calculation; with none resolved the neutral
// scalars are used and Taste.Neutral is set.
func (c *Calculator) Calculate(ctx context.Context, src FeatureSource, profile *models.UserMusicProfile) int {
	priority := c.prioritySubset(profile)

	if profile.Features == nil {
		profile.Features = make(map[string]models.AudioFeatures, len(priority))
	}
	for id, v := range c.features.fetch(ctx, src, priority) {
		profile.Features[id] = v
	}

	taste := averageFeatures(universe(profile), profile.Features)
	taste.PreferredGenres = rankGenres(profile.TopArtists, c.cfg.MaxGenres)
	taste.PreferredArtists = rankArtists(profile.TopArtists, c.cfg.MaxArtists)
	profile.Taste = taste

	c.logger.Debug().
		Int("priority_tracks", len(priority)).
		Int("feature_vectors", taste.FeatureCount).
		Bool("neutral", taste.Neutral).
		Int("genres", len(taste.PreferredGenres)).
		Msg("calculated taste profile")

	return len(priority)
}

// prioritySubset orders the tracks whose vectors are fetched: all top tracks,
// then recent tracks until RecentFillTo, then liked tracks (at most LikedCap)
// until PriorityCap. Playlist tracks are never included.
func (c *Calculator) prioritySubset(profile *models.UserMusicProfile) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0, c.cfg.PriorityCap)
	add := func(t *models.Track) bool {
		if t.ID == "" {
			return false
		}
		if _, ok := seen[t.ID]; ok {
			return false
		}
		seen[t.ID] = struct{}{}
		ids = append(ids, t.ID)
		return true
	}

	for i := range profile.TopTracks {
		add(&profile.TopTracks[i])
	}
	for i := range profile.RecentTracks {
		if len(ids) >= c.cfg.RecentFillTo {
			break
		}
		add(&profile.RecentTracks[i])
	}
	liked := 0
	for i := range profile.LikedTracks {
		if liked >= c.cfg.LikedCap || len(ids) >= c.cfg.PriorityCap {
			break
		}
		if add(&profile.LikedTracks[i]) {
			liked++
		}
	}

	return ids
}

// universe returns every track ID the listener has, deduplicated.
func universe(profile *models.UserMusicProfile) []string {
	known := profile.KnownTrackIDs()
	ids := make([]string, 0, len(known))
	for id := range known {
		ids = append(ids, id)
	}
	return ids
}

// averageFeatures takes the arithmetic mean of each scalar over the tracks in
// ids that have a resolved vector.
func averageFeatures(ids []string, vectors map[string]models.AudioFeatures) models.TasteProfile {
	var (
		sum   models.AudioFeatures
		count int
	)
	for _, id := range ids {
		v, ok := vectors[id]
		if !ok {
			continue
		}
		for _, f := range models.AllFeatures {
			sum.Set(f, sum.Value(f)+v.Value(f))
		}
		count++
	}

	var taste models.TasteProfile
	if count == 0 {
		taste.SetFeatures(models.NeutralFeatures(""))
		taste.Neutral = true
		return taste
	}

	mean := models.AudioFeatures{}
	for _, f := range models.AllFeatures {
		v := sum.Value(f) / float64(count)
		if !f.InRange(v) {
			v = clampFeature(f, v)
		}
		mean.Set(f, v)
	}
	taste.SetFeatures(mean)
	taste.FeatureCount = count
	return taste
}

// clampFeature brings v back into the valid range for f. Catalog vectors can
// carry a zero tempo for silent tracks, which would otherwise yield a zero average.
func clampFeature(f models.Feature, v float64) float64 {
	if f == models.FeatureTempo {
		if v <= 0 {
			return models.NeutralTempo
		}
		return min(v, 250)
	}
	return max(0, min(v, 1))
}

// rankGenres weights each genre by the summed popularity of the artists
// tagged with it. Ties are broken by name so the order is stable.
func rankGenres(artists []models.Artist, limit int) []models.WeightedGenre {
	weights := make(map[string]int)
	for i := range artists {
		for _, g := range artists[i].Genres {
			if g == "" {
				continue
			}
			weights[g] += artists[i].Popularity
		}
	}

	genres := make([]models.WeightedGenre, 0, len(weights))
	for g, w := range weights {
		genres = append(genres, models.WeightedGenre{Genre: g, Weight: w})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Weight != genres[j].Weight {
			return genres[i].Weight > genres[j].Weight
		}
		return genres[i].Genre < genres[j].Genre
	})

	if len(genres) > limit {
		genres = genres[:limit]
	}
	return genres
}

// rankArtists orders artists by popularity, keeping catalog order for ties.
func rankArtists(artists []models.Artist, limit int) []models.WeightedArtist {
	ranked := make([]models.WeightedArtist, 0, len(artists))
	for i := range artists {
		if artists[i].ID == "" && artists[i].Name == "" {
			continue
		}
		ranked = append(ranked, models.WeightedArtist{
			ID:     artists[i].ID,
			Name:   artists[i].Name,
			Weight: artists[i].Popularity,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
