// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/models"
)

// customScore is the fixed score of custom results. The request is the target,
// so there is nothing to compare against.
const customScore = 1.0

// GetCustomRecommendations asks the catalog for tracks near an explicit target
// vector. It bypasses the listener's profile entirely.
func (e *Engine) GetCustomRecommendations(ctx context.Context, credential string, req CustomRequest) (*CustomResult, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendOperation("custom", time.Since(start)) }()

	if credential == "" {
		return nil, ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	limit := e.clampLimit(req.Limit, e.config.Limits.DefaultLimit)
	targets, applied, dropped := parseTargets(req.FeatureTargets)
	seeds, usedDefault := e.customSeeds(req)

	logger := e.requestLogger(ctx)
	if len(dropped) > 0 {
		logger.Info().Strs("dropped", dropped).Msg("ignoring out-of-range feature targets")
	}

	session := e.sessions(credential)
	tracks, err := session.SeededRecommendations(ctx, seeds, targets, limit)
	if err != nil {
		return nil, fmt.Errorf("seeded recommendations: %w", err)
	}

	candidates := make([]Candidate, 0, len(tracks))
	seen := make(map[string]struct{}, len(tracks))
	for i := range tracks {
		if tracks[i].ID == "" {
			continue
		}
		if _, dup := seen[tracks[i].ID]; dup {
			continue
		}
		seen[tracks[i].ID] = struct{}{}
		candidates = append(candidates, Candidate{Track: tracks[i], Match: 1, Source: models.SourceCustom})
	}
	e.features.resolveCandidateFeatures(ctx, session, candidates)

	recs := make([]models.Recommendation, 0, len(candidates))
	for i := range candidates {
		recs = append(recs, models.Recommendation{
			Track:    candidates[i].Track,
			Features: candidates[i].Features,
			Score:    customScore,
			Reasons:  []string{ReasonCustom},
			Source:   models.SourceCustom,
		})
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	metrics.RecordRecommendationsReturned(string(models.SourceCustom), len(recs))

	seedsUsed := make([]string, 0, seeds.Count())
	for _, a := range seeds.Artists {
		seedsUsed = append(seedsUsed, "artist:"+a)
	}
	for _, g := range seeds.Genres {
		seedsUsed = append(seedsUsed, "genre:"+g)
	}

	return &CustomResult{
		Recommendations: recs,
		Stats: models.CustomStats{
			SeedsUsed:        seedsUsed,
			TargetsApplied:   applied,
			TargetsDropped:   dropped,
			UsedDefaultSeeds: usedDefault,
			Returned:         len(recs),
			DurationMS:       time.Since(start).Milliseconds(),
		},
	}, nil
}

// parseTargets keeps the targets whose name is a known feature and whose value
// is in range for it. Dropped names are returned sorted.
func parseTargets(in map[string]float64) (map[models.Feature]float64, map[string]float64, []string) {
	targets := make(map[models.Feature]float64, len(in))
	applied := make(map[string]float64, len(in))
	var dropped []string

	for name, v := range in {
		f, ok := models.ParseFeature(strings.ToLower(strings.TrimSpace(name)))
		if !ok || !f.InRange(v) {
			dropped = append(dropped, name)
			continue
		}
		targets[f] = v
		applied[string(f)] = v
	}

	sort.Strings(dropped)
	return targets, applied, dropped
}

// customSeeds combines artist seeds, then genre seeds, up to the catalog's
// seed limit. With none supplied the default genres are used.
func (e *Engine) customSeeds(req CustomRequest) (catalog.Seeds, bool) {
	var seeds catalog.Seeds
	for _, a := range req.SeedArtists {
		if a = strings.TrimSpace(a); a != "" && seeds.Count() < catalog.MaxSeeds {
			seeds.Artists = append(seeds.Artists, a)
		}
	}
	for _, g := range req.SeedGenres {
		if g = strings.TrimSpace(g); g != "" && seeds.Count() < catalog.MaxSeeds {
			seeds.Genres = append(seeds.Genres, g)
		}
	}

	if seeds.Count() > 0 {
		return seeds, false
	}
	seeds.Genres = append([]string(nil), e.config.DefaultSeedGenres...)
	return seeds, true
}
