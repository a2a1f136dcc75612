// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/models"
)

// trackSimilarityStrategy extends discovery from the listener's favourite
// tracks, resolving each similar track back to the catalog by exact search.
type trackSimilarityStrategy struct {
	cfg        TrackSimilarityConfig
	similarity SimilarityService
	features   *featureFetcher
	logger     zerolog.Logger
}

func (s *trackSimilarityStrategy) Name() string { return "track_similarity" }

func (s *trackSimilarityStrategy) Generate(ctx context.Context, gen *Generation, limit int) ([]Candidate, error) {
	if !s.cfg.Enabled || !similarityEnabled(s.similarity) || limit <= 0 {
		return nil, nil
	}

	seeds := mostLiked(gen.Profile, s.cfg.SeedTracks)

	var (
		candidates []Candidate
		errs       []error
	)

seedLoop:
	for i := range seeds {
		seed := &seeds[i]
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		similar, err := s.similarity.SimilarTracks(ctx, seed.PrimaryArtist(), seed.Name, s.cfg.SimilarTracks)
		if err != nil {
			errs = append(errs, fmt.Errorf("similar tracks for %q: %w", seed.Name, err))
			continue
		}

		for _, st := range similar {
			key := models.TrackNameKey(st.Artist, st.Name)
			if gen.Seen.Has(key) {
				continue
			}

			query := "track:" + quote(st.Name) + " artist:" + quote(st.Artist)
			tracks, err := gen.Session.SearchTracks(ctx, query, 1)
			if err != nil {
				errs = append(errs, fmt.Errorf("resolve %q: %w", key, err))
				continue
			}
			if len(tracks) == 0 || tracks[0].ID == "" {
				continue
			}

			track := tracks[0]
			if !gen.Admit(&track) {
				continue
			}
			gen.Seen.Add(key)

			candidates = append(candidates, Candidate{
				Track:       track,
				Match:       st.Match,
				Source:      models.SourceHybrid,
				LeadReasons: []string{"Listeners of " + seed.Name + " also play this"},
			})
			if len(candidates) >= limit {
				break seedLoop
			}
		}
	}

	s.features.resolveCandidateFeatures(ctx, gen.Session, candidates)

	s.logger.Debug().
		Int("seeds", len(seeds)).
		Int("candidates", len(candidates)).
		Int("errors", len(errs)).
		Msg("track similarity discovery finished")

	return candidates, errors.Join(errs...)
}

// mostLiked returns the first n top tracks, or the first n liked tracks when
// the listener has no top tracks.
func mostLiked(profile *models.UserMusicProfile, n int) []models.Track {
	source := profile.TopTracks
	if len(source) == 0 {
		source = profile.LikedTracks
	}
	out := make([]models.Track, 0, n)
	for i := range source {
		if len(out) >= n {
			break
		}
		if source[i].Name == "" || source[i].PrimaryArtist() == "" {
			continue
		}
		out = append(out, source[i])
	}
	return out
}
