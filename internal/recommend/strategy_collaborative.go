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

// similarityEnabled reports whether s can be called. A typed nil client is
// handled by the client's own nil-safe Enabled.
func similarityEnabled(s SimilarityService) bool {
	return s != nil && s.Enabled()
}

// collaborativeStrategy discovers tracks by artists that listeners of the
// profile's favourite artists also play.
type collaborativeStrategy struct {
	cfg        CollaborativeConfig
	similarity SimilarityService
	features   *featureFetcher
	logger     zerolog.Logger
}

func (s *collaborativeStrategy) Name() string { return "collaborative" }

func (s *collaborativeStrategy) Generate(ctx context.Context, gen *Generation, limit int) ([]Candidate, error) {
	if !s.cfg.Enabled || !similarityEnabled(s.similarity) || limit <= 0 {
		return nil, nil
	}

	seeds := gen.Profile.Taste.PreferredArtists
	if len(seeds) > s.cfg.SeedArtists {
		seeds = seeds[:s.cfg.SeedArtists]
	}

	var (
		candidates []Candidate
		errs       []error
	)

seedLoop:
	for _, seed := range seeds {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		name := s.seedName(ctx, gen.Session, seed)
		if name == "" {
			continue
		}

		similar, err := s.similarity.SimilarArtists(ctx, name, s.cfg.SimilarArtists)
		if err != nil {
			errs = append(errs, fmt.Errorf("similar artists for %q: %w", name, err))
			continue
		}
		if len(similar) > s.cfg.ArtistsUsed {
			similar = similar[:s.cfg.ArtistsUsed]
		}

		for _, sa := range similar {
			tracks, err := gen.Session.SearchTracks(ctx, "artist:"+quote(sa.Name), s.cfg.SearchLimit)
			if err != nil {
				errs = append(errs, fmt.Errorf("search tracks by %q: %w", sa.Name, err))
				continue
			}
			for i := range tracks {
				if !gen.Admit(&tracks[i]) {
					continue
				}
				candidates = append(candidates, Candidate{
					Track:       tracks[i],
					Match:       sa.Match,
					Source:      models.SourceCollaborative,
					LeadReasons: []string{"Similar to " + name},
				})
				if len(candidates) >= limit {
					break seedLoop
				}
			}
		}
	}

	s.features.resolveCandidateFeatures(ctx, gen.Session, candidates)

	s.logger.Debug().
		Int("seeds", len(seeds)).
		Int("candidates", len(candidates)).
		Int("errors", len(errs)).
		Msg("collaborative discovery finished")

	return candidates, errors.Join(errs...)
}

// seedName returns the artist's display name, looking it up in the catalog when
// the profile only carries an ID.
func (s *collaborativeStrategy) seedName(ctx context.Context, session CatalogSession, seed models.WeightedArtist) string {
	if seed.Name != "" {
		return seed.Name
	}
	if seed.ID == "" {
		return ""
	}
	artist, err := session.Artist(ctx, seed.ID)
	if err != nil {
		s.logger.Debug().Err(err).Str("artist_id", seed.ID).Msg("could not resolve seed artist name")
		return ""
	}
	return artist.Name
}
