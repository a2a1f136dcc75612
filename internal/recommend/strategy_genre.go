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

// maxGenreSearch is the catalog's search page limit.
const maxGenreSearch = 50

// genreStrategy searches recent releases in the listener's preferred genres.
// It needs no similarity data, so it is the fallback when that service is off.
type genreStrategy struct {
	cfg           GenreConfig
	defaultGenres []string
	logger        zerolog.Logger
}

func (s *genreStrategy) Name() string { return "genre" }

func (s *genreStrategy) Generate(ctx context.Context, gen *Generation, limit int) ([]Candidate, error) {
	if limit <= 0 {
		return nil, nil
	}

	genres := gen.Profile.Taste.GenreNames()
	if len(genres) == 0 {
		genres = s.defaultGenres
	}
	if len(genres) > s.cfg.SeedGenres {
		genres = genres[:s.cfg.SeedGenres]
	}
	if len(genres) == 0 {
		return nil, nil
	}

	year := gen.Now.Year()
	perGenre := min(max((limit+len(genres)-1)/len(genres), 1), maxGenreSearch)

	var (
		candidates []Candidate
		errs       []error
	)

	for _, genre := range genres {
		if len(candidates) >= limit {
			break
		}
		query := fmt.Sprintf("genre:%s year:%d-%d", quote(genre), year-s.cfg.RecentYears, year)
		tracks, err := gen.Session.SearchTracks(ctx, query, perGenre)
		if err != nil {
			errs = append(errs, fmt.Errorf("search genre %q: %w", genre, err))
			continue
		}

		for i := range tracks {
			if !gen.Admit(&tracks[i]) {
				continue
			}
			candidates = append(candidates, Candidate{
				Track:            tracks[i],
				Features:         models.NeutralFeatures(tracks[i].ID),
				FeaturesResolved: false,
				Match:            1,
				Source:           models.SourceContentBased,
				LeadReasons:      []string{"Genre-based discovery: " + genre},
			})
			if len(candidates) >= limit {
				break
			}
		}
	}

	s.logger.Debug().
		Strs("genres", genres).
		Int("candidates", len(candidates)).
		Msg("genre discovery finished")

	return candidates, errors.Join(errs...)
}
