// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/models"
)

// Strategy proposes candidate tracks for one listener.
//
// Generate is asked for at most limit candidates and may return fewer,
// including none when it does not apply (for example, when the similarity
// service is not configured). A returned error is logged and recorded; the
// next strategy still runs.
type Strategy interface {
	Name() string
	Generate(ctx context.Context, gen *Generation, limit int) ([]Candidate, error)
}

// Generation is the state shared by the strategies of one request.
type Generation struct {
	Profile *models.UserMusicProfile
	Session CatalogSession
	Seen    *seenSet

	// Now is the request time, used for date-relative searches.
	Now time.Time

	// known holds the IDs the ranker excludes plus every admitted ID.
	mu       sync.Mutex
	known    map[string]struct{}
	produced int
}

// NewGeneration prepares a generation for profile, pre-seeding the seen set
// with the listener's liked and recent tracks and the known-ID set with every
// track the listener already has.
func NewGeneration(profile *models.UserMusicProfile, session CatalogSession, now time.Time) *Generation {
	seen := newSeenSet()
	for i := range profile.LikedTracks {
		seen.Add(profile.LikedTracks[i].NameKey())
	}
	for i := range profile.RecentTracks {
		seen.Add(profile.RecentTracks[i].NameKey())
	}
	return &Generation{
		Profile: profile,
		Session: session,
		Seen:    seen,
		Now:     now,
		known:   profile.KnownTrackIDs(),
	}
}

// Admit reports whether track may become a candidate and records it. Tracks
// without an ID, tracks the listener already has (liked, recent, top or in
// an owned playlist) and name or ID duplicates are rejected.
func (g *Generation) Admit(track *models.Track) bool {
	if track.ID == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.known[track.ID]; ok {
		return false
	}
	if !g.Seen.Add(track.NameKey()) {
		return false
	}
	if g.known == nil {
		g.known = make(map[string]struct{})
	}
	g.known[track.ID] = struct{}{}
	return true
}

// Produced returns the number of candidates generated so far.
func (g *Generation) Produced() int {
	return g.produced
}

// seenSet tracks "artist-track" keys across strategies. Names are the only
// identity shared between the similarity service and the catalog.
type seenSet struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{keys: make(map[string]struct{})}
}

// Add records key and reports whether it was new. Empty keys are never new.
func (s *seenSet) Add(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" || key == "-" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Has reports whether key has been recorded.
func (s *seenSet) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of recorded keys.
func (s *seenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

// runStrategies asks each strategy in order for the remaining count and stops
// once limit candidates exist.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func runStrategies(ctx context.Context, strategies []Strategy, gen *Generation, limit int, logger zerolog.Logger) ([]Candidate, []models.StrategyStat) {
	candidates := make([]Candidate, 0, limit)
	stats := make([]models.StrategyStat, 0, len(strategies))

	for _, s := range strategies {
		stat := models.StrategyStat{Name: s.Name()}
		remaining := limit - gen.produced
		if remaining <= 0 || ctx.Err() != nil {
			stat.Skipped = true
			stats = append(stats, stat)
			continue
		}

		found, err := s.Generate(ctx, gen, remaining)
		if len(found) > remaining {
			found = found[:remaining]
		}
		metrics.RecordStrategyResult(s.Name(), len(found), err)
		if err != nil {
			stat.Error = err.Error()
			logger.Warn().Err(err).
				Str("strategy", s.Name()).
				Int("partial", len(found)).
				Msg("strategy failed, continuing with next")
		}

		stat.Candidates = len(found)
		stats = append(stats, stat)
		candidates = append(candidates, found...)
		gen.produced += len(found)
	}

	return candidates, stats
}

// quote escapes a value for a catalog field filter.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "") + `"`
}
