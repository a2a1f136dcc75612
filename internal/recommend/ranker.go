// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tomtom215/tastegraph/internal/models"
)

// placeholderScore is the fixed score of placeholder items.
const placeholderScore = 0.5

// RankStats describes what the ranker did with its input.
type RankStats struct {
	// Unique is the number of candidates left after ID deduplication.
	Unique int
	// Excluded is the number dropped because the listener already knows them.
	Excluded int
	// Placeholder is true when the placeholder set was returned.
	Placeholder bool
}

// Ranker scores, orders and truncates candidates.
type Ranker struct {
	jitter          float64
	placeholderSize int

	mu  sync.Mutex
	rng RandomSource
}

// NewRanker creates a ranker drawing its noise from rng.
func NewRanker(cfg RankingConfig, rng RandomSource) *Ranker {
	return &Ranker{
		jitter:          cfg.Jitter,
		placeholderSize: cfg.PlaceholderSize,
		rng:             rng,
	}
}

// Rank turns candidates into at most limit recommendations. Candidates are
// deduplicated by track ID (first wins), tracks the listener already has are
// excluded, and the rest are shuffled and then sorted by score plus uniform
// noise in [-jitter, +jitter]. If nothing survives and limit > 0, the
// placeholder set is returned instead.
func (r *Ranker) Rank(profile *models.UserMusicProfile, candidates []Candidate, limit int) ([]models.Recommendation, RankStats) {
	var stats RankStats
	if limit <= 0 {
		return []models.Recommendation{}, stats
	}

	known := profile.KnownTrackIDs()
	seen := make(map[string]struct{}, len(candidates))
	recs := make([]models.Recommendation, 0, len(candidates))

	for i := range candidates {
		c := &candidates[i]
		if c.Track.ID == "" {
			continue
		}
		if _, dup := seen[c.Track.ID]; dup {
			continue
		}
		seen[c.Track.ID] = struct{}{}
		stats.Unique++

		if _, ok := known[c.Track.ID]; ok {
			stats.Excluded++
			continue
		}
		recs = append(recs, score(&profile.Taste, c))
	}

	if len(recs) == 0 {
		stats.Placeholder = true
		return r.placeholders(limit), stats
	}

	r.order(recs)

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, stats
}

// score computes a candidate's score and full reason list.
func score(taste *models.TasteProfile, c *Candidate) models.Recommendation {
	match := max(0, min(c.Match, 1))

	reasons := make([]string, 0, len(c.LeadReasons)+3)
	reasons = append(reasons, c.LeadReasons...)
	reasons = append(reasons, Explain(taste, c.Features, c.Track.Popularity)...)

	return models.Recommendation{
		Track:    c.Track,
		Features: c.Features,
		Score:    max(0, min(1, match*Similarity(taste, c.Features))),
		Reasons:  reasons,
		Source:   c.Source,
	}
}

// order shuffles recs once and sorts them by jittered score, descending.
func (r *Ranker) order(recs []models.Recommendation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rng.Shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })

	keys := make([]float64, len(recs))
	for i := range recs {
		keys[i] = recs[i].Score + (r.rng.Float64()*2-1)*r.jitter
	}

	sort.Sort(byKey{recs: recs, keys: keys})
}

type byKey struct {
	recs []models.Recommendation
	keys []float64
}

func (b byKey) Len() int           { return len(b.recs) }
func (b byKey) Less(i, j int) bool { return b.keys[i] > b.keys[j] }
func (b byKey) Swap(i, j int) {
	b.recs[i], b.recs[j] = b.recs[j], b.recs[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

// placeholders returns the fixed starter set used when every strategy came up empty.
func (r *Ranker) placeholders(limit int) []models.Recommendation {
	n := min(limit, r.placeholderSize)
	recs := make([]models.Recommendation, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("placeholder-%d", i)
		recs = append(recs, models.Recommendation{
			Track: models.Track{
				ID:      id,
				Name:    fmt.Sprintf("Starter Pick %d", i),
				Artists: []models.ArtistRef{{Name: "Various Artists"}},
			},
			Features: models.NeutralFeatures(id),
			Score:    placeholderScore,
			Reasons:  []string{ReasonPlaceholder},
			Source:   models.SourceContentBased,
		})
	}
	return recs
}
