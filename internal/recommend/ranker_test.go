// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/tomtom215/tastegraph/internal/models"
)

func candidate(id string, match float64, f models.AudioFeatures) Candidate {
	return Candidate{
		Track:            track(id, "Artist "+id, "Song "+id, 50),
		Features:         f,
		FeaturesResolved: true,
		Match:            match,
		Source:           models.SourceCollaborative,
		LeadReasons:      []string{"Similar to Seed"},
	}
}

func TestRanker_DedupAndExclusion(t *testing.T) {
	t.Parallel()

	profile := &models.UserMusicProfile{
		LikedTracks:    []models.Track{track("liked", "A", "L", 50)},
		RecentTracks:   []models.Track{track("recent", "A", "R", 50)},
		PlaylistTracks: map[string][]models.Track{"p": {track("listed", "A", "P", 50)}},
	}
	profile.Taste.SetFeatures(models.NeutralFeatures(""))

	neutral := models.NeutralFeatures("")
	candidates := []Candidate{
		candidate("a", 0.9, neutral),
		candidate("liked", 0.9, neutral),
		candidate("a", 0.1, neutral),
		candidate("recent", 0.9, neutral),
		candidate("b", 0.5, neutral),
		candidate("listed", 0.9, neutral),
		candidate("", 0.9, neutral),
	}

	r := NewRanker(RankingConfig{Jitter: 0, PlaceholderSize: 5}, fixedRandom{v: 0.5})
	recs, stats := r.Rank(profile, candidates, 10)

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].Track.ID != "a" || recs[1].Track.ID != "b" {
		t.Errorf("order = %s, %s; want a, b", recs[0].Track.ID, recs[1].Track.ID)
	}
	if recs[0].Score != 0.9 {
		t.Errorf("first occurrence should win: score = %v, want 0.9", recs[0].Score)
	}
	if stats.Excluded != 3 || stats.Unique != 5 || stats.Placeholder {
		t.Errorf("stats = %+v", stats)
	}
	if recs[0].Reasons[0] != "Similar to Seed" || len(recs[0].Reasons) < 2 {
		t.Errorf("reasons = %v", recs[0].Reasons)
	}
}

func TestRanker_Limits(t *testing.T) {
	t.Parallel()

	profile := &models.UserMusicProfile{}
	profile.Taste.SetFeatures(models.NeutralFeatures(""))

	candidates := make([]Candidate, 0, 30)
	for i := 0; i < 30; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("c%d", i), float64(i)/30, models.NeutralFeatures("")))
	}

	for _, limit := range []int{-1, 0, 1, 20, 1000} {
		r := NewRanker(DefaultConfig().Ranking, rand.New(rand.NewSource(7))) //nolint:gosec // test
		recs, _ := r.Rank(profile, candidates, limit)

		want := max(0, min(limit, len(candidates)))
		if len(recs) != want {
			t.Errorf("limit %d: got %d, want %d", limit, len(recs), want)
		}
		seen := make(map[string]bool)
		for _, rec := range recs {
			if seen[rec.Track.ID] {
				t.Errorf("limit %d: duplicate %s", limit, rec.Track.ID)
			}
			seen[rec.Track.ID] = true
			if rec.Score < 0 || rec.Score > 1 {
				t.Errorf("limit %d: score %v out of range", limit, rec.Score)
			}
			if len(rec.Reasons) == 0 {
				t.Errorf("limit %d: empty reasons", limit)
			}
		}
	}
}

func TestRanker_JitterKeepsWellSeparatedOrder(t *testing.T) {
	t.Parallel()

	profile := &models.UserMusicProfile{}
	profile.Taste.SetFeatures(models.NeutralFeatures(""))
	neutral := models.NeutralFeatures("")

	candidates := []Candidate{
		candidate("low", 0.1, neutral),
		candidate("high", 0.9, neutral),
		candidate("mid", 0.5, neutral),
	}

	for seed := int64(1); seed <= 20; seed++ {
		r := NewRanker(RankingConfig{Jitter: 0.1, PlaceholderSize: 5}, rand.New(rand.NewSource(seed))) //nolint:gosec // test
		recs, _ := r.Rank(profile, candidates, 3)
		if recs[0].Track.ID != "high" || recs[1].Track.ID != "mid" || recs[2].Track.ID != "low" {
			t.Fatalf("seed %d: order = %s %s %s", seed, recs[0].Track.ID, recs[1].Track.ID, recs[2].Track.ID)
		}
	}
}

// sequenceRandom returns its values in order and never shuffles.
type sequenceRandom struct {
	values []float64
	next   int
}

func (r *sequenceRandom) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

func (r *sequenceRandom) Shuffle(int, func(i, j int)) {}

func TestRanker_JitterTerm(t *testing.T) {
	t.Parallel()

	profile := &models.UserMusicProfile{}
	profile.Taste.SetFeatures(models.NeutralFeatures(""))
	neutral := models.NeutralFeatures("")
	candidates := []Candidate{
		candidate("lower", 0.50, neutral),
		candidate("higher", 0.55, neutral),
	}

	tests := []struct {
		name   string
		draws  []float64
		wantID string
	}{
		// 0.50 + (1*2-1)*0.1 = 0.60 beats 0.55 + (0*2-1)*0.1 = 0.45
		{"full spread flips the pair", []float64{1, 0}, "lower"},
		// a draw of 0.5 adds nothing
		{"midpoint draws keep score order", []float64{0.5, 0.5}, "higher"},
		// 0.50 + 0.02 = 0.52 still below 0.55 + 0 = 0.55
		{"small nudge is not enough", []float64{0.6, 0.5}, "higher"},
	}
	for _, tt := range tests {
		r := NewRanker(RankingConfig{Jitter: 0.1, PlaceholderSize: 5}, &sequenceRandom{values: tt.draws})
		recs, _ := r.Rank(profile, candidates, 2)
		if recs[0].Track.ID != tt.wantID {
			t.Errorf("%s: first = %s, want %s", tt.name, recs[0].Track.ID, tt.wantID)
		}
		for _, rec := range recs {
			if rec.Track.ID == "lower" && (rec.Score < 0.499 || rec.Score > 0.501) {
				t.Errorf("%s: jitter leaked into the reported score: %v", tt.name, rec.Score)
			}
		}
	}

	// A constant draw shifts every key equally and never reorders.
	r := NewRanker(RankingConfig{Jitter: 0.1, PlaceholderSize: 5}, fixedRandom{v: 0.9})
	if recs, _ := r.Rank(profile, candidates, 2); recs[0].Track.ID != "higher" {
		t.Errorf("constant draw reordered the list: first = %s", recs[0].Track.ID)
	}
}

func TestRanker_RepeatedRequestsVaryOrder(t *testing.T) {
	t.Parallel()

	profile := &models.UserMusicProfile{}
	profile.Taste.SetFeatures(models.NeutralFeatures(""))
	neutral := models.NeutralFeatures("")

	candidates := make([]Candidate, 0, 8)
	for i := range 8 {
		candidates = append(candidates, candidate(fmt.Sprintf("c%d", i), 0.70+float64(i)*0.005, neutral))
	}

	r := NewRanker(RankingConfig{Jitter: 0.1, PlaceholderSize: 5}, rand.New(rand.NewSource(7))) //nolint:gosec // test
	orders := make(map[string]struct{})
	for range 10 {
		recs, _ := r.Rank(profile, candidates, len(candidates))
		key := ""
		for _, rec := range recs {
			key += rec.Track.ID + ","
		}
		orders[key] = struct{}{}
	}
	if len(orders) < 2 {
		t.Errorf("10 rankings of near-equal scores produced %d distinct orders, want at least 2", len(orders))
	}

	cfg := RankingConfig{Jitter: 0.1, PlaceholderSize: 5}
	first, _ := NewRanker(cfg, rand.New(rand.NewSource(7))).Rank(profile, candidates, len(candidates)) //nolint:gosec // test
	other := NewRanker(cfg, rand.New(rand.NewSource(8)))                                               //nolint:gosec // test
	second, _ := other.Rank(profile, candidates, len(candidates))
	same := true
	for i := range first {
		if first[i].Track.ID != second[i].Track.ID {
			same = false
			break
		}
	}
	if same {
		t.Error("different random sources produced the same order")
	}
}

func TestRankerSeed(t *testing.T) {
	t.Parallel()

	if got := rankerSeed(99); got != 99 {
		t.Errorf("rankerSeed(99) = %d, want 99", got)
	}
	if got := rankerSeed(0); got == 0 {
		t.Error("zero seed must be replaced")
	}
}

func TestRanker_Placeholder(t *testing.T) {
	t.Parallel()

	profile := &models.UserMusicProfile{LikedTracks: []models.Track{track("only", "A", "B", 50)}}
	r := NewRanker(DefaultConfig().Ranking, fixedRandom{v: 0.5})

	tests := []struct {
		name       string
		candidates []Candidate
		limit      int
		want       int
	}{
		{"no candidates", nil, 20, 5},
		{"all excluded", []Candidate{candidate("only", 1, models.NeutralFeatures(""))}, 20, 5},
		{"small limit", nil, 3, 3},
		{"zero limit", nil, 0, 0},
	}

	for _, tt := range tests {
		recs, stats := r.Rank(profile, tt.candidates, tt.limit)
		if len(recs) != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, len(recs), tt.want)
		}
		if tt.want > 0 {
			if !stats.Placeholder {
				t.Errorf("%s: expected Placeholder", tt.name)
			}
			if recs[0].Track.ID != "placeholder-1" || recs[0].Score != 0.5 ||
				recs[0].Source != models.SourceContentBased || recs[0].Reasons[0] != ReasonPlaceholder {
				t.Errorf("%s: placeholder = %+v", tt.name, recs[0])
			}
		}
	}
}
