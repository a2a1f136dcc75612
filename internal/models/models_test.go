// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package models

import (
	"math"
	"testing"
)

func TestNeutralFeatures(t *testing.T) {
	t.Parallel()

	f := NeutralFeatures("abc")
	if f.ID != "abc" {
		t.Errorf("ID = %q, want abc", f.ID)
	}
	want := map[Feature]float64{
		FeatureDanceability:     0.5,
		FeatureEnergy:           0.5,
		FeatureValence:          0.5,
		FeatureAcousticness:     0.5,
		FeatureInstrumentalness: 0.1,
		FeatureLiveness:         0.2,
		FeatureSpeechiness:      0.1,
		FeatureTempo:            120,
	}
	for feature, v := range want {
		if got := f.Value(feature); got != v {
			t.Errorf("%s = %v, want %v", feature, got, v)
		}
	}
}

func TestFeatureSetValueRoundTrip(t *testing.T) {
	t.Parallel()

	var f AudioFeatures
	for i, feature := range AllFeatures {
		f.Set(feature, float64(i)/10)
	}
	for i, feature := range AllFeatures {
		if got := f.Value(feature); got != float64(i)/10 {
			t.Errorf("%s = %v, want %v", feature, got, float64(i)/10)
		}
	}
	if !math.IsNaN(f.Value(Feature("loudness"))) {
		t.Error("unknown feature should be NaN")
	}
}

func TestFeatureInRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		feature Feature
		value   float64
		want    bool
	}{
		{FeatureDanceability, 0, true},
		{FeatureDanceability, 1, true},
		{FeatureDanceability, 2.0, false},
		{FeatureEnergy, -0.1, false},
		{FeatureTempo, 0, false},
		{FeatureTempo, 128, true},
		{FeatureTempo, 250, true},
		{FeatureTempo, 251, false},
		{FeatureValence, math.NaN(), false},
		{FeatureTempo, math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := tt.feature.InRange(tt.value); got != tt.want {
			t.Errorf("%s.InRange(%v) = %v, want %v", tt.feature, tt.value, got, tt.want)
		}
	}
}

func TestParseFeature(t *testing.T) {
	t.Parallel()

	if f, ok := ParseFeature("tempo"); !ok || f != FeatureTempo {
		t.Errorf("ParseFeature(tempo) = %q, %v", f, ok)
	}
	if _, ok := ParseFeature("loudness"); ok {
		t.Error("ParseFeature(loudness) should fail")
	}
}

func TestTrackNameKey(t *testing.T) {
	t.Parallel()

	track := Track{Name: " Song ", Artists: []ArtistRef{{Name: "The Band"}, {Name: "Guest"}}}
	if got := track.NameKey(); got != "the band-song" {
		t.Errorf("NameKey() = %q, want %q", got, "the band-song")
	}
	if got := (&Track{Name: "x"}).PrimaryArtist(); got != "" {
		t.Errorf("PrimaryArtist() = %q, want empty", got)
	}
}

func TestKnownTrackIDs(t *testing.T) {
	t.Parallel()

	p := &UserMusicProfile{
		LikedTracks:  []Track{{ID: "l1"}},
		RecentTracks: []Track{{ID: "r1"}, {ID: ""}},
		TopTracks:    []Track{{ID: "t1"}, {ID: "l1"}},
		PlaylistTracks: map[string][]Track{
			"p1": {{ID: "p1a"}, {ID: "p1b"}},
		},
	}
	known := p.KnownTrackIDs()
	for _, id := range []string{"l1", "r1", "t1", "p1a", "p1b"} {
		if _, ok := known[id]; !ok {
			t.Errorf("expected %s in known set", id)
		}
	}
	if len(known) != 5 {
		t.Errorf("len(known) = %d, want 5", len(known))
	}
	if got := p.PlaylistTrackCount(); got != 2 {
		t.Errorf("PlaylistTrackCount() = %d, want 2", got)
	}
}

func TestTasteProfileFeatures(t *testing.T) {
	t.Parallel()

	var p TasteProfile
	p.SetFeatures(NeutralFeatures("ignored"))
	f := p.Features()
	if f.ID != "" {
		t.Errorf("profile vector should carry no ID, got %q", f.ID)
	}
	if f.Tempo != 120 || f.Liveness != 0.2 {
		t.Errorf("unexpected vector %+v", f)
	}

	p.PreferredGenres = []WeightedGenre{{Genre: "pop", Weight: 80}, {Genre: "rock", Weight: 40}}
	names := p.GenreNames()
	if len(names) != 2 || names[0] != "pop" || names[1] != "rock" {
		t.Errorf("GenreNames() = %v", names)
	}
}
