// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"testing"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"feature batch over catalog max", func(c *Config) { c.Taste.FeatureBatchSize = 101 }},
		{"zero batch concurrency", func(c *Config) { c.Taste.FeatureBatchConcurrency = 0 }},
		{"unknown time window", func(c *Config) { c.Aggregation.TimeWindow = "forever" }},
		{"top limit over page size", func(c *Config) { c.Aggregation.TopLimit = 51 }},
		{"negative jitter", func(c *Config) { c.Ranking.Jitter = -0.1 }},
		{"max below default", func(c *Config) { c.Limits.MaxLimit = 5 }},
		{"no default genres", func(c *Config) { c.DefaultSeedGenres = nil }},
		{"too many default genres", func(c *Config) { c.DefaultSeedGenres = []string{"a", "b", "c", "d", "e", "f"} }},
		{"collaborative search limit", func(c *Config) { c.Collaborative.SearchLimit = 60 }},
		{"zero genre seeds", func(c *Config) { c.Genre.SeedGenres = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.DefaultSeedGenres[0] = "jazz"
	clone.Ranking.Jitter = 0.3

	if cfg.DefaultSeedGenres[0] != "pop" {
		t.Error("Clone shares the seed genre slice")
	}
	if cfg.Ranking.Jitter != 0.1 {
		t.Error("Clone shares nested structs")
	}
}
