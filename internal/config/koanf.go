// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tastegraph/config.yaml",
	"/etc/tastegraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second, // upstream fan-out, not a DB query
			Environment: "development",
		},
		Catalog: CatalogConfig{
			BaseURL:        "https://api.spotify.com/v1",
			Timeout:        15 * time.Second,
			RateLimit:      10,
			RateBurst:      20,
			MaxRetries:     3,
			RetryBaseDelay: 500 * time.Millisecond,
		},
		Similarity: SimilarityConfig{
			Enabled:        true,
			BaseURL:        "https://ws.audioscrobbler.com/2.0/",
			APIKey:         "",
			Timeout:        10 * time.Second,
			RateLimit:      5,
			RateBurst:      5,
			MaxRetries:     2,
			RetryBaseDelay: 500 * time.Millisecond,
			CacheTTL:       6 * time.Hour,
			CacheSize:      2000,
		},
		Recommend: RecommendConfig{
			PlaylistScanLimit:       50,
			PlaylistFetchLimit:      10,
			RecentLimit:             50,
			TopLimit:                50,
			TimeWindow:              "medium_term",
			PriorityCap:             500,
			LikedCap:                300,
			FeatureBatchSize:        100,
			FeatureBatchConcurrency: 2,
			CollaborativeEnabled:    true,
			SimilarArtists:          10,
			TrackSimilarityEnabled:  true,
			SimilarTracks:           5,
			GenreRecentYears:        2,
			Jitter:                  0.1,
			DefaultLimit:            20,
			MaxLimit:                100,
			RequestTimeout:          30 * time.Second,
			DefaultSeedGenres:       []string{"pop", "rock"},
			Seed:                    0, // 0 = seeded from the clock at startup
		},
		Handoff: HandoffConfig{
			Backend:         "memory",
			TTL:             5 * time.Minute,
			Path:            "",
			RedisURL:        "",
			MaxEntries:      10000,
			CleanupInterval: time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.default_seed_genres",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Catalog mappings
	"catalog_base_url":         "catalog.base_url",
	"catalog_timeout":          "catalog.timeout",
	"catalog_rate_limit":       "catalog.rate_limit",
	"catalog_rate_burst":       "catalog.rate_burst",
	"catalog_max_retries":      "catalog.max_retries",
	"catalog_retry_base_delay": "catalog.retry_base_delay",
	"catalog_market":           "catalog.market",

	// Similarity mappings
	"similarity_enabled":          "similarity.enabled",
	"similarity_base_url":         "similarity.base_url",
	"similarity_api_key":          "similarity.api_key",
	"lastfm_api_key":              "similarity.api_key",
	"similarity_timeout":          "similarity.timeout",
	"similarity_rate_limit":       "similarity.rate_limit",
	"similarity_rate_burst":       "similarity.rate_burst",
	"similarity_max_retries":      "similarity.max_retries",
	"similarity_retry_base_delay": "similarity.retry_base_delay",
	"similarity_cache_ttl":        "similarity.cache_ttl",
	"similarity_cache_size":       "similarity.cache_size",

	// Recommendation engine mappings
	"recommend_playlist_scan_limit":       "recommend.playlist_scan_limit",
	"recommend_playlist_fetch_limit":      "recommend.playlist_fetch_limit",
	"recommend_recent_limit":              "recommend.recent_limit",
	"recommend_top_limit":                 "recommend.top_limit",
	"recommend_time_window":               "recommend.time_window",
	"recommend_priority_cap":              "recommend.priority_cap",
	"recommend_liked_cap":                 "recommend.liked_cap",
	"recommend_feature_batch_size":        "recommend.feature_batch_size",
	"recommend_feature_batch_concurrency": "recommend.feature_batch_concurrency",
	"recommend_collaborative_enabled":     "recommend.collaborative_enabled",
	"recommend_similar_artists":           "recommend.similar_artists",
	"recommend_track_similarity_enabled":  "recommend.track_similarity_enabled",
	"recommend_similar_tracks":            "recommend.similar_tracks",
	"recommend_genre_recent_years":        "recommend.genre_recent_years",
	"recommend_jitter":                    "recommend.jitter",
	"recommend_default_limit":             "recommend.default_limit",
	"recommend_max_limit":                 "recommend.max_limit",
	"recommend_request_timeout":           "recommend.request_timeout",
	"recommend_default_seed_genres":       "recommend.default_seed_genres",
	"recommend_seed":                      "recommend.seed",

	// Handoff mappings
	"handoff_backend":          "handoff.backend",
	"handoff_ttl":              "handoff.ttl",
	"handoff_path":             "handoff.path",
	"handoff_redis_url":        "handoff.redis_url",
	"handoff_max_entries":      "handoff.max_entries",
	"handoff_cleanup_interval": "handoff.cleanup_interval",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SIMILARITY_API_KEY -> similarity.api_key
//   - HANDOFF_BACKEND -> handoff.backend
//   - LOG_LEVEL -> logging.level
//
// Unmapped variables return "" and are skipped so unrelated environment
// variables cannot pollute the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
