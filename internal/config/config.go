// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values from defaultConfig
//  2. Config File: Optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Upstreams:
//     - Catalog: the music catalog API every listener request goes to
//     - Similarity: the optional similar-artist/similar-track service
//
//  2. Engine:
//     - Recommend: signal caps, strategy fan-outs, ranking jitter
//     - Handoff: one-time credential handoff store
//
//  3. Service:
//     - Server: HTTP listener
//     - Security: CORS and inbound rate limiting
//     - Logging: log level and output format
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Handoff    HandoffConfig    `koanf:"handoff"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: listen port (default: 8080)
//   - HTTP_HOST: bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: per-request handler timeout (default: 30s)
//   - ENVIRONMENT: development or production (default: development)
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig holds catalog API client settings. The listener credential is
// supplied per request and never configured here.
type CatalogConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	RateLimit      float64       `koanf:"rate_limit"` // requests per second, 0 disables
	RateBurst      int           `koanf:"rate_burst"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	Market         string        `koanf:"market"`
}

// SimilarityConfig holds similarity service settings. The service is optional;
// without an API key the collaborative and track-similarity strategies are skipped.
type SimilarityConfig struct {
	Enabled        bool          `koanf:"enabled"`
	BaseURL        string        `koanf:"base_url"`
	APIKey         string        `koanf:"api_key"`
	Timeout        time.Duration `koanf:"timeout"`
	RateLimit      float64       `koanf:"rate_limit"`
	RateBurst      int           `koanf:"rate_burst"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	CacheSize      int           `koanf:"cache_size"`
}

// Active reports whether the similarity service should be used.
func (s SimilarityConfig) Active() bool {
	return s.Enabled && s.APIKey != ""
}

// RecommendConfig holds the recommendation engine settings exposed for
// operators. It is converted to the engine's own config at startup.
type RecommendConfig struct {
	PlaylistScanLimit       int           `koanf:"playlist_scan_limit"`
	PlaylistFetchLimit      int           `koanf:"playlist_fetch_limit"`
	RecentLimit             int           `koanf:"recent_limit"`
	TopLimit                int           `koanf:"top_limit"`
	TimeWindow              string        `koanf:"time_window"`
	PriorityCap             int           `koanf:"priority_cap"`
	LikedCap                int           `koanf:"liked_cap"`
	FeatureBatchSize        int           `koanf:"feature_batch_size"`
	FeatureBatchConcurrency int           `koanf:"feature_batch_concurrency"`
	CollaborativeEnabled    bool          `koanf:"collaborative_enabled"`
	SimilarArtists          int           `koanf:"similar_artists"`
	TrackSimilarityEnabled  bool          `koanf:"track_similarity_enabled"`
	SimilarTracks           int           `koanf:"similar_tracks"`
	GenreRecentYears        int           `koanf:"genre_recent_years"`
	Jitter                  float64       `koanf:"jitter"`
	DefaultLimit            int           `koanf:"default_limit"`
	MaxLimit                int           `koanf:"max_limit"`
	RequestTimeout          time.Duration `koanf:"request_timeout"`
	DefaultSeedGenres       []string      `koanf:"default_seed_genres"`
	Seed                    int64         `koanf:"seed"`
}

// HandoffConfig holds the one-time credential handoff store settings.
//
// Backends:
//   - memory: in-process, lost on restart (default)
//   - badger: BadgerDB at Path, survives restarts
//   - redis: shared across replicas via RedisURL
type HandoffConfig struct {
	Backend         string        `koanf:"backend"`
	TTL             time.Duration `koanf:"ttl"`
	Path            string        `koanf:"path"`
	RedisURL        string        `koanf:"redis_url"`
	MaxEntries      int           `koanf:"max_entries"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds inbound HTTP protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
