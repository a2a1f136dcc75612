// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package config

import (
	"fmt"
	"slices"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateSimilarity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateHandoff(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

// validateCatalog validates the catalog client configuration
func (c *Config) validateCatalog() error {
	if err := validateServiceURL(c.Catalog.BaseURL, "CATALOG_BASE_URL"); err != nil {
		return err
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	return validateUpstreamLimits("CATALOG", c.Catalog.RateLimit, c.Catalog.RateBurst, c.Catalog.MaxRetries)
}

// validateSimilarity validates the similarity service configuration (only if active)
func (c *Config) validateSimilarity() error {
	if !c.Similarity.Active() {
		return nil
	}
	if err := validateServiceURL(c.Similarity.BaseURL, "SIMILARITY_BASE_URL"); err != nil {
		return err
	}
	if c.Similarity.CacheSize < 1 {
		return fmt.Errorf("SIMILARITY_CACHE_SIZE must be at least 1")
	}
	if c.Similarity.CacheTTL <= 0 {
		return fmt.Errorf("SIMILARITY_CACHE_TTL must be positive")
	}
	return validateUpstreamLimits("SIMILARITY", c.Similarity.RateLimit, c.Similarity.RateBurst, c.Similarity.MaxRetries)
}

// validateUpstreamLimits validates client-side rate limiting and retry bounds
func validateUpstreamLimits(prefix string, limit float64, burst, retries int) error {
	if limit < 0 {
		return fmt.Errorf("%s_RATE_LIMIT must not be negative", prefix)
	}
	if limit > 0 && burst < 1 {
		return fmt.Errorf("%s_RATE_BURST must be at least 1 when rate limiting is enabled", prefix)
	}
	if retries < 0 || retries > 10 {
		return fmt.Errorf("%s_MAX_RETRIES must be between 0 and 10", prefix)
	}
	return nil
}

var validTimeWindows = []string{"short_term", "medium_term", "long_term"}

// validateRecommend validates the fields the engine cannot default on its own.
// Fan-out bounds are checked again by the engine config.
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if !slices.Contains(validTimeWindows, r.TimeWindow) {
		return fmt.Errorf("RECOMMEND_TIME_WINDOW must be one of: short_term, medium_term, long_term")
	}
	if r.FeatureBatchSize < 1 || r.FeatureBatchSize > 100 {
		return fmt.Errorf("RECOMMEND_FEATURE_BATCH_SIZE must be between 1 and 100")
	}
	if r.Jitter < 0 || r.Jitter > 1 {
		return fmt.Errorf("RECOMMEND_JITTER must be between 0 and 1")
	}
	if r.DefaultLimit < 1 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be at least 1 and not above RECOMMEND_MAX_LIMIT")
	}
	if len(r.DefaultSeedGenres) == 0 {
		return fmt.Errorf("RECOMMEND_DEFAULT_SEED_GENRES must list at least one genre")
	}
	return nil
}

// validateHandoff validates the handoff store configuration
func (c *Config) validateHandoff() error {
	h := c.Handoff
	switch h.Backend {
	case "memory", "badger":
	case "redis":
		if h.RedisURL == "" {
			return fmt.Errorf("HANDOFF_REDIS_URL is required when HANDOFF_BACKEND=redis")
		}
	default:
		return fmt.Errorf("HANDOFF_BACKEND must be one of: memory, badger, redis")
	}
	if h.TTL < 10*time.Second || h.TTL > time.Hour {
		return fmt.Errorf("HANDOFF_TTL must be between 10s and 1h")
	}
	if h.CleanupInterval <= 0 {
		return fmt.Errorf("HANDOFF_CLEANUP_INTERVAL must be positive")
	}
	return nil
}

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects wildcard CORS in production. Requests carry the
// listener's catalog credential, so any origin could replay it.
func (c *Config) validateCORS() error {
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	return slices.Contains(c.Security.CORSOrigins, "*")
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates inbound rate limiting bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
