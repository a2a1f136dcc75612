// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package config loads and validates application configuration.
//
// Configuration is layered with Koanf v2:
//
//  1. Defaults from defaultConfig (structs provider)
//  2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
//     /etc/tastegraph/config.yaml, /etc/tastegraph/config.yml
//  3. Environment variables, mapped explicitly by envTransformFunc
//
// Later layers win. Environment variables that are not in the mapping table
// are ignored. Comma-separated values are split for slice fields
// (CORS_ORIGINS, RECOMMEND_DEFAULT_SEED_GENRES).
//
// # Example YAML
//
//	server:
//	  port: 8080
//	  environment: production
//	similarity:
//	  api_key: "..."
//	handoff:
//	  backend: redis
//	  redis_url: redis://cache:6379/0
//	security:
//	  cors_origins: ["https://app.example.com"]
//
// # Common Environment Variables
//
//	HTTP_PORT, ENVIRONMENT
//	CATALOG_BASE_URL, CATALOG_RATE_LIMIT
//	SIMILARITY_API_KEY (or LASTFM_API_KEY), SIMILARITY_ENABLED
//	RECOMMEND_JITTER, RECOMMEND_DEFAULT_SEED_GENRES, RECOMMEND_SEED
//	HANDOFF_BACKEND, HANDOFF_TTL, HANDOFF_PATH, HANDOFF_REDIS_URL
//	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//
// Load validates the result; invalid configuration is a startup error.
package config
