// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
Package main is the entry point for the Tastegraph server.

Tastegraph builds a listener's taste profile from their music catalog account
(liked tracks, playlists, recent plays, top tracks and artists, audio
features) and turns it into ranked recommendations. Discovery combines the
catalog's seed-based recommender with optional artist and track similarity
from an external similarity service.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("tastegraph")
	├── DataSupervisor ("data-layer")
	│   └── Janitor (handoff expiry, similarity cache expiry)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config file
 2. Logging: zerolog with JSON/console output modes
 3. Catalog client: rate limited, retried, behind a circuit breaker
 4. Similarity client: optional, with a TTL response cache
 5. Recommendation engine
 6. Handoff store: memory, badger or redis
 7. API handler, middleware and router
 8. Supervisor tree

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Catalog
	CATALOG_BASE_URL=https://api.spotify.com/v1
	CATALOG_MARKET=US

	# Similarity service (optional)
	SIMILARITY_ENABLED=true
	LASTFM_API_KEY=<api-key>

	# Credential handoff
	HANDOFF_BACKEND=memory       # memory, badger, or redis
	HANDOFF_TTL=5m
	HANDOFF_REDIS_URL=redis://localhost:6379/0

	# Security
	CORS_ORIGINS=https://app.example.com
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m

CONFIG_PATH points at a YAML config file when it is not in a default location.

# Credentials

Tastegraph never stores user credentials. Every API request carries the
listener's catalog bearer token in the Authorization header and the token
is forwarded to the catalog for that request only. The handoff endpoints
exchange a token for a short-lived one-time code so a browser redirect can
pass it to the frontend without putting it in a URL.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (10s timeout)
 3. Stops the janitor
 4. Closes the handoff store
 5. Reports any services that failed to stop

# Usage Examples

Development:

	export LOG_FORMAT=console LOG_LEVEL=debug
	go run ./cmd/server

Production with redis handoff:

	export ENVIRONMENT=production
	export CORS_ORIGINS=https://app.example.com
	export HANDOFF_BACKEND=redis HANDOFF_REDIS_URL=redis://redis:6379/0
	export SIMILARITY_ENABLED=true LASTFM_API_KEY=xxx
	./tastegraph

# See Also

  - internal/config: Configuration management
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
  - internal/recommend: Taste profile and recommendation engine
*/
package main
