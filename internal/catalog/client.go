// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

// Upstream limits of the catalog API.
const (
	MaxFeatureBatch = 100
	MaxSeeds        = 5
	MaxPageSize     = 50
	MaxSearchLimit  = 50

	// DefaultPlaylistTrackPageLimit bounds one playlist to 4 pages of 100 tracks.
	DefaultPlaylistTrackPageLimit = 4

	serviceName = "catalog"
)

// Config configures the shared catalog client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimit      float64 // requests per second, <= 0 disables
	RateBurst      int
	MaxRetries     int
	RetryBaseDelay time.Duration

	// PlaylistTrackPageLimit caps pages fetched per playlist.
	PlaylistTrackPageLimit int
	// Market is passed to search and recommendation endpoints when set.
	Market string
}

// DefaultConfig returns production defaults for the public catalog API.
func DefaultConfig() Config {
	return Config{
		BaseURL:                "https://api.spotify.com/v1",
		Timeout:                15 * time.Second,
		RateLimit:              10,
		RateBurst:              20,
		MaxRetries:             3,
		RetryBaseDelay:         500 * time.Millisecond,
		PlaylistTrackPageLimit: DefaultPlaylistTrackPageLimit,
	}
}

// Client holds the process-wide state for talking to the catalog: rate limiter,
// circuit breaker and base transport. It carries no listener state.
type Client struct {
	cfg       Config
	baseURL   string
	limiter   *rate.Limiter
	breaker   *resilience.Breaker
	transport http.RoundTripper
	logger    zerolog.Logger
}

// NewClient creates a catalog client. Zero fields in cfg fall back to DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = def.RetryBaseDelay
	}
	if cfg.PlaylistTrackPageLimit <= 0 {
		cfg.PlaylistTrackPageLimit = def.PlaylistTrackPageLimit
	}

	limit := rate.Inf
	burst := cfg.RateBurst
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		cfg:       cfg,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		limiter:   rate.NewLimiter(limit, burst),
		breaker:   resilience.NewBreaker(serviceName),
		transport: http.DefaultTransport,
		logger:    logging.WithComponent(serviceName),
	}
}

// Breaker exposes the circuit breaker for readiness reporting.
func (c *Client) Breaker() *resilience.Breaker {
	return c.breaker
}

// Session is a view of the catalog bound to one listener credential. It is
// cheap to create and must not be shared between listeners.
type Session struct {
	client     *Client
	httpClient *http.Client
}

// ForCredential returns a Session that authenticates every request with the
// given bearer credential.
func (c *Client) ForCredential(credential string) *Session {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: credential,
		TokenType:   "Bearer",
	})
	return &Session{
		client: c,
		httpClient: &http.Client{
			Timeout: c.cfg.Timeout,
			Transport: &oauth2.Transport{
				Source: src,
				Base:   c.transport,
			},
		},
	}
}
