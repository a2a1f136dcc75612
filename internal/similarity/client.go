// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package similarity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tastegraph/internal/cache"
	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

const (
	serviceName      = "similarity"
	maxResponseBytes = 2 << 20
)

// Config configures the similarity client.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RateLimit      float64 // requests per second, <= 0 disables
	RateBurst      int
	MaxRetries     int
	RetryBaseDelay time.Duration
	CacheTTL       time.Duration
	CacheSize      int
}

// DefaultConfig returns production defaults. The API key must still be supplied.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://ws.audioscrobbler.com/2.0/",
		Timeout:        10 * time.Second,
		RateLimit:      5,
		RateBurst:      5,
		MaxRetries:     2,
		RetryBaseDelay: 500 * time.Millisecond,
		CacheTTL:       6 * time.Hour,
		CacheSize:      2000,
	}
}

// Client talks to the similarity service. All methods are safe for
// concurrent use and hold no listener state.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker
	artists    *cache.TTLCache[[]SimilarArtist]
	tracks     *cache.TTLCache[[]SimilarTrack]
	logger     zerolog.Logger
}

// NewClient creates a similarity client. Zero fields in cfg fall back to
// DefaultConfig; an empty APIKey yields a disabled client.
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
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
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
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    resilience.NewBreaker(serviceName),
		artists:    cache.NewTTLCache[[]SimilarArtist](cfg.CacheSize, cfg.CacheTTL),
		tracks:     cache.NewTTLCache[[]SimilarTrack](cfg.CacheSize, cfg.CacheTTL),
		logger:     logging.WithComponent(serviceName),
	}
}

// Enabled reports whether the client can make calls. It is safe on a nil receiver.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.APIKey != ""
}

// Breaker exposes the circuit breaker for readiness reporting.
func (c *Client) Breaker() *resilience.Breaker {
	if c == nil {
		return nil
	}
	return c.breaker
}

// CacheStats returns combined statistics of the response caches.
func (c *Client) CacheStats() cache.Stats {
	if c == nil {
		return cache.Stats{}
	}
	a, t := c.artists.Stats(), c.tracks.Stats()
	return cache.Stats{
		Hits:      a.Hits + t.Hits,
		Misses:    a.Misses + t.Misses,
		Evictions: a.Evictions + t.Evictions,
		Size:      a.Size + t.Size,
	}
}

// CleanupExpired sweeps expired cache entries and returns how many were removed.
func (c *Client) CleanupExpired() int {
	if c == nil {
		return 0
	}
	return c.artists.CleanupExpired() + c.tracks.CleanupExpired()
}

// SimilarArtists returns up to limit artists similar to name, best match first.
// An artist the service does not know yields an empty list. The returned slice
// is shared with the cache and must not be modified.
func (c *Client) SimilarArtists(ctx context.Context, name string, limit int) ([]SimilarArtist, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	key := cacheKey(limit, name)
	if cached, ok := c.artists.Get(key); ok {
		metrics.RecordSimilarityCache(true)
		return cached, nil
	}
	metrics.RecordSimilarityCache(false)

	params := url.Values{
		"artist":      {name},
		"limit":       {strconv.Itoa(limit)},
		"autocorrect": {"1"},
	}
	var resp similarArtistsResponse
	if err := c.call(ctx, "artist.getsimilar", params, &resp); err != nil {
		if isNotFound(err) {
			c.artists.Set(key, []SimilarArtist{})
			return []SimilarArtist{}, nil
		}
		return nil, err
	}

	out := make([]SimilarArtist, 0, len(resp.SimilarArtists.Artist))
	for _, a := range resp.SimilarArtists.Artist {
		if a.Name == "" {
			continue
		}
		out = append(out, SimilarArtist{Name: a.Name, Match: a.Match.clamp01()})
		if len(out) == limit {
			break
		}
	}
	c.artists.Set(key, out)
	return out, nil
}

// SimilarTracks returns up to limit tracks similar to the given track.
func (c *Client) SimilarTracks(ctx context.Context, artist, track string, limit int) ([]SimilarTrack, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	key := cacheKey(limit, artist, track)
	if cached, ok := c.tracks.Get(key); ok {
		metrics.RecordSimilarityCache(true)
		return cached, nil
	}
	metrics.RecordSimilarityCache(false)

	params := url.Values{
		"artist":      {artist},
		"track":       {track},
		"limit":       {strconv.Itoa(limit)},
		"autocorrect": {"1"},
	}
	var resp similarTracksResponse
	if err := c.call(ctx, "track.getsimilar", params, &resp); err != nil {
		if isNotFound(err) {
			c.tracks.Set(key, []SimilarTrack{})
			return []SimilarTrack{}, nil
		}
		return nil, err
	}

	out := make([]SimilarTrack, 0, len(resp.SimilarTracks.Track))
	for _, t := range resp.SimilarTracks.Track {
		if t.Name == "" || t.Artist.Name == "" {
			continue
		}
		out = append(out, SimilarTrack{Artist: t.Artist.Name, Name: t.Name, Match: t.Match.clamp01()})
		if len(out) == limit {
			break
		}
	}
	c.tracks.Set(key, out)
	return out, nil
}

func cacheKey(limit int, parts ...string) string {
	normalized := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		normalized = append(normalized, strings.ToLower(strings.TrimSpace(p)))
	}
	normalized = append(normalized, strconv.Itoa(limit))
	return strings.Join(normalized, "|")
}

// call executes method through the rate limiter and breaker and decodes the body.
func (c *Client) call(ctx context.Context, method string, params url.Values, result interface{}) error {
	params.Set("method", method)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("format", "json")
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	body, err := resilience.Execute(c.breaker, func() ([]byte, error) {
		return c.fetch(ctx, method, reqURL)
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, method, reqURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("similarity %s: rate limiter: %w", method, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			metrics.RecordUpstreamRequest(serviceName, method, 0, time.Since(start))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("similarity %s: %w", method, ctxErr)
			}
			if attempt >= c.cfg.MaxRetries {
				return nil, fmt.Errorf("similarity %s: request failed after %d attempts: %w", method, attempt+1, err)
			}
			if err := c.backoff(ctx, method, attempt, err.Error()); err != nil {
				return nil, err
			}
			continue
		}
		metrics.RecordUpstreamRequest(serviceName, method, resp.StatusCode, time.Since(start))

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("read %s response: %w", method, readErr)
		}

		apiErr := checkResponse(resp.StatusCode, body, method)
		if apiErr == nil {
			return body, nil
		}
		status := apiErr.StatusCode
		if (status != http.StatusTooManyRequests && status < http.StatusInternalServerError) || attempt >= c.cfg.MaxRetries {
			return nil, apiErr
		}
		if err := c.backoff(ctx, method, attempt, apiErr.Error()); err != nil {
			return nil, err
		}
	}
}

// checkResponse turns a non-2xx status or an error body into *APIError.
func checkResponse(status int, body []byte, method string) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	if eb.Error != 0 {
		return &APIError{StatusCode: statusForCode(eb.Error), Code: eb.Error, Message: eb.Message, Method: method}
	}
	if status < 200 || status >= 300 {
		return &APIError{StatusCode: status, Method: method}
	}
	return nil
}

func (c *Client) backoff(ctx context.Context, method string, attempt int, reason string) error {
	delay := c.cfg.RetryBaseDelay * time.Duration(1<<attempt)

	metrics.RecordUpstreamRetry(serviceName)
	c.logger.Warn().
		Str("method", method).
		Int("attempt", attempt+1).
		Dur("retry_delay", delay).
		Str("reason", reason).
		Msg("Similarity request failed, retrying")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("similarity %s: %w", method, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
