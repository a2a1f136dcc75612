// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

/*
request.go - Catalog HTTP Request Helpers

This file builds and executes every catalog API request with consistent
behaviour:
  - Authentication: bearer credential injected by the session's oauth2.Transport
  - Rate limiting: shared token bucket, waited on with the request context
  - Circuit breaking: one breaker per upstream, 4xx responses do not count
  - Retries: HTTP 429 and 5xx, exponential backoff, Retry-After honoured
  - Pagination: absolute "next" URLs are only followed inside the base URL
*/

//nolint:staticcheck // File documentation, not package doc
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

// maxResponseBytes bounds a single decoded response body.
const maxResponseBytes = 8 << 20

// requestConfig describes one GET against the catalog.
type requestConfig struct {
	endpoint string // metric label, e.g. "me-tracks"
	path     string
	query    url.Values
	pageURL  string // absolute cursor URL, overrides path and query
}

// errorEnvelope is the catalog's error body: {"error":{"status":401,"message":"..."}}.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// doRequest executes cfg and decodes the JSON response into result.
func (s *Session) doRequest(ctx context.Context, cfg requestConfig, result interface{}) error {
	reqURL, err := s.client.resolveURL(cfg)
	if err != nil {
		return err
	}

	body, err := resilience.Execute(s.client.breaker, func() ([]byte, error) {
		return s.fetch(ctx, cfg.endpoint, reqURL)
	})
	if err != nil {
		return err
	}

	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode %s response: %w", cfg.endpoint, err)
		}
	}
	return nil
}

// resolveURL builds the request URL, rejecting cursors that leave the API.
func (c *Client) resolveURL(cfg requestConfig) (string, error) {
	if cfg.pageURL != "" {
		if !strings.HasPrefix(cfg.pageURL, c.baseURL+"/") {
			return "", fmt.Errorf("%w: %s", ErrUntrustedPageURL, cfg.endpoint)
		}
		return cfg.pageURL, nil
	}

	reqURL := c.baseURL + cfg.path
	if len(cfg.query) > 0 {
		reqURL += "?" + cfg.query.Encode()
	}
	return reqURL, nil
}

// fetch performs the request with retries and returns the raw body of a
// successful response.
func (s *Session) fetch(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	c := s.client
	maxRetries := c.cfg.MaxRetries

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("catalog %s: rate limiter: %w", endpoint, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := s.httpClient.Do(req)
		if err != nil {
			metrics.RecordUpstreamRequest(serviceName, endpoint, 0, time.Since(start))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("catalog %s: %w", endpoint, ctxErr)
			}
			if attempt >= maxRetries {
				return nil, fmt.Errorf("catalog %s: request failed after %d attempts: %w", endpoint, attempt+1, err)
			}
			if err := c.backoff(ctx, endpoint, attempt, 0, err.Error()); err != nil {
				return nil, err
			}
			continue
		}
		metrics.RecordUpstreamRequest(serviceName, endpoint, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s response: %w", endpoint, err)
			}
			return body, nil
		}

		apiErr := readAPIError(resp, endpoint)
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return nil, apiErr
		}
		if err := c.backoff(ctx, endpoint, attempt, parseRetryAfter(resp), apiErr.Error()); err != nil {
			return nil, err
		}
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// backoff waits before the next attempt. retryAfter overrides the exponential delay.
func (c *Client) backoff(ctx context.Context, endpoint string, attempt int, retryAfter time.Duration, reason string) error {
	delay := c.cfg.RetryBaseDelay * time.Duration(1<<attempt)
	if retryAfter > 0 {
		delay = retryAfter
	}

	metrics.RecordUpstreamRetry(serviceName)
	c.logger.Warn().
		Str("endpoint", endpoint).
		Int("attempt", attempt+1).
		Int("max_retries", c.cfg.MaxRetries).
		Dur("retry_delay", delay).
		Str("reason", reason).
		Msg("Catalog request failed, retrying")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("catalog %s: %w", endpoint, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func readAPIError(resp *http.Response, endpoint string) *APIError {
	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return apiErr
	}
	var env errorEnvelope
	if json.Unmarshal(raw, &env) == nil && env.Error.Message != "" {
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(v); err == nil {
		if until := time.Until(when); until > 0 {
			return until
		}
	}
	return 0
}
