// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/handoff"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"ünïcode", "ünïcode"},
	}

	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBearerCredential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"bearer", "Bearer abc123", "abc123", true},
		{"lowercase scheme", "bearer abc123", "abc123", true},
		{"extra spaces", "  Bearer   abc123  ", "abc123", true},
		{"missing", "", "", false},
		{"scheme only", "Bearer", "", false},
		{"scheme and blank", "Bearer    ", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := bearerCredential(r)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if got != tt.want {
				t.Errorf("credential = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{"", 20, true},
		{"limit=5", 5, true},
		{"limit=%205%20", 5, true},
		{"limit=abc", 20, false},
		{"limit=1.5", 20, false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
		got, ok := getIntParam(r, "limit", 20)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("getIntParam(%q) = (%d, %v), want (%d, %v)", tt.query, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDecodeJSONBody_TooLarge(t *testing.T) {
	t.Parallel()

	body := `{"seed_genres": ["` + strings.Repeat("a", maxBodyBytes) + `"]}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	var req CustomRecommendationsRequest
	if err := decodeJSONBody(w, r, &req, false); err == nil {
		t.Fatal("expected an error for an oversized body")
	}
}

func TestDecodeJSONBody_AllowEmpty(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	w := httptest.NewRecorder()

	req := HandoffRequest{TTLSeconds: 9}
	if err := decodeJSONBody(w, r, &req, true); err != nil {
		t.Fatalf("decodeJSONBody: %v", err)
	}
	if req.TTLSeconds != 9 {
		t.Errorf("TTLSeconds = %d, want untouched 9", req.TTLSeconds)
	}
}

func TestClassifyEngineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode string
		status   int
	}{
		{"missing", recommend.ErrMissingCredential, CodeMissingCredential, http.StatusUnauthorized},
		{"forbidden", &catalog.APIError{StatusCode: http.StatusForbidden}, CodeInvalidCredential, http.StatusUnauthorized},
		{"no seeds", catalog.ErrNoSeeds, CodeInvalidSeeds, http.StatusBadRequest},
		{"too many seeds", fmt.Errorf("wrap: %w", catalog.ErrTooManySeeds), CodeInvalidSeeds, http.StatusBadRequest},
		{"unavailable", resilience.ErrUnavailable, CodeUpstreamUnavailable, http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, CodeUpstreamTimeout, http.StatusGatewayTimeout},
		{"unauthorized wins over deadline", fmt.Errorf("%w: %w", context.DeadlineExceeded, catalog.ErrUnauthorized), CodeInvalidCredential, http.StatusUnauthorized},
		{"other", errors.New("connection reset"), CodeUpstreamError, http.StatusBadGateway},
	}

	for _, tt := range tests {
		got := classifyEngineError(tt.err)
		if got.code != tt.wantCode || got.status != tt.status {
			t.Errorf("%s: got (%d, %s), want (%d, %s)", tt.name, got.status, got.code, tt.status, tt.wantCode)
		}
	}
}

func TestClassifyHandoffError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{handoff.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("redis: %w", handoff.ErrExpired), http.StatusGone},
		{handoff.ErrEmptyCredential, http.StatusUnauthorized},
		{errStoreDown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := classifyHandoffError(tt.err); got.status != tt.status {
			t.Errorf("classifyHandoffError(%v) status = %d, want %d", tt.err, got.status, tt.status)
		}
	}
}
