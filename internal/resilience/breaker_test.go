// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

type statusErr int

func (e statusErr) Error() string   { return fmt.Sprintf("status %d", int(e)) }
func (e statusErr) HTTPStatus() int { return int(e) }

func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := NewBreaker("test-opens")

	if b.State() != "closed" {
		t.Fatalf("initial state = %s, want closed", b.State())
	}

	// 7 failures out of 10, then one more so ReadyToTrip sees 10+ requests
	for i := 0; i < 10; i++ {
		_, _ = Execute(b, func() (int, error) {
			if i < 7 {
				return 0, statusErr(503)
			}
			return 1, nil
		})
	}
	_, _ = Execute(b, func() (int, error) { return 0, errors.New("connection reset") })

	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	_, err := Execute(b, func() (int, error) { return 1, nil })
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected wrapped ErrOpenState, got %v", err)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-opens")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestBreaker_DoesNotOpenBelowThreshold(t *testing.T) {
	b := NewBreaker("test-below")

	for i := 0; i < 12; i++ {
		_, _ = Execute(b, func() (string, error) {
			if i%2 == 0 {
				return "", statusErr(500)
			}
			return "ok", nil
		})
	}
	if b.State() != "closed" {
		t.Errorf("state = %s, want closed at 50%% failures", b.State())
	}
}

func TestBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	b := NewBreaker("test-client-errors")

	for i := 0; i < 20; i++ {
		_, err := Execute(b, func() (int, error) { return 0, statusErr(401) })
		if err == nil {
			t.Fatal("expected the 401 error to be returned to the caller")
		}
	}
	if b.State() != "closed" {
		t.Errorf("state = %s, want closed after only 401s", b.State())
	}
	if b.Counts().TotalFailures != 0 {
		t.Errorf("TotalFailures = %d, want 0", b.Counts().TotalFailures)
	}
}

func TestIsSuccessful(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"unauthorized", statusErr(401), true},
		{"not found", statusErr(404), true},
		{"wrapped bad request", fmt.Errorf("search: %w", statusErr(400)), true},
		{"rate limited", statusErr(429), false},
		{"server error", statusErr(502), false},
		{"canceled", context.Canceled, true},
		{"deadline", context.DeadlineExceeded, false},
		{"plain", errors.New("dial tcp: refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsSuccessful(tt.err); got != tt.want {
				t.Errorf("IsSuccessful(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExecute_TypedResult(t *testing.T) {
	b := NewBreaker("test-typed")

	got, err := Execute(b, func() ([]string, error) { return []string{"a", "b"}, nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	ptr, err := Execute(b, func() (*int, error) { return nil, nil })
	if err != nil || ptr != nil {
		t.Errorf("nil result = %v, %v", ptr, err)
	}
}

func TestStateHelpers(t *testing.T) {
	t.Parallel()

	if stateToString(gobreaker.StateHalfOpen) != "half-open" {
		t.Error("half-open string")
	}
	if stateToFloat(gobreaker.StateOpen) != 2 {
		t.Error("open float")
	}
	if stateToString(gobreaker.State(99)) != "unknown" || stateToFloat(gobreaker.State(99)) != -1 {
		t.Error("unknown state handling")
	}
}
