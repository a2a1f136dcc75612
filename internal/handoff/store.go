// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/tastegraph/internal/metrics"
)

// Backend names a Store implementation.
type Backend string

const (
	// BackendMemory keeps codes in process memory (default, not persistent).
	BackendMemory Backend = "memory"

	// BackendBadger keeps codes in BadgerDB.
	BackendBadger Backend = "badger"

	// BackendRedis keeps codes in Redis.
	BackendRedis Backend = "redis"
)

const (
	// DefaultTTL is used when Put is called with a non-positive TTL.
	DefaultTTL = 5 * time.Minute

	// DefaultMaxEntries bounds the memory backend.
	DefaultMaxEntries = 10000

	// expiredGrace is how long a record outlives its TTL so Redeem can report
	// ErrExpired instead of ErrNotFound.
	expiredGrace = time.Hour
)

// Store is a time-boxed, single-use credential store.
type Store interface {
	// Put stores credential under a new random code that is valid for ttl.
	Put(ctx context.Context, credential string, ttl time.Duration) (code string, expiresAt time.Time, err error)

	// Redeem returns the credential for code and removes it. A code can be
	// redeemed at most once.
	Redeem(ctx context.Context, code string) (string, error)

	// CleanupExpired removes records past their TTL and returns how many were removed.
	CleanupExpired(ctx context.Context) (int, error)

	// Close releases the backend.
	Close() error
}

// Config selects and configures a Store backend.
type Config struct {
	Backend    Backend
	TTL        time.Duration
	Path       string // badger directory; empty runs badger in memory
	RedisURL   string
	MaxEntries int // memory backend capacity
}

// DefaultConfig returns the in-memory backend with a five minute TTL.
func DefaultConfig() Config {
	return Config{
		Backend:    BackendMemory,
		TTL:        DefaultTTL,
		MaxEntries: DefaultMaxEntries,
	}
}

// NewStore opens the backend named in cfg.
func NewStore(cfg Config) (Store, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg.MaxEntries, cfg.TTL), nil
	case BackendBadger:
		return NewBadgerStore(cfg.Path, cfg.TTL)
	case BackendRedis:
		return NewRedisStore(cfg.RedisURL, cfg.TTL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// record is the persisted form used by the badger and redis backends.
type record struct {
	Credential string    `json:"credential"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func newCode() string {
	return uuid.NewString()
}

func effectiveTTL(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultTTL
}

// observe records the outcome of a store operation.
func observe(backend Backend, op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrExpired):
		result = "expired"
	default:
		result = "error"
	}
	metrics.RecordHandoffOperation(string(backend), op, result)
}
