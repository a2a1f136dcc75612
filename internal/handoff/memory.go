// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package handoff

import (
	"context"
	"time"

	"github.com/tomtom215/tastegraph/internal/cache"
)

// MemoryStore keeps codes in a TTL LRU. Expired entries stay for the grace
// period so Redeem can report ErrExpired, matching the badger and redis
// backends.
type MemoryStore struct {
	entries *cache.TTLCache[string]
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a memory store holding at most maxEntries codes.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	ttl = effectiveTTL(ttl, DefaultTTL)
	return &MemoryStore{
		entries: cache.NewTTLCache[string](maxEntries, ttl),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores credential under a new code.
func (s *MemoryStore) Put(_ context.Context, credential string, ttl time.Duration) (code string, expiresAt time.Time, err error) {
	defer func() { observe(BackendMemory, "put", err) }()

	if credential == "" {
		return "", time.Time{}, ErrEmptyCredential
	}
	code = newCode()
	expiresAt = s.entries.SetWithTTL(code, credential, effectiveTTL(ttl, s.ttl))
	return code, expiresAt, nil
}

// Redeem returns and removes the credential for code.
func (s *MemoryStore) Redeem(_ context.Context, code string) (credential string, err error) {
	defer func() { observe(BackendMemory, "redeem", err) }()

	if code == "" {
		return "", ErrNotFound
	}
	credential, expiresAt, ok := s.entries.Take(code)
	if !ok {
		return "", ErrNotFound
	}
	if s.now().After(expiresAt) {
		return "", ErrExpired
	}
	return credential, nil
}

// CleanupExpired removes codes whose grace period has passed.
func (s *MemoryStore) CleanupExpired(context.Context) (int, error) {
	n := s.entries.CleanupExpiredBefore(s.now().Add(-expiredGrace))
	observe(BackendMemory, "cleanup", nil)
	return n, nil
}

// Len returns the number of stored codes, including expired ones still in
// their grace period.
func (s *MemoryStore) Len() int {
	return s.entries.Len()
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	s.entries.Clear()
	return nil
}

var _ Store = (*MemoryStore)(nil)
