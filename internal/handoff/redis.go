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

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tastegraph:handoff:"

// RedisStore implements Store on Redis so several replicas share one set of
// codes. Expiry is left to Redis; CleanupExpired has nothing to do.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to the Redis server at url (redis://host:port/db).
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	if url == "" {
		return nil, errors.New("redis url is required for the redis handoff backend")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisStoreFromClient(redis.NewClient(opt), ttl), nil
}

// NewRedisStoreFromClient wraps an existing client. Close closes it.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: effectiveTTL(ttl, DefaultTTL)}
}

// Put stores credential under a new code with a Redis expiry.
func (s *RedisStore) Put(ctx context.Context, credential string, ttl time.Duration) (code string, expiresAt time.Time, err error) {
	defer func() { observe(BackendRedis, "put", err) }()

	if credential == "" {
		return "", time.Time{}, ErrEmptyCredential
	}

	ttl = effectiveTTL(ttl, s.ttl)
	code = newCode()
	expiresAt = time.Now().Add(ttl)

	data, err := json.Marshal(record{Credential: credential, ExpiresAt: expiresAt})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("marshal handoff record: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+code, data, ttl+expiredGrace).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store handoff record: %w", err)
	}
	return code, expiresAt, nil
}

// Redeem atomically reads and deletes the record with GETDEL.
func (s *RedisStore) Redeem(ctx context.Context, code string) (credential string, err error) {
	defer func() { observe(BackendRedis, "redeem", err) }()

	if code == "" {
		return "", ErrNotFound
	}

	data, err := s.rdb.GetDel(ctx, redisKeyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redeem handoff record: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("decode handoff record: %w", err)
	}
	if time.Now().After(rec.ExpiresAt) {
		return "", ErrExpired
	}
	return rec.Credential, nil
}

// CleanupExpired reports zero: Redis evicts keys itself.
func (s *RedisStore) CleanupExpired(context.Context) (int, error) {
	return 0, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

var _ Store = (*RedisStore)(nil)
