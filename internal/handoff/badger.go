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

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Handoff key prefix for namespacing in BadgerDB.
const badgerKeyPrefix = "handoff:"

// BadgerStore implements Store using BadgerDB. Records survive restarts and
// are dropped by Badger itself once their entry TTL (record TTL plus the
// grace period) passes.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// NewBadgerStore opens a BadgerDB at path. An empty path runs Badger in memory.
//
// Example:
//
//	store, err := NewBadgerStore("/data/handoff", 5*time.Minute)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func NewBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Suppress BadgerDB internal logs
	// Handoff records are tiny
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for handoff: %w", err)
	}

	return &BadgerStore{db: db, ttl: effectiveTTL(ttl, DefaultTTL), now: time.Now}, nil
}

// Put stores credential under a new code.
func (s *BadgerStore) Put(_ context.Context, credential string, ttl time.Duration) (code string, expiresAt time.Time, err error) {
	defer func() { observe(BackendBadger, "put", err) }()

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

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+code), data).WithTTL(ttl + expiredGrace)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("store handoff record: %w", err)
	}
	return code, expiresAt, nil
}

// Redeem reads and deletes the record for code in one transaction.
func (s *BadgerStore) Redeem(_ context.Context, code string) (credential string, err error) {
	defer func() { observe(BackendBadger, "redeem", err) }()

	if code == "" {
		return "", ErrNotFound
	}

	var rec record
	key := []byte(badgerKeyPrefix + code)
	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get handoff record: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("decode handoff record: %w", err)
		}
		return txn.Delete(key)
	})
	// A concurrent redeem of the same code won the race.
	if errors.Is(err, badger.ErrConflict) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if s.now().After(rec.ExpiresAt) {
		return "", ErrExpired
	}
	return rec.Credential, nil
}

// CleanupExpired removes records whose grace period has passed, plus any that
// fail to decode.
func (s *BadgerStore) CleanupExpired(_ context.Context) (n int, err error) {
	defer func() { observe(BackendBadger, "cleanup", err) }()

	var expired [][]byte
	cutoff := s.now().Add(-expiredGrace)

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(badgerKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var rec record
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil || rec.ExpiresAt.Before(cutoff) {
				expired = append(expired, item.KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scan handoff records: %w", err)
	}

	for _, key := range expired {
		if err := s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(key)
		}); err == nil {
			n++
		}
	}

	if !s.db.Opts().InMemory {
		//nolint:errcheck // ErrNoRewrite is the common case
		s.db.RunValueLogGC(0.5)
	}
	return n, nil
}

// Close closes the underlying BadgerDB.
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

var _ Store = (*BadgerStore)(nil)
