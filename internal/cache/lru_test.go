// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache[V any](capacity int, ttl time.Duration) (*TTLCache[V], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewTTLCache[V](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestTTLCache_BasicOperations(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[int](3, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %d, %v; want %d, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	if !c.Delete("b") {
		t.Error("Delete(b) = false, want true")
	}
	if c.Delete("b") {
		t.Error("second Delete(b) = true, want false")
	}
}

func TestTTLCache_Eviction(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](3, time.Minute)
	c.Set("a", "A")
	c.Set("b", "B")
	c.Set("c", "C")

	// 'a' becomes most recently used, so 'b' is evicted next
	c.Get("a")
	c.Set("d", "D")

	if _, ok := c.Get("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestTTLCache_TTLExpiration(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](10, time.Minute)
	c.Set("a", 1)
	c.SetWithTTL("long", 2, time.Hour)

	clock.Advance(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("expected 'a' to have expired")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("expected 'long' to survive with its own TTL")
	}
}

func TestTTLCache_TakeReturnsExpired(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[string](10, time.Minute)
	expiresAt := c.SetWithTTL("code", "secret", 30*time.Second)

	clock.Advance(time.Minute)

	v, gotExpiry, ok := c.Take("code")
	if !ok || v != "secret" {
		t.Fatalf("Take() = %q, %v; want secret, true", v, ok)
	}
	if !gotExpiry.Equal(expiresAt) {
		t.Errorf("expiresAt = %v, want %v", gotExpiry, expiresAt)
	}
	if _, _, ok := c.Take("code"); ok {
		t.Error("second Take() should find nothing")
	}
}

func TestTTLCache_CleanupExpired(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("c", 3, time.Hour)

	clock.Advance(5 * time.Minute)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestTTLCache_CleanupExpiredBefore(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](10, time.Minute)
	c.Set("old", 1)
	clock.Advance(30 * time.Minute)
	c.Set("recent", 2)
	clock.Advance(2 * time.Minute)

	// Both are expired; only "old" expired before the cutoff.
	if removed := c.CleanupExpiredBefore(clock.Now().Add(-10 * time.Minute)); removed != 1 {
		t.Errorf("CleanupExpiredBefore() = %d, want 1", removed)
	}
	if _, _, ok := c.Take("recent"); !ok {
		t.Error("recently expired entry should survive the sweep")
	}
}

func TestTTLCache_StatsAndHitRate(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats() = %+v", s)
	}
	if rate := s.HitRate(); rate < 66 || rate > 67 {
		t.Errorf("HitRate() = %v, want ~66.7", rate)
	}
	if (Stats{}).HitRate() != 0 {
		t.Error("empty stats should have zero hit rate")
	}
}

func TestTTLCache_Defaults(t *testing.T) {
	t.Parallel()

	c := NewTTLCache[int](0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.TTL() != DefaultTTL {
		t.Errorf("TTL() = %v, want %v", c.TTL(), DefaultTTL)
	}
}

func TestTTLCache_Clear(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[int](10, time.Minute)
	c.Set("a", 1)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Set("b", 2)
	if _, ok := c.Get("b"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestTTLCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewTTLCache[int](50, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (worker*j)%80)
				c.Set(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.CleanupExpired()
				}
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
