// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tastegraph/internal/handoff"
	"github.com/tomtom215/tastegraph/internal/models"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

const testCredential = "listener-token"

// fakeRecommender records the arguments of each call.
type fakeRecommender struct {
	mu sync.Mutex

	profile    *models.UserMusicProfile
	profileErr error

	result    *recommend.RecommendationResult
	resultErr error

	custom    *recommend.CustomResult
	customErr error

	credentials []string
	limits      []int
	customReqs  []recommend.CustomRequest
	deadlines   []bool
}

func newFakeRecommender() *fakeRecommender {
	return &fakeRecommender{
		profile: &models.UserMusicProfile{
			UserID:      "listener",
			LikedTracks: []models.Track{{ID: "t1"}, {ID: "t2"}},
			Playlists:   []models.Playlist{{ID: "pl"}},
			PlaylistTracks: map[string][]models.Track{
				"pl": {{ID: "t3"}, {ID: "t4"}, {ID: "t5"}},
			},
			TopArtists: []models.Artist{{ID: "a1", Name: "Home Band"}},
			Features:   map[string]models.AudioFeatures{"t1": models.NeutralFeatures("t1")},
			Taste:      models.TasteProfile{Energy: 0.7, Tempo: 120, FeatureCount: 1},
		},
		result: &recommend.RecommendationResult{
			Recommendations: []models.Recommendation{{Track: models.Track{ID: "rec-1", Name: "Song"}, Score: 0.9, Source: models.SourceContentBased}},
		},
		custom: &recommend.CustomResult{
			Recommendations: []models.Recommendation{{Track: models.Track{ID: "custom-1", Name: "Tune"}, Score: 1, Source: models.SourceCustom}},
		},
	}
}

func (f *fakeRecommender) record(ctx context.Context, credential string) {
	_, hasDeadline := ctx.Deadline()
	f.credentials = append(f.credentials, credential)
	f.deadlines = append(f.deadlines, hasDeadline)
}

func (f *fakeRecommender) BuildUserMusicProfile(ctx context.Context, credential string) (*models.UserMusicProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, credential)
	return f.profile, f.profileErr
}

func (f *fakeRecommender) GetRecommendations(ctx context.Context, credential string, limit int) (*recommend.RecommendationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, credential)
	f.limits = append(f.limits, limit)
	return f.result, f.resultErr
}

func (f *fakeRecommender) GetCustomRecommendations(ctx context.Context, credential string, req recommend.CustomRequest) (*recommend.CustomResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(ctx, credential)
	f.customReqs = append(f.customReqs, req)
	return f.custom, f.customErr
}

func (f *fakeRecommender) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.credentials)
}

// failingStore is a handoff.Store whose operations always fail.
type failingStore struct{ err error }

func (s failingStore) Put(context.Context, string, time.Duration) (string, time.Time, error) {
	return "", time.Time{}, s.err
}
func (s failingStore) Redeem(context.Context, string) (string, error) { return "", s.err }
func (s failingStore) CleanupExpired(context.Context) (int, error)    { return 0, s.err }
func (s failingStore) Close() error                                   { return nil }

var errStoreDown = errors.New("store offline")

// testServer builds the full router over a fake engine and a memory store.
func testServer(t *testing.T, engine Recommender, opts HandlerOptions) (*httptest.Server, handoff.Store) {
	t.Helper()

	store := handoff.NewMemoryStore(100, time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://app.example.com"},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		CORSMaxAge:         60,
		RateLimitDisabled:  true,
	})
	router := NewRouter(NewHandler(engine, store, opts), mw)

	server := httptest.NewServer(router.SetupChi())
	t.Cleanup(server.Close)
	return server, store
}

// do sends a request and decodes the envelope.
func do(t *testing.T, server *httptest.Server, method, path, credential string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var envelope map[string]interface{}
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("decode envelope %q: %v", raw, err)
		}
	}
	return resp, envelope
}

// errorCode returns envelope.error.code, or "".
func errorCode(envelope map[string]interface{}) string {
	e, ok := envelope["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := e["code"].(string)
	return code
}

// data returns envelope.data as an object.
func data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object (envelope %v)", envelope["data"], envelope)
	}
	return d
}

// openBreaker returns a breaker tripped by ten upstream failures.
func openBreaker(t *testing.T, name string) *resilience.Breaker {
	t.Helper()
	b := resilience.NewBreaker(name)
	for i := 0; i < 10; i++ {
		_, _ = resilience.Execute(b, func() (int, error) { return 0, errors.New("upstream 500") })
	}
	if b.State() != "open" {
		t.Fatalf("breaker %s state = %s, want open", name, b.State())
	}
	return b
}
