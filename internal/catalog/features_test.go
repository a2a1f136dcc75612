// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
)

func TestAudioFeatures_FiltersNulls(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "t1,t2,t3" {
			t.Errorf("ids = %q", got)
		}
		_, _ = w.Write([]byte(`{"audio_features":[
			{"id":"t1","danceability":0.8,"energy":0.7,"valence":0.6,"acousticness":0.1,"instrumentalness":0,"liveness":0.1,"speechiness":0.05,"tempo":124.5},
			null,
			{"id":"t3","danceability":0.2,"energy":0.3,"valence":0.4,"acousticness":0.9,"instrumentalness":0.8,"liveness":0.1,"speechiness":0.03,"tempo":80}
		]}`))
	}))

	features, err := c.ForCredential("tok").AudioFeatures(context.Background(), []string{"t1", "t2", "t3"})
	if err != nil {
		t.Fatalf("AudioFeatures() error = %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("len = %d, want 2 (null dropped)", len(features))
	}
	if features[0].ID != "t1" || features[0].Tempo != 124.5 {
		t.Errorf("features[0] = %+v", features[0])
	}
	if features[1].ID != "t3" || features[1].Acousticness != 0.9 {
		t.Errorf("features[1] = %+v", features[1])
	}
}

func TestAudioFeatures_RejectsOversizedBatch(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"audio_features":[]}`))
	}))

	ids := make([]string, MaxFeatureBatch+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%d", i)
	}

	_, err := c.ForCredential("tok").AudioFeatures(context.Background(), ids)
	if !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times, want 0", hits.Load())
	}

	// exactly MaxFeatureBatch is allowed
	if _, err := c.ForCredential("tok").AudioFeatures(context.Background(), ids[:MaxFeatureBatch]); err != nil {
		t.Errorf("batch of %d rejected: %v", MaxFeatureBatch, err)
	}
}

func TestAudioFeatures_EmptyInput(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))

	features, err := c.ForCredential("tok").AudioFeatures(context.Background(), nil)
	if err != nil || len(features) != 0 {
		t.Errorf("AudioFeatures(nil) = %v, %v", features, err)
	}
	if hits.Load() != 0 {
		t.Errorf("hits = %d, want 0", hits.Load())
	}
}
