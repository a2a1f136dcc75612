// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/models"
)

// Signal names used in logs and the signal-failure metric.
const (
	signalLiked          = "liked_tracks"
	signalPlaylists      = "playlists"
	signalPlaylistTracks = "playlist_tracks"
	signalRecent         = "recent_tracks"
	signalTopTracks      = "top_tracks"
	signalTopArtists     = "top_artists"
)

// Aggregator gathers a listener's raw listening signals.
type Aggregator struct {
	cfg    AggregationConfig
	logger zerolog.Logger
}

// NewAggregator creates an aggregator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAggregator(cfg AggregationConfig, logger zerolog.Logger) *Aggregator {
	return &Aggregator{cfg: cfg, logger: logger}
}

// Collect fetches every signal for userID concurrently. Each fetch is isolated:
// a failure is logged, counted and leaves that signal empty without aborting
// the others. The returned error is non-nil only when ctx itself ended.
func (a *Aggregator) Collect(ctx context.Context, session CatalogSession, userID string) (*models.UserMusicProfile, error) {
	profile := &models.UserMusicProfile{
		UserID:         userID,
		LikedTracks:    []models.Track{},
		Playlists:      []models.Playlist{},
		PlaylistTracks: make(map[string][]models.Track),
		RecentTracks:   []models.Track{},
		TopTracks:      []models.Track{},
		TopArtists:     []models.Artist{},
		Features:       make(map[string]models.AudioFeatures),
	}

	var wg sync.WaitGroup
	run := func(signal string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				a.signalFailed(signal, err)
			}
		}()
	}

	run(signalLiked, func() error {
		tracks, err := session.LikedTracks(ctx)
		if err == nil {
			profile.LikedTracks = tracks
		}
		return err
	})
	run(signalPlaylists, func() error {
		playlists, err := session.OwnedPlaylists(ctx, userID, a.cfg.PlaylistScanLimit)
		if err != nil {
			return err
		}
		profile.Playlists = playlists
		profile.PlaylistTracks = a.collectPlaylistTracks(ctx, session, playlists)
		return nil
	})
	run(signalRecent, func() error {
		tracks, err := session.RecentlyPlayed(ctx, a.cfg.RecentLimit)
		if err == nil {
			profile.RecentTracks = tracks
		}
		return err
	})
	run(signalTopTracks, func() error {
		tracks, err := session.TopTracks(ctx, a.cfg.TimeWindow, a.cfg.TopLimit)
		if err == nil {
			profile.TopTracks = tracks
		}
		return err
	})
	run(signalTopArtists, func() error {
		artists, err := session.TopArtists(ctx, a.cfg.TimeWindow, a.cfg.TopLimit)
		if err == nil {
			profile.TopArtists = artists
		}
		return err
	})

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("liked", len(profile.LikedTracks)).
		Int("playlists", len(profile.Playlists)).
		Int("playlist_tracks", profile.PlaylistTrackCount()).
		Int("recent", len(profile.RecentTracks)).
		Int("top_tracks", len(profile.TopTracks)).
		Int("top_artists", len(profile.TopArtists)).
		Msg("collected listening signals")

	return profile, nil
}

// collectPlaylistTracks fetches the first PlaylistFetchLimit playlists concurrently.
// A playlist that fails is left out of the map.
func (a *Aggregator) collectPlaylistTracks(ctx context.Context, session CatalogSession, playlists []models.Playlist) map[string][]models.Track {
	n := min(len(playlists), a.cfg.PlaylistFetchLimit)
	result := make(map[string][]models.Track, n)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, pl := range playlists[:n] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			tracks, err := session.PlaylistTracks(ctx, id)
			if err != nil {
				a.signalFailed(signalPlaylistTracks, err, "playlist_id", id)
				return
			}
			mu.Lock()
			result[id] = tracks
			mu.Unlock()
		}(pl.ID)
	}
	wg.Wait()

	return result
}

func (a *Aggregator) signalFailed(signal string, err error, kv ...string) {
	metrics.RecordSignalFailure(signal)
	event := a.logger.Warn().Err(err).Str("signal", signal)
	for i := 0; i+1 < len(kv); i += 2 {
		event = event.Str(kv[i], kv[i+1])
	}
	event.Msg("listening signal unavailable, continuing without it")
}
