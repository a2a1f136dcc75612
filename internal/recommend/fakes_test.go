// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/models"
	"github.com/tomtom215/tastegraph/internal/similarity"
)

// fakeSession is an in-memory CatalogSession.
type fakeSession struct {
	mu sync.Mutex

	user    models.User
	userErr error

	liked    []models.Track
	likedErr error

	playlists      []models.Playlist
	playlistsErr   error
	playlistTracks map[string][]models.Track
	playlistErr    map[string]error

	recent    []models.Track
	recentErr error

	top    []models.Track
	topErr error

	topArtists    []models.Artist
	topArtistsErr error

	features    map[string]models.AudioFeatures
	featuresErr error

	// searchResults maps an exact query to its results.
	searchResults map[string][]models.Track
	searchErr     error
	// generateSearch makes unmatched queries return fresh unique tracks.
	generateSearch bool
	generated      int

	artists map[string]models.Artist

	seeded    []models.Track
	seededErr error

	// recorded calls
	featureBatches [][]string
	searches       []string
	playlistCalls  []string
	seededSeeds    catalog.Seeds
	seededTargets  map[models.Feature]float64
	seededLimit    int
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		user:           models.User{ID: "listener"},
		playlistTracks: make(map[string][]models.Track),
		playlistErr:    make(map[string]error),
		features:       make(map[string]models.AudioFeatures),
		searchResults:  make(map[string][]models.Track),
		artists:        make(map[string]models.Artist),
	}
}

func (f *fakeSession) CurrentUser(context.Context) (models.User, error) {
	return f.user, f.userErr
}

func (f *fakeSession) LikedTracks(context.Context) ([]models.Track, error) {
	return f.liked, f.likedErr
}

func (f *fakeSession) OwnedPlaylists(_ context.Context, userID string, limit int) ([]models.Playlist, error) {
	if f.playlistsErr != nil {
		return nil, f.playlistsErr
	}
	var out []models.Playlist
	for _, p := range f.playlists {
		if len(out) >= limit {
			break
		}
		if p.OwnerID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSession) PlaylistTracks(_ context.Context, id string) ([]models.Track, error) {
	f.mu.Lock()
	f.playlistCalls = append(f.playlistCalls, id)
	f.mu.Unlock()
	if err := f.playlistErr[id]; err != nil {
		return nil, err
	}
	return f.playlistTracks[id], nil
}

func (f *fakeSession) TopTracks(context.Context, string, int) ([]models.Track, error) {
	return f.top, f.topErr
}

func (f *fakeSession) TopArtists(context.Context, string, int) ([]models.Artist, error) {
	return f.topArtists, f.topArtistsErr
}

func (f *fakeSession) RecentlyPlayed(context.Context, int) ([]models.Track, error) {
	return f.recent, f.recentErr
}

func (f *fakeSession) AudioFeatures(_ context.Context, ids []string) ([]models.AudioFeatures, error) {
	f.mu.Lock()
	f.featureBatches = append(f.featureBatches, append([]string(nil), ids...))
	f.mu.Unlock()

	if len(ids) > catalog.MaxFeatureBatch {
		return nil, catalog.ErrBatchTooLarge
	}
	if f.featuresErr != nil {
		return nil, f.featuresErr
	}
	var out []models.AudioFeatures
	for _, id := range ids {
		if v, ok := f.features[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeSession) SearchTracks(_ context.Context, query string, limit int) ([]models.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)

	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if tracks, ok := f.searchResults[query]; ok {
		return tracks[:min(limit, len(tracks))], nil
	}
	if !f.generateSearch {
		return nil, nil
	}
	out := make([]models.Track, 0, limit)
	for i := 0; i < limit; i++ {
		f.generated++
		n := f.generated
		out = append(out, track(fmt.Sprintf("gen-%d", n), fmt.Sprintf("Artist %d", n), fmt.Sprintf("Song %d", n), 50))
	}
	return out, nil
}

func (f *fakeSession) Artist(_ context.Context, id string) (models.Artist, error) {
	a, ok := f.artists[id]
	if !ok {
		return models.Artist{}, &catalog.APIError{StatusCode: 404, Message: "not found"}
	}
	return a, nil
}

func (f *fakeSession) SeededRecommendations(_ context.Context, seeds catalog.Seeds, targets map[models.Feature]float64, limit int) ([]models.Track, error) {
	if err := seeds.Validate(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.seededSeeds = seeds
	f.seededTargets = targets
	f.seededLimit = limit
	f.mu.Unlock()
	return f.seeded, f.seededErr
}

func (f *fakeSession) searchLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

// fakeSimilarity is an in-memory SimilarityService.
type fakeSimilarity struct {
	enabled bool
	artists map[string][]similarity.SimilarArtist
	// tracks is keyed by models.TrackNameKey(artist, track).
	tracks map[string][]similarity.SimilarTrack
	err    error

	mu    sync.Mutex
	calls int
}

func newFakeSimilarity() *fakeSimilarity {
	return &fakeSimilarity{
		enabled: true,
		artists: make(map[string][]similarity.SimilarArtist),
		tracks:  make(map[string][]similarity.SimilarTrack),
	}
}

func (f *fakeSimilarity) Enabled() bool { return f.enabled }

func (f *fakeSimilarity) SimilarArtists(_ context.Context, name string, limit int) ([]similarity.SimilarArtist, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := f.artists[strings.ToLower(name)]
	return out[:min(limit, len(out))], nil
}

func (f *fakeSimilarity) SimilarTracks(_ context.Context, artist, name string, limit int) ([]similarity.SimilarTrack, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := f.tracks[models.TrackNameKey(artist, name)]
	return out[:min(limit, len(out))], nil
}

// fixedRandom returns the same value every time and never shuffles.
type fixedRandom struct{ v float64 }

func (r fixedRandom) Float64() float64            { return r.v }
func (r fixedRandom) Shuffle(int, func(i, j int)) {}

func track(id, artist, name string, popularity int) models.Track {
	return models.Track{
		ID:         id,
		Name:       name,
		Artists:    []models.ArtistRef{{ID: "a-" + strings.ToLower(strings.ReplaceAll(artist, " ", "-")), Name: artist}},
		Popularity: popularity,
	}
}

func features(id string, v float64, tempo float64) models.AudioFeatures {
	return models.AudioFeatures{
		ID:               id,
		Danceability:     v,
		Energy:           v,
		Valence:          v,
		Acousticness:     v,
		Instrumentalness: v,
		Liveness:         v,
		Speechiness:      v,
		Tempo:            tempo,
	}
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func sessionsFor(s CatalogSession) SessionFactory {
	return func(string) CatalogSession { return s }
}
