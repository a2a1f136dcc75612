// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/metrics"
	"github.com/tomtom215/tastegraph/internal/models"
)

// ErrMissingCredential is returned when no listener credential was supplied.
var ErrMissingCredential = errors.New("listener credential is required")

// Engine builds taste profiles and recommendations for one listener per call.
// It holds no per-listener state and is safe for concurrent use.
type Engine struct {
	config     *Config
	sessions   SessionFactory
	similarity SimilarityService

	aggregator *Aggregator
	calculator *Calculator
	strategies []Strategy
	ranker     *Ranker
	features   *featureFetcher

	now    func() time.Time
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine. similarity may be nil, in which
// case only the genre fallback generates candidates.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, sessions SessionFactory, similarity SimilarityService, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if sessions == nil {
		return nil, errors.New("catalog session factory is required")
	}

	logger = logger.With().Str("component", "recommend").Logger()
	features := &featureFetcher{
		batchSize:   cfg.Taste.FeatureBatchSize,
		concurrency: cfg.Taste.FeatureBatchConcurrency,
		logger:      logger,
	}

	e := &Engine{
		config:     cfg,
		sessions:   sessions,
		similarity: similarity,
		aggregator: NewAggregator(cfg.Aggregation, logger),
		calculator: NewCalculator(cfg.Taste, logger),
		ranker:     NewRanker(cfg.Ranking, rand.New(rand.NewSource(rankerSeed(cfg.Seed)))), //nolint:gosec // math/rand is fine for recommendation shuffling
		features:   features,
		now:        time.Now,
		logger:     logger,
	}
	e.strategies = []Strategy{
		&collaborativeStrategy{cfg: cfg.Collaborative, similarity: similarity, features: features, logger: logger},
		&trackSimilarityStrategy{cfg: cfg.TrackSimilarity, similarity: similarity, features: features, logger: logger},
		&genreStrategy{cfg: cfg.Genre, defaultGenres: cfg.DefaultSeedGenres, logger: logger},
	}

	logger.Info().
		Bool("similarity_enabled", similarityEnabled(similarity)).
		Int("strategies", len(e.strategies)).
		Msg("recommendation engine ready")

	return e, nil
}

// SetRandomSource replaces the ranking noise source.
func (e *Engine) SetRandomSource(rng RandomSource) {
	e.ranker.mu.Lock()
	defer e.ranker.mu.Unlock()
	e.ranker.rng = rng
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// SimilarityEnabled reports whether the similarity-backed strategies can run.
func (e *Engine) SimilarityEnabled() bool {
	return similarityEnabled(e.similarity)
}

// BuildUserMusicProfile gathers the listener's signals and derives their taste
// profile. Only an invalid credential or an unreachable identity endpoint fails
// the call; every other signal degrades to empty.
func (e *Engine) BuildUserMusicProfile(ctx context.Context, credential string) (*models.UserMusicProfile, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendOperation("profile", time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	profile, _, _, err := e.buildProfile(ctx, credential)
	return profile, err
}

// GetRecommendations returns up to limit recommendations for the listener.
// Once the profile is built a result is always returned: if every strategy
// fails the placeholder set stands in.
func (e *Engine) GetRecommendations(ctx context.Context, credential string, limit int) (*RecommendationResult, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendOperation("recommendations", time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, e.config.Limits.RequestTimeout)
	defer cancel()

	limit = e.clampLimit(limit, 0)

	profile, session, analyzed, err := e.buildProfile(ctx, credential)
	if err != nil {
		return nil, err
	}

	logger := e.requestLogger(ctx)

	var (
		candidates []Candidate
		stratStats []models.StrategyStat
	)
	if limit > 0 {
		gen := NewGeneration(profile, session, e.now())
		candidates, stratStats = runStrategies(ctx, e.strategies, gen, limit, logger)
	}

	recs, rankStats := e.ranker.Rank(profile, candidates, limit)
	if rankStats.Placeholder {
		metrics.RecordPlaceholderResponse()
		logger.Warn().
			Int("candidates", len(candidates)).
			Int("excluded", rankStats.Excluded).
			Msg("no usable candidates, returning placeholder set")
	}
	recordReturned(recs)

	stats := models.RecommendationStats{
		LikedTracks:          len(profile.LikedTracks),
		Playlists:            len(profile.Playlists),
		PlaylistTracks:       profile.PlaylistTrackCount(),
		RecentTracks:         len(profile.RecentTracks),
		TopTracks:            len(profile.TopTracks),
		TopArtists:           len(profile.TopArtists),
		AnalyzedTracks:       analyzed,
		FeatureVectors:       profile.Taste.FeatureCount,
		CandidatesGenerated:  len(candidates),
		CandidatesExcluded:   rankStats.Excluded,
		Returned:             len(recs),
		Strategies:           stratStats,
		Placeholder:          rankStats.Placeholder,
		CollaborativeEnabled: e.SimilarityEnabled(),
		DurationMS:           time.Since(start).Milliseconds(),
	}
	if stats.Strategies == nil {
		stats.Strategies = []models.StrategyStat{}
	}

	logger.Info().
		Int("limit", limit).
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Bool("placeholder", rankStats.Placeholder).
		Int64("duration_ms", stats.DurationMS).
		Msg("recommendations generated")

	return &RecommendationResult{
		Recommendations: recs,
		TasteProfile:    profile.Taste,
		Stats:           stats,
	}, nil
}

// buildProfile resolves the listener, aggregates their signals and computes
// the taste profile. It returns the profile, the session it used and the size
// of the analyzed subset.
func (e *Engine) buildProfile(ctx context.Context, credential string) (*models.UserMusicProfile, CatalogSession, int, error) {
	if credential == "" {
		return nil, nil, 0, ErrMissingCredential
	}

	session := e.sessions(credential)

	user, err := session.CurrentUser(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("resolve listener: %w", err)
	}

	profile, err := e.aggregator.Collect(ctx, session, user.ID)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("collect listening signals: %w", err)
	}

	analyzed := e.calculator.Calculate(ctx, session, profile)
	return profile, session, analyzed, nil
}

// clampLimit bounds limit to MaxLimit. Negative values become zero; zero
// becomes fallback.
func (e *Engine) clampLimit(limit, fallback int) int {
	if limit == 0 {
		limit = fallback
	}
	return max(0, min(limit, e.config.Limits.MaxLimit))
}

func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	l := e.logger
	if id := logging.RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		l = l.With().Str("correlation_id", id).Logger()
	}
	return l
}

func recordReturned(recs []models.Recommendation) {
	bySource := make(map[models.Source]int)
	for i := range recs {
		bySource[recs[i].Source]++
	}
	for source, n := range bySource {
		metrics.RecordRecommendationsReturned(string(source), n)
	}
}

// rankerSeed returns seed, or a clock-derived seed when seed is zero so that
// separate processes do not replay the same ordering.
func rankerSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	if s := time.Now().UnixNano(); s != 0 {
		return s
	}
	return 1
}
