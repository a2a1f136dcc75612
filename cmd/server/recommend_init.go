// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastegraph/internal/catalog"
	"github.com/tomtom215/tastegraph/internal/config"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/similarity"
)

// RecommendComponents holds the upstream clients and the engine built on them.
type RecommendComponents struct {
	Catalog    *catalog.Client
	Similarity *similarity.Client // nil when the similarity service is inactive
	Engine     *recommend.Engine
}

// initRecommend builds the catalog and similarity clients and the engine.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*RecommendComponents, error) {
	catalogClient := catalog.NewClient(buildCatalogConfig(cfg))

	var (
		simClient *similarity.Client
		sim       recommend.SimilarityService
	)
	if cfg.Similarity.Active() {
		simClient = similarity.NewClient(buildSimilarityConfig(cfg))
		sim = simClient
	} else {
		logger.Info().
			Bool("enabled", cfg.Similarity.Enabled).
			Msg("Similarity service inactive: collaborative and track-similarity discovery skipped")
	}

	engineCfg := buildEngineConfig(cfg)
	engine, err := recommend.NewEngine(engineCfg, recommend.CatalogSessions(catalogClient), sim, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	logger.Info().
		Str("catalog", cfg.Catalog.BaseURL).
		Bool("similarity", engine.SimilarityEnabled()).
		Bool("collaborative", engineCfg.Collaborative.Enabled).
		Bool("track_similarity", engineCfg.TrackSimilarity.Enabled).
		Int("default_limit", engineCfg.Limits.DefaultLimit).
		Msg("Recommendation engine initialized")

	return &RecommendComponents{
		Catalog:    catalogClient,
		Similarity: simClient,
		Engine:     engine,
	}, nil
}

func buildCatalogConfig(cfg *config.Config) catalog.Config {
	c := catalog.DefaultConfig()
	c.BaseURL = cfg.Catalog.BaseURL
	c.Timeout = cfg.Catalog.Timeout
	c.RateLimit = cfg.Catalog.RateLimit
	c.RateBurst = cfg.Catalog.RateBurst
	c.MaxRetries = cfg.Catalog.MaxRetries
	c.RetryBaseDelay = cfg.Catalog.RetryBaseDelay
	c.Market = cfg.Catalog.Market
	return c
}

func buildSimilarityConfig(cfg *config.Config) similarity.Config {
	return similarity.Config{
		BaseURL:        cfg.Similarity.BaseURL,
		APIKey:         cfg.Similarity.APIKey,
		Timeout:        cfg.Similarity.Timeout,
		RateLimit:      cfg.Similarity.RateLimit,
		RateBurst:      cfg.Similarity.RateBurst,
		MaxRetries:     cfg.Similarity.MaxRetries,
		RetryBaseDelay: cfg.Similarity.RetryBaseDelay,
		CacheTTL:       cfg.Similarity.CacheTTL,
		CacheSize:      cfg.Similarity.CacheSize,
	}
}

// buildEngineConfig overlays the operator settings on the engine defaults.
// Settings without an operator knob (seed counts, placeholder size) keep
// their defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	ec := recommend.DefaultConfig()

	ec.Aggregation.PlaylistScanLimit = rc.PlaylistScanLimit
	ec.Aggregation.PlaylistFetchLimit = rc.PlaylistFetchLimit
	ec.Aggregation.RecentLimit = rc.RecentLimit
	ec.Aggregation.TopLimit = rc.TopLimit
	ec.Aggregation.TimeWindow = rc.TimeWindow

	ec.Taste.PriorityCap = rc.PriorityCap
	ec.Taste.LikedCap = rc.LikedCap
	ec.Taste.FeatureBatchSize = rc.FeatureBatchSize
	ec.Taste.FeatureBatchConcurrency = rc.FeatureBatchConcurrency

	ec.Collaborative.Enabled = rc.CollaborativeEnabled
	ec.Collaborative.SimilarArtists = rc.SimilarArtists
	ec.TrackSimilarity.Enabled = rc.TrackSimilarityEnabled
	ec.TrackSimilarity.SimilarTracks = rc.SimilarTracks

	ec.Genre.RecentYears = rc.GenreRecentYears
	ec.Ranking.Jitter = rc.Jitter

	ec.Limits.DefaultLimit = rc.DefaultLimit
	ec.Limits.MaxLimit = rc.MaxLimit
	ec.Limits.RequestTimeout = rc.RequestTimeout

	if len(rc.DefaultSeedGenres) > 0 {
		ec.DefaultSeedGenres = append([]string(nil), rc.DefaultSeedGenres...)
	}
	ec.Seed = rc.Seed

	return ec
}
