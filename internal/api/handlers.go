// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"time"

	"github.com/tomtom215/tastegraph/internal/handoff"
	"github.com/tomtom215/tastegraph/internal/models"
	"github.com/tomtom215/tastegraph/internal/recommend"
	"github.com/tomtom215/tastegraph/internal/resilience"
)

// DefaultRequestTimeout bounds the upstream fan-out of one request.
const DefaultRequestTimeout = 30 * time.Second

// Recommender is the engine surface used by the handlers.
type Recommender interface {
	BuildUserMusicProfile(ctx context.Context, credential string) (*models.UserMusicProfile, error)
	GetRecommendations(ctx context.Context, credential string, limit int) (*recommend.RecommendationResult, error)
	GetCustomRecommendations(ctx context.Context, credential string, req recommend.CustomRequest) (*recommend.CustomResult, error)
}

// Handler serves the HTTP API.
type Handler struct {
	engine       Recommender
	handoff      handoff.Store
	catalog      *resilience.Breaker
	breakers     []*resilience.Breaker
	defaultLimit int
	timeout      time.Duration
	startTime    time.Time
}

// HandlerOptions configures NewHandler.
type HandlerOptions struct {
	// CatalogBreaker gates readiness. Nil means always ready.
	CatalogBreaker *resilience.Breaker

	// OptionalBreakers are reported by readiness but only mark it degraded.
	OptionalBreakers []*resilience.Breaker

	// DefaultLimit applies when GET /recommendations has no limit. Zero means 20.
	DefaultLimit int

	// Timeout bounds each request's upstream work. Zero means DefaultRequestTimeout.
	Timeout time.Duration
}

// NewHandler creates a Handler.
func NewHandler(engine Recommender, store handoff.Store, opts HandlerOptions) *Handler {
	h := &Handler{
		engine:       engine,
		handoff:      store,
		catalog:      opts.CatalogBreaker,
		defaultLimit: opts.DefaultLimit,
		timeout:      opts.Timeout,
		startTime:    time.Now(),
	}
	if h.defaultLimit <= 0 {
		h.defaultLimit = 20
	}
	if h.timeout <= 0 {
		h.timeout = DefaultRequestTimeout
	}
	for _, b := range opts.OptionalBreakers {
		if b != nil {
			h.breakers = append(h.breakers, b)
		}
	}
	return h
}
