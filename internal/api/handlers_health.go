// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tastegraph/internal/logging"
	"github.com/tomtom215/tastegraph/internal/models"
)

const breakerOpen = "open"

// HealthLive reports that the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady reports upstream circuit breaker states. An open catalog
// breaker makes the service unready; an open optional breaker only marks it
// degraded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	resp := ReadinessResponse{
		Status:   "ready",
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
		Breakers: make(map[string]string, len(h.breakers)+1),
	}

	for _, b := range h.breakers {
		state := b.State()
		resp.Breakers[b.Name()] = state
		if state == breakerOpen {
			resp.Degraded = append(resp.Degraded, b.Name())
		}
	}
	if len(resp.Degraded) > 0 {
		resp.Status = "degraded"
	}

	if h.catalog != nil {
		state := h.catalog.State()
		resp.Breakers[h.catalog.Name()] = state
		if state == breakerOpen {
			resp.Status = "unready"
			respondUnready(w, r, resp)
			return
		}
	}

	respondSuccess(w, r, http.StatusOK, resp, start)
}

// respondUnready returns the readiness payload alongside a 503 error.
func respondUnready(w http.ResponseWriter, r *http.Request, resp ReadinessResponse) {
	logging.Ctx(r.Context()).Warn().Str("status", resp.Status).Msg("Readiness check failed: catalog breaker open")
	respondJSON(w, r, http.StatusServiceUnavailable, &models.APIResponse{
		Status:   "error",
		Data:     resp,
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error: &models.APIError{
			Code:    CodeUpstreamUnavailable,
			Message: "Catalog circuit breaker is open",
		},
	})
}
