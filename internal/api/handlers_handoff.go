// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tastegraph/internal/logging"
)

// CreateHandoff stores the caller's bearer credential under a one-time code
// so a second device can pick it up.
//
// Method: POST
// Path: /api/v1/handoff
//
// Body (optional):
//
//	{"ttl_seconds": 120}
func (h *Handler) CreateHandoff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req HandoffRequest
	if err := decodeJSONBody(w, r, &req, true); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Request body must be a valid JSON object", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	credential, ok := credentialOrReject(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	code, expiresAt, err := h.handoff.Put(ctx, credential, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		respondClassified(w, r, classifyHandoffError(err), err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Time("expires_at", expiresAt).
		Str("credential", logging.RedactCredential(credential)).
		Msg("Handoff code issued")

	respondSuccess(w, r, http.StatusCreated, HandoffResponse{
		Code:      code,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, start)
}

// RedeemHandoff returns the stored credential and invalidates the code.
//
// Method: POST
// Path: /api/v1/handoff/{code}/redeem
func (h *Handler) RedeemHandoff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := RedeemRequest{Code: chi.URLParam(r, "code")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	credential, err := h.handoff.Redeem(ctx, req.Code)
	if err != nil {
		respondClassified(w, r, classifyHandoffError(err), err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Handoff code redeemed")
	respondSuccess(w, r, http.StatusOK, RedeemResponse{Credential: credential}, start)
}
