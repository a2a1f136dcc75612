// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps a thread-safe singleton validator with one custom tag,
// reports fields by their json names, and converts failures to the API's
// VALIDATION_ERROR format.
//
// # Quick Start
//
//	type CustomRecommendationsRequest struct {
//	    FeatureTargets map[string]float64 `json:"feature_targets" validate:"omitempty,max=16"`
//	    SeedGenres     []string           `json:"seed_genres" validate:"omitempty,max=20,dive,seed"`
//	    Limit          int                `json:"limit" validate:"min=0,max=100"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - seed: a genre or artist seed; non-blank, at most MaxSeedLength
//     characters, no control characters
//
// Validation here only rejects malformed input. Out-of-range feature targets
// and surplus seeds are accepted and handled by the recommendation engine,
// which drops or truncates them and reports what it did.
//
// # API Error Integration
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "limit must be at most 100",
//	    "details": {"field": "limit", "tag": "max", "value": 500}
//	}
//
// Multiple failures are joined as "field: message; field: message" with a
// "fields" detail listing each one.
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
