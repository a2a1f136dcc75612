// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/tastegraph/internal/models"
)

// AudioFeatures fetches feature vectors for up to MaxFeatureBatch track IDs.
// IDs the catalog has no analysis for are left out of the result; nothing is
// fabricated here.
func (s *Session) AudioFeatures(ctx context.Context, ids []string) ([]models.AudioFeatures, error) {
	if len(ids) > MaxFeatureBatch {
		return nil, fmt.Errorf("%w: got %d", ErrBatchTooLarge, len(ids))
	}
	if len(ids) == 0 {
		return []models.AudioFeatures{}, nil
	}

	var resp audioFeaturesResponse
	cfg := requestConfig{
		endpoint: "audio-features",
		path:     "/audio-features",
		query:    url.Values{"ids": {strings.Join(ids, ",")}},
	}
	if err := s.doRequest(ctx, cfg, &resp); err != nil {
		return nil, fmt.Errorf("audio features: %w", err)
	}

	out := make([]models.AudioFeatures, 0, len(resp.AudioFeatures))
	for _, f := range resp.AudioFeatures {
		if f == nil || f.ID == "" {
			continue
		}
		out = append(out, f.toModel())
	}
	return out, nil
}
