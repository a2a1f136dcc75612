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

// featureFetcher resolves vectors in fixed-size batches with bounded concurrency.
// A failed batch is logged and skipped; its tracks simply stay unresolved.
type featureFetcher struct {
	batchSize   int
	concurrency int
	logger      zerolog.Logger
}

func (f *featureFetcher) fetch(ctx context.Context, src FeatureSource, ids []string) map[string]models.AudioFeatures {
	out := make(map[string]models.AudioFeatures, len(ids))
	if len(ids) == 0 {
		return out
	}

	batchSize := f.batchSize
	if batchSize <= 0 || batchSize > 100 {
		batchSize = 100
	}
	concurrency := f.concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, concurrency)
	)

	for start := 0; start < len(ids); start += batchSize {
		batch := ids[start:min(start+batchSize, len(ids))]

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return out
		}

		wg.Add(1)
		go func(offset int, batch []string) {
			defer wg.Done()
			defer func() { <-sem }()

			vectors, err := src.AudioFeatures(ctx, batch)
			if err != nil {
				metrics.RecordFeatureBatchFailure()
				f.logger.Warn().Err(err).
					Int("offset", offset).
					Int("batch_size", len(batch)).
					Msg("feature batch failed, skipping")
				return
			}

			mu.Lock()
			for _, v := range vectors {
				if v.ID != "" {
					out[v.ID] = v
				}
			}
			mu.Unlock()
		}(start, batch)
	}

	wg.Wait()
	return out
}

// resolveCandidateFeatures attaches vectors to candidates, substituting the
// neutral vector where none resolved.
func (f *featureFetcher) resolveCandidateFeatures(ctx context.Context, src FeatureSource, candidates []Candidate) {
	ids := make([]string, 0, len(candidates))
	for i := range candidates {
		ids = append(ids, candidates[i].Track.ID)
	}
	vectors := f.fetch(ctx, src, ids)

	for i := range candidates {
		if v, ok := vectors[candidates[i].Track.ID]; ok {
			candidates[i].Features = v
			candidates[i].FeaturesResolved = true
			continue
		}
		candidates[i].Features = models.NeutralFeatures(candidates[i].Track.ID)
		candidates[i].FeaturesResolved = false
	}
}
