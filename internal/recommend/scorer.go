// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/tastegraph/internal/models"
)

// Reason strings shared by the scorer and the strategies.
const (
	ReasonGeneric     = "Recommended based on your listening profile"
	ReasonHiddenGem   = "Hidden gem"
	ReasonPopular     = "Popular track you might have missed"
	ReasonCustom      = "Custom discovery based on your chosen parameters"
	ReasonPlaceholder = "Not enough listening data yet, showing a starter pick"
)

// tempoScale maps BPM onto roughly the same scale as the unit features.
const tempoScale = 200.0

// explainThreshold is the largest difference still called a match.
const explainThreshold = 0.2

type featureWeight struct {
	feature models.Feature
	weight  float64
}

// featureWeights sum to 1.0.
var featureWeights = []featureWeight{
	{models.FeatureDanceability, 0.15},
	{models.FeatureEnergy, 0.15},
	{models.FeatureValence, 0.15},
	{models.FeatureAcousticness, 0.10},
	{models.FeatureInstrumentalness, 0.05},
	{models.FeatureLiveness, 0.05},
	{models.FeatureSpeechiness, 0.05},
	{models.FeatureTempo, 0.10},
}

// Similarity returns the weighted mean per-feature similarity between a taste
// profile and a track vector, in [0,1]. Features that are NaN on either side are
// skipped; if none remain the score is 0.
func Similarity(taste *models.TasteProfile, features models.AudioFeatures) float64 {
	target := taste.Features()

	var score, total float64
	for _, fw := range featureWeights {
		a, b := target.Value(fw.feature), features.Value(fw.feature)
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		if fw.feature == models.FeatureTempo {
			a /= tempoScale
			b /= tempoScale
		}
		sim := max(0, min(1, 1-math.Abs(a-b)))
		score += fw.weight * sim
		total += fw.weight
	}

	if total == 0 {
		return 0
	}
	return max(0, min(1, score/total))
}

type explainedFeature struct {
	feature models.Feature
	label   string
}

var explainedFeatures = []explainedFeature{
	{models.FeatureEnergy, "energy level"},
	{models.FeatureDanceability, "danceability"},
	{models.FeatureValence, "mood"},
}

// Explain lists human-readable reasons a track fits the profile. The result is
// never empty.
func Explain(taste *models.TasteProfile, features models.AudioFeatures, popularity int) []string {
	target := taste.Features()
	reasons := make([]string, 0, 4)

	for _, ef := range explainedFeatures {
		a, b := target.Value(ef.feature), features.Value(ef.feature)
		if math.IsNaN(a) || math.IsNaN(b) {
			continue
		}
		if math.Abs(a-b) < explainThreshold {
			reasons = append(reasons, fmt.Sprintf("Matches your %s (%d%%)", ef.label, int(math.Round(b*100))))
		}
	}

	switch {
	case popularity < 30:
		reasons = append(reasons, ReasonHiddenGem)
	case popularity > 70:
		reasons = append(reasons, ReasonPopular)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneric)
	}
	return reasons
}
