// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package models

import "math"

// Feature names one scalar attribute of an audio feature vector.
type Feature string

// The eight attributes every feature vector and taste profile carries.
const (
	FeatureDanceability     Feature = "danceability"
	FeatureEnergy           Feature = "energy"
	FeatureValence          Feature = "valence"
	FeatureAcousticness     Feature = "acousticness"
	FeatureInstrumentalness Feature = "instrumentalness"
	FeatureLiveness         Feature = "liveness"
	FeatureSpeechiness      Feature = "speechiness"
	FeatureTempo            Feature = "tempo"
)

// AllFeatures lists the attributes in a fixed order.
var AllFeatures = []Feature{
	FeatureDanceability,
	FeatureEnergy,
	FeatureValence,
	FeatureAcousticness,
	FeatureInstrumentalness,
	FeatureLiveness,
	FeatureSpeechiness,
	FeatureTempo,
}

// Neutral values substituted when a vector cannot be resolved.
const (
	NeutralDanceability     = 0.5
	NeutralEnergy           = 0.5
	NeutralValence          = 0.5
	NeutralAcousticness     = 0.5
	NeutralInstrumentalness = 0.1
	NeutralLiveness         = 0.2
	NeutralSpeechiness      = 0.1
	NeutralTempo            = 120.0
)

// ParseFeature returns the Feature named s.
func ParseFeature(s string) (Feature, bool) {
	for _, f := range AllFeatures {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// InRange reports whether v is an acceptable value for f. Unit attributes lie in
// [0,1]; tempo must be positive and no faster than 250 BPM.
func (f Feature) InRange(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if f == FeatureTempo {
		return v > 0 && v <= 250
	}
	return v >= 0 && v <= 1
}

// AudioFeatures is the numeric descriptor of one track's sonic character.
type AudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
}

// NeutralFeatures returns the documented mid-range vector for trackID.
func NeutralFeatures(trackID string) AudioFeatures {
	return AudioFeatures{
		ID:               trackID,
		Danceability:     NeutralDanceability,
		Energy:           NeutralEnergy,
		Valence:          NeutralValence,
		Acousticness:     NeutralAcousticness,
		Instrumentalness: NeutralInstrumentalness,
		Liveness:         NeutralLiveness,
		Speechiness:      NeutralSpeechiness,
		Tempo:            NeutralTempo,
	}
}

// Value returns the attribute f, or NaN for an unknown feature.
//
//nolint:gocritic // value receiver keeps AudioFeatures usable as a map value
func (a AudioFeatures) Value(f Feature) float64 {
	switch f {
	case FeatureDanceability:
		return a.Danceability
	case FeatureEnergy:
		return a.Energy
	case FeatureValence:
		return a.Valence
	case FeatureAcousticness:
		return a.Acousticness
	case FeatureInstrumentalness:
		return a.Instrumentalness
	case FeatureLiveness:
		return a.Liveness
	case FeatureSpeechiness:
		return a.Speechiness
	case FeatureTempo:
		return a.Tempo
	default:
		return math.NaN()
	}
}

// Set assigns the attribute f.
func (a *AudioFeatures) Set(f Feature, v float64) {
	switch f {
	case FeatureDanceability:
		a.Danceability = v
	case FeatureEnergy:
		a.Energy = v
	case FeatureValence:
		a.Valence = v
	case FeatureAcousticness:
		a.Acousticness = v
	case FeatureInstrumentalness:
		a.Instrumentalness = v
	case FeatureLiveness:
		a.Liveness = v
	case FeatureSpeechiness:
		a.Speechiness = v
	case FeatureTempo:
		a.Tempo = v
	}
}
