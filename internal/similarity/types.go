// Tastegraph - Listener Taste Profiles and Music Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastegraph

package similarity

import (
	"bytes"
	"math"
	"strconv"
)

// SimilarArtist is an artist related to a seed, with a match score in [0,1].
type SimilarArtist struct {
	Name  string  `json:"name"`
	Match float64 `json:"match"`
}

// SimilarTrack is a track related to a seed track, with a match score in [0,1].
type SimilarTrack struct {
	Artist string  `json:"artist"`
	Name   string  `json:"name"`
	Match  float64 `json:"match"`
}

// flexFloat decodes numbers the service sends either bare or quoted.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// clamp01 bounds a match score to [0,1].
func (f flexFloat) clamp01() float64 {
	v := float64(f)
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

type errorBody struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

type similarArtistsResponse struct {
	SimilarArtists struct {
		Artist []struct {
			Name  string    `json:"name"`
			Match flexFloat `json:"match"`
		} `json:"artist"`
	} `json:"similarartists"`
}

type similarTracksResponse struct {
	SimilarTracks struct {
		Track []struct {
			Name   string    `json:"name"`
			Match  flexFloat `json:"match"`
			Artist struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"track"`
	} `json:"similartracks"`
}
