// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package geoutils provides the approximate geometry shared by the
// simulation's position-advance and land-proximity checks (§4.5 C7). The
// small-circle sampler uses a deliberately coarse equirectangular
// approximation, as documented by the source this spec was distilled from.
package geoutils

import (
	"math"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// MetresPerDegree is the equirectangular scale factor used throughout this
// package: 60 nautical miles per degree, 1852 metres per nautical mile.
const MetresPerDegree = 60.0 * 1852.0

// NormalizeBearing reduces b to [0,360).
func NormalizeBearing(b float64) float64 {
	b = math.Mod(b, 360)
	if b < 0 {
		b += 360
	}
	return b
}

// CompassDiff returns the signed difference from -> to in (-180,180], i.e.
// the smallest rotation that takes `from` to `to`.
func CompassDiff(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}

// poleLonScaleEpsilon is the cos(latitude) magnitude below which the
// equirectangular longitude scale is too degenerate to trust; Offset falls
// back to NaN so callers (isLandFoundOnCircle) can detect the case rather
// than silently producing a meaningless longitude (§4.5, §9 open question).
const poleLonScaleEpsilon = 1e-6

// Offset moves pos by distanceMetres along bearingDeg using the same
// equirectangular approximation as the small-circle sampler below: latitude
// moves at a fixed MetresPerDegree, longitude is scaled by cos(latitude).
// Latitude is clamped to [-90,90]; longitude wraps to [-180,180). Very near a
// pole the longitude scale degenerates and the returned longitude is NaN.
func Offset(pos registry.Position, bearingDeg, distanceMetres float64) registry.Position {
	rad := bearingDeg * math.Pi / 180
	dLat := (distanceMetres * math.Cos(rad)) / MetresPerDegree
	lonScale := MetresPerDegree * math.Cos(pos.Lat*math.Pi/180)

	lat := pos.Lat + dLat
	if lat > 90 {
		lat = 90
	} else if lat < -90 {
		lat = -90
	}

	if math.Abs(math.Cos(pos.Lat*math.Pi/180)) <= poleLonScaleEpsilon {
		return registry.Position{Lat: lat, Lon: math.NaN()}
	}

	dLon := (distanceMetres * math.Sin(rad)) / lonScale
	lon := math.Mod(pos.Lon+dLon, 360)
	if lon >= 180 {
		lon -= 360
	} else if lon < -180 {
		lon += 360
	}
	return registry.Position{Lat: lat, Lon: lon}
}

// maxVisibilityRadius caps how far the near-land sampler will ever probe,
// per §4.5 ("min(V, 31000)").
const maxVisibilityRadius = 31000.0

// IsApproximatelyNearVisibleLand implements §4.5: true if pos is itself on
// land, or if any sample on a growing sequence of concentric circles (radii
// 30,60,120,...,doubling, sample count 4,8,...,32) up to min(v, 31000m) is
// on land, plus one final sample circle at radius v when v > 30.
func IsApproximatelyNearVisibleLand(e env.Env, pos registry.Position, visibilityMetres float64) bool {
	if !e.IsWater(pos) {
		return true
	}

	limit := visibilityMetres
	if limit > maxVisibilityRadius {
		limit = maxVisibilityRadius
	}

	n := 4
	for r := 30.0; r <= limit; r *= 2 {
		if isLandFoundOnCircle(e, pos, r, n) {
			return true
		}
		if n < 32 {
			n *= 2
		}
	}

	if visibilityMetres > 30 {
		if isLandFoundOnCircle(e, pos, visibilityMetres, n) {
			return true
		}
	}

	return false
}

// isLandFoundOnCircle samples n equally spaced points on a circle of radius
// r around pos and reports whether any sample is on land. Per §9's
// documented open question, the pole-fallback behavior is intentional: if a
// sample's bearing-offset wraps longitude out of range very near a pole, we
// conclude water in the northern hemisphere and land in the southern one,
// rather than replicating the source's latitude-adjustment typo.
func isLandFoundOnCircle(e env.Env, pos registry.Position, r float64, n int) bool {
	for i := 0; i < n; i++ {
		bearing := float64(i) * (360.0 / float64(n))
		sample := Offset(pos, bearing, r)

		if outOfRangeNearPole(pos, sample) {
			if pos.Lat >= 0 {
				continue // conclude water
			}
			return true // conclude land
		}

		if !e.IsWater(sample) {
			return true
		}
	}
	return false
}

// outOfRangeNearPole detects the degenerate case where an offset very close
// to a pole produced a longitude that could not be meaningfully wrapped
// (the equirectangular approximation breaks down as cos(lat) -> 0).
func outOfRangeNearPole(pos, sample registry.Position) bool {
	return math.Abs(pos.Lat) > 89.9 && math.IsNaN(sample.Lon)
}
