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

package physics

import (
	"math"

	"github.com/ls4096/sailnavsim-core/internal/geoutils"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// iceFactor implements §4.3.3's ice speed factor.
func iceFactor(valid bool, pctCover float64) float64 {
	if !valid {
		return 1
	}
	return 1 - pctCover/100
}

// waveFactor implements §4.3.3's wave speed factor.
func waveFactor(flagSet, valid bool, heightMetres, resistance float64) float64 {
	if !flagSet || !valid {
		return 1
	}
	return math.Exp(-(heightMetres * heightMetres) / resistance)
}

// damageFactor implements §4.3.3's damage speed factor.
func damageFactor(takesDamage bool, damage float64) float64 {
	if !takesDamage {
		return 1
	}
	return 1 - damage/100
}

// basicHullVelocity computes the new water-velocity magnitude for a basic
// hull per §4.3.3: a polar lookup smoothed by the boat's inertia.
func basicHullVelocity(windMag, angleFromWind float64, boatType registry.BoatType, polar WindResponse, safCommon, damageF, prevSpeed, inertia float64) float64 {
	spd := polar(windMag, angleFromWind, boatType) * safCommon * damageF
	return (inertia*prevSpeed + spd) / (inertia + 1)
}

// advancedHullVelocity computes the new ahead/abeam speeds and heel angle
// for an advanced hull per §4.3.3, delegating the actual hydrodynamics to
// the opaque solver. On solver error, ahead/abeam/heel are all zeroed.
func advancedHullVelocity(windAngle, windSpeed, prevMag, leeway, sailArea, safCommon float64, solver AdvancedHullSolver) (aheadSpeed, abeamSpeed, heel float64) {
	safPrime := safCommon
	if sailArea > 0 && safPrime < 0.01 {
		safPrime = 0.01
	}

	in := AdvancedHullInput{
		WindAngle:  -windAngle,
		WindSpeed:  windSpeed,
		AheadSpeed: prevMag / safPrime,
		AbeamSpeed: leeway / safPrime,
		SailArea:   sailArea,
	}
	out, err := solver(in)
	if err != nil {
		return 0, 0, 0
	}
	return out.AheadSpeed * safPrime, out.AbeamSpeed * safPrime, out.HeelAngle
}

// reflect flips a negative-magnitude vector into a positive-magnitude one
// rotated 180 degrees, per §3 invariant 3.
func reflect(v registry.Vector) registry.Vector {
	if v.Magnitude >= 0 {
		return v
	}
	return registry.Vector{
		Bearing:   geoutils.NormalizeBearing(v.Bearing + 180),
		Magnitude: -v.Magnitude,
	}
}

// addVectors sums two bearing/magnitude vectors via component decomposition.
func addVectors(a, b registry.Vector) registry.Vector {
	ax := a.Magnitude * math.Sin(a.Bearing*math.Pi/180)
	ay := a.Magnitude * math.Cos(a.Bearing*math.Pi/180)
	bx := b.Magnitude * math.Sin(b.Bearing*math.Pi/180)
	by := b.Magnitude * math.Cos(b.Bearing*math.Pi/180)
	x, y := ax+bx, ay+by
	mag := math.Hypot(x, y)
	bearing := math.Atan2(x, y) * 180 / math.Pi
	if bearing < 0 {
		bearing += 360
	}
	return registry.Vector{Bearing: bearing, Magnitude: mag}
}
