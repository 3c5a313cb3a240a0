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

// Package physics implements the per-vessel tick update (§4.3 C5): course
// slew, wind-response polar lookup, ocean/ice/wave/damage speed factors,
// leeway, land detection and stop semantics.
//
// The wind-response polar table and the advanced-hull hydrodynamic solver
// are supplied as opaque lookup functions (§1, §9): this package only
// consumes them through the function-value types below, and never assumes
// anything about their internals.
package physics

import "github.com/ls4096/sailnavsim-core/internal/registry"

// KnotsPerMetrePerSecond converts m/s to knots.
const KnotsPerMetrePerSecond = 1.9438444924406

// RepairThresholdMS is the fixed damage-repair gust threshold, 25 knots.
const RepairThresholdMS = 25.0 / KnotsPerMetrePerSecond

// BoatParams holds the per-boat-type constants §4.3 parameterizes over.
type BoatParams struct {
	// TakeDamageThreshold (Tg) is the gust magnitude, in m/s, above which
	// damage accrues.
	TakeDamageThreshold float64
	// CourseChangeRate (r) is the maximum heading slew, degrees/second.
	CourseChangeRate float64
	// SpeedChangeResponse is the basic-hull velocity-smoothing inertia.
	SpeedChangeResponse float64
	// WaveEffectResistance (R) scales the wave speed-factor exponent.
	WaveEffectResistance float64
}

// ParamsTable maps a BoatType to its BoatParams. The engine is constructed
// with a table; there is no implicit default beyond what Bootstrap supplies,
// matching the data-file-driven nature of the original polar tables (§1).
type ParamsTable map[registry.BoatType]BoatParams

// For returns t's params, or the zero value if t is unknown.
func (pt ParamsTable) For(t registry.BoatType) BoatParams {
	return pt[t]
}

// WindResponse is the opaque basic-hull polar lookup:
// BoatWindResponse(windMag, angleFromWind, boatType) -> dimensionless speed
// factor.
type WindResponse func(windMag, angleFromWind float64, boatType registry.BoatType) float64

// AdvancedHullInput is the input contract of the opaque advanced-hull solver
// (sailnavsim_advancedboats_boat_update_v, §9): wind angle and speed
// relative to heading, the boat's current ahead/abeam speeds (normalized by
// sail-area factor) and sail area.
type AdvancedHullInput struct {
	WindAngle   float64 // degrees, relative to heading
	WindSpeed   float64 // m/s
	AheadSpeed  float64 // m/s, normalized by saf'
	AbeamSpeed  float64 // m/s, normalized by saf'
	SailArea    float64 // fraction [0,1]
}

// AdvancedHullOutput is the solver's output: new ahead/abeam speeds
// (normalized by saf') and the resulting heel angle in degrees.
type AdvancedHullOutput struct {
	AheadSpeed float64
	AbeamSpeed float64
	HeelAngle  float64
}

// AdvancedHullSolver is the opaque advanced-hull hydrodynamics function.
// Its numerical behavior is unspecified here by design (§9); callers plug in
// whatever implementation the data directory provides.
type AdvancedHullSolver func(in AdvancedHullInput) (AdvancedHullOutput, error)
