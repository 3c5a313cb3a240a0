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

	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// DefaultParams is the ParamsTable Bootstrap always wires in: identical,
// middling constants for every BoatType. No data-file-driven table is loaded
// by this module (§1).
func DefaultParams() ParamsTable {
	p := BoatParams{
		TakeDamageThreshold:  18.0,
		CourseChangeRate:     3.0,
		SpeedChangeResponse:  5.0,
		WaveEffectResistance: 4.0,
	}
	return ParamsTable{
		registry.BoatTypeBasic0:    p,
		registry.BoatTypeBasic1:    p,
		registry.BoatTypeAdvanced0: p,
		registry.BoatTypeAdvanced1: p,
	}
}

// DefaultPolar is a placeholder basic-hull wind-response polar: dimensionless
// boat speed peaks on a beam reach and falls off into irons and on a dead
// run. §1 treats the real polar table as an opaque, data-file-supplied
// function; this exists only so the engine is runnable without one.
func DefaultPolar() WindResponse {
	return func(windMag, angleFromWind float64, _ registry.BoatType) float64 {
		a := angleFromWind * math.Pi / 180
		shape := math.Sin(a)
		if shape < 0 {
			shape = -shape
		}
		// Can't sail dead into the wind.
		if deadzone := math.Abs(angleFromWind); deadzone < 30 || deadzone > 330 {
			shape *= deadzone / 30
		}
		return windMag * 0.4 * shape
	}
}

// DefaultHull is a placeholder advanced-hull solver matching the
// sailnavsim_advancedboats_boat_update_v contract (§9): a simple,
// deterministic function of wind angle/speed and sail area. Never errors.
func DefaultHull() AdvancedHullSolver {
	return func(in AdvancedHullInput) (AdvancedHullOutput, error) {
		a := in.WindAngle * math.Pi / 180
		ahead := in.WindSpeed * 0.45 * math.Cos(a) * in.SailArea
		if ahead < 0 {
			ahead = 0
		}
		abeam := in.WindSpeed * 0.15 * math.Sin(a) * in.SailArea
		heel := 30 * math.Abs(math.Sin(a)) * in.SailArea
		return AdvancedHullOutput{AheadSpeed: ahead, AbeamSpeed: abeam, HeelAngle: heel}, nil
	}
}
