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

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// gustMagnitudeForDamage returns the magnitude of the gust vector with
// components (gustX, gustY) for the damage model (§4.3.1). The apparent-wind
// adjustment is made by gustMagnitudeWithApparentWind before calling it.
func gustMagnitudeForDamage(gustX, gustY float64) float64 {
	return math.Hypot(gustX, gustY)
}

// gustMagnitudeWithApparentWind decomposes gust into components and, when
// v's apparent-wind flag is set, adds in the vessel's own water velocity
// and leeway before taking the magnitude (§4.3.1's apparent-wind rule).
// Shared by the main damage-taking path and the sails-down repair-only
// path, since both consume the same damage model.
func gustMagnitudeWithApparentWind(v *registry.Vessel, gust env.Wind) float64 {
	gx, gy := gust.Magnitude*sinDeg(gust.Angle), gust.Magnitude*cosDeg(gust.Angle)
	if v.Flags.Has(registry.FlagDamageUsesApparentWind) {
		gx += v.WaterVelocity.Magnitude * sinDeg(v.WaterVelocity.Bearing)
		gy += v.WaterVelocity.Magnitude * cosDeg(v.WaterVelocity.Bearing)
		if v.Leeway != 0 {
			leewayBearing := v.Heading + 90
			gx += v.Leeway * sinDeg(leewayBearing)
			gy += v.Leeway * cosDeg(leewayBearing)
		}
	}
	return gustMagnitudeForDamage(gx, gy)
}

// applyDamage updates damage (0..100) for one tick given the gust magnitude
// that applies to this vessel, per §4.3.1. takeDamage gates whether damage
// can be taken at all this tick (it can always be repaired).
func applyDamage(damage, gust float64, takeDamage bool, tg float64) float64 {
	const knotsPerS = KnotsPerMetrePerSecond

	if gust < RepairThresholdMS {
		damage -= (RepairThresholdMS - gust) * 0.25 * knotsPerS / 3600
		if damage < 0 {
			damage = 0
		}
		return damage
	}

	if gust > tg && takeDamage && damage < 100 {
		delta := gust - tg
		damage += (100 - damage) * delta * delta * 0.25 * knotsPerS * knotsPerS / 360000
		if damage > 100 {
			damage = 100
		}
	}
	return damage
}
