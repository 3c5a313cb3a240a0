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

// Package celestial implements the per-tick astronomical sight attempt
// described in §4.4 C6: cloud obscuration, twilight/darkness rules, and
// optional wave perturbation of the result.
package celestial

import (
	"math"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// Sight is the outcome of one celestial-sight attempt.
type Sight struct {
	Object    env.CelestialObject
	Azimuth   float64
	Altitude  float64
}

// RNG is the minimal RNG surface celestial sighting needs; it is
// satisfied by *physics.RNG without celestial importing physics.
type RNG interface {
	Float64() float64
	Uniform() float64
	IntRange(lo, hi int) int
}

const (
	darkAltitudeDeg     = -12
	twilightAltitudeDeg = -6
)

// Attempt implements §4.4 for a vessel at pos at time now, given its
// waveEffect flag and the ambient wave reading. rng supplies all random
// draws (cloud obscuration, star selection, wave perturbation).
func Attempt(e env.Env, rng RNG, pos registry.Position, now time.Time, cloudCoverPct float64, waveFlag bool, wave env.WaveData, waveResistance float64, maxStarID int) (Sight, bool) {
	adjustedCover := math.Sqrt(cloudCoverPct * 100)
	if rng.Float64() < adjustedCover/100 {
		return Sight{}, false
	}

	sun := e.SunPosition(pos, now)
	var sight Sight
	switch {
	case sun.Altitude > 0:
		sight = Sight{Object: env.ObjectSun, Azimuth: sun.Azimuth, Altitude: sun.Altitude}
	case sun.Altitude < darkAltitudeDeg:
		return Sight{}, false
	case sun.Altitude > twilightAltitudeDeg:
		return Sight{}, false
	default:
		star, ok := findVisibleStar(e, rng, pos, now, maxStarID)
		if !ok {
			return Sight{}, false
		}
		sight = star
	}

	if waveFlag && wave.Valid {
		var ok bool
		sight, ok = perturb(sight, rng, wave.HeightMetres, waveResistance)
		if !ok {
			return Sight{}, false
		}
	}

	return sight, true
}

// findVisibleStar picks a random star id in [1,maxStarID], retrying up to 20
// times for one above the horizon (§4.4 step 6).
func findVisibleStar(e env.Env, rng RNG, pos registry.Position, now time.Time, maxStarID int) (Sight, bool) {
	const maxAttempts = 20
	for i := 0; i < maxAttempts; i++ {
		id := rng.IntRange(1, maxStarID)
		hp := e.StarPosition(id, pos, now)
		if hp.Altitude > 0 {
			return Sight{Object: env.ObjectStar, Azimuth: hp.Azimuth, Altitude: hp.Altitude}, true
		}
	}
	return Sight{}, false
}

// perturb implements the §4.4 wave-perturbation adjustment:
// (az, alt) += (100, 1.666667) * U1 * U2 * h / R
func perturb(s Sight, rng RNG, heightMetres, resistance float64) (Sight, bool) {
	if resistance == 0 {
		return s, true
	}
	u1, u2 := rng.Uniform(), rng.Uniform()
	factor := u1 * u2 * heightMetres / resistance

	s.Azimuth += 100 * factor
	s.Azimuth = math.Mod(s.Azimuth, 360)
	if s.Azimuth < 0 {
		s.Azimuth += 360
	}

	s.Altitude += (5.0 / 3.0) * factor
	if s.Altitude > 90 {
		s.Altitude = 180 - s.Altitude
	}
	if s.Altitude < 0 {
		return s, false
	}
	return s, true
}
