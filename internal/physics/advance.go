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
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/geoutils"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// PoleGuardEpsilon is the latitude margin within which a vessel is forced to
// stop rather than risk an undefined bearing at the pole (§3 invariant 5).
const PoleGuardEpsilon = 0.0001

// sailsDownSpeedFactor is the fixed basic-hull, sails-down speed scale
// applied to wind magnitude (§4.3 step 2, "basic hull with sails down").
const sailsDownSpeedFactor = 0.1

// startingFromLandArm is the countdown armed when a vessel comes to rest on
// land (§4.3 step 7).
const startingFromLandArm = 10

// Engine bundles the opaque lookup functions and shared resources needed to
// advance vessels, per §4.3.
type Engine struct {
	Env    env.Env
	Params ParamsTable
	Polar  WindResponse
	Hull   AdvancedHullSolver
	RNG    *RNG
}

// NewEngine constructs an Engine. polar and hull may be nil only if no
// advanced/basic hulls using them are ever advanced; in practice Bootstrap
// always supplies both.
func NewEngine(e env.Env, params ParamsTable, polar WindResponse, hull AdvancedHullSolver, rng *RNG) *Engine {
	return &Engine{Env: e, Params: params, Polar: polar, Hull: hull, RNG: rng}
}

// Advance performs the per-tick update described in §4.3 for v. now is the
// wall-clock second count used for magnetic-declination and Env lookups.
func (eng *Engine) Advance(v *registry.Vessel, now time.Time) {
	if v.Stopped {
		eng.repairOnly(v, now)
		return
	}

	if absF(v.Pos.Lat) >= 90-PoleGuardEpsilon {
		eng.stop(v)
		return
	}

	if v.MovingToSea {
		if eng.advanceMovingToSea(v, now) {
			return
		}
	}

	eng.advanceMainTick(v, now)
}

// repairOnly implements §4.3 precondition 1: a stopped vessel only ever
// attempts a damage repair, gated on the ambient wind-gust threshold.
func (eng *Engine) repairOnly(v *registry.Vessel, now time.Time) {
	weather := eng.Env.Weather(v.Pos, now)
	gust := gustMagnitudeForDamage(
		weather.Gust.Magnitude*sinDeg(weather.Gust.Angle),
		weather.Gust.Magnitude*cosDeg(weather.Gust.Angle),
	)
	params := eng.Params.For(v.Type)
	v.Damage = applyDamage(v.Damage, gust, false, params.TakeDamageThreshold)
}

func (eng *Engine) stop(v *registry.Vessel) {
	v.Stopped = true
	v.WaterVelocity = registry.Vector{}
	v.GroundVelocity = registry.Vector{}
}

// advanceMovingToSea implements §4.3 precondition 3. Returns true if the
// caller's tick is already complete (either a launch step was taken or the
// vessel was stopped).
func (eng *Engine) advanceMovingToSea(v *registry.Vessel, now time.Time) bool {
	if eng.Env.IsWater(v.Pos) {
		v.MovingToSea = false
		if v.FirstDesiredCourseImmediate {
			v.Heading = eng.resolveDesiredCourseTrue(v, now)
			v.FirstDesiredCourseImmediate = false
		}
		return false
	}

	desired := eng.resolveDesiredCourseTrue(v, now)
	if !isHeadingTowardWater(eng.Env, v.Pos, desired) {
		eng.stop(v)
		return true
	}

	const launchSpeed = 0.5
	v.Heading = desired
	v.WaterVelocity = registry.Vector{Bearing: desired, Magnitude: launchSpeed}
	v.Leeway = 0
	v.GroundVelocity = v.WaterVelocity
	v.Pos = geoutils.Offset(v.Pos, desired, launchSpeed)
	v.DistanceTravelled += launchSpeed
	return true
}

func (eng *Engine) resolveDesiredCourseTrue(v *registry.Vessel, now time.Time) float64 {
	magdec := eng.Env.MagneticDeclination(v.Pos, now)
	return desiredCourseTrue(v.DesiredCourse, v.CourseMagnetic, magdec)
}

// advanceMainTick implements the main-path tick body described after the
// three preconditions in §4.3.
func (eng *Engine) advanceMainTick(v *registry.Vessel, now time.Time) {
	weather := eng.Env.Weather(v.Pos, now)
	ocean := eng.Env.Ocean(v.Pos, now)
	wave := eng.Env.Wave(v.Pos, now)
	ice := eng.Env.SeaIce(v.Pos, now)

	wind, gust := weather.Wind, weather.Gust
	if ocean.Valid {
		wind = env.AddWindAndCurrent(wind, ocean.Current)
		gust = env.AddWindAndCurrent(gust, ocean.Current)
	}

	params := eng.Params.For(v.Type)
	basic := v.Type == registry.BoatTypeBasic0 || v.Type == registry.BoatTypeBasic1
	advanced := !basic

	if basic && v.SailsDown {
		eng.advanceSailsDown(v, wind, gust, ice, wave, params)
	} else {
		takeDamage := v.Flags.Has(registry.FlagTakesDamage)
		if advanced && v.SailArea <= 0 {
			takeDamage = false
		}
		eng.updateDamage(v, gust, takeDamage, params)
		eng.updateCourseForTick(v, now, params)
		eng.updateVelocityForTick(v, wind, ice, wave, params, basic)
	}

	eng.advancePosition(v, ocean)

	if !eng.Env.IsWater(v.Pos) {
		eng.stop(v)
		v.StartingFromLandCount = startingFromLandArm
	}
}

func (eng *Engine) advanceSailsDown(v *registry.Vessel, wind, gust env.Wind, ice env.SeaIce, wave env.WaveData, params BoatParams) {
	v.Heading = geoutils.NormalizeBearing(wind.Angle + 180)
	iceF := iceFactor(ice.Valid, ice.PctCover)
	waveF := waveFactor(v.Flags.Has(registry.FlagWaveSpeedEffect), wave.Valid, wave.HeightMetres, params.WaveEffectResistance)

	// Damage may only be repaired this tick, never taken (§4.3 step 2).
	gustMag := gustMagnitudeWithApparentWind(v, gust)
	v.Damage = applyDamage(v.Damage, gustMag, false, params.TakeDamageThreshold)

	mag := wind.Magnitude * sailsDownSpeedFactor * iceF * waveF
	v.WaterVelocity = registry.Vector{Bearing: v.Heading, Magnitude: mag}
}

func (eng *Engine) updateDamage(v *registry.Vessel, gust env.Wind, takeDamage bool, params BoatParams) {
	gustMag := gustMagnitudeWithApparentWind(v, gust)
	v.Damage = applyDamage(v.Damage, gustMag, takeDamage, params.TakeDamageThreshold)
}

func (eng *Engine) updateCourseForTick(v *registry.Vessel, now time.Time, params BoatParams) {
	desired := eng.resolveDesiredCourseTrue(v, now)
	v.Heading = updateCourse(v.Heading, desired, params.CourseChangeRate, eng.RNG.CoinFlip)
}

func (eng *Engine) updateVelocityForTick(v *registry.Vessel, wind env.Wind, ice env.SeaIce, wave env.WaveData, params BoatParams, basic bool) {
	angleFromWind := geoutils.CompassDiff(wind.Angle, v.Heading)
	iceF := iceFactor(ice.Valid, ice.PctCover)
	waveF := waveFactor(v.Flags.Has(registry.FlagWaveSpeedEffect), wave.Valid, wave.HeightMetres, params.WaveEffectResistance)
	safCommon := iceF * waveF

	if basic {
		damageF := damageFactor(v.Flags.Has(registry.FlagTakesDamage), v.Damage)
		mag := basicHullVelocity(wind.Magnitude, angleFromWind, v.Type, eng.Polar, safCommon, damageF, v.WaterVelocity.Magnitude, params.SpeedChangeResponse)
		v.WaterVelocity = registry.Vector{Bearing: v.Heading, Magnitude: mag}
		return
	}

	ahead, abeam, heel := advancedHullVelocity(angleFromWind, wind.Magnitude, v.WaterVelocity.Magnitude, v.Leeway, v.SailArea, safCommon, eng.Hull)
	v.WaterVelocity = registry.Vector{Bearing: v.Heading, Magnitude: ahead}
	v.Leeway = abeam
	v.HeelAngle = heel
}

// advancePosition implements §4.3 steps 3-6: derive the ground vector,
// decrement the launch-damping countdown, step position, and accumulate
// distance.
func (eng *Engine) advancePosition(v *registry.Vessel, ocean env.OceanData) {
	ground := v.WaterVelocity

	if ocean.Valid {
		dampen := float64(10-v.StartingFromLandCount) / 10
		current := registry.Vector{Bearing: ocean.Current.Bearing, Magnitude: ocean.Current.Magnitude * dampen}
		ground = addVectors(ground, current)
	}

	if v.Leeway != 0 {
		leeway := reflect(registry.Vector{Bearing: v.Heading + 90, Magnitude: v.Leeway})
		ground = addVectors(ground, leeway)
	}

	ground = reflect(ground)
	v.GroundVelocity = ground

	if v.StartingFromLandCount > 0 {
		v.StartingFromLandCount--
	}

	v.Pos = geoutils.Offset(v.Pos, ground.Bearing, ground.Magnitude)
	v.DistanceTravelled += ground.Magnitude
}

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
