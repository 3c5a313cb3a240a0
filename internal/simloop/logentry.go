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

package simloop

import (
	"time"

	"github.com/ls4096/sailnavsim-core/internal/celestial"
	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/logger"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// buildLogEntry materializes the log row (and, if applicable, the
// celestial-sight side record) for entry at now, per §3's LogBatch shape and
// §4.4's per-vessel sight attempt.
func (l *Loop) buildLogEntry(entry *registry.BoatEntry, now time.Time) (logger.LogEntry, logger.CelestialSightEntry, bool) {
	v := entry.Vessel
	weather := l.Env.Weather(v.Pos, now)
	ocean := l.Env.Ocean(v.Pos, now)
	wave := l.Env.Wave(v.Pos, now)
	ice := l.Env.SeaIce(v.Pos, now)
	magdec := l.Env.MagneticDeclination(v.Pos, now)

	state := logger.StateSailing
	switch {
	case v.Stopped:
		state = logger.StateStopped
	case v.SailsDown:
		state = logger.StateSailsDown
	}

	locState := logger.LocationWater
	if !l.Env.IsWater(v.Pos) {
		locState = logger.LocationLand
	}

	reportVisible := !v.Flags.Has(registry.FlagCelestialNav)

	logEntry := logger.LogEntry{
		Time:      now,
		BoatName:  entry.Name,
		Lat:       v.Pos.Lat,
		Lon:       v.Pos.Lon,
		CourseDeg: v.Heading,
		SpeedMS:   v.WaterVelocity.Magnitude,
		TrackDeg:  v.GroundVelocity.Bearing,
		GroundMS:  v.GroundVelocity.Magnitude,
		MagDecDeg: magdec,
		Distance:  v.DistanceTravelled,
		DamagePct: v.Damage,
		GustMS:    weather.Gust.Magnitude,
		Weather:   weatherSnapshot(weather, ocean, wave, ice),
		State:     state,
		LocState:  locState,

		ReportVisible: reportVisible,
	}

	if !v.Flags.Has(registry.FlagCelestialNav) {
		return logEntry, logger.CelestialSightEntry{}, false
	}

	params := l.Engine.Params.For(v.Type)
	sight, ok := celestial.Attempt(l.Env, l.RNG, v.Pos, now, weather.CloudCoverPct,
		v.Flags.Has(registry.FlagCelestialWaveEffect), wave, params.WaveEffectResistance, env.PolarisStarID)
	if !ok {
		return logEntry, logger.CelestialSightEntry{}, false
	}

	return logEntry, logger.CelestialSightEntry{
		Time:     now,
		BoatName: entry.Name,
		Object:   objectName(sight.Object),
		Azimuth:  sight.Azimuth,
		Altitude: sight.Altitude,
	}, true
}

func objectName(o env.CelestialObject) string {
	if o == env.ObjectSun {
		return "sun"
	}
	return "star"
}

func weatherSnapshot(w env.WeatherData, o env.OceanData, wv env.WaveData, ice env.SeaIce) logger.WeatherSnapshot {
	return logger.WeatherSnapshot{
		WindDirDeg: w.Wind.Angle,
		WindMagMS:  w.Wind.Magnitude,

		CurrentValid:  o.Valid,
		CurrentDirDeg: o.Current.Bearing,
		CurrentMagMS:  o.Current.Magnitude,

		WaterTempValid: o.WaterTempValid,
		WaterTempC:     o.WaterTempC,

		AirTempC:     w.AirTempC,
		DewpointC:    w.DewpointC,
		PressureHPa:  w.PressureHPa,
		CloudPct:     w.CloudCoverPct,
		VisibilityKm: w.VisibilityKm,
		PrecipRateMM: w.PrecipRateMM,
		PrecipCond:   w.PrecipCond,

		SalinityValid: o.SalinityValid,
		SalinityPSU:   o.SalinityPSU,

		IceValid: ice.Valid,
		IcePct:   ice.PctCover,

		WaveValid:   wv.Valid,
		WaveHeightM: wv.HeightMetres,
	}
}
