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

// Package reference composes the one concrete env.Env the engine can run
// against without an external data-file provider: calm weather/ocean/wave/ice
// everywhere, every point is water, zero magnetic declination, and real Sun
// and star geometry from internal/env/ephemeris. Bootstrap always wires this
// in; the module has no data-directory configuration (§1, §6 "Environment").
// It is a stand-in for the out-of-scope Env collaborator, not a requirement
// of the engine.
package reference

import (
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/env/ephemeris"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// Env is the calm-world default implementation of env.Env.
type Env struct {
	Ephemeris *ephemeris.Ephemeris
}

// New returns a reference Env with an empty star catalogue (only the Sun is
// ever visible until Stars is populated by a caller with real data).
func New() *Env {
	return &Env{Ephemeris: ephemeris.New()}
}

func (e *Env) Weather(registry.Position, time.Time) env.WeatherData { return env.WeatherData{} }
func (e *Env) Ocean(registry.Position, time.Time) env.OceanData     { return env.OceanData{} }
func (e *Env) Wave(registry.Position, time.Time) env.WaveData       { return env.WaveData{} }
func (e *Env) SeaIce(registry.Position, time.Time) env.SeaIce       { return env.SeaIce{} }
func (e *Env) IsWater(registry.Position) bool                       { return true }
func (e *Env) MagneticDeclination(registry.Position, time.Time) float64 {
	return 0
}

func (e *Env) SunPosition(pos registry.Position, now time.Time) env.HorizontalPosition {
	az, alt := e.Ephemeris.SunHorizontal(pos, now)
	return env.HorizontalPosition{Azimuth: az, Altitude: alt}
}

func (e *Env) StarPosition(id int, pos registry.Position, now time.Time) env.HorizontalPosition {
	az, alt := e.Ephemeris.StarHorizontal(id, pos, now)
	return env.HorizontalPosition{Azimuth: az, Altitude: alt}
}
