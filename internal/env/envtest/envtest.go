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

// Package envtest provides a deterministic, in-memory env.Env fake for unit
// tests. All fields default to calm conditions (no wind, no current, no
// waves, all-water) unless overridden.
package envtest

import (
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// Fake is a fully configurable, non-concurrent-safe Env fake. Each field is
// a function so tests can make the response depend on position/time.
type Fake struct {
	WeatherFn func(registry.Position, time.Time) env.WeatherData
	OceanFn   func(registry.Position, time.Time) env.OceanData
	WaveFn    func(registry.Position, time.Time) env.WaveData
	IceFn     func(registry.Position, time.Time) env.SeaIce
	WaterFn   func(registry.Position) bool
	MagdecFn  func(registry.Position, time.Time) float64
	SunFn     func(registry.Position, time.Time) env.HorizontalPosition
	StarFn    func(int, registry.Position, time.Time) env.HorizontalPosition
}

// New returns a Fake where every water point is water, no wind, no current,
// no waves, no ice, zero magnetic declination, and the Sun/stars permanently
// below the horizon.
func New() *Fake {
	return &Fake{
		WeatherFn: func(registry.Position, time.Time) env.WeatherData { return env.WeatherData{} },
		OceanFn:   func(registry.Position, time.Time) env.OceanData { return env.OceanData{} },
		WaveFn:    func(registry.Position, time.Time) env.WaveData { return env.WaveData{} },
		IceFn:     func(registry.Position, time.Time) env.SeaIce { return env.SeaIce{} },
		WaterFn:   func(registry.Position) bool { return true },
		MagdecFn:  func(registry.Position, time.Time) float64 { return 0 },
		SunFn: func(registry.Position, time.Time) env.HorizontalPosition {
			return env.HorizontalPosition{Altitude: -90}
		},
		StarFn: func(int, registry.Position, time.Time) env.HorizontalPosition {
			return env.HorizontalPosition{Altitude: -90}
		},
	}
}

func (f *Fake) Weather(p registry.Position, t time.Time) env.WeatherData { return f.WeatherFn(p, t) }
func (f *Fake) Ocean(p registry.Position, t time.Time) env.OceanData     { return f.OceanFn(p, t) }
func (f *Fake) Wave(p registry.Position, t time.Time) env.WaveData      { return f.WaveFn(p, t) }
func (f *Fake) SeaIce(p registry.Position, t time.Time) env.SeaIce      { return f.IceFn(p, t) }
func (f *Fake) IsWater(p registry.Position) bool                       { return f.WaterFn(p) }
func (f *Fake) MagneticDeclination(p registry.Position, t time.Time) float64 {
	return f.MagdecFn(p, t)
}
func (f *Fake) SunPosition(p registry.Position, t time.Time) env.HorizontalPosition {
	return f.SunFn(p, t)
}
func (f *Fake) StarPosition(id int, p registry.Position, t time.Time) env.HorizontalPosition {
	return f.StarFn(id, p, t)
}
