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

package celestial

import (
	"testing"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// fakeRNG gives each draw a fixed, independently controllable value so tests
// can force a specific branch of Attempt deterministically.
type fakeRNG struct {
	float64s []float64
	idx      int
	uniforms []float64
	uIdx     int
	intRange int
}

func (f *fakeRNG) Float64() float64 {
	if f.idx < len(f.float64s) {
		v := f.float64s[f.idx]
		f.idx++
		return v
	}
	return 0
}
func (f *fakeRNG) Uniform() float64 {
	if f.uIdx < len(f.uniforms) {
		v := f.uniforms[f.uIdx]
		f.uIdx++
		return v
	}
	return 0
}
func (f *fakeRNG) IntRange(lo, hi int) int { return f.intRange }

type fakeEnv struct {
	sun   env.HorizontalPosition
	stars map[int]env.HorizontalPosition
}

func (f fakeEnv) Weather(registry.Position, time.Time) env.WeatherData { return env.WeatherData{} }
func (f fakeEnv) Ocean(registry.Position, time.Time) env.OceanData     { return env.OceanData{} }
func (f fakeEnv) Wave(registry.Position, time.Time) env.WaveData       { return env.WaveData{} }
func (f fakeEnv) SeaIce(registry.Position, time.Time) env.SeaIce       { return env.SeaIce{} }
func (f fakeEnv) IsWater(registry.Position) bool                       { return true }
func (f fakeEnv) MagneticDeclination(registry.Position, time.Time) float64 { return 0 }
func (f fakeEnv) SunPosition(registry.Position, time.Time) env.HorizontalPosition { return f.sun }
func (f fakeEnv) StarPosition(id int, _ registry.Position, _ time.Time) env.HorizontalPosition {
	if hp, ok := f.stars[id]; ok {
		return hp
	}
	return env.HorizontalPosition{Altitude: -45}
}

func TestAttempt_CloudObscurationBlocksSight(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Altitude: 45}}
	rng := &fakeRNG{float64s: []float64{0.5}}

	_, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 100, false, env.WaveData{}, 0, 10)
	if ok {
		t.Fatalf("expected total cloud cover to block every sight")
	}
}

func TestAttempt_SunAboveHorizon(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Azimuth: 120, Altitude: 30}}
	rng := &fakeRNG{float64s: []float64{0}}

	sight, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, false, env.WaveData{}, 0, 10)
	if !ok {
		t.Fatalf("expected a sun sight with no cloud cover")
	}
	if sight.Object != env.ObjectSun || sight.Azimuth != 120 || sight.Altitude != 30 {
		t.Fatalf("got %+v", sight)
	}
}

func TestAttempt_SunTooFarBelowHorizonIsDark(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Altitude: -20}}
	rng := &fakeRNG{float64s: []float64{0}}

	_, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, false, env.WaveData{}, 0, 10)
	if ok {
		t.Fatalf("expected no sight in full darkness")
	}
}

func TestAttempt_SunInTwilightBand(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Altitude: -3}}
	rng := &fakeRNG{float64s: []float64{0}}

	_, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, false, env.WaveData{}, 0, 10)
	if ok {
		t.Fatalf("expected no sight during twilight (sun too bright for stars, too dim to read)")
	}
}

func TestAttempt_StarFoundDuringNauticalNight(t *testing.T) {
	e := fakeEnv{
		sun:   env.HorizontalPosition{Altitude: -9}, // between dark(-12) and twilight(-6)
		stars: map[int]env.HorizontalPosition{7: {Azimuth: 200, Altitude: 15}},
	}
	rng := &fakeRNG{float64s: []float64{0}, intRange: 7}

	sight, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, false, env.WaveData{}, 0, 10)
	if !ok {
		t.Fatalf("expected a star sight")
	}
	if sight.Object != env.ObjectStar || sight.Azimuth != 200 || sight.Altitude != 15 {
		t.Fatalf("got %+v", sight)
	}
}

func TestAttempt_NoVisibleStarAfterRetries(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Altitude: -9}} // no stars above horizon
	rng := &fakeRNG{float64s: []float64{0}, intRange: 3}

	_, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, false, env.WaveData{}, 0, 10)
	if ok {
		t.Fatalf("expected no sight when no star is ever above the horizon")
	}
}

func TestAttempt_WavePerturbationAppliesAndWraps(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Azimuth: 350, Altitude: 10}}
	rng := &fakeRNG{float64s: []float64{0}, uniforms: []float64{1, 1}}

	wave := env.WaveData{Valid: true, HeightMetres: 2}
	sight, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, true, wave, 1, 10)
	if !ok {
		t.Fatalf("expected a perturbed sight")
	}
	// factor = 1*1*2/1 = 2; azimuth = 350 + 200 = 550 -> wraps to 190.
	if sight.Azimuth != 190 {
		t.Fatalf("azimuth: got %v, want 190", sight.Azimuth)
	}
}

func TestAttempt_WavePerturbationCanSinkBelowHorizon(t *testing.T) {
	e := fakeEnv{sun: env.HorizontalPosition{Azimuth: 0, Altitude: 1}}
	rng := &fakeRNG{float64s: []float64{0}, uniforms: []float64{1, -1}}

	wave := env.WaveData{Valid: true, HeightMetres: 5}
	_, ok := Attempt(e, rng, registry.Position{}, time.Unix(0, 0), 0, true, wave, 1, 10)
	if ok {
		t.Fatalf("expected the perturbation to push altitude below the horizon")
	}
}
