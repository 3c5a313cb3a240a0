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

package geoutils

import (
	"math"
	"testing"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

func TestNormalizeBearing(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {-90, 270}, {720, 0}, {-1, 359}, {359.5, 359.5},
	}
	for _, c := range cases {
		if got := NormalizeBearing(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeBearing(%v): got %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCompassDiff(t *testing.T) {
	cases := []struct{ from, to, want float64 }{
		{0, 90, 90},
		{90, 0, -90},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := CompassDiff(c.from, c.to); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("CompassDiff(%v,%v): got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestOffset_NorthIncreasesLatitude(t *testing.T) {
	pos := registry.Position{Lat: 0, Lon: 0}
	got := Offset(pos, 0, MetresPerDegree)
	if math.Abs(got.Lat-1) > 1e-6 {
		t.Fatalf("Lat after 1 degree north: got %v, want 1", got.Lat)
	}
	if math.Abs(got.Lon) > 1e-9 {
		t.Fatalf("Lon should be unchanged heading due north: got %v", got.Lon)
	}
}

func TestOffset_ClampsAtPoleAndWrapsLongitude(t *testing.T) {
	pos := registry.Position{Lat: 89.5, Lon: 179.9}
	got := Offset(pos, 0, MetresPerDegree)
	if got.Lat != 90 {
		t.Fatalf("Lat should clamp to 90: got %v", got.Lat)
	}

	pos2 := registry.Position{Lat: 0, Lon: 179.9}
	got2 := Offset(pos2, 90, MetresPerDegree)
	if got2.Lon < -180 || got2.Lon >= 180 {
		t.Fatalf("Lon should wrap into [-180,180): got %v", got2.Lon)
	}
}

// fakeEnv is a small env.Env fake used only to exercise
// IsApproximatelyNearVisibleLand; geoutils depends on env.Env but not on the
// envtest package (which itself doesn't import geoutils), so a minimal local
// fake avoids a dependency cycle.
type fakeEnv struct {
	isWater func(registry.Position) bool
}

func (f fakeEnv) Weather(registry.Position, time.Time) env.WeatherData { return env.WeatherData{} }
func (f fakeEnv) Ocean(registry.Position, time.Time) env.OceanData     { return env.OceanData{} }
func (f fakeEnv) Wave(registry.Position, time.Time) env.WaveData       { return env.WaveData{} }
func (f fakeEnv) SeaIce(registry.Position, time.Time) env.SeaIce       { return env.SeaIce{} }
func (f fakeEnv) IsWater(p registry.Position) bool                     { return f.isWater(p) }
func (f fakeEnv) MagneticDeclination(registry.Position, time.Time) float64 { return 0 }
func (f fakeEnv) SunPosition(registry.Position, time.Time) env.HorizontalPosition {
	return env.HorizontalPosition{}
}
func (f fakeEnv) StarPosition(int, registry.Position, time.Time) env.HorizontalPosition {
	return env.HorizontalPosition{}
}

// TestIsApproximatelyNearVisibleLand_OnLandShortCircuits mirrors invariant 9's
// "short-circuits true if already on land" clause.
func TestIsApproximatelyNearVisibleLand_OnLandShortCircuits(t *testing.T) {
	e := fakeEnv{isWater: func(registry.Position) bool { return false }}
	if !IsApproximatelyNearVisibleLand(e, registry.Position{}, 1000) {
		t.Fatalf("expected true when already on land")
	}
}

// TestIsApproximatelyNearVisibleLand_NoLandWithinRange asserts that with
// water everywhere, no visibility radius ever reports land.
func TestIsApproximatelyNearVisibleLand_NoLandWithinRange(t *testing.T) {
	e := fakeEnv{isWater: func(registry.Position) bool { return true }}
	for _, v := range []float64{0, 10, 30, 1000, 31000, 100000} {
		if IsApproximatelyNearVisibleLand(e, registry.Position{}, v) {
			t.Fatalf("visibility %v: expected false with water everywhere", v)
		}
	}
}

// TestIsApproximatelyNearVisibleLand_BelowThirtyMetresSkipsSampling documents
// this implementation's behavior for visibility < 30: the sampler never
// starts (its first ring is at 30m), so only the on-land short-circuit can
// report true.
func TestIsApproximatelyNearVisibleLand_BelowThirtyMetresSkipsSampling(t *testing.T) {
	e := fakeEnv{isWater: func(p registry.Position) bool { return p.Lat == 0 && p.Lon == 0 }}
	if IsApproximatelyNearVisibleLand(e, registry.Position{}, 15) {
		t.Fatalf("expected no land detected below the first sampling ring")
	}
}

// TestIsApproximatelyNearVisibleLand_DetectsLandOnRing covers the normal
// detection path: land sitting due north at 60m, within a 1000m visibility.
func TestIsApproximatelyNearVisibleLand_DetectsLandOnRing(t *testing.T) {
	landPos := Offset(registry.Position{}, 0, 60)
	e := fakeEnv{isWater: func(p registry.Position) bool {
		return math.Abs(p.Lat-landPos.Lat) > 1e-9 || math.Abs(p.Lon-landPos.Lon) > 1e-9
	}}
	if !IsApproximatelyNearVisibleLand(e, registry.Position{}, 1000) {
		t.Fatalf("expected land at 60m to be detected within 1000m visibility")
	}
}
