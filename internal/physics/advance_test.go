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
	"testing"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/env/envtest"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

func testParams() ParamsTable {
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

func newTestEngine(e env.Env) *Engine {
	return NewEngine(e, testParams(), DefaultPolar(), DefaultHull(), NewRNG(1))
}

// TestAdvance_CourseSlewReachesDesiredExactly mirrors §8 S3: a vessel at
// (0,0), heading 0, desired course 90, boat type 0 (rate 3 deg/s), reaches
// exactly 90 degrees after 30 one-second ticks and stays there.
func TestAdvance_CourseSlewReachesDesiredExactly(t *testing.T) {
	e := envtest.New() // calm: no wind, so velocity never perturbs heading
	eng := newTestEngine(e)

	v := registry.NewVessel(registry.Position{Lat: 0, Lon: 0}, registry.BoatTypeBasic0, 0)
	v.Stopped = false
	v.MovingToSea = false
	v.Heading = 0
	v.DesiredCourse = 90
	v.CourseMagnetic = false

	now := time.Unix(0, 0)
	for i := 0; i < 30; i++ {
		eng.Advance(v, now)
		if i < 29 && v.Heading == 90 {
			t.Fatalf("tick %d: heading reached 90 early: %v", i, v.Heading)
		}
	}
	if v.Heading != 90 {
		t.Fatalf("heading after 30 ticks: got %v, want 90", v.Heading)
	}

	eng.Advance(v, now)
	if v.Heading != 90 {
		t.Fatalf("heading after 31st tick: got %v, want 90 (should remain)", v.Heading)
	}
}

// TestAdvance_PoleGuardStopsVessel mirrors §8 S4.
func TestAdvance_PoleGuardStopsVessel(t *testing.T) {
	e := envtest.New()
	eng := newTestEngine(e)

	pos := registry.Position{Lat: 89.9999, Lon: 0}
	v := registry.NewVessel(pos, registry.BoatTypeBasic0, 0)
	v.Stopped = false
	v.MovingToSea = false
	v.DesiredCourse = 0

	eng.Advance(v, time.Unix(0, 0))

	if !v.Stopped {
		t.Fatalf("expected vessel to be stopped by the pole guard")
	}
	if v.Pos != pos {
		t.Fatalf("position changed: got %v, want unchanged %v", v.Pos, pos)
	}
	if v.WaterVelocity.Magnitude != 0 {
		t.Fatalf("WaterVelocity.Magnitude: got %v, want 0 (invariant 6)", v.WaterVelocity.Magnitude)
	}
}

// TestAdvance_SailsDownDrift mirrors §8 S5: sails-down drift at 0.1x wind
// magnitude, heading opposite the wind, and damage is never increased even
// under a high gust.
func TestAdvance_SailsDownDrift(t *testing.T) {
	e := envtest.New()
	e.WeatherFn = func(registry.Position, time.Time) env.WeatherData {
		return env.WeatherData{
			Wind: env.Wind{Angle: 0, Magnitude: 10},
			Gust: env.Wind{Angle: 0, Magnitude: 100}, // far above any take-threshold
		}
	}
	eng := newTestEngine(e)

	v := registry.NewVessel(registry.Position{Lat: 10, Lon: 10}, registry.BoatTypeBasic0, registry.FlagTakesDamage)
	v.Stopped = false
	v.MovingToSea = false
	v.SailsDown = true
	v.Damage = 50

	eng.Advance(v, time.Unix(0, 0))

	wantBearing := 180.0
	if math.Abs(v.WaterVelocity.Bearing-wantBearing) > 1e-6 {
		t.Fatalf("bearing: got %v, want %v", v.WaterVelocity.Bearing, wantBearing)
	}
	wantMag := 10 * sailsDownSpeedFactor
	if math.Abs(v.WaterVelocity.Magnitude-wantMag) > 1e-9 {
		t.Fatalf("magnitude: got %v, want %v", v.WaterVelocity.Magnitude, wantMag)
	}
	if v.Damage > 50 {
		t.Fatalf("damage increased with sails down: got %v, want <= 50", v.Damage)
	}
}

// TestAdvance_MovingToSeaLaunchesAtFixedSpeed exercises §4.3 precondition 3's
// "probe isHeadingTowardWater" launch branch.
func TestAdvance_MovingToSeaLaunchesAtFixedSpeed(t *testing.T) {
	e := envtest.New()
	// isHeadingTowardWater samples every 10m out to 110m (§4.3.4); put the
	// water boundary inside that probe range so an eastward heading finds it.
	e.WaterFn = func(p registry.Position) bool { return p.Lon > 0.0005 }
	eng := newTestEngine(e)

	v := registry.NewVessel(registry.Position{Lat: 0, Lon: 0}, registry.BoatTypeBasic0, 0)
	v.Stopped = false
	v.MovingToSea = true
	v.DesiredCourse = 90 // heads east, toward water

	eng.Advance(v, time.Unix(0, 0))

	if v.Stopped {
		t.Fatalf("expected vessel to launch, not stop")
	}
	if v.WaterVelocity.Magnitude != 0.5 {
		t.Fatalf("launch speed: got %v, want 0.5", v.WaterVelocity.Magnitude)
	}
	if v.Pos.Lon <= 0 {
		t.Fatalf("expected eastward progress, got lon=%v", v.Pos.Lon)
	}
}

// TestAdvance_MovingToSeaStopsWhenBlocked covers the "not heading toward
// water" branch of precondition 3.
func TestAdvance_MovingToSeaStopsWhenBlocked(t *testing.T) {
	e := envtest.New()
	e.WaterFn = func(registry.Position) bool { return false } // land everywhere
	eng := newTestEngine(e)

	v := registry.NewVessel(registry.Position{Lat: 0, Lon: 0}, registry.BoatTypeBasic0, 0)
	v.Stopped = false
	v.MovingToSea = true
	v.DesiredCourse = 90

	eng.Advance(v, time.Unix(0, 0))

	if !v.Stopped {
		t.Fatalf("expected vessel blocked by land to stop")
	}
}

// TestAdvance_StopsOnLandfall mirrors §4.3 step 7.
func TestAdvance_StopsOnLandfall(t *testing.T) {
	e := envtest.New()
	e.WaterFn = func(registry.Position) bool { return false }
	eng := newTestEngine(e)

	v := registry.NewVessel(registry.Position{Lat: 0, Lon: 0}, registry.BoatTypeBasic0, 0)
	v.Stopped = false
	v.MovingToSea = false
	v.WaterVelocity = registry.Vector{Bearing: 90, Magnitude: 2}
	v.Heading = 90

	eng.Advance(v, time.Unix(0, 0))

	if !v.Stopped {
		t.Fatalf("expected vessel to stop after making landfall")
	}
	if v.StartingFromLandCount != startingFromLandArm {
		t.Fatalf("StartingFromLandCount: got %d, want %d", v.StartingFromLandCount, startingFromLandArm)
	}
}

// TestAdvance_DistanceTravelledNonDecreasing mirrors §8 invariant 8.
func TestAdvance_DistanceTravelledNonDecreasing(t *testing.T) {
	e := envtest.New()
	e.WeatherFn = func(registry.Position, time.Time) env.WeatherData {
		return env.WeatherData{Wind: env.Wind{Angle: 90, Magnitude: 8}}
	}
	eng := newTestEngine(e)

	v := registry.NewVessel(registry.Position{Lat: 0, Lon: 0}, registry.BoatTypeBasic0, 0)
	v.Stopped = false
	v.MovingToSea = false
	v.DesiredCourse = 90
	v.Heading = 90

	last := 0.0
	now := time.Unix(0, 0)
	for i := 0; i < 50; i++ {
		eng.Advance(v, now)
		if v.DistanceTravelled < last {
			t.Fatalf("tick %d: distance decreased: %v -> %v", i, last, v.DistanceTravelled)
		}
		last = v.DistanceTravelled
	}
}
