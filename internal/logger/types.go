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

// Package logger implements C9 Logger (§4.7): a single-consumer queue that
// drains LogBatch values to an append-only CSV sink per boat and to the
// relational/mirror sinks in internal/logger/persist.
package logger

import "time"

// BoatState is the tri-state recorded per log entry.
type BoatState int

const (
	StateSailing BoatState = iota
	StateStopped
	StateSailsDown
)

// LocationState records whether the vessel's last position was on water.
type LocationState int

const (
	LocationWater LocationState = iota
	LocationLand
)

// WeatherSnapshot is the full environmental reading bound to one LogEntry,
// matching the "full weather snapshot" plus optional ocean/wave/ice/salinity
// fields described in §3's LogBatch entry and the §6 CSV column list.
type WeatherSnapshot struct {
	WindDirDeg float64
	WindMagMS  float64

	CurrentValid  bool
	CurrentDirDeg float64
	CurrentMagMS  float64

	WaterTempValid bool
	WaterTempC     float64

	AirTempC     float64
	DewpointC    float64
	PressureHPa  float64
	CloudPct     float64
	VisibilityKm float64
	PrecipRateMM float64
	PrecipCond   int

	SalinityValid bool
	SalinityPSU   float64

	IceValid bool
	IcePct   float64

	WaveValid      bool
	WaveHeightM    float64
}

// LogEntry is one per-vessel row emitted during a logging tick.
type LogEntry struct {
	Time     time.Time
	BoatName string

	Lat, Lon float64

	CourseDeg float64
	SpeedMS   float64
	TrackDeg  float64
	GroundMS  float64

	MagDecDeg float64
	Distance  float64
	DamagePct float64
	GustMS    float64

	Weather WeatherSnapshot

	State    BoatState
	LocState LocationState

	// ReportVisible is false when the vessel's celestial-nav flag hides its
	// true position from observers; the CSV "invisibleFlag" column is its
	// logical negation.
	ReportVisible bool
}

// CelestialSightEntry is the optional per-vessel sight side record.
type CelestialSightEntry struct {
	Time     time.Time
	BoatName string
	Object   string
	Azimuth  float64
	Altitude float64
}

// LogBatch is one tick's worth of log entries and celestial sights, handed
// from SimulationLoop to Logger as a single unit (§3, §4.6 step 4).
type LogBatch struct {
	Entries []LogEntry
	Sights  []CelestialSightEntry
}
