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

// Package registry owns the concurrent boat registry: the name-indexed
// vessel map, its insertion-ordered iteration, and the group index.
package registry

// BoatType tags the hull/response model family a Vessel belongs to.
type BoatType int

const (
	BoatTypeBasic0 BoatType = iota
	BoatTypeBasic1
	BoatTypeAdvanced0
	BoatTypeAdvanced1
)

// BoatFlags is the bitfield described in §3 of the spec.
type BoatFlags uint32

const (
	FlagTakesDamage BoatFlags = 1 << iota
	FlagWaveSpeedEffect
	FlagCelestialNav
	FlagCelestialWaveEffect
	FlagDamageUsesApparentWind
	FlagHiddenInGroup

	FlagMask = FlagTakesDamage | FlagWaveSpeedEffect | FlagCelestialNav |
		FlagCelestialWaveEffect | FlagDamageUsesApparentWind | FlagHiddenInGroup
)

// Has reports whether f includes every bit in mask.
func (f BoatFlags) Has(mask BoatFlags) bool { return f&mask == mask }

// Vector is a bearing/magnitude pair. Bearing is a true compass bearing in
// [0,360). Magnitude is always >= 0 except transiently inside physics helpers
// that reflect a negative magnitude into a 180-degree rotated bearing.
type Vector struct {
	Bearing   float64
	Magnitude float64
}

// Position is a normalized geographic coordinate.
type Position struct {
	Lat float64 // [-90, 90]
	Lon float64 // [-180, 180)
}

// Vessel is the mutable per-boat simulation state owned by the registry.
// Only the SimulationLoop thread mutates a Vessel's fields, and only while
// holding the registry's exclusive lock (see internal/simloop).
type Vessel struct {
	Pos Position

	WaterVelocity  Vector
	GroundVelocity Vector

	// DesiredCourse is stored either as a true or magnetic bearing in
	// [0,360] depending on CourseMagnetic.
	DesiredCourse float64
	CourseMagnetic bool

	Heading float64 // current true heading, [0,360)

	DistanceTravelled float64 // metres, monotone non-decreasing while moving
	Damage            float64 // percent, [0,100]
	Leeway            float64 // m/s, signed

	HeelAngle float64 // degrees, advanced hulls only
	SailArea  float64 // fraction in [0,1], advanced hulls only

	Type  BoatType
	Flags BoatFlags

	StartingFromLandCount int // [0,10]

	Stopped                     bool
	SailsDown                   bool
	MovingToSea                 bool
	FirstDesiredCourseImmediate bool
}

// NewVessel constructs a Vessel at pos with the given type and flags, in the
// "stopped, moving to sea" state a freshly added boat starts in.
func NewVessel(pos Position, boatType BoatType, flags BoatFlags) *Vessel {
	return &Vessel{
		Pos:                         normalizePosition(pos),
		Type:                        boatType,
		Flags:                       flags & FlagMask,
		Stopped:                     true,
		MovingToSea:                 true,
		FirstDesiredCourseImmediate: true,
	}
}

func normalizePosition(p Position) Position {
	if p.Lat > 90 {
		p.Lat = 90
	} else if p.Lat < -90 {
		p.Lat = -90
	}
	lon := p.Lon
	for lon >= 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	p.Lon = lon
	return p
}
