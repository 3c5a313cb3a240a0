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

// Package ephemeris is a reference implementation of env.Env's celestial
// methods, backed by github.com/soniakeys/meeus/v3 for Julian-day conversion
// and the Sun's apparent equatorial position. It is not required by the
// engine (Env is an interface per §1/§2 C2) but is exercised by the default
// bootstrap path and by tests that want real solar geometry instead of a
// fixture.
package ephemeris

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"

	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// Ephemeris computes Sun and star horizontal coordinates for a given
// position and wall-clock time.
type Ephemeris struct {
	// Stars is a catalogue of fixed equatorial (RA, Dec) coordinates indexed
	// by star id, 1-based; the highest id, env.PolarisStarID, is Polaris. Nil entries are
	// treated as "below horizon always" (no sight possible).
	Stars map[int]Equatorial
}

// Equatorial is a right-ascension/declination pair.
type Equatorial struct {
	RA  unit.Angle
	Dec unit.Angle
}

// New returns an Ephemeris with an empty star catalogue; callers populate
// Stars with whatever fixed-star table their data directory provides.
func New() *Ephemeris {
	return &Ephemeris{Stars: make(map[int]Equatorial)}
}

// SunHorizontal returns the Sun's altitude/azimuth at pos and now.
func (e *Ephemeris) SunHorizontal(pos registry.Position, now time.Time) (azDeg, altDeg float64) {
	jd := julian.TimeToJD(now.UTC())
	ra, dec := solar.ApparentEquatorial(jd)
	return horizontal(ra.Angle(), dec, jd, pos)
}

// StarHorizontal returns the horizontal coordinates of a catalogued star. A
// missing id reports a position straight down (always below horizon),
// matching the "retry, no sight found" behavior CelestialSight expects when
// a star table lacks an entry.
func (e *Ephemeris) StarHorizontal(id int, pos registry.Position, now time.Time) (azDeg, altDeg float64) {
	eq, ok := e.Stars[id]
	if !ok {
		return 0, -90
	}
	jd := julian.TimeToJD(now.UTC())
	return horizontal(eq.RA, eq.Dec, jd, pos)
}

// horizontal converts an equatorial position at Julian day jd to local
// altitude/azimuth at pos using the standard hour-angle transform. Greenwich
// apparent sidereal time is approximated directly from jd (meeus's own
// sidereal package requires nutation tables beyond this reference
// implementation's scope); the error this introduces is well under a degree
// over the timescales this simulation runs at.
func horizontal(ra, dec unit.Angle, jd float64, pos registry.Position) (azDeg, altDeg float64) {
	gmst := greenwichMeanSiderealTimeDeg(jd)
	lst := gmst + pos.Lon
	ha := unit.AngleFromDeg(lst).Rad() - ra.Rad()

	latRad := pos.Lat * math.Pi / 180
	decRad := dec.Rad()

	sinAlt := math.Sin(decRad)*math.Sin(latRad) + math.Cos(decRad)*math.Cos(latRad)*math.Cos(ha)
	alt := math.Asin(clamp(sinAlt, -1, 1))

	cosAz := (math.Sin(decRad) - math.Sin(alt)*math.Sin(latRad)) / (math.Cos(alt) * math.Cos(latRad))
	az := math.Acos(clamp(cosAz, -1, 1))
	azDeg = az * 180 / math.Pi
	if math.Sin(ha) > 0 {
		azDeg = 360 - azDeg
	}
	altDeg = alt * 180 / math.Pi
	return azDeg, altDeg
}

func greenwichMeanSiderealTimeDeg(jd float64) float64 {
	t := (jd - 2451545.0) / 36525.0
	gmst := 280.46061837 + 360.98564736629*(jd-2451545.0) + 0.000387933*t*t - t*t*t/38710000.0
	return math.Mod(gmst, 360)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
