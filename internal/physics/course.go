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

import "github.com/ls4096/sailnavsim-core/internal/geoutils"

// desiredCourseTrue resolves the stored desired course to a true bearing,
// applying magnetic declination when the vessel's course is stored as
// magnetic (§4.3.2).
func desiredCourseTrue(stored float64, magnetic bool, magdec float64) float64 {
	if !magnetic {
		return stored
	}
	return geoutils.NormalizeBearing(stored + magdec)
}

// updateCourse advances heading one tick towards desiredTrue at rate
// degrees/second (one tick == one second), per §4.3.2. On an exact 180
// degree difference the turn direction is a coin flip.
func updateCourse(heading, desiredTrue, rate float64, coinFlip func() bool) float64 {
	d := geoutils.CompassDiff(heading, desiredTrue)

	switch {
	case absF(d) <= rate:
		heading = desiredTrue
	case d < 0:
		heading -= rate
	case d > 0 && d < 180:
		heading += rate
	default:
		// d == 180: an exact reversal. Direction is a coin flip.
		if coinFlip() {
			heading += rate
		} else {
			heading -= rate
		}
	}

	return geoutils.NormalizeBearing(heading)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
