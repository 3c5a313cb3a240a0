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
	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/geoutils"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

const (
	headingWaterStepMetres = 10
	headingWaterMaxMetres  = 110
)

// isHeadingTowardWater implements §4.3.4: starting from pos, sample at 10m
// steps along bearingDeg up to 110m, returning true as soon as a sample
// lands on water.
func isHeadingTowardWater(e env.Env, pos registry.Position, bearingDeg float64) bool {
	for d := headingWaterStepMetres; d <= headingWaterMaxMetres; d += headingWaterStepMetres {
		sample := geoutils.Offset(pos, bearingDeg, float64(d))
		if e.IsWater(sample) {
			return true
		}
	}
	return false
}
