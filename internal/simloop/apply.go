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

package simloop

import (
	"github.com/ls4096/sailnavsim-core/internal/command"
	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// applyCommand mutates the registry or a single vessel per §4.6 step 5.
// Commands naming an unknown vessel are silently dropped, per §4.2/§7
// NotFound semantics. Callers must hold the registry write lock.
func (l *Loop) applyCommand(cmd command.Command) {
	switch cmd.Action {
	case command.AddBoat, command.AddBoatWithGroup:
		l.applyAdd(cmd)
		return
	case command.RemoveBoat:
		l.Registry.Remove(cmd.Target)
		return
	}

	v, ok := l.Registry.Get(cmd.Target)
	if !ok {
		return
	}

	switch cmd.Action {
	case command.Stop:
		v.Stopped = true
		v.WaterVelocity = registry.Vector{}
		v.GroundVelocity = registry.Vector{}
	case command.Start:
		v.Stopped = false
	case command.CourseTrue:
		v.DesiredCourse = float64(cmd.Ints[0])
		v.CourseMagnetic = false
	case command.CourseMag:
		v.DesiredCourse = float64(cmd.Ints[0])
		v.CourseMagnetic = true
	case command.SailArea:
		v.SailArea = float64(cmd.Ints[0]) / 100
		v.SailsDown = v.SailArea <= 0
	}
}

func (l *Loop) applyAdd(cmd command.Command) {
	pos := registry.Position{Lat: cmd.Floats[0], Lon: cmd.Floats[1]}
	boatType := registry.BoatType(cmd.Ints[0])
	flags := registry.BoatFlags(cmd.Ints[1])

	v := registry.NewVessel(pos, boatType, flags)

	group, altName := "", ""
	if cmd.Action == command.AddBoatWithGroup {
		group, altName = cmd.Strings[0], cmd.Strings[1]
	}

	if status := l.Registry.Add(v, cmd.Target, group, altName); status != registry.AddOk {
		l.Log.Warnf("simloop: add %s: %v", cmd.Target, status)
	}
}
