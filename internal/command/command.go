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

// Package command implements CommandIngress (§4.2 C4): a line lexer with a
// fixed per-keyword signature, and a FIFO queue the SimulationLoop drains
// between ticks.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// Action tags the kind of a parsed Command.
type Action int

const (
	Stop Action = iota
	Start
	CourseTrue
	CourseMag
	SailArea
	AddBoat
	AddBoatWithGroup
	RemoveBoat
)

// Command is one parsed, validated line from the FIFO or from a `boatcmd`
// network request (§3 "CommandQueue entry").
type Command struct {
	Target string
	Action Action

	Ints    []int64
	Floats  []float64
	Strings []string
}

// ParseLine lexes and validates one comma-separated command line per the
// §4.2 signature table. A malformed or out-of-range line returns an error
// and no Command; callers discard the line with a diagnostic (§7 ParseError).
func ParseLine(line string) (Command, error) {
	tokens := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(tokens) < 2 {
		return Command{}, fmt.Errorf("command: need at least target,action: %q", line)
	}
	target := tokens[0]
	if target == "" {
		return Command{}, fmt.Errorf("command: empty target: %q", line)
	}
	keyword := tokens[1]
	values := tokens[2:]

	switch keyword {
	case "stop":
		return requireArgs(target, Stop, values, 0)
	case "start":
		return requireArgs(target, Start, values, 0)
	case "course":
		return parseCourse(target, CourseTrue, values)
	case "course_m":
		return parseCourse(target, CourseMag, values)
	case "sail_area":
		return parseSailArea(target, values)
	case "add":
		return parseAdd(target, values, false)
	case "add_g":
		return parseAdd(target, values, true)
	case "remove":
		return requireArgs(target, RemoveBoat, values, 0)
	default:
		return Command{}, fmt.Errorf("command: unknown keyword %q", keyword)
	}
}

func requireArgs(target string, action Action, values []string, n int) (Command, error) {
	if len(values) != n {
		return Command{}, fmt.Errorf("command: %v expects %d args, got %d", action, n, len(values))
	}
	return Command{Target: target, Action: action}, nil
}

func parseCourse(target string, action Action, values []string) (Command, error) {
	if len(values) != 1 {
		return Command{}, fmt.Errorf("command: course expects 1 arg, got %d", len(values))
	}
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("command: course value: %w", err)
	}
	if v < 0 || v > 360 {
		return Command{}, fmt.Errorf("command: course out of range [0,360]: %d", v)
	}
	return Command{Target: target, Action: action, Ints: []int64{v}}, nil
}

func parseSailArea(target string, values []string) (Command, error) {
	if len(values) != 1 {
		return Command{}, fmt.Errorf("command: sail_area expects 1 arg, got %d", len(values))
	}
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("command: sail_area value: %w", err)
	}
	if v < 0 || v > 100 {
		return Command{}, fmt.Errorf("command: sail_area out of range [0,100]: %d", v)
	}
	return Command{Target: target, Action: SailArea, Ints: []int64{v}}, nil
}

func parseAdd(target string, values []string, withGroup bool) (Command, error) {
	want := 4
	if withGroup {
		want = 6
	}
	if len(values) != want {
		return Command{}, fmt.Errorf("command: add expects %d args, got %d", want, len(values))
	}

	lat, err := strconv.ParseFloat(values[0], 64)
	if err != nil {
		return Command{}, fmt.Errorf("command: lat: %w", err)
	}
	if lat <= -90 || lat >= 90 {
		return Command{}, fmt.Errorf("command: lat out of range (-90,90): %v", lat)
	}
	lon, err := strconv.ParseFloat(values[1], 64)
	if err != nil {
		return Command{}, fmt.Errorf("command: lon: %w", err)
	}
	if lon < -180 || lon > 180 {
		return Command{}, fmt.Errorf("command: lon out of range [-180,180]: %v", lon)
	}
	boatType, err := strconv.ParseInt(values[2], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("command: boatType: %w", err)
	}
	if boatType < 0 || boatType > int64(registry.BoatTypeAdvanced1) {
		return Command{}, fmt.Errorf("command: boatType out of range [0,%d]: %d", registry.BoatTypeAdvanced1, boatType)
	}
	flags, err := strconv.ParseInt(values[3], 10, 64)
	if err != nil {
		return Command{}, fmt.Errorf("command: flags: %w", err)
	}
	if flags < 0 || flags > 0x3f {
		return Command{}, fmt.Errorf("command: flags out of range [0,0x3f]: %d", flags)
	}

	cmd := Command{
		Target: target,
		Action: AddBoat,
		Floats: []float64{lat, lon},
		Ints:   []int64{boatType, flags},
	}
	if withGroup {
		group := values[4]
		altName := values[5]
		if group == "" {
			return Command{}, fmt.Errorf("command: add_g requires a non-empty group")
		}
		cmd.Action = AddBoatWithGroup
		cmd.Strings = []string{group, altName}
	}
	return cmd, nil
}

// Serialize renders cmd back to its canonical comma-separated line form, the
// inverse of ParseLine (used by tests to check round-tripping, §8 invariant 10).
func (c Command) Serialize() string {
	var parts []string
	parts = append(parts, c.Target)

	switch c.Action {
	case Stop:
		parts = append(parts, "stop")
	case Start:
		parts = append(parts, "start")
	case CourseTrue:
		parts = append(parts, "course", strconv.FormatInt(c.Ints[0], 10))
	case CourseMag:
		parts = append(parts, "course_m", strconv.FormatInt(c.Ints[0], 10))
	case SailArea:
		parts = append(parts, "sail_area", strconv.FormatInt(c.Ints[0], 10))
	case AddBoat, AddBoatWithGroup:
		if c.Action == AddBoat {
			parts = append(parts, "add")
		} else {
			parts = append(parts, "add_g")
		}
		parts = append(parts,
			strconv.FormatFloat(c.Floats[0], 'g', -1, 64),
			strconv.FormatFloat(c.Floats[1], 'g', -1, 64),
			strconv.FormatInt(c.Ints[0], 10),
			strconv.FormatInt(c.Ints[1], 10),
		)
		if c.Action == AddBoatWithGroup {
			parts = append(parts, c.Strings[0], c.Strings[1])
		}
	case RemoveBoat:
		parts = append(parts, "remove")
	}

	return strings.Join(parts, ",")
}
