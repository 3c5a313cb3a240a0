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

package netserver

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/command"
	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/registry"
	"github.com/ls4096/sailnavsim-core/internal/telemetry"
)

const maxLineBytes = 1024

// handleConn owns conn end-to-end: it reads into a 1 KiB buffer, splits on
// newlines, and dispatches each line per §4.8.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, maxLineBytes)
	var pending []byte

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			if !s.drainLines(conn, &pending) {
				return
			}
		}
		if err != nil {
			s.Counters.ReadFail.Add(1)
			return
		}
		s.Counters.Read.Add(1)
	}
}

// drainLines processes every complete newline-terminated line currently in
// *pending, returning false if the connection should be closed (a
// too-long line with no newline in sight).
func (s *Server) drainLines(conn net.Conn, pending *[]byte) bool {
	for {
		idx := bytes.IndexByte(*pending, '\n')
		if idx < 0 {
			if len(*pending) > maxLineBytes {
				s.Counters.DataTooLong.Add(1)
				conn.Write([]byte("error\n"))
				return false
			}
			return true
		}

		line := strings.TrimRight(string((*pending)[:idx]), "\r")
		*pending = (*pending)[idx+1:]

		s.Counters.Message.Add(1)
		resp := s.dispatch(line)
		if resp == "error\n" {
			s.Counters.MessageFail.Add(1)
		}
		if _, err := conn.Write([]byte(resp)); err != nil {
			return false
		}
	}
}

// dispatch looks up the request keyword and produces a single response
// (§4.8). boatgroupmembers' "ok" path is the sole multi-line response.
func (s *Server) dispatch(line string) string {
	tokens := strings.Split(line, ",")
	if len(tokens) == 0 {
		s.Counters.Invalid.Add(1)
		return "error\n"
	}
	keyword := tokens[0]
	args := tokens[1:]

	label := keyword
	defer func() { telemetry.NetRequestsTotal.WithLabelValues(label).Inc() }()

	switch keyword {
	case "bd_nc":
		s.Counters.BdNc.Add(1)
		return s.handleBoatData(args, true)
	case "wind":
		s.Counters.Wind.Add(1)
		return s.handleWind(args, false, false)
	case "wind_c":
		s.Counters.WindC.Add(1)
		return s.handleWind(args, false, true)
	case "wind_gust":
		s.Counters.WindGust.Add(1)
		return s.handleWind(args, true, false)
	case "wind_gust_c":
		s.Counters.WindGustC.Add(1)
		return s.handleWind(args, true, true)
	case "ocean_current":
		s.Counters.OceanCurrent.Add(1)
		return s.handleOceanCurrent(args)
	case "sea_ice":
		s.Counters.SeaIce.Add(1)
		return s.handleSeaIce(args)
	case "wave_height":
		s.Counters.WaveHeight.Add(1)
		return s.handleWaveHeight(args)
	case "bd":
		s.Counters.Bd.Add(1)
		return s.handleBoatData(args, false)
	case "boatcmd":
		s.Counters.BoatCmd.Add(1)
		return s.handleBoatCmd(args)
	case "boatgroupmembers":
		s.Counters.BoatGroupMembers.Add(1)
		return s.handleGroupMembers(args)
	case "sys_req_counts":
		s.Counters.SysReqCounts.Add(1)
		return s.Counters.CSV() + "\n"
	default:
		label = "invalid"
		s.Counters.Invalid.Add(1)
		return "error\n"
	}
}

func parseLatLon(args []string) (registry.Position, bool) {
	if len(args) != 2 {
		return registry.Position{}, false
	}
	lat, err1 := strconv.ParseFloat(args[0], 64)
	lon, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return registry.Position{}, false
	}
	return registry.Position{Lat: lat, Lon: lon}, true
}

func (s *Server) handleWind(args []string, gust, withCurrent bool) string {
	pos, ok := parseLatLon(args)
	if !ok {
		return "error\n"
	}

	now := time.Now()
	weather := s.Env.Weather(pos, now)
	w := weather.Wind
	if gust {
		w = weather.Gust
	}

	if withCurrent {
		ocean := s.Env.Ocean(pos, now)
		if ocean.Valid {
			w = env.AddWindAndCurrent(w, ocean.Current)
		}
	}

	keyword := "wind"
	if gust {
		keyword = "wind_gust"
	}
	return fmt.Sprintf("%s,%s,%s,%.1f,%.3f\n", keyword, args[0], args[1], w.Angle, w.Magnitude)
}

func (s *Server) handleOceanCurrent(args []string) string {
	pos, ok := parseLatLon(args)
	if !ok {
		return "error\n"
	}
	ocean := s.Env.Ocean(pos, time.Now())
	if !ocean.Valid {
		return fmt.Sprintf("ocean_current,%s,%s,-999.0,-999.0\n", args[0], args[1])
	}
	return fmt.Sprintf("ocean_current,%s,%s,%.1f,%.3f\n", args[0], args[1], ocean.Current.Bearing, ocean.Current.Magnitude)
}

func (s *Server) handleSeaIce(args []string) string {
	pos, ok := parseLatLon(args)
	if !ok {
		return "error\n"
	}
	ice := s.Env.SeaIce(pos, time.Now())
	if !ice.Valid {
		return fmt.Sprintf("sea_ice,%s,%s,-999.0\n", args[0], args[1])
	}
	return fmt.Sprintf("sea_ice,%s,%s,%.0f\n", args[0], args[1], ice.PctCover)
}

func (s *Server) handleWaveHeight(args []string) string {
	pos, ok := parseLatLon(args)
	if !ok {
		return "error\n"
	}
	wave := s.Env.Wave(pos, time.Now())
	if !wave.Valid {
		return fmt.Sprintf("wave_height,%s,%s,-999.0\n", args[0], args[1])
	}
	return fmt.Sprintf("wave_height,%s,%s,%.2f\n", args[0], args[1], wave.HeightMetres)
}

// handleBoatData implements bd/bd_nc: the _nc variant masks celestial-nav
// boats as absent.
func (s *Server) handleBoatData(args []string, maskCelestialNav bool) string {
	if len(args) != 1 || args[0] == "" {
		return "error\n"
	}
	name := args[0]

	s.Registry.RdLock()
	defer s.Registry.RdUnlock()

	v, ok := s.Registry.Get(name)
	if !ok || (maskCelestialNav && v.Flags.Has(registry.FlagCelestialNav)) {
		return fmt.Sprintf("bd,%s,noboat\n", name)
	}

	return fmt.Sprintf("bd,%s,ok,%.6f,%.6f,%.1f,%.3f,%.1f,%.3f,%.3f,%.1f\n",
		name, v.Pos.Lat, v.Pos.Lon, v.Heading, v.WaterVelocity.Magnitude,
		v.GroundVelocity.Bearing, v.GroundVelocity.Magnitude, v.Leeway, v.HeelAngle)
}

// handleBoatCmd forwards the remainder of the line verbatim into
// CommandIngress parsing (§4.8).
func (s *Server) handleBoatCmd(args []string) string {
	line := strings.Join(args, ",")
	cmd, err := command.ParseLine(line)
	if err != nil {
		return "error\n"
	}
	s.Commands.Push(cmd)
	return "ok\n"
}

// handleGroupMembers implements §4.1's response shape as surfaced over the
// wire: unknown boat -> "noboat", boat present but ungrouped -> "nogroup",
// boat present with the hidden-in-group flag -> "ok" plus a single masked
// member line, otherwise "ok" followed by the full member list.
func (s *Server) handleGroupMembers(args []string) string {
	if len(args) != 1 || args[0] == "" {
		return "error\n"
	}
	name := args[0]

	s.Registry.RdLock()
	defer s.Registry.RdUnlock()

	entry, ok := s.Registry.GetEntry(name)
	if !ok {
		return "noboat\n"
	}
	if entry.Group == "" {
		return "nogroup\n"
	}
	if entry.Vessel.Flags.Has(registry.FlagHiddenInGroup) {
		return fmt.Sprintf("ok\n%s,?\n\n", entry.Name)
	}

	body, ok := s.Registry.GroupMembershipResponse(name)
	if !ok {
		return "nogroup\n"
	}
	return fmt.Sprintf("ok\n%s\n\n", body)
}
