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

package bootstrap

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// InitialBoatRecord is one row of the CSV initial-boat file (§4.9). The CSV
// file is the only initial-boat source; the relational sink is not read at
// startup.
type InitialBoatRecord struct {
	Name    string
	Lat     float64
	Lon     float64
	Type    registry.BoatType
	Flags   registry.BoatFlags
	Group   string
	AltName string
}

// LoadInitialBoatsCSV reads comma-separated rows of
// "name,lat,lon,type,flags,group,altname" (group/altname may be empty) from
// path. Blank lines and lines starting with '#' are skipped.
func LoadInitialBoatsCSV(path string) ([]InitialBoatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: initial boats: %w", err)
	}
	defer f.Close()

	var records []InitialBoatRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := parseInitialBoatLine(line)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: initial boats: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bootstrap: initial boats: %w", err)
	}
	return records, nil
}

func parseInitialBoatLine(line string) (InitialBoatRecord, error) {
	f := strings.Split(line, ",")
	if len(f) < 5 {
		return InitialBoatRecord{}, fmt.Errorf("want at least 5 fields, got %d: %q", len(f), line)
	}
	lat, err := strconv.ParseFloat(f[1], 64)
	if err != nil {
		return InitialBoatRecord{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return InitialBoatRecord{}, fmt.Errorf("lon: %w", err)
	}
	boatType, err := strconv.Atoi(f[3])
	if err != nil {
		return InitialBoatRecord{}, fmt.Errorf("type: %w", err)
	}
	flags, err := strconv.Atoi(f[4])
	if err != nil {
		return InitialBoatRecord{}, fmt.Errorf("flags: %w", err)
	}

	rec := InitialBoatRecord{
		Name: f[0],
		Lat:  lat,
		Lon:  lon,
		Type: registry.BoatType(boatType),
		Flags: registry.BoatFlags(flags),
	}
	if len(f) > 5 {
		rec.Group = f[5]
	}
	if len(f) > 6 {
		rec.AltName = f[6]
	}
	return rec, nil
}

// resumeState is the subset of a boat's most recent CSV log row §4.9 says
// to resume from: "position/heading/speed/state".
type resumeState struct {
	Lat, Lon          float64
	Heading           float64
	WaterSpeed        float64
	GroundBearing     float64
	GroundSpeed       float64
	Distance          float64
	Damage            float64
	Stopped, SailsDown bool
}

// resumeFromLog reads the last line of <logDir>/<name>.csv, in the column
// order internal/logger.formatLogEntry writes, and returns the fields a
// freshly ingested vessel resumes from. Returns ok=false if the file does
// not exist or has no rows (a genuinely new boat).
func resumeFromLog(logDir, name string) (resumeState, bool) {
	path := filepath.Join(logDir, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return resumeState{}, false
	}
	defer f.Close()

	var last string
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	if last == "" {
		return resumeState{}, false
	}

	f2 := strings.Split(last, ",")
	if len(f2) < 25 {
		return resumeState{}, false
	}

	get := func(i int) float64 {
		v, _ := strconv.ParseFloat(f2[i], 64)
		return v
	}

	return resumeState{
		Lat:           get(1),
		Lon:           get(2),
		Heading:       get(3),
		WaterSpeed:    get(4),
		GroundBearing: get(5),
		GroundSpeed:   get(6),
		Distance:      get(23),
		Damage:        get(24),
		Stopped:       f2[19] == "stopped",
		SailsDown:     f2[19] == "sailsdown",
	}, true
}

// IngestInitialBoats materializes a Vessel for every record, indexing group
// membership and alt-name, and resumes position/heading/speed/state from
// the boat's most recent CSV log row when one exists (§4.9).
func (a *App) IngestInitialBoats(records []InitialBoatRecord, logDir string) {
	for _, rec := range records {
		pos := registry.Position{Lat: rec.Lat, Lon: rec.Lon}
		v := registry.NewVessel(pos, rec.Type, rec.Flags)

		if rs, ok := resumeFromLog(logDir, rec.Name); ok {
			v.Pos = registry.Position{Lat: rs.Lat, Lon: rs.Lon}
			v.Heading = rs.Heading
			v.WaterVelocity = registry.Vector{Bearing: rs.Heading, Magnitude: rs.WaterSpeed}
			v.GroundVelocity = registry.Vector{Bearing: rs.GroundBearing, Magnitude: rs.GroundSpeed}
			v.DistanceTravelled = rs.Distance
			v.Damage = rs.Damage
			v.Stopped = rs.Stopped
			v.SailsDown = rs.SailsDown
			v.MovingToSea = false
			v.FirstDesiredCourseImmediate = false
		}

		if status := a.Registry.Add(v, rec.Name, rec.Group, rec.AltName); status != registry.AddOk {
			a.Log.Warnf("bootstrap: ingest %s: %v", rec.Name, status)
		}
	}
}
