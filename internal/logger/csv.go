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

package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CSVSink appends one line per LogEntry to "<dir>/<boatName>.csv" and one
// line per CelestialSightEntry to "<dir>/<boatName>-cs.csv", per §4.7 step 3.
// Each per-boat file keeps its own buffered writer, grounded on the
// teacher's append-only buffered-writer sink (internal/sinks/sbatch_file_sink.go).
type CSVSink struct {
	dir string

	mu      sync.Mutex
	boats   map[string]*bufio.Writer
	sights  map[string]*bufio.Writer
	handles []*os.File
}

// NewCSVSink returns a sink rooted at dir. dir must already exist.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{
		dir:    dir,
		boats:  make(map[string]*bufio.Writer),
		sights: make(map[string]*bufio.Writer),
	}
}

func (c *CSVSink) writerFor(set map[string]*bufio.Writer, name, suffix string) (*bufio.Writer, error) {
	if w, ok := set[name]; ok {
		return w, nil
	}
	f, err := os.OpenFile(filepath.Join(c.dir, name+suffix), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriterSize(f, 64*1024)
	set[name] = w
	c.handles = append(c.handles, f)
	return w, nil
}

// WriteLogBatch appends every entry to its boat's CSV file.
func (c *CSVSink) WriteLogBatch(entries []LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range entries {
		w, err := c.writerFor(c.boats, e.BoatName, ".csv")
		if err != nil {
			return fmt.Errorf("csv sink: open %s.csv: %w", e.BoatName, err)
		}
		fmt.Fprintln(w, formatLogEntry(e))
	}
	for _, w := range c.boats {
		w.Flush()
	}
	return nil
}

// WriteSightBatch appends every sight to its boat's "-cs.csv" file.
func (c *CSVSink) WriteSightBatch(sights []CelestialSightEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range sights {
		w, err := c.writerFor(c.sights, s.BoatName, "-cs.csv")
		if err != nil {
			return fmt.Errorf("csv sink: open %s-cs.csv: %w", s.BoatName, err)
		}
		fmt.Fprintln(w, formatSightEntry(s))
	}
	for _, w := range c.sights {
		w.Flush()
	}
	return nil
}

// Close flushes and closes every open file handle.
func (c *CSVSink) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range c.boats {
		w.Flush()
	}
	for _, w := range c.sights {
		w.Flush()
	}
	var firstErr error
	for _, f := range c.handles {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func optFloat(valid bool, v float64, prec int) string {
	if !valid {
		return ""
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func stateString(s BoatState) string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateSailsDown:
		return "sailsdown"
	default:
		return "sailing"
	}
}

func locStateString(l LocationState) string {
	if l == LocationLand {
		return "land"
	}
	return "water"
}

// formatLogEntry renders e per the §6 CSV column layout.
func formatLogEntry(e LogEntry) string {
	w := e.Weather
	invisible := 0
	if !e.ReportVisible {
		invisible = 1
	}

	return fmt.Sprintf(
		"%d,%.6f,%.6f,%.1f,%.3f,%.1f,%.3f,%.1f,%.3f,%s,%s,%s,%.1f,%.1f,%.1f,%.0f,%.0f,%.2f,%d,%s,%s,%s,%s,%.1f,%.3f,%.3f,%s,%.3f,%d",
		e.Time.Unix(),
		e.Lat, e.Lon,
		e.CourseDeg, e.SpeedMS,
		e.TrackDeg, e.GroundMS,
		w.WindDirDeg, w.WindMagMS,
		optFloat(w.CurrentValid, w.CurrentDirDeg, 1),
		optFloat(w.CurrentValid, w.CurrentMagMS, 3),
		optFloat(w.WaterTempValid, w.WaterTempC, 1),
		w.AirTempC, w.DewpointC, w.PressureHPa,
		w.CloudPct, w.VisibilityKm, w.PrecipRateMM, w.PrecipCond,
		stateString(e.State), locStateString(e.LocState),
		optFloat(w.SalinityValid, w.SalinityPSU, 3),
		optFloat(w.IceValid, w.IcePct, 0),
		e.Distance, e.DamagePct, e.GustMS,
		optFloat(w.WaveValid, w.WaveHeightM, 2),
		e.MagDecDeg, invisible,
	)
}

func formatSightEntry(s CelestialSightEntry) string {
	return fmt.Sprintf("%d,%s,%.1f,%.1f", s.Time.Unix(), s.Object, s.Azimuth, s.Altitude)
}
