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

// Package persist implements C9's relational sink (transactional, §4.7 step
// 1-2) and the optional Redis fast-path mirror named in the expanded spec's
// domain stack.
package persist

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ls4096/sailnavsim-core/internal/logger"
)

// RelationalSink is the transactional sink described in §4.7 steps 1-2: a
// BoatLog insert per log entry and a CelestialSight insert per sight, each
// batch committed in its own transaction with rollback on failure. Backed by
// modernc.org/sqlite, a pure-Go database/sql driver requiring no cgo.
type RelationalSink struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at path and ensures the
// BoatLog/CelestialSight tables described in §6 exist.
func Open(path string) (*RelationalSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite only tolerates a single writer

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &RelationalSink{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS BoatLog (
	boatName TEXT NOT NULL,
	unixTime INTEGER NOT NULL,
	lat REAL, lon REAL,
	courseDeg REAL, speedMs REAL,
	trackDeg REAL, groundMs REAL,
	windDirDeg REAL, windMagMs REAL,
	currDirDeg REAL, currMagMs REAL, currValid INTEGER,
	waterTempC REAL, waterTempValid INTEGER,
	airTempC REAL, dewpointC REAL, pressureHpa REAL,
	cloudPct REAL, visibilityKm REAL, precipRateMm REAL, precipCond INTEGER,
	state INTEGER, locState INTEGER,
	salinityPsu REAL, salinityValid INTEGER,
	icePct REAL, iceValid INTEGER,
	distanceM REAL, damagePct REAL, gustMs REAL,
	waveHeightM REAL, waveValid INTEGER,
	magDecDeg REAL, invisible INTEGER
);
CREATE TABLE IF NOT EXISTS CelestialSight (
	boatName TEXT NOT NULL,
	unixTime INTEGER NOT NULL,
	object TEXT NOT NULL,
	azimuthDeg REAL,
	altitudeDeg REAL
);
`)
	return err
}

// WriteLogBatch implements logger.Sink.
func (s *RelationalSink) WriteLogBatch(entries []logger.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return classify(err)
	}

	stmt, err := tx.Prepare(`INSERT INTO BoatLog (
		boatName, unixTime, lat, lon, courseDeg, speedMs, trackDeg, groundMs,
		windDirDeg, windMagMs, currDirDeg, currMagMs, currValid,
		waterTempC, waterTempValid, airTempC, dewpointC, pressureHpa,
		cloudPct, visibilityKm, precipRateMm, precipCond, state, locState,
		salinityPsu, salinityValid, icePct, iceValid,
		distanceM, damagePct, gustMs, waveHeightM, waveValid, magDecDeg, invisible
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return classify(err)
	}
	defer stmt.Close()

	for _, e := range entries {
		w := e.Weather
		_, err := stmt.Exec(
			e.BoatName, e.Time.Unix(), e.Lat, e.Lon, e.CourseDeg, e.SpeedMS, e.TrackDeg, e.GroundMS,
			w.WindDirDeg, w.WindMagMS, w.CurrentDirDeg, w.CurrentMagMS, boolInt(w.CurrentValid),
			w.WaterTempC, boolInt(w.WaterTempValid), w.AirTempC, w.DewpointC, w.PressureHPa,
			w.CloudPct, w.VisibilityKm, w.PrecipRateMM, w.PrecipCond, int(e.State), int(e.LocState),
			w.SalinityPSU, boolInt(w.SalinityValid), w.IcePct, boolInt(w.IceValid),
			e.Distance, e.DamagePct, e.GustMS, w.WaveHeightM, boolInt(w.WaveValid), e.MagDecDeg, boolInt(!e.ReportVisible),
		)
		if err != nil {
			tx.Rollback()
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// WriteSightBatch implements logger.Sink.
func (s *RelationalSink) WriteSightBatch(sights []logger.CelestialSightEntry) error {
	if len(sights) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return classify(err)
	}

	stmt, err := tx.Prepare(`INSERT INTO CelestialSight (boatName, unixTime, object, azimuthDeg, altitudeDeg) VALUES (?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return classify(err)
	}
	defer stmt.Close()

	for _, s := range sights {
		if _, err := stmt.Exec(s.BoatName, s.Time.Unix(), s.Object, s.Azimuth, s.Altitude); err != nil {
			tx.Rollback()
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *RelationalSink) Close() error { return s.db.Close() }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// classify wraps a sqlite "database is locked"/"busy" error as a
// logger.BusyError per §7's BusyRetryable taxonomy; anything else is
// BusyFatal and returned unwrapped.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "locked") || strings.Contains(msg, "busy") {
		return &logger.BusyError{Err: err}
	}
	return err
}
