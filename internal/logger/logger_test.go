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
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/errorlog"
)

func TestFormatLogEntry_ColumnOrderAndOptionalFields(t *testing.T) {
	e := LogEntry{
		Time:      time.Unix(1700000000, 0),
		BoatName:  "Boat0",
		Lat:       45.5,
		Lon:       -73.6,
		CourseDeg: 90,
		SpeedMS:   3.2,
		TrackDeg:  91,
		GroundMS:  3.1,
		MagDecDeg: -12.3,
		Distance:  1000,
		DamagePct: 5,
		GustMS:    6.5,
		Weather: WeatherSnapshot{
			WindDirDeg: 180, WindMagMS: 8,
			AirTempC: 20, DewpointC: 15, PressureHPa: 1013,
			CloudPct: 40, VisibilityKm: 10, PrecipRateMM: 0, PrecipCond: 0,
		},
		State:         StateSailing,
		LocState:      LocationWater,
		ReportVisible: true,
	}

	got := formatLogEntry(e)
	fields := strings.Split(got, ",")
	if len(fields) != 29 {
		t.Fatalf("column count: got %d, want 29 (%q)", len(fields), got)
	}
	if fields[0] != "1700000000" {
		t.Errorf("time column: got %q", fields[0])
	}
	if fields[9] != "" || fields[10] != "" {
		t.Errorf("current columns should be blank when CurrentValid is false: got %q,%q", fields[9], fields[10])
	}
	if fields[19] != "sailing" {
		t.Errorf("state column: got %q, want sailing", fields[19])
	}
	if fields[20] != "water" {
		t.Errorf("location column: got %q, want water", fields[20])
	}
	if fields[28] != "0" {
		t.Errorf("invisible column: got %q, want 0 (ReportVisible true)", fields[28])
	}
}

func TestFormatLogEntry_InvisibleFlagIsNegationOfReportVisible(t *testing.T) {
	e := LogEntry{Time: time.Unix(0, 0), State: StateStopped, LocState: LocationLand, ReportVisible: false}
	got := formatLogEntry(e)
	fields := strings.Split(got, ",")
	if fields[19] != "stopped" || fields[20] != "land" {
		t.Fatalf("state/location: got %q,%q", fields[19], fields[20])
	}
	if fields[28] != "1" {
		t.Errorf("invisible column: got %q, want 1 (ReportVisible false)", fields[28])
	}
}

type fakeSink struct {
	busyUntil int
	calls     int
	lastLog   []LogEntry
}

func (f *fakeSink) WriteLogBatch(entries []LogEntry) error {
	f.calls++
	f.lastLog = entries
	if f.calls <= f.busyUntil {
		return &BusyError{Err: errors.New("locked")}
	}
	return nil
}
func (f *fakeSink) WriteSightBatch(sights []CelestialSightEntry) error { return nil }

func TestLogger_WriteWithRetryRetriesOnBusyThenSucceeds(t *testing.T) {
	sink := &fakeSink{busyUntil: 1}
	l := New(sink, nil, nil, errorlog.New(io.Discard))

	start := time.Now()
	err := l.writeWithRetry(func() error { return sink.WriteLogBatch(nil) })
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if sink.calls != 2 {
		t.Fatalf("calls: got %d, want 2 (one busy, one success)", sink.calls)
	}
	if elapsed < time.Second {
		t.Fatalf("expected at least one 1s retry sleep, elapsed %v", elapsed)
	}
}

func TestLogger_WriteWithRetryReturnsNonBusyErrorImmediately(t *testing.T) {
	wantErr := errors.New("disk full")
	l := New(&fakeSink{}, nil, nil, errorlog.New(io.Discard))

	start := time.Now()
	err := l.writeWithRetry(func() error { return wantErr })
	elapsed := time.Since(start)

	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want %v", err, wantErr)
	}
	if elapsed > 100*time.Millisecond {
		t.Fatalf("non-busy error should not sleep/retry, elapsed %v", elapsed)
	}
}

func TestLogger_EnqueueProcessesThroughAllSinks(t *testing.T) {
	relational := &fakeSink{}
	mirror := &fakeSink{}
	l := New(relational, mirror, nil, errorlog.New(io.Discard))
	l.Start()

	batch := LogBatch{Entries: []LogEntry{{BoatName: "Boat0", Time: time.Unix(0, 0)}}}
	l.Enqueue(batch)
	l.Stop()

	if relational.calls != 1 || len(relational.lastLog) != 1 {
		t.Fatalf("relational sink: got %d calls, %d entries", relational.calls, len(relational.lastLog))
	}
	if mirror.calls != 1 {
		t.Fatalf("mirror sink: got %d calls, want 1", mirror.calls)
	}
}
