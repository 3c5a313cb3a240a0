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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCSVSink_WriteLogBatchAppendsPerBoatFiles(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir)

	batch1 := []LogEntry{
		{BoatName: "Boat0", Time: time.Unix(1, 0), Lat: 1},
		{BoatName: "Boat1", Time: time.Unix(2, 0), Lat: 2},
	}
	if err := sink.WriteLogBatch(batch1); err != nil {
		t.Fatalf("WriteLogBatch: %v", err)
	}
	batch2 := []LogEntry{{BoatName: "Boat0", Time: time.Unix(3, 0), Lat: 1.5}}
	if err := sink.WriteLogBatch(batch2); err != nil {
		t.Fatalf("WriteLogBatch: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b0, err := os.ReadFile(filepath.Join(dir, "Boat0.csv"))
	if err != nil {
		t.Fatalf("reading Boat0.csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b0), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Boat0.csv: got %d lines, want 2 (%q)", len(lines), string(b0))
	}
	if !strings.HasPrefix(lines[0], "1,") || !strings.HasPrefix(lines[1], "3,") {
		t.Fatalf("Boat0.csv lines out of order: %v", lines)
	}

	if _, err := os.Stat(filepath.Join(dir, "Boat1.csv")); err != nil {
		t.Fatalf("Boat1.csv missing: %v", err)
	}
}

func TestCSVSink_WriteSightBatchUsesSuffixedFile(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSVSink(dir)

	sights := []CelestialSightEntry{
		{BoatName: "Boat0", Time: time.Unix(5, 0), Object: "sun", Azimuth: 120, Altitude: 30},
	}
	if err := sink.WriteSightBatch(sights); err != nil {
		t.Fatalf("WriteSightBatch: %v", err)
	}
	sink.Close()

	b, err := os.ReadFile(filepath.Join(dir, "Boat0-cs.csv"))
	if err != nil {
		t.Fatalf("reading Boat0-cs.csv: %v", err)
	}
	got := strings.TrimSpace(string(b))
	want := "5,sun,120.0,30.0"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
