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

package command

import "testing"

// TestParseLine_RoundTripsThroughSerialize mirrors §8 invariant 10: every
// valid line parses then serializes back to itself.
func TestParseLine_RoundTripsThroughSerialize(t *testing.T) {
	lines := []string{
		"Boat0,stop",
		"Boat0,start",
		"Boat0,course,90",
		"Boat0,course,0",
		"Boat0,course,360",
		"Boat0,course_m,270",
		"Boat0,sail_area,50",
		"Boat0,sail_area,0",
		"Boat0,sail_area,100",
		"Boat0,add,45.5,-73.6,0,1",
		"Boat0,add_g,45.5,-73.6,2,0,fleet,Alpha",
		"Boat0,remove",
	}
	for _, line := range lines {
		cmd, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): unexpected error: %v", line, err)
		}
		if got := cmd.Serialize(); got != line {
			t.Errorf("round trip: got %q, want %q", got, line)
		}
	}
}

func TestParseLine_RejectsMalformedLines(t *testing.T) {
	cases := []string{
		"",
		"Boat0",
		",stop",
		"Boat0,bogus",
		"Boat0,stop,extra",
		"Boat0,course",
		"Boat0,course,abc",
		"Boat0,course,361",
		"Boat0,course,-1",
		"Boat0,sail_area,101",
		"Boat0,sail_area,-1",
		"Boat0,add,45.5,-73.6,0",              // too few args
		"Boat0,add,90,-73.6,0,1",              // lat out of range
		"Boat0,add,45.5,-200,0,1",             // lon out of range
		"Boat0,add,45.5,-73.6,0,100",          // flags out of range
		"Boat0,add,45.5,-73.6,99,1",           // boatType out of range
		"Boat0,add,45.5,-73.6,-1,1",           // boatType negative
		"Boat0,add_g,45.5,-73.6,0,1,,Alpha",   // empty group
	}
	for _, line := range cases {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q): expected error, got nil", line)
		}
	}
}

func TestParseLine_TrimsTrailingNewline(t *testing.T) {
	cmd, err := ParseLine("Boat0,stop\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Target != "Boat0" || cmd.Action != Stop {
		t.Fatalf("got %+v", cmd)
	}
}

func TestQueue_DrainAllPreservesFIFOOrder(t *testing.T) {
	q := NewQueue()
	c1, _ := ParseLine("A,stop")
	c2, _ := ParseLine("B,start")
	c3, _ := ParseLine("C,remove")

	q.Push(c1)
	q.Push(c2)
	q.Push(c3)

	if got := q.Len(); got != 3 {
		t.Fatalf("Len: got %d, want 3", got)
	}

	drained := q.DrainAll()
	want := []Command{c1, c2, c3}
	if len(drained) != len(want) {
		t.Fatalf("drained: got %d commands, want %d", len(drained), len(want))
	}
	for i, c := range want {
		if drained[i].Target != c.Target || drained[i].Action != c.Action {
			t.Errorf("drained[%d]: got %+v, want %+v", i, drained[i], c)
		}
	}

	if got := q.Len(); got != 0 {
		t.Fatalf("Len after drain: got %d, want 0", got)
	}
	if got := q.DrainAll(); got != nil {
		t.Fatalf("DrainAll on empty queue: got %v, want nil", got)
	}
}
