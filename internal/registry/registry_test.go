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

package registry

import (
	"fmt"
	"testing"
)

// TestRegistry_runBasic mirrors the spec's S1 scenario: add, get, remove.
func TestRegistry_runBasic(t *testing.T) {
	r := New()
	v := NewVessel(Position{Lat: 0, Lon: 0}, BoatTypeBasic0, 0)

	if status := r.Add(v, "TestBoat0", "", ""); status != AddOk {
		t.Fatalf("Add: got %v, want AddOk", status)
	}
	if got := r.Count(); got != 1 {
		t.Fatalf("Count: got %d, want 1", got)
	}

	got, ok := r.Get("TestBoat0")
	if !ok || got != v {
		t.Fatalf("Get: got (%v,%v), want (%v,true)", got, ok, v)
	}

	removed, ok := r.Remove("TestBoat0")
	if !ok || removed != v {
		t.Fatalf("Remove: got (%v,%v), want (%v,true)", removed, ok, v)
	}
	if got := r.Count(); got != 0 {
		t.Fatalf("Count after remove: got %d, want 0", got)
	}
	if _, ok := r.Get("TestBoat0"); ok {
		t.Fatalf("Get after remove: expected absence")
	}
}

// TestRegistry_DuplicateAddDoesNotMutate mirrors S2: a duplicate add leaves
// the pre-existing vessel, count and group membership untouched.
func TestRegistry_DuplicateAddDoesNotMutate(t *testing.T) {
	r := New()
	v1 := NewVessel(Position{}, BoatTypeBasic0, 0)
	v2 := NewVessel(Position{Lat: 10}, BoatTypeBasic0, 0)

	if status := r.Add(v1, "A", "fleet", "Alpha"); status != AddOk {
		t.Fatalf("first Add: got %v, want AddOk", status)
	}
	if status := r.Add(v2, "A", "", ""); status != AddExists {
		t.Fatalf("duplicate Add: got %v, want AddExists", status)
	}

	got, ok := r.Get("A")
	if !ok || got != v1 {
		t.Fatalf("Get after duplicate add: got (%v,%v), want (%v,true)", got, ok, v1)
	}
	if got := r.Count(); got != 1 {
		t.Fatalf("Count after duplicate add: got %d, want 1", got)
	}

	body, ok := r.GroupMembershipResponse("fleet")
	if !ok || body != "A,Alpha" {
		t.Fatalf("group membership after duplicate add: got (%q,%v), want (%q,true)", body, ok, "A,Alpha")
	}
}

// TestRegistry_RemoveNonMember mirrors invariant 4.
func TestRegistry_RemoveNonMember(t *testing.T) {
	r := New()
	r.Add(NewVessel(Position{}, BoatTypeBasic0, 0), "A", "", "")

	if _, ok := r.Remove("ghost"); ok {
		t.Fatalf("Remove of a non-member returned ok=true")
	}
	if got := r.Count(); got != 1 {
		t.Fatalf("Count after removing a non-member: got %d, want 1", got)
	}
}

// TestRegistry_IterationOrderSurvivesRemoval mirrors invariant 3: removing
// the current element mid-iteration via IterateSafe (which captures the next
// entry before calling f) does not skip subsequent entries.
func TestRegistry_IterationOrderSurvivesRemoval(t *testing.T) {
	r := New()
	names := []string{"A", "B", "C", "D"}
	for _, n := range names {
		r.Add(NewVessel(Position{}, BoatTypeBasic0, 0), n, "", "")
	}

	var visited []string
	r.IterateSafe(func(entry *BoatEntry) {
		visited = append(visited, entry.Name)
		if entry.Name == "B" {
			r.Remove("B")
		}
	})

	want := []string{"A", "B", "C", "D"}
	if len(visited) != len(want) {
		t.Fatalf("visited: got %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited[%d]: got %q, want %q", i, visited[i], want[i])
		}
	}
	if got := r.Count(); got != 3 {
		t.Fatalf("Count after mid-iteration removal: got %d, want 3", got)
	}
}

// TestRegistry_GroupMembershipResponse mirrors S7.
func TestRegistry_GroupMembershipResponse(t *testing.T) {
	r := New()
	const n = 5
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("boat%d", i)
		alt := ""
		if i%2 == 0 {
			alt = fmt.Sprintf("alt%d", i)
		}
		if status := r.Add(NewVessel(Position{}, BoatTypeBasic0, 0), name, "G", alt); status != AddOk {
			t.Fatalf("Add(%s): got %v, want AddOk", name, status)
		}
	}

	body, ok := r.GroupMembershipResponse("G")
	if !ok {
		t.Fatalf("GroupMembershipResponse: not found")
	}
	lines := splitLines(body)
	if len(lines) != n {
		t.Fatalf("lines: got %d, want %d (%v)", len(lines), n, lines)
	}
	for i, line := range lines {
		wantAlt := "!"
		if i%2 == 0 {
			wantAlt = fmt.Sprintf("alt%d", i)
		}
		want := fmt.Sprintf("boat%d,%s", i, wantAlt)
		if line != want {
			t.Fatalf("line %d: got %q, want %q", i, line, want)
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}
