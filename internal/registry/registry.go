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
	"container/list"
	"fmt"
	"strings"
	"sync"
)

// AddStatus is the result of a Registry.Add call.
type AddStatus int

const (
	AddOk AddStatus = iota
	AddExists
	AddFailed
)

// BoatEntry is the registry node owning a vessel's external identity and
// optional group membership (§3).
type BoatEntry struct {
	Name    string
	Group   string
	AltName string
	Vessel  *Vessel
}

type groupMember struct {
	name    string
	altName string
}

// Registry is the concurrent name -> BoatEntry map described in §4.1. The
// primary index is a Go map for expected-O(1) lookup; insertion order is
// tracked by a doubly linked list of entries, mirroring the source's
// "hash map keyed by name plus a doubly linked insertion list" design note
// (§9) without manual pointer surgery.
type Registry struct {
	mu sync.RWMutex

	byName map[string]*list.Element // value: *BoatEntry
	order  *list.List

	groups map[string]*list.List // value: groupMember
	// groupElems lets Remove locate a boat's node inside its group list
	// in O(1) instead of scanning.
	groupElems map[string]*list.Element
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName:     make(map[string]*list.Element),
		order:      list.New(),
		groups:     make(map[string]*list.List),
		groupElems: make(map[string]*list.Element),
	}
}

// RdLock/WrLock/RdUnlock/WrUnlock expose the registry's rw-lock to callers that need to
// coordinate a read or write phase across multiple registry calls (the
// SimulationLoop's advance and command-drain phases, and NetServer's
// request handlers) per §4.1 and §5.
func (r *Registry) RdLock()   { r.mu.RLock() }
func (r *Registry) WrLock()   { r.mu.Lock() }
func (r *Registry) RdUnlock() { r.mu.RUnlock() }
func (r *Registry) WrUnlock() { r.mu.Unlock() }

// Add inserts a new vessel under name, optionally indexing it into group
// with altName as its display alias. Callers must hold the write lock.
func (r *Registry) Add(v *Vessel, name, group, altName string) AddStatus {
	if name == "" || v == nil {
		return AddFailed
	}
	if _, exists := r.byName[name]; exists {
		return AddExists
	}

	entry := &BoatEntry{Name: name, Group: group, AltName: altName, Vessel: v}
	elem := r.order.PushBack(entry)
	r.byName[name] = elem

	if group != "" {
		gl, ok := r.groups[group]
		if !ok {
			gl = list.New()
			r.groups[group] = gl
		}
		gelem := gl.PushBack(groupMember{name: name, altName: altName})
		r.groupElems[name] = gelem
	}

	return AddOk
}

// Get returns the vessel registered under name, or (nil, false).
func (r *Registry) Get(name string) (*Vessel, bool) {
	elem, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return elem.Value.(*BoatEntry).Vessel, true
}

// GetEntry returns the full entry registered under name, or (nil, false).
func (r *Registry) GetEntry(name string) (*BoatEntry, bool) {
	elem, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return elem.Value.(*BoatEntry), true
}

// Remove unlinks name from both indices and returns its vessel, or
// (nil, false) if name was never a member. Callers must hold the write lock.
func (r *Registry) Remove(name string) (*Vessel, bool) {
	elem, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*BoatEntry)
	r.order.Remove(elem)
	delete(r.byName, name)

	if entry.Group != "" {
		if gelem, ok := r.groupElems[name]; ok {
			if gl, ok := r.groups[entry.Group]; ok {
				gl.Remove(gelem)
				if gl.Len() == 0 {
					delete(r.groups, entry.Group)
				}
			}
			delete(r.groupElems, name)
		}
	}

	return entry.Vessel, true
}

// Count returns the number of live entries. Callers should hold at least the
// read lock for a consistent snapshot.
func (r *Registry) Count() int {
	return r.order.Len()
}

// Iterate calls f once for every live entry in insertion order. Per §4.1 the
// registry must not be mutated concurrently with iteration; callers hold the
// appropriate lock for the whole call.
func (r *Registry) Iterate(f func(entry *BoatEntry)) {
	for e := r.order.Front(); e != nil; e = e.Next() {
		f(e.Value.(*BoatEntry))
	}
}

// IterateSafe is like Iterate but tolerates f removing the *current* entry
// from the registry mid-traversal (the engine restarts iteration after each
// removal in practice; this variant supports that pattern directly by
// capturing Next() before invoking f).
func (r *Registry) IterateSafe(f func(entry *BoatEntry)) {
	for e := r.order.Front(); e != nil; {
		next := e.Next()
		f(e.Value.(*BoatEntry))
		e = next
	}
}

// GroupMembershipResponse produces the text blob described in §4.1: one
// "name,altName-or-!" line per member of the group referenced by
// groupOrBoatName, in registry insertion order. If groupOrBoatName names a
// boat rather than a group directly, its own Group field is used.
func (r *Registry) GroupMembershipResponse(groupOrBoatName string) (string, bool) {
	group := groupOrBoatName
	if entry, ok := r.byName[groupOrBoatName]; ok {
		e := entry.Value.(*BoatEntry)
		if e.Group == "" {
			return "", false
		}
		group = e.Group
	}

	gl, ok := r.groups[group]
	if !ok {
		return "", false
	}

	// Walk the group's own list (already insertion-ordered) rather than
	// the full registry, matching the O(|group|) cost the spec implies.
	lines := make([]string, 0, gl.Len())
	for e := gl.Front(); e != nil; e = e.Next() {
		m := e.Value.(groupMember)
		alt := m.altName
		if alt == "" {
			alt = "!"
		}
		lines = append(lines, fmt.Sprintf("%s,%s", m.name, alt))
	}
	return strings.Join(lines, "\n"), true
}
