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

package physics

import (
	"math/rand"
	"sync"
)

// RNG is the process-wide pseudo-random source §5 describes: seeded once
// from wall-clock time at bootstrap, and shared by the random-course
// tiebreak (§4.3.2), cloud obscuration and star selection (§4.4), and
// wave-perturbation draws (§4.4). It is safe for concurrent use, though in
// this design only the SimulationLoop thread ever calls it.
type RNG struct {
	mu  sync.Mutex
	src *rand.Rand
}

// NewRNG seeds a new RNG from seed (callers pass wall-clock time in
// bootstrap; tests pass a fixed seed for determinism).
func NewRNG(seed int64) *RNG {
	return &RNG{src: rand.New(rand.NewSource(seed))}
}

// CoinFlip returns true or false with equal probability.
func (r *RNG) CoinFlip() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(2) == 0
}

// Float64 returns a pseudo-random number in [0,1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}

// Uniform returns a pseudo-random number in [-1,+1).
func (r *RNG) Uniform() float64 {
	return r.Float64()*2 - 1
}

// IntRange returns a pseudo-random integer in [lo,hi].
func (r *RNG) IntRange(lo, hi int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.src.Intn(hi-lo+1)
}
