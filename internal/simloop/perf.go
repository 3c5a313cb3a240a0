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

package simloop

import (
	"time"

	"github.com/ls4096/sailnavsim-core/internal/registry"
)

// PerfReport is one iteration's throughput measurement from RunPerf.
type PerfReport struct {
	Iteration   int
	BoatsMoved  int
	ElapsedNs   int64
}

// RunPerf measures advance throughput in place of the normal tick loop (§4.6
// "Performance-mode variant"). It runs no scripted workload and does not add
// vessels: every vessel already in the registry is advanced, at wall-clock
// time, iterations times with no
// command drain and no log phase, and the elapsed time of each advance pass
// is recorded. The wire protocol a performance-mode client might use to
// configure or collect this is out of scope (§1); RunPerf exists purely so
// the capability is preserved and callable from Bootstrap's --perf path.
func (l *Loop) RunPerf(iterations int) []PerfReport {
	reports := make([]PerfReport, 0, iterations)

	for i := 0; i < iterations; i++ {
		now := time.Now()
		start := time.Now()

		moved := 0
		l.Registry.WrLock()
		l.Registry.Iterate(func(entry *registry.BoatEntry) {
			l.Engine.Advance(entry.Vessel, now)
			moved++
		})
		l.Registry.WrUnlock()

		reports = append(reports, PerfReport{Iteration: i, BoatsMoved: moved, ElapsedNs: time.Since(start).Nanoseconds()})
	}

	return reports
}
