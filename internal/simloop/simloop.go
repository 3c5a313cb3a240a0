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

// Package simloop implements C8 SimulationLoop (§4.6): the fixed 1Hz tick
// driver that orchestrates the registry lock, per-vessel advance, the
// logging burst on the minute rollover, and the command-drain phase. Its
// stopChan/WaitGroup shutdown shape is the same one the teacher's
// core/worker.go commit/eviction loops use.
package simloop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/command"
	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/errorlog"
	"github.com/ls4096/sailnavsim-core/internal/logger"
	"github.com/ls4096/sailnavsim-core/internal/physics"
	"github.com/ls4096/sailnavsim-core/internal/registry"
	"github.com/ls4096/sailnavsim-core/internal/telemetry"
)

// Loop is the tick-driven engine that ties the registry, physics engine,
// command queue, and logger together.
type Loop struct {
	Registry *registry.Registry
	Engine   *physics.Engine
	Env      env.Env
	Commands *command.Queue
	Logger   *logger.Logger
	RNG      *physics.RNG
	Log      *errorlog.Log

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  uint32

	lastIter int
}

// New builds a Loop from its collaborators. None of its fields may be nil.
func New(reg *registry.Registry, eng *physics.Engine, e env.Env, cmds *command.Queue, lg *logger.Logger, rng *physics.RNG, log *errorlog.Log) *Loop {
	return &Loop{
		Registry: reg,
		Engine:   eng,
		Env:      e,
		Commands: cmds,
		Logger:   lg,
		RNG:      rng,
		Log:      log,
		stopChan: make(chan struct{}),
	}
}

// Start launches the tick driver on its own goroutine.
func (l *Loop) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run()
	}()
}

// Stop signals the loop to exit after its current tick and waits for it.
func (l *Loop) Stop() {
	if !atomic.CompareAndSwapUint32(&l.stopped, 0, 1) {
		return
	}
	close(l.stopChan)
	l.wg.Wait()
}

// run implements §4.6's per-iteration algorithm with a monotonic wakeup
// checkpoint and catch-up policy.
func (l *Loop) run() {
	target := time.Now()

	for {
		select {
		case <-l.stopChan:
			return
		default:
		}

		now := time.Now()
		iter := int(now.Unix() % 60)
		doLog := iter < l.lastIter
		l.lastIter = iter

		start := time.Now()
		batch := l.advancePhase(now, doLog)
		if doLog {
			l.Logger.Enqueue(batch)
		}
		l.commandPhase()
		telemetry.TickDuration.Observe(time.Since(start).Seconds())
		telemetry.BoatsAdvanced.Set(float64(l.Registry.Count()))

		target = target.Add(time.Second)
		if d := time.Until(target); d > 0 {
			select {
			case <-time.After(d):
			case <-l.stopChan:
				return
			}
		} else {
			telemetry.TicksFellBehind.Inc()
			l.Log.Warnf("simloop: fell behind target wakeup by %s", -d)
			target = time.Now()
		}
	}
}

// advancePhase holds the registry write lock for the entire advance
// (§4.6 step 3), building a LogBatch when doLog is set.
func (l *Loop) advancePhase(now time.Time, doLog bool) logger.LogBatch {
	l.Registry.WrLock()
	defer l.Registry.WrUnlock()

	var batch logger.LogBatch
	if doLog {
		count := l.Registry.Count()
		batch.Entries = make([]logger.LogEntry, 0, count)
		batch.Sights = make([]logger.CelestialSightEntry, 0, count)
	}

	l.Registry.Iterate(func(entry *registry.BoatEntry) {
		v := entry.Vessel
		l.Engine.Advance(v, now)

		if !doLog {
			return
		}
		logEntry, sight, hasSight := l.buildLogEntry(entry, now)
		batch.Entries = append(batch.Entries, logEntry)
		if hasSight {
			batch.Sights = append(batch.Sights, sight)
		}
	})

	return batch
}

// commandPhase drains the command queue and applies each command under the
// registry write lock (§4.6 step 5); unknown targets are silently dropped.
func (l *Loop) commandPhase() {
	cmds := l.Commands.DrainAll()
	if len(cmds) == 0 {
		return
	}

	l.Registry.WrLock()
	defer l.Registry.WrUnlock()

	for _, cmd := range cmds {
		l.applyCommand(cmd)
	}
}
