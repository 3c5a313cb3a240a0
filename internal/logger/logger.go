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
	"sync"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/errorlog"
	"github.com/ls4096/sailnavsim-core/internal/telemetry"
)

// Logger is the single-consumer queue of §4.7: a mutex-guarded FIFO of
// LogBatch values with a condition variable, draining fully before waiting
// again. The shape mirrors the teacher's commitLoop/evictionLoop pattern in
// core/worker.go, adapted from a ticker-driven poll to a condvar wakeup
// since the producer here pushes irregularly (once per logging tick) rather
// than on a fixed interval.
type Logger struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []LogBatch
	stopped bool

	relational Sink
	mirror     Sink // optional; nil disables the fast-path mirror
	csv        *CSVSink

	log *errorlog.Log
	wg  sync.WaitGroup
}

// New builds a Logger. relational must not be nil; mirror may be nil to
// disable the optional Redis fast-path.
func New(relational Sink, mirror Sink, csv *CSVSink, log *errorlog.Log) *Logger {
	l := &Logger{
		relational: relational,
		mirror:     mirror,
		csv:        csv,
		log:        log,
	}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Start launches the consumer goroutine.
func (l *Logger) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run()
	}()
}

// Stop signals the consumer to drain what remains and exit, then waits for
// it to finish.
func (l *Logger) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.cond.Broadcast()
	l.mu.Unlock()
	l.wg.Wait()
	if l.csv != nil {
		l.csv.Close()
	}
}

// Enqueue appends batch to the tail of the queue and wakes the consumer.
// Called by SimulationLoop's log phase (§4.6 step 4).
func (l *Logger) Enqueue(batch LogBatch) {
	l.mu.Lock()
	l.pending = append(l.pending, batch)
	l.cond.Signal()
	l.mu.Unlock()
}

func (l *Logger) run() {
	for {
		l.mu.Lock()
		for len(l.pending) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if len(l.pending) == 0 && l.stopped {
			l.mu.Unlock()
			return
		}
		batch := l.pending[0]
		l.pending = l.pending[1:]
		l.mu.Unlock()

		l.process(batch)
	}
}

func (l *Logger) process(batch LogBatch) {
	telemetry.LogBatchesTotal.Inc()

	if err := l.writeWithRetry(func() error { return l.relational.WriteLogBatch(batch.Entries) }); err != nil {
		l.log.Errorf("logger: dropping batch of %d entries: %v", len(batch.Entries), err)
		telemetry.LogBatchesDroppedTotal.Inc()
	} else {
		telemetry.LogRowsTotal.Add(float64(len(batch.Entries)))
	}

	if len(batch.Sights) > 0 {
		if err := l.writeWithRetry(func() error { return l.relational.WriteSightBatch(batch.Sights) }); err != nil {
			l.log.Errorf("logger: dropping sight batch of %d entries: %v", len(batch.Sights), err)
			telemetry.LogBatchesDroppedTotal.Inc()
		}
	}

	if l.mirror != nil {
		if err := l.mirror.WriteLogBatch(batch.Entries); err != nil {
			l.log.Warnf("logger: mirror write failed: %v", err)
		}
	}

	if l.csv != nil {
		if err := l.csv.WriteLogBatch(batch.Entries); err != nil {
			l.log.Errorf("logger: csv write failed: %v", err)
		}
		if len(batch.Sights) > 0 {
			if err := l.csv.WriteSightBatch(batch.Sights); err != nil {
				l.log.Errorf("logger: csv sight write failed: %v", err)
			}
		}
	}
}

// writeWithRetry implements §7's BusyRetryable/BusyFatal split: a BusyError
// sleeps 1s and retries indefinitely; any other error rolls back (the Sink's
// own responsibility) and is returned for the caller to log and drop.
func (l *Logger) writeWithRetry(write func() error) error {
	for {
		err := write()
		if err == nil {
			return nil
		}
		if !IsBusy(err) {
			return err
		}
		telemetry.LogBusyRetriesTotal.Inc()
		l.log.Warnf("logger: sink busy, retrying in 1s: %v", err)
		time.Sleep(time.Second)
	}
}
