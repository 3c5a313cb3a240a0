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

import (
	"bufio"
	"os"

	"github.com/ls4096/sailnavsim-core/internal/errorlog"
	"github.com/samber/lo"
)

// FIFOReader blocks reading newline-delimited command lines from a named
// pipe (or any readable file) and pushes parsed commands onto a Queue,
// implementing the "command reader" thread of §5.
type FIFOReader struct {
	path  string
	queue *Queue
	log   *errorlog.Log
}

// NewFIFOReader builds a reader for the FIFO at path.
func NewFIFOReader(path string, queue *Queue, log *errorlog.Log) *FIFOReader {
	return &FIFOReader{path: path, queue: queue, log: log}
}

// Run opens the FIFO and blocks, parsing and enqueueing lines until the
// FIFO is closed by its writer (at which point, per named-pipe semantics,
// it is reopened to await the next writer) or stop is closed.
func (r *FIFOReader) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		f, err := os.Open(r.path)
		if err != nil {
			r.log.Errorf("command: opening fifo %s: %v", r.path, err)
			return
		}
		r.readUntilEOF(f)
		f.Close()
	}
}

func (r *FIFOReader) readUntilEOF(f *os.File) {
	scanner := bufio.NewScanner(f)
	var batch []string
	for scanner.Scan() {
		batch = append(batch, scanner.Text())
		if len(batch) >= 64 {
			r.parseBatch(batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		r.parseBatch(batch)
	}
}

// parseBatch filters blank lines out of a batch read from the FIFO before
// lexing each remaining line, matching the pack's habit of using lo.Filter
// ahead of a tight per-item loop rather than hand-rolling the skip check.
func (r *FIFOReader) parseBatch(lines []string) {
	nonEmpty := lo.Filter(lines, func(l string, _ int) bool { return l != "" })
	for _, line := range nonEmpty {
		cmd, err := ParseLine(line)
		if err != nil {
			r.log.Warnf("command: %v", err)
			continue
		}
		r.queue.Push(cmd)
	}
}
