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

// Package errorlog implements C1 ErrorLog (§4.9): a single-sink, timestamped
// diagnostic stream with a small set of severity levels. It wraps the
// standard log.Logger rather than introducing a leveled logging dependency,
// matching the plain stderr diagnostics the rest of the stack expects.
package errorlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level is the severity of one log entry.
type Level int

const (
	Info Level = iota
	Warn
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Log is a single-sink diagnostic stream. The zero value is not usable;
// construct with New.
type Log struct {
	mu     sync.Mutex
	logger *log.Logger
}

// New builds a Log writing to w, prefixed with a microsecond-precision
// timestamp (log.LstdFlags|log.Lmicroseconds), matching the "ErrorLog
// (stderr)" sink described in §4.9/§7.
func New(w io.Writer) *Log {
	return &Log{logger: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
}

// NewStderr builds the stderr sink that Bootstrap always uses; Bootstrap has
// no option for a log file path.
func NewStderr() *Log {
	return New(os.Stderr)
}

func (l *Log) write(level Level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.logger.Printf("[%s] %s", level, msg)
}

func (l *Log) Infof(format string, args ...interface{})  { l.write(Info, format, args) }
func (l *Log) Warnf(format string, args ...interface{})  { l.write(Warn, format, args) }
func (l *Log) Errorf(format string, args ...interface{}) { l.write(Error, format, args) }

// Fatalf logs at Fatal and then terminates the process, mirroring the
// behaviour of the bootstrap-time fatal diagnostics described in §4.9.
func (l *Log) Fatalf(format string, args ...interface{}) {
	l.write(Fatal, format, args)
	os.Exit(1)
}
