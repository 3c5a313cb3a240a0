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

// Package netserver implements C10 NetServer (§4.8): a TCP listener whose
// accepted connections are handed to a fixed worker pool, each worker
// owning a connection end-to-end and dispatching its line-delimited
// requests against the registry, Env, and CommandIngress.
package netserver

import (
	"fmt"
	"net"

	"github.com/alitto/pond"

	"github.com/ls4096/sailnavsim-core/internal/command"
	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/errorlog"
	"github.com/ls4096/sailnavsim-core/internal/registry"
	"github.com/ls4096/sailnavsim-core/internal/telemetry"
)

// DefaultWorkers is the fixed worker-pool size described in §4.8.
const DefaultWorkers = 5

// AcceptBufferCapacity is the bound on queued-but-unclaimed connections,
// mirrored onto the pond worker pool's task queue capacity.
const AcceptBufferCapacity = 256

// Server is the TCP request server.
type Server struct {
	Registry *registry.Registry
	Env      env.Env
	Commands *command.Queue
	Log      *errorlog.Log

	Counters Counters

	listener net.Listener
	pool     *pond.WorkerPool
}

// New builds a Server bound to the given collaborators. Listen must be
// called to actually start accepting connections.
func New(reg *registry.Registry, e env.Env, cmds *command.Queue, log *errorlog.Log) *Server {
	return &Server{Registry: reg, Env: e, Commands: cmds, Log: log}
}

// Listen opens a TCP listener on port and starts the fixed worker pool
// (alitto/pond, replacing a hand-rolled mutex+condvar accept buffer with a
// bounded task queue of the same capacity) that will service it.
func (s *Server) Listen(port uint16) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("netserver: listen: %w", err)
	}
	s.listener = ln
	s.pool = pond.New(DefaultWorkers, AcceptBufferCapacity, pond.MinWorkers(DefaultWorkers))

	go s.acceptLoop()
	return nil
}

// Close stops accepting new connections and waits for in-flight workers to
// finish.
func (s *Server) Close() error {
	err := s.listener.Close()
	s.pool.StopAndWait()
	return err
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.Counters.AcceptFail.Add(1)
			telemetry.NetAcceptFail.Inc()
			return
		}
		s.Counters.Accept.Add(1)
		telemetry.NetAccept.Inc()

		s.pool.Submit(func() {
			s.handleConn(conn)
		})
	}
}
