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

package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/ls4096/sailnavsim-core/internal/command"
	"github.com/ls4096/sailnavsim-core/internal/env"
	"github.com/ls4096/sailnavsim-core/internal/env/reference"
	"github.com/ls4096/sailnavsim-core/internal/errorlog"
	"github.com/ls4096/sailnavsim-core/internal/logger"
	"github.com/ls4096/sailnavsim-core/internal/logger/persist"
	"github.com/ls4096/sailnavsim-core/internal/netserver"
	"github.com/ls4096/sailnavsim-core/internal/physics"
	"github.com/ls4096/sailnavsim-core/internal/registry"
	"github.com/ls4096/sailnavsim-core/internal/simloop"
	"github.com/ls4096/sailnavsim-core/internal/telemetry"
)

// App wires every component described in §4.9 C11 into a single aggregate
// (§9 "re-architect them as a single owned Engine aggregate"): Registry,
// CommandIngress, Logger, VesselPhysics and, optionally, NetServer.
type App struct {
	Log      *errorlog.Log
	Env      env.Env
	Registry *registry.Registry
	Commands *command.Queue
	Logger   *logger.Logger
	Engine   *physics.Engine
	Loop     *simloop.Loop
	Server   *netserver.Server

	fifo     *command.FIFOReader
	fifoStop chan struct{}
	relSink  *persist.RelationalSink
	mirror   *persist.RedisMirror
	netPort  uint16
}

// New performs bootstrap's fixed init order (§4.9): ErrorLog, Env, Registry,
// CommandIngress, Logger, VesselPhysics (RNG seeded from wall clock), and
// the optional NetServer.
func New(cfg Config) (*App, error) {
	log := errorlog.NewStderr()

	// Env sub-modules (weather, ocean, wave, geo, compass, celestial) are,
	// per §1, an external read-only library; this module has no data-directory
	// configuration, so Bootstrap always uses the calm reference implementation
	// (internal/env/reference) built on top of internal/env/ephemeris.
	e := reference.New()

	reg := registry.New()
	cmds := command.NewQueue()

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("bootstrap: log dir: %w", err)
	}
	relSink, err := persist.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: relational sink: %w", err)
	}
	var mirror *persist.RedisMirror
	if cfg.RedisAddr != "" {
		mirror = persist.NewRedisMirror(cfg.RedisAddr)
	}
	csvSink := logger.NewCSVSink(cfg.LogDir)

	var mirrorSink logger.Sink
	if mirror != nil {
		mirrorSink = mirror
	}
	lg := logger.New(relSink, mirrorSink, csvSink, log)

	rng := physics.NewRNG(time.Now().UnixNano())
	engine := physics.NewEngine(e, physics.DefaultParams(), physics.DefaultPolar(), physics.DefaultHull(), rng)

	loop := simloop.New(reg, engine, e, cmds, lg, rng, log)

	app := &App{
		Log:      log,
		Env:      e,
		Registry: reg,
		Commands: cmds,
		Logger:   lg,
		Engine:   engine,
		Loop:     loop,
		relSink:  relSink,
		mirror:   mirror,
	}

	if cfg.FIFOPath != "" {
		app.fifoStop = make(chan struct{})
		app.fifo = command.NewFIFOReader(cfg.FIFOPath, cmds, log)
	}

	if cfg.NetPort != 0 {
		app.Server = netserver.New(reg, e, cmds, log)
		app.netPort = cfg.NetPort
	}

	return app, nil
}

// Run starts every background component (command reader, logger, tick
// driver, optional NetServer), matching §4.9's init order and §5's thread
// inventory. Callers invoke Shutdown to stop them.
func (a *App) Run() error {
	a.Logger.Start()
	a.Loop.Start()

	if a.fifo != nil {
		go a.fifo.Run(a.fifoStop)
	}

	if a.Server != nil {
		if err := a.Server.Listen(a.netPort); err != nil {
			return err
		}
	}

	return nil
}

// Shutdown stops the command reader, then the NetServer, the tick driver and
// the Logger, in that order, and drops the registry's vessels (§4.9 "On
// shutdown"), then closes the relational sink and optional Redis mirror.
func (a *App) Shutdown() {
	if a.fifoStop != nil {
		close(a.fifoStop)
	}
	if a.Server != nil {
		if err := a.Server.Close(); err != nil {
			a.Log.Warnf("bootstrap: netserver close: %v", err)
		}
	}
	a.Loop.Stop()
	a.Logger.Stop()

	a.Registry.WrLock()
	a.Registry.IterateSafe(func(entry *registry.BoatEntry) {
		a.Registry.Remove(entry.Name)
	})
	a.Registry.WrUnlock()

	if err := a.relSink.Close(); err != nil {
		a.Log.Warnf("bootstrap: relational sink close: %v", err)
	}
	if a.mirror != nil {
		if err := a.mirror.Close(); err != nil {
			a.Log.Warnf("bootstrap: redis mirror close: %v", err)
		}
	}
}

// ServeMetrics exposes the Prometheus /metrics endpoint if cfg requested one.
func ServeMetrics(addr string) {
	telemetry.ServeMetrics(addr)
}
