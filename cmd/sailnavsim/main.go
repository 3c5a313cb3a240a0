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

// Command sailnavsim is the process entry point (§6 CLI, §4.9 Bootstrap):
// it parses flags, wires every component in its fixed init order, runs the
// tick driver until an OS signal arrives, then shuts down cooperatively.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ls4096/sailnavsim-core/internal/bootstrap"
)

func main() {
	app := bootstrap.NewApp(run)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg bootstrap.Config) error {
	a, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	if cfg.InitBoatsCSV != "" {
		records, err := bootstrap.LoadInitialBoatsCSV(cfg.InitBoatsCSV)
		if err != nil {
			return err
		}
		a.IngestInitialBoats(records, cfg.LogDir)
	}

	if cfg.Perf {
		reports := a.Loop.RunPerf(60)
		for _, r := range reports {
			fmt.Printf("iter=%d boats=%d elapsed_ns=%d\n", r.Iteration, r.BoatsMoved, r.ElapsedNs)
		}
		a.Shutdown()
		return nil
	}

	bootstrap.ServeMetrics(cfg.MetricsAddr)

	if err := a.Run(); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	a.Log.Infof("bootstrap: shutting down")
	a.Shutdown()
	return nil
}
