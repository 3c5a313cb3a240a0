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

// Package bootstrap implements C11 Bootstrap (§4.9/§6): CLI parsing, the
// fixed component init order, initial-boat ingest and graceful shutdown.
package bootstrap

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Version is the process version string printed by -v|--version.
const Version = "1.0.0"

// Config is the resolved set of process options (§6 plus the file paths and
// addresses Bootstrap needs; there is no Env data-directory option).
type Config struct {
	Perf    bool
	NetPort uint16

	FIFOPath     string
	LogDir       string
	DBPath       string
	RedisAddr    string
	InitBoatsCSV string
	MetricsAddr  string
}

// NewApp builds the urfave/cli/v2 App described in §6: -v|--version,
// --perf, --netport, plus the path and address flags bootstrap needs (FIFO,
// log directory, database, Redis, initial boats, metrics). Any flag the App doesn't recognize
// exits 1 with usage, which is cli.App's default behavior.
func NewApp(run func(Config) error) *cli.App {
	app := cli.NewApp()
	app.Name = "sailnavsim"
	app.Usage = "fixed-tick sailing vessel simulation engine"
	app.Version = Version

	app.Flags = []cli.Flag{
		&cli.BoolFlag{Name: "perf", Usage: "run in performance-measurement mode and exit"},
		&cli.UintFlag{Name: "netport", Usage: "enable the TCP request server on this port"},
		&cli.StringFlag{Name: "fifo", Value: "/tmp/sailnavsim.fifo", Usage: "command FIFO path"},
		&cli.StringFlag{Name: "logdir", Value: "./log", Usage: "CSV boat log directory"},
		&cli.StringFlag{Name: "db", Value: "./sailnavsim.db", Usage: "relational sink path (sqlite)"},
		&cli.StringFlag{Name: "redis", Usage: "optional Redis mirror address (host:port)"},
		&cli.StringFlag{Name: "initboats", Usage: "CSV file of initial boats to ingest at startup (the only initial-boat source; the relational sink is not read at startup)"},
		&cli.StringFlag{Name: "metrics", Usage: "optional Prometheus /metrics listen address (e.g. :9090)"},
	}

	app.Action = func(c *cli.Context) error {
		netport := c.Uint("netport")
		if netport > 65535 {
			return fmt.Errorf("bootstrap: --netport out of range: %d", netport)
		}
		cfg := Config{
			Perf:      c.Bool("perf"),
			NetPort:   uint16(netport),
			FIFOPath:  c.String("fifo"),
			LogDir:    c.String("logdir"),
			DBPath:       c.String("db"),
			RedisAddr:    c.String("redis"),
			InitBoatsCSV: c.String("initboats"),
			MetricsAddr:  c.String("metrics"),
		}
		return run(cfg)
	}

	return app
}
