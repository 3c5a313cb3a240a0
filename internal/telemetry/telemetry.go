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

// Package telemetry exposes the process's Prometheus metrics: tick timing
// and catch-up behavior from SimulationLoop, batch/retry counters from
// Logger, and request counters from NetServer. Global counters registered
// eagerly at init, mirroring the teacher's telemetry/churn package.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sailnavsim_tick_duration_seconds",
		Help:    "Wall-clock duration of one simulation tick (advance+log+command phases).",
		Buckets: prometheus.DefBuckets,
	})
	TicksFellBehind = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_ticks_fell_behind_total",
		Help: "Number of ticks where the scheduler was late for its target wakeup.",
	})
	BoatsAdvanced = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sailnavsim_boats_advanced",
		Help: "Number of boats in the registry at the end of the most recent tick.",
	})

	LogBatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_log_batches_total",
		Help: "Total log batches drained by the logger consumer.",
	})
	LogRowsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_log_rows_total",
		Help: "Total boat-log rows committed to the relational sink.",
	})
	LogBusyRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_log_busy_retries_total",
		Help: "Total relational-sink busy retries.",
	})
	LogBatchesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_log_batches_dropped_total",
		Help: "Total log batches dropped after an allocation or fatal sink failure.",
	})

	NetAccept = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_net_accept_total",
		Help: "Total accepted NetServer connections.",
	})
	NetAcceptFail = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sailnavsim_net_accept_fail_total",
		Help: "Total failed NetServer accepts.",
	})
	NetRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sailnavsim_net_requests_total",
		Help: "Total NetServer requests by keyword, including invalid.",
	}, []string{"keyword"})
)

func init() {
	prometheus.MustRegister(
		TickDuration, TicksFellBehind, BoatsAdvanced,
		LogBatchesTotal, LogRowsTotal, LogBusyRetriesTotal, LogBatchesDroppedTotal,
		NetAccept, NetAcceptFail, NetRequestsTotal,
	)
}

// ServeMetrics starts a dedicated /metrics HTTP endpoint on addr in the
// background. Safe to call at most once; a subsequent call is a no-op error.
func ServeMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
