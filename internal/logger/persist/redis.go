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

package persist

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ls4096/sailnavsim-core/internal/logger"
)

// RedisMirror is an optional fast-path Sink that upserts each boat's latest
// log row into a Redis hash for live dashboards, alongside the durable
// RelationalSink. Grounded on the teacher's RedisPersister (persistence/redis.go),
// adapted from an idempotent commit-marker pattern (appropriate for the
// teacher's at-least-once vector commits) to a plain last-write-wins upsert,
// since log rows here are an append-only stream with no double-apply risk.
type RedisMirror struct {
	client *redis.Client
}

// NewRedisMirror connects to a Redis server at addr (e.g. "localhost:6379").
func NewRedisMirror(addr string) *RedisMirror {
	return &RedisMirror{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// WriteLogBatch upserts a "boat:<name>:latest" hash per entry.
func (m *RedisMirror) WriteLogBatch(entries []logger.LogEntry) error {
	ctx := context.Background()
	pipe := m.client.Pipeline()
	for _, e := range entries {
		key := fmt.Sprintf("boat:%s:latest", e.BoatName)
		pipe.HSet(ctx, key, map[string]interface{}{
			"unixTime":  e.Time.Unix(),
			"lat":       e.Lat,
			"lon":       e.Lon,
			"courseDeg": e.CourseDeg,
			"speedMs":   e.SpeedMS,
			"distanceM": e.Distance,
			"damagePct": e.DamagePct,
		})
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("redis mirror: %w", err)
	}
	return nil
}

// WriteSightBatch upserts a "boat:<name>:sight" hash per sight.
func (m *RedisMirror) WriteSightBatch(sights []logger.CelestialSightEntry) error {
	ctx := context.Background()
	pipe := m.client.Pipeline()
	for _, s := range sights {
		key := fmt.Sprintf("boat:%s:sight", s.BoatName)
		pipe.HSet(ctx, key, map[string]interface{}{
			"unixTime": s.Time.Unix(),
			"object":   s.Object,
			"azimuth":  s.Azimuth,
			"altitude": s.Altitude,
		})
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("redis mirror: %w", err)
	}
	return nil
}

// Close releases the underlying Redis client connection pool.
func (m *RedisMirror) Close() error { return m.client.Close() }
