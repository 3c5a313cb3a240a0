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

package netserver

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Counters is the atomic statistics block dumped by the sys_req_counts
// request (§4.8): one counter per connection-level event plus one per
// request keyword (including invalid). Each field is its own atomic word so
// no counter update requires a lock, per §5's "Counters: atomic integers; no
// mutex needed."
type Counters struct {
	Accept     atomic.Int64
	AcceptFail atomic.Int64
	Read       atomic.Int64
	ReadFail   atomic.Int64
	DataTooLong atomic.Int64
	Message    atomic.Int64
	MessageFail atomic.Int64

	BdNc           atomic.Int64
	Wind           atomic.Int64
	WindC          atomic.Int64
	WindGust       atomic.Int64
	WindGustC      atomic.Int64
	OceanCurrent   atomic.Int64
	SeaIce         atomic.Int64
	WaveHeight     atomic.Int64
	Bd             atomic.Int64
	BoatCmd        atomic.Int64
	BoatGroupMembers atomic.Int64
	SysReqCounts   atomic.Int64
	Invalid        atomic.Int64
}

// CSV renders every counter as a single comma-separated line, per §4.8's
// sys_req_counts response.
func (c *Counters) CSV() string {
	fields := []string{
		fmt.Sprintf("%d", c.Accept.Load()),
		fmt.Sprintf("%d", c.AcceptFail.Load()),
		fmt.Sprintf("%d", c.Read.Load()),
		fmt.Sprintf("%d", c.ReadFail.Load()),
		fmt.Sprintf("%d", c.DataTooLong.Load()),
		fmt.Sprintf("%d", c.Message.Load()),
		fmt.Sprintf("%d", c.MessageFail.Load()),
		fmt.Sprintf("%d", c.BdNc.Load()),
		fmt.Sprintf("%d", c.Wind.Load()),
		fmt.Sprintf("%d", c.WindC.Load()),
		fmt.Sprintf("%d", c.WindGust.Load()),
		fmt.Sprintf("%d", c.WindGustC.Load()),
		fmt.Sprintf("%d", c.OceanCurrent.Load()),
		fmt.Sprintf("%d", c.SeaIce.Load()),
		fmt.Sprintf("%d", c.WaveHeight.Load()),
		fmt.Sprintf("%d", c.Bd.Load()),
		fmt.Sprintf("%d", c.BoatCmd.Load()),
		fmt.Sprintf("%d", c.BoatGroupMembers.Load()),
		fmt.Sprintf("%d", c.SysReqCounts.Load()),
		fmt.Sprintf("%d", c.Invalid.Load()),
	}
	return strings.Join(fields, ",")
}
