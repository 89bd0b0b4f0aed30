//
//  Copyright 2024 OrderlyKit, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package orderlyid

import "time"

// Clock supplies millisecond timestamps relative to Epoch and watches
// for backward movement between consecutive readings. The clock never
// errors on drift, it reports the discrepancy and the generator owns
// the recovery policy.
//
// A Clock instance belongs to exactly one generator, access is
// serialized by its owner.
type Clock interface {
	// Now returns the current reading and how far it fell behind the
	// previous one. The second value is zero while time moves forward.
	Now() (now, regress uint64)
}

// wallClock is the default Clock over the system wall clock.
type wallClock struct {
	ticker func() uint64
	last   uint64
}

// ClockOption configures the behavior of the default clock.
type ClockOption func(*wallClock)

// WithTicker replaces the timestamp source, the function returns
// milliseconds since Epoch. Deterministic tickers make generation
// reproducible in tests.
func WithTicker(ticker func() uint64) ClockOption {
	return func(c *wallClock) {
		c.ticker = ticker
	}
}

// NewClock creates the default clock instance.
func NewClock(opts ...ClockOption) Clock {
	c := &wallClock{ticker: unixMillis}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *wallClock) Now() (uint64, uint64) {
	t := c.ticker()
	var back uint64
	if t < c.last {
		back = c.last - t
	}
	c.last = t
	return t, back
}

func unixMillis() uint64 {
	ms := time.Now().UnixMilli() - epochMillis
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
