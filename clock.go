// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Clock provides the timing used to drive the device.
type Clock interface {
	// Millis returns a monotonic millisecond count.
	// The count wraps at 2^32, roughly every 49.7 days.
	Millis() uint32

	// Delay busy waits for d.
	// It is called with the guard held so must not block.
	Delay(d time.Duration)

	// Yield suspends the caller for roughly one scheduling tick.
	Yield()
}

// SystemClock is a Clock based on the Go runtime monotonic clock.
type SystemClock struct {
	// Tick is the period Yield sleeps for.
	// If zero, a millisecond is used.
	// It does not affect the power settling time, which is always at
	// least a millisecond.
	Tick time.Duration
}

var epoch = time.Now()

// Millis returns the milliseconds since the package was initialised,
// truncated to 32 bits.
func (SystemClock) Millis() uint32 {
	return uint32(time.Since(epoch) / time.Millisecond)
}

// Delay spins until d has elapsed.
//
// time.Sleep cannot provide microsecond delays as its resolution is
// determined by the scheduler.
func (SystemClock) Delay(d time.Duration) {
	if d <= 0 {
		return
	}
	cpu.Nanospin(d)
}

// Yield sleeps for a tick.
func (c SystemClock) Yield() {
	t := c.Tick
	if t <= 0 {
		t = time.Millisecond
	}
	time.Sleep(t)
}
