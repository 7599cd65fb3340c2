// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

import (
	"math"
	"time"
)

// IsReady returns true if a conversion is ready to be read.
//
// The device holds DOUT high while converting and pulls it low once the
// conversion is available.
func (adc *HX711) IsReady() (bool, error) {
	if err := adc.check(); err != nil {
		return false, err
	}
	v, err := adc.dout.Value()
	if err != nil {
		return false, err
	}
	return v == 0, nil
}

// WaitReady waits for a conversion to be ready to be read.
//
// The device is polled, yielding a clock tick between polls, until it is
// ready or the timeout expires, in which case ErrTimeout is returned.
// The device is polled at least once, so a zero timeout returns
// immediately, successfully if the device is ready.
func (adc *HX711) WaitReady(timeout time.Duration) error {
	if err := adc.check(); err != nil {
		return err
	}
	limit := timeoutMillis(timeout)
	started := adc.clock.Millis()
	for {
		ready, err := adc.IsReady()
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		// Millis wraps, so elapsed must be the modular difference.
		// Comparing against started+limit fails across the wrap.
		if adc.clock.Millis()-started >= limit {
			return ErrTimeout
		}
		adc.clock.Yield()
	}
}

// timeoutMillis converts timeout to milliseconds, rounding up so the wait
// is never shorter than requested.
func timeoutMillis(timeout time.Duration) uint32 {
	if timeout <= 0 {
		return 0
	}
	ms := (timeout + time.Millisecond - 1) / time.Millisecond
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}
