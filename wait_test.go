// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/hx711"
)

func TestIsReady(t *testing.T) {
	adc, s, _, _ := newTestADC(0)
	ready, err := adc.IsReady()
	require.Nil(t, err)
	assert.True(t, ready)

	s.busy = true
	s.readyAfter = 1 << 30
	ready, err = adc.IsReady()
	require.Nil(t, err)
	assert.False(t, ready)
	assert.Zero(t, s.edges)
}

func TestIsReadyPinError(t *testing.T) {
	_, dout, sck := newSim(0)
	dout.err = errors.New("read failed")
	adc := hx711.New(dout, sck)
	ready, err := adc.IsReady()
	assert.Equal(t, dout.err, err)
	assert.False(t, ready)
}

func TestWaitReady(t *testing.T) {
	patterns := []struct {
		name       string
		busy       bool
		readyAfter int
		timeout    time.Duration
		yields     int
	}{
		{"ready", false, 0, 100 * time.Millisecond, 0},
		{"ready zero", false, 0, 0, 0},
		{"ready negative", false, 0, -time.Second, 0},
		{"after one", true, 1, 100 * time.Millisecond, 1},
		{"after several", true, 3, 100 * time.Millisecond, 3},
		{"at limit", true, 99, 100 * time.Millisecond, 99},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			adc, s, c, _ := newTestADC(0)
			s.busy = p.busy
			s.readyAfter = p.readyAfter
			require.Nil(t, adc.WaitReady(p.timeout))
			assert.Equal(t, p.yields, c.yields)
			assert.Zero(t, s.edges)
		}
		t.Run(p.name, tf)
	}
}

func TestWaitReadyTimeout(t *testing.T) {
	patterns := []struct {
		name    string
		start   uint32
		tick    uint32
		timeout time.Duration
		yields  int
	}{
		{"zero", 0, 1, 0, 0},
		{"negative", 0, 1, -time.Millisecond, 0},
		{"sub-millisecond", 0, 1, 500 * time.Microsecond, 1},
		{"fractional", 0, 1, 2500 * time.Microsecond, 3},
		{"one", 0, 1, time.Millisecond, 1},
		{"short", 1000, 1, 5 * time.Millisecond, 5},
		{"gain change", 0, 1, 200 * time.Millisecond, 200},
		{"coarse tick", 0, 10, 25 * time.Millisecond, 3},
		{"wrap", 0xfffffff0, 1, 100 * time.Millisecond, 100},
		{"wrap coarse", 0xfffffffe, 10, 50 * time.Millisecond, 5},
		{"at wrap", 0xffffffff, 1, 2 * time.Millisecond, 2},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			adc, s, c, _ := newTestADC(0)
			c.ms = p.start
			c.tick = p.tick
			s.busy = true
			s.readyAfter = 1 << 30
			err := adc.WaitReady(p.timeout)
			assert.True(t, errors.Is(err, hx711.ErrTimeout))
			assert.Equal(t, p.yields, c.yields)
			elapsed := c.ms - p.start
			assert.GreaterOrEqual(t, time.Duration(elapsed)*time.Millisecond, p.timeout)
			assert.Zero(t, s.edges)
		}
		t.Run(p.name, tf)
	}
}

func TestWaitReadyPinError(t *testing.T) {
	s, dout, sck := newSim(0)
	c := &fakeClock{tick: 1}
	s.busy = true
	s.readyAfter = 1 << 30
	dout.err = errors.New("read failed")
	dout.errAfter = 4
	adc := hx711.New(dout, sck, hx711.WithClock(c))
	err := adc.WaitReady(time.Second)
	assert.Equal(t, dout.err, err)
	assert.Equal(t, 4, c.yields)
}

func TestSystemClock(t *testing.T) {
	c := hx711.SystemClock{Tick: 2 * time.Millisecond}
	start := c.Millis()
	c.Yield()
	assert.GreaterOrEqual(t, c.Millis()-start, uint32(2))

	t0 := time.Now()
	c.Delay(50 * time.Microsecond)
	assert.GreaterOrEqual(t, time.Since(t0), 50*time.Microsecond)
	// non-positive delays return immediately
	c.Delay(0)
	c.Delay(-time.Second)
}

func TestSystemClockWaitReady(t *testing.T) {
	adc, s, _, _ := newTestADC(0, hx711.WithClock(hx711.SystemClock{}))
	s.busy = true
	s.readyAfter = 1 << 30
	start := time.Now()
	err := adc.WaitReady(20 * time.Millisecond)
	assert.True(t, errors.Is(err, hx711.ErrTimeout))
	assert.GreaterOrEqual(t, time.Since(start), 19*time.Millisecond)
}

func TestThreadGuard(t *testing.T) {
	release, err := hx711.ThreadGuard{}.Acquire()
	require.Nil(t, err)
	require.NotNil(t, release)
	release()
}
