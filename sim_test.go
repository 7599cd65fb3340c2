// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711_test

import (
	"time"

	"github.com/warthog618/hx711"
)

// sim is a simulated HX711.
//
// The DOUT pin reads the busy level until the conversion is ready. While
// PD_SCK is high after each of the first 24 rising edges of a transfer it
// presents the next bit of the conversion, MSB first. The first poll of
// DOUT after a transfer ends it, and loads the next queued conversion, if
// any.
type sim struct {
	raw   uint32
	queue []uint32
	busy  bool
	sck   int
	// rising edges since the sim was created
	edges int
	// rising edges in the current transfer
	pos      int
	doutDir  hx711.Direction
	sckDir   hx711.Direction
	sckTrace []int
	// number of polls of DOUT, outside a transfer, before the device
	// becomes ready.
	readyAfter int
	polls      int
}

type simDout struct {
	s   *sim
	err error
	// number of successful reads before err is returned
	errAfter int
}

func (p *simDout) SetDirection(d hx711.Direction) error {
	p.s.doutDir = d
	return nil
}

func (p *simDout) Value() (int, error) {
	if p.err != nil {
		if p.errAfter == 0 {
			return 0, p.err
		}
		p.errAfter--
	}
	s := p.s
	if s.sck == 1 && s.pos >= 1 && s.pos <= 24 {
		return int(s.raw>>uint(24-s.pos)) & 0x01, nil
	}
	if s.pos > 0 {
		s.pos = 0
		if len(s.queue) > 0 {
			s.raw = s.queue[0]
			s.queue = s.queue[1:]
		}
	}
	s.polls++
	if s.busy && s.polls > s.readyAfter {
		s.busy = false
	}
	if s.busy {
		return 1, nil
	}
	return 0, nil
}

func (p *simDout) SetValue(v int) error {
	panic("DOUT driven")
}

type simSck struct {
	s      *sim
	dirErr error
	valErr error
}

func (p *simSck) SetDirection(d hx711.Direction) error {
	if p.dirErr != nil {
		return p.dirErr
	}
	p.s.sckDir = d
	return nil
}

func (p *simSck) Value() (int, error) {
	return p.s.sck, nil
}

func (p *simSck) SetValue(v int) error {
	if p.valErr != nil {
		return p.valErr
	}
	s := p.s
	if v == 1 && s.sck == 0 {
		s.edges++
		s.pos++
	}
	s.sck = v
	s.sckTrace = append(s.sckTrace, v)
	return nil
}

func newSim(raw uint32) (*sim, *simDout, *simSck) {
	s := &sim{raw: raw, doutDir: -1, sckDir: -1}
	return s, &simDout{s: s}, &simSck{s: s}
}

// serve sets the conversions presented by successive transfers.
// The last is repeated once the others are consumed.
func (s *sim) serve(raws ...uint32) {
	s.raw = raws[0]
	s.queue = append([]uint32(nil), raws[1:]...)
}

// gainPulses returns the pulses beyond the data bits.
func (s *sim) gainPulses() int {
	return s.edges - 24
}

// fakeClock is a Clock where time only advances when yielding.
type fakeClock struct {
	ms     uint32
	tick   uint32
	yields int
	delays int
}

func (c *fakeClock) Millis() uint32 {
	return c.ms
}

func (c *fakeClock) Delay(d time.Duration) {
	c.delays++
}

func (c *fakeClock) Yield() {
	c.yields++
	c.ms += c.tick
}

type countingGuard struct {
	acquired int
	released int
	err      error
}

func (g *countingGuard) Acquire() (func(), error) {
	if g.err != nil {
		return nil, g.err
	}
	g.acquired++
	return func() { g.released++ }, nil
}

func newTestADC(raw uint32, options ...hx711.Option) (*hx711.HX711, *sim, *fakeClock, *countingGuard) {
	s, dout, sck := newSim(raw)
	c := &fakeClock{tick: 1}
	g := &countingGuard{}
	opts := append([]hx711.Option{hx711.WithClock(c), hx711.WithGuard(g)}, options...)
	return hx711.New(dout, sck, opts...), s, c, g
}
