// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package hx711 provides a bit bashed device driver for the HX711 24-bit ADC
// used in weigh scales.
//
// The HX711 is connected by two lines, PD_SCK which is driven by the host,
// and DOUT which is driven by the device. DOUT falls low when a conversion
// is available, and the 24 bits of the conversion are then clocked out MSB
// first. One to three additional clock pulses follow the data to select the
// channel and gain of the next conversion.
//
// Example of use:
//
//	adc := hx711.New(dout, sck, hx711.WithGain(hx711.GainA128))
//	if err := adc.Init(); err != nil {
//		return err
//	}
//	for {
//		if err := adc.WaitReady(time.Second); err != nil {
//			return err
//		}
//		v, err := adc.Read()
//		...
//	}
//
// The pins are provided by the caller, and may be backed by the GPIO
// character device (gpiodpin), periph.io (periphpin), or the memory mapped
// Raspberry Pi GPIO block (gpiomem).
package hx711

import (
	"errors"
	"fmt"
	"time"
)

// Direction is the direction of a Pin.
type Direction int

const (
	// Input configures the pin to be read.
	Input Direction = iota
	// Output configures the pin to be driven.
	Output
)

// Pin is a single GPIO line used to communicate with the HX711.
//
// Values are 0 for low and 1 for high.
type Pin interface {
	SetDirection(d Direction) error
	Value() (int, error)
	SetValue(v int) error
}

// HX711 is an HX711 connected via two GPIO lines.
//
// The HX711 is not safe for concurrent use. The pins are assumed to be
// exclusively owned by the HX711 for its lifetime.
type HX711 struct {
	dout  Pin
	sck   Pin
	gain  Gain
	clock Clock
	guard Guard
	// time between clock edges (i.e. half the cycle time)
	tclk time.Duration
}

const (
	// readyTimeout bounds the wait for a conversion when changing gain or
	// averaging.
	readyTimeout = 200 * time.Millisecond

	defaultTclk = time.Microsecond
)

// New creates an HX711 using the dout and sck pins.
//
// No pins are touched until Init is called.
func New(dout, sck Pin, options ...Option) *HX711 {
	adc := &HX711{
		dout:  dout,
		sck:   sck,
		gain:  GainA128,
		clock: SystemClock{},
		guard: ThreadGuard{},
		tclk:  defaultTclk,
	}
	for _, option := range options {
		option(adc)
	}
	return adc
}

// Option modifies the configuration of an HX711 created by New.
type Option func(*HX711)

// WithGain sets the channel and gain applied by Init.
//
// The default is GainA128.
func WithGain(g Gain) Option {
	return func(adc *HX711) {
		adc.gain = g
	}
}

// WithClock sets the clock used for bit timing and timeouts.
func WithClock(c Clock) Option {
	return func(adc *HX711) {
		adc.clock = c
	}
}

// WithGuard sets the guard held while clocking data out of the device.
func WithGuard(g Guard) Option {
	return func(adc *HX711) {
		adc.guard = g
	}
}

// WithPulseWidth sets the time PD_SCK is held at each level.
//
// The HX711 requires at least 0.2µs, and PD_SCK must not be held high for
// more than 50µs, else the device powers down.
func WithPulseWidth(d time.Duration) Option {
	return func(adc *HX711) {
		adc.tclk = d
	}
}

var (
	// ErrInvalidArgument indicates a nil device, a nil pin, or a parameter
	// out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTimeout indicates the device did not signal a conversion was ready
	// within the timeout.
	ErrTimeout = errors.New("timeout waiting for conversion")
)

func (adc *HX711) check() error {
	if adc == nil || adc.dout == nil || adc.sck == nil {
		return ErrInvalidArgument
	}
	return nil
}

// Init configures the pins, powers up the device and selects the configured
// gain.
//
// The gain selection requires a conversion to be read, so Init blocks until
// the device is ready, returning ErrTimeout if it does not become ready.
func (adc *HX711) Init() error {
	if err := adc.check(); err != nil {
		return err
	}
	if err := adc.dout.SetDirection(Input); err != nil {
		return err
	}
	if err := adc.sck.SetDirection(Output); err != nil {
		return err
	}
	if err := adc.PowerDown(false); err != nil {
		return err
	}
	return adc.SetGain(adc.gain)
}

// PowerDown powers the device down, or up if down is false.
//
// The device enters power down when PD_SCK is held high for more than
// 60µs, so the level is held for at least a millisecond before returning.
// Any pending conversion is discarded, and the device restarts its
// conversion pipeline on power up.
func (adc *HX711) PowerDown(down bool) error {
	if err := adc.check(); err != nil {
		return err
	}
	v := 0
	if down {
		v = 1
	}
	if err := adc.sck.SetValue(v); err != nil {
		return err
	}
	adc.settle()
	return nil
}

// settle holds the current PD_SCK level for at least a millisecond,
// independent of the Clock tick.
//
// Millis truncates, so it must advance twice to guarantee a full
// millisecond has elapsed.
func (adc *HX711) settle() {
	started := adc.clock.Millis()
	for adc.clock.Millis()-started < 2 {
		adc.clock.Yield()
	}
}

// SetGain selects the channel and gain for subsequent conversions.
//
// The selection is latched by the device while a conversion is read, so
// SetGain waits for the device to become ready and reads, and discards, the
// pending conversion. The gain is left unchanged if the device does not
// become ready.
func (adc *HX711) SetGain(g Gain) error {
	if err := adc.check(); err != nil {
		return err
	}
	if !g.valid() {
		return fmt.Errorf("%w: gain %d", ErrInvalidArgument, int(g))
	}
	if err := adc.WaitReady(readyTimeout); err != nil {
		return err
	}
	if _, err := adc.shift(g); err != nil {
		return err
	}
	adc.gain = g
	return nil
}

// Gain returns the channel and gain currently selected.
func (adc *HX711) Gain() Gain {
	return adc.gain
}

// Read clocks out the current conversion and returns its value.
//
// Read does not check that a conversion is ready. The caller must first
// confirm that with IsReady or WaitReady, else the value returned is
// garbage.
func (adc *HX711) Read() (int32, error) {
	if err := adc.check(); err != nil {
		return 0, err
	}
	raw, err := adc.shift(adc.gain)
	if err != nil {
		return 0, err
	}
	return Decode(raw), nil
}

// ReadAverage returns the mean of the next times conversions.
//
// Each conversion is waited for, with the same timeout as SetGain.
func (adc *HX711) ReadAverage(times int) (int32, error) {
	if err := adc.check(); err != nil {
		return 0, err
	}
	if times < 1 {
		return 0, fmt.Errorf("%w: times %d", ErrInvalidArgument, times)
	}
	var sum int64
	for i := 0; i < times; i++ {
		if err := adc.WaitReady(readyTimeout); err != nil {
			return 0, err
		}
		v, err := adc.Read()
		if err != nil {
			return 0, err
		}
		sum += int64(v)
	}
	return int32(sum / int64(times)), nil
}
