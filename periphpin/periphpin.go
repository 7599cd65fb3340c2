// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package periphpin provides HX711 pins backed by periph.io GPIO pins.
package periphpin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warthog618/hx711"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Pin adapts a periph.io PinIO.
type Pin struct {
	p gpio.PinIO
}

// ErrNotFound indicates no pin is registered with the requested name.
var ErrNotFound = errors.New("pin not found")

var (
	initOnce sync.Once
	initErr  error
)

// New wraps p.
func New(p gpio.PinIO) *Pin {
	return &Pin{p: p}
}

// ByName returns the registered pin called name, e.g. "GPIO5".
//
// The periph.io host drivers are loaded on first use.
func ByName(name string) (*Pin, error) {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})
	if initErr != nil {
		return nil, initErr
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
	}
	return New(p), nil
}

// Name returns the name of the underlying pin.
func (p *Pin) Name() string {
	return p.p.Name()
}

// SetDirection sets the pin as an input, with pull and edge detection left
// unchanged, or as an output driven low.
func (p *Pin) SetDirection(d hx711.Direction) error {
	switch d {
	case hx711.Input:
		return p.p.In(gpio.PullNoChange, gpio.NoEdge)
	case hx711.Output:
		return p.p.Out(gpio.Low)
	}
	return hx711.ErrInvalidArgument
}

// Value returns the level of the pin.
func (p *Pin) Value() (int, error) {
	if p.p.Read() == gpio.High {
		return 1, nil
	}
	return 0, nil
}

// SetValue drives the pin low if v is 0, else high.
func (p *Pin) SetValue(v int) error {
	return p.p.Out(gpio.Level(v != 0))
}
