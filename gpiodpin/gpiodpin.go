// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

// Package gpiodpin provides HX711 pins backed by lines requested from the
// GPIO character device.
package gpiodpin

import (
	"github.com/warthog618/gpiod"
	"github.com/warthog618/hx711"
)

// Consumer is the label the lines are requested with.
const Consumer = "hx711"

// Pin is a requested GPIO line.
type Pin struct {
	l *gpiod.Line
}

// Request requests the line at offset on the named chip, e.g. "gpiochip0".
//
// The line is requested as an input.
func Request(chip string, offset int) (*Pin, error) {
	l, err := gpiod.RequestLine(chip, offset, gpiod.AsInput, gpiod.WithConsumer(Consumer))
	if err != nil {
		return nil, err
	}
	return &Pin{l: l}, nil
}

// Close releases the line.
func (p *Pin) Close() error {
	return p.l.Close()
}

// Offset returns the offset of the line on its chip.
func (p *Pin) Offset() int {
	return p.l.Offset()
}

// SetDirection reconfigures the line as an input or output.
//
// Outputs start low.
func (p *Pin) SetDirection(d hx711.Direction) error {
	switch d {
	case hx711.Input:
		return p.l.Reconfigure(gpiod.AsInput)
	case hx711.Output:
		return p.l.Reconfigure(gpiod.AsOutput(0))
	}
	return hx711.ErrInvalidArgument
}

// Value returns the level of the line.
func (p *Pin) Value() (int, error) {
	return p.l.Value()
}

// SetValue sets the level of an output line.
func (p *Pin) SetValue(v int) error {
	if v != 0 {
		v = 1
	}
	return p.l.SetValue(v)
}
