// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

// Package gpiomem provides HX711 pins backed by the memory mapped GPIO block
// of the Raspberry Pi (BCM2835 and BCM2711).
//
// Register access is much faster than the GPIO character device, which makes
// it suitable for the microsecond clock pulses required by the HX711.
//
// Example of use:
//
//	c, err := gpiomem.Open()
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//	dout, err := c.Pin(5)
//	...
//	sck, err := c.Pin(6)
//	...
//	adc := hx711.New(dout, sck)
//
// Pins are identified by BCM GPIO number, not J8 header position.
//
// See the datasheet for full details of the BCM2835 controller:
// http://www.raspberrypi.org/wp-content/uploads/2012/02/BCM2835-ARM-Peripherals.pdf
package gpiomem

import (
	"errors"
	"sync"

	"github.com/warthog618/hx711"
)

// Chip is an open GPIO register block.
type Chip struct {
	// The mu covers read/modify/write access to the mem block, and closing.
	// Individual reads and writes skip the lock on the assumption that
	// concurrent register writes are atomic, e.g. Value and SetValue.
	mu  sync.Mutex
	mem []uint32
	// unmap releases the mapping, if any.
	unmap func() error
}

// Pin is a single GPIO pin within a Chip.
type Pin struct {
	chip     *Chip
	pin      int
	fsel     int
	levelReg int
	clearReg int
	setReg   int
	mask     uint32
}

// Mode defines the function of a Pin.
type Mode int

// Pin modes, as per the function select field.
const (
	Input Mode = iota
	Output
	Alt5
	Alt4
	Alt0
	Alt1
	Alt2
	Alt3
)

const (
	memLength = 4096

	modeMask uint32 = 7 // pin mode is 3 bits wide

	// MaxGPIOPin is one more than the highest pin on the J8 header.
	MaxGPIOPin = 28
)

var (
	// ErrAlreadyOpen indicates the register block is already open.
	ErrAlreadyOpen = errors.New("already open")

	// ErrClosed indicates the Chip has been closed.
	ErrClosed = errors.New("closed")

	// ErrInvalidPin indicates the pin number is not a J8 header GPIO.
	ErrInvalidPin = errors.New("invalid pin")
)

func newChip(mem []uint32, unmap func() error) *Chip {
	return &Chip{mem: mem, unmap: unmap}
}

// Close releases the register block.
//
// Pins from the Chip must not be used after it is closed.
func (c *Chip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mem == nil {
		return ErrClosed
	}
	c.mem = nil
	if c.unmap == nil {
		return nil
	}
	return c.unmap()
}

// Pin returns the pin with the BCM GPIO number n.
func (c *Chip) Pin(n int) (*Pin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mem == nil {
		return nil, ErrClosed
	}
	if n < 0 || n >= MaxGPIOPin {
		return nil, ErrInvalidPin
	}
	// Pre-calculate commonly used register addresses and bit masks.
	// All the J8 pins are on the first bank.
	bank := n / 32
	return &Pin{
		chip: c,
		pin:  n,
		// Function select register, 0 - 5 depending on pin
		fsel: n / 10,
		// Level register, 13 / 14 depending on bank
		levelReg: 13 + bank,
		// Clear register, 10 / 11 depending on bank
		clearReg: 10 + bank,
		// Set register, 7 / 8 depending on bank
		setReg: 7 + bank,
		mask:   uint32(1) << uint(n&0x1f),
	}, nil
}

// Pin returns the BCM GPIO number of the pin.
func (p *Pin) Pin() int {
	return p.pin
}

// Mode returns the mode of the pin in the function select register.
func (p *Pin) Mode() (Mode, error) {
	mem := p.chip.mem
	if mem == nil {
		return Input, ErrClosed
	}
	modeShift := uint(p.pin%10) * 3
	return Mode(mem[p.fsel] >> modeShift & modeMask), nil
}

// SetMode sets the pin mode.
func (p *Pin) SetMode(mode Mode) error {
	c := p.chip
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mem == nil {
		return ErrClosed
	}
	modeShift := uint(p.pin%10) * 3
	c.mem[p.fsel] = c.mem[p.fsel]&^(modeMask<<modeShift) | uint32(mode)<<modeShift
	return nil
}

// SetDirection sets the pin as an input or output.
func (p *Pin) SetDirection(d hx711.Direction) error {
	switch d {
	case hx711.Input:
		return p.SetMode(Input)
	case hx711.Output:
		return p.SetMode(Output)
	}
	return hx711.ErrInvalidArgument
}

// Value returns the level of the pin, 0 for low or 1 for high.
func (p *Pin) Value() (int, error) {
	mem := p.chip.mem
	if mem == nil {
		return 0, ErrClosed
	}
	if mem[p.levelReg]&p.mask != 0 {
		return 1, nil
	}
	return 0, nil
}

// SetValue drives the pin low if v is 0, else high.
//
// The level only appears on the pin if it is an output.
func (p *Pin) SetValue(v int) error {
	mem := p.chip.mem
	if mem == nil {
		return ErrClosed
	}
	if v == 0 {
		mem[p.clearReg] = p.mask
	} else {
		mem[p.setReg] = p.mask
	}
	return nil
}
