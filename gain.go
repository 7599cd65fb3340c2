// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

import (
	"fmt"
	"strings"
)

// Gain identifies the input channel and gain of a conversion.
type Gain int

// The value of each Gain is one less than the number of clock pulses that
// select it.
const (
	// GainA128 selects channel A with a gain of 128.
	GainA128 Gain = iota
	// GainB32 selects channel B with a gain of 32.
	GainB32
	// GainA64 selects channel A with a gain of 64.
	GainA64
)

func (g Gain) valid() bool {
	return g >= GainA128 && g <= GainA64
}

// pulses returns the number of clock pulses following the data bits that
// select g for the next conversion.
func (g Gain) pulses() int {
	return int(g) + 1
}

func (g Gain) String() string {
	switch g {
	case GainA128:
		return "a128"
	case GainB32:
		return "b32"
	case GainA64:
		return "a64"
	}
	return fmt.Sprintf("gain(%d)", int(g))
}

var gainNames = map[string]Gain{
	"a128": GainA128,
	"128":  GainA128,
	"b32":  GainB32,
	"32":   GainB32,
	"a64":  GainA64,
	"64":   GainA64,
}

// ParseGain converts a gain name, such as "a128" or "64", to a Gain.
//
// Names are case insensitive. The bare factors 128, 32 and 64 imply the
// channel, as each factor is only available on one channel.
func ParseGain(s string) (Gain, error) {
	if g, ok := gainNames[strings.ToLower(s)]; ok {
		return g, nil
	}
	return GainA128, fmt.Errorf("%w: can't parse gain '%s'", ErrInvalidArgument, s)
}
