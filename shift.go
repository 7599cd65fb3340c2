// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

// shift clocks the 24 bits of the current conversion out of the device, and
// then clocks the pulses that select g for the next conversion.
//
// The device must be ready. The whole transfer is performed with the guard
// held, as a stretched clock high period can power down the device and a
// missed edge corrupts both the data and the gain selection.
func (adc *HX711) shift(g Gain) (data uint32, err error) {
	release, err := adc.guard.Acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	for i := 0; i < 24; i++ {
		b, err := adc.clockIn()
		if err != nil {
			return 0, err
		}
		data |= uint32(b&0x01) << uint(23-i)
	}
	// select gain for the next conversion
	for i := 0; i < g.pulses(); i++ {
		if err := adc.clock1(); err != nil {
			return 0, err
		}
	}
	return data, nil
}

// clockIn clocks in a data bit from the device on DOUT.
// Assumes clock starts low and ends low.
func (adc *HX711) clockIn() (int, error) {
	if err := adc.sck.SetValue(1); err != nil {
		return 0, err
	}
	adc.clock.Delay(adc.tclk)
	// device shifts out on the rising edge
	b, err := adc.dout.Value()
	if err != nil {
		return 0, err
	}
	if err := adc.sck.SetValue(0); err != nil {
		return 0, err
	}
	adc.clock.Delay(adc.tclk)
	return b, nil
}

// clock1 emits a single clock pulse without sampling DOUT.
func (adc *HX711) clock1() error {
	if err := adc.sck.SetValue(1); err != nil {
		return err
	}
	adc.clock.Delay(adc.tclk)
	if err := adc.sck.SetValue(0); err != nil {
		return err
	}
	adc.clock.Delay(adc.tclk)
	return nil
}

// Decode converts a raw 24-bit two's complement conversion to a signed value.
//
// Bits above bit 23 of raw are ignored.
func Decode(raw uint32) int32 {
	return int32(raw<<8) >> 8
}
