// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/gpiod/device/rpi"
	"github.com/warthog618/hx711"
	"github.com/warthog618/hx711/gpiodpin"
	"github.com/warthog618/hx711/gpiomem"
	"github.com/warthog618/hx711/periphpin"
)

var version = "undefined"

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootOpts.Backend, "backend", "b", "gpiod", "GPIO backend [gpiod|mem|periph]")
	pf.StringVarP(&rootOpts.Chip, "chip", "c", "gpiochip0", "GPIO chip (gpiod backend only)")
	pf.StringVar(&rootOpts.Dout, "dout", "GPIO5", "pin connected to DOUT")
	pf.StringVar(&rootOpts.Sck, "sck", "GPIO6", "pin connected to PD_SCK")
	pf.StringVarP(&rootOpts.Gain, "gain", "g", "a128", "channel and gain [a128|b32|a64]")
	pf.DurationVar(&rootOpts.Pulse, "pulse", time.Microsecond, "PD_SCK pulse width")
	pf.DurationVar(&rootOpts.Tick, "tick", time.Millisecond, "poll interval while waiting for a conversion")
	pf.BoolVarP(&rootOpts.Realtime, "realtime", "r", false, "use SCHED_FIFO while clocking out data")
	pf.IntVar(&rootOpts.Priority, "priority", 50, "SCHED_FIFO priority (with --realtime)")
	pf.StringVarP(&rootOpts.LogLevel, "log-level", "l", "WARNING", "log level [DEBUG|INFO|NOTICE|WARNING|ERROR]")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + extendedRootHelp)
}

var (
	rootCmd = &cobra.Command{
		Use:   "gphx711",
		Short: "gphx711 is a utility to read an HX711 weigh scale ADC",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
		PersistentPreRunE: preroot,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
	}
	rootOpts = struct {
		Backend  string
		Chip     string
		Dout     string
		Sck      string
		Gain     string
		Pulse    time.Duration
		Tick     time.Duration
		Realtime bool
		Priority int
		LogLevel string
	}{}
)

var extendedRootHelp = `
Pins:
  Pins may be identified by name (J8pXX or GPIOXX) or number (0-27).
  With the periph backend the pin names are passed to periph.io unaltered.
`

func main() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		logErr(cmd, err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "gphx711 %s: %s\n", cmd.Name(), err)
}

func preroot(cmd *cobra.Command, args []string) error {
	return initLogging(rootOpts.LogLevel)
}

// device is an HX711 along with the resources backing its pins.
type device struct {
	*hx711.HX711
	closers []func() error
}

func (d *device) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Warningf("close: %s", err)
		}
	}
}

func newDevice() (*device, error) {
	g, err := hx711.ParseGain(rootOpts.Gain)
	if err != nil {
		return nil, err
	}
	d := &device{}
	dout, sck, err := openPins(d)
	if err != nil {
		d.Close()
		return nil, err
	}
	var guard hx711.Guard = hx711.ThreadGuard{}
	if rootOpts.Realtime {
		guard = hx711.RealtimeGuard{Priority: rootOpts.Priority}
	}
	d.HX711 = hx711.New(dout, sck,
		hx711.WithGain(g),
		hx711.WithPulseWidth(rootOpts.Pulse),
		hx711.WithClock(hx711.SystemClock{Tick: rootOpts.Tick}),
		hx711.WithGuard(guard))
	return d, nil
}

// openDevice opens the pins and initialises the HX711.
func openDevice() (*device, error) {
	d, err := newDevice()
	if err != nil {
		return nil, err
	}
	log.Debugf("initialising with gain %s", rootOpts.Gain)
	if err := d.Init(); err != nil {
		d.Close()
		return nil, err
	}
	log.Infof("initialised dout=%s sck=%s gain=%s", rootOpts.Dout, rootOpts.Sck, d.Gain())
	return d, nil
}

func openPins(d *device) (dout, sck hx711.Pin, err error) {
	log.Debugf("opening %s backend", rootOpts.Backend)
	switch rootOpts.Backend {
	case "gpiod":
		return openGpiodPins(d)
	case "mem":
		return openMemPins(d)
	case "periph":
		return openPeriphPins()
	}
	return nil, nil, fmt.Errorf("unknown backend '%s'", rootOpts.Backend)
}

func openGpiodPins(d *device) (hx711.Pin, hx711.Pin, error) {
	oo, err := parseOffsets(rootOpts.Dout, rootOpts.Sck)
	if err != nil {
		return nil, nil, err
	}
	dout, err := gpiodpin.Request(rootOpts.Chip, oo[0])
	if err != nil {
		return nil, nil, err
	}
	d.closers = append(d.closers, dout.Close)
	sck, err := gpiodpin.Request(rootOpts.Chip, oo[1])
	if err != nil {
		return nil, nil, err
	}
	d.closers = append(d.closers, sck.Close)
	return dout, sck, nil
}

func openMemPins(d *device) (hx711.Pin, hx711.Pin, error) {
	oo, err := parseOffsets(rootOpts.Dout, rootOpts.Sck)
	if err != nil {
		return nil, nil, err
	}
	c, err := gpiomem.Open()
	if err != nil {
		return nil, nil, err
	}
	d.closers = append(d.closers, c.Close)
	dout, err := c.Pin(oo[0])
	if err != nil {
		return nil, nil, err
	}
	sck, err := c.Pin(oo[1])
	if err != nil {
		return nil, nil, err
	}
	return dout, sck, nil
}

func openPeriphPins() (hx711.Pin, hx711.Pin, error) {
	dout, err := periphpin.ByName(rootOpts.Dout)
	if err != nil {
		return nil, nil, err
	}
	sck, err := periphpin.ByName(rootOpts.Sck)
	if err != nil {
		return nil, nil, err
	}
	return dout, sck, nil
}

func parseOffsets(args ...string) ([]int, error) {
	oo := []int(nil)
	for _, arg := range args {
		o, err := rpi.Pin(arg)
		if err != nil {
			return nil, fmt.Errorf("can't parse pin '%s'", arg)
		}
		oo = append(oo, o)
	}
	return oo, nil
}
