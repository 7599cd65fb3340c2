// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/hx711"
)

func init() {
	gainCmd.Flags().DurationVarP(&gainOpts.Timeout, "timeout", "t", time.Second, "time to wait for the first conversion")
	gainCmd.SetHelpTemplate(gainCmd.HelpTemplate() + extendedGainHelp)
	rootCmd.AddCommand(gainCmd)
}

var (
	gainCmd = &cobra.Command{
		Use:     "gain <gain>",
		Short:   "Change the channel and gain and read a conversion",
		Args:    cobra.ExactArgs(1),
		Example: "  gphx711 gain b32",
		RunE:    gain,
	}
	gainOpts = struct {
		Timeout time.Duration
	}{}
)

var extendedGainHelp = `
Gains:
  Gains may be [a128|128|b32|32|a64|64] and are case insensitive.
  Channel A supports gains of 128 and 64, channel B only 32.
`

func gain(cmd *cobra.Command, args []string) error {
	g, err := hx711.ParseGain(args[0])
	if err != nil {
		return err
	}
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.Close()
	if err = d.SetGain(g); err != nil {
		return err
	}
	log.Infof("gain changed to %s", g)
	if err = d.WaitReady(gainOpts.Timeout); err != nil {
		return err
	}
	v, err := d.Read()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d\n", d.Gain(), v)
	return nil
}
