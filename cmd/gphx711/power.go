// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	powerCmd.SetHelpTemplate(powerCmd.HelpTemplate() + extendedPowerHelp)
	rootCmd.AddCommand(powerCmd)
}

var powerCmd = &cobra.Command{
	Use:       "power <up|down>",
	Short:     "Power the HX711 up or down",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      power,
}

var extendedPowerHelp = `
Powering down holds PD_SCK high. Whether the level persists after gphx711
exits depends on the backend - the mem backend leaves it driven, while
lines released by the gpiod backend may revert.
`

func power(cmd *cobra.Command, args []string) error {
	down := false
	switch strings.ToLower(args[0]) {
	case "up":
	case "down":
		down = true
	default:
		return fmt.Errorf("can't parse power state '%s'", args[0])
	}
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.Close()
	if !down {
		// Init has already powered up the device.
		return nil
	}
	if err = d.PowerDown(true); err != nil {
		return err
	}
	log.Info("powered down")
	return nil
}
