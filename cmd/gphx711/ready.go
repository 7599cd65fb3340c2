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
)

func init() {
	readyCmd.Flags().DurationVarP(&readyOpts.Wait, "wait", "w", 0, "time to wait for a conversion")
	rootCmd.AddCommand(readyCmd)
}

var (
	readyCmd = &cobra.Command{
		Use:   "ready",
		Short: "Report if a conversion is ready",
		Long:  `Initialise the HX711 and report if a conversion is ready to be read, optionally waiting for one.`,
		Args:  cobra.NoArgs,
		RunE:  ready,
	}
	readyOpts = struct {
		Wait time.Duration
	}{}
)

func ready(cmd *cobra.Command, args []string) error {
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.Close()
	if readyOpts.Wait > 0 {
		err = d.WaitReady(readyOpts.Wait)
		if err != nil {
			return err
		}
		fmt.Println("ready")
		return nil
	}
	r, err := d.IsReady()
	if err != nil {
		return err
	}
	if r {
		fmt.Println("ready")
	} else {
		fmt.Println("busy")
	}
	return nil
}
