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
	readCmd.Flags().UintVarP(&readOpts.Num, "num", "n", 1, "number of samples to read")
	readCmd.Flags().IntVarP(&readOpts.Average, "average", "a", 1, "number of conversions averaged into each sample, each waited for up to --timeout")
	readCmd.Flags().DurationVarP(&readOpts.Timeout, "timeout", "t", time.Second, "time to wait for each conversion")
	readCmd.Flags().BoolVarP(&readOpts.Hex, "hex", "x", false, "display the raw 24-bit value in hex")
	rootCmd.AddCommand(readCmd)
}

var (
	readCmd = &cobra.Command{
		Use:     "read",
		Short:   "Read conversions from the HX711",
		Args:    cobra.NoArgs,
		Example: "  gphx711 read -n 10 -a 4 --gain b32",
		RunE:    read,
	}
	readOpts = struct {
		Num     uint
		Average int
		Timeout time.Duration
		Hex     bool
	}{}
)

func read(cmd *cobra.Command, args []string) error {
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.Close()
	for i := uint(0); i < readOpts.Num; i++ {
		v, err := readSample(d)
		if err != nil {
			return err
		}
		printSample(v)
	}
	return nil
}

// readSample returns the mean of readOpts.Average conversions, each waited
// for with readOpts.Timeout.
func readSample(d *device) (int32, error) {
	n := readOpts.Average
	if n < 1 {
		n = 1
	}
	var sum int64
	for i := 0; i < n; i++ {
		if err := d.WaitReady(readOpts.Timeout); err != nil {
			return 0, err
		}
		v, err := d.Read()
		if err != nil {
			return 0, err
		}
		sum += int64(v)
	}
	return int32(sum / int64(n)), nil
}

func printSample(v int32) {
	if readOpts.Hex {
		fmt.Printf("0x%06x\n", uint32(v)&0xffffff)
		return
	}
	fmt.Println(v)
}
