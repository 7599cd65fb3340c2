// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/hx711"
)

func init() {
	monCmd.Flags().UintVarP(&monOpts.NumSamples, "num-samples", "n", 0, "exit after n samples")
	monCmd.Flags().DurationVarP(&monOpts.Timeout, "timeout", "t", time.Second, "time to wait for each conversion")
	monCmd.Flags().BoolVarP(&monOpts.Quiet, "quiet", "q", false, "display only the sample values")
	rootCmd.AddCommand(monCmd)
}

var (
	monCmd = &cobra.Command{
		Use:   "mon",
		Short: "Monitor the conversions of the HX711",
		Long:  `Read conversions as they become available and print them to standard output.`,
		Args:  cobra.NoArgs,
		RunE:  mon,
	}
	monOpts = struct {
		NumSamples uint
		Timeout    time.Duration
		Quiet      bool
	}{}
)

type sample struct {
	Time  time.Time
	Value int32
	Err   error
}

func mon(cmd *cobra.Command, args []string) error {
	d, err := openDevice()
	if err != nil {
		return err
	}
	defer d.Close()
	done := make(chan struct{})
	samples := make(chan sample)
	go sampler(d, samples, done)
	err = monWait(samples)
	close(done)
	// wait for the sampler to release the device
	for range samples {
	}
	return err
}

// sampler reads conversions from d until done is closed or an error other
// than a timeout occurs. The samples channel is closed on return.
func sampler(d *device, samples chan<- sample, done <-chan struct{}) {
	defer close(samples)
	for {
		s := sample{}
		s.Err = d.WaitReady(monOpts.Timeout)
		if s.Err == nil {
			s.Value, s.Err = d.Read()
		}
		s.Time = time.Now()
		select {
		case samples <- s:
		case <-done:
			return
		}
		if s.Err != nil && !errors.Is(s.Err, hx711.ErrTimeout) {
			return
		}
	}
}

func monWait(samples <-chan sample) error {
	sigdone := make(chan os.Signal, 1)
	signal.Notify(sigdone, os.Interrupt)
	defer signal.Stop(sigdone)
	count := uint(0)
	for {
		select {
		case s := <-samples:
			if s.Err != nil {
				if errors.Is(s.Err, hx711.ErrTimeout) {
					log.Warningf("no conversion within %s", monOpts.Timeout)
					continue
				}
				return s.Err
			}
			if monOpts.Quiet {
				fmt.Println(s.Value)
			} else {
				fmt.Printf("sample: %9d %s\n", s.Value, s.Time.Format(time.RFC3339Nano))
			}
			count++
			if monOpts.NumSamples > 0 && count >= monOpts.NumSamples {
				return nil
			}
		case <-sigdone:
			return nil
		}
	}
}
