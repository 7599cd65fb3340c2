// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/gpiod/device/rpi"
	"github.com/warthog618/hx711"
	"github.com/warthog618/hx711/gpiodpin"
)

// This example reads samples from an HX711 connected to the RPI by two data
// lines - DOUT and PD_SCK. The default pin assignments are defined in
// loadConfig, but can be altered via configuration (env, flag or config file).
// PD_SCK is an output so do not run this example on a board where that pin
// serves other purposes.
func main() {
	cfg := loadConfig()
	gain, err := hx711.ParseGain(cfg.MustGet("gain").String())
	if err != nil {
		fail(err)
	}
	chip := cfg.MustGet("gpiochip").String()
	dout, err := gpiodpin.Request(chip, cfg.MustGet("dout").Int())
	if err != nil {
		fail(err)
	}
	defer dout.Close()
	sck, err := gpiodpin.Request(chip, cfg.MustGet("sck").Int())
	if err != nil {
		fail(err)
	}
	defer sck.Close()
	adc := hx711.New(dout, sck,
		hx711.WithGain(gain),
		hx711.WithPulseWidth(cfg.MustGet("pulse").Duration()),
		hx711.WithClock(hx711.SystemClock{Tick: cfg.MustGet("tick").Duration()}))
	if err = adc.Init(); err != nil {
		fail(err)
	}
	timeout := cfg.MustGet("timeout").Duration()
	for i := 0; i < cfg.MustGet("num").Int(); i++ {
		if err = adc.WaitReady(timeout); err != nil {
			fmt.Printf("sample %d: %s\n", i, err)
			continue
		}
		v, err := adc.Read()
		if err != nil {
			fmt.Printf("sample %d: %s\n", i, err)
			continue
		}
		fmt.Printf("%s[%d]=%d (0x%06x)\n", adc.Gain(), i, v, uint32(v)&0xffffff)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "hx711: %s\n", err)
	os.Exit(1)
}

func loadConfig() *config.Config {
	defaultConfig := map[string]interface{}{
		"gpiochip": "gpiochip0",
		"dout":     rpi.GPIO5,
		"sck":      rpi.GPIO6,
		"gain":     "a128",
		"pulse":    "1us",
		"tick":     "1ms",
		"timeout":  "500ms",
		"num":      10,
	}
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("HX711_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "hx711.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust)
	return cfg
}
