// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("gphx711")

var logFormat = logging.MustStringFormatter(
	"%{time:15:04:05.000} %{level:.4s} ▶ %{message}",
)

// initLogging directs diagnostics to stderr, leaving stdout for results.
func initLogging(level string) error {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logFormat))
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}
