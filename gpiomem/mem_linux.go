// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package gpiomem

import (
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	openMu sync.Mutex
	opened bool
)

// Open memory maps the GPIO registers from /dev/gpiomem.
//
// Only one Chip may be open at a time.
func Open() (*Chip, error) {
	openMu.Lock()
	defer openMu.Unlock()
	if opened {
		return nil, ErrAlreadyOpen
	}
	f, err := os.OpenFile("/dev/gpiomem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mem8, err := unix.Mmap(
		int(f.Fd()),
		0,
		memLength,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	// 32 bit register view of the mapped bytes
	mem := unsafe.Slice((*uint32)(unsafe.Pointer(&mem8[0])), len(mem8)/4)
	opened = true
	unmap := func() error {
		openMu.Lock()
		defer openMu.Unlock()
		opened = false
		return unix.Munmap(mem8)
	}
	return newChip(mem, unmap), nil
}
