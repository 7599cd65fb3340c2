// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package hx711

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RealtimeGuard locks the calling goroutine to its OS thread and raises the
// thread to the SCHED_FIFO real-time policy while held.
//
// Raising the policy requires CAP_SYS_NICE, and Acquire returns the error
// if it is not permitted.
type RealtimeGuard struct {
	// Priority is the SCHED_FIFO priority, 1 to 99.
	// If zero, 50 is used.
	Priority int
}

// Acquire switches the current thread to SCHED_FIFO.
//
// The release restores the previous scheduling attributes. If they cannot
// be restored the thread is left locked, so the runtime discards it when
// the goroutine exits rather than reusing it.
func (g RealtimeGuard) Acquire() (func(), error) {
	prio := g.Priority
	if prio == 0 {
		prio = 50
	}
	runtime.LockOSThread()
	prev, err := unix.SchedGetAttr(0, 0)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(prio),
	}
	if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return func() {
		prev.Size = unix.SizeofSchedAttr
		if unix.SchedSetAttr(0, prev, 0) == nil {
			runtime.UnlockOSThread()
		}
	}, nil
}
