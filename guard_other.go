// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

//go:build !linux
// +build !linux

package hx711

// RealtimeGuard is equivalent to ThreadGuard on platforms without
// SCHED_FIFO.
type RealtimeGuard struct {
	// Priority is ignored.
	Priority int
}

// Acquire locks the goroutine to its current thread.
func (RealtimeGuard) Acquire() (func(), error) {
	return ThreadGuard{}.Acquire()
}
