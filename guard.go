// SPDX-License-Identifier: MIT
//
// Copyright © 2026 Kent Gibson <warthog618@gmail.com>.

package hx711

import "runtime"

// Guard provides exclusive execution while data is clocked out of the device.
//
// The transfer takes around 50µs and the device powers down if PD_SCK is
// held high for more than 60µs, so the transfer should not be preempted.
type Guard interface {
	// Acquire enters the guarded section.
	// The returned release exits it and must be called exactly once.
	Acquire() (release func(), err error)
}

// ThreadGuard locks the calling goroutine to its OS thread while held.
//
// This prevents the goroutine being migrated mid transfer, but does not
// prevent the thread itself being preempted by the kernel.
type ThreadGuard struct{}

// Acquire locks the goroutine to its current thread.
func (ThreadGuard) Acquire() (func(), error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
