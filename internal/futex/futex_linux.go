// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package futex

import (
	"syscall"
	"unsafe"
)

const (
	futexWaitPrivate    = 0 | 128 // FUTEX_WAIT | FUTEX_PRIVATE_FLAG
	futexWakePrivate    = 1 | 128 // FUTEX_WAKE | FUTEX_PRIVATE_FLAG
	futexRequeuePrivate = 3 | 128 // FUTEX_REQUEUE | FUTEX_PRIVATE_FLAG
)

// Wait parks the calling thread until the word no longer equals val or a
// wake arrives. Returns immediately when the word has already changed.
// Spurious returns are possible; callers re-check their condition.
func (w *Word) Wait(val uint32) error {
	if w.Load() != val {
		return nil
	}
	// Syscall6 rather than RawSyscall6: the wait can block indefinitely
	// and the scheduler must be told the thread is entering a syscall.
	_, _, errno := syscall.Syscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		futexWaitPrivate,
		uintptr(val),
		0, 0, 0,
	)
	switch errno {
	case 0, syscall.EAGAIN, syscall.EINTR:
		return nil
	}
	return errno
}

// Wake wakes up to count threads parked on the word and returns the
// number of threads actually woken.
func (w *Word) Wake(count int) int {
	n, _, _ := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		futexWakePrivate,
		uintptr(count),
		0, 0, 0,
	)
	return int(n)
}

// Requeue wakes up to wake threads parked on w and moves the remaining
// waiters onto target, so they are woken one at a time as target is
// released instead of stampeding.
func (w *Word) Requeue(wake int, target *Word) int {
	n, _, _ := syscall.RawSyscall6(
		syscall.SYS_FUTEX,
		uintptr(unsafe.Pointer(&w.v)),
		futexRequeuePrivate,
		uintptr(wake),
		uintptr(int(^uint(0)>>1)), // requeue the rest
		uintptr(unsafe.Pointer(&target.v)),
		0,
	)
	return int(n)
}
