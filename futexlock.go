// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import "code.hybscloud.com/syncq/internal/futex"

// FutexLock is a kernel-assisted mutex on a single 32-bit word.
//
// The word carries three states: 0 free, 1 held with nobody waiting,
// 2 held with one or more waiters. Both the uncontended acquire
// (CAS 0→1) and the uncontended release (decrement to 0) complete
// without a syscall; the kernel is involved only when a waiter exists.
//
// A waiter that escalates past its backoff ceiling forces the word to
// 2 and parks on it. Release from state 2 wakes exactly one waiter,
// which re-forces the word to 2 before re-checking, so a wake that
// loses the race to a fresh acquirer simply parks again. Spurious
// wake-ups are absorbed by the same loop.
//
// A FutexLock must not be copied after first use, and must not be
// destroyed while held or while any goroutine waits on it.
type FutexLock struct {
	_    noCopy
	word futex.Word
}

// Lock acquires the lock, parking in the kernel on the first failed
// attempt (NoBackoff schedule).
func (l *FutexLock) Lock() {
	l.LockBackoff(NoBackoff{})
}

// LockBackoff acquires the lock, busy-waiting per the supplied backoff
// and parking in the kernel once the backoff reports its ceiling.
func (l *FutexLock) LockBackoff(b Backoff) {
	for {
		if l.word.CompareAndSwap(0, 1) {
			return
		}
		if b.Wait() {
			// Ceiling reached: mark the lock contended and park until
			// an exchange observes the free state.
			for l.word.Swap(2) != 0 {
				l.word.Wait(2)
			}
			return
		}
	}
}

// TryLock attempts the uncontended acquisition once.
func (l *FutexLock) TryLock() bool {
	return l.word.CompareAndSwap(0, 1)
}

// Unlock releases the lock and wakes one waiter if the lock was
// contended.
func (l *FutexLock) Unlock() {
	if l.word.Add(^uint32(0)) != 0 {
		l.word.Store(0)
		l.word.Wake(1)
	}
}

// relock re-acquires the lock on behalf of a condition-variable waiter
// that has just been resumed. The waiter always enters in contended
// mode: it cannot know whether other waiters were requeued onto the
// same word, and under-marking would lose their wake-up.
func (l *FutexLock) relock() {
	for l.word.Swap(2) != 0 {
		l.word.Wait(2)
	}
}

// wakeWord exposes the futex word to FutexCondVar for requeueing
// waiters from the change counter onto the lock.
func (l *FutexLock) wakeWord() *futex.Word {
	return &l.word
}
