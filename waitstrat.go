// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import (
	"math"
	"runtime"
	"sync"

	"code.hybscloud.com/syncq/internal/futex"
)

// WaitStrategy controls how a bounded queue's producers and consumers
// wait on a slot whose ticket has not come up yet, and how a finished
// operation wakes them.
//
// The strategy is fixed per queue (and therefore per slot) at
// construction. A strategy value must not be shared between queues;
// create a fresh one per constructor call.
type WaitStrategy interface {
	// attach sizes any per-slot state; called once at construction.
	attach(n int)

	// wait parks or spins until the slot word differs from old, then
	// returns a fresh load. Spurious returns are allowed.
	wait(i uint32, w *futex.Word, old uint32) uint32

	// wake publishes word with release semantics and wakes any
	// parked waiters.
	wake(i uint32, w *futex.Word, word uint32)

	// closeSlot marks the slot closed and wakes parked waiters so
	// they observe the queue's new state.
	closeSlot(i uint32, w *futex.Word)

	// lockFree reports whether wait never parks in a primitive.
	lockFree() bool
}

// SpinWait returns the busy-polling strategy: waiters reload the slot
// word in a tight loop and are never parked. Lowest latency, burns a
// core per waiter; pair it with a backoff if that matters.
func SpinWait() WaitStrategy { return spinStrategy{} }

type spinStrategy struct{}

func (spinStrategy) attach(int) {}

func (spinStrategy) wait(_ uint32, w *futex.Word, _ uint32) uint32 {
	return w.Load()
}

func (spinStrategy) wake(_ uint32, w *futex.Word, word uint32) {
	w.Store(word)
}

func (spinStrategy) closeSlot(_ uint32, w *futex.Word) {
	markClosed(w)
}

func (spinStrategy) lockFree() bool { return true }

// YieldWait returns the cooperative strategy: waiters yield the
// processor between reloads of the slot word.
func YieldWait() WaitStrategy { return yieldStrategy{} }

type yieldStrategy struct{}

func (yieldStrategy) attach(int) {}

func (yieldStrategy) wait(_ uint32, w *futex.Word, _ uint32) uint32 {
	runtime.Gosched()
	return w.Load()
}

func (yieldStrategy) wake(_ uint32, w *futex.Word, word uint32) {
	w.Store(word)
}

func (yieldStrategy) closeSlot(_ uint32, w *futex.Word) {
	markClosed(w)
}

func (yieldStrategy) lockFree() bool { return true }

// FutexWait returns the kernel-parking strategy: a waiter flags the
// slot word with WAITING and parks on it; the waker pays for a wake
// syscall only when the flag was set.
func FutexWait() WaitStrategy { return futexStrategy{} }

type futexStrategy struct{}

func (futexStrategy) attach(int) {}

func (futexStrategy) wait(_ uint32, w *futex.Word, old uint32) uint32 {
	if old&statusWaiting == 0 {
		if !w.CompareAndSwap(old, old|statusWaiting) {
			// The word moved under us; no need to park.
			return w.Load()
		}
		old |= statusWaiting
	}
	w.Wait(old)
	return w.Load()
}

func (futexStrategy) wake(_ uint32, w *futex.Word, word uint32) {
	if w.Swap(word)&statusWaiting != 0 {
		// Producers and consumers of different tickets can be parked
		// on the same slot word, so the wake is a broadcast and the
		// wrong-ticket waiters park again.
		w.Wake(math.MaxInt32)
	}
}

func (futexStrategy) closeSlot(_ uint32, w *futex.Word) {
	markClosed(w)
	w.Wake(math.MaxInt32)
}

func (futexStrategy) lockFree() bool { return false }

// CondVarWait returns the portable parking strategy: a mutex and
// condition variable per slot mirror the futex state machine with
// ordinary blocking primitives.
func CondVarWait() WaitStrategy {
	return &condStrategy{}
}

type condStrategy struct {
	mus   []sync.Mutex
	conds []*sync.Cond
}

func (c *condStrategy) attach(n int) {
	if c.mus != nil {
		panic("syncq: wait strategy is already attached to a queue")
	}
	c.mus = make([]sync.Mutex, n)
	c.conds = make([]*sync.Cond, n)
	for i := range c.conds {
		c.conds[i] = sync.NewCond(&c.mus[i])
	}
}

func (c *condStrategy) wait(i uint32, w *futex.Word, old uint32) uint32 {
	c.mus[i].Lock()
	if w.Load() == old {
		c.conds[i].Wait()
	}
	v := w.Load()
	c.mus[i].Unlock()
	return v
}

func (c *condStrategy) wake(i uint32, w *futex.Word, word uint32) {
	c.mus[i].Lock()
	w.Store(word)
	c.conds[i].Broadcast()
	c.mus[i].Unlock()
}

func (c *condStrategy) closeSlot(i uint32, w *futex.Word) {
	c.mus[i].Lock()
	markClosed(w)
	c.conds[i].Broadcast()
	c.mus[i].Unlock()
}

func (c *condStrategy) lockFree() bool { return false }

// markClosed sets the sticky CLOSED bit on a slot word.
func markClosed(w *futex.Word) {
	for {
		old := w.Load()
		if old&statusClosed != 0 || w.CompareAndSwap(old, old|statusClosed) {
			return
		}
	}
}
