// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import (
	"math"
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/syncq/internal/futex"
)

// CondVar is the condition-variable contract of the package.
//
// Wait takes a guard that owns the associated lock, atomically
// releases the lock while the goroutine parks, and re-acquires it
// before returning. As with every condition variable, wake-ups can be
// spurious; callers re-check their predicate in a loop.
//
// A condition variable associates with exactly one lock over its
// lifetime. The association is recorded on the first Wait; a later
// Wait with a guard over a different lock is a programming error and
// panics.
type CondVar interface {
	Wait(g *Guard)
	NotifyOne()
	NotifyAll()
}

// FutexCondVar is the condition variable companion of FutexLock.
//
// It keeps a 32-bit change counter used as the wait address and a
// waiter count consulted by the notify paths, so a notify with no
// waiters costs one atomic increment and no syscall.
//
// NotifyAll wakes a single waiter and requeues the rest onto the owner
// lock's futex word, where the kernel releases them one at a time as
// the lock is handed over, instead of letting the whole herd stampede
// for the lock at once.
//
// A FutexCondVar must not be copied after first use.
type FutexCondVar struct {
	_       noCopy
	seq     futex.Word
	waiters atomix.Uint32
	owner   atomic.Pointer[FutexLock]
}

// Wait parks the caller until notified. The guard must own a
// *FutexLock; the first Wait fixes that lock as the variable's owner
// for the rest of its lifetime.
func (c *FutexCondVar) Wait(g *Guard) {
	if !g.Owns() {
		panic("syncq: cond var wait without owning the lock")
	}
	l, ok := g.Mutex().(*FutexLock)
	if !ok {
		panic("syncq: FutexCondVar requires a FutexLock guard")
	}
	if own := c.owner.Load(); own != l {
		if own != nil || !c.owner.CompareAndSwap(nil, l) {
			if c.owner.Load() != l {
				panic("syncq: different locks used for the same condition variable")
			}
		}
	}

	// The increment must be visible before the counter snapshot is
	// taken so a concurrent notify either sees the waiter or bumps the
	// counter first; Go atomics give the full fence.
	c.waiters.Add(1)
	v := c.seq.Load()

	l.Unlock()

	c.seq.Wait(v)

	c.waiters.Add(^uint32(0))
	l.relock()
}

// NotifyOne wakes at most one waiter.
func (c *FutexCondVar) NotifyOne() {
	c.seq.Add(1)
	if c.waiters.Load() != 0 {
		c.seq.Wake(1)
	}
}

// NotifyAll wakes one waiter and requeues the rest onto the owner
// lock.
func (c *FutexCondVar) NotifyAll() {
	c.seq.Add(1)
	if c.waiters.Load() != 0 {
		if l := c.owner.Load(); l != nil {
			c.seq.Requeue(1, l.wakeWord())
		} else {
			c.seq.Wake(math.MaxInt32)
		}
	}
}

// SyncCondVar is the portable condition variable, backed by the
// standard library. It binds to the guard's SyncMutex on the first
// Wait and enforces the same one-lock-forever invariant as
// FutexCondVar.
//
// A SyncCondVar must not be copied after first use.
type SyncCondVar struct {
	_    noCopy
	cond atomic.Pointer[sync.Cond]
}

// Wait parks the caller until notified. The guard must own a
// *SyncMutex.
func (c *SyncCondVar) Wait(g *Guard) {
	if !g.Owns() {
		panic("syncq: cond var wait without owning the lock")
	}
	m, ok := g.Mutex().(*SyncMutex)
	if !ok {
		panic("syncq: SyncCondVar requires a SyncMutex guard")
	}
	cv := c.cond.Load()
	if cv == nil {
		// First wait; the caller holds the lock, so only one binding
		// attempt can be in flight.
		cv = sync.NewCond(&m.mu)
		if !c.cond.CompareAndSwap(nil, cv) {
			cv = c.cond.Load()
		}
	}
	if cv.L != &m.mu {
		panic("syncq: different locks used for the same condition variable")
	}
	cv.Wait()
}

// NotifyOne wakes at most one waiter.
func (c *SyncCondVar) NotifyOne() {
	if cv := c.cond.Load(); cv != nil {
		cv.Signal()
	}
}

// NotifyAll wakes all waiters.
func (c *SyncCondVar) NotifyAll() {
	if cv := c.cond.Load(); cv != nil {
		cv.Broadcast()
	}
}
