// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package syncq provides building blocks for tightly scheduled
// concurrent pipelines: waiting bounded FIFO queues, an unbounded
// mutex+condvar queue, spin and futex locks, condition variables,
// busy-wait backoff schedules, move-only tasks, and a worker pool.
//
// Where the sibling package lfq stops at non-blocking operations and
// leaves backpressure to the caller, syncq queues can wait: a push
// parks until a slot frees up, a pop parks until a value arrives, and
// Close releases everyone. How a waiter behaves between those points
// is tunable at two levels — a Backoff schedules the optimistic
// busy-wait phase, and a WaitStrategy decides how to park once the
// backoff gives up.
//
// # Quick Start
//
// Bounded queues come in the four usual flavors:
//
//	q := syncq.NewSPSC[Event](1024)
//	q := syncq.NewMPMC[*Request](4096)
//
// or via the builder, which picks the specialization from the declared
// constraints:
//
//	q := syncq.Build[Event](syncq.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	q := syncq.Build[Event](syncq.New(1024))                                   // → MPMC
//
// Capacity must be a power of two and at least 16 (the slot protocol
// stores four flag bits under the ticket).
//
// # Basic Usage
//
// All queues share one interface with three operation families:
//
//	// Waiting: parks until the operation can complete or the queue
//	// closes.
//	err := q.Push(&v)        // nil or ErrClosed
//	v, err := q.Pop()        // nil, or ErrClosed once drained
//
//	// Non-waiting: returns a definitive status instead of parking.
//	err = q.TryPush(&v)      // nil, ErrFull or ErrClosed (SynchQueue: also ErrBusy)
//	v, err = q.TryPop()      // nil, ErrEmpty or ErrClosed (SynchQueue: also ErrBusy)
//
//	// Nonblocking: additionally refuses to retry contended counters.
//	err = q.NonblockingPush(&v) // nil, ErrFull, ErrBusy or ErrClosed
//
// The would-block statuses all wrap [iox.ErrWouldBlock], so callers
// that only care about "retry later" can test once:
//
//	if syncq.IsWouldBlock(err) { ... }
//
// # Shutdown
//
// Close is the only cancellation signal. It cuts producers off at the
// current tail, wakes every parked goroutine, and lets consumers drain
// what was already queued:
//
//	go func() {
//	    for i := range n {
//	        q.Push(&i)
//	    }
//	    q.Close()
//	}()
//	for v := range syncq.All[int](q) { // pops until ErrClosed
//	    process(v)
//	}
//
// # Wait strategies and backoff
//
// A bounded queue's waiters coordinate through the slot word itself.
// The strategy is chosen per queue:
//
//	syncq.NewMPMC[T](n, syncq.WithWait(syncq.SpinWait()))    // reload in a loop
//	syncq.NewMPMC[T](n, syncq.WithWait(syncq.YieldWait()))   // Gosched between reloads
//	syncq.NewMPMC[T](n, syncq.WithWait(syncq.FutexWait()))   // park in the kernel (Linux default)
//	syncq.NewMPMC[T](n, syncq.WithWait(syncq.CondVarWait())) // park on a per-slot condvar
//
// Before parking, a waiter runs the queue's backoff schedule; the
// default escalates immediately. A spin-then-park queue:
//
//	q := syncq.NewMPMC[T](n, syncq.WithBackoff(func() syncq.Backoff {
//	    return syncq.NewExponentialBackoff(syncq.CPURelax, 1<<12)
//	}))
//
// IsLockFree reports true exactly for the spin and yield strategies.
//
// # Locks and condition variables
//
// The lock suite covers the spectrum from pure spinning to kernel
// parking: SpinLock, TATASLock, TicketLock (FIFO by ticket),
// FutexLock (three-state word, no syscall uncontended) and SyncMutex.
// Guard tracks ownership and catches double-lock/double-unlock at the
// call site; FutexCondVar and SyncCondVar wait through a Guard:
//
//	var mu syncq.FutexLock
//	var cv syncq.FutexCondVar
//
//	g := syncq.NewGuard(&mu)
//	for !ready {
//	    cv.Wait(g) // releases mu while parked, reacquires before returning
//	}
//	g.Release()
//
// A condition variable belongs to one lock for its whole lifetime;
// waiting with a different lock panics.
//
// # Worker pool
//
// Pool runs N workers over any Queue[Job]; the queue choice sets the
// backpressure and idling behavior:
//
//	p := syncq.NewPool(8, syncq.NewMPMC[syncq.Job](4096))
//	p.Submit(func() { work() })
//	p.Wait() // close, drain, join — idempotent
//
// Stop instead abandons queued jobs. A job panic is caught at the
// worker loop, reported to the pool's panic handler, and the worker
// keeps running.
//
// # Race Detection
//
// Like the rest of the ecosystem's lock-free code, the ring queues
// synchronize through atomic operations on slot words, a relationship
// the race detector cannot always track across variables. Stress tests
// that provoke such false positives skip themselves when RaceEnabled
// is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause
// instructions.
package syncq
