// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import "code.hybscloud.com/atomix"

// SpinLock is a test-and-set lock on a single word. Acquisition
// retries the RMW directly, so under heavy contention every retry
// bounces the cache line between cores; prefer TATASLock when more
// than a few goroutines hammer the same lock.
//
// A SpinLock must not be copied after first use.
type SpinLock struct {
	_    noCopy
	word atomix.Uint32
}

// Lock spins until the lock is acquired.
func (l *SpinLock) Lock() {
	l.LockBackoff(NoBackoff{})
}

// LockBackoff spins until the lock is acquired, pausing per the
// supplied backoff between attempts.
func (l *SpinLock) LockBackoff(b Backoff) {
	for !l.word.CompareAndSwapAcqRel(0, 1) {
		b.Wait()
	}
}

// TryLock attempts the acquisition once.
func (l *SpinLock) TryLock() bool {
	return l.word.CompareAndSwapAcqRel(0, 1)
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.word.StoreRelease(0)
}

// TATASLock is a test-and-test-and-set lock: waiters spin on a plain
// read and attempt the RMW only when the lock appears free, keeping
// the line in shared state and avoiding write storms.
//
// A TATASLock must not be copied after first use.
type TATASLock struct {
	_    noCopy
	word atomix.Uint32
}

// Lock spins until the lock is acquired.
func (l *TATASLock) Lock() {
	l.LockBackoff(NoBackoff{})
}

// LockBackoff spins until the lock is acquired, pausing per the
// supplied backoff between attempts.
func (l *TATASLock) LockBackoff(b Backoff) {
	for {
		if l.word.LoadRelaxed() == 0 && l.word.CompareAndSwapAcqRel(0, 1) {
			return
		}
		b.Wait()
	}
}

// TryLock attempts the acquisition once.
func (l *TATASLock) TryLock() bool {
	return l.word.LoadRelaxed() == 0 && l.word.CompareAndSwapAcqRel(0, 1)
}

// Unlock releases the lock.
func (l *TATASLock) Unlock() {
	l.word.StoreRelease(0)
}

// TicketLock serves acquirers strictly in the order they arrived. An
// acquirer draws a ticket from tail and waits until head reaches it;
// release advances head by one.
//
// When the supplied backoff is a ProportionalBackoff it is called with
// the waiter's distance from the head, so goroutines further back in
// line pause longer and the line's front stays responsive.
//
// A TicketLock must not be copied after first use.
type TicketLock struct {
	_    noCopy
	head atomix.Uint32
	tail atomix.Uint32
}

// Lock draws a ticket and waits for its turn.
func (l *TicketLock) Lock() {
	l.LockBackoff(NoBackoff{})
}

// LockBackoff draws a ticket and waits for its turn, pausing per the
// supplied backoff between polls of the head counter.
func (l *TicketLock) LockBackoff(b Backoff) {
	ticket := l.tail.AddAcqRel(1) - 1
	for {
		head := l.head.LoadAcquire()
		if head == ticket {
			return
		}
		proportionalWait(b, ticket-head)
	}
}

// TryLock acquires the lock only when no other ticket is outstanding.
func (l *TicketLock) TryLock() bool {
	ticket := l.tail.LoadAcquire()
	if l.head.LoadAcquire() != ticket {
		return false
	}
	return l.tail.CompareAndSwapAcqRel(ticket, ticket+1)
}

// Unlock passes the lock to the next ticket holder.
func (l *TicketLock) Unlock() {
	l.head.AddAcqRel(1)
}
