// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// Guard couples a Mutex with an ownership flag so misuse is caught at
// the call site instead of deadlocking: locking an owned guard returns
// ErrDeadlock, unlocking a non-owned guard returns ErrNotLocked.
//
// Guards are also the hand-off point for condition variables: CondVar
// Wait takes a guard that owns the associated lock, releases it while
// parked and re-acquires it before returning.
//
// The usual shape is
//
//	g := syncq.NewGuard(&mu)
//	defer g.Release()
//
// where Release unlocks only if the guard still owns the lock.
//
// A Guard must not be copied and must not be shared between
// goroutines.
type Guard struct {
	_    noCopy
	mu   Mutex
	owns bool
}

// NewGuard locks m and returns an owning guard.
func NewGuard(m Mutex) *Guard {
	m.Lock()
	return &Guard{mu: m, owns: true}
}

// NewGuardBackoff locks m under the supplied backoff and returns an
// owning guard.
func NewGuardBackoff(m Mutex, b Backoff) *Guard {
	m.LockBackoff(b)
	return &Guard{mu: m, owns: true}
}

// NewDeferredGuard returns a guard over m without locking it.
func NewDeferredGuard(m Mutex) *Guard {
	return &Guard{mu: m}
}

// NewTryGuard attempts to lock m without parking; Owns reports whether
// the acquisition succeeded.
func NewTryGuard(m Mutex) *Guard {
	return &Guard{mu: m, owns: m.TryLock()}
}

// AdoptGuard returns an owning guard over a mutex the caller has
// already locked.
func AdoptGuard(m Mutex) *Guard {
	return &Guard{mu: m, owns: true}
}

// Lock acquires the guarded mutex. Returns ErrDeadlock if the guard
// already owns it.
func (g *Guard) Lock() error {
	if g.owns {
		return ErrDeadlock
	}
	g.mu.Lock()
	g.owns = true
	return nil
}

// LockBackoff acquires the guarded mutex under the supplied backoff.
// Returns ErrDeadlock if the guard already owns it.
func (g *Guard) LockBackoff(b Backoff) error {
	if g.owns {
		return ErrDeadlock
	}
	g.mu.LockBackoff(b)
	g.owns = true
	return nil
}

// TryLock attempts the acquisition without parking. Returns
// ErrDeadlock if the guard already owns the mutex.
func (g *Guard) TryLock() (bool, error) {
	if g.owns {
		return false, ErrDeadlock
	}
	g.owns = g.mu.TryLock()
	return g.owns, nil
}

// Unlock releases the guarded mutex. Returns ErrNotLocked if the guard
// does not own it.
func (g *Guard) Unlock() error {
	if !g.owns {
		return ErrNotLocked
	}
	g.owns = false
	g.mu.Unlock()
	return nil
}

// Release unlocks the mutex if the guard owns it. Made for defer.
func (g *Guard) Release() {
	if g.owns {
		g.owns = false
		g.mu.Unlock()
	}
}

// Owns reports whether the guard currently owns its mutex.
func (g *Guard) Owns() bool { return g.owns }

// Mutex returns the guarded mutex.
func (g *Guard) Mutex() Mutex { return g.mu }
