// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import "sync"

// noCopy triggers go vet's copylocks check on types that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Mutex is the mutual-exclusion contract shared by every lock in this
// package. Lock and Unlock pair as usual; LockBackoff lets the caller
// schedule the busy-wait phase of a contended acquisition; TryLock
// never parks.
//
// Unlock must only be called by the owner of a successful Lock,
// LockBackoff or TryLock. None of the implementations are reentrant.
type Mutex interface {
	Lock()
	LockBackoff(b Backoff)
	TryLock() bool
	Unlock()
}

// SyncMutex adapts the standard library mutex to the Mutex interface.
// It is the portable blocking lock of the package, used wherever a
// futex word is unavailable or unwanted.
type SyncMutex struct {
	mu sync.Mutex
}

// Lock acquires the mutex, parking the goroutine if necessary.
func (m *SyncMutex) Lock() { m.mu.Lock() }

// LockBackoff polls TryLock under the supplied backoff schedule and
// falls through to a blocking Lock once the ceiling is reached.
func (m *SyncMutex) LockBackoff(b Backoff) {
	for !m.mu.TryLock() {
		if b.Wait() {
			m.mu.Lock()
			return
		}
	}
}

// TryLock attempts the acquisition without parking.
func (m *SyncMutex) TryLock() bool { return m.mu.TryLock() }

// Unlock releases the mutex.
func (m *SyncMutex) Unlock() { m.mu.Unlock() }

// Synch bundles a mutex flavor with its matching condition variable so
// queue constructors can select both with one option. The two values
// returned by a bundle are made for each other: FutexCondVar only
// accepts FutexLock guards, SyncCondVar only SyncMutex guards.
type Synch interface {
	NewMutex() Mutex
	NewCondVar() CondVar
}

// FutexSynch pairs FutexLock with FutexCondVar.
type FutexSynch struct{}

func (FutexSynch) NewMutex() Mutex     { return new(FutexLock) }
func (FutexSynch) NewCondVar() CondVar { return new(FutexCondVar) }

// StdSynch pairs SyncMutex with SyncCondVar.
type StdSynch struct{}

func (StdSynch) NewMutex() Mutex     { return new(SyncMutex) }
func (StdSynch) NewCondVar() CondVar { return new(SyncCondVar) }
