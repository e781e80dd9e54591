// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// SynchQueue is an unbounded FIFO queue guarded by one mutex and one
// condition variable from a Synch bundle (futex-backed by default on
// Linux).
//
// Every buffer mutation happens under the mutex; consumers re-check
// the buffer and the closed flag after every condition-variable
// wake-up. Pushes never block beyond the mutex, so only Pop has a
// genuine waiting path.
//
// A SynchQueue must not be copied after first use.
type SynchQueue[T any] struct {
	_      noCopy
	mu     Mutex
	cond   CondVar
	buf    []T
	off    int
	closed bool
}

// NewSynchQueue creates an unbounded queue. By default the platform's
// preferred Synch bundle supplies the lock and condition variable;
// override with WithSynch.
func NewSynchQueue[T any](opts ...Option) *SynchQueue[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &SynchQueue[T]{
		mu:   o.synch.NewMutex(),
		cond: o.synch.NewCondVar(),
	}
}

// Push enqueues an element. Never waits for capacity; returns
// ErrClosed after Close.
func (q *SynchQueue[T]) Push(elem *T) error {
	q.mu.Lock()
	err := q.lockedPush(elem)
	q.mu.Unlock()
	return err
}

// TryPush enqueues an element only if the mutex is free; it never
// parks. Returns ErrBusy otherwise.
func (q *SynchQueue[T]) TryPush(elem *T) error {
	return q.NonblockingPush(elem)
}

// NonblockingPush enqueues an element only if the mutex is free.
// Returns ErrBusy otherwise.
func (q *SynchQueue[T]) NonblockingPush(elem *T) error {
	if !q.mu.TryLock() {
		return ErrBusy
	}
	err := q.lockedPush(elem)
	q.mu.Unlock()
	return err
}

// Pop dequeues the oldest element, waiting for one to arrive. Returns
// ErrClosed once the queue is closed and drained.
func (q *SynchQueue[T]) Pop() (T, error) {
	q.mu.Lock()
	g := AdoptGuard(q.mu)
	defer g.Release()
	for {
		v, err := q.lockedPop()
		if err != ErrEmpty {
			return v, err
		}
		q.cond.Wait(g)
	}
}

// TryPop dequeues the oldest element only if the mutex is free; it
// never parks. Returns ErrEmpty when the queue holds no elements and
// ErrBusy when the mutex is held.
func (q *SynchQueue[T]) TryPop() (T, error) {
	return q.NonblockingPop()
}

// NonblockingPop dequeues the oldest element only if the mutex is
// free. Returns ErrBusy otherwise.
func (q *SynchQueue[T]) NonblockingPop() (T, error) {
	if !q.mu.TryLock() {
		var zero T
		return zero, ErrBusy
	}
	v, err := q.lockedPop()
	q.mu.Unlock()
	return v, err
}

// Close marks the queue closed and wakes every waiting consumer.
// Idempotent.
func (q *SynchQueue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.NotifyAll()
	q.mu.Unlock()
}

// IsClosed reports whether Close has been called.
func (q *SynchQueue[T]) IsClosed() bool {
	q.mu.Lock()
	closed := q.closed
	q.mu.Unlock()
	return closed
}

// IsEmpty reports whether the queue holds no elements.
func (q *SynchQueue[T]) IsEmpty() bool {
	q.mu.Lock()
	empty := q.off == len(q.buf)
	q.mu.Unlock()
	return empty
}

// IsFull always reports false; the queue is unbounded.
func (q *SynchQueue[T]) IsFull() bool { return false }

// IsLockFree always reports false.
func (q *SynchQueue[T]) IsLockFree() bool { return false }

// Cap returns -1; the queue is unbounded.
func (q *SynchQueue[T]) Cap() int { return -1 }

func (q *SynchQueue[T]) lockedPush(elem *T) error {
	if q.closed {
		return ErrClosed
	}
	q.buf = append(q.buf, *elem)
	q.cond.NotifyOne()
	return nil
}

func (q *SynchQueue[T]) lockedPop() (T, error) {
	if q.off == len(q.buf) {
		var zero T
		if q.closed {
			return zero, ErrClosed
		}
		return zero, ErrEmpty
	}
	v := q.buf[q.off]
	var zero T
	q.buf[q.off] = zero
	q.off++
	switch {
	case q.off == len(q.buf):
		q.buf = q.buf[:0]
		q.off = 0
	case q.off > 32 && q.off*2 >= len(q.buf):
		// Slide the live tail down so consumed prefixes do not pin
		// the backing array forever.
		n := copy(q.buf, q.buf[q.off:])
		clear(q.buf[n:])
		q.buf = q.buf[:n]
		q.off = 0
	}
	return v, nil
}
