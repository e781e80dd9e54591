// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// MPMC is the multi-producer multi-consumer bounded ring queue.
//
// Producers and consumers linearize themselves with fetch-add tickets;
// per ticket the queue is strictly FIFO on both sides. The per-slot
// word then pairs each producer with exactly one consumer without any
// central lock.
type MPMC[T any] struct {
	_ noCopy
	ring[T]
}

// NewMPMC creates an MPMC queue. Capacity must be a power of two and
// at least 16.
func NewMPMC[T any](capacity int, opts ...Option) *MPMC[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	q := &MPMC[T]{}
	q.init(capacity, o)
	return q
}

// Push enqueues an element, waiting for a free slot.
func (q *MPMC[T]) Push(elem *T) error {
	return q.pushSlot(q.tail.AddAcqRel(1)-1, elem)
}

// TryPush enqueues an element without parking.
func (q *MPMC[T]) TryPush(elem *T) error {
	return q.tryPush(elem, false)
}

// NonblockingPush enqueues an element within a bounded number of
// atomic operations.
func (q *MPMC[T]) NonblockingPush(elem *T) error {
	return q.tryPush(elem, true)
}

// Pop dequeues an element, waiting for one to arrive.
func (q *MPMC[T]) Pop() (T, error) {
	for {
		c := q.head.AddAcqRel(1) - 1
		v, ok, err := q.popSlot(c)
		if ok || err != nil {
			return v, err
		}
	}
}

// TryPop dequeues an element without parking.
func (q *MPMC[T]) TryPop() (T, error) {
	return q.tryPop(false)
}

// NonblockingPop dequeues an element within a bounded number of atomic
// operations.
func (q *MPMC[T]) NonblockingPop() (T, error) {
	return q.tryPop(true)
}

// Close cuts off producers and lets consumers drain. Idempotent.
func (q *MPMC[T]) Close() {
	q.closeRing()
}
