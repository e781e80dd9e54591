// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// SPSC is the single-producer single-consumer bounded ring queue.
//
// With one goroutine on each side the ticket counters see no
// contention: the producer claims tail with a relaxed load and CAS
// (the CAS can lose only to Close's cut-off advance) and the consumer
// claims head with a plain load and store, since Close never touches
// head. The slot protocol is identical to the other specializations.
//
// Running more than one goroutine per side corrupts the queue.
type SPSC[T any] struct {
	_ noCopy
	ring[T]
}

// NewSPSC creates an SPSC queue. Capacity must be a power of two and
// at least 16.
func NewSPSC[T any](capacity int, opts ...Option) *SPSC[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	q := &SPSC[T]{}
	q.init(capacity, o)
	return q
}

// Push enqueues an element, waiting for a free slot.
func (q *SPSC[T]) Push(elem *T) error {
	return q.pushSlot(q.claimTail(), elem)
}

// TryPush enqueues an element without parking.
func (q *SPSC[T]) TryPush(elem *T) error {
	return q.tryPush(elem, false)
}

// NonblockingPush enqueues an element within a bounded number of
// atomic operations.
func (q *SPSC[T]) NonblockingPush(elem *T) error {
	return q.tryPush(elem, true)
}

// Pop dequeues an element, waiting for one to arrive.
func (q *SPSC[T]) Pop() (T, error) {
	for {
		c := q.head.LoadRelaxed()
		q.head.StoreRelaxed(c + 1)
		v, ok, err := q.popSlot(c)
		if ok || err != nil {
			return v, err
		}
	}
}

// TryPop dequeues an element without parking.
func (q *SPSC[T]) TryPop() (T, error) {
	return q.tryPop(false)
}

// NonblockingPop dequeues an element within a bounded number of atomic
// operations.
func (q *SPSC[T]) NonblockingPop() (T, error) {
	return q.tryPop(true)
}

// Close cuts off producers and lets consumers drain. Idempotent.
func (q *SPSC[T]) Close() {
	q.closeRing()
}

// claimTail claims the next producer ticket. The CAS contends only
// with Close advancing the cut-off.
func (q *ring[T]) claimTail() uint32 {
	for {
		c := q.tail.LoadRelaxed()
		if q.tail.CompareAndSwapRelaxed(c, c+1) {
			return c
		}
	}
}
