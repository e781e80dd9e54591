// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// MPSC is the multi-producer single-consumer bounded ring queue.
//
// Producers linearize with fetch-add tickets; the single consumer
// claims head with plain loads and stores, since nothing else ever
// writes it. Running more than one consumer corrupts the queue.
type MPSC[T any] struct {
	_ noCopy
	ring[T]
}

// NewMPSC creates an MPSC queue. Capacity must be a power of two and
// at least 16.
func NewMPSC[T any](capacity int, opts ...Option) *MPSC[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	q := &MPSC[T]{}
	q.init(capacity, o)
	return q
}

// Push enqueues an element, waiting for a free slot.
func (q *MPSC[T]) Push(elem *T) error {
	return q.pushSlot(q.tail.AddAcqRel(1)-1, elem)
}

// TryPush enqueues an element without parking.
func (q *MPSC[T]) TryPush(elem *T) error {
	return q.tryPush(elem, false)
}

// NonblockingPush enqueues an element within a bounded number of
// atomic operations.
func (q *MPSC[T]) NonblockingPush(elem *T) error {
	return q.tryPush(elem, true)
}

// Pop dequeues an element, waiting for one to arrive (consumer only).
func (q *MPSC[T]) Pop() (T, error) {
	for {
		c := q.head.LoadRelaxed()
		q.head.StoreRelaxed(c + 1)
		v, ok, err := q.popSlot(c)
		if ok || err != nil {
			return v, err
		}
	}
}

// TryPop dequeues an element without parking (consumer only).
func (q *MPSC[T]) TryPop() (T, error) {
	return q.tryPop(false)
}

// NonblockingPop dequeues an element within a bounded number of atomic
// operations (consumer only).
func (q *MPSC[T]) NonblockingPop() (T, error) {
	return q.tryPop(true)
}

// Close cuts off producers and lets the consumer drain. Idempotent.
func (q *MPSC[T]) Close() {
	q.closeRing()
}
