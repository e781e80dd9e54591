// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// SPMC is the single-producer multi-consumer bounded ring queue.
//
// The producer claims tail with a relaxed load and CAS (contending
// only with Close's cut-off advance); consumers linearize with
// fetch-add tickets. Running more than one producer corrupts the
// queue.
type SPMC[T any] struct {
	_ noCopy
	ring[T]
}

// NewSPMC creates an SPMC queue. Capacity must be a power of two and
// at least 16.
func NewSPMC[T any](capacity int, opts ...Option) *SPMC[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	q := &SPMC[T]{}
	q.init(capacity, o)
	return q
}

// Push enqueues an element, waiting for a free slot (producer only).
func (q *SPMC[T]) Push(elem *T) error {
	return q.pushSlot(q.claimTail(), elem)
}

// TryPush enqueues an element without parking (producer only).
func (q *SPMC[T]) TryPush(elem *T) error {
	return q.tryPush(elem, false)
}

// NonblockingPush enqueues an element within a bounded number of
// atomic operations (producer only).
func (q *SPMC[T]) NonblockingPush(elem *T) error {
	return q.tryPush(elem, true)
}

// Pop dequeues an element, waiting for one to arrive.
func (q *SPMC[T]) Pop() (T, error) {
	for {
		c := q.head.AddAcqRel(1) - 1
		v, ok, err := q.popSlot(c)
		if ok || err != nil {
			return v, err
		}
	}
}

// TryPop dequeues an element without parking.
func (q *SPMC[T]) TryPop() (T, error) {
	return q.tryPop(false)
}

// NonblockingPop dequeues an element within a bounded number of atomic
// operations.
func (q *SPMC[T]) NonblockingPop() (T, error) {
	return q.tryPop(true)
}

// Close cuts off the producer and lets consumers drain. Idempotent.
func (q *SPMC[T]) Close() {
	q.closeRing()
}
