// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"code.hybscloud.com/syncq/internal/futex"
)

// Bounded ring queue core shared by the SPSC/SPMC/MPSC/MPMC
// specializations.
//
// Each slot carries a 32-bit word: the top bits hold the ticket the
// slot is expecting (the claim counter value, with the low flag bits
// masked off) and the low bits hold status flags. Slot i expects
// producer ticket i+k·n, then consumer ticket i+k·n (distinguished by
// VALID/INVALID), then producer ticket i+(k+1)·n. Tickets for one slot
// differ by multiples of n ≥ 16, so masking the four flag bits off a
// ticket keeps the per-slot values distinct; that is why the minimum
// capacity is 16.
//
// Close runs in four steps: the winning closer advances tail by n so
// late producers observe themselves past the cut-off, records the
// pre-advance tail as the cut-off, publishes the closed state, and
// walks the ring waking parked waiters. Producers with tickets below
// the cut-off complete normally; producers and consumers at or beyond
// it return ErrClosed.

const (
	statusValid   uint32 = 1 << 0 // slot holds a consumable value
	statusInvalid uint32 = 1 << 1 // producer abandoned the slot
	statusWaiting uint32 = 1 << 2 // a waiter is parked on the word
	statusClosed  uint32 = 1 << 3 // sticky close marker

	statusMask = statusValid | statusInvalid | statusWaiting | statusClosed
	ticketMask = ^statusMask
)

const (
	closeOpen uint32 = iota
	closeClosing
	closeClosed
)

// minCapacity keeps the flag bits clear of per-slot ticket deltas.
const minCapacity = 16

// pad is cache line padding to prevent false sharing.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte

type slot[T any] struct {
	word  futex.Word
	value T
	_     padShort
}

type ring[T any] struct {
	_      pad
	tail   atomix.Uint32 // next producer ticket
	_      pad
	head   atomix.Uint32 // next consumer ticket
	_      pad
	cstate atomix.Uint32 // open / closing / closed
	last   atomix.Uint32 // producer cut-off, valid once closed
	_      pad
	slots  []slot[T]
	mask   uint32
	size   uint32
	wait   WaitStrategy
	newbo  func() Backoff
}

func (q *ring[T]) init(capacity int, o options) {
	if capacity < minCapacity || capacity&(capacity-1) != 0 {
		panic("syncq: capacity must be a power of two and at least 16")
	}
	n := uint32(capacity)
	q.slots = make([]slot[T], n)
	q.mask = n - 1
	q.size = n
	q.wait = o.wait
	q.newbo = o.newBackoff
	q.wait.attach(capacity)
	for i := range q.slots {
		q.slots[i].word.Store(uint32(i) &^ statusMask)
	}
}

// pastLast reports whether ticket c lies at or beyond the close
// cut-off. The acquire load of the close state pairs with the release
// publish in closeRing, making the cut-off value visible.
func (q *ring[T]) pastLast(c uint32) bool {
	if q.cstate.LoadAcquire() != closeClosed {
		return false
	}
	return int32(q.last.LoadRelaxed()-c) <= 0
}

func (q *ring[T]) closeRing() {
	if !q.cstate.CompareAndSwapAcqRel(closeOpen, closeClosing) {
		return
	}
	// Advancing tail by n forces every later producer claim beyond the
	// cut-off; claims that raced ahead of the advance stay below it
	// and complete normally.
	last := q.tail.AddAcqRel(q.size) - q.size
	q.last.StoreRelaxed(last)
	q.cstate.StoreRelease(closeClosed)
	for i := range q.slots {
		q.wait.closeSlot(uint32(i), &q.slots[i].word)
	}
}

// waitTail waits until slot s is ready for producer ticket c and
// returns the observed word.
func (q *ring[T]) waitTail(i uint32, s *slot[T], c uint32) (uint32, error) {
	token := c &^ statusMask
	w := s.word.Load()
	waiting := false
	var bo Backoff
	for {
		if q.pastLast(c) {
			return 0, ErrClosed
		}
		if w&ticketMask == token && w&(statusValid|statusInvalid) == 0 {
			return w, nil
		}
		if waiting {
			w = q.wait.wait(i, &s.word, w)
		} else {
			if bo == nil {
				bo = q.newbo()
			}
			waiting = bo.Wait()
			w = s.word.Load()
		}
	}
}

// waitHead waits until slot s holds a VALID or INVALID value for
// consumer ticket c and returns the observed word.
func (q *ring[T]) waitHead(i uint32, s *slot[T], c uint32) (uint32, error) {
	token := c &^ statusMask
	w := s.word.Load()
	waiting := false
	var bo Backoff
	for {
		if w&ticketMask == token && w&(statusValid|statusInvalid) != 0 {
			return w, nil
		}
		if q.pastLast(c) {
			return 0, ErrClosed
		}
		if waiting {
			w = q.wait.wait(i, &s.word, w)
		} else {
			if bo == nil {
				bo = q.newbo()
			}
			waiting = bo.Wait()
			w = s.word.Load()
		}
	}
}

// put writes the element and hands the slot to consumer ticket c.
func (q *ring[T]) put(i uint32, s *slot[T], c uint32, elem *T, w uint32) {
	s.value = *elem
	q.wait.wake(i, &s.word, (c&^statusMask)|statusValid|(w&statusClosed))
}

// take moves the value out and hands the slot to the next producer
// cycle.
func (q *ring[T]) take(i uint32, s *slot[T], c uint32, w uint32) T {
	v := s.value
	var zero T
	s.value = zero
	q.wait.wake(i, &s.word, ((c+q.size)&^statusMask)|(w&statusClosed))
	return v
}

// skip releases an INVALID slot to the next producer cycle without
// delivering a value; the consumer retries with a fresh ticket.
func (q *ring[T]) skip(i uint32, s *slot[T], c uint32, w uint32) {
	q.wait.wake(i, &s.word, ((c+q.size)&^statusMask)|(w&statusClosed))
}

// pushSlot runs the waiting producer protocol for an already claimed
// ticket.
func (q *ring[T]) pushSlot(c uint32, elem *T) error {
	i := c & q.mask
	s := &q.slots[i]
	w, err := q.waitTail(i, s, c)
	if err != nil {
		return err
	}
	q.put(i, s, c, elem, w)
	return nil
}

// popSlot runs the waiting consumer protocol for an already claimed
// ticket. ok is false when the slot was INVALID and the caller must
// retry with a fresh ticket.
func (q *ring[T]) popSlot(c uint32) (v T, ok bool, err error) {
	i := c & q.mask
	s := &q.slots[i]
	w, err := q.waitHead(i, s, c)
	if err != nil {
		return v, false, err
	}
	if w&statusValid != 0 {
		return q.take(i, s, c, w), true, nil
	}
	q.skip(i, s, c, w)
	return v, false, nil
}

// tryPush claims a ticket only after observing a ready slot, so a
// refused attempt never strands a ticket. With nonblocking set a lost
// race returns ErrBusy instead of retrying.
func (q *ring[T]) tryPush(elem *T, nonblocking bool) error {
	sw := spin.Wait{}
	for {
		t := q.tail.LoadAcquire()
		if q.pastLast(t) {
			return ErrClosed
		}
		i := t & q.mask
		s := &q.slots[i]
		w := s.word.Load()
		token := t &^ statusMask
		switch {
		case w&ticketMask == token && w&(statusValid|statusInvalid) == 0:
			if q.tail.CompareAndSwapAcqRel(t, t+1) {
				q.put(i, s, t, elem, w)
				return nil
			}
		case int32(w&ticketMask-token) < 0:
			// The slot still belongs to an earlier cycle: every slot
			// ahead of us is occupied.
			return ErrFull
		}
		if nonblocking {
			return ErrBusy
		}
		sw.Once()
	}
}

// tryPop is the non-waiting consumer path, symmetric to tryPush.
func (q *ring[T]) tryPop(nonblocking bool) (T, error) {
	var zero T
	sw := spin.Wait{}
	for {
		h := q.head.LoadAcquire()
		i := h & q.mask
		s := &q.slots[i]
		w := s.word.Load()
		token := h &^ statusMask
		if w&ticketMask == token && w&(statusValid|statusInvalid) != 0 {
			if q.head.CompareAndSwapAcqRel(h, h+1) {
				if w&statusValid != 0 {
					return q.take(i, s, h, w), nil
				}
				q.skip(i, s, h, w)
				if nonblocking {
					return zero, ErrBusy
				}
				continue
			}
		} else {
			if q.pastLast(h) {
				return zero, ErrClosed
			}
			if int32(w&ticketMask-token) <= 0 {
				// Producer ticket h has not been served yet.
				return zero, ErrEmpty
			}
		}
		if nonblocking {
			return zero, ErrBusy
		}
		sw.Once()
	}
}

// State observers shared by all specializations.

// IsClosed reports whether Close has begun.
func (q *ring[T]) IsClosed() bool {
	return q.cstate.LoadAcquire() != closeOpen
}

// IsEmpty reports whether no unconsumed ticket exists. Approximate
// while producers or consumers are active, and pessimistic after
// Close (the cut-off advance inflates tail by the capacity).
func (q *ring[T]) IsEmpty() bool {
	return int32(q.tail.LoadRelaxed()-q.head.LoadRelaxed()) <= 0
}

// IsFull reports whether claimed producer tickets exceed the capacity.
// Approximate while producers or consumers are active.
func (q *ring[T]) IsFull() bool {
	return int32(q.tail.LoadRelaxed()-q.head.LoadRelaxed()) > int32(q.size)
}

// IsLockFree reports whether the wait strategy avoids parking.
func (q *ring[T]) IsLockFree() bool {
	return q.wait.lockFree()
}

// Cap returns the queue capacity.
func (q *ring[T]) Cap() int {
	return int(q.size)
}
