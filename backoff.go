// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import "runtime"

// Backoff schedules delays between retries of a contended operation.
//
// Wait performs one pause and reports whether the ceiling has been
// reached, meaning the caller should stop busy-waiting and escalate to
// a blocking wait.
//
// Stateful strategies advance their schedule on every call, so a
// Backoff value covers exactly one wait episode. Code that waits
// repeatedly (queues, worker loops) takes a factory and creates a
// fresh schedule per episode:
//
//	q := syncq.NewMPMC[int](1024, syncq.WithBackoff(func() syncq.Backoff {
//	    return syncq.NewExponentialBackoff(syncq.CPURelax, 1<<10)
//	}))
type Backoff interface {
	Wait() bool
}

// NoBackoff performs no pause and reports the ceiling immediately, so
// the caller escalates to its blocking path on the first retry.
type NoBackoff struct{}

func (NoBackoff) Wait() bool { return true }

// YieldBackoff yields the processor to the scheduler on every call and
// never reports a ceiling.
type YieldBackoff struct{}

func (YieldBackoff) Wait() bool {
	runtime.Gosched()
	return false
}

// ConstBackoff pauses a fixed number of units on every call and never
// reports a ceiling.
type ConstBackoff struct {
	pause Pause
	units uint32
}

// NewConstBackoff creates a constant backoff of the given pause units.
func NewConstBackoff(pause Pause, units uint32) *ConstBackoff {
	return &ConstBackoff{pause: pause, units: units}
}

func (b *ConstBackoff) Wait() bool {
	b.pause(b.units)
	return false
}

// LinearBackoff pauses an amount that grows by step on every call,
// capped at ceiling. Reaching the ceiling is reported once per call
// from then on.
type LinearBackoff struct {
	pause   Pause
	ceiling uint32
	step    uint32
	current uint32
}

// NewLinearBackoff creates a linear backoff growing by step up to ceiling.
func NewLinearBackoff(pause Pause, ceiling, step uint32) *LinearBackoff {
	return &LinearBackoff{pause: pause, ceiling: ceiling, step: step}
}

func (b *LinearBackoff) Wait() bool {
	b.pause(b.current)
	b.current += b.step
	if b.current > b.ceiling {
		b.current = b.ceiling
		return true
	}
	return false
}

// ExponentialBackoff pauses an amount that roughly doubles on every
// call, capped at ceiling.
type ExponentialBackoff struct {
	pause   Pause
	ceiling uint32
	current uint32
}

// NewExponentialBackoff creates an exponential backoff capped at ceiling.
func NewExponentialBackoff(pause Pause, ceiling uint32) *ExponentialBackoff {
	return &ExponentialBackoff{pause: pause, ceiling: ceiling}
}

func (b *ExponentialBackoff) Wait() bool {
	b.pause(b.current)
	b.current += b.current + 1
	if b.current > b.ceiling {
		b.current = b.ceiling
		return true
	}
	return false
}

// ProportionalBackoff pauses units scaled by a caller-supplied factor,
// typically the waiter's distance from the head of a queue. It never
// reports a ceiling.
type ProportionalBackoff struct {
	pause Pause
	units uint32
}

// NewProportionalBackoff creates a proportional backoff of the given base units.
func NewProportionalBackoff(pause Pause, units uint32) *ProportionalBackoff {
	return &ProportionalBackoff{pause: pause, units: units}
}

func (b *ProportionalBackoff) Wait() bool {
	return b.WaitFactor(1)
}

// WaitFactor pauses units×factor units.
func (b *ProportionalBackoff) WaitFactor(factor uint32) bool {
	b.pause(b.units * factor)
	return false
}

// proportionalWait forwards factor to a ProportionalBackoff and calls
// any other strategy plainly. TicketLock uses it to let waiters further
// back in the ticket queue pause longer.
func proportionalWait(b Backoff, factor uint32) bool {
	if p, ok := b.(*ProportionalBackoff); ok {
		return p.WaitFactor(factor)
	}
	return b.Wait()
}

// CompositeBackoff runs the first strategy until it reports its
// ceiling, then runs the second forever, reporting whatever the second
// reports. The usual pairing is a spinning first phase and a yielding
// or sleeping second phase.
type CompositeBackoff struct {
	first  Backoff
	second Backoff
	escal  bool
}

// NewCompositeBackoff chains two backoff strategies.
func NewCompositeBackoff(first, second Backoff) *CompositeBackoff {
	return &CompositeBackoff{first: first, second: second}
}

func (b *CompositeBackoff) Wait() bool {
	if b.escal {
		return b.second.Wait()
	}
	b.escal = b.first.Wait()
	return false
}
