// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

type options struct {
	// Producer/Consumer constraints (determines queue type)
	singleProducer bool
	singleConsumer bool

	// Capacity (must be a power of two, >= 16)
	capacity int

	// Slot wait strategy and busy-wait schedule
	wait       WaitStrategy
	newBackoff func() Backoff

	// Mutex/condvar bundle for SynchQueue
	synch Synch
}

func defaultOptions() options {
	return options{
		wait:       DefaultWait(),
		newBackoff: func() Backoff { return NoBackoff{} },
		synch:      DefaultSynch(),
	}
}

// Option configures a queue constructor.
type Option func(*options)

// WithWait selects the slot wait strategy of a bounded queue. The
// strategy value must be fresh; one instance cannot serve two queues.
//
// Default: FutexWait on Linux, CondVarWait elsewhere.
func WithWait(ws WaitStrategy) Option {
	return func(o *options) { o.wait = ws }
}

// WithBackoff sets the factory for the busy-wait schedule run before a
// waiting operation escalates to the queue's wait strategy. The
// factory is invoked once per wait episode, so stateful schedules
// start fresh each time.
//
// Default: NoBackoff (escalate immediately).
func WithBackoff(newBackoff func() Backoff) Option {
	return func(o *options) { o.newBackoff = newBackoff }
}

// WithSynch selects the mutex/condvar bundle of a SynchQueue.
//
// Default: FutexSynch on Linux, StdSynch elsewhere.
func WithSynch(s Synch) Option {
	return func(o *options) { o.synch = s }
}

// Builder creates bounded queues with fluent configuration.
//
// The builder selects the specialization from the declared
// producer/consumer constraints:
//
//	q := syncq.Build[Event](syncq.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	q := syncq.Build[Event](syncq.New(1024).SingleConsumer())                  // → MPSC
//	q := syncq.Build[Event](syncq.New(1024).SingleProducer())                  // → SPMC
//	q := syncq.Build[Event](syncq.New(1024))                                   // → MPMC
//
// For a concrete type use the direct constructors NewSPSC, NewMPSC,
// NewSPMC and NewMPMC, which take the same functional options.
type Builder struct {
	opts []Option
	o    options
}

// New creates a queue builder with the given capacity. Capacity must
// be a power of two and at least 16; violations panic at Build.
func New(capacity int) *Builder {
	b := &Builder{o: options{capacity: capacity}}
	return b
}

// SingleProducer declares that only one goroutine will push.
func (b *Builder) SingleProducer() *Builder {
	b.o.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will pop.
func (b *Builder) SingleConsumer() *Builder {
	b.o.singleConsumer = true
	return b
}

// Wait selects the slot wait strategy; see WithWait.
func (b *Builder) Wait(ws WaitStrategy) *Builder {
	b.opts = append(b.opts, WithWait(ws))
	return b
}

// Backoff sets the busy-wait schedule factory; see WithBackoff.
func (b *Builder) Backoff(newBackoff func() Backoff) *Builder {
	b.opts = append(b.opts, WithBackoff(newBackoff))
	return b
}

// Build creates a Queue[T] with the specialization matching the
// builder's constraints.
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.o.singleProducer && b.o.singleConsumer:
		return NewSPSC[T](b.o.capacity, b.opts...)
	case b.o.singleProducer:
		return NewSPMC[T](b.o.capacity, b.opts...)
	case b.o.singleConsumer:
		return NewMPSC[T](b.o.capacity, b.opts...)
	default:
		return NewMPMC[T](b.o.capacity, b.opts...)
	}
}
