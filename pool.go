// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import (
	"log"
	"sync"

	"code.hybscloud.com/atomix"
)

const (
	poolStop uint32 = 1 << 0
	poolWait uint32 = 1 << 1
)

// Pool runs a fixed set of workers that drain jobs from a
// caller-supplied queue until the pool is stopped or drained.
//
// The queue choice sets the pool's character: a SynchQueue[Job] gives
// an unbounded pool whose Submit never reports ErrFull, a bounded ring
// gives natural backpressure, and the queue's wait strategy decides
// whether idle workers spin or park.
//
//	q := syncq.NewMPMC[syncq.Job](1024)
//	p := syncq.NewPool(4, q)
//	p.Submit(func() { work() })
//	p.Wait()
//
// Stop abandons queued jobs; Wait lets the workers drain them. Both
// close the queue, so a later Submit reports ErrClosed.
type Pool struct {
	_       noCopy
	queue   Queue[Job]
	workers sync.WaitGroup
	size    int
	flags   atomix.Uint32
	onPanic func(recovered any)

	joinLock Mutex
	joinDone bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithPanicHandler sets the function invoked with the recovered value
// when a job panics. The default logs the panic and keeps the worker
// alive; the handler must not panic itself.
func WithPanicHandler(h func(recovered any)) PoolOption {
	return func(p *Pool) { p.onPanic = h }
}

// NewPool creates a pool of size workers draining queue. Panics if
// size < 1 or queue is nil.
func NewPool(size int, queue Queue[Job], opts ...PoolOption) *Pool {
	if size < 1 {
		panic("syncq: pool size must be at least 1")
	}
	if queue == nil {
		panic("syncq: pool requires a queue")
	}
	p := &Pool{
		queue:    queue,
		size:     size,
		joinLock: DefaultSynch().NewMutex(),
		onPanic: func(recovered any) {
			log.Printf("syncq: job panic recovered: %v", recovered)
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workers.Add(size)
	for range size {
		go p.work()
	}
	return p
}

// Submit wraps fn into a Job and pushes it into the queue, waiting for
// a free slot on a bounded queue. Returns ErrNilTask for a nil fn and
// ErrClosed after Stop or Wait.
func (p *Pool) Submit(fn func()) error {
	if fn == nil {
		return ErrNilTask
	}
	job := NewJob(fn)
	return p.queue.Push(&job)
}

// Stop closes the queue and makes the workers exit without draining
// the remaining jobs. Idempotent, and safe to combine with Wait.
func (p *Pool) Stop() {
	p.close(poolStop)
}

// Wait closes the queue, lets the workers drain it and joins them.
// Safe to call repeatedly and from multiple goroutines; every call
// returns after the workers have exited.
func (p *Pool) Wait() {
	p.close(poolWait)

	p.joinLock.Lock()
	if !p.joinDone {
		p.workers.Wait()
		p.joinDone = true
	}
	p.joinLock.Unlock()
}

// Size returns the worker count.
func (p *Pool) Size() int { return p.size }

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.flags.LoadAcquire()&poolStop != 0
}

// close sets flag and closes the queue on the first transition away
// from the running state.
func (p *Pool) close(flag uint32) {
	for {
		f := p.flags.LoadAcquire()
		if f&flag == flag {
			break
		}
		if p.flags.CompareAndSwapAcqRel(f, f|flag) {
			if f == 0 {
				p.queue.Close()
			}
			break
		}
	}
}

func (p *Pool) work() {
	defer p.workers.Done()
	for !p.IsStopped() {
		job, err := p.queue.Pop()
		if err != nil {
			if IsClosed(err) {
				return
			}
			continue
		}
		p.invoke(&job)
	}
}

// invoke runs one job, containing any panic so a faulty job can never
// take its worker down.
func (p *Pool) invoke(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			p.onPanic(r)
		}
	}()
	job.Invoke()
}
