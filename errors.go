// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates an operation cannot proceed immediately.
//
// It is a control flow signal, not a failure. The caller should retry
// later (with backoff or yield) rather than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
// The more specific ErrEmpty, ErrFull and ErrBusy all wrap it, so a
// caller that does not care why an operation would block can match on
// ErrWouldBlock alone:
//
//	if err := q.TryPush(&v); syncq.IsWouldBlock(err) {
//	    // Queue full - handle backpressure
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrEmpty is returned by TryPop and NonblockingPop when the queue
// holds no elements. Wraps ErrWouldBlock.
var ErrEmpty = fmt.Errorf("%w: queue is empty", iox.ErrWouldBlock)

// ErrFull is returned by TryPush and NonblockingPush when the queue is
// at capacity. Wraps ErrWouldBlock.
var ErrFull = fmt.Errorf("%w: queue is full", iox.ErrWouldBlock)

// ErrBusy is returned by nonblocking operations that lost a race for
// an internal lock or counter and refuse to retry. Wraps ErrWouldBlock.
var ErrBusy = fmt.Errorf("%w: busy", iox.ErrWouldBlock)

// ErrClosed is returned once a queue has been closed: by push
// operations unconditionally, and by pop operations after the queue
// has drained.
//
// ErrClosed is terminal, not retryable; it does not wrap ErrWouldBlock.
var ErrClosed = errors.New("syncq: queue is closed")

// ErrEmptyTask is returned by Task.Invoke when the task holds no
// target, either because it was never given one or because the target
// was moved out.
var ErrEmptyTask = errors.New("syncq: empty task invoked")

// ErrNilTask is returned by Pool.Submit for a nil function value.
var ErrNilTask = errors.New("syncq: nil task submitted")

// ErrDeadlock is returned by Guard.Lock and Guard.TryLock when the
// guard already owns its lock. Locking through the guard again would
// self-deadlock on every lock type in this package.
var ErrDeadlock = errors.New("syncq: guard already owns the lock")

// ErrNotLocked is returned by Guard.Unlock when the guard does not own
// its lock.
var ErrNotLocked = errors.New("syncq: guard does not own the lock")

// IsWouldBlock reports whether err indicates the operation would block.
// Matches ErrWouldBlock, ErrEmpty, ErrFull and ErrBusy.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsClosed reports whether err indicates a closed queue.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
