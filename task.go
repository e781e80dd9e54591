// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

// Task is a move-only holder for a zero-argument callable, the unit of
// work a Pool executes.
//
// A task travels from the submitting goroutine through a queue to a
// worker, so at any given time it has exactly one owner; move
// semantics make that ownership explicit where Go's copyable values
// would blur it. Move empties the source, and invoking an empty (or
// moved-from) task reports ErrEmptyTask rather than misbehaving.
//
// The closure value is the task's entire storage: the Go runtime
// already keeps small captures inline in the closure cell and heap
// allocation is the allocator's business, so the task adds no second
// layer of storage management.
type Task[R any] struct {
	target func() R
}

// NewTask creates a task owning the given target.
func NewTask[R any](target func() R) Task[R] {
	return Task[R]{target: target}
}

// Invoke calls the target once. An empty task returns ErrEmptyTask and
// the zero result.
func (t *Task[R]) Invoke() (R, error) {
	if t.target == nil {
		var zero R
		return zero, ErrEmptyTask
	}
	return t.target(), nil
}

// Move transfers the target to the returned task and empties t.
func (t *Task[R]) Move() Task[R] {
	moved := Task[R]{target: t.target}
	t.target = nil
	return moved
}

// Empty reports whether the task holds no target.
func (t *Task[R]) Empty() bool {
	return t.target == nil
}

// TrivialTask is the unchecked variant of Task: Invoke calls the
// target directly, so invoking an empty TrivialTask crashes. Use it
// where the extra branch matters and emptiness is impossible by
// construction.
type TrivialTask[R any] struct {
	target func() R
}

// NewTrivialTask creates a trivial task owning the given target.
func NewTrivialTask[R any](target func() R) TrivialTask[R] {
	return TrivialTask[R]{target: target}
}

// Invoke calls the target once. Invoking an empty trivial task is
// undefined (it dereferences a nil function).
func (t *TrivialTask[R]) Invoke() R {
	return t.target()
}

// Move transfers the target to the returned task and empties t.
func (t *TrivialTask[R]) Move() TrivialTask[R] {
	moved := TrivialTask[R]{target: t.target}
	t.target = nil
	return moved
}

// Empty reports whether the task holds no target.
func (t *TrivialTask[R]) Empty() bool {
	return t.target == nil
}

// Job is the task type executed by a Pool.
type Job = Task[struct{}]

// NewJob wraps a plain func into a Job.
func NewJob(fn func()) Job {
	return NewTask(func() struct{} {
		fn()
		return struct{}{}
	})
}
