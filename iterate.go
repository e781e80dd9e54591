// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import "iter"

// All returns an iterator that pops elements from q until the queue is
// closed and drained.
//
// Distinct iterators over the same queue may run in different
// goroutines; they partition the elements between them.
//
//	for v := range syncq.All[int](q) {
//	    process(v)
//	}
func All[T any](q Consumer[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := q.Pop()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Feed pushes every element of seq into q until the sequence ends or
// the queue closes, and reports the first push error.
func Feed[T any](q Producer[T], seq iter.Seq[T]) error {
	for v := range seq {
		if err := q.Push(&v); err != nil {
			return err
		}
	}
	return nil
}
