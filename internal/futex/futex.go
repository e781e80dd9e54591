// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package futex

import "sync/atomic"

// Word is a 32-bit futex word. The zero value is ready to use.
//
// A Word must not be copied after first use.
type Word struct {
	v uint32
}

// Load atomically loads the word.
func (w *Word) Load() uint32 {
	return atomic.LoadUint32(&w.v)
}

// Store atomically stores val.
func (w *Word) Store(val uint32) {
	atomic.StoreUint32(&w.v, val)
}

// Add atomically adds delta to the word and returns the new value.
// Subtraction is Add(^uint32(0)) per sync/atomic convention.
func (w *Word) Add(delta uint32) uint32 {
	return atomic.AddUint32(&w.v, delta)
}

// Swap atomically stores val and returns the previous value.
func (w *Word) Swap(val uint32) uint32 {
	return atomic.SwapUint32(&w.v, val)
}

// CompareAndSwap executes the compare-and-swap operation on the word.
func (w *Word) CompareAndSwap(old, new uint32) bool {
	return atomic.CompareAndSwapUint32(&w.v, old, new)
}
