// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package futex

import (
	"sync"
	"unsafe"
)

// Emulated futex: a fixed table of parking buckets selected by hashing
// the word's address. A wake broadcasts its bucket, so unrelated words
// sharing a bucket see spurious wake-ups; callers tolerate those by
// design.

const numBuckets = 512

type bucket struct {
	mu   sync.Mutex
	cond *sync.Cond
}

var buckets [numBuckets]bucket

func init() {
	for i := range buckets {
		buckets[i].cond = sync.NewCond(&buckets[i].mu)
	}
}

func bucketOf(w *Word) *bucket {
	a := uint64(uintptr(unsafe.Pointer(w)))
	a ^= a >> 33
	a *= 0xff51afd7ed558ccd
	a ^= a >> 33
	return &buckets[a%numBuckets]
}

// Wait parks the caller until the word no longer equals val or the
// bucket is woken. Spurious returns are possible; callers re-check.
func (w *Word) Wait(val uint32) error {
	b := bucketOf(w)
	b.mu.Lock()
	// The bucket lock orders this check against Wake: a waker stores
	// the new word value before taking the lock to broadcast, so either
	// the check sees the change or the broadcast is observed.
	if w.Load() == val {
		b.cond.Wait()
	}
	b.mu.Unlock()
	return nil
}

// Wake wakes threads parked on the word's bucket.
func (w *Word) Wake(count int) int {
	b := bucketOf(w)
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
	return 0
}

// Requeue degrades to a broadcast wake on platforms without a kernel
// requeue primitive. The public contract is unchanged; only the
// thundering-herd optimization is lost.
func (w *Word) Requeue(wake int, target *Word) int {
	return w.Wake(wake)
}
