// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/syncq"
)

// condSynch runs each condition-variable test against both bundles.
var condSynch = map[string]syncq.Synch{
	"futex": syncq.FutexSynch{},
	"std":   syncq.StdSynch{},
}

func TestCondVarNotifyOne(t *testing.T) {
	for name, s := range condSynch {
		t.Run(name, func(t *testing.T) {
			mu := s.NewMutex()
			cv := s.NewCondVar()

			ready := false
			done := make(chan struct{})
			go func() {
				defer close(done)
				mu.Lock()
				g := syncq.AdoptGuard(mu)
				defer g.Release()
				for !ready {
					cv.Wait(g)
				}
			}()

			// Let the waiter park, then flip the predicate and notify.
			time.Sleep(10 * time.Millisecond)
			mu.Lock()
			ready = true
			cv.NotifyOne()
			mu.Unlock()

			<-done
		})
	}
}

func TestCondVarNotifyAll(t *testing.T) {
	for name, s := range condSynch {
		t.Run(name, func(t *testing.T) {
			const waiters = 8

			mu := s.NewMutex()
			cv := s.NewCondVar()

			released := false
			var wg sync.WaitGroup
			wg.Add(waiters)
			for range waiters {
				go func() {
					defer wg.Done()
					mu.Lock()
					g := syncq.AdoptGuard(mu)
					defer g.Release()
					for !released {
						cv.Wait(g)
					}
				}()
			}

			time.Sleep(20 * time.Millisecond)
			mu.Lock()
			released = true
			cv.NotifyAll()
			mu.Unlock()

			wg.Wait()
		})
	}
}

// TestCondVarSequence drives a tiny two-party protocol: the producer
// hands over integers one at a time and the consumer acknowledges each
// one, both directions signalled through the same condition variable.
func TestCondVarSequence(t *testing.T) {
	for name, s := range condSynch {
		t.Run(name, func(t *testing.T) {
			mu := s.NewMutex()
			cv := s.NewCondVar()

			const n = 100
			slot := -1 // -1 means empty

			var got []int
			done := make(chan struct{})
			go func() {
				defer close(done)
				for range n {
					mu.Lock()
					g := syncq.AdoptGuard(mu)
					for slot < 0 {
						cv.Wait(g)
					}
					got = append(got, slot)
					slot = -1
					cv.NotifyAll()
					g.Release()
				}
			}()

			for i := range n {
				mu.Lock()
				g := syncq.AdoptGuard(mu)
				for slot >= 0 {
					cv.Wait(g)
				}
				slot = i
				cv.NotifyAll()
				g.Release()
			}
			<-done

			if len(got) != n {
				t.Fatalf("received: got %d values, want %d", len(got), n)
			}
			for i, v := range got {
				if v != i {
					t.Fatalf("value %d: got %d, want %d", i, v, i)
				}
			}
		})
	}
}

func TestCondVarLockMismatch(t *testing.T) {
	var mu1, mu2 syncq.FutexLock
	var cv syncq.FutexCondVar

	// Associate the cond var with mu1.
	woken := make(chan struct{})
	mu1.Lock()
	g1 := syncq.AdoptGuard(&mu1)
	go func() {
		for {
			select {
			case <-woken:
				return
			default:
			}
			mu1.Lock()
			cv.NotifyOne()
			mu1.Unlock()
			time.Sleep(time.Millisecond)
		}
	}()
	cv.Wait(g1)
	close(woken)
	g1.Release()

	// Waiting with another lock is a fatal programming error.
	defer func() {
		if recover() == nil {
			t.Fatal("Wait with a second lock must panic")
		}
		mu2.Unlock()
	}()
	mu2.Lock()
	cv.Wait(syncq.AdoptGuard(&mu2))
}

func TestCondVarRequiresOwnedGuard(t *testing.T) {
	var mu syncq.FutexLock
	var cv syncq.FutexCondVar

	defer func() {
		if recover() == nil {
			t.Fatal("Wait without owning the lock must panic")
		}
	}()
	cv.Wait(syncq.NewDeferredGuard(&mu))
}
