// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq_test

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"code.hybscloud.com/syncq"
)

// waits enumerates the slot wait strategies for table-driven tests.
// The map values are factories because a strategy instance cannot be
// shared between queues.
var waits = map[string]func() syncq.WaitStrategy{
	"spin":    syncq.SpinWait,
	"yield":   syncq.YieldWait,
	"futex":   syncq.FutexWait,
	"condvar": syncq.CondVarWait,
}

func TestBoundedBasic(t *testing.T) {
	queues := map[string]syncq.Queue[int]{
		"spsc": syncq.NewSPSC[int](16),
		"spmc": syncq.NewSPMC[int](16),
		"mpsc": syncq.NewMPSC[int](16),
		"mpmc": syncq.NewMPMC[int](16),
	}
	for name, q := range queues {
		t.Run(name, func(t *testing.T) {
			if q.Cap() != 16 {
				t.Fatalf("Cap: got %d, want 16", q.Cap())
			}
			if !q.IsEmpty() {
				t.Fatal("fresh queue must be empty")
			}

			// Fill to capacity without parking.
			for i := range 16 {
				v := i + 100
				if err := q.TryPush(&v); err != nil {
					t.Fatalf("TryPush(%d): %v", i, err)
				}
			}

			v := 999
			if err := q.TryPush(&v); !errors.Is(err, syncq.ErrFull) {
				t.Fatalf("TryPush on full: got %v, want ErrFull", err)
			}
			if err := q.NonblockingPush(&v); !syncq.IsWouldBlock(err) {
				t.Fatalf("NonblockingPush on full: got %v, want would-block", err)
			}
			if q.IsEmpty() {
				t.Fatal("full queue must not be empty")
			}

			// Drain in FIFO order.
			for i := range 16 {
				got, err := q.TryPop()
				if err != nil {
					t.Fatalf("TryPop(%d): %v", i, err)
				}
				if got != i+100 {
					t.Fatalf("TryPop(%d): got %d, want %d", i, got, i+100)
				}
			}

			if _, err := q.TryPop(); !errors.Is(err, syncq.ErrEmpty) {
				t.Fatalf("TryPop on empty: got %v, want ErrEmpty", err)
			}
			if _, err := q.NonblockingPop(); !syncq.IsWouldBlock(err) {
				t.Fatalf("NonblockingPop on empty: got %v, want would-block", err)
			}
		})
	}
}

func TestBoundedInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, 1, 8, 15, 24, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("capacity %d must panic", capacity)
				}
			}()
			syncq.NewMPMC[int](capacity)
		}()
	}
	// Powers of two from the minimum up are accepted.
	for _, capacity := range []int{16, 32, 1024} {
		q := syncq.NewMPMC[int](capacity)
		if q.Cap() != capacity {
			t.Fatalf("Cap: got %d, want %d", q.Cap(), capacity)
		}
	}
}

func TestBoundedClose(t *testing.T) {
	q := syncq.NewMPMC[int](16)

	for i := range 3 {
		if err := q.Push(&i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}

	q.Close()
	q.Close() // idempotent
	if !q.IsClosed() {
		t.Fatal("IsClosed after Close must be true")
	}

	v := 9
	if err := q.Push(&v); !errors.Is(err, syncq.ErrClosed) {
		t.Fatalf("Push after Close: got %v, want ErrClosed", err)
	}
	if err := q.TryPush(&v); !errors.Is(err, syncq.ErrClosed) {
		t.Fatalf("TryPush after Close: got %v, want ErrClosed", err)
	}
	if err := q.NonblockingPush(&v); !errors.Is(err, syncq.ErrClosed) {
		t.Fatalf("NonblockingPush after Close: got %v, want ErrClosed", err)
	}

	// Queued elements remain consumable after Close.
	for i := range 3 {
		got, err := q.Pop()
		if err != nil {
			t.Fatalf("Pop(%d) after Close: %v", i, err)
		}
		if got != i {
			t.Fatalf("Pop(%d): got %d, want %d", i, got, i)
		}
	}
	if _, err := q.Pop(); !errors.Is(err, syncq.ErrClosed) {
		t.Fatalf("Pop on drained closed queue: got %v, want ErrClosed", err)
	}
	if _, err := q.TryPop(); !errors.Is(err, syncq.ErrClosed) {
		t.Fatalf("TryPop on drained closed queue: got %v, want ErrClosed", err)
	}
}

// TestBoundedCloseWakesConsumers parks consumers on an empty queue for
// every wait strategy and verifies Close releases them.
func TestBoundedCloseWakesConsumers(t *testing.T) {
	for name, ws := range waits {
		t.Run(name, func(t *testing.T) {
			q := syncq.NewMPMC[int](16, syncq.WithWait(ws()))

			var wg sync.WaitGroup
			wg.Add(4)
			for range 4 {
				go func() {
					defer wg.Done()
					for {
						if _, err := q.Pop(); errors.Is(err, syncq.ErrClosed) {
							return
						}
					}
				}()
			}

			for i := range 8 {
				if err := q.Push(&i); err != nil {
					t.Errorf("Push(%d): %v", i, err)
					break
				}
			}
			q.Close()
			wg.Wait()
		})
	}
}

// TestSPSCOrdered streams a large ordered sequence through an SPSC
// ring with the spin strategy and verifies nothing is lost, duplicated
// or reordered.
func TestSPSCOrdered(t *testing.T) {
	if syncq.RaceEnabled {
		t.Skip("cross-variable memory ordering confuses the race detector")
	}
	total := 1_000_000
	if testing.Short() {
		total = 100_000
	}

	q := syncq.NewSPSC[int](1024, syncq.WithWait(syncq.SpinWait()))

	go func() {
		for i := range total {
			q.Push(&i)
		}
		q.Close()
	}()

	next := 0
	for {
		v, err := q.Pop()
		if err != nil {
			if !errors.Is(err, syncq.ErrClosed) {
				t.Fatalf("Pop: %v", err)
			}
			break
		}
		if v != next {
			t.Fatalf("out of order: got %d, want %d", v, next)
		}
		next++
	}
	if next != total {
		t.Fatalf("consumed: got %d, want %d", next, total)
	}
}

// TestMPMCFanInFanOut runs 8 producers of an identical string against
// 4 consumers over a futex-parked ring; the consumed count must match
// exactly and every consumer must observe ErrClosed eventually.
func TestMPMCFanInFanOut(t *testing.T) {
	if syncq.RaceEnabled {
		t.Skip("cross-variable memory ordering confuses the race detector")
	}
	const producers, consumers = 8, 4
	perProducer := 100_000
	if testing.Short() {
		perProducer = 10_000
	}

	q := syncq.NewMPMC[string](1024, syncq.WithWait(syncq.FutexWait()))

	var prod sync.WaitGroup
	prod.Add(producers)
	for range producers {
		go func() {
			defer prod.Done()
			s := "abc"
			for range perProducer {
				if err := q.Push(&s); err != nil {
					t.Errorf("Push: %v", err)
					return
				}
			}
		}()
	}

	counts := make([]int, consumers)
	var cons sync.WaitGroup
	cons.Add(consumers)
	for c := range consumers {
		go func() {
			defer cons.Done()
			for {
				v, err := q.Pop()
				if err != nil {
					if !errors.Is(err, syncq.ErrClosed) {
						t.Errorf("Pop: %v", err)
					}
					return
				}
				if v != "abc" {
					t.Errorf("consumed %q, want \"abc\"", v)
					return
				}
				counts[c]++
			}
		}()
	}

	prod.Wait()
	q.Close()
	cons.Wait()

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != producers*perProducer {
		t.Fatalf("consumed: got %d, want %d", total, producers*perProducer)
	}
}

// TestMPSCPerProducerOrder checks that with a single consumer the
// consumption order restricted to any one producer equals its push
// order.
func TestMPSCPerProducerOrder(t *testing.T) {
	if syncq.RaceEnabled {
		t.Skip("cross-variable memory ordering confuses the race detector")
	}
	const producers = 4
	perProducer := 50_000
	if testing.Short() {
		perProducer = 5_000
	}

	type item struct {
		producer int
		seq      int
	}
	q := syncq.NewMPSC[item](64, syncq.WithWait(syncq.YieldWait()))

	var prod sync.WaitGroup
	prod.Add(producers)
	for p := range producers {
		go func() {
			defer prod.Done()
			for i := range perProducer {
				v := item{producer: p, seq: i}
				if err := q.Push(&v); err != nil {
					t.Errorf("Push: %v", err)
					return
				}
			}
		}()
	}
	go func() {
		prod.Wait()
		q.Close()
	}()

	nextSeq := make([]int, producers)
	consumed := 0
	for {
		v, err := q.Pop()
		if err != nil {
			if !errors.Is(err, syncq.ErrClosed) {
				t.Fatalf("Pop: %v", err)
			}
			break
		}
		if v.seq != nextSeq[v.producer] {
			t.Fatalf("producer %d: got seq %d, want %d", v.producer, v.seq, nextSeq[v.producer])
		}
		nextSeq[v.producer]++
		consumed++
	}
	if consumed != producers*perProducer {
		t.Fatalf("consumed: got %d, want %d", consumed, producers*perProducer)
	}
}

// TestSPMCDistribution fans one producer out to several consumers and
// verifies the union of consumed values is exactly the pushed set.
func TestSPMCDistribution(t *testing.T) {
	if syncq.RaceEnabled {
		t.Skip("cross-variable memory ordering confuses the race detector")
	}
	const consumers = 4
	total := 200_000
	if testing.Short() {
		total = 20_000
	}

	q := syncq.NewSPMC[int](256, syncq.WithWait(syncq.FutexWait()))

	parts := make([][]int, consumers)
	var cons sync.WaitGroup
	cons.Add(consumers)
	for c := range consumers {
		go func() {
			defer cons.Done()
			for {
				v, err := q.Pop()
				if err != nil {
					return
				}
				parts[c] = append(parts[c], v)
			}
		}()
	}

	for i := range total {
		if err := q.Push(&i); err != nil {
			t.Fatalf("Push(%d): %v", i, err)
		}
	}
	q.Close()
	cons.Wait()

	var all []int
	for _, p := range parts {
		all = append(all, p...)
	}
	if len(all) != total {
		t.Fatalf("consumed: got %d, want %d", len(all), total)
	}
	slices.Sort(all)
	for i, v := range all {
		if v != i {
			t.Fatalf("value set broken at %d: got %d", i, v)
		}
	}
}

func TestBoundedObservers(t *testing.T) {
	lockFree := syncq.NewMPMC[int](16, syncq.WithWait(syncq.SpinWait()))
	if !lockFree.IsLockFree() {
		t.Fatal("spin strategy must report lock-free")
	}
	parked := syncq.NewMPMC[int](16, syncq.WithWait(syncq.CondVarWait()))
	if parked.IsLockFree() {
		t.Fatal("condvar strategy must not report lock-free")
	}
	if parked.IsFull() {
		t.Fatal("fresh queue must not be full")
	}
}

func TestBuilderSelection(t *testing.T) {
	if q, ok := syncq.Build[int](syncq.New(16).SingleProducer().SingleConsumer()).(*syncq.SPSC[int]); !ok {
		t.Fatalf("SP+SC: got %T, want *SPSC", q)
	}
	if q, ok := syncq.Build[int](syncq.New(16).SingleProducer()).(*syncq.SPMC[int]); !ok {
		t.Fatalf("SP: got %T, want *SPMC", q)
	}
	if q, ok := syncq.Build[int](syncq.New(16).SingleConsumer()).(*syncq.MPSC[int]); !ok {
		t.Fatalf("SC: got %T, want *MPSC", q)
	}
	if q, ok := syncq.Build[int](syncq.New(16)).(*syncq.MPMC[int]); !ok {
		t.Fatalf("unconstrained: got %T, want *MPMC", q)
	}
	q := syncq.Build[int](syncq.New(64).Wait(syncq.YieldWait()).Backoff(func() syncq.Backoff {
		return syncq.NewLinearBackoff(syncq.CycleFence, 64, 8)
	}))
	v := 1
	if err := q.Push(&v); err != nil {
		t.Fatalf("Push: %v", err)
	}
	got, err := q.Pop()
	if err != nil || got != 1 {
		t.Fatalf("Pop: got %d, %v", got, err)
	}
}

func TestAllAndFeed(t *testing.T) {
	q := syncq.NewMPMC[int](32)

	go func() {
		if err := syncq.Feed(q, slices.Values([]int{0, 1, 2, 3, 4, 5, 6, 7})); err != nil {
			t.Errorf("Feed: %v", err)
		}
		q.Close()
	}()

	var got []int
	for v := range syncq.All[int](q) {
		got = append(got, v)
	}
	if !slices.Equal(got, []int{0, 1, 2, 3, 4, 5, 6, 7}) {
		t.Fatalf("All: got %v", got)
	}

	// Feeding a closed queue reports ErrClosed.
	if err := syncq.Feed(q, slices.Values([]int{9})); !errors.Is(err, syncq.ErrClosed) {
		t.Fatalf("Feed after Close: got %v, want ErrClosed", err)
	}
}
