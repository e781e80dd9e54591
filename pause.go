// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syncq

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Pause waits roughly n units of time. CycleFence and CPURelax keep the
// processor busy; NanoSleep hands it to the OS. It is the primitive a Backoff schedules between retries of a
// contended operation.
type Pause func(n uint32)

// CycleFence burns n iterations of a relaxed atomic store to a local
// cell. The store keeps the compiler from eliding the loop but causes
// no cross-core cache traffic, so it is the cheapest possible delay.
func CycleFence(n uint32) {
	var sink atomix.Uint32
	for ; n > 0; n-- {
		sink.StoreRelaxed(0)
	}
}

// CPURelax executes n iterations of the architecture's pause hint,
// reducing pipeline and memory-order speculation pressure while
// spinning next to another core's writes.
func CPURelax(n uint32) {
	sw := spin.Wait{}
	for ; n > 0; n-- {
		sw.Once()
		sw.Reset()
	}
}

// NanoSleep asks the OS to sleep for at most n nanoseconds. The actual
// delay is at the mercy of the scheduler and usually much longer.
func NanoSleep(n uint32) {
	time.Sleep(time.Duration(n) * time.Nanosecond)
}
