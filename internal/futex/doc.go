// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package futex provides a 32-bit word that doubles as an atomic cell
// and an operating-system wait address.
//
// On Linux the Wait/Wake/Requeue operations map directly onto the futex
// syscall with the PRIVATE flag. On other platforms they are emulated
// with a hashed parking lot of mutex+cond buckets; the emulation admits
// spurious wake-ups, which every caller in this module tolerates by
// re-checking its condition in a loop.
//
// The Word uses std sync/atomic rather than atomix because the kernel
// needs the raw address of the cell and atomix does not expose one.
// Go atomics are sequentially consistent; where the callers only need
// acquire or release semantics this is stronger, never weaker.
package futex
