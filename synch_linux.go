// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package syncq

// DefaultSynch returns the preferred synchronization bundle for the
// platform: futex-backed primitives on Linux.
func DefaultSynch() Synch { return FutexSynch{} }

// DefaultWait returns the preferred bounded-queue wait strategy for
// the platform: futex slot parking on Linux.
func DefaultWait() WaitStrategy { return FutexWait() }
