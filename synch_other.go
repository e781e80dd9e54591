// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package syncq

// DefaultSynch returns the preferred synchronization bundle for the
// platform. Without a native futex the standard library primitives
// carry the same contract.
func DefaultSynch() Synch { return StdSynch{} }

// DefaultWait returns the preferred bounded-queue wait strategy for
// the platform.
func DefaultWait() WaitStrategy { return CondVarWait() }
