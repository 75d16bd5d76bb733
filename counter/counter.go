// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a gauge style counter that can be incremented and
// decremented from many goroutines
type Counter struct {
	value atomic.Int64
}

// Increment - add 1 to a counter, returns new value
func (c *Counter) Increment() int64 {
	return c.value.Add(1)
}

// Decrement - subtract 1 from a counter, returns new value
func (c *Counter) Decrement() int64 {
	return c.value.Add(-1)
}

// Value - current value
func (c *Counter) Value() int64 {
	return c.value.Load()
}

// IsZero - check if zero
func (c *Counter) IsZero() bool {
	return 0 == c.value.Load()
}
