// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/bitmark-inc/guacd/counter"
)

func TestCounter(t *testing.T) {

	var c1 counter.Counter

	if !c1.IsZero() {
		t.Errorf("counter is not zero at start: %d", c1.Value())
	}

	for i := 0; i < 5; i += 1 {
		c1.Increment()
	}
	if 5 != c1.Value() {
		t.Errorf("counter is not 5 after incrementing: %d", c1.Value())
	}

	for i := 0; i < 5; i += 1 {
		c1.Decrement()
	}
	if !c1.IsZero() {
		t.Errorf("counter did not return to zero: %d", c1.Value())
	}

	c1.Decrement()
	if -1 != c1.Value() {
		t.Errorf("counter did not go negative: %d", c1.Value())
	}
}

func TestConcurrentCounter(t *testing.T) {

	var c counter.Counter
	var wg sync.WaitGroup

	for i := 0; i < 100; i += 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment()
			c.Increment()
			c.Decrement()
		}()
	}
	wg.Wait()

	if 100 != c.Value() {
		t.Errorf("counter expected: 100  actual: %d", c.Value())
	}
}
