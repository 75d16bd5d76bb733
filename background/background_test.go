// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bitmark-inc/guacd/background"
)

type poller struct {
	polls    int64
	finished bool
}

func (p *poller) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			atomic.AddInt64(&p.polls, 1)
		}
	}
	p.finished = true
}

func TestBackground(t *testing.T) {

	proc1 := &poller{}
	proc2 := &poller{}

	p := background.Start(background.Processes{proc1, proc2}, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	for i, proc := range []*poller{proc1, proc2} {
		if !proc.finished {
			t.Errorf("process[%d] did not finish", i)
		}
		if 0 == atomic.LoadInt64(&proc.polls) {
			t.Errorf("process[%d] never polled", i)
		}
	}

	// second stop must not block or panic
	p.Stop()
}
