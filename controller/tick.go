// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package controller

import (
	"context"

	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
)

// Tick - start one reconciliation with every counterparty
//
// returns as soon as the reconciliations are started; their results
// are only logged.  Ticks from an earlier call may still be running.
func (c *Controller) Tick(ctx context.Context) error {
	addresses, err := c.store.Counterparties(ctx)
	if nil != err {
		c.log.Errorf("tick: enumerate error: %s", err)
		return err
	}

	c.RLock()
	defer c.RUnlock()

	if c.closed {
		return fault.NotInitialised
	}

	tickCycles.Inc()
	c.log.Debugf("tick: %d counterparties", len(addresses))

	for _, address := range addresses {
		c.wg.Add(1)
		c.pending.Increment()
		ticksPending.Inc()
		go c.tick(address)
	}
	return nil
}

// one reconciliation, detached from the caller's context
func (c *Controller) tick(address identity.Address) {
	defer func() {
		ticksPending.Dec()
		c.pending.Decrement()
		c.wg.Done()
	}()

	if err := c.slots.Acquire(c.ctx, 1); nil != err {
		c.log.Warnf("tick to %s abandoned: %s", address, err)
		tickCount.WithLabelValues(resultAbandoned).Inc()
		return
	}
	defer c.slots.Release(1)

	err := c.dispatcher.Tick(c.ctx, address)
	if nil != err {
		c.log.Warnf("tick to %s failed with %s", address, err)
		tickCount.WithLabelValues(resultFailure).Inc()
		return
	}
	c.log.Debugf("tick to %s was successful", address)
	tickCount.WithLabelValues(resultSuccess).Inc()
}
