// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package controller - coordinates payments, withdrawals and channel
// reconciliation against the balance and counterparty stores
//
// Commands that touch one counterparty return that counterparty's
// error to the caller.  Tick touches every counterparty and never
// lets one counterparty's failure reach the caller or its siblings.
package controller

import (
	"context"
	"sync"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/semaphore"

	"github.com/bitmark-inc/guacd/balance"
	"github.com/bitmark-inc/guacd/counter"
	"github.com/bitmark-inc/guacd/counterparty"
	"github.com/bitmark-inc/guacd/dispatcher"
	"github.com/bitmark-inc/guacd/fault"
)

// DefaultMaximumTicks - concurrent reconciliations when not configured
const DefaultMaximumTicks = 32

// Handles - the collaborators a controller works through
type Handles struct {
	Balance      balance.Store
	Store        counterparty.Store
	Dispatcher   dispatcher.Dispatcher
	MaximumTicks int64 // concurrent dispatcher calls
}

// Controller - payment controller
type Controller struct {
	log        *logger.L
	balance    balance.Store
	store      counterparty.Store
	dispatcher dispatcher.Dispatcher

	// tick fan-out
	slots   *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	pending counter.Counter

	sync.RWMutex
	closed bool
}

// the process-wide controller
var globalData struct {
	sync.RWMutex
	controller *Controller
}

// Initialise - create the process-wide controller
func Initialise(handles Handles) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.controller {
		return fault.AlreadyInitialised
	}

	c, err := New(handles)
	if nil != err {
		return err
	}
	globalData.controller = c
	return nil
}

// Instance - the process-wide controller
//
// panics if Initialise has not been called
func Instance() *Controller {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.controller {
		fault.Panic("controller: not initialised")
	}
	return globalData.controller
}

// Finalise - stop the process-wide controller
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.controller {
		return fault.NotInitialised
	}

	globalData.controller.Close()
	globalData.controller = nil
	return nil
}

// New - create a controller on explicit handles
func New(handles Handles) (*Controller, error) {
	if nil == handles.Balance || nil == handles.Store || nil == handles.Dispatcher {
		return nil, fault.MissingParameters
	}

	maximum := handles.MaximumTicks
	if maximum <= 0 {
		maximum = DefaultMaximumTicks
	}

	log := logger.New("controller")
	if nil == log {
		return nil, fault.InvalidLoggerChannel
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Infof("maximum concurrent ticks: %d", maximum)

	return &Controller{
		log:        log,
		balance:    handles.Balance,
		store:      handles.Store,
		dispatcher: handles.Dispatcher,
		slots:      semaphore.NewWeighted(maximum),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Close - abandon outstanding ticks and wait for their goroutines
//
// further ticks are refused, other commands still work
func (c *Controller) Close() {
	c.Lock()
	if c.closed {
		c.Unlock()
		return
	}
	c.closed = true
	c.cancel()
	c.Unlock()

	c.wg.Wait()
	c.log.Info("stopped")
	c.log.Flush()
}

// Wait - block until every tick started so far has finished
//
// must not be called concurrently with Tick
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Pending - number of ticks started and not yet finished
func (c *Controller) Pending() int64 {
	return c.pending.Value()
}
