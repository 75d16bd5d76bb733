// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package controller

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/guacd/background"
)

// the periodic callers of a controller
type ticker struct {
	log        *logger.L
	controller *Controller
	interval   time.Duration
}

type withdrawer struct {
	log        *logger.L
	controller *Controller
	interval   time.Duration
}

// NewTicker - background process calling Tick every interval
func NewTicker(c *Controller, interval time.Duration) background.Process {
	return &ticker{
		log:        logger.New("ticker"),
		controller: c,
		interval:   interval,
	}
}

// NewWithdrawer - background process withdrawing from every
// counterparty every interval
func NewWithdrawer(c *Controller, interval time.Duration) background.Process {
	return &withdrawer{
		log:        logger.New("withdrawer"),
		controller: c,
		interval:   interval,
	}
}

func (t *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	log := t.log

	log.Infof("starting…  interval: %s", t.interval)

	clock := time.NewTicker(t.interval)
	defer clock.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-clock.C:
			if err := t.controller.Tick(context.Background()); nil != err {
				log.Errorf("tick error: %s", err)
			}
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

func (w *withdrawer) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log

	log.Infof("starting…  interval: %s", w.interval)

	clock := time.NewTicker(w.interval)
	defer clock.Stop()

	// cancel a pass in progress when shutting down
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-clock.C:
			w.withdrawAll(ctx)
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

func (w *withdrawer) withdrawAll(ctx context.Context) {
	addresses, err := w.controller.store.Counterparties(ctx)
	if nil != err {
		w.log.Errorf("enumerate error: %s", err)
		return
	}

	for _, address := range addresses {
		amount, err := w.controller.Withdraw(ctx, address)
		if nil != err {
			w.log.Warnf("withdraw from: %s  error: %s", address, err)
			continue
		}
		if 0 != amount.Sign() {
			w.log.Debugf("withdraw from: %s  amount: %s", address, amount)
		}
	}
}
