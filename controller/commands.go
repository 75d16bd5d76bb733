// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package controller

import (
	"context"
	"math/big"

	"github.com/bitmark-inc/guacd/channel"
	"github.com/bitmark-inc/guacd/counterparty"
	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
)

// MakePayment - pay tx.Amount to tx.To through its channel
//
// the balance is debited before the channel is touched; if the
// channel does not take the payment the debit is credited back
func (c *Controller) MakePayment(ctx context.Context, tx identity.PaymentTx) error {
	amount := tx.Amount
	if nil == amount || amount.Sign() < 0 {
		paymentCount.WithLabelValues(resultFailure).Inc()
		return fault.InvalidAmount
	}

	if _, err := c.balance.Debit(amount); nil != err {
		c.log.Debugf("payment to: %s  amount: %s  debit error: %s", tx.To.EthAddress, amount, err)
		paymentCount.WithLabelValues(resultFailure).Inc()
		return err
	}

	err := c.pay(ctx, tx.To.EthAddress, amount)
	if nil != err {
		c.log.Warnf("payment to: %s  amount: %s  error: %s", tx.To.EthAddress, amount, err)
		if _, e := c.balance.Credit(amount); nil != e {
			c.log.Criticalf("payment to: %s  amount: %s  restore balance error: %s", tx.To.EthAddress, amount, e)
		}
		paymentCount.WithLabelValues(resultFailure).Inc()
		return err
	}

	c.log.Infof("payment to: %s  amount: %s", tx.To.EthAddress, amount)
	paymentCount.WithLabelValues(resultSuccess).Inc()
	return nil
}

func (c *Controller) pay(ctx context.Context, address identity.Address, amount *big.Int) error {
	h, err := c.store.GetChannel(ctx, address)
	if nil != err {
		return err
	}

	if err := h.Manager().Pay(amount); nil != err {
		// nothing changed, release cannot lose anything
		_ = h.Release()
		return err
	}
	return h.Release()
}

// Register - start a new channel with a counterparty
func (c *Controller) Register(ctx context.Context, cp counterparty.Counterparty) error {
	if err := c.store.InitData(ctx, cp, channel.New()); nil != err {
		c.log.Warnf("register: %s  error: %s", cp.Address, err)
		return err
	}
	if f, ok := c.dispatcher.(forgetter); ok {
		f.Forget(cp.Address)
	}
	return nil
}

// dispatchers that cache counterparty details
type forgetter interface {
	Forget(identity.Address)
}

// Withdraw - move received channel funds to the spendable balance
//
// returns the amount moved, which may be zero
func (c *Controller) Withdraw(ctx context.Context, address identity.Address) (*big.Int, error) {
	h, err := c.store.GetChannel(ctx, address)
	if nil != err {
		return nil, err
	}

	amount, err := h.Manager().Withdraw()
	if nil != err {
		_ = h.Release()
		return nil, err
	}

	// the channel must record the withdrawal before the balance sees it
	if err := h.Release(); nil != err {
		return nil, err
	}

	if 0 == amount.Sign() {
		return amount, nil
	}

	if _, err := c.balance.Credit(amount); nil != err {
		c.log.Criticalf("withdraw from: %s  amount: %s  credit error: %s", address, amount, err)
		return nil, err
	}

	c.log.Infof("withdraw from: %s  amount: %s", address, amount)
	withdrawCount.Inc()
	return amount, nil
}

// GetOwnBalance - the spendable balance
func (c *Controller) GetOwnBalance() (*big.Int, error) {
	return c.balance.Read()
}
