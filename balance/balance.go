// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/bitmark-inc/guacd/balance Store

// Package balance - this node's spendable balance
//
// A single unsigned arbitrary precision value that is only ever
// changed by a credit or a debit.  Each change is performed while
// holding the lock for just the arithmetic and the write back, so
// concurrent payments and withdrawals serialise on the value but
// nothing else.
package balance

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/storage"
)

// Store - the operations used by the payment controller
type Store interface {
	Read() (*big.Int, error)
	Credit(amount *big.Int) (*big.Int, error)
	Debit(amount *big.Int) (*big.Int, error)
}

// key of the balance record in its pool
var ownKey = []byte("own")

// Cell - a balance optionally backed by a storage pool
type Cell struct {
	sync.Mutex
	value *big.Int
	pool  storage.Handle
}

// New - create a balance cell
//
// with a nil pool the balance is memory only and starts at zero,
// otherwise the last saved value is restored
func New(pool storage.Handle) (*Cell, error) {
	c := &Cell{
		value: new(big.Int),
		pool:  pool,
	}
	if nil == pool {
		return c, nil
	}

	buffer, err := pool.Get(ownKey)
	if nil != err {
		return nil, fault.StoreUnavailable
	}
	if nil != buffer {
		c.value.SetBytes(buffer)
	}
	return c, nil
}

// Read - current value, the result is a copy
func (c *Cell) Read() (*big.Int, error) {
	c.Lock()
	defer c.Unlock()

	return new(big.Int).Set(c.value), nil
}

// Credit - add to the balance, returns the new value
func (c *Cell) Credit(amount *big.Int) (*big.Int, error) {
	if nil == amount || amount.Sign() < 0 {
		return nil, fault.InvalidAmount
	}

	c.Lock()
	defer c.Unlock()

	return c.update(new(big.Int).Add(c.value, amount))
}

// Debit - subtract from the balance, returns the new value
//
// fails without any change if the balance is too small
func (c *Cell) Debit(amount *big.Int) (*big.Int, error) {
	if nil == amount || amount.Sign() < 0 {
		return nil, fault.InvalidAmount
	}

	c.Lock()
	defer c.Unlock()

	if c.value.Cmp(amount) < 0 {
		return nil, fault.InsufficientBalance
	}
	return c.update(new(big.Int).Sub(c.value, amount))
}

// save and commit a new value, must hold lock
func (c *Cell) update(value *big.Int) (*big.Int, error) {
	if nil != c.pool {
		if err := c.pool.Put(ownKey, value.Bytes()); nil != err {
			return nil, fault.StoreUnavailable
		}
	}
	c.value = value
	return new(big.Int).Set(value), nil
}
