// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package channel - state of one payment channel with a counterparty
//
// A Manager is not safe for concurrent use; the counterparty store
// hands out exclusive access to it.  Every method either applies its
// whole change or returns an error leaving the manager unchanged.
package channel

import (
	"encoding/json"
	"math/big"

	"github.com/bitmark-inc/guacd/fault"
)

// Manager - balances and lifecycle of a channel
type Manager struct {
	State        State    `json:"state"`
	Deposit      *big.Int `json:"deposit"`       // our proposed or locked deposit
	MyBalance    *big.Int `json:"my_balance"`    // our side of the channel
	TheirBalance *big.Int `json:"their_balance"` // counterparty's side
	PendingSend  *big.Int `json:"pending_send"`  // paid but not yet acknowledged
	Received     *big.Int `json:"received"`      // received but not yet withdrawn
	Sequence     uint64   `json:"sequence"`
}

// New - a channel that has not been proposed yet
func New() *Manager {
	return &Manager{
		State:        StateNew,
		Deposit:      new(big.Int),
		MyBalance:    new(big.Int),
		TheirBalance: new(big.Int),
		PendingSend:  new(big.Int),
		Received:     new(big.Int),
	}
}

// Propose - record the deposit offered to the counterparty
//
// repeating a proposal while one is outstanding replaces the deposit
func (m *Manager) Propose(deposit *big.Int) error {
	if !validAmount(deposit) {
		return fault.InvalidAmount
	}
	if StateNew != m.State && StateProposed != m.State {
		return fault.WrongChannelState
	}
	m.Deposit = new(big.Int).Set(deposit)
	m.State = StateProposed
	return nil
}

// AcceptProposal - the counterparty's answer to our proposal
func (m *Manager) AcceptProposal(accepted bool) error {
	if StateProposed != m.State {
		return fault.WrongChannelState
	}
	if !accepted {
		m.State = StateNew
		m.Deposit = new(big.Int)
		return nil
	}
	m.MyBalance = new(big.Int).Set(m.Deposit)
	m.State = StateOpen
	return nil
}

// Pay - move amount from our side to the counterparty's side
func (m *Manager) Pay(amount *big.Int) error {
	if !validAmount(amount) {
		return fault.InvalidAmount
	}
	if StateOpen != m.State {
		return fault.WrongChannelState
	}
	if m.MyBalance.Cmp(amount) < 0 {
		return fault.InsufficientChannelBalance
	}
	m.MyBalance = new(big.Int).Sub(m.MyBalance, amount)
	m.TheirBalance = new(big.Int).Add(m.TheirBalance, amount)
	m.PendingSend = new(big.Int).Add(m.PendingSend, amount)
	m.Sequence += 1
	return nil
}

// Receive - the counterparty moved amount to our side
func (m *Manager) Receive(amount *big.Int) error {
	if !validAmount(amount) {
		return fault.InvalidAmount
	}
	if StateOpen != m.State {
		return fault.WrongChannelState
	}
	if m.TheirBalance.Cmp(amount) < 0 {
		return fault.ChannelRejected
	}
	m.TheirBalance = new(big.Int).Sub(m.TheirBalance, amount)
	m.MyBalance = new(big.Int).Add(m.MyBalance, amount)
	m.Received = new(big.Int).Add(m.Received, amount)
	m.Sequence += 1
	return nil
}

// Acknowledge - the counterparty confirmed receipt of amount
//
// acknowledging more than is pending clears the pending amount
func (m *Manager) Acknowledge(amount *big.Int) error {
	if !validAmount(amount) {
		return fault.InvalidAmount
	}
	if m.PendingSend.Cmp(amount) <= 0 {
		m.PendingSend = new(big.Int)
		return nil
	}
	m.PendingSend = new(big.Int).Sub(m.PendingSend, amount)
	return nil
}

// Withdraw - take everything received since the last withdrawal
//
// zero is a valid result, in any state
func (m *Manager) Withdraw() (*big.Int, error) {
	amount := m.Received
	m.Received = new(big.Int)
	return amount, nil
}

// Close - no further payments
func (m *Manager) Close() error {
	if StateClosed == m.State {
		return fault.WrongChannelState
	}
	m.State = StateClosed
	return nil
}

// Clone - an independent copy
func (m *Manager) Clone() *Manager {
	return &Manager{
		State:        m.State,
		Deposit:      copyAmount(m.Deposit),
		MyBalance:    copyAmount(m.MyBalance),
		TheirBalance: copyAmount(m.TheirBalance),
		PendingSend:  copyAmount(m.PendingSend),
		Received:     copyAmount(m.Received),
		Sequence:     m.Sequence,
	}
}

// Pack - serialise for storage
func (m *Manager) Pack() ([]byte, error) {
	return json.Marshal(m)
}

// Unpack - restore a manager saved by Pack
func Unpack(buffer []byte) (*Manager, error) {
	m := New()
	if err := json.Unmarshal(buffer, m); nil != err {
		return nil, err
	}
	return m, nil
}

func validAmount(amount *big.Int) bool {
	return nil != amount && amount.Sign() >= 0
}

func copyAmount(amount *big.Int) *big.Int {
	if nil == amount {
		return new(big.Int)
	}
	return new(big.Int).Set(amount)
}
