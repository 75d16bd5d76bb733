// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"math/big"
)

const (
	proposePath = "/propose"
	updatePath  = "/update"
)

// ProposalRequest - ask the counterparty to open a channel
type ProposalRequest struct {
	Deposit *big.Int `json:"deposit"`
}

// ProposalReply - the counterparty's decision
type ProposalReply struct {
	Accepted bool `json:"accepted"`
}

// UpdateRequest - our view of an open channel
type UpdateRequest struct {
	Sequence     uint64   `json:"sequence"`
	MyBalance    *big.Int `json:"my_balance"`
	TheirBalance *big.Int `json:"their_balance"`
	PendingSend  *big.Int `json:"pending_send"`
}

// UpdateReply - what the counterparty confirmed and what it sent us
type UpdateReply struct {
	Accepted     bool     `json:"accepted"`
	Acknowledged *big.Int `json:"acknowledged"`
	Sent         *big.Int `json:"sent"`
}
