// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package envelope - tags every outbound request with the sending
// node's address
//
// The tag is a claim only.  Nothing here proves that the sender owns
// the address, so a receiver must verify FromAddr by other means
// (e.g. a mutually authenticated transport) before acting on it.
package envelope

import (
	"github.com/bitmark-inc/guacd/identity"
)

// Self - anything that knows the local node's address
type Self interface {
	Address() identity.Address
}

// Request - a payload tagged with the claimed sender
type Request[T any] struct {
	FromAddr identity.Address `json:"from_addr"`
	Data     T                `json:"data"`
}

// Wrap - tag data with the local node's address
func Wrap[T any](self Self, data T) Request[T] {
	return Request[T]{
		FromAddr: self.Address(),
		Data:     data,
	}
}

// Sender - the claimed, unverified sender
func (r Request[T]) Sender() identity.Address {
	return r.FromAddr
}
