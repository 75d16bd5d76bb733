// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=mocks/handle.go -package=mocks github.com/bitmark-inc/guacd/storage Handle

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++      = concatenation of byte data
// 3. address = 20 byte node address
// 4. amount  = big endian unsigned magnitude of a big.Int
//
// Counterparties:
//
//   C ++ address       - registered counterparty
//                        data: JSON {address, url}
//
// Channels:
//
//   M ++ address       - channel manager state for the counterparty
//                        data: JSON channel.Manager
//
// Balance:
//
//   B ++ "own"         - this node's spendable balance
//                        data: amount
//
// Counterparty and channel records are written together by a
// Transaction so a registration is never half stored.
package storage
