// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"fmt"
	"math/big"
	"net"
)

// Identity - how a node is known to the mesh and to its channels
type Identity struct {
	MeshIP      net.IP  `json:"mesh_ip"`
	WgPublicKey string  `json:"wg_public_key"`
	EthAddress  Address `json:"eth_address"` // channel and store key
}

func (i Identity) String() string {
	return fmt.Sprintf("%s@%s", i.EthAddress, i.MeshIP)
}

// PaymentTx - a single payment from one node to another
type PaymentTx struct {
	From   Identity `json:"from"`
	To     Identity `json:"to"`
	Amount *big.Int `json:"amount"`
}
