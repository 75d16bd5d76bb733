// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"encoding/json"
	"math/big"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
)

func TestAddressFromPublicKey(t *testing.T) {
	// Keccak-256 of the empty string
	expected := "0xdcc703c0e500b653ca82273b7bfad8045d85a470"

	a := identity.AddressFromPublicKey([]byte{})
	assert.Equal(t, expected, a.String(), "wrong empty key address")

	b := identity.AddressFromPublicKey([]byte("some public key"))
	c := identity.AddressFromPublicKey([]byte("some public key"))
	assert.Equal(t, b, c, "derivation is not deterministic")
	assert.NotEqual(t, a, b, "different keys gave same address")
}

func TestParseAddress(t *testing.T) {
	text := "0x" + strings.Repeat("42", identity.AddressLength)

	a, err := identity.ParseAddress(text)
	assert.Nil(t, err, "parse error")
	assert.Equal(t, text, a.String(), "wrong round trip")
	assert.False(t, a.IsZero(), "unexpected zero")

	// prefix is optional
	b, err := identity.ParseAddress(strings.Repeat("42", identity.AddressLength))
	assert.Nil(t, err, "parse without prefix error")
	assert.Equal(t, a, b, "prefix changed result")

	invalid := []string{
		"",
		"0x",
		"0x4242",
		"0x" + strings.Repeat("42", identity.AddressLength+1),
		"0x" + strings.Repeat("zz", identity.AddressLength),
	}
	for i, s := range invalid {
		_, err := identity.ParseAddress(s)
		assert.Equal(t, fault.InvalidAddress, err, "%d: expected invalid for: %q", i, s)
	}
}

func TestIdentityJSON(t *testing.T) {
	a, _ := identity.ParseAddress("0x" + strings.Repeat("01", identity.AddressLength))

	tx := identity.PaymentTx{
		From: identity.Identity{
			MeshIP:      net.ParseIP("fd00::1"),
			WgPublicKey: "AAAAAAAAAAAAAAAAAAAA",
			EthAddress:  a,
		},
		Amount: big.NewInt(123),
	}

	buffer, err := json.Marshal(tx)
	assert.Nil(t, err, "marshal error")
	assert.Contains(t, string(buffer), `"eth_address":"0x0101010101010101010101010101010101010101"`, "address not in text form")
	assert.Contains(t, string(buffer), `"amount":123`, "wrong amount")

	var tx2 identity.PaymentTx
	err = json.Unmarshal(buffer, &tx2)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, a, tx2.From.EthAddress, "wrong address")
	assert.Equal(t, 0, tx.Amount.Cmp(tx2.Amount), "wrong amount")
}
