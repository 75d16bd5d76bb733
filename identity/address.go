// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/guacd/fault"
)

// AddressLength - number of bytes in an address
const AddressLength = 20

// Address - opaque node identifier derived from its public key
type Address [AddressLength]byte

// AddressFromPublicKey - last 20 bytes of the Keccak-256 digest of the key
func AddressFromPublicKey(publicKey []byte) Address {
	digest := sha3.NewLegacyKeccak256()
	digest.Write(publicKey)
	hash := digest.Sum(nil)

	var a Address
	copy(a[:], hash[len(hash)-AddressLength:])
	return a
}

// ParseAddress - convert "0x" prefixed hex text to an address
func ParseAddress(s string) (Address, error) {
	var a Address
	err := a.UnmarshalText([]byte(s))
	return a, err
}

// Bytes - copy of the raw address
func (a Address) Bytes() []byte {
	b := make([]byte, AddressLength)
	copy(b, a[:])
	return b
}

// IsZero - true for the all zero address
func (a Address) IsZero() bool {
	return a == Address{}
}

// String - hex form for use by the fmt package (for %s)
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// GoString - hex form for use by the fmt package (for %#v)
func (a Address) GoString() string {
	return "<address:" + a.String() + ">"
}

// MarshalText - convert address to hex text
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert hex text into an address
func (a *Address) UnmarshalText(s []byte) error {
	text := strings.TrimPrefix(strings.TrimPrefix(string(s), "0x"), "0X")
	if hex.EncodedLen(AddressLength) != len(text) {
		return fault.InvalidAddress
	}
	byteCount, err := hex.Decode(a[:], []byte(text))
	if nil != err {
		return fault.InvalidAddress
	}
	if AddressLength != byteCount {
		return fault.InvalidAddress
	}
	return nil
}
