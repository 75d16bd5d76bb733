// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/guacd/fault"
)

// KeyPair - this node's signing keys
type KeyPair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// RawKeyPair - text version of keys as stored in the key file
type RawKeyPair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// NewKeyPair - create a key pair from secure random data
func NewKeyPair() (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// KeyPairFromSeed - deterministic key pair
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		PublicKey:  privateKey.Public().(ed25519.PublicKey),
		PrivateKey: privateKey,
	}, nil
}

// Address - the address derived from the public key
func (k *KeyPair) Address() Address {
	return AddressFromPublicKey(k.PublicKey)
}

// Raw - convert to the text form
func (k *KeyPair) Raw() RawKeyPair {
	return RawKeyPair{
		PublicKey:  hex.EncodeToString(k.PublicKey),
		PrivateKey: hex.EncodeToString(k.PrivateKey),
	}
}

// Save - write the key pair as JSON, readable only by the owner
func (k *KeyPair) Save(fileName string) error {
	data, err := json.MarshalIndent(k.Raw(), "", "  ")
	if nil != err {
		return err
	}
	return ioutil.WriteFile(fileName, append(data, '\n'), 0600)
}

// LoadKeyPair - read a key pair written by Save
func LoadKeyPair(fileName string) (*KeyPair, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}

	var raw RawKeyPair
	err = json.Unmarshal(data, &raw)
	if nil != err {
		return nil, err
	}

	publicKey, err := hex.DecodeString(raw.PublicKey)
	if nil != err {
		return nil, err
	}
	privateKey, err := hex.DecodeString(raw.PrivateKey)
	if nil != err {
		return nil, err
	}
	if ed25519.PublicKeySize != len(publicKey) || ed25519.PrivateKeySize != len(privateKey) {
		return nil, fault.InvalidKeyLength
	}

	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}
