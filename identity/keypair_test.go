// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package identity_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
)

func TestKeyPairFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)

	k1, err := identity.KeyPairFromSeed(seed)
	assert.Nil(t, err, "seed error")
	k2, err := identity.KeyPairFromSeed(seed)
	assert.Nil(t, err, "seed error")

	assert.Equal(t, k1.Address(), k2.Address(), "same seed gave different address")
	assert.Equal(t, identity.AddressFromPublicKey(k1.PublicKey), k1.Address(), "wrong address derivation")

	_, err = identity.KeyPairFromSeed([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidKeyLength, err, "short seed accepted")
}

func TestKeyPairSaveLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "keypair")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(dir)

	k, err := identity.NewKeyPair()
	assert.Nil(t, err, "generate error")

	fileName := filepath.Join(dir, "node.private")
	err = k.Save(fileName)
	assert.Nil(t, err, "save error")

	k2, err := identity.LoadKeyPair(fileName)
	assert.Nil(t, err, "load error")
	assert.Equal(t, k.Address(), k2.Address(), "wrong address after reload")
	assert.True(t, bytes.Equal(k.PrivateKey, k2.PrivateKey), "private key changed")

	_, err = identity.LoadKeyPair(filepath.Join(dir, "missing"))
	assert.NotNil(t, err, "missing file loaded")
}
