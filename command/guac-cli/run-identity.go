// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/guacd/envelope"
	"github.com/bitmark-inc/guacd/identity"
)

type generated struct {
	identity.RawKeyPair
	Address identity.Address `json:"address"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var keyPair *identity.KeyPair
	var err error
	if seed := c.String("seed"); "" != seed {
		b, err := hex.DecodeString(seed)
		if nil != err {
			return err
		}
		keyPair, err = identity.KeyPairFromSeed(b)
		if nil != err {
			return err
		}
	} else {
		keyPair, err = identity.NewKeyPair()
		if nil != err {
			return err
		}
	}

	if output := c.String("output"); "" != output {
		if m.verbose {
			fmt.Fprintf(m.e, "saving key pair to: %q\n", output)
		}
		if err := keyPair.Save(output); nil != err {
			return err
		}
	}

	return printJson(m.w, generated{
		RawKeyPair: keyPair.Raw(),
		Address:    keyPair.Address(),
	})
}

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.String("identity")
	publicKey := c.String("public-key")

	var address identity.Address
	switch {
	case "" != fileName && "" == publicKey:
		keyPair, err := identity.LoadKeyPair(fileName)
		if nil != err {
			return err
		}
		address = keyPair.Address()

	case "" == fileName && "" != publicKey:
		b, err := hex.DecodeString(publicKey)
		if nil != err {
			return err
		}
		address = identity.AddressFromPublicKey(b)

	default:
		return fmt.Errorf("select one of: --identity or --public-key")
	}

	fmt.Fprintf(m.w, "%s\n", address)
	return nil
}

func runWrap(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName, err := checkRequired(c, "identity")
	if nil != err {
		return err
	}
	data, err := checkRequired(c, "data")
	if nil != err {
		return err
	}
	if !json.Valid([]byte(data)) {
		return fmt.Errorf("data is not valid JSON")
	}

	keyPair, err := identity.LoadKeyPair(fileName)
	if nil != err {
		return err
	}

	return printJson(m.w, envelope.Wrap(keyPair, json.RawMessage(data)))
}
