// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/guacd/balance"
	"github.com/bitmark-inc/guacd/channel"
	"github.com/bitmark-inc/guacd/counterparty"
	"github.com/bitmark-inc/guacd/identity"
	"github.com/bitmark-inc/guacd/storage"
)

type listEntry struct {
	Counterparty counterparty.Counterparty `json:"counterparty"`
	Channel      *channel.Manager          `json:"channel"`
}

type listing struct {
	Balance        string      `json:"balance"`
	Counterparties []listEntry `json:"counterparties"`
}

// open the node's database, the node must not be running
func openDatabase(c *cli.Context, readOnly bool) (*counterparty.PoolStore, func(), error) {
	database, err := checkRequired(c, "database")
	if nil != err {
		return nil, nil, err
	}

	// storage logs, so a logger is needed even for a short run
	logDirectory, err := ioutil.TempDir("", "guac-cli")
	if nil != err {
		return nil, nil, err
	}
	err = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "guac-cli.log",
		Size:      1048576,
		Count:     2,
		Levels: map[string]string{
			logger.DefaultTag: "error",
		},
	})
	if nil != err {
		_ = os.RemoveAll(logDirectory)
		return nil, nil, err
	}

	if err := storage.Initialise(database, readOnly); nil != err {
		logger.Finalise()
		_ = os.RemoveAll(logDirectory)
		return nil, nil, err
	}

	store := counterparty.New(logger.New("counterparty"), storage.Pool.Counterparties, storage.Pool.Channels)
	finish := func() {
		storage.Finalise()
		logger.Finalise()
		_ = os.RemoveAll(logDirectory)
	}
	return store, finish, nil
}

func runRegister(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	a, err := checkRequired(c, "address")
	if nil != err {
		return err
	}
	url, err := checkRequired(c, "url")
	if nil != err {
		return err
	}
	address, err := identity.ParseAddress(a)
	if nil != err {
		return err
	}

	store, finish, err := openDatabase(c, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer finish()

	cp := counterparty.Counterparty{
		Address: address,
		URL:     url,
	}
	if err := store.InitData(context.Background(), cp, channel.New()); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "registered: %s\n", address)
	}
	return printJson(m.w, cp)
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	store, finish, err := openDatabase(c, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer finish()

	own, err := balance.New(storage.Pool.Balance)
	if nil != err {
		return err
	}
	value, err := own.Read()
	if nil != err {
		return err
	}

	ctx := context.Background()
	addresses, err := store.Counterparties(ctx)
	if nil != err {
		return err
	}

	result := listing{
		Balance:        value.String(),
		Counterparties: make([]listEntry, 0, len(addresses)),
	}
	for _, address := range addresses {
		cp, err := store.Get(ctx, address)
		if nil != err {
			return err
		}
		h, err := store.GetChannel(ctx, address)
		if nil != err {
			return err
		}
		// copy out, the read only database cannot be written back
		manager := *h.Manager()
		_ = h.Release()

		result.Counterparties = append(result.Counterparties, listEntry{
			Counterparty: cp,
			Channel:      &manager,
		})
	}

	return printJson(m.w, result)
}
