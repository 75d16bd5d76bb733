// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=mocks/store.go -package=mocks github.com/bitmark-inc/guacd/counterparty Store,Handle

// Package counterparty - registered remote nodes and their channels
package counterparty

import (
	"context"
	"net/url"

	"github.com/bitmark-inc/guacd/channel"
	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
)

// Counterparty - a remote node that a channel is, or will be, open with
type Counterparty struct {
	Address identity.Address `json:"address"`
	URL     string           `json:"url"`
}

// Validate - check the URL can be used to reach the counterparty
func (c Counterparty) Validate() error {
	if c.Address.IsZero() {
		return fault.InvalidAddress
	}
	u, err := url.Parse(c.URL)
	if nil != err || "" == u.Host {
		return fault.InvalidURL
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return fault.InvalidURL
	}
	return nil
}

// Handle - exclusive access to one counterparty's channel manager
//
// Release must be called exactly once; it saves the manager and
// allows other operations on the same counterparty to proceed
type Handle interface {
	Manager() *channel.Manager
	Release() error
}

// Store - persistent counterparty data
type Store interface {
	Get(ctx context.Context, address identity.Address) (Counterparty, error)
	GetChannel(ctx context.Context, address identity.Address) (Handle, error)
	Counterparties(ctx context.Context) ([]identity.Address, error)
	InitData(ctx context.Context, c Counterparty, m *channel.Manager) error
}
