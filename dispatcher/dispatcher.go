// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=mocks/dispatcher.go -package=mocks github.com/bitmark-inc/guacd/dispatcher Dispatcher

// Package dispatcher - network round trips to counterparties
//
// A tick looks at the state of one counterparty's channel and sends
// whatever request moves it forward:
//
//   new, proposed  →  POST <url>/propose   then accept or reject
//   open           →  POST <url>/update    then apply the reply
//   closed         →  nothing
//
// Every request body is an envelope tagged with this node's address.
package dispatcher

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/guacd/channel"
	"github.com/bitmark-inc/guacd/counterparty"
	"github.com/bitmark-inc/guacd/envelope"
	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
)

// Dispatcher - one reconciliation round trip with a counterparty
type Dispatcher interface {
	Tick(ctx context.Context, address identity.Address) error
}

// defaults for zero configuration values
const (
	defaultTimeout     = 10 // seconds
	defaultRateLimit   = 50 // requests per second
	defaultRateBurst   = 10
	defaultCacheExpiry = 60 // seconds
)

// Configuration - dispatcher settings from the configuration file
type Configuration struct {
	Deposit     string  `gluamapper:"deposit" json:"deposit"`           // decimal amount offered when opening a channel
	Timeout     int     `gluamapper:"timeout" json:"timeout"`           // seconds per request
	RateLimit   float64 `gluamapper:"rate_limit" json:"rate_limit"`     // requests per second over all counterparties
	RateBurst   int     `gluamapper:"rate_burst" json:"rate_burst"`     //
	CacheExpiry int     `gluamapper:"cache_expiry" json:"cache_expiry"` // seconds to remember a counterparty's URL
}

// HTTP - dispatcher using JSON over HTTP
type HTTP struct {
	log     *logger.L
	store   counterparty.Store
	self    envelope.Self
	client  *http.Client
	limiter *rate.Limiter
	urls    *cache.Cache
	deposit *big.Int
}

// New - create an HTTP dispatcher
func New(log *logger.L, store counterparty.Store, self envelope.Self, configuration Configuration) (*HTTP, error) {
	if nil == log {
		return nil, fault.InvalidLoggerChannel
	}

	deposit := new(big.Int)
	if "" != configuration.Deposit {
		if _, ok := deposit.SetString(configuration.Deposit, 10); !ok || deposit.Sign() < 0 {
			return nil, fault.InvalidAmount
		}
	}

	timeout := configuration.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit := configuration.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}
	burst := configuration.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}
	expiry := configuration.CacheExpiry
	if expiry <= 0 {
		expiry = defaultCacheExpiry
	}

	return &HTTP{
		log:   log,
		store: store,
		self:  self,
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(limit), burst),
		urls:    cache.New(time.Duration(expiry)*time.Second, 2*time.Duration(expiry)*time.Second),
		deposit: deposit,
	}, nil
}

// Tick - move one counterparty's channel forward
//
// the channel is not held during the round trip; the reply is only
// applied if the channel has not changed in the meantime
func (d *HTTP) Tick(ctx context.Context, address identity.Address) error {
	if err := d.limiter.Wait(ctx); nil != err {
		return fmt.Errorf("%w: %v", fault.RateLimiting, err)
	}

	url, err := d.url(ctx, address)
	if nil != err {
		return err
	}

	snapshot, err := d.prepare(ctx, address)
	if nil != err {
		return err
	}

	switch snapshot.State {
	case channel.StateProposed:
		return d.propose(ctx, address, url, snapshot)
	case channel.StateOpen:
		return d.update(ctx, address, url, snapshot)
	default:
		d.log.Debugf("tick: %s  nothing to do in state: %s", address, snapshot.State)
		return nil
	}
}

// copy of the channel to build a request from, a new channel is
// moved to proposed first
func (d *HTTP) prepare(ctx context.Context, address identity.Address) (*channel.Manager, error) {
	h, err := d.store.GetChannel(ctx, address)
	if nil != err {
		return nil, err
	}

	m := h.Manager()
	d.log.Debugf("tick: %s  state: %s  sequence: %d", address, m.State, m.Sequence)

	if channel.StateNew == m.State {
		if err := m.Propose(d.deposit); nil != err {
			_ = h.Release()
			return nil, err
		}
	}

	snapshot := m.Clone()
	if err := h.Release(); nil != err {
		return nil, err
	}
	return snapshot, nil
}

// apply a reply to the channel if it is still as it was when the
// request was made, otherwise the next tick sends a fresh request
//
// change works on a copy so a failure leaves the channel untouched
func (d *HTTP) apply(ctx context.Context, address identity.Address, snapshot *channel.Manager, change func(*channel.Manager) error) (err error) {
	h, err := d.store.GetChannel(ctx, address)
	if nil != err {
		return err
	}
	defer func() {
		if e := h.Release(); nil != e {
			d.log.Errorf("tick: %s  release error: %s", address, e)
			if nil == err {
				err = e
			}
		}
	}()

	m := h.Manager()
	if m.State != snapshot.State || m.Sequence != snapshot.Sequence {
		d.log.Warnf("tick: %s  channel changed during request  state: %s → %s  sequence: %d → %d", address, snapshot.State, m.State, snapshot.Sequence, m.Sequence)
		return nil
	}

	next := m.Clone()
	if err := change(next); nil != err {
		return err
	}
	*m = *next
	return nil
}

// counterparty URL, cached to avoid a store read on every tick
func (d *HTTP) url(ctx context.Context, address identity.Address) (string, error) {
	key := address.String()
	if u, found := d.urls.Get(key); found {
		return u.(string), nil
	}

	c, err := d.store.Get(ctx, address)
	if nil != err {
		return "", err
	}
	d.urls.SetDefault(key, c.URL)
	return c.URL, nil
}

// Forget - drop a cached URL, e.g. after re-registration
func (d *HTTP) Forget(address identity.Address) {
	d.urls.Delete(address.String())
}

func (d *HTTP) propose(ctx context.Context, address identity.Address, url string, snapshot *channel.Manager) error {
	request := envelope.Wrap(d.self, ProposalRequest{
		Deposit: snapshot.Deposit,
	})
	var reply ProposalReply
	if err := postJSON(ctx, d.client, url+proposePath, request, &reply); nil != err {
		// stays proposed so the next tick retries
		return err
	}

	err := d.apply(ctx, address, snapshot, func(m *channel.Manager) error {
		return m.AcceptProposal(reply.Accepted)
	})
	if nil != err {
		return err
	}
	if !reply.Accepted {
		return fault.ProposalRejected
	}
	d.log.Infof("channel open: %s  deposit: %s", url, snapshot.Deposit)
	return nil
}

func (d *HTTP) update(ctx context.Context, address identity.Address, url string, snapshot *channel.Manager) error {
	request := envelope.Wrap(d.self, UpdateRequest{
		Sequence:     snapshot.Sequence,
		MyBalance:    snapshot.MyBalance,
		TheirBalance: snapshot.TheirBalance,
		PendingSend:  snapshot.PendingSend,
	})
	var reply UpdateReply
	if err := postJSON(ctx, d.client, url+updatePath, request, &reply); nil != err {
		return err
	}

	if !reply.Accepted {
		return fault.ChannelRejected
	}
	return d.apply(ctx, address, snapshot, func(m *channel.Manager) error {
		if nil != reply.Acknowledged {
			if err := m.Acknowledge(reply.Acknowledged); nil != err {
				return err
			}
		}
		if nil != reply.Sent && reply.Sent.Sign() > 0 {
			if err := m.Receive(reply.Sent); nil != err {
				return fmt.Errorf("receive %s: %w", reply.Sent, err)
			}
		}
		return nil
	})
}
