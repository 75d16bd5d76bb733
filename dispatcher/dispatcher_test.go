// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/guacd/channel"
	"github.com/bitmark-inc/guacd/counterparty"
	"github.com/bitmark-inc/guacd/dispatcher"
	"github.com/bitmark-inc/guacd/envelope"
	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/fixtures"
	"github.com/bitmark-inc/guacd/identity"
	"github.com/bitmark-inc/guacd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type self struct{}

func (self) Address() identity.Address {
	return fixtures.Address(0x11)
}

// records the envelopes a fake counterparty receives
type peer struct {
	sync.Mutex
	accept   bool
	sent     int64
	proposes []envelope.Request[dispatcher.ProposalRequest]
	updates  []envelope.Request[dispatcher.UpdateRequest]
}

func (p *peer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/propose", func(w http.ResponseWriter, r *http.Request) {
		var request envelope.Request[dispatcher.ProposalRequest]
		if err := json.NewDecoder(r.Body).Decode(&request); nil != err {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.Lock()
		p.proposes = append(p.proposes, request)
		accept := p.accept
		p.Unlock()
		_ = json.NewEncoder(w).Encode(dispatcher.ProposalReply{Accepted: accept})
	})
	mux.HandleFunc("/update", func(w http.ResponseWriter, r *http.Request) {
		var request envelope.Request[dispatcher.UpdateRequest]
		if err := json.NewDecoder(r.Body).Decode(&request); nil != err {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.Lock()
		p.updates = append(p.updates, request)
		sent := p.sent
		p.Unlock()
		_ = json.NewEncoder(w).Encode(dispatcher.UpdateReply{
			Accepted:     true,
			Acknowledged: request.Data.PendingSend,
			Sent:         fixtures.Amount(sent),
		})
	})
	return mux
}

func (p *peer) received() ([]envelope.Request[dispatcher.ProposalRequest], []envelope.Request[dispatcher.UpdateRequest]) {
	p.Lock()
	defer p.Unlock()
	return p.proposes, p.updates
}

func setup(t *testing.T, url string) (*counterparty.PoolStore, *dispatcher.HTTP, identity.Address) {
	err := storage.InitialiseInMemory()
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	log := logger.New(fixtures.LogCategory)
	store := counterparty.New(log, storage.Pool.Counterparties, storage.Pool.Channels)

	address := fixtures.Address(0x42)
	err = store.InitData(context.Background(), counterparty.Counterparty{Address: address, URL: url}, channel.New())
	if nil != err {
		t.Fatalf("register error: %s", err)
	}

	d, err := dispatcher.New(log, store, self{}, dispatcher.Configuration{
		Deposit: "1000",
		Timeout: 2,
	})
	if nil != err {
		t.Fatalf("dispatcher error: %s", err)
	}
	return store, d, address
}

func state(t *testing.T, store counterparty.Store, address identity.Address) channel.Manager {
	h, err := store.GetChannel(context.Background(), address)
	if nil != err {
		t.Fatalf("get channel error: %s", err)
	}
	defer h.Release()
	return *h.Manager()
}

func TestNewRejectsBadDeposit(t *testing.T) {
	_, err := dispatcher.New(logger.New(fixtures.LogCategory), nil, self{}, dispatcher.Configuration{Deposit: "-5"})
	assert.Equal(t, fault.InvalidAmount, err, "wrong error")

	_, err = dispatcher.New(logger.New(fixtures.LogCategory), nil, self{}, dispatcher.Configuration{Deposit: "lots"})
	assert.Equal(t, fault.InvalidAmount, err, "wrong error")

	_, err = dispatcher.New(nil, nil, self{}, dispatcher.Configuration{})
	assert.Equal(t, fault.InvalidLoggerChannel, err, "wrong error")
}

func TestTickOpensChannel(t *testing.T) {
	p := &peer{accept: true}
	server := httptest.NewServer(p.handler())
	defer server.Close()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	err := d.Tick(context.Background(), address)
	assert.Nil(t, err, "tick error")

	m := state(t, store, address)
	assert.Equal(t, channel.StateOpen, m.State, "wrong state")
	assert.Equal(t, 0, m.MyBalance.Cmp(fixtures.Amount(1000)), "wrong balance")

	proposes, _ := p.received()
	assert.Equal(t, 1, len(proposes), "wrong proposal count")
	assert.Equal(t, fixtures.Address(0x11), proposes[0].Sender(), "envelope not stamped with own address")
	assert.Equal(t, 0, proposes[0].Data.Deposit.Cmp(fixtures.Amount(1000)), "wrong deposit")
}

func TestTickRejectedProposal(t *testing.T) {
	p := &peer{accept: false}
	server := httptest.NewServer(p.handler())
	defer server.Close()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	err := d.Tick(context.Background(), address)
	assert.Equal(t, fault.ProposalRejected, err, "wrong error")
	assert.True(t, fault.IsErrNetwork(err), "wrong class")

	m := state(t, store, address)
	assert.Equal(t, channel.StateNew, m.State, "wrong state")
}

func TestTickUpdatesOpenChannel(t *testing.T) {
	p := &peer{accept: true}
	server := httptest.NewServer(p.handler())
	defer server.Close()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	ctx := context.Background()
	err := d.Tick(ctx, address)
	assert.Nil(t, err, "open tick error")

	// pay 300 then let the peer send back 100
	h, err := store.GetChannel(ctx, address)
	assert.Nil(t, err, "get channel error")
	err = h.Manager().Pay(fixtures.Amount(300))
	assert.Nil(t, err, "pay error")
	err = h.Release()
	assert.Nil(t, err, "release error")

	p.Lock()
	p.sent = 100
	p.Unlock()

	err = d.Tick(ctx, address)
	assert.Nil(t, err, "update tick error")

	_, updates := p.received()
	assert.Equal(t, 1, len(updates), "wrong update count")
	assert.Equal(t, 0, updates[0].Data.PendingSend.Cmp(fixtures.Amount(300)), "wrong pending amount sent")
	assert.Equal(t, fixtures.Address(0x11), updates[0].FromAddr, "wrong sender")

	m := state(t, store, address)
	assert.Equal(t, 0, m.PendingSend.Sign(), "pending not acknowledged")
	assert.Equal(t, 0, m.Received.Cmp(fixtures.Amount(100)), "wrong received")
	assert.Equal(t, 0, m.MyBalance.Cmp(fixtures.Amount(800)), "wrong balance")
	assert.Equal(t, 0, m.TheirBalance.Cmp(fixtures.Amount(200)), "wrong their balance")
}

func TestTickNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	err := d.Tick(context.Background(), address)
	assert.True(t, fault.IsErrNetwork(err), "expected network error, got: %v", err)

	// proposal stays outstanding for the next tick
	m := state(t, store, address)
	assert.Equal(t, channel.StateProposed, m.State, "wrong state")
}

func TestTickUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, d, address := setup(t, url)
	defer storage.Finalise()

	err := d.Tick(context.Background(), address)
	assert.True(t, fault.IsErrNetwork(err), "expected network error, got: %v", err)
}

func TestTickUnknownCounterparty(t *testing.T) {
	_, d, _ := setup(t, "http://127.0.0.1:1")
	defer storage.Finalise()

	err := d.Tick(context.Background(), fixtures.Address(0x99))
	assert.Equal(t, fault.UnknownCounterparty, err, "wrong error")
}

func TestTickClosedChannelIsSkipped(t *testing.T) {
	p := &peer{accept: true}
	server := httptest.NewServer(p.handler())
	defer server.Close()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	ctx := context.Background()
	h, err := store.GetChannel(ctx, address)
	assert.Nil(t, err, "get channel error")
	err = h.Manager().Close()
	assert.Nil(t, err, "close error")
	err = h.Release()
	assert.Nil(t, err, "release error")

	err = d.Tick(ctx, address)
	assert.Nil(t, err, "tick error")
	proposes, updates := p.received()
	assert.Equal(t, 0, len(proposes)+len(updates), "closed channel contacted")
}

// move a registered channel straight to open
func open(t *testing.T, store counterparty.Store, address identity.Address, deposit int64) {
	h, err := store.GetChannel(context.Background(), address)
	if nil != err {
		t.Fatalf("get channel error: %s", err)
	}
	defer h.Release()
	if err := h.Manager().Propose(fixtures.Amount(deposit)); nil != err {
		t.Fatalf("propose error: %s", err)
	}
	if err := h.Manager().AcceptProposal(true); nil != err {
		t.Fatalf("accept error: %s", err)
	}
}

func TestTickReleasesChannelDuringRequest(t *testing.T) {
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-release
		_ = json.NewEncoder(w).Encode(dispatcher.UpdateReply{
			Accepted:     true,
			Acknowledged: fixtures.Amount(0),
			Sent:         fixtures.Amount(100),
		})
	}))
	defer server.Close()
	defer unblock()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	ctx := context.Background()
	open(t, store, address, 1000)

	// a payment to give the counterparty something to send back
	h, err := store.GetChannel(ctx, address)
	assert.Nil(t, err, "get channel error")
	_ = h.Manager().Pay(fixtures.Amount(200))
	_ = h.Release()

	done := make(chan error, 1)
	go func() {
		done <- d.Tick(ctx, address)
	}()

	select {
	case <-arrived:
	case <-time.After(2 * time.Second):
		t.Fatal("update request not sent")
	}

	// a payment goes through while the request is outstanding
	timeout, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	h, err = store.GetChannel(timeout, address)
	if nil != err {
		t.Fatalf("channel held during request: %s", err)
	}
	err = h.Manager().Pay(fixtures.Amount(300))
	assert.Nil(t, err, "pay error")
	err = h.Release()
	assert.Nil(t, err, "release error")

	unblock()
	select {
	case err = <-done:
		assert.Nil(t, err, "tick error")
	case <-time.After(2 * time.Second):
		t.Fatal("tick did not finish")
	}

	// the reply described an older channel so it is not applied
	m := state(t, store, address)
	assert.Equal(t, 0, m.MyBalance.Cmp(fixtures.Amount(500)), "wrong balance")
	assert.Equal(t, 0, m.PendingSend.Cmp(fixtures.Amount(500)), "payment lost")
	assert.Equal(t, 0, m.Received.Sign(), "stale reply applied")

	// the next tick applies a fresh reply
	err = d.Tick(ctx, address)
	assert.Nil(t, err, "second tick error")

	m = state(t, store, address)
	assert.Equal(t, 0, m.Received.Cmp(fixtures.Amount(100)), "reply not applied")
	assert.Equal(t, 0, m.MyBalance.Cmp(fixtures.Amount(600)), "wrong balance after receive")
}

func TestTickInvalidReplyLeavesChannelUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(dispatcher.UpdateReply{
			Accepted:     true,
			Acknowledged: fixtures.Amount(300),
			Sent:         fixtures.Amount(5000),
		})
	}))
	defer server.Close()

	store, d, address := setup(t, server.URL)
	defer storage.Finalise()

	ctx := context.Background()
	open(t, store, address, 1000)

	h, err := store.GetChannel(ctx, address)
	assert.Nil(t, err, "get channel error")
	_ = h.Manager().Pay(fixtures.Amount(300))
	_ = h.Release()

	err = d.Tick(ctx, address)
	assert.True(t, fault.IsErrInvalid(err), "expected invalid reply, got: %v", err)

	m := state(t, store, address)
	assert.Equal(t, 0, m.PendingSend.Cmp(fixtures.Amount(300)), "acknowledgement applied from rejected reply")
	assert.Equal(t, 0, m.MyBalance.Cmp(fixtures.Amount(700)), "wrong balance")
	assert.Equal(t, 0, m.Received.Sign(), "wrong received")
}
