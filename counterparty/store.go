// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counterparty

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/guacd/channel"
	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
	"github.com/bitmark-inc/guacd/storage"
)

// PoolStore - counterparty store on two storage pools
type PoolStore struct {
	log            *logger.L
	counterparties storage.Handle
	channels       storage.Handle

	sync.Mutex
	locks map[identity.Address]chan struct{}
}

// New - create a store on the counterparty and channel pools
func New(log *logger.L, counterparties storage.Handle, channels storage.Handle) *PoolStore {
	return &PoolStore{
		log:            log,
		counterparties: counterparties,
		channels:       channels,
		locks:          make(map[identity.Address]chan struct{}),
	}
}

// per address lock, a buffered channel so waiting can be cancelled
func (s *PoolStore) lockFor(address identity.Address) chan struct{} {
	s.Lock()
	defer s.Unlock()

	l, ok := s.locks[address]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[address] = l
	}
	return l
}

func (s *PoolStore) acquire(ctx context.Context, address identity.Address) (chan struct{}, error) {
	l := s.lockFor(address)
	select {
	case l <- struct{}{}:
		return l, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Get - the registration data for an address
func (s *PoolStore) Get(ctx context.Context, address identity.Address) (Counterparty, error) {
	buffer, err := s.counterparties.Get(address[:])
	if nil != err {
		return Counterparty{}, fault.StoreUnavailable
	}
	if nil == buffer {
		return Counterparty{}, fault.UnknownCounterparty
	}

	var c Counterparty
	if err := json.Unmarshal(buffer, &c); nil != err {
		return Counterparty{}, err
	}
	return c, nil
}

// GetChannel - wait for exclusive access to an address's channel
func (s *PoolStore) GetChannel(ctx context.Context, address identity.Address) (Handle, error) {
	l, err := s.acquire(ctx, address)
	if nil != err {
		return nil, err
	}

	buffer, err := s.channels.Get(address[:])
	if nil != err {
		<-l
		return nil, fault.StoreUnavailable
	}
	if nil == buffer {
		<-l
		return nil, fault.UnknownCounterparty
	}

	m, err := channel.Unpack(buffer)
	if nil != err {
		<-l
		s.log.Errorf("channel: %s  corrupt record: %s", address, err)
		return nil, err
	}

	return &handle{
		address: address,
		manager: m,
		pool:    s.channels,
		lock:    l,
	}, nil
}

// Counterparties - addresses of every registered counterparty
func (s *PoolStore) Counterparties(ctx context.Context) ([]identity.Address, error) {
	elements, err := s.counterparties.Elements()
	if nil != err {
		return nil, fault.StoreUnavailable
	}

	addresses := make([]identity.Address, 0, len(elements))
	for _, e := range elements {
		if identity.AddressLength != len(e.Key) {
			s.log.Warnf("skip invalid counterparty key: %x", e.Key)
			continue
		}
		var a identity.Address
		copy(a[:], e.Key)
		addresses = append(addresses, a)
	}
	return addresses, nil
}

// InitData - register a counterparty with an initial channel state
//
// an existing registration is replaced; both records are written
// together or not at all
func (s *PoolStore) InitData(ctx context.Context, c Counterparty, m *channel.Manager) error {
	if err := c.Validate(); nil != err {
		return err
	}

	data, err := json.Marshal(c)
	if nil != err {
		return err
	}
	packed, err := m.Pack()
	if nil != err {
		return err
	}

	l, err := s.acquire(ctx, c.Address)
	if nil != err {
		return err
	}
	defer func() { <-l }()

	existing, err := s.counterparties.Has(c.Address[:])
	if nil != err {
		return fault.StoreUnavailable
	}

	tx := storage.NewTransaction()
	tx.Put(s.channels, c.Address[:], packed)
	tx.Put(s.counterparties, c.Address[:], data)
	if err := tx.Commit(); nil != err {
		s.log.Errorf("register: %s  commit error: %s", c.Address, err)
		if fault.IsErrInvalid(err) {
			return err
		}
		return fault.StoreUnavailable
	}

	if existing {
		s.log.Warnf("re-registered: %s  url: %s  channel reset to: %s", c.Address, c.URL, m.State)
	} else {
		s.log.Infof("registered: %s  url: %s  state: %s", c.Address, c.URL, m.State)
	}
	return nil
}

type handle struct {
	sync.Mutex
	address  identity.Address
	manager  *channel.Manager
	pool     storage.Handle
	lock     chan struct{}
	released bool
}

func (h *handle) Manager() *channel.Manager {
	return h.manager
}

func (h *handle) Release() error {
	h.Lock()
	defer h.Unlock()

	if h.released {
		return nil
	}
	h.released = true
	defer func() { <-h.lock }()

	packed, err := h.manager.Pack()
	if nil != err {
		return err
	}
	if err := h.pool.Put(h.address[:], packed); nil != err {
		return fault.StoreUnavailable
	}
	return nil
}
