// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/guacd/fault"
)

// Transaction - writes to one or more pools applied by a single Commit
//
// nothing is written until Commit, and then either every write is
// applied or none is
type Transaction interface {
	Put(pool Handle, key []byte, value []byte)
	Commit() error
}

type transaction struct {
	sync.Mutex
	batch     leveldb.Batch
	err       error
	committed bool
}

// NewTransaction - start an empty transaction
func NewTransaction() Transaction {
	return &transaction{}
}

// only pools of this database can take part
func (t *transaction) pool(pool Handle) *PoolHandle {
	p, ok := pool.(*PoolHandle)
	if !ok || nil == p {
		t.err = fault.InvalidPool
		return nil
	}
	return p
}

// Put - add a write to the transaction
func (t *transaction) Put(pool Handle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	if p := t.pool(pool); nil != p {
		t.batch.Put(p.prefixKey(key), value)
	}
}

// Commit - write everything, a transaction can only be committed once
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if t.committed {
		return fault.AlreadyCommitted
	}
	t.committed = true

	if nil != t.err {
		return t.err
	}

	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return fault.StoreUnavailable
	}
	return poolData.database.Write(&t.batch, nil)
}
