// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/fault"
)

// Reader - read access shared by snapshots and transactions
type Reader interface {
	Get(*PoolHandle, []byte) ([]byte, error)
	GetN(*PoolHandle, []byte) (uint64, bool, error)
	Has(*PoolHandle, []byte) (bool, error)
	Map(*PoolHandle, []byte, func([]byte, []byte) error) error
}

// Transaction - all-or-nothing set of writes
//
// reads see the transaction's own uncommitted writes
type Transaction interface {
	Reader
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Commit() (Version, error)
	Abort()
}

type transaction struct {
	store    *Store
	finished bool
}

// Begin - start a transaction, blocking until any other has finished
func (s *Store) Begin() (Transaction, error) {
	s.Lock()
	if nil == s.db {
		s.Unlock()
		return nil, fault.ErrNotInitialised
	}
	s.batch.Reset()
	s.cache.Clear()
	return &transaction{
		store: s,
	}, nil
}

func (t *transaction) mustBeActive(operation string) {
	if t.finished {
		logger.Panicf("storage: %s on finished transaction", operation)
	}
}

// Put - store a key/value bytes pair
func (t *transaction) Put(pool *PoolHandle, key []byte, value []byte) {
	t.mustBeActive("put")
	if nil == value {
		value = []byte{}
	}
	prefixedKey := pool.prefixKey(key)
	t.store.cache.Set(dbPut, string(prefixedKey), value)
	t.store.batch.Put(prefixedKey, value)
}

// PutN - store a big endian uint64
func (t *transaction) PutN(pool *PoolHandle, key []byte, value uint64) {
	t.Put(pool, key, encodeN(value))
}

// Delete - remove a key
func (t *transaction) Delete(pool *PoolHandle, key []byte) {
	t.mustBeActive("delete")
	prefixedKey := pool.prefixKey(key)
	t.store.cache.Set(dbDelete, string(prefixedKey), nil)
	t.store.batch.Delete(prefixedKey)
}

// Get - read a value, nil if not present
func (t *transaction) Get(pool *PoolHandle, key []byte) ([]byte, error) {
	t.mustBeActive("get")
	prefixedKey := pool.prefixKey(key)
	value, deleted, found := t.store.cache.Get(string(prefixedKey))
	if deleted {
		return nil, nil
	}
	if found {
		return value, nil
	}

	value, err := t.store.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, t.store.backendError("get", err)
	}
	return value, nil
}

// GetN - read a big endian uint64, false if not present
func (t *transaction) GetN(pool *PoolHandle, key []byte) (uint64, bool, error) {
	buffer, err := t.Get(pool, key)
	if nil != err || nil == buffer {
		return 0, false, err
	}
	n, err := decodeN(buffer)
	if nil != err {
		t.store.log.Criticalf("getN truncated record for: %x: %x", key, buffer)
		return 0, false, err
	}
	return n, true, nil
}

// Has - check if a key exists
func (t *transaction) Has(pool *PoolHandle, key []byte) (bool, error) {
	value, err := t.Get(pool, key)
	return nil != value, err
}

// Map - call f in key order on every element whose key starts with prefix
//
// merges the committed elements with this transaction's writes
func (t *transaction) Map(pool *PoolHandle, prefix []byte, f func(key []byte, value []byte) error) error {
	t.mustBeActive("map")

	merged := make(map[string][]byte)

	iter := t.store.db.NewIterator(pool.prefixRange(prefix), nil)
	for iter.Next() {
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		merged[string(iter.Key())] = value
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return t.store.backendError("map", err)
	}

	for key, value := range t.store.cache.Changes(string(pool.prefixKey(prefix))) {
		if nil == value {
			delete(merged, key)
		} else {
			merged[key] = value
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := f([]byte(key[1:]), merged[key]); nil != err {
			return err
		}
	}
	return nil
}

// Commit - write the batch and record the new version
func (t *transaction) Commit() (Version, error) {
	if t.finished {
		return Version{}, fault.ErrTransactionFinished
	}
	defer t.finish()

	s := t.store

	next := s.versions.latest().next(s.batch.Dump())
	s.batch.Put(Pool.Versions.prefixKey(encodeN(next.Height)), next.Digest[:])

	if err := s.db.Write(s.batch, nil); nil != err {
		return Version{}, s.backendError("commit", err)
	}

	// the batch is durable so the version must advance even if
	// it cannot be viewed
	snapshot, err := s.snapshot()
	if nil != err {
		s.log.Errorf("height: %d written but snapshot failed: %s", next.Height, err)
		snapshot = nil
	}
	s.versions.push(next, snapshot)

	s.log.Debugf("committed height: %d  digest: %s", next.Height, next.Digest)
	return next, nil
}

// Abort - discard all writes
func (t *transaction) Abort() {
	if t.finished {
		return
	}
	t.finish()
}

func (t *transaction) finish() {
	t.store.batch.Reset()
	t.store.cache.Clear()
	t.finished = true
	t.store.Unlock()
}
