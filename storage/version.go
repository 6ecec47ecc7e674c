// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
)

// Version - identifies one committed state of the store
type Version struct {
	Height uint64        `json:"height"`
	Digest digest.Digest `json:"digest"`
}

// the empty store
func genesisVersion() Version {
	return Version{
		Height: 0,
		Digest: digest.NewDigest([]byte{}),
	}
}

// the version following v whose batch dump is given
func (v Version) next(dump []byte) Version {
	record := make([]byte, 0, digest.Length+len(dump))
	record = append(record, v.Digest[:]...)
	record = append(record, dump...)
	return Version{
		Height: v.Height + 1,
		Digest: digest.NewDigest(record),
	}
}

// a snapshot is released once it has left the ring and no reader holds it
type ringEntry struct {
	version  Version
	snapshot *leveldb.Snapshot
	refs     int
	evicted  bool
}

// bounded list of recent versions, oldest first
type ring struct {
	sync.Mutex
	size    int
	entries []*ringEntry
}

func newRing(size int) *ring {
	return &ring{
		size:    size,
		entries: make([]*ringEntry, 0, size),
	}
}

func (r *ring) push(v Version, snapshot *leveldb.Snapshot) {
	r.Lock()
	defer r.Unlock()

	if len(r.entries) >= r.size {
		oldest := r.entries[0]
		r.entries = r.entries[1:]
		oldest.evicted = true
		if 0 == oldest.refs && nil != oldest.snapshot {
			oldest.snapshot.Release()
		}
	}
	r.entries = append(r.entries, &ringEntry{
		version:  v,
		snapshot: snapshot,
	})
}

func (r *ring) latest() Version {
	r.Lock()
	defer r.Unlock()

	if 0 == len(r.entries) {
		return Version{}
	}
	return r.entries[len(r.entries)-1].version
}

// nil selects the latest version
func (r *ring) acquire(at *digest.Digest) (*ringEntry, error) {
	r.Lock()
	defer r.Unlock()

	n := len(r.entries)
	if 0 == n {
		return nil, fault.ErrNotInitialised
	}

	for i := n - 1; i >= 0; i -= 1 {
		e := r.entries[i]
		if nil == at || *at == e.version.Digest {
			if nil == e.snapshot {
				return nil, fault.ErrVersionNotFound
			}
			e.refs += 1
			return e, nil
		}
	}
	return nil, fault.ErrVersionNotFound
}

func (r *ring) release(e *ringEntry) {
	r.Lock()
	defer r.Unlock()

	e.refs -= 1
	if e.evicted && 0 == e.refs && nil != e.snapshot {
		e.snapshot.Release()
	}
}

// list of retained versions, oldest first
func (r *ring) list() []Version {
	r.Lock()
	defer r.Unlock()

	versions := make([]Version, len(r.entries))
	for i, e := range r.entries {
		versions[i] = e.version
	}
	return versions
}

func (r *ring) clear() {
	r.Lock()
	defer r.Unlock()

	for _, e := range r.entries {
		e.evicted = true
		if 0 == e.refs && nil != e.snapshot {
			e.snapshot.Release()
		}
	}
	r.entries = r.entries[:0]
}

// Latest - the most recently committed version
func (s *Store) Latest() Version {
	return s.versions.latest()
}

// Versions - the versions that can currently be viewed, oldest first
func (s *Store) Versions() []Version {
	return s.versions.list()
}

// Snapshot - read access to one committed version
//
// Release must be called when finished
type Snapshot struct {
	store    *Store
	ring     *ring
	entry    *ringEntry
	released bool
}

// View - open a snapshot of the version with digest at, or the latest if nil
func (s *Store) View(at *digest.Digest) (*Snapshot, error) {
	e, err := s.versions.acquire(at)
	if nil != err {
		return nil, err
	}
	return &Snapshot{
		store: s,
		ring:  s.versions,
		entry: e,
	}, nil
}

// Version - the version this snapshot reads
func (v *Snapshot) Version() Version {
	return v.entry.version
}

// Release - give up the snapshot
func (v *Snapshot) Release() {
	if v.released {
		return
	}
	v.released = true
	v.ring.release(v.entry)
}

// Get - read a value, nil if not present
func (v *Snapshot) Get(pool *PoolHandle, key []byte) ([]byte, error) {
	value, err := v.entry.snapshot.Get(pool.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, v.store.backendError("snapshot get", err)
	}
	return value, nil
}

// GetN - read a big endian uint64, false if not present
func (v *Snapshot) GetN(pool *PoolHandle, key []byte) (uint64, bool, error) {
	buffer, err := v.Get(pool, key)
	if nil != err || nil == buffer {
		return 0, false, err
	}
	n, err := decodeN(buffer)
	if nil != err {
		v.store.log.Criticalf("snapshot getN truncated record for: %x: %x", key, buffer)
		return 0, false, err
	}
	return n, true, nil
}

// Has - check if a key exists
func (v *Snapshot) Has(pool *PoolHandle, key []byte) (bool, error) {
	found, err := v.entry.snapshot.Has(pool.prefixKey(key), nil)
	if nil != err {
		return false, v.store.backendError("snapshot has", err)
	}
	return found, nil
}

// Map - call f in key order on every element whose key starts with prefix
//
// keys are passed without the pool prefix
func (v *Snapshot) Map(pool *PoolHandle, prefix []byte, f func(key []byte, value []byte) error) error {
	iter := v.entry.snapshot.NewIterator(pool.prefixRange(prefix), nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil != err {
		return err
	}
	if err := iter.Error(); nil != err {
		return v.store.backendError("snapshot map", err)
	}
	return nil
}
