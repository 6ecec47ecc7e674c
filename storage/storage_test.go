// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/storage"
)

func TestEmptyStore(t *testing.T) {
	s := setup(t, 0)
	defer s.Close()

	latest := s.Latest()
	assert.Equal(t, uint64(0), latest.Height, "height")
	assert.Equal(t, digest.NewDigest([]byte{}), latest.Digest, "digest")

	view, err := s.View(nil)
	require.NoError(t, err, "view")
	defer view.Release()

	value, err := view.Get(storage.Pool.TestData, []byte("missing"))
	assert.NoError(t, err, "get")
	assert.Nil(t, value, "missing value")

	_, found, err := view.GetN(storage.Pool.PetCount, nil)
	assert.NoError(t, err, "getN")
	assert.False(t, found, "count found")
}

func TestReadYourWrites(t *testing.T) {
	s := setup(t, 0)
	defer s.Close()

	put(t, s, "key-one", "data-one")

	trx, err := s.Begin()
	require.NoError(t, err, "begin")

	trx.Put(storage.Pool.TestData, []byte("key-two"), []byte("data-two"))
	trx.PutN(storage.Pool.PetCount, nil, 42)
	trx.Delete(storage.Pool.TestData, []byte("key-one"))

	value, err := trx.Get(storage.Pool.TestData, []byte("key-two"))
	assert.NoError(t, err, "get put")
	assert.Equal(t, []byte("data-two"), value, "uncommitted value")

	n, found, err := trx.GetN(storage.Pool.PetCount, nil)
	assert.NoError(t, err, "getN")
	assert.True(t, found, "count found")
	assert.Equal(t, uint64(42), n, "count")

	found, err = trx.Has(storage.Pool.TestData, []byte("key-one"))
	assert.NoError(t, err, "has deleted")
	assert.False(t, found, "deleted key is still visible")

	// the latest snapshot does not see uncommitted writes
	view, err := s.View(nil)
	require.NoError(t, err, "view")
	found, err = view.Has(storage.Pool.TestData, []byte("key-one"))
	assert.NoError(t, err, "snapshot has")
	assert.True(t, found, "committed key missing from snapshot")
	view.Release()

	_, err = trx.Commit()
	require.NoError(t, err, "commit")

	view, err = s.View(nil)
	require.NoError(t, err, "view")
	defer view.Release()

	found, err = view.Has(storage.Pool.TestData, []byte("key-one"))
	assert.NoError(t, err, "has")
	assert.False(t, found, "deleted key survived commit")

	value, err = view.Get(storage.Pool.TestData, []byte("key-two"))
	assert.NoError(t, err, "get")
	assert.Equal(t, []byte("data-two"), value, "committed value")
}

func TestAbort(t *testing.T) {
	s := setup(t, 0)
	defer s.Close()

	before := s.Latest()

	trx, err := s.Begin()
	require.NoError(t, err, "begin")
	trx.Put(storage.Pool.TestData, []byte("key"), []byte("value"))
	trx.Abort()

	assert.Equal(t, before, s.Latest(), "abort changed version")

	// a second transaction must not see the discarded write
	trx, err = s.Begin()
	require.NoError(t, err, "begin")
	value, err := trx.Get(storage.Pool.TestData, []byte("key"))
	assert.NoError(t, err, "get")
	assert.Nil(t, value, "aborted write visible")
	trx.Abort()

	_, err = trx.Commit()
	assert.Equal(t, fault.ErrTransactionFinished, err, "commit after abort")
}

func TestVersionChain(t *testing.T) {
	s := setup(t, 3)
	defer s.Close()

	v0 := s.Latest()
	v1 := put(t, s, "key", "one")
	v2 := put(t, s, "key", "two")

	assert.Equal(t, uint64(1), v1.Height, "v1 height")
	assert.Equal(t, uint64(2), v2.Height, "v2 height")
	assert.NotEqual(t, v0.Digest, v1.Digest, "v0 == v1")
	assert.NotEqual(t, v1.Digest, v2.Digest, "v1 == v2")
	assert.Equal(t, v2, s.Latest(), "latest")

	// historical read
	view, err := s.View(&v1.Digest)
	require.NoError(t, err, "view v1")
	value, err := view.Get(storage.Pool.TestData, []byte("key"))
	assert.NoError(t, err, "get")
	assert.Equal(t, []byte("one"), value, "value at v1")
	assert.Equal(t, v1, view.Version(), "view version")

	// evict v0 and v1 while the v1 view is still held
	put(t, s, "key", "three")
	put(t, s, "key", "four")

	_, err = s.View(&v0.Digest)
	assert.Equal(t, fault.ErrVersionNotFound, err, "evicted v0")
	_, err = s.View(&v1.Digest)
	assert.Equal(t, fault.ErrVersionNotFound, err, "evicted v1")

	value, err = view.Get(storage.Pool.TestData, []byte("key"))
	assert.NoError(t, err, "get from held snapshot")
	assert.Equal(t, []byte("one"), value, "held snapshot value")
	view.Release()

	assert.Equal(t, 3, len(s.Versions()), "retained versions")

	unknown := digest.NewDigest([]byte("unknown"))
	_, err = s.View(&unknown)
	assert.Equal(t, fault.ErrVersionNotFound, err, "unknown version")
}

func TestCommitWithoutSnapshot(t *testing.T) {
	s := setup(t, 3)
	defer s.Close()

	v1 := put(t, s, "key", "one")

	restore := storage.FailSnapshots(s, errors.New("snapshot failed"))
	v2 := put(t, s, "key", "two")
	restore()

	assert.Equal(t, uint64(2), v2.Height, "v2 height")
	assert.Equal(t, v2, s.Latest(), "latest")

	_, err := s.View(nil)
	assert.Equal(t, fault.ErrVersionNotFound, err, "latest without snapshot")
	_, err = s.View(&v2.Digest)
	assert.Equal(t, fault.ErrVersionNotFound, err, "v2 without snapshot")

	view, err := s.View(&v1.Digest)
	require.NoError(t, err, "view v1")
	view.Release()

	// the next commit chains from v2 and is viewable again
	v3 := put(t, s, "key", "three")
	assert.Equal(t, uint64(3), v3.Height, "v3 height")
	view, err = s.View(nil)
	require.NoError(t, err, "view latest")
	value, err := view.Get(storage.Pool.TestData, []byte("key"))
	assert.NoError(t, err, "get")
	assert.Equal(t, []byte("three"), value, "value at v3")
	view.Release()

	// evicting the entry without a snapshot must not release it
	put(t, s, "key", "four")
	put(t, s, "key", "five")
	assert.Equal(t, 3, len(s.Versions()), "retained versions")
}

func TestMap(t *testing.T) {
	s := setup(t, 0)
	defer s.Close()

	put(t, s, "a-1", "one")
	put(t, s, "a-3", "three")
	put(t, s, "b-1", "other")

	trx, err := s.Begin()
	require.NoError(t, err, "begin")
	defer trx.Abort()

	trx.Put(storage.Pool.TestData, []byte("a-2"), []byte("two"))
	trx.Delete(storage.Pool.TestData, []byte("a-3"))

	keys := []string{}
	values := []string{}
	err = trx.Map(storage.Pool.TestData, []byte("a-"), func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		values = append(values, string(value))
		return nil
	})
	assert.NoError(t, err, "map")
	assert.Equal(t, []string{"a-1", "a-2"}, keys, "merged keys")
	assert.Equal(t, []string{"one", "two"}, values, "merged values")

	view, err := s.View(nil)
	require.NoError(t, err, "view")
	defer view.Release()

	keys = keys[:0]
	err = view.Map(storage.Pool.TestData, nil, func(key []byte, value []byte) error {
		keys = append(keys, string(key))
		return nil
	})
	assert.NoError(t, err, "snapshot map")
	assert.Equal(t, []string{"a-1", "a-3", "b-1"}, keys, "snapshot keys")

	stop := errors.New("stop")
	count := 0
	err = view.Map(storage.Pool.TestData, nil, func(key []byte, value []byte) error {
		count += 1
		return stop
	})
	assert.Equal(t, stop, err, "map error")
	assert.Equal(t, 1, count, "map continued after error")
}

func TestTruncatedCount(t *testing.T) {
	s := setup(t, 0)
	defer s.Close()

	trx, err := s.Begin()
	require.NoError(t, err, "begin")
	trx.Put(storage.Pool.PetCount, nil, []byte{0x01, 0x02})
	_, _, err = trx.GetN(storage.Pool.PetCount, nil)
	assert.Equal(t, fault.ErrTruncatedRecord, err, "truncated")
	trx.Abort()
}

func TestClosed(t *testing.T) {
	s := setup(t, 0)
	s.Close()

	_, err := s.Begin()
	assert.Equal(t, fault.ErrNotInitialised, err, "begin after close")

	_, err = s.View(nil)
	assert.Equal(t, fault.ErrNotInitialised, err, "view after close")
}
