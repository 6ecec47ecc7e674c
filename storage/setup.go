// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100

	// DefaultSnapshots - number of recent versions kept readable
	DefaultSnapshots = 20
)

// Store - an open database with its write lock and version history
type Store struct {
	sync.Mutex // held from Begin until Commit or Abort

	log      *logger.L
	db       *leveldb.DB
	batch    *leveldb.Batch
	cache    Cache
	versions *ring
	snapshot func() (*leveldb.Snapshot, error)
}

// Open - open or create the database files at the given path
func Open(database string, snapshots int, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, snapshots, readOnly)
}

// OpenStorage - open a database on an arbitrary LevelDB storage
func OpenStorage(stor ldb_storage.Storage, snapshots int) (*Store, error) {
	db, err := leveldb.Open(stor, nil)
	if nil != err {
		return nil, err
	}
	return setup(db, snapshots, false)
}

func setup(db *leveldb.DB, snapshots int, readOnly bool) (*Store, error) {

	log := logger.New("storage")

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	if snapshots < 1 {
		snapshots = DefaultSnapshots
	}

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version {
		if readOnly {
			return nil, fault.ErrNotInitialised
		}

		// database was empty so tag as current version
		// and record the empty store as height zero
		batch := new(leveldb.Batch)
		batch.Put(versionKey, encodeVersion(currentDBVersion))
		initial := genesisVersion()
		batch.Put(Pool.Versions.prefixKey(encodeN(initial.Height)), initial.Digest[:])
		if err := db.Write(batch, nil); nil != err {
			return nil, err
		}
		log.Info("initialised empty database")
	}

	latest, err := lastVersion(db)
	if nil != err {
		log.Criticalf("read latest version error: %s", err)
		return nil, err
	}

	snapshot, err := db.GetSnapshot()
	if nil != err {
		return nil, err
	}

	s := &Store{
		log:      log,
		db:       db,
		batch:    new(leveldb.Batch),
		cache:    newCache(),
		versions: newRing(snapshots),
		snapshot: db.GetSnapshot,
	}
	s.versions.push(latest, snapshot)

	log.Infof("opened at height: %d  digest: %s", latest.Height, latest.Digest)

	ok = true // prevent db close
	return s, nil
}

// Close - release all snapshots and close the database
//
// waits for any transaction in progress to finish
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return
	}
	s.versions.clear()
	if err := s.db.Close(); nil != err {
		s.log.Errorf("close error: %s", err)
	}
	s.db = nil
	s.log.Info("closed")
}

// log the underlying cause and hide it behind the generic backend error
func (s *Store) backendError(operation string, err error) error {
	s.log.Criticalf("%s: backend error: %s", operation, err)
	return fault.ErrBackendUnavailable
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func encodeVersion(version int) []byte {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return currentVersion
}

// the highest height in the versions pool
func lastVersion(db *leveldb.DB) (Version, error) {
	iter := db.NewIterator(Pool.Versions.prefixRange(nil), nil)
	defer iter.Release()

	if !iter.Last() {
		if err := iter.Error(); nil != err {
			return Version{}, err
		}
		return Version{}, fault.ErrVersionNotFound
	}

	height, err := decodeN(iter.Key()[1:])
	if nil != err {
		return Version{}, err
	}
	v := Version{
		Height: height,
	}
	if err := digest.FromBytes(&v.Digest, iter.Value()); nil != err {
		return Version{}, fault.ErrTruncatedRecord
	}
	return v, iter.Error()
}
