// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pet

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/storage"
)

// Store - primary map of pet id to pet record with a total count
type Store struct {
	log *logger.L
}

// Changes - the only fields that may change after creation
type Changes struct {
	Owner *account.Account
	Price *uint64
}

// NewStore - create the entity store
func NewStore() *Store {
	return &Store{
		log: logger.New("pet"),
	}
}

// Insert - add a new pet and increment the count
func (s *Store) Insert(trx storage.Transaction, p *Pet) error {
	found, err := trx.Has(storage.Pool.Pets, p.Id[:])
	if nil != err {
		return err
	}
	if found {
		return fault.ErrPetAlreadyExists
	}

	count, err := s.Count(trx)
	if nil != err {
		return err
	}
	if math.MaxUint64 == count {
		return fault.ErrCounterOverflow
	}

	trx.Put(storage.Pool.Pets, p.Id[:], p.Pack())
	trx.PutN(storage.Pool.PetCount, nil, count+1)

	s.log.Infof("insert: %s  gender: %s  owner: %s", p.Id, p.Gender, p.Owner)
	return nil
}

// Get - fetch a pet, false if it does not exist
func (s *Store) Get(reader storage.Reader, id digest.Digest) (*Pet, bool, error) {
	record, err := reader.Get(storage.Pool.Pets, id[:])
	if nil != err {
		return nil, false, err
	}
	if nil == record {
		return nil, false, nil
	}

	p, err := Unpack(id, record)
	if nil != err {
		s.log.Criticalf("get: %s  corrupt record: %x  error: %s", id, record, err)
		return nil, false, err
	}
	return p, true, nil
}

// Update - apply a change to an existing pet's owner or price
func (s *Store) Update(trx storage.Transaction, id digest.Digest, mutate func(*Changes)) error {
	p, found, err := s.Get(trx, id)
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrPetNotFound
	}

	changes := Changes{
		Owner: p.Owner,
		Price: p.Price,
	}
	mutate(&changes)

	if nil == changes.Owner {
		return fault.ErrMissingParameters
	}
	p.Owner = changes.Owner
	p.Price = changes.Price

	trx.Put(storage.Pool.Pets, id[:], p.Pack())

	s.log.Debugf("update: %s  owner: %s  for sale: %t", id, p.Owner, p.ForSale())
	return nil
}

// Count - total number of pets ever created
func (s *Store) Count(reader storage.Reader) (uint64, error) {
	count, _, err := reader.GetN(storage.Pool.PetCount, nil)
	return count, err
}
