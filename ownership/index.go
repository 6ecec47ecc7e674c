// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/storage"
)

// from storage/doc.go:
//
// Ownership:
//
//   N ⧺ owner            - next position to use for appending to owned items
//                          data: position
//   L ⧺ owner ⧺ position - list of owned items
//                          data: pet id
//   D ⧺ owner ⧺ id       - position in list of owned items, for delete after transfer
//                          data: position
//   K ⧺ owner            - number of items currently owned
//                          data: count

// DefaultMaximum - pets one account may own unless configured otherwise
const DefaultMaximum = 9999

// Index - per owner bounded list of pet identifiers
//
// positions are never reused so the list keeps insertion order
// after removals
type Index struct {
	log     *logger.L
	maximum uint64
}

// New - create an index allowing up to maximum items per owner
func New(maximum uint64) *Index {
	if 0 == maximum {
		maximum = DefaultMaximum
	}
	return &Index{
		log:     logger.New("ownership"),
		maximum: maximum,
	}
}

// Maximum - capacity of each owner's list
func (ix *Index) Maximum() uint64 {
	return ix.maximum
}

// Add - append id to the end of owner's list
func (ix *Index) Add(trx storage.Transaction, owner *account.Account, id digest.Digest) error {
	ownerKey := owner.Bytes()

	length, _, err := trx.GetN(storage.Pool.OwnerCount, ownerKey)
	if nil != err {
		return err
	}
	if length >= ix.maximum {
		return fault.ErrCapacityExceeded
	}

	dKey := append(owner.Bytes(), id[:]...)
	found, err := trx.Has(storage.Pool.OwnerPosition, dKey)
	if nil != err {
		return err
	}
	if found {
		ix.log.Criticalf("add: owner: %s already holds: %s", owner, id)
		return fault.ErrPetAlreadyExists
	}

	position, _, err := trx.GetN(storage.Pool.OwnerNextCount, ownerKey)
	if nil != err {
		return err
	}
	if math.MaxUint64 == position {
		return fault.ErrCounterOverflow
	}

	positionBytes := encodePosition(position)
	oKey := append(owner.Bytes(), positionBytes...)

	trx.Put(storage.Pool.OwnerList, oKey, id[:])
	trx.Put(storage.Pool.OwnerPosition, dKey, positionBytes)
	trx.PutN(storage.Pool.OwnerNextCount, ownerKey, position+1)
	trx.PutN(storage.Pool.OwnerCount, ownerKey, length+1)

	ix.log.Debugf("add: owner: %s  id: %s  position: %d", owner, id, position)
	return nil
}

// Remove - delete id from owner's list
func (ix *Index) Remove(trx storage.Transaction, owner *account.Account, id digest.Digest) error {
	ownerKey := owner.Bytes()

	dKey := append(owner.Bytes(), id[:]...)
	positionBytes, err := trx.Get(storage.Pool.OwnerPosition, dKey)
	if nil != err {
		return err
	}
	if nil == positionBytes {
		return fault.ErrNotOwnedItem
	}

	length, _, err := trx.GetN(storage.Pool.OwnerCount, ownerKey)
	if nil != err {
		return err
	}
	if 0 == length {
		ix.log.Criticalf("remove: owner: %s has position for: %s but zero count", owner, id)
		return fault.ErrTruncatedRecord
	}

	oKey := append(owner.Bytes(), positionBytes...)
	trx.Delete(storage.Pool.OwnerList, oKey)
	trx.Delete(storage.Pool.OwnerPosition, dKey)
	if 1 == length {
		trx.Delete(storage.Pool.OwnerCount, ownerKey)
	} else {
		trx.PutN(storage.Pool.OwnerCount, ownerKey, length-1)
	}

	ix.log.Debugf("remove: owner: %s  id: %s", owner, id)
	return nil
}
