// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/storage"
)

// List - owner's pets in the order they were added
func (ix *Index) List(reader storage.Reader, owner *account.Account) ([]digest.Digest, error) {
	ids := make([]digest.Digest, 0)
	err := reader.Map(storage.Pool.OwnerList, owner.Bytes(), func(key []byte, value []byte) error {
		var id digest.Digest
		if err := digest.FromBytes(&id, value); nil != err {
			ix.log.Criticalf("list: owner: %s  key: %x  bad id: %x", owner, key, value)
			return fault.ErrTruncatedRecord
		}
		ids = append(ids, id)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return ids, nil
}

// Length - number of pets the owner holds
func (ix *Index) Length(reader storage.Reader, owner *account.Account) (uint64, error) {
	length, _, err := reader.GetN(storage.Pool.OwnerCount, owner.Bytes())
	return length, err
}

// Available - true if the owner can accept one more pet
func (ix *Index) Available(reader storage.Reader, owner *account.Account) (bool, error) {
	length, err := ix.Length(reader, owner)
	if nil != err {
		return false, err
	}
	return length < ix.maximum, nil
}

// big endian so that list keys sort in position order
func encodePosition(position uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, position)
	return buffer
}
