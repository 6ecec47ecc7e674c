// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"

	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/petd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Pets           *PoolHandle `prefix:"P"`
	PetCount       *PoolHandle `prefix:"C"`
	OwnerNextCount *PoolHandle `prefix:"N"`
	OwnerList      *PoolHandle `prefix:"L"`
	OwnerPosition  *PoolHandle `prefix:"D"`
	OwnerCount     *PoolHandle `prefix:"K"`
	Balances       *PoolHandle `prefix:"B"`
	Versions       *PoolHandle `prefix:"V"`
	TestData       *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// PoolHandle - a prefix tagged key range of the database
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

func init() {
	if err := setupPools(&Pool); nil != err {
		panic(err)
	}
}

// fill in each pool handle from its struct tag
func setupPools(p *pools) error {

	// this will be a struct type
	poolType := reflect.TypeOf(*p)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(p).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		if name, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s duplicates prefix: %q of pool: %s", fieldInfo.Name, prefixTag, name)
		}
		seen[prefix] = fieldInfo.Name

		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		poolValue.Field(i).Set(reflect.ValueOf(&PoolHandle{
			prefix: prefix,
			limit:  limit,
		}))
	}
	return nil
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// key range covering every key in this pool that starts with prefix
func (p *PoolHandle) prefixRange(prefix []byte) *ldb_util.Range {
	if 0 == len(prefix) {
		return &ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		}
	}
	return ldb_util.BytesPrefix(p.prefixKey(prefix))
}

// decode first 8 bytes as big endian uint64
func decodeN(buffer []byte) (uint64, error) {
	if len(buffer) < 8 {
		return 0, fault.ErrTruncatedRecord
	}
	return binary.BigEndian.Uint64(buffer[:8]), nil
}

// encode a uint64 as 8 bytes big endian
func encodeN(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
