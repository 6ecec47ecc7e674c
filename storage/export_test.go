// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
)

// FailSnapshots - make every following snapshot fail with err
// until the returned function is called
func FailSnapshots(s *Store, err error) func() {
	saved := s.snapshot
	s.snapshot = func() (*leveldb.Snapshot, error) {
		return nil, err
	}
	return func() {
		s.snapshot = saved
	}
}
