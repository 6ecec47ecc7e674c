// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - LevelDB backed pools for the pet store
//
// the single database is split into pools by a one byte key prefix:
//
//   P ⧺ id                -> packed pet record
//   C                     -> total pet count (uint64 BE)
//   N ⧺ owner             -> next list position for owner (uint64 BE)
//   L ⧺ owner ⧺ position  -> id   (position is uint64 BE so keys sort in insertion order)
//   D ⧺ owner ⧺ id        -> position
//   K ⧺ owner             -> number of pets currently owned (uint64 BE)
//   B ⧺ account           -> balance (uint64 BE)
//   V ⧺ height            -> version digest
//
// all writes go through a Transaction that holds the store's write
// lock from Begin until Commit or Abort, buffers every change in one
// LevelDB batch and lets the caller read its own uncommitted writes
//
// each commit appends a version whose digest chains the previous
// digest with the batch contents; a ring of LevelDB snapshots keeps
// the most recent versions readable through View
package storage
