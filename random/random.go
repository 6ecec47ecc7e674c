// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package random

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
)

//go:generate mockgen -source=random.go -destination=mocks/random.go -package=mocks

// Source - supplier of unpredictable bytes for a subject
type Source interface {
	Random(subject []byte) ([]byte, error)
}

// names of the configurable sources
const (
	ChainSource  = "chain"
	SystemSource = "system"
)

// New - create the named source
//
// the chain source is seeded from the digest returned by seed
func New(name string, seed func() digest.Digest) (Source, error) {
	switch name {
	case "", ChainSource:
		if nil == seed {
			return nil, fault.ErrInvalidRandomness
		}
		return NewChain(seed), nil
	case SystemSource:
		return &system{}, nil
	default:
		return nil, fault.ErrInvalidRandomness
	}
}

// Chain - deterministic bytes from the latest committed version
//
// each call also mixes in a nonce so repeated draws within one
// version differ
type Chain struct {
	sync.Mutex
	seed  func() digest.Digest
	nonce uint64
}

// NewChain - create a chain source
func NewChain(seed func() digest.Digest) *Chain {
	return &Chain{
		seed: seed,
	}
}

// Random - SHA3-256 of subject ⧺ seed digest ⧺ nonce
func (c *Chain) Random(subject []byte) ([]byte, error) {
	c.Lock()
	nonce := c.nonce
	c.nonce += 1
	c.Unlock()

	seed := c.seed()

	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, nonce)

	h := sha3.New256()
	h.Write(subject)
	h.Write(seed[:])
	h.Write(nonceBytes)
	return h.Sum(nil), nil
}

type system struct{}

// Random - bytes from the operating system
func (s *system) Random(subject []byte) ([]byte, error) {
	buffer := make([]byte, digest.Length)
	if _, err := rand.Read(buffer); nil != err {
		return nil, fault.ErrShortRandomness
	}
	return buffer, nil
}
