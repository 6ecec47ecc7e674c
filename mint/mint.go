// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mint - creation of new pets
package mint

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/ownership"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/random"
	"github.com/bitmark-inc/petd/storage"
)

// subject passed to the randomness source for a gender draw
var genderSubject = []byte("gender")

// Minter - creates pets and records their first owner
type Minter struct {
	log    *logger.L
	pets   *pet.Store
	owners *ownership.Index
	source random.Source
}

// New - create a minter
func New(pets *pet.Store, owners *ownership.Index, source random.Source) *Minter {
	return &Minter{
		log:    logger.New("mint"),
		pets:   pets,
		owners: owners,
		source: source,
	}
}

// Create - mint a pet whose id is the hash of its content
//
// a nil gender is drawn from the randomness source; every check
// is made before anything is written
func (m *Minter) Create(trx storage.Transaction, owner *account.Account, content []byte, gender *pet.Gender) (digest.Digest, error) {
	if nil != gender && *gender > pet.Female {
		return digest.Digest{}, fault.ErrInvalidGender
	}

	id := digest.NewDigest(content)

	_, found, err := m.pets.Get(trx, id)
	if nil != err {
		return digest.Digest{}, err
	}
	if found {
		return digest.Digest{}, fault.ErrPetAlreadyExists
	}

	count, err := m.pets.Count(trx)
	if nil != err {
		return digest.Digest{}, err
	}
	if math.MaxUint64 == count {
		return digest.Digest{}, fault.ErrCounterOverflow
	}

	available, err := m.owners.Available(trx, owner)
	if nil != err {
		return digest.Digest{}, err
	}
	if !available {
		return digest.Digest{}, fault.ErrCapacityExceeded
	}

	g := pet.Male
	if nil != gender {
		g = *gender
	} else {
		g, err = m.drawGender()
		if nil != err {
			return digest.Digest{}, err
		}
	}

	p := &pet.Pet{
		Id:     id,
		Name:   content,
		Gender: g,
		Owner:  owner,
		Price:  nil,
	}

	if err := m.pets.Insert(trx, p); nil != err {
		return digest.Digest{}, err
	}
	if err := m.owners.Add(trx, owner, id); nil != err {
		return digest.Digest{}, err
	}

	m.log.Infof("created: %s  gender: %s  owner: %s", id, g, owner)
	return id, nil
}

// one byte: even is male, odd is female
func (m *Minter) drawGender() (pet.Gender, error) {
	buffer, err := m.source.Random(genderSubject)
	if nil != err {
		m.log.Errorf("randomness error: %s", err)
		return pet.Male, err
	}
	if 0 == len(buffer) {
		return pet.Male, fault.ErrShortRandomness
	}
	return pet.Gender(buffer[0] % 2), nil
}
