// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mint_test

import (
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/fixtures"
	"github.com/bitmark-inc/petd/mint"
	"github.com/bitmark-inc/petd/ownership"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/random/mocks"
	"github.com/bitmark-inc/petd/storage"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

type setup struct {
	store  *storage.Store
	pets   *pet.Store
	owners *ownership.Index
	source *mocks.MockSource
	minter *mint.Minter
	trx    storage.Transaction
}

func newSetup(t *testing.T, ctl *gomock.Controller, maximum uint64) *setup {
	s, err := storage.OpenStorage(ldb_storage.NewMemStorage(), 0)
	require.NoError(t, err, "open storage")

	trx, err := s.Begin()
	require.NoError(t, err, "begin")

	pets := pet.NewStore()
	owners := ownership.New(maximum)
	source := mocks.NewMockSource(ctl)
	return &setup{
		store:  s,
		pets:   pets,
		owners: owners,
		source: source,
		minter: mint.New(pets, owners, source),
		trx:    trx,
	}
}

func (s *setup) close() {
	s.trx.Abort()
	s.store.Close()
}

func TestCreate(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newSetup(t, ctl, 0)
	defer s.close()

	s.source.EXPECT().Random([]byte("gender")).Return([]byte{0x03, 0x00}, nil).Times(1)

	id, err := s.minter.Create(s.trx, fixtures.Alice, []byte("Tom"), nil)
	require.NoError(t, err, "create")
	assert.Equal(t, digest.NewDigest([]byte("Tom")), id, "id is content hash")

	p, found, err := s.pets.Get(s.trx, id)
	require.NoError(t, err, "get")
	require.True(t, found, "found")
	assert.Equal(t, pet.Female, p.Gender, "odd byte is female")
	assert.Nil(t, p.Price, "new pet for sale")
	assert.True(t, fixtures.Alice.Equal(p.Owner), "owner")

	count, err := s.pets.Count(s.trx)
	assert.NoError(t, err, "count")
	assert.Equal(t, uint64(1), count, "count")

	ids, err := s.owners.List(s.trx, fixtures.Alice)
	assert.NoError(t, err, "list")
	assert.Equal(t, []digest.Digest{id}, ids, "owner list")
}

func TestCreateWithGender(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newSetup(t, ctl, 0)
	defer s.close()

	// supplied gender does not consume randomness
	s.source.EXPECT().Random(gomock.Any()).Times(0)

	male := pet.Male
	id, err := s.minter.Create(s.trx, fixtures.Alice, []byte("Tom"), &male)
	require.NoError(t, err, "create")

	p, _, err := s.pets.Get(s.trx, id)
	require.NoError(t, err, "get")
	assert.Equal(t, pet.Male, p.Gender, "gender")

	bad := pet.Gender(7)
	_, err = s.minter.Create(s.trx, fixtures.Alice, []byte("Jerry"), &bad)
	assert.Equal(t, fault.ErrInvalidGender, err, "invalid gender")
}

func TestCreateFailures(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newSetup(t, ctl, 1)
	defer s.close()

	s.source.EXPECT().Random([]byte("gender")).Return([]byte{0x02}, nil).Times(1)

	_, err := s.minter.Create(s.trx, fixtures.Alice, []byte("Tom"), nil)
	require.NoError(t, err, "create")

	// duplicate content, even for another owner
	_, err = s.minter.Create(s.trx, fixtures.Bob, []byte("Tom"), nil)
	assert.Equal(t, fault.ErrPetAlreadyExists, err, "duplicate")

	// owner full
	_, err = s.minter.Create(s.trx, fixtures.Alice, []byte("Jerry"), nil)
	assert.Equal(t, fault.ErrCapacityExceeded, err, "capacity")

	count, err := s.pets.Count(s.trx)
	assert.NoError(t, err, "count")
	assert.Equal(t, uint64(1), count, "failed creates changed count")

	_, found, err := s.pets.Get(s.trx, digest.NewDigest([]byte("Jerry")))
	assert.NoError(t, err, "get")
	assert.False(t, found, "pet stored despite capacity failure")
}

func TestCreateEmptyContent(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newSetup(t, ctl, 0)
	defer s.close()

	s.source.EXPECT().Random([]byte("gender")).Return([]byte{0x01}, nil).Times(1)

	id, err := s.minter.Create(s.trx, fixtures.Alice, []byte{}, nil)
	require.NoError(t, err, "create empty")
	assert.Equal(t, digest.NewDigest([]byte{}), id, "id")

	p, found, err := s.pets.Get(s.trx, id)
	require.NoError(t, err, "get")
	require.True(t, found, "not found")
	assert.Equal(t, 0, len(p.Name), "name")
	assert.Equal(t, pet.Female, p.Gender, "gender")

	_, err = s.minter.Create(s.trx, fixtures.Bob, nil, nil)
	assert.Equal(t, fault.ErrPetAlreadyExists, err, "duplicate empty")
}

func TestCreateCounterOverflow(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newSetup(t, ctl, 0)
	defer s.close()

	s.source.EXPECT().Random(gomock.Any()).Times(0)

	s.trx.PutN(storage.Pool.PetCount, nil, ^uint64(0))

	_, err := s.minter.Create(s.trx, fixtures.Alice, []byte("Tom"), nil)
	assert.Equal(t, fault.ErrCounterOverflow, err, "overflow")

	ids, err := s.owners.List(s.trx, fixtures.Alice)
	assert.NoError(t, err, "list")
	assert.Equal(t, 0, len(ids), "owner list changed")
}

func TestCreateRandomnessFailure(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := newSetup(t, ctl, 0)
	defer s.close()

	failure := errors.New("no entropy")
	gomock.InOrder(
		s.source.EXPECT().Random([]byte("gender")).Return(nil, failure),
		s.source.EXPECT().Random([]byte("gender")).Return([]byte{}, nil),
	)

	_, err := s.minter.Create(s.trx, fixtures.Alice, []byte("Tom"), nil)
	assert.Equal(t, failure, err, "source error")

	_, err = s.minter.Create(s.trx, fixtures.Alice, []byte("Tom"), nil)
	assert.Equal(t, fault.ErrShortRandomness, err, "empty randomness")

	count, err := s.pets.Count(s.trx)
	assert.NoError(t, err, "count")
	assert.Equal(t, uint64(0), count, "count")
}
