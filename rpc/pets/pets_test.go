// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pets_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/dispatch"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/fixtures"
	"github.com/bitmark-inc/petd/mode"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/rpc/mocks"
	"github.com/bitmark-inc/petd/rpc/pets"
	"github.com/bitmark-inc/petd/storage"
)

func serving(m mode.Mode) bool { return mode.Normal == m }
func starting(m mode.Mode) bool { return mode.Starting == m }
func testChain() bool { return true }
func liveChain() bool { return false }

var version = storage.Version{
	Height: 4,
	Digest: digest.NewDigest([]byte("version four")),
}

func TestPetsCreate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	d := mocks.NewMockDispatcher(ctl)
	p := pets.New(logger.New(fixtures.LogCategory), d, serving, testChain)

	female := pet.Female
	arg := pets.CreateArguments{
		Owner:  fixtures.Alice,
		Name:   "Tom",
		Gender: &female,
	}
	id := digest.NewDigest([]byte("Tom"))

	d.EXPECT().Dispatch(&dispatch.CreatePet{
		Owner:  fixtures.Alice,
		Name:   []byte("Tom"),
		Gender: &female,
	}).Return(&dispatch.Result{Id: &id, Version: version}, nil).Times(1)

	var reply pets.CreateReply
	err := p.Create(&arg, &reply)
	assert.Nil(t, err, "wrong Create")
	assert.Equal(t, id, reply.Id, "wrong id")
	assert.Equal(t, version, reply.Version, "wrong version")
}

func TestPetsCreateError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	d := mocks.NewMockDispatcher(ctl)
	p := pets.New(logger.New(fixtures.LogCategory), d, serving, testChain)

	d.EXPECT().Dispatch(gomock.Any()).Return(nil, fault.ErrPetAlreadyExists).Times(1)

	var reply pets.CreateReply
	err := p.Create(&pets.CreateArguments{Owner: fixtures.Alice, Name: "Tom"}, &reply)
	assert.Equal(t, fault.ErrPetAlreadyExists, err, "wrong error")
}

func TestPetsRefusals(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// no Dispatch calls are expected
	d := mocks.NewMockDispatcher(ctl)
	log := logger.New(fixtures.LogCategory)

	var reply pets.ChangeReply

	notServing := pets.New(log, d, starting, testChain)
	err := notServing.Transfer(&pets.TransferArguments{Owner: fixtures.Alice, To: fixtures.Bob}, &reply)
	assert.Equal(t, fault.ErrNotAvailable, err, "not serving")

	live := pets.New(log, d, serving, liveChain)
	err = live.SetPrice(&pets.SetPriceArguments{Owner: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrWrongNetwork, err, "wrong network")

	p := pets.New(log, d, serving, testChain)
	err = p.Buy(&pets.BuyArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing buyer")

	err = p.Transfer(&pets.TransferArguments{Owner: fixtures.Alice}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing recipient")
}

func TestPetsChanges(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	d := mocks.NewMockDispatcher(ctl)
	p := pets.New(logger.New(fixtures.LogCategory), d, serving, testChain)

	id := digest.NewDigest([]byte("Tom"))
	other := digest.NewDigest([]byte("Jerry"))
	child := digest.NewDigest([]byte("TomJerry"))
	price := uint64(100)

	gomock.InOrder(
		d.EXPECT().Dispatch(&dispatch.SetPrice{Owner: fixtures.Alice, Id: id, Price: &price}).
			Return(&dispatch.Result{Version: version}, nil),
		d.EXPECT().Dispatch(&dispatch.Buy{Buyer: fixtures.Bob, Id: id, MaxPrice: 150}).
			Return(&dispatch.Result{Version: version}, nil),
		d.EXPECT().Dispatch(&dispatch.Transfer{Owner: fixtures.Bob, To: fixtures.Carol, Id: id}).
			Return(&dispatch.Result{Version: version}, nil),
		d.EXPECT().Dispatch(&dispatch.Breed{Owner: fixtures.Carol, ParentOne: id, ParentTwo: other}).
			Return(&dispatch.Result{Id: &child, Version: version}, nil),
	)

	var reply pets.ChangeReply
	err := p.SetPrice(&pets.SetPriceArguments{Owner: fixtures.Alice, Id: id, Price: &price}, &reply)
	assert.Nil(t, err, "wrong SetPrice")
	assert.Equal(t, version, reply.Version, "wrong SetPrice version")

	err = p.Buy(&pets.BuyArguments{Buyer: fixtures.Bob, Id: id, MaxPrice: 150}, &reply)
	assert.Nil(t, err, "wrong Buy")

	err = p.Transfer(&pets.TransferArguments{Owner: fixtures.Bob, To: fixtures.Carol, Id: id}, &reply)
	assert.Nil(t, err, "wrong Transfer")

	var created pets.CreateReply
	err = p.Breed(&pets.BreedArguments{Owner: fixtures.Carol, ParentOne: id, ParentTwo: other}, &created)
	assert.Nil(t, err, "wrong Breed")
	assert.Equal(t, child, created.Id, "wrong child")
}

func TestPetsQueries(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	d := mocks.NewMockDispatcher(ctl)

	// queries are answered while the node is still starting
	p := pets.New(logger.New(fixtures.LogCategory), d, starting, testChain)

	id := digest.NewDigest([]byte("Tom"))
	tom := &pet.Pet{
		Id:     id,
		Name:   []byte("Tom"),
		Gender: pet.Male,
		Owner:  fixtures.Alice,
	}
	at := version.Digest

	d.EXPECT().Pet(&at, id).Return(tom, version, nil).Times(1)
	d.EXPECT().Pet((*digest.Digest)(nil), id).Return(nil, version, nil).Times(1)
	d.EXPECT().Count((*digest.Digest)(nil)).Return(uint64(3), version, nil).Times(1)
	d.EXPECT().Count(&at).Return(uint64(0), storage.Version{}, fault.ErrVersionNotFound).Times(1)

	var reply pets.GetReply
	err := p.Get(&pets.GetArguments{Id: id, At: &at}, &reply)
	assert.Nil(t, err, "wrong Get")
	assert.Equal(t, tom, reply.Pet, "wrong pet")
	assert.Equal(t, version, reply.At, "wrong at")

	reply = pets.GetReply{}
	err = p.Get(&pets.GetArguments{Id: id}, &reply)
	assert.Nil(t, err, "wrong Get of missing pet")
	assert.Nil(t, reply.Pet, "missing pet returned")

	var count pets.CountReply
	err = p.Count(&pets.CountArguments{}, &count)
	assert.Nil(t, err, "wrong Count")
	assert.Equal(t, uint64(3), count.Count, "wrong count")

	err = p.Count(&pets.CountArguments{At: &at}, &count)
	assert.Equal(t, fault.ErrVersionNotFound, err, "wrong error")
}
