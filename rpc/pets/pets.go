// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/dispatch"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/mode"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/rpc/ratelimit"
	"github.com/bitmark-inc/petd/storage"
)

//go:generate mockgen -source=pets.go -destination=../mocks/dispatcher.go -package=mocks

const (
	rateLimitPets = 200
	rateBurstPets = 100
)

// Dispatcher - the state changing and query calls used by Pets
type Dispatcher interface {
	Dispatch(cmd dispatch.Command) (*dispatch.Result, error)
	Pet(at *digest.Digest, id digest.Digest) (*pet.Pet, storage.Version, error)
	Count(at *digest.Digest) (uint64, storage.Version, error)
}

// Pets - type for the RPC
type Pets struct {
	Log        *logger.L
	Limiter    *rate.Limiter
	Dispatcher Dispatcher
	IsNormal   func(mode.Mode) bool
	IsTesting  func() bool
}

// New - create the Pets service
func New(log *logger.L, d Dispatcher, isNormalMode func(mode.Mode) bool, isTestingChain func() bool) *Pets {
	return &Pets{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitPets, rateBurstPets),
		Dispatcher: d,
		IsNormal:   isNormalMode,
		IsTesting:  isTestingChain,
	}
}

// ChangeReply - version produced by a state changing call
type ChangeReply struct {
	Version storage.Version `json:"version"`
}

// ---

// CreateArguments - arguments for Create
type CreateArguments struct {
	Owner  *account.Account `json:"owner"`
	Name   string           `json:"name"`
	Gender *pet.Gender      `json:"gender,omitempty"` // random if omitted
}

// CreateReply - result of Create
type CreateReply struct {
	Id      digest.Digest   `json:"id"`
	Version storage.Version `json:"version"`
}

// Create - mint a new pet
func (pets *Pets) Create(arguments *CreateArguments, reply *CreateReply) error {
	if err := pets.begin("Pets.Create", arguments); nil != err {
		return err
	}
	if err := pets.validAccount(arguments.Owner); nil != err {
		return err
	}

	result, err := pets.Dispatcher.Dispatch(&dispatch.CreatePet{
		Owner:  arguments.Owner,
		Name:   []byte(arguments.Name),
		Gender: arguments.Gender,
	})
	if nil != err {
		return err
	}

	reply.Id = *result.Id
	reply.Version = result.Version
	return nil
}

// ---

// SetPriceArguments - arguments for SetPrice
type SetPriceArguments struct {
	Owner *account.Account `json:"owner"`
	Id    digest.Digest    `json:"id"`
	Price *uint64          `json:"price,omitempty"` // withdraw from sale if omitted
}

// SetPrice - offer a pet for sale or withdraw it
func (pets *Pets) SetPrice(arguments *SetPriceArguments, reply *ChangeReply) error {
	if err := pets.begin("Pets.SetPrice", arguments); nil != err {
		return err
	}
	if err := pets.validAccount(arguments.Owner); nil != err {
		return err
	}

	result, err := pets.Dispatcher.Dispatch(&dispatch.SetPrice{
		Owner: arguments.Owner,
		Id:    arguments.Id,
		Price: arguments.Price,
	})
	if nil != err {
		return err
	}

	reply.Version = result.Version
	return nil
}

// ---

// TransferArguments - arguments for Transfer
type TransferArguments struct {
	Owner *account.Account `json:"owner"`
	To    *account.Account `json:"to"`
	Id    digest.Digest    `json:"id"`
}

// Transfer - give a pet to another account
func (pets *Pets) Transfer(arguments *TransferArguments, reply *ChangeReply) error {
	if err := pets.begin("Pets.Transfer", arguments); nil != err {
		return err
	}
	if err := pets.validAccount(arguments.Owner); nil != err {
		return err
	}
	if err := pets.validAccount(arguments.To); nil != err {
		return err
	}

	result, err := pets.Dispatcher.Dispatch(&dispatch.Transfer{
		Owner: arguments.Owner,
		To:    arguments.To,
		Id:    arguments.Id,
	})
	if nil != err {
		return err
	}

	reply.Version = result.Version
	return nil
}

// ---

// BuyArguments - arguments for Buy
type BuyArguments struct {
	Buyer    *account.Account `json:"buyer"`
	Id       digest.Digest    `json:"id"`
	MaxPrice uint64           `json:"maxPrice"`
}

// Buy - purchase a pet that is for sale
func (pets *Pets) Buy(arguments *BuyArguments, reply *ChangeReply) error {
	if err := pets.begin("Pets.Buy", arguments); nil != err {
		return err
	}
	if err := pets.validAccount(arguments.Buyer); nil != err {
		return err
	}

	result, err := pets.Dispatcher.Dispatch(&dispatch.Buy{
		Buyer:    arguments.Buyer,
		Id:       arguments.Id,
		MaxPrice: arguments.MaxPrice,
	})
	if nil != err {
		return err
	}

	reply.Version = result.Version
	return nil
}

// ---

// BreedArguments - arguments for Breed
type BreedArguments struct {
	Owner     *account.Account `json:"owner"`
	ParentOne digest.Digest    `json:"parentOne"`
	ParentTwo digest.Digest    `json:"parentTwo"`
}

// Breed - mint a child of two owned pets
func (pets *Pets) Breed(arguments *BreedArguments, reply *CreateReply) error {
	if err := pets.begin("Pets.Breed", arguments); nil != err {
		return err
	}
	if err := pets.validAccount(arguments.Owner); nil != err {
		return err
	}

	result, err := pets.Dispatcher.Dispatch(&dispatch.Breed{
		Owner:     arguments.Owner,
		ParentOne: arguments.ParentOne,
		ParentTwo: arguments.ParentTwo,
	})
	if nil != err {
		return err
	}

	reply.Id = *result.Id
	reply.Version = result.Version
	return nil
}

// ---

// GetArguments - arguments for Get
type GetArguments struct {
	Id digest.Digest  `json:"id"`
	At *digest.Digest `json:"at,omitempty"` // latest if omitted
}

// GetReply - result of Get, Pet is null if it does not exist
type GetReply struct {
	Pet *pet.Pet        `json:"pet"`
	At  storage.Version `json:"at"`
}

// Get - look up one pet
func (pets *Pets) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ratelimit.Limit(pets.Limiter); nil != err {
		return err
	}

	pets.Log.Debugf("Pets.Get: %+v", arguments)

	p, version, err := pets.Dispatcher.Pet(arguments.At, arguments.Id)
	if nil != err {
		return err
	}

	reply.Pet = p
	reply.At = version
	return nil
}

// ---

// CountArguments - arguments for Count
type CountArguments struct {
	At *digest.Digest `json:"at,omitempty"` // latest if omitted
}

// CountReply - result of Count
type CountReply struct {
	Count uint64          `json:"count"`
	At    storage.Version `json:"at"`
}

// Count - total number of pets
func (pets *Pets) Count(arguments *CountArguments, reply *CountReply) error {
	if err := ratelimit.Limit(pets.Limiter); nil != err {
		return err
	}

	count, version, err := pets.Dispatcher.Count(arguments.At)
	if nil != err {
		return err
	}

	reply.Count = count
	reply.At = version
	return nil
}

// rate limit, log and refuse changes unless the node is serving
func (pets *Pets) begin(name string, arguments interface{}) error {
	if err := ratelimit.Limit(pets.Limiter); nil != err {
		return err
	}

	pets.Log.Infof("%s: %+v", name, arguments)

	if !pets.IsNormal(mode.Normal) {
		return fault.ErrNotAvailable
	}
	return nil
}

// accounts must be present and on this node's network
func (pets *Pets) validAccount(a *account.Account) error {
	if nil == a {
		return fault.ErrMissingParameters
	}
	if a.IsTesting() != pets.IsTesting() {
		return fault.ErrWrongNetwork
	}
	return nil
}
