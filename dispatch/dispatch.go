// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dispatch - routes commands to the services inside a single
// storage transaction and answers queries against a snapshot
package dispatch

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/balance"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/messagebus"
	"github.com/bitmark-inc/petd/mint"
	"github.com/bitmark-inc/petd/ownership"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/random"
	"github.com/bitmark-inc/petd/storage"
	"github.com/bitmark-inc/petd/transfer"
)

// name used as the sender on the message bus
const busSender = "dispatch"

// Dispatcher - the single entry point for calls and queries
type Dispatcher struct {
	log        *logger.L
	store      *storage.Store
	pets       *pet.Store
	owners     *ownership.Index
	ledger     *balance.Ledger
	minter     *mint.Minter
	transferer *transfer.Transferer
	bus        *messagebus.Bus
}

// Allocation - an initial balance
type Allocation struct {
	Account *account.Account
	Amount  uint64
}

// New - wire the services to an open store
//
// bus may be nil when nothing consumes events
func New(store *storage.Store, source random.Source, maximumOwned uint64, bus *messagebus.Bus) *Dispatcher {
	pets := pet.NewStore()
	owners := ownership.New(maximumOwned)
	ledger := balance.New()
	minter := mint.New(pets, owners, source)

	return &Dispatcher{
		log:        logger.New("dispatch"),
		store:      store,
		pets:       pets,
		owners:     owners,
		ledger:     ledger,
		minter:     minter,
		transferer: transfer.New(pets, owners, ledger, minter),
		bus:        bus,
	}
}

// Genesis - credit the initial balances if the store is still empty
//
// returns false if the store already has history
func (d *Dispatcher) Genesis(allocations []Allocation) (bool, error) {
	trx, err := d.store.Begin()
	if nil != err {
		return false, err
	}
	defer trx.Abort()

	if 0 != d.store.Latest().Height || 0 == len(allocations) {
		return false, nil
	}

	for _, a := range allocations {
		if nil == a.Account {
			return false, fault.ErrMissingParameters
		}
		if err := d.ledger.Credit(trx, a.Account, a.Amount); nil != err {
			return false, err
		}
	}

	version, err := trx.Commit()
	if nil != err {
		return false, err
	}
	d.log.Infof("genesis: %d allocations  height: %d", len(allocations), version.Height)
	return true, nil
}

// Dispatch - run one command to completion
//
// all of its writes are committed together or not at all, and
// events are only sent after a successful commit
func (d *Dispatcher) Dispatch(cmd Command) (*Result, error) {
	if nil == cmd || nil == cmd.caller() {
		return nil, fault.ErrMissingParameters
	}

	trx, err := d.store.Begin()
	if nil != err {
		return nil, err
	}
	defer trx.Abort() // no-op once committed

	id, events, err := d.apply(trx, cmd)
	if nil != err {
		d.log.Debugf("command: %T  error: %s", cmd, err)
		return nil, err
	}

	version, err := trx.Commit()
	if nil != err {
		return nil, err
	}

	if nil != d.bus {
		for _, e := range events(version.Height) {
			if !d.bus.Send(busSender, e) {
				d.log.Warnf("event: %s dropped, queue full", e.Name())
			}
		}
	}

	d.log.Infof("command: %T  height: %d", cmd, version.Height)
	return &Result{
		Id:      id,
		Version: version,
	}, nil
}

// events are built once the height is known
type eventsAt func(height uint64) []Event

// route a command to its service
func (d *Dispatcher) apply(trx storage.Transaction, cmd Command) (*digest.Digest, eventsAt, error) {

	switch c := cmd.(type) {

	case *CreatePet:
		id, err := d.minter.Create(trx, c.Owner, c.Name, c.Gender)
		if nil != err {
			return nil, nil, err
		}
		created, err := d.created(trx, id)
		if nil != err {
			return nil, nil, err
		}
		return &id, func(height uint64) []Event {
			created.Height = height
			return []Event{created}
		}, nil

	case *SetPrice:
		err := d.transferer.SetPrice(trx, c.Owner, c.Id, c.Price)
		if nil != err {
			return nil, nil, err
		}
		return nil, func(height uint64) []Event {
			return []Event{PriceSet{Height: height, Id: c.Id, Owner: c.Owner, Price: c.Price}}
		}, nil

	case *Transfer:
		if nil == c.To {
			return nil, nil, fault.ErrMissingParameters
		}
		err := d.transferer.Transfer(trx, c.Owner, c.To, c.Id)
		if nil != err {
			return nil, nil, err
		}
		return nil, func(height uint64) []Event {
			return []Event{Transferred{Height: height, Id: c.Id, From: c.Owner, To: c.To}}
		}, nil

	case *Buy:
		sale, err := d.transferer.Buy(trx, c.Buyer, c.Id, c.MaxPrice)
		if nil != err {
			return nil, nil, err
		}
		price := sale.Price
		return nil, func(height uint64) []Event {
			return []Event{Transferred{Height: height, Id: c.Id, From: sale.Seller, To: c.Buyer, Price: &price}}
		}, nil

	case *Breed:
		id, err := d.transferer.Breed(trx, c.Owner, c.ParentOne, c.ParentTwo)
		if nil != err {
			return nil, nil, err
		}
		created, err := d.created(trx, id)
		if nil != err {
			return nil, nil, err
		}
		return &id, func(height uint64) []Event {
			created.Height = height
			bred := Bred{Height: height, Id: id, Owner: c.Owner, ParentOne: c.ParentOne, ParentTwo: c.ParentTwo}
			return []Event{bred, created}
		}, nil

	default:
		return nil, nil, fault.ErrInvalidCommand
	}
}

// the creation event of a pet minted in this transaction
func (d *Dispatcher) created(trx storage.Transaction, id digest.Digest) (Created, error) {
	p, found, err := d.pets.Get(trx, id)
	if nil != err {
		return Created{}, err
	}
	if !found {
		d.log.Criticalf("created pet: %s not readable", id)
		return Created{}, fault.ErrPetNotFound
	}
	return Created{Id: id, Owner: p.Owner, Gender: p.Gender}, nil
}
