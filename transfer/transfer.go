// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - price changes, transfers, sales and breeding
package transfer

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/ownership"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/storage"
)

//go:generate mockgen -source=transfer.go -destination=mocks/transfer.go -package=mocks

// Ledger - pays the seller as part of a purchase
type Ledger interface {
	Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64) error
}

// Creator - mints the offspring of a breeding
type Creator interface {
	Create(trx storage.Transaction, owner *account.Account, content []byte, gender *pet.Gender) (digest.Digest, error)
}

// Transferer - changes of ownership and price of existing pets
type Transferer struct {
	log     *logger.L
	pets    *pet.Store
	owners  *ownership.Index
	ledger  Ledger
	creator Creator
}

// Sale - the result of a successful purchase
type Sale struct {
	Seller *account.Account
	Price  uint64
}

// New - create a transferer
func New(pets *pet.Store, owners *ownership.Index, ledger Ledger, creator Creator) *Transferer {
	return &Transferer{
		log:     logger.New("transfer"),
		pets:    pets,
		owners:  owners,
		ledger:  ledger,
		creator: creator,
	}
}

// fetch a pet that must exist
func (t *Transferer) get(trx storage.Transaction, id digest.Digest) (*pet.Pet, error) {
	p, found, err := t.pets.Get(trx, id)
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.ErrPetNotFound
	}
	return p, nil
}

// fetch a pet that must exist and be owned by caller
func (t *Transferer) getOwned(trx storage.Transaction, caller *account.Account, id digest.Digest) (*pet.Pet, error) {
	p, err := t.get(trx, id)
	if nil != err {
		return nil, err
	}
	if !caller.Equal(p.Owner) {
		return nil, fault.ErrNotPetOwner
	}
	return p, nil
}

// SetPrice - offer the pet for sale at price, or withdraw it if nil
func (t *Transferer) SetPrice(trx storage.Transaction, caller *account.Account, id digest.Digest, price *uint64) error {
	if _, err := t.getOwned(trx, caller, id); nil != err {
		return err
	}

	err := t.pets.Update(trx, id, func(c *pet.Changes) {
		c.Price = price
	})
	if nil != err {
		return err
	}

	if nil == price {
		t.log.Infof("set price: %s  not for sale", id)
	} else {
		t.log.Infof("set price: %s  price: %d", id, *price)
	}
	return nil
}

// Transfer - give the pet to another account
func (t *Transferer) Transfer(trx storage.Transaction, caller *account.Account, to *account.Account, id digest.Digest) error {
	if _, err := t.getOwned(trx, caller, id); nil != err {
		return err
	}
	if caller.Equal(to) {
		return fault.ErrSelfTransfer
	}
	if err := t.checkCapacity(trx, to); nil != err {
		return err
	}
	if err := t.move(trx, caller, to, id); nil != err {
		return err
	}

	t.log.Infof("transfer: %s  from: %s  to: %s", id, caller, to)
	return nil
}

// Buy - purchase a pet that is for sale at no more than maxPrice
//
// the buyer pays the asking price
func (t *Transferer) Buy(trx storage.Transaction, caller *account.Account, id digest.Digest, maxPrice uint64) (*Sale, error) {
	p, err := t.get(trx, id)
	if nil != err {
		return nil, err
	}
	if !p.ForSale() {
		return nil, fault.ErrPetNotForSale
	}
	price := *p.Price
	if price > maxPrice {
		return nil, fault.ErrPriceTooHigh
	}
	if caller.Equal(p.Owner) {
		return nil, fault.ErrSelfPurchase
	}
	if err := t.checkCapacity(trx, caller); nil != err {
		return nil, err
	}

	seller := p.Owner
	if err := t.ledger.Transfer(trx, caller, seller, price); nil != err {
		return nil, err
	}
	if err := t.move(trx, seller, caller, id); nil != err {
		return nil, err
	}

	t.log.Infof("buy: %s  seller: %s  buyer: %s  price: %d", id, seller, caller, price)
	return &Sale{
		Seller: seller,
		Price:  price,
	}, nil
}

// Breed - mint a pet from two parents of opposite gender owned by caller
//
// the offspring content is the parents' ids in the order given
func (t *Transferer) Breed(trx storage.Transaction, caller *account.Account, parentOne digest.Digest, parentTwo digest.Digest) (digest.Digest, error) {
	p1, err := t.get(trx, parentOne)
	if nil != err {
		return digest.Digest{}, err
	}
	p2, err := t.get(trx, parentTwo)
	if nil != err {
		return digest.Digest{}, err
	}
	if !caller.Equal(p1.Owner) || !caller.Equal(p2.Owner) {
		return digest.Digest{}, fault.ErrNotPetOwner
	}
	if p1.Gender == p2.Gender {
		return digest.Digest{}, fault.ErrSameGenderParents
	}

	content := make([]byte, 0, 2*digest.Length)
	content = append(content, parentOne[:]...)
	content = append(content, parentTwo[:]...)

	id, err := t.creator.Create(trx, caller, content, nil)
	if nil != err {
		return digest.Digest{}, err
	}

	t.log.Infof("breed: %s ⧺ %s -> %s", parentOne, parentTwo, id)
	return id, nil
}

func (t *Transferer) checkCapacity(trx storage.Transaction, to *account.Account) error {
	available, err := t.owners.Available(trx, to)
	if nil != err {
		return err
	}
	if !available {
		return fault.ErrCapacityExceeded
	}
	return nil
}

// index and record changes shared by transfer and buy
func (t *Transferer) move(trx storage.Transaction, from *account.Account, to *account.Account, id digest.Digest) error {
	if err := t.owners.Remove(trx, from, id); nil != err {
		t.log.Criticalf("move: %s  owner: %s  index inconsistent: %s", id, from, err)
		return err
	}
	if err := t.owners.Add(trx, to, id); nil != err {
		return err
	}
	return t.pets.Update(trx, id, func(c *pet.Changes) {
		c.Owner = to
		c.Price = nil
	})
}
