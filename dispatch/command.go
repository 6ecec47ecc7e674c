// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/storage"
)

// Command - one of the state changing calls
type Command interface {
	caller() *account.Account
}

// CreatePet - mint a pet named Name for Owner
type CreatePet struct {
	Owner  *account.Account
	Name   []byte
	Gender *pet.Gender // nil for a random gender
}

// SetPrice - offer a pet for sale, or withdraw it when Price is nil
type SetPrice struct {
	Owner *account.Account
	Id    digest.Digest
	Price *uint64
}

// Transfer - give a pet to another account
type Transfer struct {
	Owner *account.Account
	To    *account.Account
	Id    digest.Digest
}

// Buy - purchase a pet for at most MaxPrice
type Buy struct {
	Buyer    *account.Account
	Id       digest.Digest
	MaxPrice uint64
}

// Breed - mint a new pet from two owned parents
type Breed struct {
	Owner     *account.Account
	ParentOne digest.Digest
	ParentTwo digest.Digest
}

func (c *CreatePet) caller() *account.Account {
	if nil == c {
		return nil
	}
	return c.Owner
}

func (c *SetPrice) caller() *account.Account {
	if nil == c {
		return nil
	}
	return c.Owner
}

func (c *Transfer) caller() *account.Account {
	if nil == c {
		return nil
	}
	return c.Owner
}

func (c *Buy) caller() *account.Account {
	if nil == c {
		return nil
	}
	return c.Buyer
}

func (c *Breed) caller() *account.Account {
	if nil == c {
		return nil
	}
	return c.Owner
}

// Result - outcome of a committed command
type Result struct {
	Id      *digest.Digest  // the new pet for CreatePet and Breed
	Version storage.Version // the version the command produced
}
