// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/rpc/pets"
)

// CreateData - data for a create request
type CreateData struct {
	Owner  *account.Account
	Name   string
	Gender *pet.Gender // nil lets the node choose
}

// Create - mint a new pet
func (client *Client) Create(createConfig *CreateData) (*pets.CreateReply, error) {

	args := pets.CreateArguments{
		Owner:  createConfig.Owner,
		Name:   createConfig.Name,
		Gender: createConfig.Gender,
	}

	reply := &pets.CreateReply{}
	if err := client.call("Create", "Pets.Create", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// SetPrice - offer a pet for sale, a nil price withdraws it
func (client *Client) SetPrice(owner *account.Account, id digest.Digest, price *uint64) (*pets.ChangeReply, error) {

	args := pets.SetPriceArguments{
		Owner: owner,
		Id:    id,
		Price: price,
	}

	reply := &pets.ChangeReply{}
	if err := client.call("Set Price", "Pets.SetPrice", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// Transfer - give a pet to another account
func (client *Client) Transfer(owner *account.Account, to *account.Account, id digest.Digest) (*pets.ChangeReply, error) {

	args := pets.TransferArguments{
		Owner: owner,
		To:    to,
		Id:    id,
	}

	reply := &pets.ChangeReply{}
	if err := client.call("Transfer", "Pets.Transfer", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// Buy - purchase a pet that is for sale
func (client *Client) Buy(buyer *account.Account, id digest.Digest, maxPrice uint64) (*pets.ChangeReply, error) {

	args := pets.BuyArguments{
		Buyer:    buyer,
		Id:       id,
		MaxPrice: maxPrice,
	}

	reply := &pets.ChangeReply{}
	if err := client.call("Buy", "Pets.Buy", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// Breed - mint a child of two owned pets
func (client *Client) Breed(owner *account.Account, parentOne digest.Digest, parentTwo digest.Digest) (*pets.CreateReply, error) {

	args := pets.BreedArguments{
		Owner:     owner,
		ParentOne: parentOne,
		ParentTwo: parentTwo,
	}

	reply := &pets.CreateReply{}
	if err := client.call("Breed", "Pets.Breed", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// Get - fetch a pet, at the latest version if at is nil
func (client *Client) Get(id digest.Digest, at *digest.Digest) (*pets.GetReply, error) {

	args := pets.GetArguments{
		Id: id,
		At: at,
	}

	reply := &pets.GetReply{}
	if err := client.call("Get", "Pets.Get", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// Count - total number of pets
func (client *Client) Count(at *digest.Digest) (*pets.CountReply, error) {

	args := pets.CountArguments{
		At: at,
	}

	reply := &pets.CountReply{}
	if err := client.call("Count", "Pets.Count", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}
