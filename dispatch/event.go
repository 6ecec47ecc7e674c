// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/pet"
)

// Event - notification sent after a successful commit
type Event interface {
	Name() string
}

// Created - a pet was minted
type Created struct {
	Height uint64           `json:"height"`
	Id     digest.Digest    `json:"id"`
	Owner  *account.Account `json:"owner"`
	Gender pet.Gender       `json:"gender"`
}

// PriceSet - a pet was put up for sale or withdrawn
type PriceSet struct {
	Height uint64           `json:"height"`
	Id     digest.Digest    `json:"id"`
	Owner  *account.Account `json:"owner"`
	Price  *uint64          `json:"price"`
}

// Transferred - a pet changed owner, Price is set when it was bought
type Transferred struct {
	Height uint64           `json:"height"`
	Id     digest.Digest    `json:"id"`
	From   *account.Account `json:"from"`
	To     *account.Account `json:"to"`
	Price  *uint64          `json:"price,omitempty"`
}

// Bred - a pet was minted from two parents
type Bred struct {
	Height    uint64           `json:"height"`
	Id        digest.Digest    `json:"id"`
	Owner     *account.Account `json:"owner"`
	ParentOne digest.Digest    `json:"parentOne"`
	ParentTwo digest.Digest    `json:"parentTwo"`
}

// Name - event name used as the publish topic
func (e Created) Name() string     { return "created" }
func (e PriceSet) Name() string    { return "priceSet" }
func (e Transferred) Name() string { return "transferred" }
func (e Bred) Name() string        { return "bred" }
