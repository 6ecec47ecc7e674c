// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package owner

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/rpc/ratelimit"
	"github.com/bitmark-inc/petd/storage"
)

//go:generate mockgen -source=owner.go -destination=../mocks/accounts.go -package=mocks

// Accounts - per account queries
type Accounts interface {
	Owned(at *digest.Digest, owner *account.Account) ([]digest.Digest, storage.Version, error)
	Balance(at *digest.Digest, a *account.Account) (uint64, storage.Version, error)
}

// Owner
// -----

const (
	rateLimitOwner = 200
	rateBurstOwner = 100

	maximumPetsCount = 100
)

// Owner - type for the RPC
type Owner struct {
	Log       *logger.L
	Limiter   *rate.Limiter
	Accounts  Accounts
	IsTesting func() bool
}

// New - create the Owner service
func New(log *logger.L, accounts Accounts, isTestingChain func() bool) *Owner {
	return &Owner{
		Log:       log,
		Limiter:   rate.NewLimiter(rateLimitOwner, rateBurstOwner),
		Accounts:  accounts,
		IsTesting: isTestingChain,
	}
}

// Owner pets
// ----------

// PetsArguments - arguments for RPC
//
// a zero count returns the largest page
type PetsArguments struct {
	Owner *account.Account `json:"owner"` // base58
	Start uint64           `json:"start"`
	Count int              `json:"count"`
	At    *digest.Digest   `json:"at,omitempty"`
}

// PetsReply - result of owner RPC
type PetsReply struct {
	Pets  []digest.Digest `json:"pets"` // oldest acquisition first
	Next  uint64          `json:"next"` // start of the following page
	Total uint64          `json:"total"`
	At    storage.Version `json:"at"`
}

// Pets - list a page of the pets belonging to an account
func (owner *Owner) Pets(arguments *PetsArguments, reply *PetsReply) error {

	count := arguments.Count
	if 0 == count {
		count = maximumPetsCount
	}

	if err := ratelimit.LimitN(owner.Limiter, count, maximumPetsCount); nil != err {
		return err
	}
	if err := owner.validAccount(arguments.Owner); nil != err {
		return err
	}

	owner.Log.Debugf("Owner.Pets: %+v", arguments)

	ids, version, err := owner.Accounts.Owned(arguments.At, arguments.Owner)
	if nil != err {
		return err
	}

	total := uint64(len(ids))
	start := arguments.Start
	if start > total {
		start = total
	}
	end := start + uint64(count)
	if end > total {
		end = total
	}

	// an empty list rather than null
	page := make([]digest.Digest, 0, end-start)
	page = append(page, ids[start:end]...)

	reply.Pets = page
	reply.Next = end
	reply.Total = total
	reply.At = version
	return nil
}

// Owner balance
// -------------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Owner *account.Account `json:"owner"` // base58
	At    *digest.Digest   `json:"at,omitempty"`
}

// BalanceReply - result of balance RPC
type BalanceReply struct {
	Balance uint64          `json:"balance"`
	At      storage.Version `json:"at"`
}

// Balance - funds available to an account
func (owner *Owner) Balance(arguments *BalanceArguments, reply *BalanceReply) error {

	if err := owner.begin(arguments.Owner); nil != err {
		return err
	}

	owner.Log.Debugf("Owner.Balance: %+v", arguments)

	amount, version, err := owner.Accounts.Balance(arguments.At, arguments.Owner)
	if nil != err {
		return err
	}

	reply.Balance = amount
	reply.At = version
	return nil
}

func (owner *Owner) begin(a *account.Account) error {
	if err := ratelimit.Limit(owner.Limiter); nil != err {
		return err
	}
	return owner.validAccount(a)
}

func (owner *Owner) validAccount(a *account.Account) error {
	if nil == a {
		return fault.ErrMissingParameters
	}
	if a.IsTesting() != owner.IsTesting() {
		return fault.ErrWrongNetwork
	}
	return nil
}
