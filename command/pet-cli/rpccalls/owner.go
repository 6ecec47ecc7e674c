// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/rpc/owner"
)

// OwnedData - data for an ownership request
type OwnedData struct {
	Owner *account.Account
	Start uint64
	Count int
	At    *digest.Digest
}

// GetOwned - obtain a page of owned pets
func (client *Client) GetOwned(ownedConfig *OwnedData) (*owner.PetsReply, error) {

	args := owner.PetsArguments{
		Owner: ownedConfig.Owner,
		Start: ownedConfig.Start,
		Count: ownedConfig.Count,
		At:    ownedConfig.At,
	}

	reply := &owner.PetsReply{}
	if err := client.call("Owned", "Owner.Pets", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}

// GetBalance - obtain the balance of an account
func (client *Client) GetBalance(a *account.Account, at *digest.Digest) (*owner.BalanceReply, error) {

	args := owner.BalanceArguments{
		Owner: a,
		At:    at,
	}

	reply := &owner.BalanceReply{}
	if err := client.call("Balance", "Owner.Balance", args, reply); nil != err {
		return nil, err
	}
	return reply, nil
}
