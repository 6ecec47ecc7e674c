// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatch

import (
	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/pet"
	"github.com/bitmark-inc/petd/storage"
)

// run f against the version at, nil meaning the latest
func (d *Dispatcher) view(at *digest.Digest, f func(storage.Reader) error) (storage.Version, error) {
	snapshot, err := d.store.View(at)
	if nil != err {
		return storage.Version{}, err
	}
	defer snapshot.Release()

	return snapshot.Version(), f(snapshot)
}

// Latest - the most recent committed version
func (d *Dispatcher) Latest() storage.Version {
	return d.store.Latest()
}

// MaximumOwned - capacity of each owner's list
func (d *Dispatcher) MaximumOwned() uint64 {
	return d.owners.Maximum()
}

// Pet - look up one pet, nil if it does not exist at that version
func (d *Dispatcher) Pet(at *digest.Digest, id digest.Digest) (*pet.Pet, storage.Version, error) {
	var result *pet.Pet
	version, err := d.view(at, func(reader storage.Reader) error {
		p, found, err := d.pets.Get(reader, id)
		if found {
			result = p
		}
		return err
	})
	return result, version, err
}

// Count - total number of pets
func (d *Dispatcher) Count(at *digest.Digest) (uint64, storage.Version, error) {
	count := uint64(0)
	version, err := d.view(at, func(reader storage.Reader) error {
		var err error
		count, err = d.pets.Count(reader)
		return err
	})
	return count, version, err
}

// Owned - an owner's pets in the order they were acquired
func (d *Dispatcher) Owned(at *digest.Digest, owner *account.Account) ([]digest.Digest, storage.Version, error) {
	if nil == owner {
		return nil, storage.Version{}, fault.ErrMissingParameters
	}
	var ids []digest.Digest
	version, err := d.view(at, func(reader storage.Reader) error {
		var err error
		ids, err = d.owners.List(reader, owner)
		return err
	})
	return ids, version, err
}

// Balance - an account's balance
func (d *Dispatcher) Balance(at *digest.Digest, a *account.Account) (uint64, storage.Version, error) {
	if nil == a {
		return 0, storage.Version{}, fault.ErrMissingParameters
	}
	amount := uint64(0)
	version, err := d.view(at, func(reader storage.Reader) error {
		var err error
		amount, err = d.ledger.Balance(reader, a)
		return err
	})
	return amount, version, err
}

// Versions - the versions still available to queries, oldest first
func (d *Dispatcher) Versions() []storage.Version {
	return d.store.Versions()
}
