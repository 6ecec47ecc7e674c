// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balance - account balances used to pay for pets
package balance

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/storage"
)

// from storage/doc.go:
//
//   B ⧺ account - current balance, deleted when zero
//                 data: amount

// Ledger - balances kept in the store
type Ledger struct {
	log *logger.L
}

// New - create a ledger
func New() *Ledger {
	return &Ledger{
		log: logger.New("balance"),
	}
}

// Balance - current balance of an account, zero if never credited
func (l *Ledger) Balance(reader storage.Reader, a *account.Account) (uint64, error) {
	amount, _, err := reader.GetN(storage.Pool.Balances, a.Bytes())
	return amount, err
}

// Credit - add to an account's balance
func (l *Ledger) Credit(trx storage.Transaction, a *account.Account, amount uint64) error {
	current, err := l.Balance(trx, a)
	if nil != err {
		return err
	}
	if current > math.MaxUint64-amount {
		return fault.ErrBalanceOverflow
	}
	l.put(trx, a, current+amount)

	l.log.Infof("credit: %s  amount: %d", a, amount)
	return nil
}

// Transfer - move amount from one account to another
//
// nothing is written unless both sides can be updated
func (l *Ledger) Transfer(trx storage.Transaction, from *account.Account, to *account.Account, amount uint64) error {
	fromBalance, err := l.Balance(trx, from)
	if nil != err {
		return err
	}
	if fromBalance < amount {
		return fault.ErrInsufficientFunds
	}
	if from.Equal(to) || 0 == amount {
		return nil
	}

	toBalance, err := l.Balance(trx, to)
	if nil != err {
		return err
	}
	if toBalance > math.MaxUint64-amount {
		return fault.ErrBalanceOverflow
	}

	l.put(trx, from, fromBalance-amount)
	l.put(trx, to, toBalance+amount)

	l.log.Infof("transfer: %s -> %s  amount: %d", from, to, amount)
	return nil
}

func (l *Ledger) put(trx storage.Transaction, a *account.Account, amount uint64) {
	if 0 == amount {
		trx.Delete(storage.Pool.Balances, a.Bytes())
	} else {
		trx.PutN(storage.Pool.Balances, a.Bytes(), amount)
	}
}
