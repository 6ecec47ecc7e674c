// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - setup and handle all of the incoming JSON RPC requests
// from clients requiring petd services
//
// standard golang RPC services can be used on the client side to
// access these services:
//
//   Pets.Create  Pets.SetPrice  Pets.Transfer  Pets.Buy  Pets.Breed
//   Pets.Get     Pets.Count
//   Owner.Pets   Owner.Balance
//   Node.Info    Node.Versions
//
// queries accept an optional "at" version digest and default to the
// latest committed version
package rpc
