// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/counter"
	"github.com/bitmark-inc/petd/dispatch"
	"github.com/bitmark-inc/petd/mode"
	"github.com/bitmark-inc/petd/rpc/node"
	"github.com/bitmark-inc/petd/rpc/owner"
	"github.com/bitmark-inc/petd/rpc/pets"
)

// Create - an RPC server with the Pets, Owner and Node services
// registered
func Create(log *logger.L, version string, d *dispatch.Dispatcher, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(pets.New(log, d, mode.Is, mode.IsTesting))
	_ = server.Register(owner.New(log, d, mode.IsTesting))
	_ = server.Register(node.New(log, start, version, d, mode.ChainName, mode.String, rpcCount))

	return server
}
