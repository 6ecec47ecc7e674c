// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/background"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/messagebus"
	"github.com/bitmark-inc/petd/zmqutil"
)

// Configuration - publishing section of the configuration file
//
// the keys are optional, when both are given the socket uses CURVE
type Configuration struct {
	Broadcast  []string `gluamapper:"broadcast" json:"broadcast"`
	PrivateKey string   `gluamapper:"private_key" json:"private_key"`
	PublicKey  string   `gluamapper:"public_key" json:"public_key"`
}

// globals for background process
type publishData struct {
	sync.RWMutex

	log *logger.L

	brdc broadcaster

	// nil when publishing is disabled
	background *background.T

	// set once during initialise
	initialised bool
}

// global data
var globalData publishData

// Initialise - bind the broadcast sockets and start draining the bus
func Initialise(configuration *Configuration, bus *messagebus.Bus) error {

	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("publish")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Broadcast) {
		log.Info("no broadcast addresses: publishing disabled")
		globalData.background = nil
		globalData.initialised = true
		return nil
	}

	keys, err := readKeys(log, configuration)
	if nil != err {
		return err
	}

	if err := globalData.brdc.initialise(log, keys, configuration.Broadcast, bus); nil != err {
		return err
	}

	globalData.initialised = true

	log.Info("start background…")

	processes := background.Processes{
		&globalData.brdc,
	}
	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise - stop the broadcaster and close its sockets
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.background {
		globalData.background.Stop()
		globalData.background = nil
	}

	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func readKeys(log *logger.L, configuration *Configuration) (*zmqutil.Keys, error) {
	if "" == configuration.PrivateKey && "" == configuration.PublicKey {
		return nil, nil
	}
	if "" == configuration.PrivateKey || "" == configuration.PublicKey {
		log.Error("publishing needs both private_key and public_key or neither")
		return nil, fault.ErrMissingParameters
	}

	privateKey, err := zmqutil.ReadPrivateKeyFile(configuration.PrivateKey)
	if nil != err {
		log.Errorf("read private key file: %q  error: %s", configuration.PrivateKey, err)
		return nil, err
	}
	publicKey, err := zmqutil.ReadPublicKeyFile(configuration.PublicKey)
	if nil != err {
		log.Errorf("read public key file: %q  error: %s", configuration.PublicKey, err)
		return nil, err
	}
	log.Tracef("public key: %x", publicKey)

	if err := zmqutil.StartAuthentication(); nil != err {
		log.Errorf("start authentication error: %s", err)
		return nil, err
	}

	return &zmqutil.Keys{
		Private: privateKey,
		Public:  publicKey,
	}, nil
}
