// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - process wide daemon state; RPC calls are only
// served while the daemon is Normal
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/bitmark-inc/petd/chain"
	"github.com/bitmark-inc/petd/fault"
)

// Mode - where the daemon is in its life cycle
type Mode int

// life cycle: Starting while storage and genesis are prepared,
// Normal while serving, Stopped after a signal
const (
	Stopped Mode = iota
	Starting
	Normal
	maximum
)

var globalData struct {
	sync.RWMutex
	log     *logger.L
	mode    Mode
	testing bool
	chain   string

	initialised bool
}

// Initialise - fix the chain for this run and enter Starting
func Initialise(chainName string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("mode")
	if !chain.Valid(chainName) {
		log.Criticalf("unknown chain: %q", chainName)
		return fault.ErrInvalidChain
	}

	globalData.log = log
	globalData.chain = chainName
	globalData.testing = chain.IsTesting(chainName)
	globalData.mode = Starting
	globalData.initialised = true

	log.Infof("chain: %s  testing: %t", chainName, globalData.testing)
	return nil
}

// Finalise - enter Stopped and allow a later Initialise
func Finalise() error {
	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	Set(Stopped)

	globalData.Lock()
	globalData.initialised = false
	globalData.Unlock()

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// Set - move to another state, out of range values are logged and ignored
func Set(mode Mode) {
	if mode < Stopped || mode >= maximum {
		globalData.log.Errorf("ignore invalid mode: %d", mode)
		return
	}

	globalData.Lock()
	previous := globalData.mode
	globalData.mode = mode
	globalData.Unlock()

	globalData.log.Infof("%s → %s", previous, mode)
}

// Is - true when the daemon is in the given state
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsNot - negation of Is
func IsNot(mode Mode) bool {
	return !Is(mode)
}

// IsTesting - true on the testing and local chains, where every
// account must carry the test network flag
func IsTesting() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.testing
}

// ChainName - chain given to Initialise
func ChainName() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.chain
}

// String - the current state
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "Stopped"
	case Starting:
		return "Starting"
	case Normal:
		return "Normal"
	default:
		return "*Unknown*"
	}
}
