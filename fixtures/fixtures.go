// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared setup for package tests
package fixtures

import (
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/petd/account"
)

const (
	testingDirName = "testing"

	// LogCategory - tag for loggers created by tests
	LogCategory = "testing"
)

// SetupTestLogger - start logging into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// Account - deterministic test network account derived from a name
func Account(name string) *account.Account {
	seed := sha3.Sum256([]byte(name))
	privateKey := ed25519.NewKeyFromSeed(seed[:])
	publicKey := privateKey.Public().(ed25519.PublicKey)

	a, err := account.New(publicKey, true)
	if nil != err {
		panic(err)
	}
	return a
}

// well known accounts
var (
	Alice = Account("alice")
	Bob   = Account("bob")
	Carol = Account("carol")
)

var certificate struct {
	sync.Once
	cert string
	key  string
}

// Certificate - PEM certificate and private key for TLS tests
//
// generated once per test binary
func Certificate() (string, string) {
	certificate.Do(func() {
		validUntil := time.Now().Add(24 * time.Hour)
		cert, key, err := certgen.NewTLSCertPair("petd test certificate", validUntil, false, []string{"127.0.0.1"})
		if nil != err {
			panic(err)
		}
		certificate.cert = string(cert)
		certificate.key = string(key)
	})
	return certificate.cert, certificate.key
}
