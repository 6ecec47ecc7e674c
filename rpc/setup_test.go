// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"math/rand"
	"net/rpc/jsonrpc"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/petd/chain"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/dispatch"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/fixtures"
	"github.com/bitmark-inc/petd/mode"
	"github.com/bitmark-inc/petd/random"
	"github.com/bitmark-inc/petd/rpc"
	"github.com/bitmark-inc/petd/rpc/listeners"
	"github.com/bitmark-inc/petd/rpc/node"
	"github.com/bitmark-inc/petd/storage"
)

func TestInitialiseServeFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := mode.Initialise(chain.Local)
	require.Nil(t, err, "mode")
	defer mode.Finalise()

	dir, err := ioutil.TempDir("", "rpc")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	cer, key := fixtures.Certificate()
	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")
	require.Nil(t, ioutil.WriteFile(certificateFile, []byte(cer), 0600), "write certificate")
	require.Nil(t, ioutil.WriteFile(keyFile, []byte(key), 0600), "write key")

	store, err := storage.OpenStorage(ldb_storage.NewMemStorage(), 0)
	require.Nil(t, err, "storage")
	defer store.Close()
	d := dispatch.New(store, random.NewChain(func() digest.Digest { return store.Latest().Digest }), 0, nil)

	listen := fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
	configuration := listeners.RPCConfiguration{
		MaximumConnections: 2,
		Listen:             []string{listen},
		Certificate:        certificateFile,
		PrivateKey:         keyFile,
	}

	err = rpc.Initialise(&configuration, "test", d)
	require.Nil(t, err, "initialise")

	err = rpc.Initialise(&configuration, "test", d)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second initialise")

	conn, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	require.Nil(t, err, "dial")
	client := jsonrpc.NewClient(conn)

	var info node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &info)
	assert.Nil(t, err, "info")
	assert.Equal(t, chain.Local, info.Chain, "chain")
	assert.Equal(t, "test", info.Version, "version")
	assert.Equal(t, uint64(1), info.RPCs, "connections")
	client.Close()

	err = rpc.Finalise()
	assert.Nil(t, err, "finalise")

	err = rpc.Finalise()
	assert.Equal(t, fault.ErrNotInitialised, err, "second finalise")
}

func TestInitialiseDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := rpc.Initialise(&listeners.RPCConfiguration{}, "test", nil)
	require.Nil(t, err, "initialise")

	err = rpc.Finalise()
	assert.Nil(t, err, "finalise")
}

func TestInitialiseMissingCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := listeners.RPCConfiguration{
		MaximumConnections: 2,
		Listen:             []string{"127.0.0.1:2130"},
		Certificate:        "/nonexistent/rpc.crt",
		PrivateKey:         "/nonexistent/rpc.key",
	}
	err := rpc.Initialise(&configuration, "test", nil)
	assert.NotNil(t, err, "missing certificate accepted")
}
