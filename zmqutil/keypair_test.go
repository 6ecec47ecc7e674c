// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/zmqutil"
)

func TestMakeKeyPair(t *testing.T) {
	dir, err := ioutil.TempDir("", "zmqutil")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	publicFile := filepath.Join(dir, "publish.public")
	privateFile := filepath.Join(dir, "publish.private")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	require.Nil(t, err, "make key pair")

	public, err := zmqutil.ReadPublicKeyFile(publicFile)
	assert.Nil(t, err, "read public")
	assert.Equal(t, 32, len(public), "public length")

	private, err := zmqutil.ReadPrivateKeyFile(privateFile)
	assert.Nil(t, err, "read private")
	assert.Equal(t, 32, len(private), "private length")

	_, err = zmqutil.ReadPrivateKeyFile(publicFile)
	assert.Equal(t, fault.ErrInvalidPrivateKeyFile, err, "public as private")

	_, err = zmqutil.ReadPublicKeyFile(privateFile)
	assert.Equal(t, fault.ErrInvalidPublicKeyFile, err, "private as public")

	err = zmqutil.MakeKeyPair(publicFile, privateFile)
	assert.Equal(t, fault.ErrKeyFileExists, err, "overwrite")
}

func TestParseKey(t *testing.T) {
	key := strings.Repeat("5a", 32)

	data, private, err := zmqutil.ParseKey("  PUBLIC:" + key + "\n")
	assert.Nil(t, err, "public")
	assert.False(t, private, "public flagged private")
	assert.Equal(t, byte(0x5a), data[31], "public data")

	data, private, err = zmqutil.ParseKey("PRIVATE:" + key)
	assert.Nil(t, err, "private")
	assert.True(t, private, "private not flagged")
	assert.Equal(t, 32, len(data), "private data")

	_, _, err = zmqutil.ParseKey("PRIVATE:" + key[2:])
	assert.Equal(t, fault.ErrInvalidPrivateKeyFile, err, "short private")

	_, _, err = zmqutil.ParseKey("PUBLIC:zz" + key[2:])
	assert.Equal(t, fault.ErrInvalidPublicKeyFile, err, "bad hex")

	_, _, err = zmqutil.ParseKey(key)
	assert.Equal(t, fault.ErrInvalidPublicKeyFile, err, "untagged")
}
