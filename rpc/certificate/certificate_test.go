// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/fixtures"
	"github.com/bitmark-inc/petd/rpc/certificate"
)

func TestGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key := fixtures.Certificate()

	tlsConfig, fingerprint, err := certificate.Get(
		logger.New(fixtures.LogCategory),
		"test",
		cer,
		key,
	)
	require.Nil(t, err, "wrong Get")

	pair, _ := tls.X509KeyPair([]byte(cer), []byte(key))

	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGetMismatch(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, _ := fixtures.Certificate()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, "not a key")
	assert.NotNil(t, err, "bad key accepted")
}

func TestMakeSelfSignedAndLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "certificate")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certificateFile := filepath.Join(dir, "rpc.crt")
	keyFile := filepath.Join(dir, "rpc.key")

	err = certificate.MakeSelfSigned("rpc", certificateFile, keyFile, false, nil)
	require.Nil(t, err, "make")

	err = certificate.MakeSelfSigned("rpc", certificateFile, keyFile, false, nil)
	assert.Equal(t, fault.ErrCertificateFileExists, err, "overwrite")

	log := logger.New(fixtures.LogCategory)
	tlsConfig, _, err := certificate.Load(log, "rpc", certificateFile, keyFile)
	assert.Nil(t, err, "load")
	assert.Equal(t, 1, len(tlsConfig.Certificates), "certificate count")

	_, _, err = certificate.Load(log, "rpc", filepath.Join(dir, "missing.crt"), keyFile)
	assert.NotNil(t, err, "missing certificate")
}
