// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/petd/chain"
	"github.com/bitmark-inc/petd/counter"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fixtures"
	"github.com/bitmark-inc/petd/mode"
	"github.com/bitmark-inc/petd/rpc/mocks"
	"github.com/bitmark-inc/petd/rpc/node"
	"github.com/bitmark-inc/petd/storage"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	err := mode.Initialise(chain.Testing)
	assert.Nil(t, err, "mode initialise")
	defer mode.Finalise()

	s := mocks.NewMockStatus(ctl)

	now := time.Now()
	c := counter.Counter(5)

	n := node.New(
		logger.New(fixtures.LogCategory),
		now,
		"100",
		s,
		mode.ChainName,
		mode.String,
		&c,
	)

	latest := storage.Version{
		Height: 12,
		Digest: digest.NewDigest([]byte("twelve")),
	}
	s.EXPECT().Count((*digest.Digest)(nil)).Return(uint64(7), latest, nil).Times(1)
	s.EXPECT().MaximumOwned().Return(uint64(9999)).Times(1)

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, mode.Starting.String(), reply.Mode, "wrong mode")
	assert.Equal(t, latest, reply.Latest, "wrong latest")
	assert.Equal(t, uint64(7), reply.Count, "wrong count")
	assert.Equal(t, uint64(9999), reply.MaximumOwned, "wrong maximum")
	assert.Equal(t, c.Uint64(), reply.RPCs, "wrong connection count")
	assert.Equal(t, n.Version, reply.Version, "wrong version")
	assert.NotEqual(t, "", reply.Uptime, "missing uptime")
}

func TestNodeVersions(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := mocks.NewMockStatus(ctl)
	c := counter.Counter(0)
	n := node.New(logger.New(fixtures.LogCategory), time.Now(), "1", s, mode.ChainName, mode.String, &c)

	versions := []storage.Version{
		{Height: 1, Digest: digest.NewDigest([]byte("one"))},
		{Height: 2, Digest: digest.NewDigest([]byte("two"))},
	}
	s.EXPECT().Versions().Return(versions).Times(1)

	var reply node.VersionsReply
	err := n.Versions(&node.VersionsArguments{}, &reply)
	assert.Nil(t, err, "wrong Versions")
	assert.Equal(t, versions, reply.Versions, "wrong versions")
}
