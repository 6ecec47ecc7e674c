// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/random"
)

func TestChain(t *testing.T) {
	seed := digest.NewDigest([]byte("version"))
	seedFunc := func() digest.Digest { return seed }

	a := random.NewChain(seedFunc)
	b := random.NewChain(seedFunc)

	first, err := a.Random([]byte("gender"))
	require.NoError(t, err, "first")
	assert.Equal(t, digest.Length, len(first), "length")

	second, err := a.Random([]byte("gender"))
	require.NoError(t, err, "second")
	assert.NotEqual(t, first, second, "nonce not applied")

	// same seed and nonce sequence gives the same bytes
	again, err := b.Random([]byte("gender"))
	require.NoError(t, err, "again")
	assert.Equal(t, first, again, "not deterministic")

	other, err := b.Random([]byte("other"))
	require.NoError(t, err, "other subject")
	assert.NotEqual(t, second, other, "subject ignored")
}

func TestNew(t *testing.T) {
	seedFunc := func() digest.Digest { return digest.Digest{} }

	s, err := random.New(random.ChainSource, seedFunc)
	assert.NoError(t, err, "chain")
	assert.IsType(t, &random.Chain{}, s, "chain type")

	s, err = random.New(random.SystemSource, nil)
	require.NoError(t, err, "system")
	buffer, err := s.Random([]byte("gender"))
	assert.NoError(t, err, "system random")
	assert.Equal(t, digest.Length, len(buffer), "system length")

	_, err = random.New(random.ChainSource, nil)
	assert.Equal(t, fault.ErrInvalidRandomness, err, "chain without seed")

	_, err = random.New("dice", seedFunc)
	assert.Equal(t, fault.ErrInvalidRandomness, err, "unknown source")
}
