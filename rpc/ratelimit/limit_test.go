// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/petd/fault"
	"github.com/bitmark-inc/petd/rpc/ratelimit"
)

func TestLimit(t *testing.T) {
	limiter := rate.NewLimiter(1000, 10)
	for i := 0; i < 20; i += 1 {
		assert.Nil(t, ratelimit.Limit(limiter), "request: %d", i)
	}
}

func TestLimitZeroBurst(t *testing.T) {
	limiter := rate.NewLimiter(10, 0)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.Limit(limiter), "no burst")
}

func TestLimitN(t *testing.T) {
	limiter := rate.NewLimiter(1000, 100)

	assert.Nil(t, ratelimit.LimitN(limiter, 10, 100), "valid count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, 0, 100), "zero count")
	assert.Equal(t, fault.ErrInvalidCount, ratelimit.LimitN(limiter, 101, 100), "large count")
}

func TestLimitNAboveBurst(t *testing.T) {
	limiter := rate.NewLimiter(1000, 5)
	assert.Equal(t, fault.ErrRateLimiting, ratelimit.LimitN(limiter, 6, 100), "count above burst")
}
