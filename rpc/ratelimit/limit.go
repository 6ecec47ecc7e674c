// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - throttling shared by the RPC services
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/petd/fault"
)

// Limit - charge one token, sleeping until it is available
func Limit(limiter *rate.Limiter) error {
	return take(limiter, 1)
}

// LimitN - charge one token per requested item
//
// a count outside 1..maximumCount still costs one token, then fails
// with ErrInvalidCount
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count < 1 || count > maximumCount {
		if err := take(limiter, 1); nil != err {
			return err
		}
		return fault.ErrInvalidCount
	}
	return take(limiter, count)
}

// n larger than the burst can never be satisfied
func take(limiter *rate.Limiter, n int) error {
	r := limiter.ReserveN(time.Now(), n)
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}
