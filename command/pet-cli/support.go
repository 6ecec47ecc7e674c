// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/petd/account"
	"github.com/bitmark-inc/petd/command/pet-cli/rpccalls"
	"github.com/bitmark-inc/petd/digest"
	"github.com/bitmark-inc/petd/pet"
)

// decode a required base58 account flag
func accountFlag(c *cli.Context, name string) (*account.Account, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return nil, fmt.Errorf("%s account is required", name)
	}
	a, err := account.FromBase58(s)
	if nil != err {
		return nil, fmt.Errorf("%s account: %q  error: %s", name, s, err)
	}
	return a, nil
}

// decode a required hex digest flag
func digestFlag(c *cli.Context, name string) (digest.Digest, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return digest.Digest{}, fmt.Errorf("%s is required", name)
	}
	d, err := digest.FromString(s)
	if nil != err {
		return digest.Digest{}, fmt.Errorf("%s: %q  error: %s", name, s, err)
	}
	return d, nil
}

// decode the optional version token, nil means latest
func atFlag(c *cli.Context) (*digest.Digest, error) {
	if "" == strings.TrimSpace(c.String("at")) {
		return nil, nil
	}
	d, err := digestFlag(c, "at")
	if nil != err {
		return nil, err
	}
	return &d, nil
}

// decode the optional gender, nil means random
func genderFlag(c *cli.Context) (*pet.Gender, error) {
	s := strings.ToLower(strings.TrimSpace(c.String("gender")))
	if "" == s {
		return nil, nil
	}
	var g pet.Gender
	if err := g.UnmarshalText([]byte(s)); nil != err {
		return nil, fmt.Errorf("gender: %q  error: %s", s, err)
	}
	return &g, nil
}

// decode the price, nil when withdrawing
func priceFlag(c *cli.Context) (*uint64, error) {
	s := strings.TrimSpace(c.String("price"))
	withdraw := c.Bool("withdraw")

	switch {
	case withdraw && "" != s:
		return nil, fmt.Errorf("only one of price or withdraw can be given")
	case withdraw:
		return nil, nil
	case "" == s:
		return nil, fmt.Errorf("price or withdraw is required")
	}

	price, err := strconv.ParseUint(s, 10, 64)
	if nil != err {
		return nil, fmt.Errorf("price: %q  error: %s", s, err)
	}
	return &price, nil
}

// connect to the configured node
func connect(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}
