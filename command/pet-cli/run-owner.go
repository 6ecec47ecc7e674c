// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/petd/command/pet-cli/rpccalls"
)

func runOwned(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFlag(c, "owner")
	if nil != err {
		return err
	}

	at, err := atFlag(c)
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count < 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "start: %d\n", c.Uint64("start"))
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetOwned(&rpccalls.OwnedData{
		Owner: owner,
		Start: c.Uint64("start"),
		Count: count,
		At:    at,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFlag(c, "owner")
	if nil != err {
		return err
	}

	at, err := atFlag(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetBalance(owner, at)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
