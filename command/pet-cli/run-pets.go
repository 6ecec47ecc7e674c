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

func runCreate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFlag(c, "owner")
	if nil != err {
		return err
	}

	name := c.String("name")
	if "" == name {
		return fmt.Errorf("name is required")
	}

	gender, err := genderFlag(c)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "name: %q\n", name)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Create(&rpccalls.CreateData{
		Owner:  owner,
		Name:   name,
		Gender: gender,
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runSetPrice(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFlag(c, "owner")
	if nil != err {
		return err
	}

	id, err := digestFlag(c, "id")
	if nil != err {
		return err
	}

	price, err := priceFlag(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.SetPrice(owner, id, price)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFlag(c, "owner")
	if nil != err {
		return err
	}

	receiver, err := accountFlag(c, "receiver")
	if nil != err {
		return err
	}

	id, err := digestFlag(c, "id")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Transfer(owner, receiver, id)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBuy(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	buyer, err := accountFlag(c, "buyer")
	if nil != err {
		return err
	}

	id, err := digestFlag(c, "id")
	if nil != err {
		return err
	}

	if !c.IsSet("max-price") {
		return fmt.Errorf("max-price is required")
	}
	maxPrice := c.Uint64("max-price")

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Buy(buyer, id, maxPrice)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runBreed(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := accountFlag(c, "owner")
	if nil != err {
		return err
	}

	parentOne, err := digestFlag(c, "parent-one")
	if nil != err {
		return err
	}

	parentTwo, err := digestFlag(c, "parent-two")
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Breed(owner, parentOne, parentTwo)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := digestFlag(c, "id")
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

	response, err := client.Get(id, at)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runCount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	at, err := atFlag(c)
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Count(at)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}
