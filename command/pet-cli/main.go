// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2130"

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "pet-cli"
	app.Usage = "client for the petd JSON RPC interface"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	atOption := cli.StringFlag{
		Name:  "at, a",
		Value: "",
		Usage: " query at version `DIGEST` [default latest]",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "testing",
			Usage: " accounts belong to `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " petd RPC `HOST:PORT`",
			EnvVar: "PET_CLI_CONNECT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new account key pair",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "create",
			Usage:     "mint a new pet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*pet name `STRING`",
				},
				cli.StringFlag{
					Name:  "gender, g",
					Value: "",
					Usage: " `GENDER` [male|female] [default random]",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "set-price",
			Usage:     "offer a pet for sale or withdraw it",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*pet `ID`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "+asking `PRICE`",
				},
				cli.BoolFlag{
					Name:  "withdraw, w",
					Usage: "+no longer for sale",
				},
			},
			Action: runSetPrice,
		},
		{
			Name:      "transfer",
			Usage:     "give a pet to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*current owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*new owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*pet `ID`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "buy",
			Usage:     "buy a pet that is for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "buyer, b",
					Value: "",
					Usage: "*buyer `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*pet `ID`",
				},
				cli.Uint64Flag{
					Name:  "max-price, m",
					Value: 0,
					Usage: "*highest acceptable `PRICE`",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "breed",
			Usage:     "mint a child of two owned pets",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner of both parents `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "parent-one, one",
					Value: "",
					Usage: "*first parent `ID`",
				},
				cli.StringFlag{
					Name:  "parent-two, two",
					Value: "",
					Usage: "*second parent `ID`",
				},
			},
			Action: runBreed,
		},
		{
			Name:      "get",
			Usage:     "show a pet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*pet `ID`",
				},
				atOption,
			},
			Action: runGet,
		},
		{
			Name:      "count",
			Usage:     "number of pets",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				atOption,
			},
			Action: runCount,
		},
		{
			Name:      "owned",
			Usage:     "list the pets of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " start of page `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count",
					Value: 0,
					Usage: " page size `COUNT` [default maximum]",
				},
				atOption,
			},
			Action: runOwned,
		},
		{
			Name:      "balance",
			Usage:     "show the balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				atOption,
			},
			Action: runBalance,
		},
		{
			Name:      "info",
			Usage:     "display petd info",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action:    runInfo,
		},
		{
			Name:      "versions",
			Usage:     "list the versions that can be queried",
			ArgsUsage: " ",
			Flags:     []cli.Flag{},
			Action:    runVersions,
		},
		{
			Name:      "version",
			Usage:     "display pet-cli version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	// set up a global metadata for all commands
	app.Before = func(c *cli.Context) error {

		testnet := true
		network := c.GlobalString("network")
		switch network {
		case "live":
			testnet = false
		case "testing", "test", "local":
		default:
			return fmt.Errorf("network: %q can only be live/testing/local", network)
		}

		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			testnet: testnet,
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
