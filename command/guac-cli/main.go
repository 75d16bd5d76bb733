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
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

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
	app.Name = "guac-cli"
	app.Usage = "identity and channel database tool for guacd"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate an identity key pair",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: " save the key pair to `FILE`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " derive from 32 byte hex `SEED`",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "address",
			Usage:     "display the address of an identity",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "identity, i",
					Value: "",
					Usage: "+identity key `FILE`",
				},
				cli.StringFlag{
					Name:  "public-key, k",
					Value: "",
					Usage: "+hex `PUBLICKEY`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "wrap",
			Usage:     "tag a JSON payload with an identity's address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "identity, i",
					Value: "",
					Usage: "*identity key `FILE`",
				},
				cli.StringFlag{
					Name:  "data, d",
					Value: "",
					Usage: "*payload `JSON`",
				},
			},
			Action: runWrap,
		},
		{
			Name:      "register",
			Usage:     "register a counterparty in a stopped node's database",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "database, D",
					Value: "",
					Usage: "*leveldb `DIRECTORY`",
				},
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*counterparty `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "url, u",
					Value: "",
					Usage: "*counterparty `URL`",
				},
			},
			Action: runRegister,
		},
		{
			Name:      "list",
			Usage:     "list counterparties and channel states",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "database, D",
					Value: "",
					Usage: "*leveldb `DIRECTORY`",
				},
			},
			Action: runList,
		},
		{
			Name:   "version",
			Usage:  "display program version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
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
