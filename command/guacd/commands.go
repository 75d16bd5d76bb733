// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/guacd/configuration"
	"github.com/bitmark-inc/guacd/identity"
)

const (
	identityFilename = "guacd.identity"
)

// setup command handler
//
// commands that run to create key files these commands cannot
// access any internal database or states or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-identity", "id":
		fileName := getFilenameWithDirectory(arguments, identityFilename)

		if configuration.EnsureFileExists(fileName) {
			fmt.Printf("generate identity: %q error: file already exists\n", fileName)
			exitwithstatus.Exit(1)
		}

		keyPair, err := identity.NewKeyPair()
		if nil != err {
			fmt.Printf("generate identity: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}
		if err := keyPair.Save(fileName); nil != err {
			_ = os.Remove(fileName)
			fmt.Printf("generate identity: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}

		fmt.Printf("generated identity: %q  address: %s\n", fileName, keyPair.Address())

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "address":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-identity [DIR]         (id)     - create key pair in: %q\n", "DIR/"+identityFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  address                             - display this node's address\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "address":
		keyPair, err := identity.LoadKeyPair(options.IdentityFile)
		if nil != err {
			exitwithstatus.Message("identity: %q error: %s", options.IdentityFile, err)
		}
		fmt.Printf("%s\n", keyPair.Address())

	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to normal start
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the file name, prefixed by the directory argument if present
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) > 0 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}
