// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/guacd/background"
	"github.com/bitmark-inc/guacd/balance"
	"github.com/bitmark-inc/guacd/controller"
	"github.com/bitmark-inc/guacd/counterparty"
	"github.com/bitmark-inc/guacd/dispatcher"
	"github.com/bitmark-inc/guacd/fault"
	"github.com/bitmark-inc/guacd/identity"
	"github.com/bitmark-inc/guacd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, nil)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// this node's identity
	keyPair, err := identity.LoadKeyPair(theConfiguration.IdentityFile)
	if nil != err {
		log.Criticalf("identity: %q error: %s", theConfiguration.IdentityFile, err)
		exitwithstatus.Message("identity: %q error: %s", theConfiguration.IdentityFile, err)
	}
	self := identity.Identity{
		MeshIP:      net.ParseIP(theConfiguration.MeshIP),
		WgPublicKey: theConfiguration.WgPublicKey,
		EthAddress:  keyPair.Address(),
	}
	log.Infof("identity: %s", self)

	// start a profiling http server
	// this uses the default builtin HTTP handler
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// start the data storage
	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	ownBalance, err := balance.New(storage.Pool.Balance)
	if nil != err {
		log.Criticalf("balance initialise error: %s", err)
		exitwithstatus.Message("balance initialise error: %s", err)
	}
	if b, err := ownBalance.Read(); nil == err {
		log.Infof("balance: %s", b)
	}

	store := counterparty.New(logger.New("counterparty"), storage.Pool.Counterparties, storage.Pool.Channels)

	log.Debugf("%s = %#v", "Dispatcher", theConfiguration.Dispatcher)
	requests, err := dispatcher.New(logger.New("dispatcher"), store, keyPair, theConfiguration.Dispatcher)
	if nil != err {
		log.Criticalf("dispatcher initialise error: %s", err)
		exitwithstatus.Message("dispatcher initialise error: %s", err)
	}

	log.Info("initialise controller")
	err = controller.Initialise(controller.Handles{
		Balance:      ownBalance,
		Store:        store,
		Dispatcher:   requests,
		MaximumTicks: theConfiguration.Controller.MaximumTicks,
	})
	if nil != err {
		log.Criticalf("controller initialise error: %s", err)
		exitwithstatus.Message("controller initialise error: %s", err)
	}
	defer controller.Finalise()

	c := controller.Instance()

	// periodic tick and withdraw
	processes := background.Start(background.Processes{
		controller.NewTicker(c, time.Duration(theConfiguration.Controller.TickInterval)*time.Second),
		controller.NewWithdrawer(c, time.Duration(theConfiguration.Controller.WithdrawInterval)*time.Second),
	}, nil)
	defer processes.Stop()

	// metrics for scraping
	if "" != theConfiguration.Metrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{
			Addr:    theConfiguration.Metrics,
			Handler: mux,
		}
		go func() {
			log.Infof("metrics listener on: %s", theConfiguration.Metrics)
			if err := server.ListenAndServe(); nil != err && http.ErrServerClosed != err {
				log.Errorf("metrics listener error: %s", err)
			}
		}()
		defer server.Close()
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		stop := make(chan struct{})
		defer close(stop)
		go memstats(c.Pending, stop)
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
