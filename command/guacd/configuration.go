// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/guacd/configuration"
	"github.com/bitmark-inc/guacd/dispatcher"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultIdentityFile = "guacd.identity"

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "guacd.leveldb"

	defaultTickInterval     = 5  // seconds
	defaultWithdrawInterval = 60 // seconds
	defaultMaximumTicks     = 32

	defaultLogDirectory = "log"
	defaultLogFile      = "guacd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type ControllerType struct {
	TickInterval     int   `gluamapper:"tick_interval" json:"tick_interval"`         // seconds
	WithdrawInterval int   `gluamapper:"withdraw_interval" json:"withdraw_interval"` // seconds
	MaximumTicks     int64 `gluamapper:"maximum_ticks" json:"maximum_ticks"`
}

type Configuration struct {
	DataDirectory string       `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string       `gluamapper:"pidfile" json:"pidfile"`
	IdentityFile  string       `gluamapper:"identity_file" json:"identity_file"`
	MeshIP        string       `gluamapper:"mesh_ip" json:"mesh_ip"`
	WgPublicKey   string       `gluamapper:"wg_public_key" json:"wg_public_key"`
	Database      DatabaseType `gluamapper:"database" json:"database"`
	Metrics       string       `gluamapper:"metrics" json:"metrics"` // listen address, blank to disable
	ProfileHTTP   string       `gluamapper:"profile_http" json:"profile_http"`

	Controller ControllerType           `gluamapper:"controller" json:"controller"`
	Dispatcher dispatcher.Configuration `gluamapper:"dispatcher" json:"dispatcher"`
	Logging    logger.Configuration     `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		IdentityFile:  defaultIdentityFile,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Controller: ControllerType{
			TickInterval:     defaultTickInterval,
			WithdrawInterval: defaultWithdrawInterval,
			MaximumTicks:     defaultMaximumTicks,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if options.Controller.TickInterval <= 0 || options.Controller.WithdrawInterval <= 0 {
		return nil, fmt.Errorf("Intervals: tick: %d and withdraw: %d must be positive", options.Controller.TickInterval, options.Controller.WithdrawInterval)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.IdentityFile,
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = configuration.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = configuration.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
