// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigurationSample(t *testing.T) {
	dir, err := ioutil.TempDir("", "guacd")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	sample, err := ioutil.ReadFile("guacd.conf.sample")
	assert.Nil(t, err, "read sample error")

	fileName := filepath.Join(dir, "guacd.conf")
	err = ioutil.WriteFile(fileName, sample, 0600)
	assert.Nil(t, err, "write error")

	c, err := getConfiguration(fileName, nil)
	assert.Nil(t, err, "configuration error")

	assert.Equal(t, filepath.Join(dir, "guacd.identity"), c.IdentityFile, "identity not made absolute")
	assert.Equal(t, filepath.Join(dir, "data", "guacd.leveldb"), c.Database.Name, "database not placed in directory")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory not made absolute")
	assert.Equal(t, 5, c.Controller.TickInterval, "wrong tick interval")
	assert.Equal(t, int64(32), c.Controller.MaximumTicks, "wrong maximum ticks")
	assert.Equal(t, "1000000000000000000", c.Dispatcher.Deposit, "wrong deposit")
	assert.Equal(t, "info", c.Logging.Levels["controller"], "wrong log level")

	_, err = os.Stat(filepath.Join(dir, "data"))
	assert.Nil(t, err, "database directory not created")
}

func TestGetConfigurationRejectsBadIntervals(t *testing.T) {
	dir, err := ioutil.TempDir("", "guacd")
	assert.Nil(t, err, "temp dir error")
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "guacd.conf")
	err = ioutil.WriteFile(fileName, []byte(`return { data_directory = ".", controller = { tick_interval = 0 } }`), 0600)
	assert.Nil(t, err, "write error")

	_, err = getConfiguration(fileName, nil)
	assert.NotNil(t, err, "zero tick interval accepted")
}
