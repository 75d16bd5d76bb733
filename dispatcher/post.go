// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/bitmark-inc/guacd/fault"
)

// maximum reply accepted from a counterparty
const maximumReplySize = 64 * 1024

// send a JSON request and decode the JSON reply
func postJSON(ctx context.Context, client *http.Client, url string, request interface{}, reply interface{}) error {
	body, err := json.Marshal(request)
	if nil != err {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if nil != err {
		return fmt.Errorf("%w: %v", fault.NetworkFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := client.Do(req)
	if nil != err {
		return fmt.Errorf("%w: %v", fault.NetworkFailure, err)
	}
	defer response.Body.Close()

	data, err := ioutil.ReadAll(http.MaxBytesReader(nil, response.Body, maximumReplySize))
	if nil != err {
		return fmt.Errorf("%w: %v", fault.NetworkFailure, err)
	}

	if http.StatusOK != response.StatusCode {
		return fmt.Errorf("%w: %d %q on: %q", fault.UnexpectedStatus, response.StatusCode, response.Status, url)
	}
	if err := json.Unmarshal(data, reply); nil != err {
		return fmt.Errorf("%w: invalid reply from: %q: %v", fault.NetworkFailure, url, err)
	}
	return nil
}
