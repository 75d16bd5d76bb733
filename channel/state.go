// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import (
	"fmt"
	"strings"
)

// State - lifecycle position of a channel
type State int

// the lifecycle: New → Proposed → Open → Closed
// a rejected proposal returns to New
const (
	StateNew      State = iota
	StateProposed State = iota
	StateOpen     State = iota
	StateClosed   State = iota
)

var stateNames = []string{"new", "proposed", "open", "closed"}

func (s State) String() string {
	if s < StateNew || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText - state name
func (s State) MarshalText() ([]byte, error) {
	if s < StateNew || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("invalid channel state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText - convert a state name
func (s *State) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range stateNames {
		if n == name {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("invalid channel state: %q", name)
}
