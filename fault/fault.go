// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NetworkError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyCommitted           = ExistsError("transaction already committed")
	AlreadyInitialised         = ExistsError("already initialised")
	ChannelRejected            = InvalidError("channel rejected the operation")
	InsufficientBalance        = InvalidError("insufficient balance")
	InsufficientChannelBalance = InvalidError("insufficient channel balance")
	InvalidAddress             = InvalidError("invalid address")
	InvalidAmount              = InvalidError("invalid amount")
	InvalidConfiguration       = InvalidError("configuration must return a table")
	InvalidKeyLength           = InvalidError("invalid key length")
	InvalidLoggerChannel       = InvalidError("invalid logger channel")
	InvalidPool                = InvalidError("invalid storage pool")
	InvalidStructPointer       = InvalidError("invalid struct pointer")
	InvalidURL                 = InvalidError("invalid counterparty url")
	MissingConfigFile          = NotFoundError("configuration file is required")
	MissingParameters          = InvalidError("missing parameters")
	NetworkFailure             = NetworkError("network request failed")
	NotInitialised             = ProcessError("not initialised")
	ProposalRejected           = NetworkError("counterparty rejected channel proposal")
	RateLimiting               = NetworkError("rate limiting")
	StoreUnavailable           = ProcessError("store unavailable")
	UnknownCounterparty        = NotFoundError("unknown counterparty")
	UnexpectedStatus           = NetworkError("unexpected response status")
	WrongChannelState          = InvalidError("wrong channel state")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NetworkError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNetwork(e error) bool  { var x NetworkError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
