// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrBackendUnavailable    = ProcessError("storage backend unavailable")
	ErrBalanceOverflow       = LengthError("balance overflow")
	ErrCapacityExceeded      = LengthError("owner capacity exceeded")
	ErrCertificateFileExists = ExistsError("certificate file already exists")
	ErrChecksumMismatch      = InvalidError("checksum mismatch")
	ErrCounterOverflow       = LengthError("pet counter overflow")
	ErrDecode                = InvalidError("cannot decode value")
	ErrInsufficientFunds     = InvalidError("insufficient funds")
	ErrInvalidChain          = InvalidError("invalid chain")
	ErrInvalidCommand        = InvalidError("invalid command")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidGender         = InvalidError("invalid gender")
	ErrInvalidIpAddress      = InvalidError("invalid IP address")
	ErrInvalidKeyLength      = InvalidError("invalid key length")
	ErrInvalidKeyType        = InvalidError("invalid key type")
	ErrInvalidPortNumber     = InvalidError("invalid port number")
	ErrInvalidPrivateKeyFile = InvalidError("invalid private key file")
	ErrInvalidPublicKeyFile  = InvalidError("invalid public key file")
	ErrInvalidRandomness     = InvalidError("invalid randomness source")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrKeyFileExists         = ExistsError("key file already exists")
	ErrMissingParameters     = InvalidError("missing parameters")
	ErrNotAvailable          = ProcessError("service not available")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrNotOwnedItem          = NotFoundError("item not in owner list")
	ErrNotPetOwner           = InvalidError("not pet owner")
	ErrNotPetPack            = RecordError("not a packed pet record")
	ErrNotPublicKey          = InvalidError("not a public key")
	ErrPetAlreadyExists      = ExistsError("pet already exists")
	ErrPetNotForSale         = InvalidError("pet not for sale")
	ErrPetNotFound           = NotFoundError("pet not found")
	ErrPriceTooHigh          = InvalidError("price too high")
	ErrRateLimiting          = InvalidError("rate limiting")
	ErrSameGenderParents     = InvalidError("parents have the same gender")
	ErrSelfPurchase          = InvalidError("cannot buy own pet")
	ErrSelfTransfer          = InvalidError("cannot transfer to self")
	ErrShortRandomness       = ProcessError("randomness source returned no data")
	ErrTransactionFinished   = ProcessError("transaction already finished")
	ErrTruncatedRecord       = RecordError("truncated record")
	ErrVersionNotFound       = NotFoundError("version not found")
	ErrWrongNetwork          = InvalidError("account is for the wrong network")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
