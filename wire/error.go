// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// ErrorKind identifies a kind of error.  It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrNonCanonicalVarInt is returned when a variable length integer is
	// not canonically encoded.
	ErrNonCanonicalVarInt = ErrorKind("ErrNonCanonicalVarInt")

	// ErrVarBytesTooLong is returned when a variable-length byte slice
	// exceeds the maximum message size allowed.
	ErrVarBytesTooLong = ErrorKind("ErrVarBytesTooLong")

	// ErrPayloadTooLarge is returned when a payload exceeds the maximum
	// payload size allowed.
	ErrPayloadTooLarge = ErrorKind("ErrPayloadTooLarge")

	// ErrTooManyTxs is returned when the number of transactions exceed the
	// maximum allowed.
	ErrTooManyTxs = ErrorKind("ErrTooManyTxs")

	// ErrTooManyProofs is returned when the number of merkle proof hashes
	// exceeds the maximum allowed.
	ErrTooManyProofs = ErrorKind("ErrTooManyProofs")

	// ErrTooManyFlagBytes is returned when the number of merkle proof flag
	// bytes exceeds the maximum allowed.
	ErrTooManyFlagBytes = ErrorKind("ErrTooManyFlagBytes")

	// ErrTooManyShortIDs is returned when the number of short transaction
	// ids in a compact block exceeds the maximum allowed.
	ErrTooManyShortIDs = ErrorKind("ErrTooManyShortIDs")

	// ErrTooManyPrefilled is returned when the number of prefilled
	// transactions in a compact block exceeds the maximum allowed.
	ErrTooManyPrefilled = ErrorKind("ErrTooManyPrefilled")

	// ErrIndexOverflow is returned when a differentially encoded
	// transaction index overflows the range of valid indexes.
	ErrIndexOverflow = ErrorKind("ErrIndexOverflow")

	// ErrMismatchedWitnessCount is returned when a transaction has unequal
	// witness and txin quantities.
	ErrMismatchedWitnessCount = ErrorKind("ErrMismatchedWitnessCount")

	// ErrInvalidMsg is returned for an invalid message structure.
	ErrInvalidMsg = ErrorKind("ErrInvalidMsg")

	// ErrUnknownCmd is returned when a message header contains a command
	// this package does not recognize.
	ErrUnknownCmd = ErrorKind("ErrUnknownCmd")

	// ErrCmdTooLong is returned when a command exceeds the maximum command
	// size.
	ErrCmdTooLong = ErrorKind("ErrCmdTooLong")

	// ErrMalformedCmd is returned when a message header command contains
	// characters outside of the strict ASCII range.
	ErrMalformedCmd = ErrorKind("ErrMalformedCmd")

	// ErrWrongNetwork is returned when a message intended for a different
	// network is received.
	ErrWrongNetwork = ErrorKind("ErrWrongNetwork")

	// ErrPayloadChecksum is returned when a message payload does not hash
	// to the checksum declared in the message header.
	ErrPayloadChecksum = ErrorKind("ErrPayloadChecksum")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// MessageError identifies an error related to wire messages.  It has
// full support for errors.Is and errors.As, so the caller can
// ascertain the specific reason for the error by checking the
// underlying error.
type MessageError struct {
	Func        string
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e MessageError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e MessageError) Unwrap() error {
	return e.Err
}

// messageError creates a MessageError given a set of arguments.
func messageError(fn string, kind ErrorKind, desc string) MessageError {
	return MessageError{Func: fn, Err: kind, Description: desc}
}
