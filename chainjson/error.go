// Copyright (c) 2014 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainjson

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidHash indicates a hash field does not contain a valid
	// reversed-hex hash string.
	ErrInvalidHash = ErrorKind("ErrInvalidHash")

	// ErrInvalidHex indicates a field that carries binary data as a hex
	// string does not contain valid hex.
	ErrInvalidHex = ErrorKind("ErrInvalidHex")

	// ErrMalformed indicates the structure fails a consistency requirement
	// of the binary encoding it converts to.
	ErrMalformed = ErrorKind("ErrMalformed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error converting between the JSON interchange structs
// and the binary encodings.  It has full support for errors.Is and errors.As,
// so the caller can ascertain the specific reason for the error by checking
// the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
