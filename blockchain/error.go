// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "errors"

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific RuleError.
const (
	// ErrNoTransactions indicates the block does not have at least one
	// transaction.  A valid block must have at least the coinbase
	// transaction.
	ErrNoTransactions = ErrorKind("ErrNoTransactions")

	// ErrBlockTooBig indicates the serialized block size exceeds the
	// maximum allowed size.
	ErrBlockTooBig = ErrorKind("ErrBlockTooBig")

	// ErrFirstTxNotCoinbase indicates the first transaction in a block is
	// not a coinbase transaction.
	ErrFirstTxNotCoinbase = ErrorKind("ErrFirstTxNotCoinbase")

	// ErrMultipleCoinbases indicates a block contains more than one
	// coinbase transaction.
	ErrMultipleCoinbases = ErrorKind("ErrMultipleCoinbases")

	// ErrDuplicateTx indicates a block contains two transactions with the
	// same hash.  This guards against the merkle tree duplicate-subtree
	// malleability.
	ErrDuplicateTx = ErrorKind("ErrDuplicateTx")

	// ErrBadMerkleRoot indicates the calculated merkle root does not match
	// the expected value in the block header.
	ErrBadMerkleRoot = ErrorKind("ErrBadMerkleRoot")

	// ErrTooManySigOps indicates the total number of signature operations
	// for a block exceeds the maximum allowed for its serialized size.
	ErrTooManySigOps = ErrorKind("ErrTooManySigOps")

	// ErrUnexpectedDifficulty indicates specified bits do not align with
	// the expected value either because it doesn't match the calculated
	// value based on difficulty rules or it is out of the valid range.
	ErrUnexpectedDifficulty = ErrorKind("ErrUnexpectedDifficulty")

	// ErrHighHash indicates the block does not hash to a value which is
	// lower than the required target difficultly.
	ErrHighHash = ErrorKind("ErrHighHash")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of a block failed due to one of the many validation rules.  The
// caller can use type assertions and errors.Is to determine if a failure was
// specifically due to a rule violation and access the ErrorKind field to
// ascertain the specific reason for the rule violation.
type RuleError struct {
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e RuleError) Unwrap() error {
	return e.Err
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(kind ErrorKind, desc string) RuleError {
	return RuleError{Err: kind, Description: desc}
}

// rejectReasons maps validation error kinds to the short machine-readable
// reason codes shared with other implementations on the network.
var rejectReasons = map[ErrorKind]string{
	ErrNoTransactions:       "bad-blk-length",
	ErrBlockTooBig:          "bad-blk-length",
	ErrFirstTxNotCoinbase:   "bad-cb-missing",
	ErrMultipleCoinbases:    "bad-cb-multiple",
	ErrDuplicateTx:          "bad-txns-duplicate",
	ErrBadMerkleRoot:        "bad-txnmrklroot",
	ErrTooManySigOps:        "bad-blk-sigops",
	ErrUnexpectedDifficulty: "bad-diffbits",
	ErrHighHash:             "high-hash",
}

// RejectReason returns the short machine-readable reason code for the
// provided validation error so callers can report it to remote peers without
// exposing the full error text.  It returns "rejected" for errors that do not
// map to a known reason code.
func RejectReason(err error) string {
	var kind ErrorKind
	if errors.As(err, &kind) {
		if reason, ok := rejectReasons[kind]; ok {
			return reason
		}
	}
	return "rejected"
}
