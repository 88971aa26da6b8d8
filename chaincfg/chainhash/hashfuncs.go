// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2016-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/sha256"
	"io"
)

// HashB calculates sha256(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// HashH calculates sha256(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// DoubleHashB calculates sha256(sha256(b)) and returns the resulting bytes.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates sha256(sha256(b)) and returns the resulting bytes as
// a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHashRaw calculates sha256(sha256(w)) where w is the resulting bytes
// from the given serialize function and returns the resulting bytes as a
// Hash.  It is used to avoid allocating an intermediate buffer when hashing
// serialized entities.
func DoubleHashRaw(serialize func(w io.Writer) error) Hash {
	h := sha256.New()

	// The only way the underlying hash can error is from a failed write
	// which cannot happen for a hasher, so the error from the serialize
	// func is impossible to hit in practice and intentionally ignored
	// to provide a friendlier API.
	_ = serialize(h)

	var firstHash Hash
	h.Sum(firstHash[:0])
	return Hash(sha256.Sum256(firstHash[:]))
}

// HashBlockSize is the block size of the hash algorithm in bytes.
const HashBlockSize = sha256.BlockSize
