// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrelay

import (
	"encoding/binary"
	"io"

	"github.com/dchest/siphash"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/wire"
)

// shortIDMask selects the lower 6 bytes of a siphash digest, which is the
// portion transmitted on the wire for each short transaction id.
const shortIDMask = (1 << (8 * wire.ShortIDSize)) - 1

// ShortIDKey houses the two halves of the per-block siphash key used to
// compute short transaction ids.
type ShortIDKey struct {
	K0 uint64
	K1 uint64
}

// DeriveShortIDKey derives the siphash key for the block with the provided
// header and key nonce.  The key is the first 16 bytes of the double SHA-256
// of the serialized header followed by the little-endian encoded nonce,
// interpreted as two little-endian 64-bit words.
func DeriveShortIDKey(header *wire.BlockHeader, keyNonce uint64) ShortIDKey {
	digest := chainhash.DoubleHashRaw(func(w io.Writer) error {
		if err := header.Serialize(w); err != nil {
			return err
		}
		var nonce [8]byte
		binary.LittleEndian.PutUint64(nonce[:], keyNonce)
		_, err := w.Write(nonce[:])
		return err
	})

	return ShortIDKey{
		K0: binary.LittleEndian.Uint64(digest[0:8]),
		K1: binary.LittleEndian.Uint64(digest[8:16]),
	}
}

// ShortID computes the 6-byte short id of the provided transaction hash under
// the key.  Short ids are not cryptographically unforgeable identifiers; they
// exist solely to disambiguate which transaction the sender means among a
// receiver's locally known set.
func (k ShortIDKey) ShortID(txHash *chainhash.Hash) wire.ShortID {
	sip := siphash.Hash(k.K0, k.K1, txHash[:])
	return wire.NewShortIDFromUint64(sip & shortIDMask)
}
