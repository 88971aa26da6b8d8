// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bloom

import (
	"github.com/panda-suite/bcash/blockchain/standalone"
	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// NewMerkleBlock returns a new merkleblock message which compresses the
// provided block down to its header plus a partial merkle tree proving
// inclusion of the transactions that match the provided filter.  It also
// returns the indexes of the matched transactions within the block so the
// caller can relay them alongside the proof.  The block must contain at least
// one transaction.
func NewMerkleBlock(block *chainutil.Block, filter *Filter) (*wire.MsgMerkleBlock, []uint32) {
	transactions := block.Transactions()

	// Determine which transactions the filter matches and collect the leaf
	// hashes in original transaction order.
	leaves := make([]chainhash.Hash, 0, len(transactions))
	matches := make([]bool, len(transactions))
	matchedIndexes := make([]uint32, 0, len(transactions))
	for i, tx := range transactions {
		leaves = append(leaves, *tx.Hash())
		if filter.MatchTx(tx) {
			matches[i] = true
			matchedIndexes = append(matchedIndexes, uint32(i))
		}
	}

	// Generate the partial merkle tree for the matched subset and wrap it
	// into the wire message.  The proof carries at most one hash per leaf,
	// so the message hash limit cannot be exceeded here.
	proof := standalone.NewMerkleProof(leaves, matches)
	hashes := make([]*chainhash.Hash, len(proof.Hashes))
	for i := range proof.Hashes {
		hashes[i] = &proof.Hashes[i]
	}

	return &wire.MsgMerkleBlock{
		Header:       block.MsgBlock().Header,
		Transactions: proof.NumLeaves,
		Hashes:       hashes,
		Flags:        proof.Flags,
	}, matchedIndexes
}

// ExtractMatches validates the partial merkle tree carried by the provided
// merkleblock message against the merkle root committed to by its header and
// returns the matched transaction hashes along with their indexes within the
// block.
func ExtractMatches(msg *wire.MsgMerkleBlock) ([]chainhash.Hash, []uint32, error) {
	proof := &standalone.MerkleProof{
		NumLeaves: msg.Transactions,
		Hashes:    make([]chainhash.Hash, 0, len(msg.Hashes)),
		Flags:     msg.Flags,
	}
	for _, hash := range msg.Hashes {
		proof.Hashes = append(proof.Hashes, *hash)
	}

	return standalone.VerifyMerkleProof(proof, &msg.Header.MerkleRoot)
}
