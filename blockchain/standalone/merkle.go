// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/wire"
)

// calcMerkleRootInPlace treats the provided slice as a scratch buffer and
// reduces it to the merkle root using double SHA-256.  The contents of the
// passed slice are overwritten.
func calcMerkleRootInPlace(hashes []chainhash.Hash) chainhash.Hash {
	// All zero.
	if len(hashes) == 0 {
		return chainhash.Hash{}
	}

	// Create a buffer to reuse for hashing the branches and some long lived
	// slices into it to avoid reslicing.
	var buf [2 * chainhash.HashSize]byte
	var left = buf[:chainhash.HashSize]
	var both = buf[:]

	// The following algorithm works by replacing the leftmost entries in the
	// slice with the concatenations of each subsequent set of 2 hashes and
	// shrinking the slice by half to account for the fact that each level of
	// the tree is half the size of the previous one.  In the case a level is
	// unbalanced (there is no final right child), the final node is paired
	// with itself.
	//
	// For example, the following illustrates calculating a tree with 5 leaves:
	//
	// [0 1 2 3 4]                              (5 entries)
	// 1st iteration: [h(0||1) h(2||3) h(4||4)] (3 entries)
	// 2nd iteration: [h(h01||h23) h(h44||h44)] (2 entries)
	// 3rd iteration: [h(h0123||h4444)]         (1 entry)
	for len(hashes) > 1 {
		// When there is no right child, the parent is generated by hashing the
		// left child with itself.
		if len(hashes)&1 != 0 {
			hashes = append(hashes, hashes[len(hashes)-1])
		}

		// Set the parent node to the double sha256 of the concatenation of the
		// left and right children.
		for i := 0; i < len(hashes)/2; i++ {
			copy(left, hashes[i*2][:])
			copy(buf[chainhash.HashSize:], hashes[i*2+1][:])
			hashes[i] = chainhash.DoubleHashH(both)
		}
		hashes = hashes[:len(hashes)/2]
	}

	return hashes[0]
}

// CalcMerkleRoot treats the provided slice of hashes as leaves of a merkle
// tree and returns the resulting merkle root.
//
// A merkle tree is a tree in which every non-leaf node is the double SHA-256
// of its children nodes.  A diagram depicting how this works for transactions
// in a block where h(x) is the double SHA-256 of x follows:
//
//	         root = h1234 = h(h12 || h34)
//	        /                           \
//	  h12 = h(h1 || h2)            h34 = h(h3 || h4)
//	   /            \              /            \
//	h1 = h(tx1)  h2 = h(tx2)  h3 = h(tx3)  h4 = h(tx4)
//
// When the number of nodes at a given level is odd, the final node is paired
// with itself to produce its parent.  Note that this duplication means two
// distinct leaf sets can produce the same root, so callers performing
// validation must reject trees that rely on a duplicated final entry.
//
// The input slice is NOT modified.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	// Copy the leaves so the in-place calculation does not modify the data
	// provided by the caller.  The copy is allowed to grow by one entry since
	// unbalanced levels append the final node.
	allocLen := len(leaves) + 1
	dupLeaves := make([]chainhash.Hash, len(leaves), allocLen)
	copy(dupLeaves, leaves)
	return calcMerkleRootInPlace(dupLeaves)
}

// CalcTxTreeMerkleRoot returns the merkle root of a tree which consists of
// the transaction hashes of the provided transactions.
func CalcTxTreeMerkleRoot(txns []*wire.MsgTx) chainhash.Hash {
	leaves := make([]chainhash.Hash, 0, len(txns)+1)
	for _, tx := range txns {
		leaves = append(leaves, tx.TxHash())
	}
	return calcMerkleRootInPlace(leaves)
}
