// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"fmt"

	"github.com/jrick/bitset"
	"github.com/panda-suite/bcash/chaincfg/chainhash"
)

// MerkleProof houses a partial merkle tree which proves one or more leaves
// are members of a merkle tree with a given root while only revealing hashes
// along the paths to those leaves.
//
// The serialized form consists of the total number of leaves in the full
// tree, the hashes needed to reconstruct the root, and a compact bit field
// that drives a depth-first traversal of the tree during reconstruction.
// The bits are packed least-significant-bit first and any unused bits in the
// final byte must be zero.
type MerkleProof struct {
	NumLeaves uint32
	Hashes    []chainhash.Hash
	Flags     []byte
}

// treeHeight returns the height of a merkle tree with the provided number of
// leaves.  A tree with a single leaf has height 0.
func treeHeight(numLeaves uint32) uint32 {
	var height uint32
	for (uint64(1) << height) < uint64(numLeaves) {
		height++
	}
	return height
}

// treeWidth returns the number of nodes that exist at the given height of a
// merkle tree with the provided total number of leaves.  Height 0 is the leaf
// level.
func treeWidth(numLeaves uint32, height uint32) uint32 {
	return uint32((uint64(numLeaves) + (uint64(1) << height) - 1) >> height)
}

// merkleProofBuilder houses intermediate state used while constructing a
// partial merkle tree.
type merkleProofBuilder struct {
	leaves  []chainhash.Hash
	matches []bool
	bits    []bool
	hashes  []chainhash.Hash
}

// nodeHash returns the hash of the node at the provided height and position
// by recursively hashing the leaves beneath it.  An unbalanced level pairs
// its final node with itself.
func (b *merkleProofBuilder) nodeHash(height, pos uint32) chainhash.Hash {
	if height == 0 {
		return b.leaves[pos]
	}

	left := b.nodeHash(height-1, pos*2)
	var right chainhash.Hash
	if pos*2+1 < treeWidth(uint32(len(b.leaves)), height-1) {
		right = b.nodeHash(height-1, pos*2+1)
	} else {
		right = left
	}

	var buf [2 * chainhash.HashSize]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

// traverse walks the implicit tree depth first, emitting a flag bit per
// visited node.  Subtrees with no matched leaves are pruned to a single
// stored hash, while matched paths recurse all the way down to the leaves.
func (b *merkleProofBuilder) traverse(height, pos uint32) {
	// Determine whether any leaf beneath this node is matched.
	var anyMatch bool
	begin := pos << height
	end := (pos + 1) << height
	if end > uint32(len(b.leaves)) {
		end = uint32(len(b.leaves))
	}
	for i := begin; i < end; i++ {
		if b.matches[i] {
			anyMatch = true
			break
		}
	}

	b.bits = append(b.bits, anyMatch)
	if height == 0 || !anyMatch {
		// Leaf node or pruned subtree.  Store the hash directly.
		b.hashes = append(b.hashes, b.nodeHash(height, pos))
		return
	}

	b.traverse(height-1, pos*2)
	if pos*2+1 < treeWidth(uint32(len(b.leaves)), height-1) {
		b.traverse(height-1, pos*2+1)
	}
}

// NewMerkleProof generates a partial merkle tree from the provided leaves
// that proves membership of the leaves flagged in the provided match slice,
// which must be the same length as the leaves.
//
// The proof for an empty leaf set is nil since the merkle root of an empty
// tree is undefined.
func NewMerkleProof(leaves []chainhash.Hash, matches []bool) *MerkleProof {
	if len(leaves) == 0 || len(leaves) != len(matches) {
		return nil
	}

	builder := merkleProofBuilder{leaves: leaves, matches: matches}
	builder.traverse(treeHeight(uint32(len(leaves))), 0)

	// Pack the flag bits least-significant-bit first into full bytes with
	// zero padding.
	set := bitset.NewBytes(len(builder.bits))
	for i, isSet := range builder.bits {
		if isSet {
			set.Set(i)
		}
	}

	return &MerkleProof{
		NumLeaves: uint32(len(leaves)),
		Hashes:    builder.hashes,
		Flags:     []byte(set),
	}
}

// merkleProofExtractor houses intermediate state used while replaying the
// traversal of a partial merkle tree.
type merkleProofExtractor struct {
	proof      *MerkleProof
	bitsUsed   int
	hashesUsed int
	matches    []chainhash.Hash
	indexes    []uint32
}

// nextBit consumes and returns the next flag bit.  It returns an error when
// the traversal requires more bits than the proof provides.
func (e *merkleProofExtractor) nextBit() (bool, error) {
	if e.bitsUsed >= len(e.proof.Flags)*8 {
		return false, ruleError(ErrBadMerkleProof, "proof flag bits overran "+
			"during traversal")
	}
	isSet := bitset.Bytes(e.proof.Flags).Get(e.bitsUsed)
	e.bitsUsed++
	return isSet, nil
}

// nextHash consumes and returns the next stored hash.  It returns an error
// when the traversal requires more hashes than the proof provides.
func (e *merkleProofExtractor) nextHash() (chainhash.Hash, error) {
	if e.hashesUsed >= len(e.proof.Hashes) {
		return chainhash.Hash{}, ruleError(ErrBadMerkleProof, "proof hashes "+
			"overran during traversal")
	}
	hash := e.proof.Hashes[e.hashesUsed]
	e.hashesUsed++
	return hash, nil
}

// descend replays the depth-first traversal at the provided height and
// position, reconstructing and returning the hash of the node.
func (e *merkleProofExtractor) descend(height, pos uint32) (chainhash.Hash, error) {
	anyMatch, err := e.nextBit()
	if err != nil {
		return chainhash.Hash{}, err
	}

	if height == 0 || !anyMatch {
		// Leaf node or pruned subtree.  The hash is stored directly.
		hash, err := e.nextHash()
		if err != nil {
			return chainhash.Hash{}, err
		}
		if height == 0 && anyMatch {
			e.matches = append(e.matches, hash)
			e.indexes = append(e.indexes, pos)
		}
		return hash, nil
	}

	left, err := e.descend(height-1, pos*2)
	if err != nil {
		return chainhash.Hash{}, err
	}
	var right chainhash.Hash
	if pos*2+1 < treeWidth(e.proof.NumLeaves, height-1) {
		right, err = e.descend(height-1, pos*2+1)
		if err != nil {
			return chainhash.Hash{}, err
		}

		// Two identical hashes as a left/right pair would allow a second
		// distinct leaf sequence to claim the same root, so reject them.
		if right == left {
			str := "proof contains duplicate left and right branch hashes"
			return chainhash.Hash{}, ruleError(ErrBadMerkleProof, str)
		}
	} else {
		right = left
	}

	var buf [2 * chainhash.HashSize]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:]), nil
}

// Extract validates the partial merkle tree and replays its traversal to
// reconstruct the merkle root along with the hashes and leaf indexes of the
// matched leaves in left-to-right tree order.
//
// The proof is rejected when the flag or hash cursors overrun during the
// traversal, when either has unconsumed entries afterwards, when any padding
// bit beyond the consumed flags is nonzero, or when the declared leaf count
// is inconsistent with the number of provided hashes.
func (p *MerkleProof) Extract() (*chainhash.Hash, []chainhash.Hash, []uint32, error) {
	if p.NumLeaves == 0 {
		return nil, nil, nil, ruleError(ErrBadMerkleProof, "proof declares "+
			"zero leaves")
	}
	if uint64(len(p.Hashes)) > uint64(p.NumLeaves) {
		str := fmt.Sprintf("proof contains more hashes (%d) than declared "+
			"leaves (%d)", len(p.Hashes), p.NumLeaves)
		return nil, nil, nil, ruleError(ErrBadMerkleProof, str)
	}
	if len(p.Flags)*8 < len(p.Hashes) {
		str := fmt.Sprintf("proof contains fewer flag bits (%d) than hashes "+
			"(%d)", len(p.Flags)*8, len(p.Hashes))
		return nil, nil, nil, ruleError(ErrBadMerkleProof, str)
	}

	extractor := merkleProofExtractor{proof: p}
	root, err := extractor.descend(treeHeight(p.NumLeaves), 0)
	if err != nil {
		return nil, nil, nil, err
	}

	// Every hash must be consumed by the traversal.
	if extractor.hashesUsed != len(p.Hashes) {
		str := fmt.Sprintf("proof traversal consumed %d of %d hashes",
			extractor.hashesUsed, len(p.Hashes))
		return nil, nil, nil, ruleError(ErrBadMerkleProof, str)
	}

	// Every flag bit beyond those consumed by the traversal is padding and
	// must be zero.
	if (extractor.bitsUsed+7)/8 != len(p.Flags) {
		str := fmt.Sprintf("proof traversal consumed %d flag bits which does "+
			"not fill the %d provided flag bytes", extractor.bitsUsed,
			len(p.Flags))
		return nil, nil, nil, ruleError(ErrBadMerkleProof, str)
	}
	for i := extractor.bitsUsed; i < len(p.Flags)*8; i++ {
		if bitset.Bytes(p.Flags).Get(i) {
			str := "proof contains nonzero padding bits"
			return nil, nil, nil, ruleError(ErrBadMerkleProof, str)
		}
	}

	return &root, extractor.matches, extractor.indexes, nil
}

// VerifyMerkleProof extracts the provided partial merkle tree and ensures the
// reconstructed root matches the provided expected root.  The matched leaf
// hashes and their leaf indexes are returned in left-to-right tree order.
func VerifyMerkleProof(p *MerkleProof, want *chainhash.Hash) ([]chainhash.Hash, []uint32, error) {
	root, matches, indexes, err := p.Extract()
	if err != nil {
		return nil, nil, err
	}
	if !root.IsEqual(want) {
		str := fmt.Sprintf("proof reconstructs merkle root %v which does not "+
			"match expected root %v", root, want)
		return nil, nil, ruleError(ErrBadMerkleProof, str)
	}
	return matches, indexes, nil
}
