// Copyright (c) 2019-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

import (
	"encoding/binary"
	"testing"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
)

// mustParseHash converts the passed big-endian hex string into a
// chainhash.Hash and will panic if there is an error.  It only differs from
// the one available in chainhash in that it will panic so errors in the
// source code be detected.  It will only (and must only) be called with
// hard-coded, and therefore known good, hashes.
func mustParseHash(s string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic("invalid hash in source file: " + s)
	}
	return hash
}

// testLeaves deterministically generates the given number of synthetic leaf
// hashes for tests that exercise tree shapes without known chain vectors.
func testLeaves(count int) []chainhash.Hash {
	leaves := make([]chainhash.Hash, count)
	for i := range leaves {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		leaves[i] = chainhash.DoubleHashH(buf[:])
	}
	return leaves
}

// refMerkleRoot is a simple reference implementation of the merkle root
// reduction used to cross-check the optimized in-place version on arbitrary
// tree shapes.
func refMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 1 {
		return leaves[0]
	}

	var parents []chainhash.Hash
	for i := 0; i < len(leaves); i += 2 {
		left := leaves[i]
		right := left
		if i+1 < len(leaves) {
			right = leaves[i+1]
		}

		var buf [2 * chainhash.HashSize]byte
		copy(buf[:chainhash.HashSize], left[:])
		copy(buf[chainhash.HashSize:], right[:])
		parents = append(parents, chainhash.DoubleHashH(buf[:]))
	}
	return refMerkleRoot(parents)
}

// TestCalcMerkleRoot ensures the expected merkle root is produced for known
// valid leaf values.
func TestCalcMerkleRoot(t *testing.T) {
	tests := []struct {
		name   string   // test description
		leaves []string // leaves to test
		want   string   // expected merkle root
	}{{
		name:   "no leaves",
		leaves: nil,
		want:   "0000000000000000000000000000000000000000000000000000000000000000",
	}, {
		name: "mainnet genesis block (single leaf)",
		leaves: []string{
			"4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b",
		},
		want: "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b",
	}, {
		name: "mainnet block 170 (two leaves)",
		leaves: []string{
			"b1fea52486ce0c62bb442b530a3f0132b826c74e473d1f2c220bfa78111c5082",
			"f4184fc596403b9d638783cf57adfe4c75c605f6356fbc91338530e9831e9e16",
		},
		want: "7dac2c5666815c17a3b36427de37bb9d2e2c5ccec3f8633eb91a4205cb4c10ff",
	}}

	for _, test := range tests {
		leaves := make([]chainhash.Hash, 0, len(test.leaves))
		for _, hashStr := range test.leaves {
			leaves = append(leaves, *mustParseHash(hashStr))
		}
		want := *mustParseHash(test.want)

		result := CalcMerkleRoot(leaves)
		if result != want {
			t.Errorf("%q: mismatched result -- got %v, want %v", test.name,
				result, want)
			continue
		}
	}
}

// TestCalcMerkleRootUnbalanced ensures the optimized merkle root calculation
// agrees with a straightforward reference implementation across tree shapes
// that exercise the final-node self-pairing rule at various levels.
func TestCalcMerkleRootUnbalanced(t *testing.T) {
	for _, numLeaves := range []int{1, 2, 3, 4, 5, 6, 7, 11, 16, 17, 31} {
		leaves := testLeaves(numLeaves)
		want := refMerkleRoot(leaves)
		result := CalcMerkleRoot(leaves)
		if result != want {
			t.Errorf("%d leaves: mismatched result -- got %v, want %v",
				numLeaves, result, want)
		}
	}
}

// TestCalcMerkleRootNoMutation ensures calculating a merkle root does not
// modify the leaves provided by the caller.
func TestCalcMerkleRootNoMutation(t *testing.T) {
	leaves := testLeaves(5)
	saved := make([]chainhash.Hash, len(leaves))
	copy(saved, leaves)

	CalcMerkleRoot(leaves)
	for i := range leaves {
		if leaves[i] != saved[i] {
			t.Fatalf("leaf %d was modified -- got %v, want %v", i, leaves[i],
				saved[i])
		}
	}
}
