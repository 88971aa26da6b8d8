// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"
)

// TestGenesisBlockHashes ensures the hash of the genesis block of each
// network matches the hash recorded in its parameters and that the merkle
// root commits to the genesis coinbase transaction.
func TestGenesisBlockHashes(t *testing.T) {
	for _, params := range []*Params{
		MainNetParams(),
		TestNetParams(),
		RegNetParams(),
	} {
		hash := params.GenesisBlock.BlockHash()
		if hash != params.GenesisHash {
			t.Errorf("%s: mismatched genesis hash -- got %v, want %v",
				params.Name, hash, params.GenesisHash)
		}

		txHash := params.GenesisBlock.Transactions[0].TxHash()
		if txHash != params.GenesisBlock.Header.MerkleRoot {
			t.Errorf("%s: genesis merkle root does not commit to the "+
				"coinbase -- got %v, want %v", params.Name,
				params.GenesisBlock.Header.MerkleRoot, txHash)
		}
	}
}
