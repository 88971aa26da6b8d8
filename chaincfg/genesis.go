// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math"
	"time"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/wire"
)

// genesisCoinbaseTx is the coinbase transaction for the genesis blocks.  It
// is shared by all networks since only the block headers differ between them.
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{{
		PreviousOutPoint: wire.OutPoint{
			Hash:  chainhash.Hash{},
			Index: math.MaxUint32,
		},
		// Encodes the difficulty bits, the value 4, and the timestamp
		// message "The Times 03/Jan/2009 Chancellor on brink of second
		// bailout for banks".
		SignatureScript: hexDecode("04ffff001d0104455468652054696d6573203" +
			"0332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b" +
			"206f66207365636f6e64206261696c6f757420666f722062616e6b73"),
		Sequence: math.MaxUint32,
	}},
	TxOut: []*wire.TxOut{{
		Value: 50 * 1e8,
		PkScript: hexDecode("4104678afdb0fe5548271967f1a67130b7105cd6a828e0" +
			"3909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7" +
			"ba0b8d578a4c702b6bf11d5fac"),
	}},
	LockTime: 0,
}

// genesisMerkleRoot is the hash of the first transaction in the genesis
// blocks.
var genesisMerkleRoot = newHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f" +
	"76673e2cc77ab2127b7afdeda33b")

// genesisBlock defines the genesis block of the block chain which serves as
// the public transaction ledger for the main network.
var genesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: genesisMerkleRoot,
		Timestamp:  time.Unix(1231006505, 0), // 2009-01-03 18:15:05 +0000 UTC
		Bits:       0x1d00ffff,
		Nonce:      2083236893,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

// testNetGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the test network.
var testNetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: genesisMerkleRoot,
		Timestamp:  time.Unix(1296688602, 0), // 2011-02-02 23:16:42 +0000 UTC
		Bits:       0x1d00ffff,
		Nonce:      414098458,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}

// regNetGenesisBlock defines the genesis block of the block chain which
// serves as the public transaction ledger for the regression test network.
var regNetGenesisBlock = wire.MsgBlock{
	Header: wire.BlockHeader{
		Version:    1,
		PrevBlock:  chainhash.Hash{},
		MerkleRoot: genesisMerkleRoot,
		Timestamp:  time.Unix(1296688602, 0), // 2011-02-02 23:16:42 +0000 UTC
		Bits:       0x207fffff,
		Nonce:      2,
	},
	Transactions: []*wire.MsgTx{&genesisCoinbaseTx},
}
