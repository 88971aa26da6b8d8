// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"math"
	"testing"
	"time"

	"github.com/panda-suite/bcash/blockchain/standalone"
	"github.com/panda-suite/bcash/chaincfg"
	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// newTestPool returns a pool configured for the main network with no size
// limit unless one is provided.
func newTestPool(maxTxSize uint64) *TxPool {
	return New(&Config{
		ChainParams: chaincfg.MainNetParams(),
		MaxTxSize:   maxTxSize,
	})
}

// newTestTx returns a transaction spending the provided outpoint with a
// value that makes the transaction hash unique per (hash, index, value)
// triple.
func newTestTx(prevHash chainhash.Hash, prevIndex uint32, value int64) *chainutil.Tx {
	return chainutil.NewTx(&wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{
				Hash:  prevHash,
				Index: prevIndex,
			},
			Sequence: math.MaxUint32,
		}},
		TxOut: []*wire.TxOut{{
			Value:    value,
			PkScript: []byte{0x51},
		}},
	})
}

// TestAddFetchRemove exercises the basic pool membership operations.
func TestAddFetchRemove(t *testing.T) {
	mp := newTestPool(0)
	var prevHash chainhash.Hash
	prevHash[0] = 0x2a
	tx := newTestTx(prevHash, 0, 1e8)

	if mp.HaveTransaction(tx.Hash()) {
		t.Fatal("empty pool reports having the transaction")
	}
	if _, err := mp.FetchTransaction(tx.Hash()); err == nil {
		t.Fatal("no error fetching a transaction from an empty pool")
	}

	if err := mp.AddTransaction(tx); err != nil {
		t.Fatalf("unexpected err adding transaction: %v", err)
	}
	if !mp.HaveTransaction(tx.Hash()) {
		t.Fatal("pool does not report having an added transaction")
	}
	if mp.Count() != 1 {
		t.Fatalf("unexpected pool count -- got %d, want 1", mp.Count())
	}
	fetched, err := mp.FetchTransaction(tx.Hash())
	if err != nil {
		t.Fatalf("unexpected err fetching transaction: %v", err)
	}
	if *fetched.Hash() != *tx.Hash() {
		t.Fatalf("fetched wrong transaction -- got %v, want %v",
			fetched.Hash(), tx.Hash())
	}

	// Adding the same transaction again must fail without marking it
	// rejected.
	if err := mp.AddTransaction(tx); err == nil {
		t.Fatal("no error adding a duplicate transaction")
	}
	if mp.IsRecentlyRejected(tx.Hash()) {
		t.Fatal("duplicate add marked the transaction rejected")
	}

	mp.RemoveTransaction(tx.Hash())
	if mp.HaveTransaction(tx.Hash()) {
		t.Fatal("pool reports having a removed transaction")
	}
	if mp.Count() != 0 {
		t.Fatalf("unexpected pool count -- got %d, want 0", mp.Count())
	}

	// Removing again is a no-op.
	mp.RemoveTransaction(tx.Hash())
}

// TestDoubleSpendRejection ensures a transaction spending an outpoint already
// spent by a pool transaction is rejected and cached as rejected.
func TestDoubleSpendRejection(t *testing.T) {
	mp := newTestPool(0)
	var prevHash chainhash.Hash
	prevHash[0] = 0x2a

	first := newTestTx(prevHash, 0, 1e8)
	if err := mp.AddTransaction(first); err != nil {
		t.Fatalf("unexpected err adding transaction: %v", err)
	}

	conflict := newTestTx(prevHash, 0, 2e8)
	if err := mp.AddTransaction(conflict); err == nil {
		t.Fatal("no error adding a double spend")
	}
	if !mp.IsRecentlyRejected(conflict.Hash()) {
		t.Fatal("double spend was not cached as rejected")
	}

	// The rejection cache must short circuit subsequent adds even after
	// the conflicting transaction leaves the pool.
	mp.RemoveTransaction(first.Hash())
	if err := mp.AddTransaction(conflict); err == nil {
		t.Fatal("no error re-adding a recently rejected transaction")
	}

	// A spend of a different output of the same transaction is fine.
	other := newTestTx(prevHash, 1, 3e8)
	if err := mp.AddTransaction(other); err != nil {
		t.Fatalf("unexpected err adding transaction: %v", err)
	}
}

// TestMaxTxSize ensures transactions over the configured size limit are
// rejected.
func TestMaxTxSize(t *testing.T) {
	var prevHash chainhash.Hash
	prevHash[0] = 0x2a
	tx := newTestTx(prevHash, 0, 1e8)
	size := uint64(tx.MsgTx().SerializeSize())

	mp := newTestPool(size)
	if err := mp.AddTransaction(tx); err != nil {
		t.Fatalf("unexpected err adding transaction at the size limit: %v",
			err)
	}

	mp = newTestPool(size - 1)
	if err := mp.AddTransaction(tx); err == nil {
		t.Fatal("no error adding an oversized transaction")
	}
	if !mp.IsRecentlyRejected(tx.Hash()) {
		t.Fatal("oversized transaction was not cached as rejected")
	}
}

// TestRemoveConfirmedTransactions ensures connecting a block evicts both the
// confirmed transactions and any pool transactions that double spend their
// inputs.
func TestRemoveConfirmedTransactions(t *testing.T) {
	mp := newTestPool(0)
	var prevHash chainhash.Hash
	prevHash[0] = 0x2a

	confirmed := newTestTx(prevHash, 0, 1e8)
	unrelated := newTestTx(prevHash, 5, 4e8)
	if err := mp.AddTransaction(confirmed); err != nil {
		t.Fatalf("unexpected err adding transaction: %v", err)
	}
	if err := mp.AddTransaction(unrelated); err != nil {
		t.Fatalf("unexpected err adding transaction: %v", err)
	}

	// Build a block that confirms a conflicting spend of the confirmed
	// transaction's input rather than the transaction itself.
	coinbase := chaincfg.MainNetParams().GenesisBlock.Transactions[0].Copy()
	conflict := newTestTx(prevHash, 0, 9e8)
	msgBlock := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			Timestamp: time.Unix(1231469665, 0),
			Bits:      0x1d00ffff,
		},
		Transactions: []*wire.MsgTx{coinbase, conflict.MsgTx()},
	}
	msgBlock.Header.MerkleRoot =
		standalone.CalcTxTreeMerkleRoot(msgBlock.Transactions)

	mp.RemoveConfirmedTransactions(chainutil.NewBlock(msgBlock))
	if mp.HaveTransaction(confirmed.Hash()) {
		t.Fatal("pool still holds a transaction double spent by the block")
	}
	if !mp.HaveTransaction(unrelated.Hash()) {
		t.Fatal("pool evicted a transaction unrelated to the block")
	}
}

// TestTransactionsSnapshot ensures the transaction and hash snapshots reflect
// the pool contents.
func TestTransactionsSnapshot(t *testing.T) {
	mp := newTestPool(0)
	var prevHash chainhash.Hash
	prevHash[0] = 0x2a

	want := make(map[chainhash.Hash]bool)
	for i := uint32(0); i < 5; i++ {
		tx := newTestTx(prevHash, i, int64(i+1)*1e8)
		if err := mp.AddTransaction(tx); err != nil {
			t.Fatalf("unexpected err adding transaction: %v", err)
		}
		want[*tx.Hash()] = true
	}

	txns := mp.Transactions()
	if len(txns) != len(want) {
		t.Fatalf("unexpected snapshot size -- got %d, want %d", len(txns),
			len(want))
	}
	for _, tx := range txns {
		if !want[*tx.Hash()] {
			t.Fatalf("snapshot contains unexpected transaction %v",
				tx.Hash())
		}
	}

	hashes := mp.TxHashes()
	if len(hashes) != len(want) {
		t.Fatalf("unexpected hash snapshot size -- got %d, want %d",
			len(hashes), len(want))
	}
	for _, hash := range hashes {
		if !want[hash] {
			t.Fatalf("hash snapshot contains unexpected hash %v", hash)
		}
	}
}
