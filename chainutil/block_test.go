// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/panda-suite/bcash/chaincfg"
)

// TestBlock tests the API for Block.
func TestBlock(t *testing.T) {
	params := chaincfg.MainNetParams()
	b := NewBlock(params.GenesisBlock)

	// Ensure we get the same data back out.
	if msgBlock := b.MsgBlock(); !reflect.DeepEqual(msgBlock, params.GenesisBlock) {
		t.Errorf("MsgBlock: mismatched MsgBlock - got %v, want %v",
			spew.Sdump(msgBlock), spew.Sdump(params.GenesisBlock))
	}

	// Request the hash multiple times to test generation and caching.
	for i := 0; i < 2; i++ {
		hash := b.Hash()
		if !hash.IsEqual(&params.GenesisHash) {
			t.Errorf("Hash #%d mismatched hash - got %v, want %v", i, hash,
				params.GenesisHash)
		}
	}

	// Hashes for the transactions in the block.
	wantTxHashes := params.GenesisBlock.TxHashes()

	// Request hash for all transactions one at a time via Tx.
	for i := range wantTxHashes {
		tx, err := b.Tx(i)
		if err != nil {
			t.Errorf("Tx #%d: %v", i, err)
			continue
		}

		// Request the hash multiple times to test generation and caching.
		for j := 0; j < 2; j++ {
			if hash := tx.Hash(); !hash.IsEqual(&wantTxHashes[i]) {
				t.Errorf("Hash #%d mismatched hash - got %v, want %v", j,
					hash, wantTxHashes[i])
			}
		}

		if tx.Index() != i {
			t.Errorf("Tx #%d: mismatched index - got %d, want %d", i,
				tx.Index(), i)
		}
	}

	// Create a new block to nuke all cached data.
	b = NewBlock(params.GenesisBlock)

	// Request slice of all transactions multiple times to test generation
	// and caching.
	for i := 0; i < 2; i++ {
		transactions := b.Transactions()
		if len(transactions) != len(wantTxHashes) {
			t.Errorf("Transactions #%d: mismatched len - got %d, want %d",
				i, len(transactions), len(wantTxHashes))
			continue
		}
		for j, tx := range transactions {
			if hash := tx.Hash(); !hash.IsEqual(&wantTxHashes[j]) {
				t.Errorf("Transactions #%d: mismatched hash - got %v, "+
					"want %v", j, hash, wantTxHashes[j])
			}
		}
	}

	// Serialize the test block and ensure the serialized bytes are cached.
	var wantBytesBuf bytes.Buffer
	if err := params.GenesisBlock.Serialize(&wantBytesBuf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	wantBytes := wantBytesBuf.Bytes()
	for i := 0; i < 2; i++ {
		serializedBytes, err := b.Bytes()
		if err != nil {
			t.Fatalf("Bytes #%d: %v", i, err)
		}
		if !bytes.Equal(serializedBytes, wantBytes) {
			t.Errorf("Bytes #%d: mismatched bytes", i)
		}
	}

	// Transaction offsets and indexes must be out-of-range protected.
	if _, err := b.Tx(-1); err == nil {
		t.Error("Tx: expected error for negative index")
	}
	if _, err := b.Tx(len(wantTxHashes)); err == nil {
		t.Error("Tx: expected error for out of range index")
	}
}

// TestBlockRefresh ensures mutating the underlying block followed by a
// refresh recomputes the cached hash.
func TestBlockRefresh(t *testing.T) {
	params := chaincfg.MainNetParams()
	msgBlock := *params.GenesisBlock
	b := NewBlock(&msgBlock)

	origHash := *b.Hash()

	// Mutate the header nonce and refresh.  The cached hash must be
	// recomputed and differ from the original.
	msgBlock.Header.Nonce++
	b.Refresh()
	if newHash := b.Hash(); *newHash == origHash {
		t.Fatalf("Hash: stale cached hash after refresh: %v", newHash)
	}

	// Restore the nonce and refresh again.  The hash must match the
	// original once more.
	msgBlock.Header.Nonce--
	b.Refresh()
	if newHash := b.Hash(); *newHash != origHash {
		t.Fatalf("Hash: mismatched hash after restore - got %v, want %v",
			newHash, origHash)
	}
}

// TestNewBlockFromBytes tests creation of a Block from serialized bytes.
func TestNewBlockFromBytes(t *testing.T) {
	params := chaincfg.MainNetParams()
	var buf bytes.Buffer
	if err := params.GenesisBlock.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	serialized := buf.Bytes()

	b, err := NewBlockFromBytes(serialized)
	if err != nil {
		t.Fatalf("NewBlockFromBytes: %v", err)
	}

	// Ensure the generated MsgBlock is correct.
	if !reflect.DeepEqual(b.MsgBlock(), params.GenesisBlock) {
		t.Errorf("MsgBlock: mismatched MsgBlock - got %v, want %v",
			spew.Sdump(b.MsgBlock()), spew.Sdump(params.GenesisBlock))
	}

	// Ensure the serialized bytes are returned without re-serializing.
	serializedBytes, err := b.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(serializedBytes, serialized) {
		t.Error("Bytes: mismatched bytes")
	}

	// Ensure decoding a truncated block fails.
	if _, err := NewBlockFromBytes(serialized[:40]); err == nil {
		t.Error("NewBlockFromBytes: expected error for truncated block")
	}
}
