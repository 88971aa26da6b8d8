// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/panda-suite/bcash/bloom"
	"github.com/panda-suite/bcash/chaincfg"
	"github.com/panda-suite/bcash/chainutil"
)

// TestBlockRoundTrip ensures a block converted to the interchange form,
// marshaled to JSON, unmarshaled, and converted back serializes to the exact
// bytes of the original.
func TestBlockRoundTrip(t *testing.T) {
	params := chaincfg.MainNetParams()
	block := chainutil.NewBlock(params.GenesisBlock)

	jsonBlock, err := EncodeBlock(block)
	if err != nil {
		t.Fatalf("unexpected err encoding block: %v", err)
	}
	if jsonBlock.Hash != params.GenesisHash.String() {
		t.Fatalf("unexpected hash -- got %s, want %s", jsonBlock.Hash,
			params.GenesisHash)
	}
	if jsonBlock.Bits != "1d00ffff" {
		t.Fatalf("unexpected bits -- got %s, want 1d00ffff", jsonBlock.Bits)
	}

	marshaled, err := json.Marshal(jsonBlock)
	if err != nil {
		t.Fatalf("unexpected err marshaling block: %v", err)
	}
	var unmarshaled Block
	if err := json.Unmarshal(marshaled, &unmarshaled); err != nil {
		t.Fatalf("unexpected err unmarshaling block: %v", err)
	}
	if !reflect.DeepEqual(&unmarshaled, jsonBlock) {
		t.Fatalf("interchange form did not survive JSON -- got %s, want %s",
			spew.Sdump(unmarshaled), spew.Sdump(jsonBlock))
	}

	decoded, err := DecodeBlock(&unmarshaled)
	if err != nil {
		t.Fatalf("unexpected err decoding block: %v", err)
	}
	wantBytes, err := block.Bytes()
	if err != nil {
		t.Fatalf("unexpected err serializing original block: %v", err)
	}
	gotBytes, err := decoded.Bytes()
	if err != nil {
		t.Fatalf("unexpected err serializing decoded block: %v", err)
	}
	if !bytes.Equal(gotBytes, wantBytes) {
		t.Fatal("decoded block differs from the original")
	}
	if *decoded.Hash() != params.GenesisHash {
		t.Fatalf("unexpected decoded hash -- got %v, want %v",
			decoded.Hash(), params.GenesisHash)
	}
}

// TestMerkleBlockRoundTrip ensures a merkleblock message converted to the
// interchange form and back is identical, including the flag bytes.
func TestMerkleBlockRoundTrip(t *testing.T) {
	params := chaincfg.MainNetParams()
	block := chainutil.NewBlock(params.GenesisBlock)

	filter := bloom.NewFilter(1, 0, 0.0001)
	filter.AddHash(block.Transactions()[0].Hash())
	msg, matched := bloom.NewMerkleBlock(block, filter)
	if len(matched) != 1 {
		t.Fatalf("unexpected matched index count -- got %d, want 1",
			len(matched))
	}

	jsonMB := EncodeMerkleBlock(msg)
	if jsonMB.TotalTransactions != 1 {
		t.Fatalf("unexpected total transactions -- got %d, want 1",
			jsonMB.TotalTransactions)
	}

	marshaled, err := json.Marshal(jsonMB)
	if err != nil {
		t.Fatalf("unexpected err marshaling merkle block: %v", err)
	}
	var unmarshaled MerkleBlock
	if err := json.Unmarshal(marshaled, &unmarshaled); err != nil {
		t.Fatalf("unexpected err unmarshaling merkle block: %v", err)
	}

	decoded, err := DecodeMerkleBlock(&unmarshaled)
	if err != nil {
		t.Fatalf("unexpected err decoding merkle block: %v", err)
	}
	if !reflect.DeepEqual(decoded, msg) {
		t.Fatalf("decoded merkle block differs -- got %s, want %s",
			spew.Sdump(decoded), spew.Sdump(msg))
	}
}

// TestDecodeErrors ensures malformed interchange structs are rejected with
// the expected error kinds.
func TestDecodeErrors(t *testing.T) {
	params := chaincfg.MainNetParams()
	block := chainutil.NewBlock(params.GenesisBlock)
	valid, err := EncodeBlock(block)
	if err != nil {
		t.Fatalf("unexpected err encoding block: %v", err)
	}

	tests := []struct {
		name  string
		munge func(*Block)
		err   error
	}{{
		name: "bad previous block hash",
		munge: func(b *Block) {
			b.PreviousBlockHash = "zz"
		},
		err: ErrInvalidHash,
	}, {
		name: "bad merkle root",
		munge: func(b *Block) {
			b.MerkleRoot = b.MerkleRoot[1:]
		},
		err: ErrInvalidHash,
	}, {
		name: "bad bits",
		munge: func(b *Block) {
			b.Bits = "not-hex"
		},
		err: ErrMalformed,
	}, {
		name: "bad tx hex",
		munge: func(b *Block) {
			b.Tx[0] = "xyz"
		},
		err: ErrInvalidHex,
	}, {
		name: "truncated tx",
		munge: func(b *Block) {
			b.Tx[0] = b.Tx[0][:8]
		},
		err: ErrMalformed,
	}}

	for _, test := range tests {
		jsonBlock := *valid
		jsonBlock.Tx = append([]string(nil), valid.Tx...)
		test.munge(&jsonBlock)

		_, err := DecodeBlock(&jsonBlock)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: unexpected err -- got %v, want %v", test.name, err,
				test.err)
		}
	}

}

// TestDecodeMerkleBlockErrors ensures malformed merkle block interchange
// structs are rejected with the expected error kinds.
func TestDecodeMerkleBlockErrors(t *testing.T) {
	params := chaincfg.MainNetParams()
	block := chainutil.NewBlock(params.GenesisBlock)
	filter := bloom.NewFilter(1, 0, 0.0001)
	filter.AddHash(block.Transactions()[0].Hash())
	msg, _ := bloom.NewMerkleBlock(block, filter)
	valid := EncodeMerkleBlock(msg)

	tests := []struct {
		name  string
		munge func(*MerkleBlock)
		err   error
	}{{
		name: "bad matched hash",
		munge: func(mb *MerkleBlock) {
			mb.Hashes[0] = "zz"
		},
		err: ErrInvalidHash,
	}, {
		name: "bad flags hex",
		munge: func(mb *MerkleBlock) {
			mb.Flags = "xyz"
		},
		err: ErrInvalidHex,
	}}

	for _, test := range tests {
		jsonMB := *valid
		jsonMB.Hashes = append([]string(nil), valid.Hashes...)
		test.munge(&jsonMB)

		_, err := DecodeMerkleBlock(&jsonMB)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: unexpected err -- got %v, want %v", test.name, err,
				test.err)
		}
	}
}
