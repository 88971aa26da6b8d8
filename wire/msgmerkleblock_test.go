// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
)

// testMerkleBlock returns a merkleblock message with a few proof hashes and
// flag bytes.
func testMerkleBlock(t *testing.T) *MsgMerkleBlock {
	t.Helper()

	header := mainNetGenesisHeader(t)
	msg := NewMsgMerkleBlock(&header)
	msg.Transactions = 7
	for i := byte(1); i <= 3; i++ {
		var hash chainhash.Hash
		hash[0] = i
		if err := msg.AddTxHash(&hash); err != nil {
			t.Fatalf("unexpected err adding tx hash: %v", err)
		}
	}
	msg.Flags = []byte{0x1d, 0x01}
	return msg
}

// TestMerkleBlockWire tests encoding and decoding of merkleblock messages.
func TestMerkleBlockWire(t *testing.T) {
	msg := testMerkleBlock(t)

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("unexpected err encoding message: %v", err)
	}

	var decoded MsgMerkleBlock
	err := decoded.BtcDecode(bytes.NewReader(buf.Bytes()), ProtocolVersion)
	if err != nil {
		t.Fatalf("unexpected err decoding message: %v", err)
	}
	if !reflect.DeepEqual(&decoded, msg) {
		t.Fatalf("decoded message mismatch -- got %s, want %s",
			spew.Sdump(decoded), spew.Sdump(msg))
	}
}

// TestMerkleBlockWireErrors exercises the error paths of the merkleblock
// codec.
func TestMerkleBlockWireErrors(t *testing.T) {
	// A message that declares more proof hashes than could possibly fit
	// must be rejected up front.
	header := mainNetGenesisHeader(t)
	var buf bytes.Buffer
	if err := header.Serialize(&buf); err != nil {
		t.Fatalf("unexpected err serializing header: %v", err)
	}
	var numTxns uint32 = 1
	if err := writeElement(&buf, &numTxns); err != nil {
		t.Fatalf("unexpected err writing tx count: %v", err)
	}
	err := WriteVarInt(&buf, ProtocolVersion, uint64(maxTxPerBlock)+1)
	if err != nil {
		t.Fatalf("unexpected err writing varint: %v", err)
	}
	var decoded MsgMerkleBlock
	err = decoded.BtcDecode(bytes.NewReader(buf.Bytes()), ProtocolVersion)
	if !errors.Is(err, ErrTooManyProofs) {
		t.Fatalf("unexpected err -- got %v, want %v", err, ErrTooManyProofs)
	}

	// A message with more flag bytes than could possibly fit must be
	// rejected on encode.
	msg := testMerkleBlock(t)
	msg.Flags = make([]byte, maxFlagsPerMerkleBlock+1)
	buf.Reset()
	err = msg.BtcEncode(&buf, ProtocolVersion)
	if !errors.Is(err, ErrTooManyFlagBytes) {
		t.Fatalf("unexpected err -- got %v, want %v", err,
			ErrTooManyFlagBytes)
	}

	// Truncations anywhere within the message must fail.
	msg = testMerkleBlock(t)
	buf.Reset()
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("unexpected err encoding message: %v", err)
	}
	serialized := buf.Bytes()
	for cut := 0; cut < len(serialized); cut += 11 {
		var truncated MsgMerkleBlock
		err := truncated.BtcDecode(bytes.NewReader(serialized[:cut]),
			ProtocolVersion)
		if err == nil {
			t.Errorf("no error decoding message truncated to %d bytes", cut)
		}
	}
}
