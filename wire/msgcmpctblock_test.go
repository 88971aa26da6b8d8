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
)

// testCmpctBlock returns a compact block with two prefilled transactions at
// non-adjacent indexes and three short ids.
func testCmpctBlock(t *testing.T) *MsgCmpctBlock {
	t.Helper()

	header := mainNetGenesisHeader(t)
	msg := NewMsgCmpctBlock(&header)
	msg.Nonce = 0x0102030405060708
	msg.PrefilledTx = append(msg.PrefilledTx,
		PrefilledTx{Index: 0, Tx: testTx(false)},
		PrefilledTx{Index: 2, Tx: testTx(true)},
	)
	msg.ShortIDs = append(msg.ShortIDs,
		NewShortIDFromUint64(0x0000010203040506),
		NewShortIDFromUint64(0x0000ffffffffffff),
		NewShortIDFromUint64(1),
	)
	return msg
}

// TestShortIDUint64 ensures short ids round trip through their integer form
// and truncate to 48 bits.
func TestShortIDUint64(t *testing.T) {
	tests := []struct {
		in   uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{0x0000ffffffffffff, 0x0000ffffffffffff},
		{0xffffffffffffffff, 0x0000ffffffffffff},
		{0x0123456789abcdef, 0x0000456789abcdef},
	}
	for _, test := range tests {
		sid := NewShortIDFromUint64(test.in)
		if got := sid.Uint64(); got != test.want {
			t.Errorf("short id for %016x -- got %012x, want %012x", test.in,
				got, test.want)
		}
	}
}

// TestCmpctBlockWire tests encoding and decoding of compact block messages,
// including the differential encoding of prefilled transaction indexes.
func TestCmpctBlockWire(t *testing.T) {
	msg := testCmpctBlock(t)
	if msg.TotalTransactions() != 5 {
		t.Fatalf("unexpected total transactions -- got %d, want 5",
			msg.TotalTransactions())
	}

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("unexpected err encoding message: %v", err)
	}

	// The prefilled indexes 0 and 2 must encode as the deltas 0 and 1.
	// The first delta follows the header, nonce, and prefilled count.
	encoded := buf.Bytes()
	firstDeltaOffset := blockHeaderLen + 8 + 1
	if encoded[firstDeltaOffset] != 0x00 {
		t.Fatalf("unexpected first index delta -- got %#x, want 0x00",
			encoded[firstDeltaOffset])
	}
	secondDeltaOffset := firstDeltaOffset + 1 +
		msg.PrefilledTx[0].Tx.SerializeSize()
	if encoded[secondDeltaOffset] != 0x01 {
		t.Fatalf("unexpected second index delta -- got %#x, want 0x01",
			encoded[secondDeltaOffset])
	}

	var decoded MsgCmpctBlock
	err := decoded.BtcDecode(bytes.NewReader(encoded), ProtocolVersion)
	if err != nil {
		t.Fatalf("unexpected err decoding message: %v", err)
	}
	if !reflect.DeepEqual(&decoded, msg) {
		t.Fatalf("decoded message mismatch -- got %s, want %s",
			spew.Sdump(decoded), spew.Sdump(msg))
	}
}

// TestCmpctBlockWireErrors exercises the error paths of the compact block
// codec.
func TestCmpctBlockWireErrors(t *testing.T) {
	// The message does not exist prior to the compact blocks protocol
	// version.
	oldPver := CompactBlocksVersion - 1
	msg := testCmpctBlock(t)
	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, oldPver); !errors.Is(err, ErrInvalidMsg) {
		t.Fatalf("unexpected err encoding at old pver -- got %v, want %v",
			err, ErrInvalidMsg)
	}
	buf.Reset()
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("unexpected err encoding message: %v", err)
	}
	var decoded MsgCmpctBlock
	err := decoded.BtcDecode(bytes.NewReader(buf.Bytes()), oldPver)
	if !errors.Is(err, ErrInvalidMsg) {
		t.Fatalf("unexpected err decoding at old pver -- got %v, want %v",
			err, ErrInvalidMsg)
	}

	// Prefilled transaction indexes that are not strictly increasing must
	// be rejected on encode since they cannot be differentially encoded.
	msg = testCmpctBlock(t)
	msg.PrefilledTx[1].Index = 0
	buf.Reset()
	err = msg.BtcEncode(&buf, ProtocolVersion)
	if !errors.Is(err, ErrIndexOverflow) {
		t.Fatalf("unexpected err encoding duplicate indexes -- got %v, "+
			"want %v", err, ErrIndexOverflow)
	}

	// A declared prefilled index beyond the most transactions that can fit
	// into a block must be rejected on decode.
	header := mainNetGenesisHeader(t)
	buf.Reset()
	if err := header.Serialize(&buf); err != nil {
		t.Fatalf("unexpected err serializing header: %v", err)
	}
	var nonce uint64 = 1
	if err := writeElement(&buf, &nonce); err != nil {
		t.Fatalf("unexpected err writing nonce: %v", err)
	}
	if err := WriteVarInt(&buf, ProtocolVersion, 1); err != nil {
		t.Fatalf("unexpected err writing varint: %v", err)
	}
	err = WriteVarInt(&buf, ProtocolVersion, uint64(maxTxPerBlock))
	if err != nil {
		t.Fatalf("unexpected err writing varint: %v", err)
	}
	err = decoded.BtcDecode(bytes.NewReader(buf.Bytes()), ProtocolVersion)
	if !errors.Is(err, ErrIndexOverflow) {
		t.Fatalf("unexpected err decoding overflowing index -- got %v, "+
			"want %v", err, ErrIndexOverflow)
	}

	// Truncations anywhere within the message must fail.
	buf.Reset()
	msg = testCmpctBlock(t)
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("unexpected err encoding message: %v", err)
	}
	serialized := buf.Bytes()
	for cut := 0; cut < len(serialized); cut += 13 {
		var truncated MsgCmpctBlock
		err := truncated.BtcDecode(bytes.NewReader(serialized[:cut]),
			ProtocolVersion)
		if err == nil {
			t.Errorf("no error decoding message truncated to %d bytes", cut)
		}
	}
}
