// Copyright (c) 2013-2016 The btcsuite developers
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

// testTx returns a transaction with one input and two outputs suitable for
// exercising the transaction codec.  Witness data is attached when
// withWitness is set.
func testTx(withWitness bool) *MsgTx {
	var prevHash chainhash.Hash
	prevHash[0] = 0x2a

	tx := NewMsgTx(1)
	txIn := &TxIn{
		PreviousOutPoint: *NewOutPoint(&prevHash, 3),
		SignatureScript:  []byte{0x04, 0x31, 0x32, 0x33, 0x34},
		Sequence:         0xffffffff,
	}
	if withWitness {
		txIn.Witness = TxWitness{{0x01, 0x02}, {0x03}}
	}
	tx.AddTxIn(txIn)
	tx.AddTxOut(&TxOut{Value: 0x12345678, PkScript: []byte{0x51}})
	tx.AddTxOut(&TxOut{Value: 0x9abcdef0, PkScript: []byte{0x52}})
	return tx
}

// TestTxSerialize tests serialization and deserialization of transactions
// both with and without witness data.
func TestTxSerialize(t *testing.T) {
	for _, withWitness := range []bool{false, true} {
		tx := testTx(withWitness)

		var buf bytes.Buffer
		if err := tx.Serialize(&buf); err != nil {
			t.Fatalf("witness %v: unexpected err serializing tx: %v",
				withWitness, err)
		}
		if buf.Len() != tx.SerializeSize() {
			t.Fatalf("witness %v: unexpected serialized length -- got %d, "+
				"want %d", withWitness, buf.Len(), tx.SerializeSize())
		}

		var decoded MsgTx
		err := decoded.Deserialize(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatalf("witness %v: unexpected err deserializing tx: %v",
				withWitness, err)
		}
		if !reflect.DeepEqual(&decoded, tx) {
			t.Fatalf("witness %v: deserialized tx mismatch -- got %s, "+
				"want %s", withWitness, spew.Sdump(decoded), spew.Sdump(tx))
		}
		if decoded.HasWitness() != withWitness {
			t.Fatalf("witness %v: unexpected witness flag", withWitness)
		}
	}
}

// TestTxHashExcludesWitness ensures the transaction hash commits only to the
// witness-stripped serialization while the witness hash commits to all of it.
func TestTxHashExcludesWitness(t *testing.T) {
	stripped := testTx(false)
	witnessed := testTx(true)

	if stripped.TxHash() != witnessed.TxHash() {
		t.Fatal("witness data changed the transaction hash")
	}
	if witnessed.WitnessHash() == witnessed.TxHash() {
		t.Fatal("witness hash matches the transaction hash despite " +
			"witness data")
	}
	if stripped.WitnessHash() != stripped.TxHash() {
		t.Fatal("witness hash of a witness-free transaction differs from " +
			"its transaction hash")
	}

	// The stripped serialization of a witnessed transaction is the full
	// serialization of the witness-free one.
	var strippedBuf, noWitnessBuf bytes.Buffer
	if err := stripped.Serialize(&strippedBuf); err != nil {
		t.Fatalf("unexpected err serializing tx: %v", err)
	}
	if err := witnessed.SerializeNoWitness(&noWitnessBuf); err != nil {
		t.Fatalf("unexpected err serializing tx without witness: %v", err)
	}
	if !bytes.Equal(noWitnessBuf.Bytes(), strippedBuf.Bytes()) {
		t.Fatal("witness-stripped serialization mismatch")
	}
}

// TestTxDeserializeErrors ensures deserializing truncated transactions fails.
func TestTxDeserializeErrors(t *testing.T) {
	tx := testTx(true)
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		t.Fatalf("unexpected err serializing tx: %v", err)
	}
	serialized := buf.Bytes()

	for cut := 0; cut < len(serialized); cut += 7 {
		var decoded MsgTx
		err := decoded.Deserialize(bytes.NewReader(serialized[:cut]))
		if err == nil {
			t.Errorf("no error deserializing tx truncated to %d bytes", cut)
		}
	}
}

// TestTxDeserializeEmptyWitness ensures a transaction carrying the witness
// marker and flag but no witness data on any input is rejected, since the
// flag would be dropped on reserialization.
func TestTxDeserializeEmptyWitness(t *testing.T) {
	tx := testTx(false)
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		t.Fatalf("unexpected err serializing tx: %v", err)
	}
	serialized := buf.Bytes()

	// Splice in the witness marker and flag after the version, keep the
	// inputs and outputs as is, and append a zero witness item count for
	// the lone input ahead of the lock time.
	spliced := make([]byte, 0, len(serialized)+3)
	spliced = append(spliced, serialized[:4]...)
	spliced = append(spliced, txWitnessMarker, txWitnessFlag)
	spliced = append(spliced, serialized[4:len(serialized)-4]...)
	spliced = append(spliced, 0x00)
	spliced = append(spliced, serialized[len(serialized)-4:]...)

	var decoded MsgTx
	err := decoded.Deserialize(bytes.NewReader(spliced))
	if !errors.Is(err, ErrInvalidMsg) {
		t.Fatalf("unexpected err deserializing tx with superfluous "+
			"witness flag: %v, want %v", err, ErrInvalidMsg)
	}
}
