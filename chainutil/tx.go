// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

import (
	"bytes"
	"io"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/wire"
)

// TxIndexUnknown is the value returned for a transaction index that is
// unknown.  This is typically because the transaction has not been inserted
// into a block yet.
const TxIndexUnknown = -1

// Tx defines a transaction that provides easier and more efficient
// manipulation of raw wire protocol transactions.  It memoizes the hash for
// the transaction on its first access so subsequent accesses don't have to
// repeat the relatively expensive hashing operations.
//
// The memoized hashes are only valid while the underlying transaction is not
// modified.  Callers that mutate the underlying transaction must call Refresh
// before the next hash access.
type Tx struct {
	msgTx        *wire.MsgTx     // Underlying MsgTx
	txHash       *chainhash.Hash // Cached transaction hash
	witnessHash  *chainhash.Hash // Cached witness hash
	txHasWitness *bool           // Cached witness flag
	txIndex      int             // Position within a block or TxIndexUnknown
}

// MsgTx returns the underlying wire.MsgTx for the transaction.
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// Hash returns the hash of the transaction.  This is equivalent to calling
// TxHash on the underlying wire.MsgTx, however it caches the result so
// subsequent calls are more efficient.
func (t *Tx) Hash() *chainhash.Hash {
	// Return the cached hash if it has already been generated.
	if t.txHash != nil {
		return t.txHash
	}

	hash := t.msgTx.TxHash()
	t.txHash = &hash
	return &hash
}

// WitnessHash returns the witness hash of the transaction.  This is
// equivalent to calling WitnessHash on the underlying wire.MsgTx, however it
// caches the result so subsequent calls are more efficient.
func (t *Tx) WitnessHash() *chainhash.Hash {
	if t.witnessHash != nil {
		return t.witnessHash
	}

	hash := t.msgTx.WitnessHash()
	t.witnessHash = &hash
	return &hash
}

// HasWitness returns whether the transaction has witness data attached to any
// of its inputs, caching the result.
func (t *Tx) HasWitness() bool {
	if t.txHasWitness != nil {
		return *t.txHasWitness
	}

	hasWitness := t.msgTx.HasWitness()
	t.txHasWitness = &hasWitness
	return hasWitness
}

// Index returns the saved index of the transaction within a block.  This
// value will be TxIndexUnknown if it hasn't already explicitly been set.
func (t *Tx) Index() int {
	return t.txIndex
}

// SetIndex sets the index of the transaction in within a block.
func (t *Tx) SetIndex(index int) {
	t.txIndex = index
}

// Refresh discards the cached hashes so they are recomputed on the next
// access.  It must be called after any mutation of the underlying wire.MsgTx
// so a stale hash can never be observed.
func (t *Tx) Refresh() {
	t.txHash = nil
	t.witnessHash = nil
	t.txHasWitness = nil
}

// NewTx returns a new instance of a transaction given an underlying
// wire.MsgTx.  See Tx.
func NewTx(msgTx *wire.MsgTx) *Tx {
	return &Tx{
		msgTx:   msgTx,
		txIndex: TxIndexUnknown,
	}
}

// NewTxDeep returns a new instance of a transaction given an underlying
// wire.MsgTx.  Unlike NewTx, it completely copies the data in the msgTx so
// the new Tx has its own unique copy which can safely be mutated.
func NewTxDeep(msgTx *wire.MsgTx) *Tx {
	return &Tx{
		msgTx:   msgTx.Copy(),
		txIndex: TxIndexUnknown,
	}
}

// NewTxFromBytes returns a new instance of a transaction given the serialized
// bytes.  See Tx.
func NewTxFromBytes(serializedTx []byte) (*Tx, error) {
	br := bytes.NewReader(serializedTx)
	return NewTxFromReader(br)
}

// NewTxFromReader returns a new instance of a transaction given a Reader to
// deserialize the transaction.  See Tx.
func NewTxFromReader(r io.Reader) (*Tx, error) {
	// Deserialize the bytes into a MsgTx.
	var msgTx wire.MsgTx
	err := msgTx.Deserialize(r)
	if err != nil {
		return nil, err
	}

	return &Tx{
		msgTx:   &msgTx,
		txIndex: TxIndexUnknown,
	}, nil
}
