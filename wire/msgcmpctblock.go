// Copyright (c) 2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"math"
)

const (
	// ShortIDSize is the number of bytes in a short transaction id.
	ShortIDSize = 6

	// maxShortIDsPerMsg is the maximum number of short transaction ids
	// that could possibly fit into a compact block message.
	maxShortIDsPerMsg = maxTxPerBlock

	// maxPrefilledPerMsg is the maximum number of prefilled transactions
	// that could possibly fit into a compact block message.
	maxPrefilledPerMsg = maxTxPerBlock
)

// ShortID represents a short transaction id as found in compact block
// messages.  It is the truncated output of a keyed hash function and only
// meaningful within the context of the block that declared it.
type ShortID [ShortIDSize]byte

// Uint64 interprets the short id as a little-endian unsigned integer.
func (sid ShortID) Uint64() uint64 {
	return uint64(sid[0]) | uint64(sid[1])<<8 | uint64(sid[2])<<16 |
		uint64(sid[3])<<24 | uint64(sid[4])<<32 | uint64(sid[5])<<40
}

// NewShortIDFromUint64 returns the short id for the low 48 bits of the
// provided unsigned integer.
func NewShortIDFromUint64(v uint64) ShortID {
	var sid ShortID
	sid[0] = byte(v)
	sid[1] = byte(v >> 8)
	sid[2] = byte(v >> 16)
	sid[3] = byte(v >> 24)
	sid[4] = byte(v >> 32)
	sid[5] = byte(v >> 40)
	return sid
}

// PrefilledTx represents a transaction that is sent along with a compact
// block because the sender predicts the receiver does not have it, such as
// the coinbase.  The index is the absolute position of the transaction within
// the block it came from.
type PrefilledTx struct {
	Index uint32
	Tx    *MsgTx
}

// MsgCmpctBlock implements the Message interface and represents a cmpctblock
// message.  It carries a block header, a nonce that keys the per-block short
// id function, the transactions the sender chose to include outright, and
// short ids for every remaining transaction in the block.
//
// This message was not added until protocol version CompactBlocksVersion.
type MsgCmpctBlock struct {
	Header      BlockHeader
	Nonce       uint64
	PrefilledTx []PrefilledTx
	ShortIDs    []ShortID
}

// TotalTransactions returns the number of transactions in the block the
// compact block represents.
func (msg *MsgCmpctBlock) TotalTransactions() int {
	return len(msg.PrefilledTx) + len(msg.ShortIDs)
}

// BtcDecode decodes r using the protocol encoding into the receiver.  This is
// part of the Message interface implementation.
func (msg *MsgCmpctBlock) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgCmpctBlock.BtcDecode"
	if pver < CompactBlocksVersion {
		str := fmt.Sprintf("cmpctblock message invalid for protocol "+
			"version %d", pver)
		return messageError(op, ErrInvalidMsg, str)
	}

	err := readBlockHeader(r, pver, &msg.Header)
	if err != nil {
		return err
	}

	err = readElement(r, &msg.Nonce)
	if err != nil {
		return err
	}

	// Read the prefilled transactions along with their differentially
	// encoded indexes.
	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if count > maxPrefilledPerMsg {
		str := fmt.Sprintf("too many prefilled transactions for message "+
			"[count %d, max %d]", count, maxPrefilledPerMsg)
		return messageError(op, ErrTooManyPrefilled, str)
	}

	msg.PrefilledTx = make([]PrefilledTx, 0, count)
	lastIndex := int64(-1)
	for i := uint64(0); i < count; i++ {
		delta, err := ReadVarInt(r, pver)
		if err != nil {
			return err
		}
		index := lastIndex + 1 + int64(delta)
		if index > math.MaxUint32 || index >= int64(maxTxPerBlock) {
			str := fmt.Sprintf("prefilled transaction index overflow "+
				"[index %d, max %d]", index, maxTxPerBlock-1)
			return messageError(op, ErrIndexOverflow, str)
		}
		lastIndex = index

		tx := MsgTx{}
		err = tx.BtcDecode(r, pver)
		if err != nil {
			return err
		}
		msg.PrefilledTx = append(msg.PrefilledTx, PrefilledTx{
			Index: uint32(index),
			Tx:    &tx,
		})
	}

	// Read the short ids.
	count, err = ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if count > maxShortIDsPerMsg {
		str := fmt.Sprintf("too many short ids for message [count %d, "+
			"max %d]", count, maxShortIDsPerMsg)
		return messageError(op, ErrTooManyShortIDs, str)
	}

	msg.ShortIDs = make([]ShortID, count)
	for i := uint64(0); i < count; i++ {
		err = readElement(r, (*[ShortIDSize]byte)(&msg.ShortIDs[i]))
		if err != nil {
			return err
		}
	}

	return nil
}

// BtcEncode encodes the receiver to w using the protocol encoding.  This is
// part of the Message interface implementation.
func (msg *MsgCmpctBlock) BtcEncode(w io.Writer, pver uint32) error {
	const op = "MsgCmpctBlock.BtcEncode"
	if pver < CompactBlocksVersion {
		str := fmt.Sprintf("cmpctblock message invalid for protocol "+
			"version %d", pver)
		return messageError(op, ErrInvalidMsg, str)
	}

	numPrefilled := len(msg.PrefilledTx)
	if numPrefilled > maxPrefilledPerMsg {
		str := fmt.Sprintf("too many prefilled transactions for message "+
			"[count %d, max %d]", numPrefilled, maxPrefilledPerMsg)
		return messageError(op, ErrTooManyPrefilled, str)
	}
	numShortIDs := len(msg.ShortIDs)
	if numShortIDs > maxShortIDsPerMsg {
		str := fmt.Sprintf("too many short ids for message [count %d, "+
			"max %d]", numShortIDs, maxShortIDsPerMsg)
		return messageError(op, ErrTooManyShortIDs, str)
	}

	err := writeBlockHeader(w, pver, &msg.Header)
	if err != nil {
		return err
	}

	err = writeElement(w, &msg.Nonce)
	if err != nil {
		return err
	}

	// Write the prefilled transactions with differentially encoded
	// indexes.  The first index is absolute and every subsequent one is
	// relative to one past the previous index, which must therefore be
	// strictly increasing.
	err = WriteVarInt(w, pver, uint64(numPrefilled))
	if err != nil {
		return err
	}
	lastIndex := int64(-1)
	for _, pft := range msg.PrefilledTx {
		delta := int64(pft.Index) - (lastIndex + 1)
		if delta < 0 {
			str := fmt.Sprintf("prefilled transaction indexes are not "+
				"strictly increasing [index %d after %d]", pft.Index,
				lastIndex)
			return messageError(op, ErrIndexOverflow, str)
		}
		lastIndex = int64(pft.Index)

		err = WriteVarInt(w, pver, uint64(delta))
		if err != nil {
			return err
		}
		err = pft.Tx.BtcEncode(w, pver)
		if err != nil {
			return err
		}
	}

	// Write the short ids.
	err = WriteVarInt(w, pver, uint64(numShortIDs))
	if err != nil {
		return err
	}
	for i := range msg.ShortIDs {
		err = writeElement(w, (*[ShortIDSize]byte)(&msg.ShortIDs[i]))
		if err != nil {
			return err
		}
	}

	return nil
}

// Serialize encodes the compact block to w using a format that is suitable
// for long-term storage such as a database.
func (msg *MsgCmpctBlock) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, ProtocolVersion)
}

// Deserialize decodes a compact block from r into the receiver using a format
// that is suitable for long-term storage such as a database.
func (msg *MsgCmpctBlock) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, ProtocolVersion)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgCmpctBlock) Command() string {
	return CmdCmpctBlock
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgCmpctBlock) MaxPayloadLength(pver uint32) uint32 {
	return MaxBlockPayload
}

// NewMsgCmpctBlock returns a new cmpctblock message that conforms to the
// Message interface.  See MsgCmpctBlock for details.
func NewMsgCmpctBlock(bh *BlockHeader) *MsgCmpctBlock {
	return &MsgCmpctBlock{
		Header:      *bh,
		PrefilledTx: make([]PrefilledTx, 0),
		ShortIDs:    make([]ShortID, 0),
	}
}
