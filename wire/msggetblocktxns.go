// Copyright (c) 2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"math"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
)

// MsgGetBlockTxns implements the Message interface and represents a
// getblocktxn message.  It is sent in response to a compact block the
// receiver could not fully reconstruct from its local transactions and
// requests the transactions at the given absolute indexes within the block.
//
// The indexes must be strictly increasing and free of duplicates.  On the
// wire they are differentially encoded: the first index is absolute and each
// subsequent value encodes the distance to one past the previous index.
//
// This message was not added until protocol version CompactBlocksVersion.
type MsgGetBlockTxns struct {
	BlockHash chainhash.Hash
	Indexes   []uint32
}

// BtcDecode decodes r using the protocol encoding into the receiver.  This is
// part of the Message interface implementation.
func (msg *MsgGetBlockTxns) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgGetBlockTxns.BtcDecode"
	if pver < CompactBlocksVersion {
		str := fmt.Sprintf("getblocktxn message invalid for protocol "+
			"version %d", pver)
		return messageError(op, ErrInvalidMsg, str)
	}

	err := readElement(r, &msg.BlockHash)
	if err != nil {
		return err
	}

	count, err := ReadVarInt(r, pver)
	if err != nil {
		return err
	}
	if count > maxTxPerBlock {
		str := fmt.Sprintf("too many requested transactions for message "+
			"[count %d, max %d]", count, maxTxPerBlock)
		return messageError(op, ErrTooManyTxs, str)
	}

	msg.Indexes = make([]uint32, 0, count)
	lastIndex := int64(-1)
	for i := uint64(0); i < count; i++ {
		delta, err := ReadVarInt(r, pver)
		if err != nil {
			return err
		}
		index := lastIndex + 1 + int64(delta)
		if index > math.MaxUint32 || index >= int64(maxTxPerBlock) {
			str := fmt.Sprintf("requested transaction index overflow "+
				"[index %d, max %d]", index, maxTxPerBlock-1)
			return messageError(op, ErrIndexOverflow, str)
		}
		lastIndex = index
		msg.Indexes = append(msg.Indexes, uint32(index))
	}

	return nil
}

// BtcEncode encodes the receiver to w using the protocol encoding.  This is
// part of the Message interface implementation.
func (msg *MsgGetBlockTxns) BtcEncode(w io.Writer, pver uint32) error {
	const op = "MsgGetBlockTxns.BtcEncode"
	if pver < CompactBlocksVersion {
		str := fmt.Sprintf("getblocktxn message invalid for protocol "+
			"version %d", pver)
		return messageError(op, ErrInvalidMsg, str)
	}

	numIndexes := len(msg.Indexes)
	if numIndexes > maxTxPerBlock {
		str := fmt.Sprintf("too many requested transactions for message "+
			"[count %d, max %d]", numIndexes, maxTxPerBlock)
		return messageError(op, ErrTooManyTxs, str)
	}

	err := writeElement(w, &msg.BlockHash)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, pver, uint64(numIndexes))
	if err != nil {
		return err
	}

	lastIndex := int64(-1)
	for _, index := range msg.Indexes {
		delta := int64(index) - (lastIndex + 1)
		if delta < 0 {
			str := fmt.Sprintf("requested transaction indexes are not "+
				"strictly increasing [index %d after %d]", index,
				lastIndex)
			return messageError(op, ErrIndexOverflow, str)
		}
		lastIndex = int64(index)

		err = WriteVarInt(w, pver, uint64(delta))
		if err != nil {
			return err
		}
	}

	return nil
}

// Serialize encodes the message to w using a format that is suitable for
// long-term storage such as a database.
func (msg *MsgGetBlockTxns) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, ProtocolVersion)
}

// Deserialize decodes a message from r into the receiver using a format that
// is suitable for long-term storage such as a database.
func (msg *MsgGetBlockTxns) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, ProtocolVersion)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgGetBlockTxns) Command() string {
	return CmdGetBlockTxn
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgGetBlockTxns) MaxPayloadLength(pver uint32) uint32 {
	// Block hash + varint count + a varint per requested index.
	return chainhash.HashSize + MaxVarIntPayload +
		(maxTxPerBlock * MaxVarIntPayload)
}

// NewMsgGetBlockTxns returns a new getblocktxn message that conforms to the
// Message interface using the passed parameters.
func NewMsgGetBlockTxns(blockHash *chainhash.Hash, indexes []uint32) *MsgGetBlockTxns {
	return &MsgGetBlockTxns{
		BlockHash: *blockHash,
		Indexes:   indexes,
	}
}
