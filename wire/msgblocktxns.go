// Copyright (c) 2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
)

// MsgBlockTxns implements the Message interface and represents a blocktxn
// message.  It is sent in response to a getblocktxn message (MsgGetBlockTxns)
// and carries the requested transactions in the same order as the request's
// index list.
//
// This message was not added until protocol version CompactBlocksVersion.
type MsgBlockTxns struct {
	BlockHash    chainhash.Hash
	Transactions []*MsgTx
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlockTxns) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// BtcDecode decodes r using the protocol encoding into the receiver.  This is
// part of the Message interface implementation.
func (msg *MsgBlockTxns) BtcDecode(r io.Reader, pver uint32) error {
	const op = "MsgBlockTxns.BtcDecode"
	if pver < CompactBlocksVersion {
		str := fmt.Sprintf("blocktxn message invalid for protocol "+
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
		str := fmt.Sprintf("too many transactions for message "+
			"[count %d, max %d]", count, maxTxPerBlock)
		return messageError(op, ErrTooManyTxs, str)
	}

	msg.Transactions = make([]*MsgTx, 0, count)
	for i := uint64(0); i < count; i++ {
		tx := MsgTx{}
		err := tx.BtcDecode(r, pver)
		if err != nil {
			return err
		}
		msg.Transactions = append(msg.Transactions, &tx)
	}

	return nil
}

// BtcEncode encodes the receiver to w using the protocol encoding.  This is
// part of the Message interface implementation.
func (msg *MsgBlockTxns) BtcEncode(w io.Writer, pver uint32) error {
	const op = "MsgBlockTxns.BtcEncode"
	if pver < CompactBlocksVersion {
		str := fmt.Sprintf("blocktxn message invalid for protocol "+
			"version %d", pver)
		return messageError(op, ErrInvalidMsg, str)
	}

	numTxns := len(msg.Transactions)
	if numTxns > maxTxPerBlock {
		str := fmt.Sprintf("too many transactions for message "+
			"[count %d, max %d]", numTxns, maxTxPerBlock)
		return messageError(op, ErrTooManyTxs, str)
	}

	err := writeElement(w, &msg.BlockHash)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, pver, uint64(numTxns))
	if err != nil {
		return err
	}

	for _, tx := range msg.Transactions {
		err = tx.BtcEncode(w, pver)
		if err != nil {
			return err
		}
	}

	return nil
}

// Serialize encodes the message to w using a format that is suitable for
// long-term storage such as a database.
func (msg *MsgBlockTxns) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, ProtocolVersion)
}

// Deserialize decodes a message from r into the receiver using a format that
// is suitable for long-term storage such as a database.
func (msg *MsgBlockTxns) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, ProtocolVersion)
}

// Command returns the protocol command string for the message.  This is part
// of the Message interface implementation.
func (msg *MsgBlockTxns) Command() string {
	return CmdBlockTxn
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver.  This is part of the Message interface implementation.
func (msg *MsgBlockTxns) MaxPayloadLength(pver uint32) uint32 {
	return MaxBlockPayload
}

// NewMsgBlockTxns returns a new blocktxn message that conforms to the Message
// interface using the passed parameters.
func NewMsgBlockTxns(blockHash *chainhash.Hash, txns []*MsgTx) *MsgBlockTxns {
	return &MsgBlockTxns{
		BlockHash:    *blockHash,
		Transactions: txns,
	}
}
