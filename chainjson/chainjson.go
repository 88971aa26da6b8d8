// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainjson

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// BlockHeader models the JSON interchange form of a block header.  Hashes are
// reversed-hex strings in the conventional display order and bits is the hex
// form of the compact difficulty target.  Every binary header field is
// represented so the conversion is lossless in both directions.
type BlockHeader struct {
	Version           int32  `json:"version"`
	PreviousBlockHash string `json:"previousblockhash"`
	MerkleRoot        string `json:"merkleroot"`
	Time              int64  `json:"time"`
	Bits              string `json:"bits"`
	Nonce             uint32 `json:"nonce"`
}

// Block models the JSON interchange form of a full block.  The hash field is
// derived from the header and carried for convenience; the transactions are
// full serialized bodies as hex strings so the conversion is lossless.
type Block struct {
	Hash string   `json:"hash"`
	BlockHeader
	Tx []string `json:"tx"`
}

// MerkleBlock models the JSON interchange form of a merkleblock message.
type MerkleBlock struct {
	Hash string `json:"hash"`
	BlockHeader
	TotalTransactions uint32   `json:"totaltransactions"`
	Hashes            []string `json:"hashes"`
	Flags             string   `json:"flags"`
}

// encodeHeader converts a wire block header to its interchange form.
func encodeHeader(header *wire.BlockHeader) BlockHeader {
	return BlockHeader{
		Version:           header.Version,
		PreviousBlockHash: header.PrevBlock.String(),
		MerkleRoot:        header.MerkleRoot.String(),
		Time:              header.Timestamp.Unix(),
		Bits:              strconv.FormatUint(uint64(header.Bits), 16),
		Nonce:             header.Nonce,
	}
}

// decodeHeader converts the interchange form of a header back to its wire
// form.
func decodeHeader(jsonHeader *BlockHeader) (*wire.BlockHeader, error) {
	prevBlock, err := chainhash.NewHashFromStr(jsonHeader.PreviousBlockHash)
	if err != nil {
		str := fmt.Sprintf("invalid previous block hash %q: %v",
			jsonHeader.PreviousBlockHash, err)
		return nil, makeError(ErrInvalidHash, str)
	}
	merkleRoot, err := chainhash.NewHashFromStr(jsonHeader.MerkleRoot)
	if err != nil {
		str := fmt.Sprintf("invalid merkle root %q: %v",
			jsonHeader.MerkleRoot, err)
		return nil, makeError(ErrInvalidHash, str)
	}
	bits, err := strconv.ParseUint(jsonHeader.Bits, 16, 32)
	if err != nil {
		str := fmt.Sprintf("invalid difficulty bits %q: %v", jsonHeader.Bits,
			err)
		return nil, makeError(ErrMalformed, str)
	}

	return &wire.BlockHeader{
		Version:    jsonHeader.Version,
		PrevBlock:  *prevBlock,
		MerkleRoot: *merkleRoot,
		Timestamp:  time.Unix(jsonHeader.Time, 0),
		Bits:       uint32(bits),
		Nonce:      jsonHeader.Nonce,
	}, nil
}

// EncodeBlock converts a block to its JSON interchange form.
func EncodeBlock(block *chainutil.Block) (*Block, error) {
	msgBlock := block.MsgBlock()

	txns := make([]string, 0, len(msgBlock.Transactions))
	for _, tx := range msgBlock.Transactions {
		var buf bytes.Buffer
		buf.Grow(tx.SerializeSize())
		if err := tx.Serialize(&buf); err != nil {
			return nil, err
		}
		txns = append(txns, hex.EncodeToString(buf.Bytes()))
	}

	return &Block{
		Hash:        block.Hash().String(),
		BlockHeader: encodeHeader(&msgBlock.Header),
		Tx:          txns,
	}, nil
}

// DecodeBlock converts the JSON interchange form of a block back to a block.
// The hash field is not trusted; the returned block derives its hash from the
// decoded header.
func DecodeBlock(jsonBlock *Block) (*chainutil.Block, error) {
	header, err := decodeHeader(&jsonBlock.BlockHeader)
	if err != nil {
		return nil, err
	}

	msgBlock := &wire.MsgBlock{Header: *header}
	for i, txHex := range jsonBlock.Tx {
		serialized, err := hex.DecodeString(txHex)
		if err != nil {
			str := fmt.Sprintf("invalid transaction %d hex: %v", i, err)
			return nil, makeError(ErrInvalidHex, str)
		}
		var tx wire.MsgTx
		if err := tx.Deserialize(bytes.NewReader(serialized)); err != nil {
			str := fmt.Sprintf("invalid transaction %d: %v", i, err)
			return nil, makeError(ErrMalformed, str)
		}
		msgBlock.Transactions = append(msgBlock.Transactions, &tx)
	}

	return chainutil.NewBlock(msgBlock), nil
}

// EncodeMerkleBlock converts a merkleblock message to its JSON interchange
// form.
func EncodeMerkleBlock(msg *wire.MsgMerkleBlock) *MerkleBlock {
	hashes := make([]string, 0, len(msg.Hashes))
	for _, hash := range msg.Hashes {
		hashes = append(hashes, hash.String())
	}

	return &MerkleBlock{
		Hash:              msg.Header.BlockHash().String(),
		BlockHeader:       encodeHeader(&msg.Header),
		TotalTransactions: msg.Transactions,
		Hashes:            hashes,
		Flags:             hex.EncodeToString(msg.Flags),
	}
}

// DecodeMerkleBlock converts the JSON interchange form of a merkleblock back
// to the wire message.
func DecodeMerkleBlock(jsonMB *MerkleBlock) (*wire.MsgMerkleBlock, error) {
	header, err := decodeHeader(&jsonMB.BlockHeader)
	if err != nil {
		return nil, err
	}

	msg := &wire.MsgMerkleBlock{
		Header:       *header,
		Transactions: jsonMB.TotalTransactions,
	}
	for i, hashStr := range jsonMB.Hashes {
		hash, err := chainhash.NewHashFromStr(hashStr)
		if err != nil {
			str := fmt.Sprintf("invalid hash %d %q: %v", i, hashStr, err)
			return nil, makeError(ErrInvalidHash, str)
		}
		if err := msg.AddTxHash(hash); err != nil {
			return nil, makeError(ErrMalformed, err.Error())
		}
	}
	flags, err := hex.DecodeString(jsonMB.Flags)
	if err != nil {
		str := fmt.Sprintf("invalid flags hex %q: %v", jsonMB.Flags, err)
		return nil, makeError(ErrInvalidHex, str)
	}
	msg.Flags = flags

	return msg, nil
}
