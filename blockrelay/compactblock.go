// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrelay

import (
	"fmt"

	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// NewCompactBlock converts the provided block into a cmpctblock message keyed
// by the provided nonce.  The coinbase is always prefilled since the receiver
// cannot have it in its memory pool, while every other transaction is
// represented by its short id.
func NewCompactBlock(block *chainutil.Block, keyNonce uint64) *wire.MsgCmpctBlock {
	msgBlock := block.MsgBlock()
	key := DeriveShortIDKey(&msgBlock.Header, keyNonce)

	msg := &wire.MsgCmpctBlock{
		Header: msgBlock.Header,
		Nonce:  keyNonce,
		PrefilledTx: []wire.PrefilledTx{{
			Index: 0,
			Tx:    msgBlock.Transactions[0],
		}},
		ShortIDs: make([]wire.ShortID, 0, len(msgBlock.Transactions)-1),
	}
	for _, tx := range block.Transactions()[1:] {
		msg.ShortIDs = append(msg.ShortIDs, key.ShortID(tx.Hash()))
	}

	return msg
}

// NewCompactBlockRandomNonce converts the provided block into a cmpctblock
// message keyed by a cryptographically random nonce.
func NewCompactBlockRandomNonce(block *chainutil.Block) (*wire.MsgCmpctBlock, error) {
	keyNonce, err := wire.RandomUint64()
	if err != nil {
		return nil, err
	}
	return NewCompactBlock(block, keyNonce), nil
}

// BuildBlockTxns answers a getblocktxn request with the transactions of the
// provided block, positionally aligned to the requested index list.  It errs
// when the request is for a different block or when a requested index is out
// of range.
func BuildBlockTxns(block *chainutil.Block, req *wire.MsgGetBlockTxns) (*wire.MsgBlockTxns, error) {
	blockHash := block.Hash()
	if req.BlockHash != *blockHash {
		return nil, fmt.Errorf("request is for block %v instead of %v",
			req.BlockHash, blockHash)
	}

	transactions := block.MsgBlock().Transactions
	txns := make([]*wire.MsgTx, 0, len(req.Indexes))
	for _, index := range req.Indexes {
		if int(index) >= len(transactions) {
			return nil, fmt.Errorf("requested transaction index %d is out "+
				"of range [total %d]", index, len(transactions))
		}
		txns = append(txns, transactions[index])
	}

	return wire.NewMsgBlockTxns(blockHash, txns), nil
}
