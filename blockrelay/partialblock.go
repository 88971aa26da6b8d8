// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockrelay

import (
	"fmt"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// TxSource provides access to the transactions a peer already knows about,
// typically backed by a memory pool.  The reconciliation routines consult it
// to resolve short ids to transactions without re-downloading them.
//
// The interface contract requires that all of the functions are safe for
// concurrent access.
type TxSource interface {
	// Transactions returns all of the transactions known to the source.
	Transactions() []*chainutil.Tx
}

// PartialBlock houses the reconstruction state for a block received as a
// compact block.  It tracks which transaction slots have been resolved from
// prefilled entries, memory pool matches, and follow-up responses, and
// assembles the full block once every slot is filled.
//
// The zero value is not valid.  Use NewPartialBlock to initialize one from a
// received cmpctblock message.
//
// A PartialBlock is mutated in place across the phases of one reconciliation
// attempt and therefore must only be accessed by one goroutine at a time.
type PartialBlock struct {
	header    wire.BlockHeader
	blockHash chainhash.Hash
	key       ShortIDKey

	// slots holds the transactions placed at each absolute position within
	// the block.  A nil entry is an unresolved slot.
	slots []*wire.MsgTx

	// sidToSlot maps each declared short id to the slot it resolves.
	sidToSlot map[uint64]int

	// collided tracks slots for which two distinct local transactions
	// matched the declared short id.  Such matches are ambiguous and the
	// slots are intentionally left unresolved rather than guessing.
	collided map[int]bool

	// requested holds the slot indexes of the most recent missing
	// transactions request so a response can be applied positionally.
	requested []uint32

	filled int
}

// NewPartialBlock validates the internal consistency of the provided
// cmpctblock message and initializes the reconstruction state for it.  It
// errs when a prefilled transaction index is out of range or not strictly
// increasing, or when two declared short ids are identical, since the latter
// makes slot resolution inherently ambiguous.
func NewPartialBlock(msg *wire.MsgCmpctBlock) (*PartialBlock, error) {
	totalTxns := msg.TotalTransactions()
	if totalTxns == 0 {
		return nil, fmt.Errorf("compact block declares no transactions")
	}

	pb := &PartialBlock{
		header:    msg.Header,
		blockHash: msg.Header.BlockHash(),
		key:       DeriveShortIDKey(&msg.Header, msg.Nonce),
		slots:     make([]*wire.MsgTx, totalTxns),
		sidToSlot: make(map[uint64]int, len(msg.ShortIDs)),
		collided:  make(map[int]bool),
	}

	// Place the prefilled transactions into their absolute slots.  The
	// indexes must be strictly increasing and within the total declared
	// transaction count.  Messages that arrived over the wire already
	// satisfy the ordering, but locally constructed ones might not.
	lastIndex := -1
	for _, prefilled := range msg.PrefilledTx {
		if int(prefilled.Index) <= lastIndex {
			return nil, fmt.Errorf("prefilled transaction index %d is not "+
				"strictly increasing [previous %d]", prefilled.Index,
				lastIndex)
		}
		lastIndex = int(prefilled.Index)
		if int(prefilled.Index) >= totalTxns {
			return nil, fmt.Errorf("prefilled transaction index %d is out "+
				"of range [total %d]", prefilled.Index, totalTxns)
		}
		pb.slots[prefilled.Index] = prefilled.Tx
		pb.filled++
	}

	// Map each declared short id to the slot it resolves.  The slots not
	// occupied by prefilled transactions take the short ids in order.
	sidIdx := 0
	for slot := 0; slot < totalTxns && sidIdx < len(msg.ShortIDs); slot++ {
		if pb.slots[slot] != nil {
			continue
		}

		sid := msg.ShortIDs[sidIdx].Uint64()
		sidIdx++
		if _, exists := pb.sidToSlot[sid]; exists {
			return nil, fmt.Errorf("compact block declares duplicate short "+
				"id %012x", sid)
		}
		pb.sidToSlot[sid] = slot
	}

	return pb, nil
}

// Header returns the header of the block being reconstructed.
func (pb *PartialBlock) Header() wire.BlockHeader {
	return pb.header
}

// BlockHash returns the hash of the block being reconstructed.
func (pb *PartialBlock) BlockHash() chainhash.Hash {
	return pb.blockHash
}

// IsFull returns whether every transaction slot has been resolved.
func (pb *PartialBlock) IsFull() bool {
	return pb.filled == len(pb.slots)
}

// FillFromPool attempts to resolve the unresolved slots by computing the
// short id of every transaction in the provided source and placing matches
// into the slots that declared them.  When two distinct transactions from the
// source match the same slot, the match is ambiguous and the slot is left
// unresolved rather than guessing.
//
// It returns whether the block is fully reconstructible afterwards.
func (pb *PartialBlock) FillFromPool(src TxSource) bool {
	for _, tx := range src.Transactions() {
		sid := pb.key.ShortID(tx.Hash()).Uint64()
		slot, ok := pb.sidToSlot[sid]
		if !ok || pb.collided[slot] {
			continue
		}

		switch existing := pb.slots[slot]; {
		case existing == nil:
			pb.slots[slot] = tx.MsgTx()
			pb.filled++

		case existing.TxHash() != *tx.Hash():
			// A second distinct transaction matched the same short
			// id.  Evict the earlier match and poison the slot so it
			// is fetched from the remote peer instead.
			log.Debugf("Short id %012x of block %v is ambiguous, "+
				"leaving slot %d unresolved", sid, pb.blockHash, slot)
			pb.slots[slot] = nil
			pb.filled--
			pb.collided[slot] = true
		}
	}

	return pb.IsFull()
}

// MissingRequest returns a getblocktxn message requesting the transactions
// for every slot that remains unresolved, in increasing index order.  It
// returns nil when the block is already fully reconstructible.
func (pb *PartialBlock) MissingRequest() *wire.MsgGetBlockTxns {
	if pb.IsFull() {
		return nil
	}

	indexes := make([]uint32, 0, len(pb.slots)-pb.filled)
	for slot, tx := range pb.slots {
		if tx == nil {
			indexes = append(indexes, uint32(slot))
		}
	}
	pb.requested = indexes

	return wire.NewMsgGetBlockTxns(&pb.blockHash, indexes)
}

// FillMissing applies the transactions from a blocktxn response to the slots
// requested by the most recent MissingRequest, positionally and in order.  A
// response whose transaction count does not match the outstanding request is
// rejected outright and fills nothing.
//
// It returns whether the block is fully reconstructible afterwards, which is
// always the case on success.
func (pb *PartialBlock) FillMissing(msg *wire.MsgBlockTxns) (bool, error) {
	if len(pb.requested) == 0 {
		return false, fmt.Errorf("no missing transactions were requested")
	}
	if msg.BlockHash != pb.blockHash {
		return false, fmt.Errorf("response is for block %v instead of %v",
			msg.BlockHash, pb.blockHash)
	}
	if len(msg.Transactions) != len(pb.requested) {
		return false, fmt.Errorf("response contains %d transactions for a "+
			"request of %d", len(msg.Transactions), len(pb.requested))
	}

	for i, slot := range pb.requested {
		if pb.slots[slot] == nil {
			pb.filled++
		}
		pb.slots[slot] = msg.Transactions[i]
	}
	pb.requested = nil

	return pb.IsFull(), nil
}

// Block assembles the header and the ordered slot contents into a full block.
// It refuses unless every slot is resolved; callers are responsible for
// confirming fullness first, so an unresolved slot here is a contract
// violation rather than a network-level condition.
//
// Reconstruction success does not itself imply consensus validity.  Callers
// must re-validate the returned block.
func (pb *PartialBlock) Block() (*chainutil.Block, error) {
	if !pb.IsFull() {
		return nil, fmt.Errorf("cannot assemble block %v with %d of %d "+
			"transaction slots unresolved", pb.blockHash,
			len(pb.slots)-pb.filled, len(pb.slots))
	}

	msgBlock := &wire.MsgBlock{
		Header:       pb.header,
		Transactions: pb.slots,
	}
	return chainutil.NewBlock(msgBlock), nil
}
