// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/panda-suite/bcash/blockchain/standalone"
	"github.com/panda-suite/bcash/chaincfg"
	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// BehaviorFlags is a bitmask defining tweaks to the normal behavior when
// performing chain processing and consensus rules checks.
type BehaviorFlags uint32

const (
	// BFNoPoWCheck may be set to indicate the proof of work check which
	// ensures a block hashes to a value less than the required target will
	// not be performed.
	BFNoPoWCheck BehaviorFlags = 1 << iota

	// BFNone is a convenience value to specifically indicate no flags.
	BFNone BehaviorFlags = 0
)

// SigOpFlags is a bitmask defining which signature operation counting rules
// apply when tallying the signature operations of a transaction.
type SigOpFlags uint32

const (
	// SigOpBip16 indicates the additional signature operations contributed
	// by the redemption of pay-to-script-hash outputs must be included in
	// the count.  Doing so requires the spent output scripts to be
	// resolved through a UtxoViewer.
	SigOpBip16 SigOpFlags = 1 << iota
)

// UtxoViewer provides access to the scripts of unspent transaction outputs
// referenced by the inputs of transactions being counted.  It is typically
// backed by a UTXO set implementation maintained by the caller.
type UtxoViewer interface {
	// LookupPkScript returns the public key script of the referenced
	// output along with whether or not the output exists in the view.
	LookupPkScript(outpoint wire.OutPoint) ([]byte, bool)
}

// SigOpCounter provides the signature operation count of a transaction under
// the counting rules selected by the provided flags.  Implementations are
// typically backed by a script engine which is intentionally outside the
// scope of this package.
type SigOpCounter interface {
	// CountSigOps returns the number of signature operations for the
	// provided transaction.  The isCoinBase flag identifies the coinbase
	// since it has no meaningful inputs to resolve, and the view is
	// consulted for the spent output scripts when the flags require
	// resolving pay-to-script-hash redemptions.
	CountSigOps(tx *wire.MsgTx, isCoinBase bool, view UtxoViewer, flags SigOpFlags) (uint64, error)
}

// standaloneToChainRuleError attempts to convert the passed error from a
// standalone.RuleError to a blockchain.RuleError with the equivalent error
// kind.  The error is simply passed through without modification if it is
// not a standalone.RuleError, not one of the specifically recognized error
// kinds, or nil.
func standaloneToChainRuleError(err error) error {
	// Convert standalone package rule errors to blockchain rule errors.
	switch {
	case errors.Is(err, standalone.ErrUnexpectedDifficulty):
		return ruleError(ErrUnexpectedDifficulty, err.Error())
	case errors.Is(err, standalone.ErrHighHash):
		return ruleError(ErrHighHash, err.Error())
	}

	return err
}

// checkProofOfWork ensures the block header bits which indicate the target
// difficulty is in min/max range and that the block hash is less than the
// target difficulty as claimed.
//
// The flags modify the behavior of this function as follows:
//   - BFNoPoWCheck: The check to ensure the block hash is less than the
//     target difficulty is not performed.
func checkProofOfWork(header *wire.BlockHeader, powLimit *big.Int, flags BehaviorFlags) error {
	// Only ensure the target difficulty bits are in the valid range when
	// the proof of work check is not being performed.
	if flags&BFNoPoWCheck == BFNoPoWCheck {
		err := standalone.CheckProofOfWorkRange(header.Bits, powLimit)
		return standaloneToChainRuleError(err)
	}

	// Perform all proof of work checks:
	//
	// - The target difficulty must be larger than zero.
	// - The target difficulty must be less than the maximum allowed.
	// - The block hash must be less than the claimed target.
	blockHash := header.BlockHash()
	err := standalone.CheckProofOfWork(&blockHash, header.Bits, powLimit)
	return standaloneToChainRuleError(err)
}

// CheckBlockHeaderSanity performs the validation checks on a block header
// which do not depend on its position within the block chain or knowledge of
// the transactions it commits to.  In particular, it ensures the proof of
// work requirements are satisfied for the provided proof of work limit.
//
// The flags modify the behavior of this function as follows:
//   - BFNoPoWCheck: The check to ensure the block hash is less than the
//     target difficulty is not performed.
func CheckBlockHeaderSanity(header *wire.BlockHeader, powLimit *big.Int, flags BehaviorFlags) error {
	// Ensure the proof of work bits in the block header is in min/max
	// range and the block hash is less than the target value described by
	// the bits.
	return checkProofOfWork(header, powLimit, flags)
}

// checkDuplicateTxs ensures no two transactions in the provided block share a
// hash.  This prevents the known malleability where a block with a duplicated
// final subtree produces the same merkle root as one without it.
func checkDuplicateTxs(transactions []*chainutil.Tx) error {
	existingTxHashes := make(map[chainhash.Hash]struct{}, len(transactions))
	for _, tx := range transactions {
		hash := tx.Hash()
		if _, exists := existingTxHashes[*hash]; exists {
			str := fmt.Sprintf("block contains duplicate transaction %v",
				hash)
			return ruleError(ErrDuplicateTx, str)
		}
		existingTxHashes[*hash] = struct{}{}
	}

	return nil
}

// checkBlockSigOps tallies the signature operations of every transaction in
// the block via the provided counter and ensures the total does not exceed
// the allowance for the block's serialized size.  The counter is an optional
// capability since sigop counting requires a script engine and a UTXO view
// which are outside the scope of this package; a nil counter skips the check.
func checkBlockSigOps(block *chainutil.Block, serializedSize uint64, counter SigOpCounter, view UtxoViewer, sigOpFlags SigOpFlags) error {
	if counter == nil {
		return nil
	}

	maxSigOps := standalone.MaxBlockSigOps(serializedSize)
	var totalSigOps uint64
	for i, tx := range block.Transactions() {
		numSigOps, err := counter.CountSigOps(tx.MsgTx(), i == 0, view,
			sigOpFlags)
		if err != nil {
			return err
		}

		// Check for overflow or going over the limits.  The overflow
		// check is done last since the individual counts are also
		// capped by the maximum.
		lastSigOps := totalSigOps
		totalSigOps += numSigOps
		if totalSigOps < lastSigOps || totalSigOps > maxSigOps {
			str := fmt.Sprintf("block contains too many signature "+
				"operations - got %v, max %v", totalSigOps, maxSigOps)
			return ruleError(ErrTooManySigOps, str)
		}
	}

	return nil
}

// CheckBlockSanity performs the validation checks on a block body which do
// not depend on its position within the block chain.  The checks are
// performed in order and processing stops at the first rule violation:
//
//  1. The block must have at least one transaction.
//  2. The first transaction must be a coinbase and no other transaction may
//     be a coinbase.
//  3. No two transactions may share a hash.
//  4. The merkle root committed to by the header must match the one computed
//     from the transactions.
//  5. The serialized size must not exceed the maximum allowed size and the
//     total number of signature operations must not exceed the allowance for
//     that size.
//
// The returned error is a RuleError whose kind maps to a short reject reason
// code via RejectReason, allowing callers to penalize the remote peer that
// relayed the block without aborting validation of subsequent blocks.
func CheckBlockSanity(block *chainutil.Block, maxBlockSize uint64, counter SigOpCounter, view UtxoViewer, sigOpFlags SigOpFlags) error {
	msgBlock := block.MsgBlock()

	// A block must have at least one transaction.
	numTx := len(msgBlock.Transactions)
	if numTx == 0 {
		return ruleError(ErrNoTransactions, "block does not contain any "+
			"transactions")
	}

	// The first transaction in a block must be a coinbase.
	transactions := block.Transactions()
	if !standalone.IsCoinBaseTx(transactions[0].MsgTx()) {
		return ruleError(ErrFirstTxNotCoinbase, "first transaction in "+
			"block is not a coinbase")
	}

	// A block must not have more than one coinbase.
	for i, tx := range transactions[1:] {
		if standalone.IsCoinBaseTx(tx.MsgTx()) {
			str := fmt.Sprintf("block contains second coinbase at index %d",
				i+1)
			return ruleError(ErrMultipleCoinbases, str)
		}
	}

	// A block must not contain duplicate transactions.
	if err := checkDuplicateTxs(transactions); err != nil {
		return err
	}

	// Build the merkle tree and ensure the calculated merkle root matches
	// the entry in the block header.  This also has the effect of caching
	// all of the transaction hashes in the block to speed up future hash
	// checks.
	wantMerkleRoot := standalone.CalcTxTreeMerkleRoot(msgBlock.Transactions)
	if msgBlock.Header.MerkleRoot != wantMerkleRoot {
		str := fmt.Sprintf("block merkle root is invalid - block header "+
			"indicates %v, but calculated value is %v",
			msgBlock.Header.MerkleRoot, wantMerkleRoot)
		return ruleError(ErrBadMerkleRoot, str)
	}

	// A block must not exceed the maximum allowed block size.
	serializedSize := uint64(msgBlock.SerializeSize())
	if serializedSize > maxBlockSize {
		str := fmt.Sprintf("serialized block is too big - got %d, max %d",
			serializedSize, maxBlockSize)
		return ruleError(ErrBlockTooBig, str)
	}

	// The number of signature operations must be within the allowance for
	// the serialized size of the block.
	return checkBlockSigOps(block, serializedSize, counter, view, sigOpFlags)
}

// VerifyBlock performs all context-free validation checks on the provided
// block.  It is equivalent to calling CheckBlockHeaderSanity for the block
// header followed by CheckBlockSanity for the block body.
//
// Reconstruction of a block from a compact block must be followed by this
// check since successful reconstruction does not itself imply consensus
// validity.
func VerifyBlock(block *chainutil.Block, params *chaincfg.Params, counter SigOpCounter, view UtxoViewer, sigOpFlags SigOpFlags) error {
	header := &block.MsgBlock().Header
	err := CheckBlockHeaderSanity(header, params.PowLimit, BFNone)
	if err != nil {
		return err
	}

	return CheckBlockSanity(block, params.MaxBlockSize, counter, view,
		sigOpFlags)
}
