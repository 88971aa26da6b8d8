// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/panda-suite/bcash/blockchain"
	"github.com/panda-suite/bcash/blockrelay"
	"github.com/panda-suite/bcash/bloom"
	"github.com/panda-suite/bcash/chaincfg"
	"github.com/panda-suite/bcash/chainjson"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

// readInput returns the decoded binary input from either the configured file
// or the first command line argument.
func readInput(cfg *config, args []string) ([]byte, error) {
	var hexStr string
	switch {
	case cfg.InFile != "":
		contents, err := os.ReadFile(cfg.InFile)
		if err != nil {
			return nil, err
		}
		hexStr = string(contents)

	case len(args) == 1:
		hexStr = args[0]

	default:
		return nil, fmt.Errorf("a single hex encoded argument or the " +
			"infile option is required")
	}

	hexStr = strings.Join(strings.Fields(hexStr), "")
	return hex.DecodeString(hexStr)
}

// printJSON writes the indented JSON encoding of v to standard output.
func printJSON(v any) error {
	marshaled, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(marshaled))
	return nil
}

// checkHeader runs the proof of work checks on the provided header per the
// configuration and logs the outcome.
func checkHeader(cfg *config, header *wire.BlockHeader, params *chaincfg.Params) error {
	behaviorFlags := blockchain.BFNone
	if cfg.NoPoW {
		behaviorFlags |= blockchain.BFNoPoWCheck
	}
	err := blockchain.CheckBlockHeaderSanity(header, params.PowLimit,
		behaviorFlags)
	if err != nil {
		return err
	}

	log.Infof("Header %v satisfies the %s proof of work requirements",
		header.BlockHash(), params.Name)
	return nil
}

// checkBlock decodes a full block, runs the header and body validation
// checks, and prints the block in its JSON interchange form.
func checkBlock(cfg *config, serialized []byte, params *chaincfg.Params) error {
	block, err := chainutil.NewBlockFromBytes(serialized)
	if err != nil {
		return err
	}

	if err := checkHeader(cfg, &block.MsgBlock().Header, params); err != nil {
		return fmt.Errorf("%v (reject reason: %s)", err,
			blockchain.RejectReason(err))
	}
	err = blockchain.CheckBlockSanity(block, params.MaxBlockSize, nil, nil, 0)
	if err != nil {
		return fmt.Errorf("%v (reject reason: %s)", err,
			blockchain.RejectReason(err))
	}
	log.Infof("Block %v passes the body validation checks (%d transactions)",
		block.Hash(), len(block.Transactions()))

	jsonBlock, err := chainjson.EncodeBlock(block)
	if err != nil {
		return err
	}
	return printJSON(jsonBlock)
}

// checkMerkleBlock decodes a merkleblock message, verifies the embedded
// partial merkle proof against the header, and prints the message in its JSON
// interchange form along with the proven transaction hashes.
func checkMerkleBlock(cfg *config, serialized []byte, params *chaincfg.Params) error {
	var msg wire.MsgMerkleBlock
	err := msg.BtcDecode(bytes.NewReader(serialized), wire.ProtocolVersion)
	if err != nil {
		return err
	}

	if err := checkHeader(cfg, &msg.Header, params); err != nil {
		return err
	}
	matchedHashes, matchedIndexes, err := bloom.ExtractMatches(&msg)
	if err != nil {
		return err
	}
	log.Infof("Merkle block %v proves %d of %d transactions",
		msg.Header.BlockHash(), len(matchedHashes), msg.Transactions)

	type provenTx struct {
		Index uint32 `json:"index"`
		TxID  string `json:"txid"`
	}
	result := struct {
		*chainjson.MerkleBlock
		Proven []provenTx `json:"proven"`
	}{
		MerkleBlock: chainjson.EncodeMerkleBlock(&msg),
	}
	for i, hash := range matchedHashes {
		result.Proven = append(result.Proven, provenTx{
			Index: matchedIndexes[i],
			TxID:  hash.String(),
		})
	}
	return printJSON(result)
}

// checkCompactBlock decodes a cmpctblock message, verifies the header and the
// internal consistency of the short id and prefilled transaction lists, and
// prints a summary.
func checkCompactBlock(cfg *config, serialized []byte, params *chaincfg.Params) error {
	var msg wire.MsgCmpctBlock
	err := msg.BtcDecode(bytes.NewReader(serialized), wire.ProtocolVersion)
	if err != nil {
		return err
	}

	if err := checkHeader(cfg, &msg.Header, params); err != nil {
		return err
	}
	pb, err := blockrelay.NewPartialBlock(&msg)
	if err != nil {
		return err
	}
	log.Infof("Compact block %v is internally consistent", pb.BlockHash())

	shortIDs := make([]string, 0, len(msg.ShortIDs))
	for _, sid := range msg.ShortIDs {
		shortIDs = append(shortIDs, fmt.Sprintf("%012x", sid.Uint64()))
	}
	prefilled := make([]uint32, 0, len(msg.PrefilledTx))
	for _, tx := range msg.PrefilledTx {
		prefilled = append(prefilled, tx.Index)
	}
	result := struct {
		Hash              string   `json:"hash"`
		Nonce             uint64   `json:"nonce"`
		TotalTransactions int      `json:"totaltransactions"`
		PrefilledIndexes  []uint32 `json:"prefilledindexes"`
		ShortIDs          []string `json:"shortids"`
	}{
		Hash:              pb.BlockHash().String(),
		Nonce:             msg.Nonce,
		TotalTransactions: msg.TotalTransactions(),
		PrefilledIndexes:  prefilled,
		ShortIDs:          shortIDs,
	}
	return printJSON(result)
}

func realMain() error {
	cfg, args, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LogFile != "" {
		if err := initLogRotator(cfg.LogFile); err != nil {
			return err
		}
		defer logRotator.Close()
	}
	setLogLevels(cfg.DebugLevel)

	serialized, err := readInput(cfg, args)
	if err != nil {
		return err
	}

	params := cfg.chainParams()
	switch cfg.Type {
	case "block":
		return checkBlock(cfg, serialized, params)
	case "merkleblock":
		return checkMerkleBlock(cfg, serialized, params)
	case "cmpctblock":
		return checkCompactBlock(cfg, serialized, params)
	}
	panic("unreachable")
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
