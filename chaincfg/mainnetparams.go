// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/panda-suite/bcash/wire"
)

// MainNetParams returns the network parameters for the main network.
func MainNetParams() *Params {
	// mainPowLimit is the highest proof of work value a block can have for
	// the main network.  It is the value 2^224 - 1.
	mainPowLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	return &Params{
		Name:         "mainnet",
		Net:          wire.MainNet,
		GenesisBlock: &genesisBlock,
		GenesisHash: newHashFromStr("000000000019d6689c085ae165831e934ff76" +
			"3ae46a2a6c172b3f1b60a8ce26f"),
		PowLimit:     mainPowLimit,
		PowLimitBits: 0x1d00ffff,
		MaxBlockSize: 32000000,
	}
}
