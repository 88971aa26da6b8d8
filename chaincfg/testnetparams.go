// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/panda-suite/bcash/wire"
)

// TestNetParams returns the network parameters for the test network.
func TestNetParams() *Params {
	// testNetPowLimit is the highest proof of work value a block can have
	// for the test network.  It is the value 2^224 - 1.
	testNetPowLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

	return &Params{
		Name:         "testnet",
		Net:          wire.TestNet,
		GenesisBlock: &testNetGenesisBlock,
		GenesisHash: newHashFromStr("000000000933ea01ad0ee984209779baaec3c" +
			"ed90fa3f408719526f8d77f4943"),
		PowLimit:     testNetPowLimit,
		PowLimitBits: 0x1d00ffff,
		MaxBlockSize: 32000000,
	}
}
