// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/panda-suite/bcash/wire"
)

// RegNetParams returns the network parameters for the regression test
// network.  Not to be confused with the public test network, this network is
// intended for private use by developers and has a proof-of-work limit that
// makes mining blocks trivial.
func RegNetParams() *Params {
	// regNetPowLimit is the highest proof of work value a block can have
	// for the regression test network.  It is the value 2^255 - 1.
	regNetPowLimit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	return &Params{
		Name:         "regnet",
		Net:          wire.RegNet,
		GenesisBlock: &regNetGenesisBlock,
		GenesisHash: newHashFromStr("0f9188f13cb7b2c71f2a335e3a4fc328bf5be" +
			"b436012afca590b1a11466e2206"),
		PowLimit:     regNetPowLimit,
		PowLimitBits: 0x207fffff,
		MaxBlockSize: 32000000,
	}
}
