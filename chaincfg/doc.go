// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines chain configuration parameters.
//
// In addition to the main network, which is intended for the transfer of
// monetary value, there is a public test network and a regression test
// network which is useful for private development.  The chaincfg package
// provides the ability for callers to select which set of parameters chain
// related code should use by passing an instance of Params obtained via the
// MainNetParams, TestNetParams, or RegNetParams functions.
package chaincfg
