// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements context-free block validation.

A block must pass two classes of checks before it can be considered for
acceptance into a chain: proof of work checks on the header and
well-formedness checks on the body.  This package provides both, along with a
mapping from validation failures to the short machine-readable reason codes
shared with other implementations on the network.

The checks which depend on a block's position within the chain, such as
difficulty retargeting and transaction maturity, are intentionally out of
scope, as are the UTXO set and the script engine.  Where validation needs
their results, the package consumes them through capability interfaces
(UtxoViewer and SigOpCounter) supplied by the caller.

# Errors

Errors returned by this package are either the raw errors provided by
underlying calls or of type blockchain.RuleError.  RuleError indicates a
violation of a consensus rule and has full support for errors.Is and
errors.As, so the caller can programmatically detect the specific rule
violated.  RejectReason converts a RuleError to the short reason code to
relay to the remote peer that provided the offending block.
*/
package blockchain
