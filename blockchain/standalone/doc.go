// Copyright (c) 2019-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package standalone provides standalone functions useful for caller provided
concrete implementations of consensus validation.

The provided functions fall into the following categories:

  - Proof-of-work
  - Converting to and from the compact representation of difficulty targets
  - Calculating work values based on the compact representation
  - Checking a block hash satisfies a target difficulty and that the target
    difficulty is within a valid range
  - Merkle root calculation and partial merkle tree membership proofs
  - Calculation from individual leaf hashes or transactions
  - Generating and verifying proofs that only reveal the hashes along the
    paths to one or more matched leaves
  - Transaction sanity helpers
  - Determining if a transaction is a coinbase
  - Consensus limit arithmetic
  - Determining the maximum allowed signature operations for a block of a
    given serialized size

The errors returned by this package are of type standalone.RuleError which
wraps a kind from the ErrorKind enumeration, so callers can programmatically
detect the specific rule violated via errors.Is.
*/
package standalone
