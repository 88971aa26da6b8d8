// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockrelay implements compact block relay.

Compact block relay reduces the bandwidth needed to propagate a block to a
peer that already holds most of its transactions in its memory pool.  Rather
than the full serialized block, the sender transmits the header, a nonce, a
small set of prefilled transactions the receiver is unlikely to have, and a
6-byte short id for every other transaction.  The receiver resolves the short
ids against its own memory pool and requests only the transactions it could
not resolve.

The sender side is provided by NewCompactBlock, which converts a full block
into a cmpctblock message, and BuildBlockTxns, which answers a follow-up
getblocktxn request from the full block.

The receiver side is provided by PartialBlock, which tracks the slot-by-slot
reconstruction state of one block: prefilled transactions are placed
immediately, FillFromPool resolves short ids against a transaction source,
MissingRequest produces a getblocktxn message for the remaining slots,
FillMissing applies the matching blocktxn response, and Block assembles the
result once every slot is resolved.

Short ids are computed with SipHash-2-4 keyed per block by the double SHA-256
of the serialized header and nonce.  They are compact rather than collision
free, so when two distinct local transactions match the same short id the
match is discarded and the transaction is fetched from the remote peer
instead of guessing.

A successfully reconstructed block is not thereby valid.  Callers must run
full block validation on the result before accepting it.
*/
package blockrelay
