// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package mempool provides a policy-enforced pool of unmined transactions.

A key responsibility of the memory pool beyond staging transactions for
inclusion in blocks is serving as the local transaction source for compact
block reconstruction: the more of a block's transactions the pool already
holds, the fewer need to be fetched from the announcing peer.  TxPool
satisfies the transaction source interface consumed by the blockrelay
package.

The pool tracks the outpoints spent by its transactions so conflicting double
spends are rejected on entry and evicted when a confirmed transaction spends
the same outputs.  Recently rejected transaction hashes are kept in a bounded
time-limited cache so repeated announcements of them can be ignored cheaply.
*/
package mempool
