// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chainutil provides convenience types for working with blocks and
transactions.

# Block Overview

A Block defines a block that provides easier and more efficient manipulation
of raw wire protocol blocks.  It also memoizes hashes for the block and its
transactions on their first access so subsequent accesses don't have to
repeat the relatively expensive hashing operations.

# Tx Overview

A Tx defines a transaction that provides more efficient manipulation of raw
wire protocol transactions.  It memoizes the hash for the transaction on its
first access so subsequent accesses don't have to repeat the relatively
expensive hashing operations.

Both types cache derived values rather than recomputing them on every access,
so callers that mutate the underlying wire structures must call the
corresponding Refresh method before the next read to avoid observing stale
cached values.
*/
package chainutil
