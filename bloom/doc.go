// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bloom provides bloom filters, plus the ability to compress a block
// down to a merkleblock message which proves inclusion of the filtered
// transactions for simplified payment verification clients.
package bloom
