// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chainjson provides JSON interchange structs for blocks and merkle
blocks.

The structs marshal with encoding/json and carry every field of the binary
encodings they model, so converting a block or merkleblock message to its
interchange form and back yields an identical binary serialization.  Hashes
are reversed-hex strings in the conventional display order and transaction
bodies are full serialized hex.

The errors returned by the decode functions have full support for errors.Is
and errors.As against the exported ErrorKind values.
*/
package chainjson
