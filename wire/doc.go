// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the bcash wire protocol.

# Messages

This package implements the bit-exact binary encodings used to relay blocks
and transactions between peers.  Every message type provides encoding and
decoding via the BtcEncode and BtcDecode methods, which accept an io.Writer
or io.Reader and the protocol version to target.  The Serialize and
Deserialize methods provide the stable long-term storage encodings.

All integers are little-endian unless otherwise noted and hashes are 32 raw
bytes that are displayed byte-reversed in hexadecimal form.

# Errors

Errors returned by this package are either the raw errors provided by
underlying calls to read/write from streams, or of type MessageError wrapping
one of the exported ErrorKind values.  This allows the caller to distinguish
between general io errors and malformed messages via errors.Is and errors.As.
Structural decode failures are always fatal to the decode call: no message is
ever partially accepted.
*/
package wire
