// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package standalone

const (
	// MaxBlockSigOpsPerMB is the maximum number of signature operations
	// allowed per megabyte of serialized block size.
	MaxBlockSigOpsPerMB = 20000

	// sigOpsScalingFactor is the number of serialized bytes per signature
	// operations allowance increment.
	sigOpsScalingFactor = 1000000
)

// MaxBlockSigOps returns the maximum allowed number of signature operations
// for a block of the provided serialized size in bytes.  The allowance scales
// with the size of the block in whole megabyte increments, rounding up, and a
// block smaller than one megabyte, including an empty one, still receives a
// full megabyte's allowance.
func MaxBlockSigOps(sizeBytes uint64) uint64 {
	numMegabytes := (sizeBytes + sigOpsScalingFactor - 1) / sigOpsScalingFactor
	if numMegabytes == 0 {
		numMegabytes = 1
	}
	return numMegabytes * MaxBlockSigOpsPerMB
}
