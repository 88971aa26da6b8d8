// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bloom

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

const (
	// MaxFilterSize is the maximum byte size of a filter.
	MaxFilterSize = 36000

	// MaxHashFuncs is the maximum number of hash functions of a filter.
	MaxHashFuncs = 50

	// ln2Squared is simply the square of the natural log of 2.
	ln2Squared = math.Ln2 * math.Ln2

	// seedScalar is the multiplier applied to the hash function index when
	// deriving the per-function murmur seed.
	seedScalar = 0xfba4c795
)

// Filter defines a bitcoin-style bloom filter that provides easy manipulation
// of raw filter data.  It is safe for concurrent access.
type Filter struct {
	mtx       sync.Mutex
	data      []byte
	hashFuncs uint32
	tweak     uint32
}

// minUint32 is a convenience function to return the minimum value of the two
// passed uint32 values.
func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// NewFilter creates a new bloom filter instance, mainly to be used by SPV
// clients.  The tweak parameter is a random value added to the seed value.
// The false positive rate is the probability of a false positive where 1.0 is
// "match everything" and zero is unachievable.  In practice, values near zero
// require an unreasonably large amount of space, so the filter size is capped
// at MaxFilterSize.
func NewFilter(elements uint32, tweak uint32, fprate float64) *Filter {
	// Massage the false positive rate to sane values.
	if fprate > 1.0 {
		fprate = 1.0
	}
	if fprate < 1e-9 {
		fprate = 1e-9
	}

	// Calculate the size of the filter in bytes for the given number of
	// elements and false positive rate.
	//
	// Equivalent to m = -(n*ln(p) / ln(2)^2), where m is in bits.
	// Then clamp it to the maximum filter size and convert to bytes.
	dataLen := uint32(-1 * float64(elements) * math.Log(fprate) / ln2Squared)
	dataLen = minUint32(dataLen, MaxFilterSize*8) / 8

	// Calculate the number of hash functions based on the size of the
	// filter calculated above and the number of elements.
	//
	// Equivalent to k = (m/n) * ln(2).
	hashFuncs := uint32(float64(dataLen*8) / float64(elements) * math.Ln2)
	hashFuncs = minUint32(hashFuncs, MaxHashFuncs)

	data := make([]byte, dataLen)
	return &Filter{
		data:      data,
		hashFuncs: hashFuncs,
		tweak:     tweak,
	}
}

// LoadFilter creates a new Filter instance with the given underlying filter
// data, hash function count, and tweak, typically received from a remote
// peer.
func LoadFilter(data []byte, hashFuncs uint32, tweak uint32) *Filter {
	return &Filter{
		data:      data,
		hashFuncs: hashFuncs,
		tweak:     tweak,
	}
}

// hash returns the bit offset in the filter data for the provided hash
// function number and data.
func (bf *Filter) hash(hashNum uint32, data []byte) uint32 {
	// bitcoin seeds the murmur3 hash with a value of the form
	// hashNum*seedScalar+tweak.
	mm := murmur3.Sum32WithSeed(data, hashNum*seedScalar+bf.tweak)

	// Return the bit offset within the filter.
	return mm % (uint32(len(bf.data)) * 8)
}

// matches returns true if the bloom filter might contain the passed data and
// false if it definitely does not.
//
// This function MUST be called with the filter lock held.
func (bf *Filter) matches(data []byte) bool {
	if len(bf.data) == 0 {
		return false
	}

	// The bloom filter does not contain the data if any of the bit offsets
	// which result from hashing the data using each independent hash
	// function are not set.
	for i := uint32(0); i < bf.hashFuncs; i++ {
		idx := bf.hash(i, data)
		if bf.data[idx>>3]&(1<<(idx&7)) == 0 {
			return false
		}
	}
	return true
}

// Matches returns true if the bloom filter might contain the passed data and
// false if it definitely does not.
//
// This function is safe for concurrent access.
func (bf *Filter) Matches(data []byte) bool {
	bf.mtx.Lock()
	match := bf.matches(data)
	bf.mtx.Unlock()
	return match
}

// matchesOutPoint returns true if the bloom filter might contain the passed
// outpoint and false if it definitely does not.
//
// This function MUST be called with the filter lock held.
func (bf *Filter) matchesOutPoint(outpoint *wire.OutPoint) bool {
	return bf.matches(serializeOutPoint(outpoint))
}

// MatchesOutPoint returns true if the bloom filter might contain the passed
// outpoint and false if it definitely does not.
//
// This function is safe for concurrent access.
func (bf *Filter) MatchesOutPoint(outpoint *wire.OutPoint) bool {
	bf.mtx.Lock()
	match := bf.matchesOutPoint(outpoint)
	bf.mtx.Unlock()
	return match
}

// add adds the passed byte slice to the bloom filter.
//
// This function MUST be called with the filter lock held.
func (bf *Filter) add(data []byte) {
	if len(bf.data) == 0 {
		return
	}

	// Adding data to a bloom filter consists of setting all of the bit
	// offsets which result from hashing the data using each independent
	// hash function.
	for i := uint32(0); i < bf.hashFuncs; i++ {
		idx := bf.hash(i, data)
		bf.data[idx>>3] |= 1 << (idx & 7)
	}
}

// Add adds the passed byte slice to the bloom filter.
//
// This function is safe for concurrent access.
func (bf *Filter) Add(data []byte) {
	bf.mtx.Lock()
	bf.add(data)
	bf.mtx.Unlock()
}

// AddHash adds the passed chainhash.Hash to the Filter.
//
// This function is safe for concurrent access.
func (bf *Filter) AddHash(hash *chainhash.Hash) {
	bf.mtx.Lock()
	bf.add(hash[:])
	bf.mtx.Unlock()
}

// serializeOutPoint returns the canonical 36 byte serialization of the
// provided outpoint for use as a filter key.
func serializeOutPoint(outpoint *wire.OutPoint) []byte {
	var buf [chainhash.HashSize + 4]byte
	copy(buf[:], outpoint.Hash[:])
	binary.LittleEndian.PutUint32(buf[chainhash.HashSize:], outpoint.Index)
	return buf[:]
}

// AddOutPoint adds the passed transaction outpoint to the bloom filter.
//
// This function is safe for concurrent access.
func (bf *Filter) AddOutPoint(outpoint *wire.OutPoint) {
	bf.mtx.Lock()
	bf.add(serializeOutPoint(outpoint))
	bf.mtx.Unlock()
}

// matchTx returns whether the bloom filter matches the provided transaction
// by checking membership of the transaction hash and the outpoints referenced
// by its inputs.  Matching against the data elements of output scripts
// requires a script engine and is intentionally not performed here.
//
// This function MUST be called with the filter lock held.
func (bf *Filter) matchTx(tx *chainutil.Tx) bool {
	// Check if the filter matches the hash of the transaction.
	if bf.matches(tx.Hash()[:]) {
		return true
	}

	// Check if the filter matches any outpoints this transaction spends.
	for _, txIn := range tx.MsgTx().TxIn {
		if bf.matchesOutPoint(&txIn.PreviousOutPoint) {
			return true
		}
	}

	return false
}

// MatchTx returns whether the bloom filter matches the provided transaction
// by checking membership of the transaction hash and the outpoints referenced
// by its inputs.
//
// This function is safe for concurrent access.
func (bf *Filter) MatchTx(tx *chainutil.Tx) bool {
	bf.mtx.Lock()
	match := bf.matchTx(tx)
	bf.mtx.Unlock()
	return match
}
