// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The bcash developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/decred/dcrd/container/lru"

	"github.com/panda-suite/bcash/chaincfg"
	"github.com/panda-suite/bcash/chaincfg/chainhash"
	"github.com/panda-suite/bcash/chainutil"
	"github.com/panda-suite/bcash/wire"
)

const (
	// rejectedTxTTL is the amount of time a rejected transaction hash
	// stays in the recently rejected cache before it can be considered
	// again.
	rejectedTxTTL = time.Minute * 15

	// maxRejectedTxns is the maximum number of recently rejected
	// transaction hashes to track.
	maxRejectedTxns = 2500
)

// Config is a descriptor containing the memory pool configuration.
type Config struct {
	// ChainParams identifies which chain parameters the memory pool is
	// associated with.
	ChainParams *chaincfg.Params

	// MaxTxSize is the maximum allowed serialized size of a transaction
	// accepted into the pool.  Zero means no limit.
	MaxTxSize uint64
}

// TxDesc is a descriptor containing a transaction in the memory pool along
// with additional metadata.
type TxDesc struct {
	// Tx is the transaction associated with the entry.
	Tx *chainutil.Tx

	// Added is the time when the entry was added to the pool.
	Added time.Time
}

// TxPool is used as a source of transactions that need to be mined into
// blocks and relayed to other peers.  It is safe for concurrent access from
// multiple peers.
type TxPool struct {
	// lastUpdated tracks the last time the pool contents changed.  It must
	// only be used atomically.
	lastUpdated int64

	mtx       sync.RWMutex
	cfg       Config
	pool      map[chainhash.Hash]*TxDesc
	outpoints map[wire.OutPoint]*chainutil.Tx

	// rejected caches the hashes of transactions that were recently
	// rejected so repeated announcements of them can be cheaply ignored
	// for a while.
	rejected *lru.Set[chainhash.Hash]
}

// New returns a new memory pool for validating and storing standalone
// transactions until they are mined into a block.
func New(cfg *Config) *TxPool {
	return &TxPool{
		cfg:       *cfg,
		pool:      make(map[chainhash.Hash]*TxDesc),
		outpoints: make(map[wire.OutPoint]*chainutil.Tx),
		rejected: lru.NewSetWithDefaultTTL[chainhash.Hash](maxRejectedTxns,
			rejectedTxTTL),
	}
}

// poolChanged updates the last updated timestamp.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) poolChanged() {
	atomic.StoreInt64(&mp.lastUpdated, time.Now().Unix())
}

// isTransactionInPool returns whether or not the passed transaction already
// exists in the main pool.
//
// This function MUST be called with the mempool lock held (for reads).
func (mp *TxPool) isTransactionInPool(hash *chainhash.Hash) bool {
	_, exists := mp.pool[*hash]
	return exists
}

// HaveTransaction returns whether or not the passed transaction already
// exists in the main pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) HaveTransaction(hash *chainhash.Hash) bool {
	mp.mtx.RLock()
	haveTx := mp.isTransactionInPool(hash)
	mp.mtx.RUnlock()

	return haveTx
}

// IsRecentlyRejected returns whether or not the passed transaction hash was
// recently rejected from the pool and has not yet aged out of the rejection
// cache.
//
// This function is safe for concurrent access.
func (mp *TxPool) IsRecentlyRejected(hash *chainhash.Hash) bool {
	return mp.rejected.Contains(*hash)
}

// FetchTransaction returns the requested transaction from the pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) FetchTransaction(hash *chainhash.Hash) (*chainutil.Tx, error) {
	mp.mtx.RLock()
	txDesc, exists := mp.pool[*hash]
	mp.mtx.RUnlock()

	if !exists {
		return nil, fmt.Errorf("transaction %v is not in the pool", hash)
	}
	return txDesc.Tx, nil
}

// AddTransaction adds the passed transaction to the memory pool.  It rejects
// transactions that are already in the pool, were recently rejected, exceed
// the configured maximum size, or spend an output another pool transaction
// already spends.
//
// This function is safe for concurrent access.
func (mp *TxPool) AddTransaction(tx *chainutil.Tx) error {
	txHash := tx.Hash()

	if mp.rejected.Contains(*txHash) {
		return fmt.Errorf("transaction %v was recently rejected", txHash)
	}

	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	if mp.isTransactionInPool(txHash) {
		return fmt.Errorf("transaction %v is already in the pool", txHash)
	}

	msgTx := tx.MsgTx()
	if mp.cfg.MaxTxSize != 0 {
		if size := uint64(msgTx.SerializeSize()); size > mp.cfg.MaxTxSize {
			mp.rejected.Put(*txHash)
			return fmt.Errorf("transaction %v size of %d exceeds the "+
				"maximum allowed size of %d", txHash, size, mp.cfg.MaxTxSize)
		}
	}

	for _, txIn := range msgTx.TxIn {
		if conflict, exists := mp.outpoints[txIn.PreviousOutPoint]; exists {
			mp.rejected.Put(*txHash)
			return fmt.Errorf("transaction %v spends outpoint %v already "+
				"spent by transaction %v in the pool", txHash,
				txIn.PreviousOutPoint, conflict.Hash())
		}
	}

	mp.pool[*txHash] = &TxDesc{Tx: tx, Added: time.Now()}
	for _, txIn := range msgTx.TxIn {
		mp.outpoints[txIn.PreviousOutPoint] = tx
	}
	mp.poolChanged()

	log.Debugf("Accepted transaction %v (pool size: %d)", txHash,
		len(mp.pool))
	return nil
}

// removeTransaction removes the passed transaction from the pool.
//
// This function MUST be called with the mempool lock held (for writes).
func (mp *TxPool) removeTransaction(hash *chainhash.Hash) {
	txDesc, exists := mp.pool[*hash]
	if !exists {
		return
	}

	for _, txIn := range txDesc.Tx.MsgTx().TxIn {
		delete(mp.outpoints, txIn.PreviousOutPoint)
	}
	delete(mp.pool, *hash)
	mp.poolChanged()
}

// RemoveTransaction removes the passed transaction from the memory pool.  It
// is a no-op when the transaction is not in the pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveTransaction(hash *chainhash.Hash) {
	mp.mtx.Lock()
	mp.removeTransaction(hash)
	mp.mtx.Unlock()
}

// RemoveConfirmedTransactions removes all transactions contained in the
// passed block from the memory pool along with any pool transactions that
// spend outputs those transactions also spend.  It is typically called after
// a new block is connected to the main chain.
//
// This function is safe for concurrent access.
func (mp *TxPool) RemoveConfirmedTransactions(block *chainutil.Block) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	for _, tx := range block.Transactions() {
		mp.removeTransaction(tx.Hash())

		// Evict any remaining pool transactions that double spend the
		// confirmed transaction's inputs.
		for _, txIn := range tx.MsgTx().TxIn {
			conflict, exists := mp.outpoints[txIn.PreviousOutPoint]
			if exists {
				log.Debugf("Removing double spend transaction %v "+
					"confirmed by block %v", conflict.Hash(), block.Hash())
				mp.removeTransaction(conflict.Hash())
			}
		}
	}
}

// Transactions returns all of the transactions in the memory pool.  The
// returned slice is a copy and is safe to modify.
//
// This function is safe for concurrent access and implements the transaction
// source consulted during compact block reconstruction.
func (mp *TxPool) Transactions() []*chainutil.Tx {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	txns := make([]*chainutil.Tx, 0, len(mp.pool))
	for _, txDesc := range mp.pool {
		txns = append(txns, txDesc.Tx)
	}
	return txns
}

// TxHashes returns the hashes of all of the transactions in the memory pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) TxHashes() []chainhash.Hash {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	hashes := make([]chainhash.Hash, 0, len(mp.pool))
	for hash := range mp.pool {
		hashes = append(hashes, hash)
	}
	return hashes
}

// Count returns the number of transactions in the main pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) Count() int {
	mp.mtx.RLock()
	count := len(mp.pool)
	mp.mtx.RUnlock()

	return count
}

// LastUpdated returns the last time a transaction was added to or removed
// from the main pool.
//
// This function is safe for concurrent access.
func (mp *TxPool) LastUpdated() time.Time {
	return time.Unix(atomic.LoadInt64(&mp.lastUpdated), 0)
}
