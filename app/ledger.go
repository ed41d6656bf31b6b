package app

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/nestera-labs/nestera"
	"github.com/nestera-labs/nestera/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

const blockTimeKey = "_nl:blockTime"

// Ledger executes encoded transactions against a committed store.
//
// Calls are serialised. Transactions are grouped in blocks: BeginBlock sets
// the height and the time seen by every transaction of the block and Commit
// persists the block. Each transaction runs in its own cache wrap that is
// written only when the transaction succeeds, so a failed call leaves no
// trace in the state.
type Ledger struct {
	mu sync.Mutex

	store   *CommitStore
	decoder *TxDecoder
	handler nestera.Handler
	metrics *txMetrics
	logger  log.Logger
	debug   bool

	chainID   string
	height    int64
	blockTime time.Time
	inBlock   bool
}

// NewLedger loads the latest committed state of given store. Transaction
// metrics are registered with reg, if not nil.
func NewLedger(
	kv nestera.CommitKVStore,
	decoder *TxDecoder,
	handler nestera.Handler,
	reg prometheus.Registerer,
) (*Ledger, error) {
	store, err := NewCommitStore(kv)
	if err != nil {
		return nil, err
	}
	metrics, err := newTxMetrics(reg)
	if err != nil {
		return nil, err
	}
	info, err := store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	chainID, err := loadChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	blockTime, err := loadBlockTime(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	return &Ledger{
		store:     store,
		decoder:   decoder,
		handler:   handler,
		metrics:   metrics,
		logger:    log.NewNopLogger(),
		chainID:   chainID,
		height:    info.Version,
		blockTime: blockTime,
	}, nil
}

// WithLogger sets the logger used by the ledger and passed to every
// transaction.
func (l *Ledger) WithLogger(logger log.Logger) *Ledger {
	l.logger = logger
	return l
}

// WithDebug controls whether internal error details are logged.
func (l *Ledger) WithDebug(debug bool) *Ledger {
	l.debug = debug
	return l
}

// ChainID returns the chain id set at genesis, or an empty string.
func (l *Ledger) ChainID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chainID
}

// Height returns the height of the current or the last committed block.
func (l *Ledger) Height() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height
}

// State returns a read only view of the delivered, not yet committed state.
func (l *Ledger) State() nestera.ReadOnlyKVStore {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.DeliverStore()
}

// InitChain stores the chain id and initializes all extensions from the
// genesis options. It can be called only once in the lifetime of a chain.
// Either everything is initialized or nothing is.
func (l *Ledger) InitChain(chainID string, opts nestera.Options, init nestera.Initializer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "genesis already loaded for chain %s", l.chainID)
	}
	cache := l.store.DeliverStore().CacheWrap()
	if err := saveChainID(cache, chainID); err != nil {
		cache.Discard()
		return err
	}
	if init != nil {
		if err := init.FromGenesis(opts, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	l.chainID = chainID
	l.logger.Info("Genesis loaded", "chainID", chainID)
	return nil
}

// BeginBlock opens the next block. Block time never goes back: a time
// before the previous block time is rejected.
func (l *Ledger) BeginBlock(now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.chainID == "" {
		return errors.Wrap(errors.ErrInvalidState, "genesis not loaded")
	}
	if l.inBlock {
		return errors.Wrapf(errors.ErrInvalidState, "block %d not committed", l.height)
	}
	if now.Before(l.blockTime) {
		return errors.Wrapf(errors.ErrInvalidTimestamp,
			"block time %s before previous block time %s", now.UTC(), l.blockTime.UTC())
	}
	if err := saveBlockTime(l.store.DeliverStore(), now); err != nil {
		return err
	}
	l.height++
	l.blockTime = now
	l.inBlock = true
	l.logger.Debug("Block started", "height", l.height, "time", now.UTC())
	return nil
}

// Commit persists all delivered transactions and closes the current block.
func (l *Ledger) Commit() (nestera.CommitID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	l.height = id.Version
	l.inBlock = false
	l.logger.Info("Commit synced",
		"height", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// CheckTx validates an encoded transaction against the check state,
// without touching the delivered state.
func (l *Ledger) CheckTx(raw []byte) (*nestera.CheckResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	res, err := l.check(raw)
	l.report("check", start, err)
	return res, err
}

func (l *Ledger) check(raw []byte) (*nestera.CheckResult, error) {
	tx, err := l.loadTx(raw)
	if err != nil {
		return nil, err
	}
	ctx, err := l.txContext("check_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := l.store.CheckStore().CacheWrap()
	res, err := l.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check cache")
	}
	return res, nil
}

// DeliverTx executes an encoded transaction within the current block.
func (l *Ledger) DeliverTx(raw []byte) (*nestera.DeliverResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	res, err := l.deliver(raw)
	l.report("deliver", start, err)
	return res, err
}

func (l *Ledger) deliver(raw []byte) (*nestera.DeliverResult, error) {
	if !l.inBlock {
		return nil, errors.Wrap(errors.ErrInvalidState, "no block started")
	}
	tx, err := l.loadTx(raw)
	if err != nil {
		return nil, err
	}
	ctx, err := l.txContext("deliver_tx", tx)
	if err != nil {
		return nil, err
	}
	cache := l.store.DeliverStore().CacheWrap()
	res, err := l.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write deliver cache")
	}
	return res, nil
}

// loadTx calls the decoder, and capture any panics
func (l *Ledger) loadTx(raw []byte) (tx nestera.Tx, err error) {
	defer errors.Recover(&err)
	return l.decoder.Decode(raw)
}

func (l *Ledger) txContext(call string, tx nestera.Tx) (nestera.Context, error) {
	if l.chainID == "" {
		return nil, errors.Wrap(errors.ErrInvalidState, "genesis not loaded")
	}
	ctx := context.Background()
	ctx = nestera.WithLogger(ctx, l.logger)
	ctx = nestera.WithChainID(ctx, l.chainID)
	ctx = nestera.WithHeight(ctx, l.height)
	if !l.blockTime.IsZero() {
		ctx = nestera.WithBlockTime(ctx, l.blockTime)
	}
	return nestera.WithLogInfo(ctx, "call", call, "path", nestera.GetPath(tx)), nil
}

func (l *Ledger) report(call string, start time.Time, err error) {
	code, info := errors.ABCIInfo(err, l.debug)
	l.metrics.observe(call, start, code)
	if err != nil {
		l.logger.Debug("Transaction rejected", "call", call, "code", code, "log", info)
	}
}

func loadBlockTime(db nestera.ReadOnlyKVStore) (time.Time, error) {
	raw, err := db.Get([]byte(blockTimeKey))
	if err != nil {
		return time.Time{}, errors.Wrap(err, "load block time")
	}
	if raw == nil {
		return time.Time{}, nil
	}
	if len(raw) != 8 {
		return time.Time{}, errors.Wrap(errors.ErrInvalidState, "malformed block time")
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(raw))), nil
}

func saveBlockTime(db nestera.KVStore, t time.Time) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(t.UnixNano()))
	if err := db.Set([]byte(blockTimeKey), raw); err != nil {
		return errors.Wrap(err, "save block time")
	}
	return nil
}
