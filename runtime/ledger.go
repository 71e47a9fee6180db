// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/meterio/nft-auction/builtin"
	"github.com/meterio/nft-auction/kv"
	"github.com/meterio/nft-auction/logdb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script"
	"github.com/meterio/nft-auction/script/auction"
	"github.com/meterio/nft-auction/state"
	"github.com/meterio/nft-auction/tx"
	"github.com/meterio/nft-auction/xenv"
	"github.com/pkg/errors"
)

// Clock returns the current unix time in seconds.
type Clock func() uint64

// SystemClock reads the local wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Ledger applies transactions one at a time. Each transaction opens a new
// ledger whose time never goes backwards.
type Ledger struct {
	mu       sync.Mutex
	state    *state.State
	logDB    *logdb.LogDB
	engine   *script.ScriptEngine
	clock    Clock
	chainTag byte
	best     xenv.LedgerContext
	logger   *slog.Logger
}

// NewLedger opens the ledger stored in kv. logDB may be nil.
func NewLedger(kv kv.BatchGetPutter, logDB *logdb.LogDB, engine *script.ScriptEngine, chainTag byte, clock Clock) *Ledger {
	st := state.New(kv)
	progress := builtin.Ledger.Native(st)
	best := xenv.LedgerContext{
		Number: uint32(progress.GetUint64(meter.KeyBestLedger)),
		Time:   progress.GetUint64(meter.KeyBestTime),
	}
	if clock == nil {
		clock = SystemClock
	}
	bestLedgerGauge.Set(float64(best.Number))
	return &Ledger{
		state:    st,
		logDB:    logDB,
		engine:   engine,
		clock:    clock,
		chainTag: chainTag,
		best:     best,
		logger:   slog.Default().With("pkg", "ledger"),
	}
}

// ChainTag returns the tag transactions must carry.
func (l *Ledger) ChainTag() byte {
	return l.chainTag
}

// Best returns the context of the latest ledger.
func (l *Ledger) Best() xenv.LedgerContext {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.best
}

// View runs fn with exclusive read access to the state.
func (l *Ledger) View(fn func(st *state.State) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := fn(l.state); err != nil {
		return err
	}
	return l.state.Err()
}

// IsKnown tells whether the tx has been executed.
func (l *Ledger) IsKnown(id meter.Bytes32) bool {
	_, ok := l.TxLedger(id)
	return ok
}

// TxLedger returns the ledger number the tx was executed at.
func (l *Ledger) TxLedger(id meter.Bytes32) (uint32, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	raw := l.state.GetStorage(meter.LedgerAddr, id)
	if len(raw) == 0 {
		return 0, false
	}
	return uint32(meter.BytesToUint64(raw)), true
}

// ExecuteTransaction runs trx in a new ledger, commits the state and records
// the logs. A rejected transaction leaves the ledger untouched. A reverted one
// still advances it.
func (l *Ledger) ExecuteTransaction(trx *tx.Transaction) (receipt *tx.Receipt, err error) {
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	defer func() {
		result := "success"
		switch {
		case err != nil:
			result = "rejected"
		case receipt.Reverted:
			result = "reverted"
		}
		txCounter.WithLabelValues(result).Inc()
		txDuration.Observe(time.Since(start).Seconds())
	}()

	next := l.best.Next(l.clock())
	if err := l.validate(trx, next.Number); err != nil {
		return nil, err
	}

	checkpoint := l.state.NewCheckpoint()
	l.state.SetLedger(next.Number)
	receipt, err = New(l.state, &next, l.engine).ExecuteTransaction(trx)
	if err != nil {
		l.state.RevertTo(checkpoint)
		return nil, err
	}

	progress := builtin.Ledger.Native(l.state)
	progress.SetUint64(meter.KeyBestLedger, uint64(next.Number))
	progress.SetUint64(meter.KeyBestTime, next.Time)
	l.state.SetStorage(meter.LedgerAddr, receipt.TxID, meter.Uint64Bytes(uint64(next.Number)))
	if err := l.state.Commit(); err != nil {
		l.state.Reset()
		return nil, errors.Wrap(err, "commit state")
	}
	l.best = next
	bestLedgerGauge.Set(float64(next.Number))
	if !receipt.Reverted {
		for _, output := range receipt.Outputs {
			auction.ObserveEvents(output.Events)
		}
	}

	if l.logDB != nil && !receipt.Reverted {
		batch := l.logDB.Prepare(logdb.LedgerRef{Number: next.Number, Time: next.Time})
		for _, output := range receipt.Outputs {
			batch.ForTransaction(receipt.TxID, receipt.Origin).Insert(output.Events, output.Transfers)
		}
		if err := batch.Commit(); err != nil {
			l.logger.Error("write logs failed", "ledger", next.Number, "err", err)
		}
	}
	l.logger.Info("executed tx", "ledger", next.Number, "txid", receipt.TxID, "origin", receipt.Origin, "reverted", receipt.Reverted, "elapsed", common.PrettyDuration(time.Since(start)))
	return receipt, nil
}

func (l *Ledger) validate(trx *tx.Transaction, number uint32) error {
	if trx.ChainTag() != l.chainTag {
		return ErrChainTagMismatch
	}
	if trx.LedgerRef().Number() > number {
		return ErrLedgerRefInFuture
	}
	if trx.IsExpired(number) {
		return ErrExpired
	}
	if _, err := trx.Signer(); err != nil {
		return err
	}
	if l.state.HasStorage(meter.LedgerAddr, trx.ID()) {
		return ErrKnownTx
	}
	return nil
}
