// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"log/slog"

	"github.com/meterio/nft-auction/script"
	setypes "github.com/meterio/nft-auction/script/types"
	"github.com/meterio/nft-auction/state"
	"github.com/meterio/nft-auction/tx"
	"github.com/meterio/nft-auction/xenv"
	"github.com/pkg/errors"
)

// Output output of clause execution.
type Output struct {
	Data      []byte
	Events    tx.Events
	Transfers tx.Transfers
	VMErr     error // VMErr identify the execution result of the script module
}

type TransactionExecutor struct {
	HasNextClause func() bool
	NextClause    func() (output *Output, err error)
	Finalize      func() (*tx.Receipt, error)
}

// Runtime executes transactions of one ledger against the script engine.
type Runtime struct {
	state  *state.State
	ctx    *xenv.LedgerContext
	engine *script.ScriptEngine
	logger *slog.Logger
}

// New create a Runtime object.
func New(
	state *state.State,
	ctx *xenv.LedgerContext,
	engine *script.ScriptEngine,
) *Runtime {
	return &Runtime{
		state:  state,
		ctx:    ctx,
		engine: engine,
		logger: slog.Default().With("pkg", "rt"),
	}
}

func (rt *Runtime) State() *state.State          { return rt.state }
func (rt *Runtime) Context() *xenv.LedgerContext { return rt.ctx }

// ExecuteClause executes single clause.
func (rt *Runtime) ExecuteClause(
	clause *tx.Clause,
	clauseIndex uint32,
	txCtx *xenv.TransactionContext,
) *Output {
	data := clause.Data()
	if !script.IsScriptData(data) {
		return &Output{VMErr: ErrNotScript}
	}

	env := setypes.NewScriptEnv(rt.state, rt.ctx, txCtx, clause.To())
	seOutput, err := rt.engine.HandleScriptData(env, data[len(script.ScriptPrefix):], clause.To())
	output := &Output{VMErr: err}
	if seOutput != nil {
		output.Data = seOutput.Data
		output.Events = seOutput.Events
		output.Transfers = seOutput.Transfers
	}
	rt.logger.Debug("clause executed", "index", clauseIndex, "txid", txCtx.ID, "err", err)
	return output
}

// ExecuteTransaction executes a transaction.
// If some clause failed, receipt.Outputs will be nil and the receipt is marked reverted.
func (rt *Runtime) ExecuteTransaction(tx *tx.Transaction) (receipt *tx.Receipt, err error) {
	executor, err := rt.PrepareTransaction(tx)
	if err != nil {
		return nil, err
	}

	for executor.HasNextClause() {
		if _, err := executor.NextClause(); err != nil {
			return nil, err
		}
	}
	return executor.Finalize()
}

// PrepareTransaction prepare to execute tx.
func (rt *Runtime) PrepareTransaction(trx *tx.Transaction) (*TransactionExecutor, error) {
	resolvedTx, err := ResolveTransaction(trx)
	if err != nil {
		return nil, err
	}

	// checkpoint to be reverted when clause failure.
	checkpoint := rt.state.NewCheckpoint()

	txCtx := resolvedTx.ToContext()

	txOutputs := make([]*tx.Output, 0, len(resolvedTx.Clauses))
	reverted := false
	finalized := false
	var vmErr error

	hasNext := func() bool {
		return !reverted && len(txOutputs) < len(resolvedTx.Clauses)
	}

	return &TransactionExecutor{
		HasNextClause: hasNext,
		NextClause: func() (output *Output, err error) {
			if !hasNext() {
				return nil, errors.New("no more clause")
			}
			nextClauseIndex := uint32(len(txOutputs))
			output = rt.ExecuteClause(resolvedTx.Clauses[nextClauseIndex], nextClauseIndex, txCtx)

			if output.VMErr != nil {
				// revert all executed clauses
				rt.logger.Info("clause failed", "txid", txCtx.ID, "index", nextClauseIndex, "err", output.VMErr)
				rt.state.RevertTo(checkpoint)
				reverted = true
				vmErr = output.VMErr
				txOutputs = nil
				return
			}
			txOutputs = append(txOutputs, &tx.Output{Data: output.Data, Events: output.Events, Transfers: output.Transfers})
			return
		},
		Finalize: func() (*tx.Receipt, error) {
			if hasNext() {
				return nil, errors.New("not all clauses processed")
			}
			if finalized {
				return nil, errors.New("already finalized")
			}
			finalized = true

			receipt := &tx.Receipt{
				TxID:     txCtx.ID,
				Origin:   resolvedTx.Origin,
				Ledger:   rt.ctx.Number,
				Reverted: reverted,
				Outputs:  txOutputs,
			}
			if vmErr != nil {
				receipt.VMError = vmErr.Error()
			}
			return receipt, nil
		},
	}, nil
}
