// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"math/big"

	"github.com/inconshreveable/log15"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
	"github.com/meterio/nft-auction/tx"
	"github.com/meterio/nft-auction/xenv"
)

var log = log15.New("pkg", "setypes")

type ScriptEnv struct {
	state    *state.State
	blockCtx *xenv.LedgerContext
	txCtx    *xenv.TransactionContext
	toAddr   *meter.Address

	returnData []byte
	transfers  []*tx.Transfer
	events     []*tx.Event
}

// Checkpoint marks the state revision and log lengths of a ScriptEnv.
type Checkpoint struct {
	revision  int
	transfers int
	events    int
}

func NewScriptEnv(state *state.State, blockCtx *xenv.LedgerContext, txCtx *xenv.TransactionContext, to *meter.Address) *ScriptEnv {
	return &ScriptEnv{
		state:      state,
		blockCtx:   blockCtx,
		txCtx:      txCtx,
		toAddr:     to,
		returnData: make([]byte, 0),
		transfers:  make([]*tx.Transfer, 0),
		events:     make([]*tx.Event, 0),
	}
}

func (env *ScriptEnv) GetState() *state.State             { return env.state }
func (env *ScriptEnv) GetBlockCtx() *xenv.LedgerContext   { return env.blockCtx }
func (env *ScriptEnv) GetTxCtx() *xenv.TransactionContext { return env.txCtx }
func (env *ScriptEnv) GetToAddr() *meter.Address          { return env.toAddr }
func (env *ScriptEnv) GetLedgerNum() uint32               { return env.blockCtx.Number }
func (env *ScriptEnv) GetLedgerTime() uint64              { return env.blockCtx.Time }

// NewCheckpoint snapshots state and logs.
func (env *ScriptEnv) NewCheckpoint() Checkpoint {
	return Checkpoint{
		revision:  env.state.NewCheckpoint(),
		transfers: len(env.transfers),
		events:    len(env.events),
	}
}

// RevertTo drops state changes and logs made after the checkpoint.
func (env *ScriptEnv) RevertTo(cp Checkpoint) {
	env.state.RevertTo(cp.revision)
	env.transfers = env.transfers[:cp.transfers]
	env.events = env.events[:cp.events]
}

func (env *ScriptEnv) SetReturnData(data []byte) {
	env.returnData = data
}
func (env *ScriptEnv) GetReturnData() []byte {
	if env.returnData == nil || len(env.returnData) <= 0 {
		return nil
	}
	return env.returnData
}

func (env *ScriptEnv) AddTransfer(sender, recipient meter.Address, amount *big.Int, asset meter.Address) {
	env.transfers = append(env.transfers, &tx.Transfer{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Asset:     asset,
	})
}

func (env *ScriptEnv) AddEvent(address meter.Address, topics []meter.Bytes32, data []byte) {
	env.events = append(env.events, &tx.Event{
		Address: address,
		Topics:  topics,
		Data:    data,
	})
}

func (env *ScriptEnv) GetTransfers() tx.Transfers {
	return env.transfers
}

func (env *ScriptEnv) GetEvents() tx.Events {
	return env.events
}

func (env *ScriptEnv) GetOutput() *ScriptEngineOutput {
	return &ScriptEngineOutput{
		Data:      env.GetReturnData(),
		Events:    env.events,
		Transfers: env.transfers,
	}
}
