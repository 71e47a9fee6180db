// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gorilla/mux"
	"github.com/meterio/nft-auction/api/utils"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/runtime"
	"github.com/meterio/nft-auction/tx"
	"github.com/pkg/errors"
)

// Executor runs signed transactions on the ledger.
type Executor interface {
	ExecuteTransaction(trx *tx.Transaction) (*tx.Receipt, error)
	TxLedger(id meter.Bytes32) (uint32, bool)
}

type Transactions struct {
	executor Executor
}

func New(executor Executor) *Transactions {
	return &Transactions{
		executor,
	}
}

func isBadTx(err error) bool {
	switch err {
	case runtime.ErrNoClause, runtime.ErrNotScript, runtime.ErrUnknownRecipient,
		runtime.ErrChainTagMismatch, runtime.ErrExpired, runtime.ErrLedgerRefInFuture, tx.ErrUnsigned:
		return true
	}
	return false
}

func (t *Transactions) handleSendTransaction(w http.ResponseWriter, req *http.Request) error {
	var rawTx RawTx
	if err := utils.ParseJSON(req.Body, &rawTx); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	data, err := hexutil.Decode(rawTx.Raw)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}
	var trx tx.Transaction
	if err := rlp.DecodeBytes(data, &trx); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "raw"))
	}

	receipt, err := t.executor.ExecuteTransaction(&trx)
	if err != nil {
		if err == runtime.ErrKnownTx {
			return utils.Forbidden(err)
		}
		if isBadTx(err) {
			return utils.BadRequest(err)
		}
		// signature recovery failures
		if _, serr := trx.Signer(); serr != nil {
			return utils.BadRequest(err)
		}
		return err
	}
	return utils.WriteJSON(w, convertReceipt(receipt))
}

func (t *Transactions) handleGetTransactionByID(w http.ResponseWriter, req *http.Request) error {
	id, err := meter.ParseBytes32(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	ledger, ok := t.executor.TxLedger(id)
	if !ok {
		return utils.NotFound(errors.New("transaction not found"))
	}
	return utils.WriteJSON(w, &TxMeta{TxID: id, Ledger: ledger})
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods("POST").HandlerFunc(utils.WrapHandlerFunc(t.handleSendTransaction))
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(t.handleGetTransactionByID))
}
