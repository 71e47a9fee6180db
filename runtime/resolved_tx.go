// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"errors"

	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script"
	"github.com/meterio/nft-auction/tx"
	"github.com/meterio/nft-auction/xenv"
)

var (
	ErrNoClause          = errors.New("tx has no clause")
	ErrNotScript         = errors.New("clause data is not a script")
	ErrUnknownRecipient  = errors.New("clause recipient is not a module")
	ErrChainTagMismatch  = errors.New("chain tag mismatch")
	ErrExpired           = errors.New("tx expired")
	ErrLedgerRefInFuture = errors.New("tx ledger ref in future")
	ErrKnownTx           = errors.New("tx already executed")
)

// ResolvedTransaction resolve the transaction according to given state.
type ResolvedTransaction struct {
	tx      *tx.Transaction
	Origin  meter.Address
	Clauses []*tx.Clause
}

// ResolveTransaction resolves the transaction and performs basic validation.
func ResolveTransaction(trx *tx.Transaction) (*ResolvedTransaction, error) {
	origin, err := trx.Signer()
	if err != nil {
		return nil, err
	}
	clauses := trx.Clauses()
	if len(clauses) == 0 {
		return nil, ErrNoClause
	}
	for _, clause := range clauses {
		if to := clause.To(); to != nil && *to != meter.NFTAuctionModuleAddr {
			return nil, ErrUnknownRecipient
		}
		if !script.IsScriptData(clause.Data()) {
			return nil, ErrNotScript
		}
	}
	return &ResolvedTransaction{
		trx,
		origin,
		clauses,
	}, nil
}

// ToContext create a tx context object.
func (r *ResolvedTransaction) ToContext() *xenv.TransactionContext {
	return &xenv.TransactionContext{
		ID:         r.tx.ID(),
		Origin:     r.Origin,
		Expiration: r.tx.Expiration(),
		Nonce:      r.tx.Nonce(),
	}
}
