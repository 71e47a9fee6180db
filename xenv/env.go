// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"fmt"

	"github.com/meterio/nft-auction/meter"
)

// LedgerContext identifies the ledger a transaction is applied in.
type LedgerContext struct {
	Number uint32
	Time   uint64
}

// Next returns the context of the following ledger. Its time never goes
// backwards, whatever now says.
func (ctx LedgerContext) Next(now uint64) LedgerContext {
	if now < ctx.Time {
		now = ctx.Time
	}
	return LedgerContext{Number: ctx.Number + 1, Time: now}
}

func (ctx *LedgerContext) String() string {
	return fmt.Sprintf("ledger{#%d @%d}", ctx.Number, ctx.Time)
}

// TransactionContext carries the signed envelope of the executing transaction.
type TransactionContext struct {
	ID         meter.Bytes32
	Origin     meter.Address
	Expiration uint32
	Nonce      uint64
}

func (ctx *TransactionContext) String() string {
	return fmt.Sprintf("tx{%v origin=%v exp=%d nonce=%d}", ctx.ID.AbbrevString(), ctx.Origin, ctx.Expiration, ctx.Nonce)
}
