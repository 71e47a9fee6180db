// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/meterio/nft-auction/builtin/collection"
	"github.com/meterio/nft-auction/builtin/params"
	"github.com/meterio/nft-auction/builtin/token"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
)

// Builtin contracts binding.
var (
	Params = &paramsContract{meter.ParamsAddr}
	Ledger = &paramsContract{meter.LedgerAddr}
)

type (
	paramsContract     struct{ Address meter.Address }
	tokenContract      struct{ Address meter.Address }
	collectionContract struct{ Address meter.Address }
)

func (p *paramsContract) Native(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

// Token binds the fungible asset ledger at addr.
func Token(addr meter.Address) *tokenContract {
	return &tokenContract{addr}
}

func (t *tokenContract) Native(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

// Collection binds the multi-token registry at addr.
func Collection(addr meter.Address) *collectionContract {
	return &collectionContract{addr}
}

func (c *collectionContract) Native(state *state.State) *collection.Collection {
	return collection.New(c.Address, state)
}
