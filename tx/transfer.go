// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"math/big"

	"github.com/meterio/nft-auction/meter"
)

// Transfer token transfer log.
type Transfer struct {
	Sender    meter.Address
	Recipient meter.Address
	Amount    *big.Int
	Asset     meter.Address
}

func (t *Transfer) String() string {
	return fmt.Sprintf("Transfer(%v -> %v, %v of %v)", t.Sender, t.Recipient, t.Amount, t.Asset)
}

// Transfers slisce of transfer logs.
type Transfers []*Transfer
