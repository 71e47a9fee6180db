// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"github.com/meterio/nft-auction/tx"
)

// ScriptEngineOutput is what a module hands back for one clause.
type ScriptEngineOutput struct {
	Data      []byte
	Events    tx.Events
	Transfers tx.Transfers
}
