// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/tx"
)

// RawTx carries a hex encoded rlp transaction.
type RawTx struct {
	Raw string `json:"raw"`
}

// LogMeta locates an event or transfer log.
type LogMeta struct {
	LedgerNumber    uint32        `json:"ledgerNumber"`
	LedgerTimestamp uint64        `json:"ledgerTimestamp"`
	TxID            meter.Bytes32 `json:"txID"`
	TxOrigin        meter.Address `json:"txOrigin"`
}

// TxMeta locates an executed transaction.
type TxMeta struct {
	TxID   meter.Bytes32 `json:"txID"`
	Ledger uint32        `json:"ledger"`
}

type Event struct {
	Address meter.Address   `json:"address"`
	Topics  []meter.Bytes32 `json:"topics"`
	Data    string          `json:"data"`
}

type Transfer struct {
	Sender    meter.Address         `json:"sender"`
	Recipient meter.Address         `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Asset     meter.Address         `json:"asset"`
}

type Output struct {
	Data      string      `json:"data"`
	Events    []*Event    `json:"events"`
	Transfers []*Transfer `json:"transfers"`
}

// Receipt for json marshal
type Receipt struct {
	TxID     meter.Bytes32 `json:"txID"`
	Origin   meter.Address `json:"origin"`
	Ledger   uint32        `json:"ledger"`
	Reverted bool          `json:"reverted"`
	VMError  string        `json:"vmError,omitempty"`
	Outputs  []*Output     `json:"outputs"`
}

func convertReceipt(receipt *tx.Receipt) *Receipt {
	r := &Receipt{
		TxID:     receipt.TxID,
		Origin:   receipt.Origin,
		Ledger:   receipt.Ledger,
		Reverted: receipt.Reverted,
		VMError:  receipt.VMError,
		Outputs:  make([]*Output, len(receipt.Outputs)),
	}
	for i, output := range receipt.Outputs {
		o := &Output{
			Data:      hexutil.Encode(output.Data),
			Events:    make([]*Event, len(output.Events)),
			Transfers: make([]*Transfer, len(output.Transfers)),
		}
		for j, ev := range output.Events {
			o.Events[j] = &Event{
				Address: ev.Address,
				Topics:  ev.Topics,
				Data:    hexutil.Encode(ev.Data),
			}
		}
		for j, tr := range output.Transfers {
			v := math.HexOrDecimal256(*tr.Amount)
			o.Transfers[j] = &Transfer{
				Sender:    tr.Sender,
				Recipient: tr.Recipient,
				Amount:    &v,
				Asset:     tr.Asset,
			}
		}
		r.Outputs[i] = o
	}
	return r
}
