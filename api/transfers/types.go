// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/meterio/nft-auction/api/transactions"
	"github.com/meterio/nft-auction/logdb"
	"github.com/meterio/nft-auction/meter"
)

type FilteredTransfer struct {
	Sender    meter.Address         `json:"sender"`
	Recipient meter.Address         `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Asset     meter.Address         `json:"asset"`
	Meta      transactions.LogMeta  `json:"meta"`
}

func convertTransfer(transfer *logdb.Transfer) *FilteredTransfer {
	v := math.HexOrDecimal256(*transfer.Amount)
	return &FilteredTransfer{
		Sender:    transfer.Sender,
		Recipient: transfer.Recipient,
		Amount:    &v,
		Asset:     transfer.Asset,
		Meta: transactions.LogMeta{
			LedgerNumber:    transfer.LedgerNumber,
			LedgerTimestamp: transfer.LedgerTime,
			TxID:            transfer.TxID,
			TxOrigin:        transfer.TxOrigin,
		},
	}
}

type TransferFilter struct {
	TxID        *meter.Bytes32            `json:"txID"`
	CriteriaSet []*logdb.TransferCriteria `json:"criteriaSet"`
	Range       *logdb.Range              `json:"range"`
	Options     *logdb.Options            `json:"options"`
	Order       logdb.Order               `json:"order"`
}
