// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/meterio/nft-auction/meter"
)

// Receipt represents the results of a transaction.
type Receipt struct {
	TxID meter.Bytes32
	// the account that signed the tx
	Origin meter.Address
	// ledger number the tx was executed at
	Ledger uint32
	// if the tx reverted
	Reverted bool
	// error message of the reverted clause
	VMError string
	// outputs of clauses in tx
	Outputs []*Output
}

// Output output of clause execution.
type Output struct {
	// returned data of the script module
	Data []byte
	// events produced by the clause
	Events Events
	// transfer occurred in clause
	Transfers Transfers
}

// Receipts slice of receipts.
type Receipts []*Receipt
