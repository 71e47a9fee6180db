// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/binary"
)

// LedgerRef is a reference to a ledger number. A transaction expires
// Expiration ledgers after it.
type LedgerRef [8]byte

// Number extracts ledger number.
func (lr LedgerRef) Number() uint32 {
	return binary.BigEndian.Uint32(lr[:])
}

// NewLedgerRef create ledger reference with ledger number.
func NewLedgerRef(number uint32) (lr LedgerRef) {
	binary.BigEndian.PutUint32(lr[:], number)
	return
}
