// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collection

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/meter"
)

// CollectionBody is the payload of a collection script clause.
type CollectionBody struct {
	Opcode   uint32
	Version  uint32
	Registry meter.Address
	Owner    meter.Address // approving owner or sender
	Operator meter.Address
	To       meter.Address
	ItemID   uint64
	Amount   uint64
	Approved bool
}

func (cb *CollectionBody) String() string {
	return fmt.Sprintf("CollectionBody(%v, registry=%v, owner=%v, operator=%v, to=%v, item=%v, amount=%v, approved=%v)",
		meter.GetCollectionOpName(cb.Opcode), cb.Registry, cb.Owner, cb.Operator, cb.To, cb.ItemID, cb.Amount, cb.Approved)
}

func EncodeToBytes(cb *CollectionBody) []byte {
	data, err := rlp.EncodeToBytes(cb)
	if err != nil {
		log.Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return data
}

func DecodeFromBytes(data []byte) (*CollectionBody, error) {
	cb := CollectionBody{}
	err := rlp.DecodeBytes(data, &cb)
	return &cb, err
}
