// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/meter"
)

// AuctionBody is the payload of an auction script clause.
// Fields not used by an opcode are left zero.
type AuctionBody struct {
	Opcode    uint32
	Version   uint32
	AuctionID uint64
	Item      meter.ItemInfo
	Seller    meter.Address
	Bidder    meter.Address // bidder or buyer
	Admin     meter.Address // initial or new admin
	Amount    uint64        // bid amount or engine fee
	Duration  uint64        // seconds
	Asset     meter.Address // settlement asset
}

func (ab *AuctionBody) ToString() string {
	return fmt.Sprintf("AuctionBody: Opcode=%v, Version=%v, AuctionID=%v, Item=%v, Seller=%v, Bidder=%v, Admin=%v, Amount=%v, Duration=%v, Asset=%v",
		meter.GetOpName(ab.Opcode), ab.Version, ab.AuctionID, ab.Item.ToString(), ab.Seller, ab.Bidder, ab.Admin, ab.Amount, ab.Duration, ab.Asset)
}

func (ab *AuctionBody) String() string {
	return ab.ToString()
}

func EncodeToBytes(ab *AuctionBody) []byte {
	auctionBytes, err := rlp.EncodeToBytes(ab)
	if err != nil {
		log.Error("rlp encode failed", "error", err)
		return []byte{}
	}
	return auctionBytes
}

func DecodeFromBytes(bytes []byte) (*AuctionBody, error) {
	ab := AuctionBody{}
	err := rlp.DecodeBytes(bytes, &ab)
	return &ab, err
}
