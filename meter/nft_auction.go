// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

import (
	"fmt"
	"strconv"
	"time"
)

type AuctionStatus uint32

const (
	AuctionActive AuctionStatus = iota
	AuctionPaused
	AuctionEnded
	AuctionCancelled
)

func (s AuctionStatus) String() string {
	switch s {
	case AuctionActive:
		return "Active"
	case AuctionPaused:
		return "Paused"
	case AuctionEnded:
		return "Ended"
	case AuctionCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further mutation is allowed.
func (s AuctionStatus) Terminal() bool {
	return s == AuctionEnded || s == AuctionCancelled
}

// ItemInfo describes the listed item in its multi-token registry.
type ItemInfo struct {
	ItemAddress  Address // registry (collection) address
	ItemID       uint64
	Quantity     uint64
	MinimumPrice *uint64 `rlp:"nil"`
	BuyNowPrice  *uint64 `rlp:"nil"`
}

func (i *ItemInfo) ToString() string {
	return fmt.Sprintf("Item(addr=%v, id=%v, quantity=%v, minPrice=%v, buyNow=%v)",
		i.ItemAddress, i.ItemID, i.Quantity, optString(i.MinimumPrice), optString(i.BuyNowPrice))
}

// NFTAuction is the source-of-truth record of an auction, stored by ID.
type NFTAuction struct {
	ID         uint64
	Item       ItemInfo
	Seller     Address
	HighestBid *uint64 `rlp:"nil"`
	CreateTime uint64
	EndTime    uint64
	Status     AuctionStatus
	Asset      Address // fungible asset accepted for bids
}

func NewNFTAuction(id uint64, item ItemInfo, seller Address, now, duration uint64, asset Address) *NFTAuction {
	return &NFTAuction{
		ID:         id,
		Item:       item,
		Seller:     seller,
		CreateTime: now,
		EndTime:    now + duration,
		Status:     AuctionActive,
		Asset:      asset,
	}
}

// Expired reports whether bidding time is over at ledger time now.
func (a *NFTAuction) Expired(now uint64) bool {
	return now > a.EndTime
}

// Finished reports whether the auction may be settled at ledger time now.
func (a *NFTAuction) Finished(now uint64) bool {
	return now >= a.EndTime
}

// MinimumPriceReached reports whether amount satisfies the item's minimum price.
// No minimum price is always reached.
func (a *NFTAuction) MinimumPriceReached(amount uint64) bool {
	return a.Item.MinimumPrice == nil || amount >= *a.Item.MinimumPrice
}

func (a *NFTAuction) ToString() string {
	return fmt.Sprintf("NFTAuction(id=%v, seller=%v, status=%v, highestBid=%v, asset=%v, endTime=%v, %v)",
		a.ID, a.Seller, a.Status, optString(a.HighestBid), a.Asset,
		time.Unix(int64(a.EndTime), 0).UTC().Format(time.RFC3339), a.Item.ToString())
}

func (a *NFTAuction) String() string {
	return a.ToString()
}

// HighestBid is the escrow record of the leading bid of an auction.
type HighestBid struct {
	Amount uint64
	Bidder Address
}

func (b *HighestBid) ToString() string {
	return fmt.Sprintf("HighestBid(amount=%v, bidder=%v)", b.Amount, b.Bidder)
}

// AuctionConfig is the engine configuration set by initialization.
type AuctionConfig struct {
	Initialized bool
	Admin       Address
	Asset       Address
	Fee         uint64
}

func Uint64Ptr(v uint64) *uint64 {
	return &v
}

func optString(v *uint64) string {
	if v == nil {
		return "none"
	}
	return strconv.FormatUint(*v, 10)
}
