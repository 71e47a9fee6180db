// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"time"

	"github.com/meterio/nft-auction/meter"
)

type Item struct {
	ItemAddress  meter.Address `json:"itemAddress"`
	ItemID       uint64        `json:"itemID"`
	Quantity     uint64        `json:"quantity"`
	MinimumPrice *uint64       `json:"minimumPrice"`
	BuyNowPrice  *uint64       `json:"buyNowPrice"`
}

type Auction struct {
	ID         uint64        `json:"id"`
	Item       Item          `json:"item"`
	Seller     meter.Address `json:"seller"`
	HighestBid *uint64       `json:"highestBid"`
	CreateTime uint64        `json:"createTime"`
	EndTime    uint64        `json:"endTime"`
	EndTimeStr string        `json:"endTimeStr"`
	Status     string        `json:"status"`
	Asset      meter.Address `json:"asset"`
}

type HighestBid struct {
	Amount uint64        `json:"amount"`
	Bidder meter.Address `json:"bidder"`
}

type Config struct {
	Initialized bool          `json:"initialized"`
	Admin       meter.Address `json:"admin"`
	Asset       meter.Address `json:"asset"`
	Fee         uint64        `json:"fee"`
}

func convertAuction(a *meter.NFTAuction) *Auction {
	return &Auction{
		ID: a.ID,
		Item: Item{
			ItemAddress:  a.Item.ItemAddress,
			ItemID:       a.Item.ItemID,
			Quantity:     a.Item.Quantity,
			MinimumPrice: a.Item.MinimumPrice,
			BuyNowPrice:  a.Item.BuyNowPrice,
		},
		Seller:     a.Seller,
		HighestBid: a.HighestBid,
		CreateTime: a.CreateTime,
		EndTime:    a.EndTime,
		EndTimeStr: time.Unix(int64(a.EndTime), 0).UTC().String(),
		Status:     a.Status.String(),
		Asset:      a.Asset,
	}
}

func convertAuctionList(list []*meter.NFTAuction) []*Auction {
	auctions := make([]*Auction, 0, len(list))
	for _, a := range list {
		auctions = append(auctions, convertAuction(a))
	}
	return auctions
}

func convertConfig(c *meter.AuctionConfig) *Config {
	return &Config{
		Initialized: c.Initialized,
		Admin:       c.Admin,
		Asset:       c.Asset,
		Fee:         c.Fee,
	}
}
