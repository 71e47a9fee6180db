// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// BuyNow settles the auction at its buy-now price before its end time.
// The minimum price does not apply.
func (a *Auction) BuyNow(env *setypes.ScriptEnv, id uint64, buyer meter.Address) error {
	return a.atomic(env, meter.OP_BUY_NOW, func() error {
		state := env.GetState()
		auction, err := loadAuction(state, id)
		if err != nil {
			return err
		}
		if err := authorize(env, buyer); err != nil {
			return err
		}
		if auction.Status != meter.AuctionActive || auction.Expired(env.GetLedgerTime()) {
			return AuctionNotActive
		}
		if auction.Item.BuyNowPrice == nil {
			return NoBuyNowOption
		}
		if buyer == auction.Seller {
			return InvalidBidder
		}
		price := *auction.Item.BuyNowPrice

		if current := loadHighestBid(state, id); current != nil {
			if err := releaseFunds(env, auction.Asset, current.Bidder, current.Amount); err != nil {
				return err
			}
			emitAuctionEvent(env, BidRefundedEvent, id, current.Bidder, current.Amount)
		}
		if err := payFunds(env, auction.Asset, buyer, auction.Seller, price); err != nil {
			return err
		}
		if err := a.deliverItem(env, auction, buyer); err != nil {
			return err
		}

		saveHighestBid(state, id, &meter.HighestBid{Amount: price, Bidder: buyer})
		auction.HighestBid = meter.Uint64Ptr(price)
		auction.Status = meter.AuctionEnded
		saveAuction(state, auction)
		releaseItem(state, auction)

		emitAuctionEvent(env, AuctionBoughtEvent, id, buyer, price)
		a.logger.Info("auction bought", "id", id, "buyer", buyer, "price", price)
		return nil
	})
}
