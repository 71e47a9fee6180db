// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// PlaceBid escrows amount as the new highest bid, refunding the displaced bidder.
func (a *Auction) PlaceBid(env *setypes.ScriptEnv, id uint64, bidder meter.Address, amount uint64) error {
	return a.atomic(env, meter.OP_BID, func() error {
		state := env.GetState()
		auction, err := loadAuction(state, id)
		if err != nil {
			return err
		}
		if err := authorize(env, bidder); err != nil {
			return err
		}
		if auction.Status != meter.AuctionActive || auction.Expired(env.GetLedgerTime()) {
			return AuctionNotActive
		}
		if bidder == auction.Seller {
			return InvalidBidder
		}

		current := loadHighestBid(state, id)
		if !outbids(current, amount) {
			a.logger.Debug("bid not enough", "id", id, "amount", amount, "current", current)
			return BidNotEnough
		}

		// refund the displaced bid, then capture the new one
		if current != nil {
			if err := releaseFunds(env, auction.Asset, current.Bidder, current.Amount); err != nil {
				return err
			}
			emitAuctionEvent(env, BidRefundedEvent, id, current.Bidder, current.Amount)
		}
		if err := pullFunds(env, auction.Asset, bidder, amount); err != nil {
			return err
		}

		saveHighestBid(state, id, &meter.HighestBid{Amount: amount, Bidder: bidder})
		auction.HighestBid = meter.Uint64Ptr(amount)
		saveAuction(state, auction)

		emitAuctionEvent(env, BidPlacedEvent, id, bidder, amount)
		a.logger.Info("bid placed", "id", id, "bidder", bidder, "amount", amount)
		return nil
	})
}
