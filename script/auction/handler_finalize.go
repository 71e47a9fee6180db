// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// FinalizeAuction settles an auction whose end time has been reached.
// With no bid it just ends. A bid below the minimum price is refunded.
// Otherwise the escrow pays the seller and the item goes to the bidder.
func (a *Auction) FinalizeAuction(env *setypes.ScriptEnv, id uint64) error {
	return a.atomic(env, meter.OP_FINALIZE, func() error {
		state := env.GetState()
		auction, err := a.loadOwnAuction(env, id)
		if err != nil {
			return err
		}
		finished := auction.Finished(env.GetLedgerTime())
		switch auction.Status {
		case meter.AuctionActive:
			if !finished {
				return AuctionNotFinished
			}
		case meter.AuctionPaused:
			// a paused auction still expires
			if !finished {
				return AuctionNotActive
			}
		default:
			return AuctionNotActive
		}

		bid := loadHighestBid(state, id)
		if bid == nil && auction.HighestBid != nil {
			return MissingHighestBid
		}

		outcome := "settled"
		switch {
		case bid == nil:
			outcome = "no-bid"
			emitAuctionEvent(env, AuctionEndedEvent, id, auction.Seller)

		case !auction.MinimumPriceReached(bid.Amount):
			outcome = "refunded"
			if err := releaseFunds(env, auction.Asset, bid.Bidder, bid.Amount); err != nil {
				return err
			}
			emitAuctionEvent(env, BidRefundedEvent, id, bid.Bidder, bid.Amount)
			emitAuctionEvent(env, AuctionEndedEvent, id, auction.Seller)

		default:
			if err := releaseFunds(env, auction.Asset, auction.Seller, bid.Amount); err != nil {
				return err
			}
			if err := a.deliverItem(env, auction, bid.Bidder); err != nil {
				return err
			}
			emitAuctionEvent(env, AuctionSettledEvent, id, bid.Bidder, bid.Amount)
		}

		auction.Status = meter.AuctionEnded
		saveAuction(state, auction)
		releaseItem(state, auction)
		a.logger.Info("auction finalized", "id", id, "outcome", outcome)
		return nil
	})
}

// deliverItem moves the listed quantity from the seller to the winner.
func (a *Auction) deliverItem(env *setypes.ScriptEnv, auction *meter.NFTAuction, to meter.Address) error {
	item := auction.Item
	if err := env.TransferItem(item.ItemAddress, auction.Seller, to, item.ItemID, item.Quantity); err != nil {
		a.logger.Warn("item transfer failed", "id", auction.ID, "err", err)
		return PaymentProcessingFailed
	}
	emitAuctionEvent(env, ItemTransferredEvent, auction.ID, to, auction.Seller, item.ItemID, item.Quantity)
	return nil
}
