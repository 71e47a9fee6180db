// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// Pause suspends bidding. The end time keeps running.
func (a *Auction) Pause(env *setypes.ScriptEnv, id uint64) error {
	return a.atomic(env, meter.OP_PAUSE, func() error {
		auction, err := a.loadOwnAuction(env, id)
		if err != nil {
			return err
		}
		if auction.Expired(env.GetLedgerTime()) || auction.Status != meter.AuctionActive {
			return AuctionNotActive
		}
		auction.Status = meter.AuctionPaused
		saveAuction(env.GetState(), auction)
		emitAuctionEvent(env, AuctionPausedEvent, id, auction.Seller)
		return nil
	})
}

// Unpause resumes bidding on a paused auction.
func (a *Auction) Unpause(env *setypes.ScriptEnv, id uint64) error {
	return a.atomic(env, meter.OP_UNPAUSE, func() error {
		auction, err := a.loadOwnAuction(env, id)
		if err != nil {
			return err
		}
		if auction.Expired(env.GetLedgerTime()) {
			return AuctionNotActive
		}
		if auction.Status != meter.AuctionPaused {
			return AuctionNotPaused
		}
		auction.Status = meter.AuctionActive
		saveAuction(env.GetState(), auction)
		emitAuctionEvent(env, AuctionUnpausedEvent, id, auction.Seller)
		return nil
	})
}

// CancelAuction abandons an auction that never received a bid.
func (a *Auction) CancelAuction(env *setypes.ScriptEnv, id uint64) error {
	return a.atomic(env, meter.OP_CANCEL, func() error {
		state := env.GetState()
		auction, err := a.loadOwnAuction(env, id)
		if err != nil {
			return err
		}
		if auction.Status.Terminal() {
			return AuctionNotActive
		}
		if auction.HighestBid != nil || loadHighestBid(state, id) != nil {
			return AuctionHasBids
		}
		auction.Status = meter.AuctionCancelled
		saveAuction(state, auction)
		releaseItem(state, auction)
		emitAuctionEvent(env, AuctionCancelledEvent, id, auction.Seller)
		return nil
	})
}
