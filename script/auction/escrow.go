// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
)

func highestBidKey(id uint64) meter.Bytes32 {
	return meter.Blake2b([]byte("highest-bid"), meter.Uint64Bytes(id))
}

// loadHighestBid returns the escrow record of an auction, nil if no bid was placed.
func loadHighestBid(st *state.State, id uint64) *meter.HighestBid {
	var bid meter.HighestBid
	if !st.GetStructedStorage(meter.NFTAuctionModuleAddr, highestBidKey(id), &bid) {
		return nil
	}
	return &bid
}

func saveHighestBid(st *state.State, id uint64, bid *meter.HighestBid) {
	st.SetStructedStorage(meter.NFTAuctionModuleAddr, highestBidKey(id), bid)
}

// outbids reports whether amount may replace the current highest bid.
// Ties are rejected.
func outbids(current *meter.HighestBid, amount uint64) bool {
	if current == nil {
		return amount > 0
	}
	return amount > current.Amount
}
