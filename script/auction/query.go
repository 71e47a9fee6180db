// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
)

// GetAuction returns the auction record by id.
func GetAuction(st *state.State, id uint64) (*meter.NFTAuction, error) {
	return loadAuction(st, id)
}

// GetActiveAuctions scans ids start..start+limit inclusive, capped at the
// highest assigned id, and returns the active ones. Zero start or limit take
// defaults.
func GetActiveAuctions(st *state.State, start, limit uint64) []*meter.NFTAuction {
	if start == 0 {
		start = meter.AUCTION_DEFAULT_START
	}
	if limit == 0 {
		limit = meter.AUCTION_DEFAULT_LIMIT
	}
	result := make([]*meter.NFTAuction, 0)
	last := lastAuctionID(st)
	if start > last {
		return result
	}
	end := last
	if limit < last-start {
		end = start + limit
	}

	keys := make([]meter.Bytes32, 0, end-start+1)
	for id := start; id <= end; id++ {
		keys = append(keys, auctionKey(id))
	}
	st.RangeStorage(meter.NFTAuctionModuleAddr, keys, func(key meter.Bytes32, raw []byte) bool {
		auction, err := decodeAuction(raw)
		if err != nil {
			log.Warn("skip undecodable auction", "key", key.AbbrevString(), "err", err)
			return true
		}
		if auction.Status == meter.AuctionActive {
			result = append(result, auction)
		}
		return true
	})
	return result
}

// GetAuctionsBySeller returns every auction created by seller, in creation order.
func GetAuctionsBySeller(st *state.State, seller meter.Address) ([]*meter.NFTAuction, error) {
	ids := sellerAuctionIDs(st, seller)
	if len(ids) == 0 {
		return nil, AuctionNotFound
	}
	auctions := make([]*meter.NFTAuction, 0, len(ids))
	for _, id := range ids {
		auction, err := loadAuction(st, id)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, nil
}

// GetHighestBid returns the leading bid of an auction.
func GetHighestBid(st *state.State, id uint64) (*meter.HighestBid, error) {
	if _, err := loadAuction(st, id); err != nil {
		return nil, err
	}
	bid := loadHighestBid(st, id)
	if bid == nil {
		return nil, MissingHighestBid
	}
	return bid, nil
}
