// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/builtin"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
)

// the global variables in auction
var (
	AuctionIDKey = meter.Blake2b([]byte("auction-id-counter"))
)

func auctionKey(id uint64) meter.Bytes32 {
	return meter.Blake2b([]byte("auction"), meter.Uint64Bytes(id))
}

func sellerAuctionsKey(seller meter.Address) meter.Bytes32 {
	return meter.Blake2b([]byte("seller-auctions"), seller.Bytes())
}

func listedKey(seller, registry meter.Address, itemID uint64) meter.Bytes32 {
	return meter.Blake2b([]byte("listed"), seller.Bytes(), registry.Bytes(), meter.Uint64Bytes(itemID))
}

// lastAuctionID returns the highest assigned auction id, 0 if none.
func lastAuctionID(st *state.State) uint64 {
	raw := st.GetStorage(meter.NFTAuctionModuleAddr, AuctionIDKey)
	if len(raw) == 0 {
		return 0
	}
	return meter.BytesToUint64(raw)
}

// nextAuctionID assigns a fresh auction id. Ids are never reused.
func nextAuctionID(st *state.State) uint64 {
	id := lastAuctionID(st) + 1
	st.SetStorage(meter.NFTAuctionModuleAddr, AuctionIDKey, meter.Uint64Bytes(id))
	return id
}

func decodeAuction(raw []byte) (*meter.NFTAuction, error) {
	var a meter.NFTAuction
	if err := rlp.DecodeBytes(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func loadAuction(st *state.State, id uint64) (auction *meter.NFTAuction, err error) {
	raw := st.GetStorage(meter.NFTAuctionModuleAddr, auctionKey(id))
	if len(raw) == 0 {
		return nil, AuctionNotFound
	}
	auction, err = decodeAuction(raw)
	if err != nil {
		log.Warn("Error during decoding auction", "id", id, "err", err)
		return nil, err
	}
	return
}

// saveAuction writes the auction record. The seller index only holds ids,
// so it stays consistent with every write here.
func saveAuction(st *state.State, auction *meter.NFTAuction) {
	st.SetStructedStorage(meter.NFTAuctionModuleAddr, auctionKey(auction.ID), auction)
}

func sellerAuctionIDs(st *state.State, seller meter.Address) (ids []uint64) {
	st.GetStructedStorage(meter.NFTAuctionModuleAddr, sellerAuctionsKey(seller), &ids)
	return
}

func appendSellerAuction(st *state.State, seller meter.Address, id uint64) {
	ids := append(sellerAuctionIDs(st, seller), id)
	st.SetStructedStorage(meter.NFTAuctionModuleAddr, sellerAuctionsKey(seller), ids)
}

// ListedQuantity returns how many units of an item the seller has on
// auctions that are not terminal yet.
func ListedQuantity(st *state.State, seller, registry meter.Address, itemID uint64) uint64 {
	raw := st.GetStorage(meter.NFTAuctionModuleAddr, listedKey(seller, registry, itemID))
	if len(raw) == 0 {
		return 0
	}
	return meter.BytesToUint64(raw)
}

func setListedQuantity(st *state.State, seller, registry meter.Address, itemID, quantity uint64) {
	key := listedKey(seller, registry, itemID)
	if quantity == 0 {
		st.SetStorage(meter.NFTAuctionModuleAddr, key, nil)
		return
	}
	st.SetStorage(meter.NFTAuctionModuleAddr, key, meter.Uint64Bytes(quantity))
}

// reserveItem marks the listed units as taken until the auction is over.
func reserveItem(st *state.State, auction *meter.NFTAuction) {
	item := auction.Item
	listed := ListedQuantity(st, auction.Seller, item.ItemAddress, item.ItemID)
	setListedQuantity(st, auction.Seller, item.ItemAddress, item.ItemID, listed+item.Quantity)
}

// releaseItem returns the listed units of a terminal auction.
func releaseItem(st *state.State, auction *meter.NFTAuction) {
	item := auction.Item
	listed := ListedQuantity(st, auction.Seller, item.ItemAddress, item.ItemID)
	if listed < item.Quantity {
		log.Warn("listed quantity below auction quantity", "id", auction.ID, "listed", listed)
		listed = item.Quantity
	}
	setListedQuantity(st, auction.Seller, item.ItemAddress, item.ItemID, listed-item.Quantity)
}

// GetConfig returns the engine configuration.
func GetConfig(st *state.State) *meter.AuctionConfig {
	params := builtin.Params.Native(st)
	return &meter.AuctionConfig{
		Initialized: params.GetBool(meter.KeyInitialized),
		Admin:       params.GetAddress(meter.KeyAdminAddress),
		Asset:       params.GetAddress(meter.KeySettlementAsset),
		Fee:         params.GetUint64(meter.KeyAuctionFee),
	}
}

func setConfig(st *state.State, config *meter.AuctionConfig) {
	params := builtin.Params.Native(st)
	params.SetBool(meter.KeyInitialized, config.Initialized)
	params.SetAddress(meter.KeyAdminAddress, config.Admin)
	params.SetAddress(meter.KeySettlementAsset, config.Asset)
	params.SetUint64(meter.KeyAuctionFee, config.Fee)
}
