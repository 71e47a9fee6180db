// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"math"

	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// unset optional prices are validated as this value, never stored
const unsetPriceSentinel = uint64(1)

func validateItem(item *meter.ItemInfo, duration uint64) error {
	minPrice, buyNow := unsetPriceSentinel, unsetPriceSentinel
	if item.MinimumPrice != nil {
		minPrice = *item.MinimumPrice
	}
	if item.BuyNowPrice != nil {
		buyNow = *item.BuyNowPrice
	}
	for _, v := range []uint64{duration, item.ItemID, item.Quantity, minPrice, buyNow} {
		if v < 1 {
			return InvalidInputs
		}
	}
	if item.ItemAddress.IsZero() {
		return InvalidInputs
	}
	return nil
}

// CreateAuction lists quantity units of an item for duration seconds.
// A zero asset selects the configured settlement asset.
func (a *Auction) CreateAuction(env *setypes.ScriptEnv, item meter.ItemInfo, seller meter.Address, duration uint64, asset meter.Address) (auction *meter.NFTAuction, err error) {
	err = a.atomic(env, meter.OP_CREATE, func() error {
		if err := authorize(env, seller); err != nil {
			return err
		}
		if err := validateItem(&item, duration); err != nil {
			return err
		}
		now := env.GetLedgerTime()
		if duration > math.MaxUint64-now {
			return InvalidInputs
		}

		state := env.GetState()
		if asset.IsZero() {
			asset = GetConfig(state).Asset
			if asset.IsZero() {
				return InvalidInputs
			}
		}

		// units already on auction stay with the seller but cannot be listed again
		balance := env.ItemBalance(item.ItemAddress, seller, item.ItemID)
		listed := ListedQuantity(state, seller, item.ItemAddress, item.ItemID)
		if balance < listed || balance-listed < item.Quantity {
			a.logger.Info("not enough item balance", "seller", seller, "item", item.ToString(), "listed", listed)
			return NotEnoughBalance
		}
		if !env.ItemApproved(item.ItemAddress, seller) {
			return ItemNotApproved
		}

		id := nextAuctionID(state)
		auction = meter.NewNFTAuction(id, item, seller, now, duration, asset)
		saveAuction(state, auction)
		appendSellerAuction(state, seller, id)
		reserveItem(state, auction)

		emitAuctionEvent(env, AuctionCreatedEvent, id, seller, auction.EndTime)
		a.logger.Info("auction created", "id", id, "seller", seller, "endTime", auction.EndTime)
		return nil
	})
	if err != nil {
		auction = nil
	}
	return
}
