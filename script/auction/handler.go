// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// Handle decodes an auction payload and runs the matching operation.
func (a *Auction) Handle(senv *setypes.ScriptEnv, payload []byte, to *meter.Address) (seOutput *setypes.ScriptEngineOutput, err error) {
	ab, err := DecodeFromBytes(payload)
	if err != nil {
		log.Error("Decode script message failed", "error", err)
		return nil, err
	}

	defer func() {
		if err != nil {
			senv.SetReturnData([]byte(err.Error()))
		}
		seOutput = senv.GetOutput()
	}()

	log.Debug("received auction", "body", ab.ToString())
	log.Debug("Entering auction handler "+meter.GetOpName(ab.Opcode), "origin", senv.GetTxCtx().Origin)
	switch ab.Opcode {
	case meter.OP_INIT:
		err = a.Initialize(senv, ab.Admin, ab.Asset, ab.Amount)

	case meter.OP_UPDATE_ADMIN:
		err = a.UpdateAdmin(senv, ab.Admin)

	case meter.OP_CREATE:
		var auction *meter.NFTAuction
		auction, err = a.CreateAuction(senv, ab.Item, ab.Seller, ab.Duration, ab.Asset)
		if err == nil {
			senv.SetReturnData(meter.Uint64Bytes(auction.ID))
		}

	case meter.OP_BID:
		err = a.PlaceBid(senv, ab.AuctionID, ab.Bidder, ab.Amount)

	case meter.OP_FINALIZE:
		err = a.FinalizeAuction(senv, ab.AuctionID)

	case meter.OP_BUY_NOW:
		err = a.BuyNow(senv, ab.AuctionID, ab.Bidder)

	case meter.OP_PAUSE:
		err = a.Pause(senv, ab.AuctionID)

	case meter.OP_UNPAUSE:
		err = a.Unpause(senv, ab.AuctionID)

	case meter.OP_CANCEL:
		err = a.CancelAuction(senv, ab.AuctionID)

	default:
		log.Error("unknown Opcode", "Opcode", ab.Opcode)
		err = errUnknownOpcode
	}
	log.Debug("Leaving script handler for operation", "op", meter.GetOpName(ab.Opcode), "err", err)
	return
}
