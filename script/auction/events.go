// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// event signatures, used as the first topic
var (
	InitializedEvent      = meter.Blake2b([]byte("Initialized(address,address,uint64)"))
	AdminUpdatedEvent     = meter.Blake2b([]byte("AdminUpdated(address,address)"))
	AuctionCreatedEvent   = meter.Blake2b([]byte("AuctionCreated(uint64,address)"))
	BidPlacedEvent        = meter.Blake2b([]byte("BidPlaced(uint64,address,uint64)"))
	BidRefundedEvent      = meter.Blake2b([]byte("BidRefunded(uint64,address,uint64)"))
	AuctionSettledEvent   = meter.Blake2b([]byte("AuctionSettled(uint64,address,uint64)"))
	AuctionEndedEvent     = meter.Blake2b([]byte("AuctionEnded(uint64,address)"))
	AuctionBoughtEvent    = meter.Blake2b([]byte("AuctionBought(uint64,address,uint64)"))
	AuctionPausedEvent    = meter.Blake2b([]byte("AuctionPaused(uint64,address)"))
	AuctionUnpausedEvent  = meter.Blake2b([]byte("AuctionUnpaused(uint64,address)"))
	AuctionCancelledEvent = meter.Blake2b([]byte("AuctionCancelled(uint64,address)"))
	ItemTransferredEvent  = meter.Blake2b([]byte("ItemTransferred(uint64,address,address,uint64,uint64)"))
)

func idTopic(id uint64) meter.Bytes32 {
	return meter.BytesToBytes32(meter.Uint64Bytes(id))
}

func addrTopic(addr meter.Address) meter.Bytes32 {
	return meter.BytesToBytes32(addr.Bytes())
}

// emitAuctionEvent records an event with topics (signature, auction id, party) and rlp data.
func emitAuctionEvent(env *setypes.ScriptEnv, sig meter.Bytes32, id uint64, party meter.Address, data ...interface{}) {
	var payload []byte
	if len(data) > 0 {
		var err error
		if payload, err = rlp.EncodeToBytes(data); err != nil {
			log.Warn("encode event data failed", "err", err)
		}
	}
	env.AddEvent(meter.NFTAuctionModuleAddr, []meter.Bytes32{sig, idTopic(id), addrTopic(party)}, payload)
}
