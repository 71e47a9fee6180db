// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"github.com/meterio/nft-auction/script/auction"
	"github.com/meterio/nft-auction/script/collection"
)

const (
	NFT_AUCTION_MODULE_NAME = string("nft-auction")
	NFT_AUCTION_MODULE_ID   = uint32(1001)

	COLLECTION_MODULE_NAME = string("collection")
	COLLECTION_MODULE_ID   = uint32(1002)
)

func ModuleAuctionInit(se *ScriptEngine) *auction.Auction {
	a := auction.NewAuction()
	if a == nil {
		panic("init auction module failed")
	}

	mod := &Module{
		Name:    NFT_AUCTION_MODULE_NAME,
		ID:      NFT_AUCTION_MODULE_ID,
		Handler: a.Handle,
	}
	if err := se.modReg.Register(mod); err != nil {
		panic(err)
	}

	a.Start()
	se.logger.Info("module started", "module", mod)
	return a
}

func ModuleCollectionInit(se *ScriptEngine) *collection.Collection {
	c := collection.NewCollection()
	mod := &Module{
		Name:    COLLECTION_MODULE_NAME,
		ID:      COLLECTION_MODULE_ID,
		Handler: c.Handle,
	}
	if err := se.modReg.Register(mod); err != nil {
		panic(err)
	}
	se.logger.Info("module started", "module", mod)
	return c
}
