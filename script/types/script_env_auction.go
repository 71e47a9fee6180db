// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"math/big"

	"github.com/meterio/nft-auction/builtin"
	"github.com/meterio/nft-auction/meter"
)

// ==================== account operation ===========================
// from addr ==> to, in the given asset
func (env *ScriptEnv) TransferAsset(asset, from, to meter.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	value := new(big.Int).SetUint64(amount)
	if err := builtin.Token(asset).Native(env.state).Transfer(from, to, value); err != nil {
		log.Info("asset transfer failed", "asset", asset, "from", from, "to", to, "amount", amount, "err", err)
		return err
	}
	env.AddTransfer(from, to, value, asset)
	return nil
}

// from NFTAuctionModuleAddr ==> addr
func (env *ScriptEnv) TransferFromEscrow(asset, to meter.Address, amount uint64) error {
	return env.TransferAsset(asset, meter.NFTAuctionModuleAddr, to, amount)
}

// EscrowBalance returns the asset amount held by the auction module.
func (env *ScriptEnv) EscrowBalance(asset meter.Address) *big.Int {
	return builtin.Token(asset).Native(env.state).BalanceOf(meter.NFTAuctionModuleAddr)
}

// ItemBalance returns how many units of item id owner holds in the registry.
func (env *ScriptEnv) ItemBalance(registry, owner meter.Address, id uint64) uint64 {
	return builtin.Collection(registry).Native(env.state).BalanceOf(owner, id)
}

// ItemApproved tells whether the auction module may move items of owner.
func (env *ScriptEnv) ItemApproved(registry, owner meter.Address) bool {
	return builtin.Collection(registry).Native(env.state).IsApprovedForAll(owner, meter.NFTAuctionModuleAddr)
}

// TransferItem moves items in the registry with the auction module as authorizer.
func (env *ScriptEnv) TransferItem(registry, from, to meter.Address, id uint64, quantity uint64) error {
	err := builtin.Collection(registry).Native(env.state).SafeTransferFrom(meter.NFTAuctionModuleAddr, from, to, id, quantity)
	if err != nil {
		log.Info("item transfer failed", "registry", registry, "from", from, "to", to, "id", id, "quantity", quantity, "err", err)
	}
	return err
}
