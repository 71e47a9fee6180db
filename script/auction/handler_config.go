// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

// Initialize sets admin, settlement asset and fee. It can only run once.
func (a *Auction) Initialize(env *setypes.ScriptEnv, admin, asset meter.Address, fee uint64) error {
	return a.atomic(env, meter.OP_INIT, func() error {
		state := env.GetState()
		config := GetConfig(state)
		if config.Initialized {
			return AlreadyInitialized
		}
		if err := authorize(env, admin); err != nil {
			return err
		}
		if admin.IsZero() || asset.IsZero() {
			return InvalidInputs
		}

		setConfig(state, &meter.AuctionConfig{
			Initialized: true,
			Admin:       admin,
			Asset:       asset,
			Fee:         fee,
		})
		emitAuctionEvent(env, InitializedEvent, 0, admin, asset, fee)
		a.logger.Info("auction engine initialized", "admin", admin, "asset", asset, "fee", fee)
		return nil
	})
}

// UpdateAdmin rotates the admin. Only the current admin may call it.
func (a *Auction) UpdateAdmin(env *setypes.ScriptEnv, newAdmin meter.Address) error {
	return a.atomic(env, meter.OP_UPDATE_ADMIN, func() error {
		state := env.GetState()
		config := GetConfig(state)
		if !config.Initialized {
			return Unauthorized
		}
		if err := authorize(env, config.Admin); err != nil {
			return err
		}
		if newAdmin.IsZero() {
			return InvalidInputs
		}

		prev := config.Admin
		config.Admin = newAdmin
		setConfig(state, config)
		emitAuctionEvent(env, AdminUpdatedEvent, 0, newAdmin, prev)
		a.logger.Info("auction admin updated", "from", prev, "to", newAdmin)
		return nil
	})
}
