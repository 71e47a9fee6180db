// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/inconshreveable/log15"
	"github.com/meterio/nft-auction/builtin/token"
	"github.com/meterio/nft-auction/meter"
	setypes "github.com/meterio/nft-auction/script/types"
)

var (
	log = log15.New("pkg", "auction")

	errUnknownOpcode = errors.New("unknown auction opcode")
)

// Auction is the NFT auction script module.
type Auction struct {
	logger log15.Logger
}

func NewAuction() *Auction {
	return &Auction{
		logger: log15.New("pkg", "auction"),
	}
}

func (a *Auction) Start() error {
	log.Info("auction module started")
	return nil
}

// atomic runs fn as one all-or-nothing unit: any error reverts the state
// changes and logs fn made.
func (a *Auction) atomic(env *setypes.ScriptEnv, op uint32, fn func() error) (err error) {
	start := time.Now()
	checkpoint := env.NewCheckpoint()
	defer func() {
		if err != nil {
			env.RevertTo(checkpoint)
		}
		observeOp(op, err)
		a.logger.Debug(meter.GetOpName(op)+" completed", "elapsed", common.PrettyDuration(time.Since(start)), "err", err)
	}()
	return fn()
}

// authorize checks the acting party signed the transaction.
func authorize(env *setypes.ScriptEnv, party meter.Address) error {
	if env.GetTxCtx().Origin != party {
		return Unauthorized
	}
	return nil
}

// payFunds moves funds paid by an account.
func payFunds(env *setypes.ScriptEnv, asset, from, to meter.Address, amount uint64) error {
	if err := env.TransferAsset(asset, from, to, amount); err != nil {
		if err == token.ErrInsufficientBalance {
			return NotEnoughBalance
		}
		return PaymentProcessingFailed
	}
	return nil
}

// pullFunds moves funds from an account into escrow.
func pullFunds(env *setypes.ScriptEnv, asset, from meter.Address, amount uint64) error {
	return payFunds(env, asset, from, meter.NFTAuctionModuleAddr, amount)
}

// releaseFunds moves escrowed funds to an account.
func releaseFunds(env *setypes.ScriptEnv, asset, to meter.Address, amount uint64) error {
	if err := env.TransferFromEscrow(asset, to, amount); err != nil {
		return PaymentProcessingFailed
	}
	return nil
}

func (a *Auction) loadOwnAuction(env *setypes.ScriptEnv, id uint64) (*meter.NFTAuction, error) {
	auction, err := loadAuction(env.GetState(), id)
	if err != nil {
		return nil, err
	}
	if err := authorize(env, auction.Seller); err != nil {
		return nil, err
	}
	return auction, nil
}
