// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNegativeAmount      = errors.New("negative amount")

	totalSupplyKey = meter.Blake2b([]byte("total-supply"))
)

// Token is a fungible asset ledger, one per asset address.
type Token struct {
	addr  meter.Address
	state *state.State
}

// New creates a new token instance.
func New(addr meter.Address, state *state.State) *Token {
	return &Token{addr, state}
}

// Address returns the asset address.
func (t *Token) Address() meter.Address {
	return t.addr
}

func balanceKey(owner meter.Address) meter.Bytes32 {
	return meter.Blake2b([]byte("balance"), owner.Bytes())
}

func (t *Token) getBig(key meter.Bytes32) (value *big.Int) {
	t.state.DecodeStorage(t.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			value = &big.Int{}
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	if value == nil {
		value = &big.Int{}
	}
	return
}

func (t *Token) setBig(key meter.Bytes32, value *big.Int) {
	t.state.EncodeStorage(t.addr, key, func() ([]byte, error) {
		if value.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}

// BalanceOf returns the balance of owner.
func (t *Token) BalanceOf(owner meter.Address) *big.Int {
	return t.getBig(balanceKey(owner))
}

// TotalSupply returns the sum of all minted amounts.
func (t *Token) TotalSupply() *big.Int {
	return t.getBig(totalSupplyKey)
}

// Mint credits amount to the given account.
func (t *Token) Mint(to meter.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	t.setBig(balanceKey(to), new(big.Int).Add(t.BalanceOf(to), amount))
	t.setBig(totalSupplyKey, new(big.Int).Add(t.TotalSupply(), amount))
	return nil
}

// Transfer moves amount from one account to another.
// Nothing is changed when it fails.
func (t *Token) Transfer(from, to meter.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if amount.Sign() == 0 || from == to {
		if t.BalanceOf(from).Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}
		return nil
	}
	fromBalance := t.BalanceOf(from)
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	t.setBig(balanceKey(from), new(big.Int).Sub(fromBalance, amount))
	t.setBig(balanceKey(to), new(big.Int).Add(t.BalanceOf(to), amount))
	return nil
}
