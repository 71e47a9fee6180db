// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collection

import (
	"errors"
	"math"

	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
)

var (
	ErrInsufficientBalance = errors.New("insufficient item balance")
	ErrNotAuthorized       = errors.New("caller is not owner nor approved")
	ErrSelfApproval        = errors.New("setting approval status for self")
	ErrLengthMismatch      = errors.New("accounts and ids length mismatch")
	ErrZeroAddress         = errors.New("transfer to the zero address")
	ErrOverflow            = errors.New("balance overflow")

	uriKey = meter.Blake2b([]byte("uri"))
)

// Collection is a multi-token ownership registry at one address.
type Collection struct {
	addr  meter.Address
	state *state.State
}

// New creates a new collection instance.
func New(addr meter.Address, state *state.State) *Collection {
	return &Collection{addr, state}
}

// Address returns the registry address.
func (c *Collection) Address() meter.Address {
	return c.addr
}

func balanceKey(owner meter.Address, id uint64) meter.Bytes32 {
	return meter.Blake2b([]byte("balance"), meter.Uint64Bytes(id), owner.Bytes())
}

func approvalKey(owner, operator meter.Address) meter.Bytes32 {
	return meter.Blake2b([]byte("approval"), owner.Bytes(), operator.Bytes())
}

func (c *Collection) setBalance(owner meter.Address, id uint64, amount uint64) {
	if amount == 0 {
		c.state.SetStorage(c.addr, balanceKey(owner, id), nil)
		return
	}
	c.state.SetStorage(c.addr, balanceKey(owner, id), meter.Uint64Bytes(amount))
}

// BalanceOf returns the amount of item id held by owner.
func (c *Collection) BalanceOf(owner meter.Address, id uint64) uint64 {
	raw := c.state.GetStorage(c.addr, balanceKey(owner, id))
	if len(raw) == 0 {
		return 0
	}
	return meter.BytesToUint64(raw)
}

// BalanceOfBatch returns balances for each (owner, id) pair.
func (c *Collection) BalanceOfBatch(owners []meter.Address, ids []uint64) ([]uint64, error) {
	if len(owners) != len(ids) {
		return nil, ErrLengthMismatch
	}
	balances := make([]uint64, len(owners))
	for i, owner := range owners {
		balances[i] = c.BalanceOf(owner, ids[i])
	}
	return balances, nil
}

// SetApprovalForAll grants or revokes operator permission to move all items of owner.
func (c *Collection) SetApprovalForAll(owner, operator meter.Address, approved bool) error {
	if owner == operator {
		return ErrSelfApproval
	}
	if approved {
		c.state.SetStorage(c.addr, approvalKey(owner, operator), []byte{1})
	} else {
		c.state.SetStorage(c.addr, approvalKey(owner, operator), nil)
	}
	return nil
}

// IsApprovedForAll returns whether operator may move items of owner.
func (c *Collection) IsApprovedForAll(owner, operator meter.Address) bool {
	return c.state.HasStorage(c.addr, approvalKey(owner, operator))
}

func (c *Collection) authorized(authorizer, from meter.Address) bool {
	return authorizer == from || c.IsApprovedForAll(from, authorizer)
}

// SafeTransferFrom moves amount of item id from one account to another.
// authorizer must be from or an operator approved by from.
func (c *Collection) SafeTransferFrom(authorizer, from, to meter.Address, id uint64, amount uint64) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	if !c.authorized(authorizer, from) {
		return ErrNotAuthorized
	}
	return c.move(from, to, id, amount)
}

// SafeBatchTransferFrom moves several items at once. Nothing is changed when it fails.
func (c *Collection) SafeBatchTransferFrom(authorizer, from, to meter.Address, ids []uint64, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return ErrLengthMismatch
	}
	if to.IsZero() {
		return ErrZeroAddress
	}
	if !c.authorized(authorizer, from) {
		return ErrNotAuthorized
	}
	checkpoint := c.state.NewCheckpoint()
	for i, id := range ids {
		if err := c.move(from, to, id, amounts[i]); err != nil {
			c.state.RevertTo(checkpoint)
			return err
		}
	}
	return nil
}

func (c *Collection) move(from, to meter.Address, id uint64, amount uint64) error {
	fromBalance := c.BalanceOf(from, id)
	if fromBalance < amount {
		return ErrInsufficientBalance
	}
	if from == to || amount == 0 {
		return nil
	}
	toBalance := c.BalanceOf(to, id)
	if toBalance > math.MaxUint64-amount {
		return ErrOverflow
	}
	c.setBalance(from, id, fromBalance-amount)
	c.setBalance(to, id, toBalance+amount)
	return nil
}

// Mint creates amount of item id for the given account.
func (c *Collection) Mint(to meter.Address, id uint64, amount uint64) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	balance := c.BalanceOf(to, id)
	if balance > math.MaxUint64-amount {
		return ErrOverflow
	}
	c.setBalance(to, id, balance+amount)
	return nil
}

// MintBatch creates several items at once. Nothing is changed when it fails.
func (c *Collection) MintBatch(to meter.Address, ids []uint64, amounts []uint64) error {
	if len(ids) != len(amounts) {
		return ErrLengthMismatch
	}
	checkpoint := c.state.NewCheckpoint()
	for i, id := range ids {
		if err := c.Mint(to, id, amounts[i]); err != nil {
			c.state.RevertTo(checkpoint)
			return err
		}
	}
	return nil
}

// Burn destroys amount of item id held by from.
func (c *Collection) Burn(from meter.Address, id uint64, amount uint64) error {
	balance := c.BalanceOf(from, id)
	if balance < amount {
		return ErrInsufficientBalance
	}
	c.setBalance(from, id, balance-amount)
	return nil
}

// SetURI sets the metadata uri template.
func (c *Collection) SetURI(uri string) {
	c.state.SetStorage(c.addr, uriKey, []byte(uri))
}

// URI returns the metadata uri template.
func (c *Collection) URI() string {
	return string(c.state.GetStorage(c.addr, uriKey))
}
