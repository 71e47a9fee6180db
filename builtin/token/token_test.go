// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/meterio/nft-auction/lvldb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
	"github.com/stretchr/testify/assert"
)

func TestToken(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	tk := New(meter.BytesToAddress([]byte("xlm")), st)

	alice := meter.BytesToAddress([]byte("alice"))
	bob := meter.BytesToAddress([]byte("bob"))

	assert.Equal(t, &big.Int{}, tk.BalanceOf(alice))
	assert.Nil(t, tk.Mint(alice, big.NewInt(100)))
	assert.Equal(t, big.NewInt(100), tk.TotalSupply())

	assert.Nil(t, tk.Transfer(alice, bob, big.NewInt(40)))
	assert.Equal(t, big.NewInt(60), tk.BalanceOf(alice))
	assert.Equal(t, big.NewInt(40), tk.BalanceOf(bob))

	assert.Equal(t, ErrInsufficientBalance, tk.Transfer(bob, alice, big.NewInt(41)))
	assert.Equal(t, big.NewInt(40), tk.BalanceOf(bob))

	assert.Equal(t, ErrNegativeAmount, tk.Transfer(alice, bob, big.NewInt(-1)))
	assert.Nil(t, tk.Transfer(alice, bob, &big.Int{}))
	assert.Nil(t, tk.Transfer(alice, alice, big.NewInt(60)))
	assert.Equal(t, big.NewInt(60), tk.BalanceOf(alice))
	assert.Equal(t, big.NewInt(100), tk.TotalSupply())

	assert.Nil(t, st.Err())
}
