// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/meterio/nft-auction/lvldb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/state"
	"github.com/stretchr/testify/assert"
)

func TestParamsGetSet(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	setv := big.NewInt(10)
	key := meter.BytesToBytes32([]byte("key"))
	p := New(meter.BytesToAddress([]byte("par")), st)
	p.Set(key, setv)

	getv := p.Get(key)
	assert.Equal(t, setv, getv)

	assert.Nil(t, st.Err())
}

func TestParamsTyped(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	p := New(meter.ParamsAddr, st)

	admin := meter.BytesToAddress([]byte("admin"))
	assert.True(t, p.GetAddress(meter.KeyAdminAddress).IsZero())
	p.SetAddress(meter.KeyAdminAddress, admin)
	assert.Equal(t, admin, p.GetAddress(meter.KeyAdminAddress))

	assert.False(t, p.GetBool(meter.KeyInitialized))
	p.SetBool(meter.KeyInitialized, true)
	assert.True(t, p.GetBool(meter.KeyInitialized))

	p.SetUint64(meter.KeyAuctionFee, 25)
	assert.Equal(t, uint64(25), p.GetUint64(meter.KeyAuctionFee))
	p.SetUint64(meter.KeyAuctionFee, 0)
	assert.Equal(t, uint64(0), p.GetUint64(meter.KeyAuctionFee))
	assert.False(t, st.HasStorage(meter.ParamsAddr, meter.KeyAuctionFee))

	assert.Nil(t, st.Err())
}
