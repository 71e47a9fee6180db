// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"math/big"
	"testing"

	"github.com/meterio/nft-auction/builtin"
	"github.com/meterio/nft-auction/lvldb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script/auction"
	setypes "github.com/meterio/nft-auction/script/types"
	"github.com/meterio/nft-auction/state"
	"github.com/meterio/nft-auction/xenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const week = uint64(7 * 24 * 3600)

var (
	asset    = meter.BytesToAddress([]byte("xlm"))
	registry = meter.BytesToAddress([]byte("collection"))
	admin    = meter.BytesToAddress([]byte("admin"))
	seller   = meter.BytesToAddress([]byte("seller"))
	bidderA  = meter.BytesToAddress([]byte("bidder-a"))
	bidderB  = meter.BytesToAddress([]byte("bidder-b"))
	bidderC  = meter.BytesToAddress([]byte("bidder-c"))
	poor     = meter.BytesToAddress([]byte("poor"))
	stranger = meter.BytesToAddress([]byte("stranger"))
)

type testEnv struct {
	t        *testing.T
	st       *state.State
	blockCtx *xenv.LedgerContext
	txCtx    *xenv.TransactionContext
	env      *setypes.ScriptEnv
	a        *auction.Auction
}

func newTestEnv(t *testing.T) *testEnv {
	kv, err := lvldb.NewMem()
	require.Nil(t, err)
	st := state.New(kv)

	tk := builtin.Token(asset).Native(st)
	for _, acc := range []meter.Address{bidderA, bidderB, bidderC} {
		require.Nil(t, tk.Mint(acc, big.NewInt(1000)))
	}
	require.Nil(t, tk.Mint(poor, big.NewInt(5)))

	c := builtin.Collection(registry).Native(st)
	require.Nil(t, c.Mint(seller, 1, 1))
	require.Nil(t, c.Mint(seller, 2, 5))
	require.Nil(t, c.SetApprovalForAll(seller, meter.NFTAuctionModuleAddr, true))

	blockCtx := &xenv.LedgerContext{Number: 1, Time: 1000}
	txCtx := &xenv.TransactionContext{}
	to := meter.NFTAuctionModuleAddr
	return &testEnv{
		t:        t,
		st:       st,
		blockCtx: blockCtx,
		txCtx:    txCtx,
		env:      setypes.NewScriptEnv(st, blockCtx, txCtx, &to),
		a:        auction.NewAuction(),
	}
}

// as makes addr the transaction origin.
func (te *testEnv) as(addr meter.Address) *setypes.ScriptEnv {
	te.txCtx.Origin = addr
	return te.env
}

func (te *testEnv) balance(addr meter.Address) uint64 {
	return builtin.Token(asset).Native(te.st).BalanceOf(addr).Uint64()
}

func (te *testEnv) escrow() uint64 {
	return te.env.EscrowBalance(asset).Uint64()
}

func (te *testEnv) items(owner meter.Address, id uint64) uint64 {
	return builtin.Collection(registry).Native(te.st).BalanceOf(owner, id)
}

func (te *testEnv) auction(id uint64) *meter.NFTAuction {
	a, err := auction.GetAuction(te.st, id)
	require.Nil(te.t, err)
	return a
}

func defaultItem() meter.ItemInfo {
	return meter.ItemInfo{
		ItemAddress:  registry,
		ItemID:       1,
		Quantity:     1,
		MinimumPrice: meter.Uint64Ptr(10),
		BuyNowPrice:  meter.Uint64Ptr(50),
	}
}

func (te *testEnv) create(item meter.ItemInfo, duration uint64) *meter.NFTAuction {
	a, err := te.a.CreateAuction(te.as(seller), item, seller, duration, asset)
	require.Nil(te.t, err)
	return a
}

func (te *testEnv) bid(id uint64, bidder meter.Address, amount uint64) error {
	return te.a.PlaceBid(te.as(bidder), id, bidder, amount)
}

func TestInitialize(t *testing.T) {
	te := newTestEnv(t)

	assert.Equal(t, auction.Unauthorized, te.a.Initialize(te.as(stranger), admin, asset, 1))
	assert.Equal(t, auction.InvalidInputs, te.a.Initialize(te.as(admin), admin, meter.Address{}, 1))
	assert.False(t, auction.GetConfig(te.st).Initialized)

	assert.Nil(t, te.a.Initialize(te.as(admin), admin, asset, 25))
	config := auction.GetConfig(te.st)
	assert.Equal(t, &meter.AuctionConfig{Initialized: true, Admin: admin, Asset: asset, Fee: 25}, config)

	assert.Equal(t, auction.AlreadyInitialized, te.a.Initialize(te.as(admin), admin, asset, 30))
	assert.Equal(t, auction.AlreadyInitialized, te.a.Initialize(te.as(stranger), stranger, asset, 30))
	assert.Equal(t, uint64(25), auction.GetConfig(te.st).Fee)
}

func TestUpdateAdmin(t *testing.T) {
	te := newTestEnv(t)
	assert.Equal(t, auction.Unauthorized, te.a.UpdateAdmin(te.as(admin), stranger))

	require.Nil(t, te.a.Initialize(te.as(admin), admin, asset, 0))
	assert.Equal(t, auction.Unauthorized, te.a.UpdateAdmin(te.as(stranger), stranger))
	assert.Equal(t, auction.InvalidInputs, te.a.UpdateAdmin(te.as(admin), meter.Address{}))

	assert.Nil(t, te.a.UpdateAdmin(te.as(admin), stranger))
	assert.Equal(t, stranger, auction.GetConfig(te.st).Admin)
	assert.Equal(t, auction.Unauthorized, te.a.UpdateAdmin(te.as(admin), admin))
}

func TestCreateAuction(t *testing.T) {
	te := newTestEnv(t)

	a := te.create(defaultItem(), week)
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, meter.AuctionActive, a.Status)
	assert.Equal(t, uint64(1000)+week, a.EndTime)
	assert.Nil(t, a.HighestBid)
	assert.Equal(t, asset, a.Asset)

	stored := te.auction(1)
	assert.Equal(t, a, stored)

	// ids are never reused
	b := te.create(meter.ItemInfo{ItemAddress: registry, ItemID: 2, Quantity: 5}, 100)
	assert.Equal(t, uint64(2), b.ID)
	assert.Nil(t, b.Item.MinimumPrice)
	assert.Nil(t, b.Item.BuyNowPrice)

	// item custody stays with the seller until settlement
	assert.Equal(t, uint64(1), te.items(seller, 1))
}

func TestCreateAuctionValidation(t *testing.T) {
	te := newTestEnv(t)
	env := te.as(seller)

	_, err := te.a.CreateAuction(te.as(stranger), defaultItem(), seller, week, asset)
	assert.Equal(t, auction.Unauthorized, err)

	_, err = te.a.CreateAuction(env, defaultItem(), seller, 0, asset)
	assert.Equal(t, auction.InvalidInputs, err)

	item := defaultItem()
	item.ItemID = 0
	_, err = te.a.CreateAuction(env, item, seller, week, asset)
	assert.Equal(t, auction.InvalidInputs, err)

	item = defaultItem()
	item.MinimumPrice = meter.Uint64Ptr(0)
	_, err = te.a.CreateAuction(env, item, seller, week, asset)
	assert.Equal(t, auction.InvalidInputs, err)

	item = defaultItem()
	item.BuyNowPrice = meter.Uint64Ptr(0)
	_, err = te.a.CreateAuction(env, item, seller, week, asset)
	assert.Equal(t, auction.InvalidInputs, err)

	item = defaultItem()
	item.Quantity = 0
	_, err = te.a.CreateAuction(env, item, seller, week, asset)
	assert.Equal(t, auction.InvalidInputs, err)

	// no asset given and none configured
	_, err = te.a.CreateAuction(env, defaultItem(), seller, week, meter.Address{})
	assert.Equal(t, auction.InvalidInputs, err)

	item = defaultItem()
	item.Quantity = 2
	_, err = te.a.CreateAuction(env, item, seller, week, asset)
	assert.Equal(t, auction.NotEnoughBalance, err)

	c := builtin.Collection(registry).Native(te.st)
	require.Nil(t, c.SetApprovalForAll(seller, meter.NFTAuctionModuleAddr, false))
	_, err = te.a.CreateAuction(env, defaultItem(), seller, week, asset)
	assert.Equal(t, auction.ItemNotApproved, err)

	// nothing was assigned by failed calls
	assert.Empty(t, auction.GetActiveAuctions(te.st, 0, 0))
	_, err = auction.GetAuction(te.st, 1)
	assert.Equal(t, auction.AuctionNotFound, err)
}

func TestCreateAuctionDefaultAsset(t *testing.T) {
	te := newTestEnv(t)
	require.Nil(t, te.a.Initialize(te.as(admin), admin, asset, 0))

	a, err := te.a.CreateAuction(te.as(seller), defaultItem(), seller, week, meter.Address{})
	assert.Nil(t, err)
	assert.Equal(t, asset, a.Asset)
}

func TestMonotonicBids(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	assert.Equal(t, auction.BidNotEnough, te.bid(a.ID, bidderA, 0))
	assert.Nil(t, te.bid(a.ID, bidderA, 5))
	assert.Nil(t, te.bid(a.ID, bidderA, 10))
	assert.Equal(t, uint64(990), te.balance(bidderA))

	// ties and lower amounts are rejected without balance changes
	assert.Equal(t, auction.BidNotEnough, te.bid(a.ID, bidderB, 10))
	assert.Equal(t, auction.BidNotEnough, te.bid(a.ID, bidderB, 9))
	assert.Equal(t, uint64(1000), te.balance(bidderB))
	assert.Equal(t, uint64(10), te.escrow())

	assert.Nil(t, te.bid(a.ID, bidderB, 20))
	bid, err := auction.GetHighestBid(te.st, a.ID)
	assert.Nil(t, err)
	assert.Equal(t, &meter.HighestBid{Amount: 20, Bidder: bidderB}, bid)
	assert.Equal(t, uint64(20), *te.auction(a.ID).HighestBid)
}

func TestEscrowAndRefund(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	assert.Nil(t, te.bid(a.ID, bidderA, 10))
	assert.Equal(t, uint64(10), te.escrow())
	assert.Equal(t, uint64(990), te.balance(bidderA))

	assert.Nil(t, te.bid(a.ID, bidderB, 20))
	assert.Equal(t, uint64(20), te.escrow())
	// refunded exactly once, exactly the prior bid
	assert.Equal(t, uint64(1000), te.balance(bidderA))
	assert.Equal(t, uint64(980), te.balance(bidderB))

	assert.Nil(t, te.bid(a.ID, bidderC, 40))
	assert.Equal(t, uint64(40), te.escrow())
	assert.Equal(t, uint64(1000), te.balance(bidderA))
	assert.Equal(t, uint64(1000), te.balance(bidderB))
	assert.Equal(t, uint64(960), te.balance(bidderC))
}

func TestBidRejections(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	assert.Equal(t, auction.AuctionNotFound, te.bid(99, bidderA, 10))
	assert.Equal(t, auction.Unauthorized, te.a.PlaceBid(te.as(bidderB), a.ID, bidderA, 10))
	assert.Equal(t, auction.InvalidBidder, te.a.PlaceBid(te.as(seller), a.ID, seller, 10))

	// a failed capture of the new bid keeps the old one in escrow
	assert.Nil(t, te.bid(a.ID, bidderA, 3))
	assert.Equal(t, auction.NotEnoughBalance, te.bid(a.ID, poor, 6))
	assert.Equal(t, uint64(3), te.escrow())
	assert.Equal(t, uint64(997), te.balance(bidderA))
	assert.Equal(t, uint64(5), te.balance(poor))
	bid, _ := auction.GetHighestBid(te.st, a.ID)
	assert.Equal(t, bidderA, bid.Bidder)
	assert.Len(t, te.env.GetTransfers(), 1)
}

func TestBiddingWindow(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	te.blockCtx.Time = a.EndTime
	assert.Nil(t, te.bid(a.ID, bidderA, 10))

	te.blockCtx.Time = a.EndTime + 1
	assert.Equal(t, auction.AuctionNotActive, te.bid(a.ID, bidderB, 20))
}

func TestFinalizeWithWinningBid(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	assert.Nil(t, te.bid(a.ID, bidderA, 10))
	assert.Nil(t, te.bid(a.ID, bidderB, 20))
	assert.Nil(t, te.bid(a.ID, bidderC, 40))

	bid, err := auction.GetHighestBid(te.st, a.ID)
	assert.Nil(t, err)
	assert.Equal(t, &meter.HighestBid{Amount: 40, Bidder: bidderC}, bid)

	assert.Equal(t, auction.AuctionNotFinished, te.a.FinalizeAuction(te.as(seller), a.ID))

	te.blockCtx.Time = a.EndTime + 1
	assert.Equal(t, auction.Unauthorized, te.a.FinalizeAuction(te.as(bidderC), a.ID))
	assert.Nil(t, te.a.FinalizeAuction(te.as(seller), a.ID))

	assert.Equal(t, uint64(40), te.balance(seller))
	assert.Equal(t, uint64(0), te.escrow())
	assert.Equal(t, uint64(1), te.items(bidderC, 1))
	assert.Equal(t, uint64(0), te.items(seller, 1))
	assert.Equal(t, meter.AuctionEnded, te.auction(a.ID).Status)
}

func TestFinalizeWithoutBid(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	te.blockCtx.Time = a.EndTime + 1
	assert.Nil(t, te.a.FinalizeAuction(te.as(seller), a.ID))

	assert.Equal(t, meter.AuctionEnded, te.auction(a.ID).Status)
	assert.Equal(t, uint64(1), te.items(seller, 1))
	assert.Equal(t, uint64(0), te.balance(seller))
	assert.Empty(t, te.env.GetTransfers())
}

func TestFinalizeBelowMinimumRefunds(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	assert.Nil(t, te.bid(a.ID, bidderA, 5))
	assert.Equal(t, uint64(995), te.balance(bidderA))

	te.blockCtx.Time = a.EndTime
	assert.Nil(t, te.a.FinalizeAuction(te.as(seller), a.ID))

	assert.Equal(t, uint64(1000), te.balance(bidderA))
	assert.Equal(t, uint64(0), te.escrow())
	assert.Equal(t, uint64(1), te.items(seller, 1))
	assert.Equal(t, uint64(0), te.balance(seller))
	assert.Equal(t, meter.AuctionEnded, te.auction(a.ID).Status)
}

func TestFinalizeFailureKeepsAuctionActive(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	assert.Nil(t, te.bid(a.ID, bidderA, 20))

	// the seller moves the item away before settlement
	c := builtin.Collection(registry).Native(te.st)
	require.Nil(t, c.SafeTransferFrom(seller, seller, stranger, 1, 1))
	transfers := len(te.env.GetTransfers())

	te.blockCtx.Time = a.EndTime + 1
	assert.Equal(t, auction.PaymentProcessingFailed, te.a.FinalizeAuction(te.as(seller), a.ID))

	assert.Equal(t, meter.AuctionActive, te.auction(a.ID).Status)
	assert.Equal(t, uint64(20), te.escrow())
	assert.Equal(t, uint64(0), te.balance(seller))
	assert.Len(t, te.env.GetTransfers(), transfers)
}

func TestTerminalStateIsFinal(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	assert.Nil(t, te.bid(a.ID, bidderA, 20))
	te.blockCtx.Time = a.EndTime
	require.Nil(t, te.a.FinalizeAuction(te.as(seller), a.ID))

	ended := te.auction(a.ID)
	balances := []uint64{te.balance(seller), te.balance(bidderA), te.balance(bidderB), te.escrow()}

	te.blockCtx.Time = a.CreateTime
	assert.Equal(t, auction.AuctionNotActive, te.a.FinalizeAuction(te.as(seller), a.ID))
	assert.Equal(t, auction.AuctionNotActive, te.bid(a.ID, bidderB, 100))
	assert.Equal(t, auction.AuctionNotActive, te.a.BuyNow(te.as(bidderB), a.ID, bidderB))
	assert.Equal(t, auction.AuctionNotActive, te.a.Pause(te.as(seller), a.ID))
	assert.Equal(t, auction.AuctionNotPaused, te.a.Unpause(te.as(seller), a.ID))
	assert.Equal(t, auction.AuctionNotActive, te.a.CancelAuction(te.as(seller), a.ID))

	assert.Equal(t, ended, te.auction(a.ID))
	assert.Equal(t, balances, []uint64{te.balance(seller), te.balance(bidderA), te.balance(bidderB), te.escrow()})
}

func TestBuyNow(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	assert.Nil(t, te.bid(a.ID, bidderA, 5))

	assert.Equal(t, auction.Unauthorized, te.a.BuyNow(te.as(bidderA), a.ID, bidderB))
	assert.Equal(t, auction.InvalidBidder, te.a.BuyNow(te.as(seller), a.ID, seller))
	assert.Nil(t, te.a.BuyNow(te.as(bidderB), a.ID, bidderB))

	assert.Equal(t, uint64(1000), te.balance(bidderA))
	assert.Equal(t, uint64(950), te.balance(bidderB))
	assert.Equal(t, uint64(50), te.balance(seller))
	assert.Equal(t, uint64(0), te.escrow())
	assert.Equal(t, uint64(1), te.items(bidderB, 1))

	ended := te.auction(a.ID)
	assert.Equal(t, meter.AuctionEnded, ended.Status)
	assert.Equal(t, uint64(50), *ended.HighestBid)
	bid, _ := auction.GetHighestBid(te.st, a.ID)
	assert.Equal(t, &meter.HighestBid{Amount: 50, Bidder: bidderB}, bid)
}

func TestBuyNowBypassesMinimumPrice(t *testing.T) {
	te := newTestEnv(t)
	item := defaultItem()
	item.MinimumPrice = meter.Uint64Ptr(100)
	a := te.create(item, week)

	te.blockCtx.Time = a.EndTime
	assert.Nil(t, te.a.BuyNow(te.as(bidderC), a.ID, bidderC))
	assert.Equal(t, uint64(1), te.items(bidderC, 1))
	assert.Equal(t, meter.AuctionEnded, te.auction(a.ID).Status)
}

func TestBuyNowRejections(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(meter.ItemInfo{ItemAddress: registry, ItemID: 2, Quantity: 5}, week)
	assert.Equal(t, auction.NoBuyNowOption, te.a.BuyNow(te.as(bidderA), a.ID, bidderA))

	b := te.create(defaultItem(), week)
	assert.Equal(t, auction.NotEnoughBalance, te.a.BuyNow(te.as(poor), b.ID, poor))
	assert.Equal(t, meter.AuctionActive, te.auction(b.ID).Status)

	te.blockCtx.Time = b.EndTime + 1
	assert.Equal(t, auction.AuctionNotActive, te.a.BuyNow(te.as(bidderA), b.ID, bidderA))
}

func TestPauseUnpause(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)

	assert.Equal(t, auction.Unauthorized, te.a.Pause(te.as(stranger), a.ID))
	assert.Equal(t, auction.AuctionNotPaused, te.a.Unpause(te.as(seller), a.ID))

	assert.Nil(t, te.a.Pause(te.as(seller), a.ID))
	assert.Equal(t, meter.AuctionPaused, te.auction(a.ID).Status)
	assert.Equal(t, auction.AuctionNotActive, te.a.Pause(te.as(seller), a.ID))
	assert.Equal(t, auction.AuctionNotActive, te.bid(a.ID, bidderA, 10))
	assert.Equal(t, auction.AuctionNotActive, te.a.BuyNow(te.as(bidderA), a.ID, bidderA))
	// paused auctions are not listed as active
	assert.Empty(t, auction.GetActiveAuctions(te.st, 1, 10))
	// and cannot be finalized before their end time
	assert.Equal(t, auction.AuctionNotActive, te.a.FinalizeAuction(te.as(seller), a.ID))

	assert.Nil(t, te.a.Unpause(te.as(seller), a.ID))
	assert.Nil(t, te.bid(a.ID, bidderA, 10))
}

func TestPauseDoesNotStopTheClock(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	assert.Nil(t, te.bid(a.ID, bidderA, 20))
	assert.Nil(t, te.a.Pause(te.as(seller), a.ID))

	te.blockCtx.Time = a.EndTime + 1
	assert.Equal(t, auction.AuctionNotActive, te.a.Unpause(te.as(seller), a.ID))
	assert.Equal(t, a.EndTime, te.auction(a.ID).EndTime)

	// a paused auction still settles once expired
	assert.Nil(t, te.a.FinalizeAuction(te.as(seller), a.ID))
	assert.Equal(t, meter.AuctionEnded, te.auction(a.ID).Status)
	assert.Equal(t, uint64(1), te.items(bidderA, 1))
	assert.Equal(t, uint64(20), te.balance(seller))
}

func TestPauseAfterExpiry(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	te.blockCtx.Time = a.EndTime + 1
	assert.Equal(t, auction.AuctionNotActive, te.a.Pause(te.as(seller), a.ID))
}

func TestCancelAuction(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	b := te.create(meter.ItemInfo{ItemAddress: registry, ItemID: 2, Quantity: 5}, week)

	assert.Equal(t, auction.Unauthorized, te.a.CancelAuction(te.as(stranger), a.ID))
	assert.Nil(t, te.a.CancelAuction(te.as(seller), a.ID))
	assert.Equal(t, meter.AuctionCancelled, te.auction(a.ID).Status)
	assert.Equal(t, auction.AuctionNotActive, te.bid(a.ID, bidderA, 10))

	assert.Nil(t, te.bid(b.ID, bidderA, 10))
	assert.Equal(t, auction.AuctionHasBids, te.a.CancelAuction(te.as(seller), b.ID))
}

func TestListedUnitsAreReserved(t *testing.T) {
	te := newTestEnv(t)
	env := te.as(seller)
	a := te.create(defaultItem(), week)
	assert.Equal(t, uint64(1), auction.ListedQuantity(te.st, seller, registry, 1))

	// the only unit is already on auction
	_, err := te.a.CreateAuction(env, defaultItem(), seller, week, asset)
	assert.Equal(t, auction.NotEnoughBalance, err)

	three := meter.ItemInfo{ItemAddress: registry, ItemID: 2, Quantity: 3}
	b := te.create(three, week)
	_, err = te.a.CreateAuction(env, three, seller, week, asset)
	assert.Equal(t, auction.NotEnoughBalance, err)
	c := te.create(meter.ItemInfo{ItemAddress: registry, ItemID: 2, Quantity: 2}, week)
	assert.Equal(t, uint64(5), auction.ListedQuantity(te.st, seller, registry, 2))

	// cancelling gives the units back
	require.Nil(t, te.a.CancelAuction(env, c.ID))
	assert.Equal(t, uint64(3), auction.ListedQuantity(te.st, seller, registry, 2))

	// settlement releases the units it delivered
	assert.Nil(t, te.bid(a.ID, bidderA, 20))
	assert.Nil(t, te.bid(b.ID, bidderB, 30))
	te.blockCtx.Time = a.EndTime + 1
	assert.Nil(t, te.a.FinalizeAuction(te.as(seller), a.ID))
	assert.Nil(t, te.a.FinalizeAuction(te.as(seller), b.ID))
	assert.Equal(t, uint64(0), auction.ListedQuantity(te.st, seller, registry, 1))
	assert.Equal(t, uint64(0), auction.ListedQuantity(te.st, seller, registry, 2))
	assert.Equal(t, uint64(0), te.escrow())
	assert.Equal(t, uint64(3), te.items(bidderB, 2))
	assert.Equal(t, uint64(2), te.items(seller, 2))
}

func TestBuyNowReleasesListedUnits(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	require.Nil(t, te.a.BuyNow(te.as(bidderA), a.ID, bidderA))
	assert.Equal(t, uint64(0), auction.ListedQuantity(te.st, seller, registry, 1))
}

func TestGetActiveAuctions(t *testing.T) {
	te := newTestEnv(t)
	c := builtin.Collection(registry).Native(te.st)
	require.Nil(t, c.Mint(seller, 3, 20))
	for i := 0; i < 12; i++ {
		te.create(meter.ItemInfo{ItemAddress: registry, ItemID: 3, Quantity: 1}, week)
	}
	require.Nil(t, te.a.Pause(te.as(seller), 2))
	require.Nil(t, te.a.CancelAuction(te.as(seller), 3))

	ids := func(auctions []*meter.NFTAuction) []uint64 {
		res := make([]uint64, 0, len(auctions))
		for _, a := range auctions {
			res = append(res, a.ID)
		}
		return res
	}

	// the range is closed: start..start+limit
	assert.Equal(t, []uint64{1, 4, 5, 6, 7, 8, 9, 10, 11}, ids(auction.GetActiveAuctions(te.st, 0, 0)))
	assert.Equal(t, []uint64{11, 12}, ids(auction.GetActiveAuctions(te.st, 11, 10)))
	assert.Equal(t, []uint64{4, 5}, ids(auction.GetActiveAuctions(te.st, 2, 3)))
	assert.Equal(t, []uint64{12}, ids(auction.GetActiveAuctions(te.st, 12, 0)))
	assert.Empty(t, auction.GetActiveAuctions(te.st, 13, 10))

	// a limit reaching past the end of the id space is capped
	assert.Len(t, auction.GetActiveAuctions(te.st, 1, ^uint64(0)), 10)
}

func TestGetAuctionsBySeller(t *testing.T) {
	te := newTestEnv(t)
	_, err := auction.GetAuctionsBySeller(te.st, seller)
	assert.Equal(t, auction.AuctionNotFound, err)

	a := te.create(defaultItem(), week)
	b := te.create(meter.ItemInfo{ItemAddress: registry, ItemID: 2, Quantity: 5}, week)
	assert.Nil(t, te.bid(a.ID, bidderA, 15))

	auctions, err := auction.GetAuctionsBySeller(te.st, seller)
	assert.Nil(t, err)
	require.Len(t, auctions, 2)
	assert.Equal(t, a.ID, auctions[0].ID)
	assert.Equal(t, b.ID, auctions[1].ID)
	// the seller view reflects every write to the record
	assert.Equal(t, te.auction(a.ID), auctions[0])
	assert.Equal(t, uint64(15), *auctions[0].HighestBid)
}

func TestGetHighestBid(t *testing.T) {
	te := newTestEnv(t)
	_, err := auction.GetHighestBid(te.st, 1)
	assert.Equal(t, auction.AuctionNotFound, err)

	a := te.create(defaultItem(), week)
	_, err = auction.GetHighestBid(te.st, a.ID)
	assert.Equal(t, auction.MissingHighestBid, err)
}

func TestEvents(t *testing.T) {
	te := newTestEnv(t)
	a := te.create(defaultItem(), week)
	assert.Nil(t, te.bid(a.ID, bidderA, 10))
	assert.Nil(t, te.bid(a.ID, bidderB, 20))

	events := te.env.GetEvents()
	require.Len(t, events, 4)
	assert.Equal(t, auction.AuctionCreatedEvent, events[0].Topics[0])
	assert.Equal(t, auction.BidPlacedEvent, events[1].Topics[0])
	assert.Equal(t, auction.BidRefundedEvent, events[2].Topics[0])
	assert.Equal(t, auction.BidPlacedEvent, events[3].Topics[0])
	assert.Equal(t, meter.BytesToBytes32(bidderB.Bytes()), events[3].Topics[2])

	transfers := te.env.GetTransfers()
	require.Len(t, transfers, 3)
	assert.Equal(t, bidderA, transfers[1].Recipient)
	assert.Equal(t, uint64(10), transfers[1].Amount.Uint64())
}

func TestHandle(t *testing.T) {
	te := newTestEnv(t)
	env := te.as(seller)
	body := &auction.AuctionBody{
		Opcode:   meter.OP_CREATE,
		Item:     defaultItem(),
		Seller:   seller,
		Duration: week,
		Asset:    asset,
	}
	out, err := te.a.Handle(env, auction.EncodeToBytes(body), nil)
	assert.Nil(t, err)
	assert.Equal(t, meter.Uint64Bytes(1), out.Data)

	body = &auction.AuctionBody{Opcode: meter.OP_BID, AuctionID: 1, Bidder: bidderA, Amount: 10}
	out, err = te.a.Handle(te.as(bidderB), auction.EncodeToBytes(body), nil)
	assert.Equal(t, auction.Unauthorized, err)
	assert.Equal(t, auction.Unauthorized.Error(), string(out.Data))

	_, err = te.a.Handle(env, []byte{0x01, 0x02}, nil)
	assert.NotNil(t, err)
}
