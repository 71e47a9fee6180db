// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/fortytw2/leaktest"
	"github.com/meterio/nft-auction/api"
	apiauction "github.com/meterio/nft-auction/api/auction"
	apievents "github.com/meterio/nft-auction/api/events"
	"github.com/meterio/nft-auction/api/node"
	"github.com/meterio/nft-auction/api/transactions"
	"github.com/meterio/nft-auction/api/transfers"
	"github.com/meterio/nft-auction/api/utils"
	"github.com/meterio/nft-auction/genesis"
	"github.com/meterio/nft-auction/logdb"
	"github.com/meterio/nft-auction/lvldb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/runtime"
	"github.com/meterio/nft-auction/script"
	"github.com/meterio/nft-auction/script/auction"
	"github.com/meterio/nft-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t     *testing.T
	ts    *httptest.Server
	kv    *lvldb.LevelDB
	logDB *logdb.LogDB
	tag   byte
	nonce uint64
	now   uint64
}

func newTestServer(t *testing.T) *testServer {
	kv, err := lvldb.NewMem()
	require.Nil(t, err)
	gene := genesis.NewDevnet()
	_, err = gene.Build(kv)
	require.Nil(t, err)
	logDB, err := logdb.NewMem()
	require.Nil(t, err)

	s := &testServer{t: t, tag: gene.ChainTag(), now: gene.LaunchTime() + 10}
	ledger := runtime.NewLedger(kv, logDB, script.NewScriptEngine(), s.tag, func() uint64 { return s.now })
	s.ts = httptest.NewServer(api.New(ledger, logDB, gene.ID(), "*"))
	s.kv = kv
	s.logDB = logDB
	return s
}

func (s *testServer) close() {
	s.ts.Close()
	http.DefaultClient.CloseIdleConnections()
	s.logDB.Close()
	s.kv.Close()
}

func (s *testServer) do(method, path string, body interface{}) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.Nil(s.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, reader)
	require.Nil(s.t, err)
	res, err := http.DefaultClient.Do(req)
	require.Nil(s.t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.Nil(s.t, err)
	return res.StatusCode, data
}

func (s *testServer) get(path string, v interface{}) int {
	status, data := s.do("GET", path, nil)
	if status == http.StatusOK && v != nil {
		require.Nil(s.t, json.Unmarshal(data, v))
	}
	return status
}

func (s *testServer) rawTx(key *ecdsa.PrivateKey, body *auction.AuctionBody) (*tx.Transaction, *transactions.RawTx) {
	data, err := script.EncodeScriptData(body)
	require.Nil(s.t, err)
	trx := new(tx.Builder).ChainTag(s.tag).Expiration(720).Nonce(s.nonce).
		Clause(tx.NewClause(&meter.NFTAuctionModuleAddr).WithData(data)).Build()
	s.nonce++
	sig, err := crypto.Sign(trx.SigningHash().Bytes(), key)
	require.Nil(s.t, err)
	trx = trx.WithSignature(sig)
	raw, err := rlp.EncodeToBytes(trx)
	require.Nil(s.t, err)
	return trx, &transactions.RawTx{Raw: hexutil.Encode(raw)}
}

func (s *testServer) send(key *ecdsa.PrivateKey, body *auction.AuctionBody) *transactions.Receipt {
	_, raw := s.rawTx(key, body)
	status, data := s.do("POST", "/transactions", raw)
	require.Equal(s.t, http.StatusOK, status, string(data))
	var receipt transactions.Receipt
	require.Nil(s.t, json.Unmarshal(data, &receipt))
	return &receipt
}

func TestAuctionFlow(t *testing.T) {
	defer leaktest.CheckTimeout(t, 5*time.Second)()
	s := newTestServer(t)
	defer s.close()
	accs := genesis.DevAccounts()
	seller, bidder := accs[1], accs[2]

	receipt := s.send(seller.PrivateKey, &auction.AuctionBody{
		Opcode: meter.OP_CREATE,
		Item: meter.ItemInfo{
			ItemAddress:  genesis.DevCollection,
			ItemID:       2,
			Quantity:     2,
			MinimumPrice: meter.Uint64Ptr(10),
		},
		Seller:   seller.Address,
		Duration: 3600,
	})
	assert.False(t, receipt.Reverted)
	assert.Equal(t, uint32(1), receipt.Ledger)

	var meta transactions.TxMeta
	assert.Equal(t, http.StatusOK, s.get("/transactions/"+receipt.TxID.String(), &meta))
	assert.Equal(t, uint32(1), meta.Ledger)
	assert.Equal(t, http.StatusNotFound, s.get("/transactions/"+meter.Bytes32{}.String(), nil))

	var a apiauction.Auction
	assert.Equal(t, http.StatusOK, s.get("/auctions/1", &a))
	assert.Equal(t, "Active", a.Status)
	assert.Equal(t, seller.Address, a.Seller)
	assert.Equal(t, uint64(2), a.Item.Quantity)
	assert.Nil(t, a.Item.BuyNowPrice)
	assert.Equal(t, http.StatusNotFound, s.get("/auctions/2", nil))
	assert.Equal(t, http.StatusBadRequest, s.get("/auctions/x", nil))
	assert.Equal(t, http.StatusNotFound, s.get("/auctions/1/highest-bid", nil))

	receipt = s.send(bidder.PrivateKey, &auction.AuctionBody{Opcode: meter.OP_BID, AuctionID: 1, Bidder: bidder.Address, Amount: 15})
	assert.False(t, receipt.Reverted)

	var bid apiauction.HighestBid
	assert.Equal(t, http.StatusOK, s.get("/auctions/1/highest-bid", &bid))
	assert.Equal(t, apiauction.HighestBid{Amount: 15, Bidder: bidder.Address}, bid)

	receipt = s.send(bidder.PrivateKey, &auction.AuctionBody{Opcode: meter.OP_BID, AuctionID: 1, Bidder: bidder.Address, Amount: 15})
	assert.True(t, receipt.Reverted)
	assert.Equal(t, auction.BidNotEnough.Error(), receipt.VMError)

	var active []*apiauction.Auction
	assert.Equal(t, http.StatusOK, s.get("/auctions?start=1&limit=5", &active))
	require.Len(t, active, 1)
	assert.Equal(t, uint64(1), active[0].ID)
	assert.Equal(t, http.StatusBadRequest, s.get("/auctions?limit=-1", nil))

	var bySeller []*apiauction.Auction
	assert.Equal(t, http.StatusOK, s.get("/auctions/seller/"+seller.Address.String(), &bySeller))
	assert.Len(t, bySeller, 1)
	assert.Equal(t, http.StatusNotFound, s.get("/auctions/seller/"+bidder.Address.String(), nil))

	var config apiauction.Config
	assert.Equal(t, http.StatusOK, s.get("/auctions/config", &config))
	assert.True(t, config.Initialized)
	assert.Equal(t, accs[0].Address, config.Admin)
	assert.Equal(t, genesis.DevAsset, config.Asset)

	var logs []*transfers.FilteredTransfer
	status, data := s.do("POST", "/logs/transfer", &transfers.TransferFilter{TxID: &receipt.TxID})
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, json.Unmarshal(data, &logs))
	assert.Empty(t, logs)

	status, data = s.do("POST", "/logs/transfer", &transfers.TransferFilter{})
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, json.Unmarshal(data, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, bidder.Address, logs[0].Sender)
	assert.Equal(t, meter.NFTAuctionModuleAddr, logs[0].Recipient)
	assert.Equal(t, genesis.DevAsset, logs[0].Asset)

	var events []*apievents.FilteredEvent
	status, data = s.do("POST", "/logs/event", &apievents.EventFilter{Order: logdb.ASC})
	assert.Equal(t, http.StatusOK, status)
	require.Nil(t, json.Unmarshal(data, &events))
	require.Len(t, events, 2)
	assert.Equal(t, auction.AuctionCreatedEvent, *events[0].Topics[0])
	assert.Equal(t, auction.BidPlacedEvent, *events[1].Topics[0])
	assert.Equal(t, uint32(2), events[1].Meta.LedgerNumber)

	var st node.Status
	assert.Equal(t, http.StatusOK, s.get("/node/status", &st))
	assert.Equal(t, uint32(3), st.BestLedger)
	assert.Equal(t, s.tag, st.ChainTag)
}

func TestSendTransactionErrors(t *testing.T) {
	s := newTestServer(t)
	defer s.close()
	seller := genesis.DevAccounts()[1]

	status, _ := s.do("POST", "/transactions", &transactions.RawTx{Raw: "zz"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do("POST", "/transactions", map[string]string{"unknown": "0x"})
	assert.Equal(t, http.StatusBadRequest, status)

	_, raw := s.rawTx(seller.PrivateKey, &auction.AuctionBody{Opcode: meter.OP_PAUSE, AuctionID: 1})
	status, _ = s.do("POST", "/transactions", raw)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do("POST", "/transactions", raw)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)
	defer s.close()

	res, err := http.Get(s.ts.URL + "/node/status")
	require.Nil(t, err)
	res.Body.Close()
	assert.NotEmpty(t, res.Header.Get(utils.RequestIDHeader))

	req, _ := http.NewRequest("GET", s.ts.URL+"/node/status", nil)
	req.Header.Set(utils.RequestIDHeader, "abc")
	res, err = http.DefaultClient.Do(req)
	require.Nil(t, err)
	res.Body.Close()
	assert.Equal(t, "abc", res.Header.Get(utils.RequestIDHeader))
}
