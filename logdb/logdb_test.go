// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/meterio/nft-auction/logdb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/tx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents(t *testing.T) {
	db, err := logdb.NewMem()
	require.Nil(t, err)
	defer db.Close()

	t0 := meter.BytesToBytes32([]byte("topic0"))
	t1 := meter.BytesToBytes32([]byte("topic1"))
	addr := meter.BytesToAddress([]byte("addr"))
	txEvent := &tx.Event{
		Address: addr,
		Topics:  []meter.Bytes32{t0, t1},
		Data:    []byte("data"),
	}

	for i := 1; i <= 100; i++ {
		ref := logdb.LedgerRef{Number: uint32(i), Time: uint64(i) * 5}
		err := db.Prepare(ref).ForTransaction(meter.BytesToBytes32([]byte("txID")), meter.BytesToAddress([]byte("txOrigin"))).
			Insert(tx.Events{txEvent}, nil).Commit()
		require.Nil(t, err)
	}

	limit := 5
	es, err := db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range: &logdb.Range{
			Unit: logdb.Ledger,
			From: 0,
			To:   10,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(limit),
		},
		Order: logdb.DESC,
		CriteriaSet: []*logdb.EventCriteria{
			{Address: &addr},
			{Address: &addr, Topics: [5]*meter.Bytes32{&t0, &t1}},
		},
	})
	require.Nil(t, err)
	require.Len(t, es, limit)
	assert.Equal(t, uint32(10), es[0].LedgerNumber)
	assert.Equal(t, uint64(50), es[0].LedgerTime)
	assert.Equal(t, t1, *es[0].Topics[1])
	assert.Nil(t, es[0].Topics[2])
	assert.Equal(t, []byte("data"), es[0].Data)

	other := meter.BytesToBytes32([]byte("other"))
	es, err = db.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Topics: [5]*meter.Bytes32{&other}}},
	})
	assert.Nil(t, err)
	assert.Empty(t, es)

	es, err = db.FilterEvents(context.Background(), &logdb.EventFilter{
		Range: &logdb.Range{Unit: logdb.Time, From: 100, To: 110},
	})
	assert.Nil(t, err)
	assert.Len(t, es, 3)

	all, err := db.FilterEvents(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, all, 100)
}

func TestTransfers(t *testing.T) {
	db, err := logdb.NewMem()
	require.Nil(t, err)
	defer db.Close()

	from := meter.BytesToAddress([]byte("from"))
	to := meter.BytesToAddress([]byte("to"))
	asset := meter.BytesToAddress([]byte("asset"))
	count := 100
	for i := 1; i <= count; i++ {
		transLog := &tx.Transfer{
			Sender:    from,
			Recipient: to,
			Amount:    big.NewInt(int64(i)),
			Asset:     asset,
		}
		txID := meter.BytesToBytes32([]byte{byte(i)})
		err := db.Prepare(logdb.LedgerRef{Number: uint32(i), Time: uint64(i)}).ForTransaction(txID, from).
			Insert(nil, tx.Transfers{transLog}).Commit()
		require.Nil(t, err)
	}

	tf := &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{
			{TxOrigin: &from, Recipient: &to, Asset: &asset},
		},
		Range: &logdb.Range{
			Unit: logdb.Ledger,
			From: 0,
			To:   1000,
		},
		Options: &logdb.Options{
			Offset: 0,
			Limit:  uint64(count),
		},
		Order: logdb.DESC,
	}
	ts, err := db.FilterTransfers(context.Background(), tf)
	require.Nil(t, err)
	require.Len(t, ts, count)
	assert.Equal(t, big.NewInt(100).Bytes(), ts[0].Amount.Bytes())
	assert.Equal(t, asset, ts[0].Asset)

	txID := meter.BytesToBytes32([]byte{7})
	ts, err = db.FilterTransfers(context.Background(), &logdb.TransferFilter{TxID: &txID})
	require.Nil(t, err)
	require.Len(t, ts, 1)
	assert.Equal(t, uint32(7), ts[0].LedgerNumber)

	ts, err = db.FilterTransfers(context.Background(), &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &to}},
	})
	assert.Nil(t, err)
	assert.Empty(t, ts)
}

func TestPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := logdb.New(path)
	require.Nil(t, err)
	ev := &tx.Event{Address: meter.BytesToAddress([]byte("addr"))}
	require.Nil(t, db.Prepare(logdb.LedgerRef{Number: 1}).ForTransaction(meter.Bytes32{}, meter.Address{}).Insert(tx.Events{ev}, nil).Commit())
	db.Close()

	db, err = logdb.New(path)
	require.Nil(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())
	es, err := db.FilterEvents(context.Background(), nil)
	assert.Nil(t, err)
	assert.Len(t, es, 1)
}

func BenchmarkLog(b *testing.B) {
	db, err := logdb.New(filepath.Join(b.TempDir(), "log.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	l := &tx.Event{
		Address: meter.BytesToAddress([]byte("addr")),
		Topics:  []meter.Bytes32{meter.BytesToBytes32([]byte("topic0")), meter.BytesToBytes32([]byte("topic1"))},
		Data:    []byte("data"),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batch := db.Prepare(logdb.LedgerRef{Number: uint32(i)})
		txBatch := batch.ForTransaction(meter.BytesToBytes32([]byte("txID")), meter.BytesToAddress([]byte("txOrigin")))
		for j := 0; j < 100; j++ {
			txBatch.Insert(tx.Events{l}, nil)
		}
		if err := batch.Commit(); err != nil {
			b.Fatal(err)
		}
	}
}
