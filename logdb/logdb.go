// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"github.com/inconshreveable/log15"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/tx"
	"github.com/pkg/errors"
)

var log = log15.New("pkg", "logdb")

type LogDB struct {
	path          string
	db            *sql.DB
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			if err := db.Close(); err != nil {
				log.Warn("could not close logdb", "err", err)
			}
		}
	}()
	// an in-memory database lives as long as its only connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create logdb schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() {
	if err := db.db.Close(); err != nil {
		log.Warn("could not close logdb", "err", err)
	}
}

func (db *LogDB) Path() string {
	return db.path
}

// DriverVersion returns the sqlite library version.
func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Prepare starts a batch of logs produced at ledger ref.
func (db *LogDB) Prepare(ref LedgerRef) *LedgerBatch {
	return &LedgerBatch{
		db:  db.db,
		ref: ref,
	}
}

func rangeCondition(r *Range) (string, []interface{}) {
	if r == nil {
		return "", nil
	}
	column := "ledgerNumber"
	if r.Unit == Time {
		column = "ledgerTime"
	}
	stmt := " AND " + column + " >= ? "
	args := []interface{}{r.From}
	if r.To >= r.From {
		stmt += " AND " + column + " <= ? "
		args = append(args, r.To)
	}
	return stmt, args
}

// anyOf joins per-criteria conditions with OR.
func anyOf(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " AND (" + strings.Join(conds, " OR ") + ")"
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event ORDER BY ledgerNumber ASC,eventIndex ASC")
	}
	stmt, args := rangeCondition(filter.Range)
	stmt = "SELECT * FROM event WHERE 1" + stmt
	if filter.TxID != nil {
		args = append(args, filter.TxID.Bytes())
		stmt += " AND txID = ? "
	}

	conds := make([]string, 0, len(filter.CriteriaSet))
	for _, criteria := range filter.CriteriaSet {
		cond := "( 1"
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			cond += " AND address = ?"
		}
		for j, topic := range criteria.Topics {
			if topic != nil {
				args = append(args, topic.Bytes())
				cond += fmt.Sprintf(" AND topic%v = ?", j)
			}
		}
		conds = append(conds, cond+" )")
	}
	stmt += anyOf(conds)

	if filter.Order == DESC {
		stmt += " ORDER BY ledgerNumber DESC,eventIndex DESC "
	} else {
		stmt += " ORDER BY ledgerNumber ASC,eventIndex ASC "
	}

	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer ORDER BY ledgerNumber ASC,transferIndex ASC")
	}
	stmt, args := rangeCondition(filter.Range)
	stmt = "SELECT * FROM transfer WHERE 1" + stmt
	if filter.TxID != nil {
		args = append(args, filter.TxID.Bytes())
		stmt += " AND txID = ? "
	}

	conds := make([]string, 0, len(filter.CriteriaSet))
	for _, criteria := range filter.CriteriaSet {
		cond := "( 1"
		if criteria.TxOrigin != nil {
			args = append(args, criteria.TxOrigin.Bytes())
			cond += " AND txOrigin = ?"
		}
		if criteria.Sender != nil {
			args = append(args, criteria.Sender.Bytes())
			cond += " AND sender = ?"
		}
		if criteria.Recipient != nil {
			args = append(args, criteria.Recipient.Bytes())
			cond += " AND recipient = ?"
		}
		if criteria.Asset != nil {
			args = append(args, criteria.Asset.Bytes())
			cond += " AND asset = ?"
		}
		conds = append(conds, cond+" )")
	}
	stmt += anyOf(conds)

	if filter.Order == DESC {
		stmt += " ORDER BY ledgerNumber DESC,transferIndex DESC "
	} else {
		stmt += " ORDER BY ledgerNumber ASC,transferIndex ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ledgerNumber uint32
			index        uint32
			ledgerTime   uint64
			txID         []byte
			txOrigin     []byte
			address      []byte
			topics       [5][]byte
			data         []byte
		)
		if err := rows.Scan(
			&ledgerNumber,
			&index,
			&ledgerTime,
			&txID,
			&txOrigin,
			&address,
			&topics[0],
			&topics[1],
			&topics[2],
			&topics[3],
			&topics[4],
			&data,
		); err != nil {
			return nil, err
		}
		event := &Event{
			LedgerNumber: ledgerNumber,
			Index:        index,
			LedgerTime:   ledgerTime,
			TxID:         meter.BytesToBytes32(txID),
			TxOrigin:     meter.BytesToAddress(txOrigin),
			Address:      meter.BytesToAddress(address),
			Data:         data,
		}
		for i, topic := range topics {
			if len(topic) > 0 {
				h := meter.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ledgerNumber uint32
			index        uint32
			ledgerTime   uint64
			txID         []byte
			txOrigin     []byte
			sender       []byte
			recipient    []byte
			amount       []byte
			asset        []byte
		)
		if err := rows.Scan(
			&ledgerNumber,
			&index,
			&ledgerTime,
			&txID,
			&txOrigin,
			&sender,
			&recipient,
			&amount,
			&asset,
		); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			LedgerNumber: ledgerNumber,
			Index:        index,
			LedgerTime:   ledgerTime,
			TxID:         meter.BytesToBytes32(txID),
			TxOrigin:     meter.BytesToAddress(txOrigin),
			Sender:       meter.BytesToAddress(sender),
			Recipient:    meter.BytesToAddress(recipient),
			Amount:       new(big.Int).SetBytes(amount),
			Asset:        meter.BytesToAddress(asset),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}

func topicValue(topic *meter.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}

// LedgerBatch collects logs of one ledger and writes them in one sql transaction.
type LedgerBatch struct {
	db        *sql.DB
	ref       LedgerRef
	events    []*Event
	transfers []*Transfer
}

func (lb *LedgerBatch) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := lb.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		if e := tx.Rollback(); e != nil {
			log.Warn("could not rollback", "err", e)
		}
		return err
	}
	return tx.Commit()
}

func (lb *LedgerBatch) Commit() error {
	return lb.execInTx(func(tx *sql.Tx) error {
		for _, event := range lb.events {
			if _, err := tx.Exec("INSERT OR REPLACE INTO event(ledgerNumber ,eventIndex, ledgerTime ,txID ,txOrigin ,address ,topic0 ,topic1 ,topic2 ,topic3 ,topic4, data) VALUES ( ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				event.LedgerNumber,
				event.Index,
				event.LedgerTime,
				event.TxID.Bytes(),
				event.TxOrigin.Bytes(),
				event.Address.Bytes(),
				topicValue(event.Topics[0]),
				topicValue(event.Topics[1]),
				topicValue(event.Topics[2]),
				topicValue(event.Topics[3]),
				topicValue(event.Topics[4]),
				event.Data,
			); err != nil {
				return errors.Wrap(err, "insert event")
			}
		}

		for _, transfer := range lb.transfers {
			if _, err := tx.Exec("INSERT OR REPLACE INTO transfer(ledgerNumber ,transferIndex, ledgerTime ,txID ,txOrigin ,sender ,recipient ,amount, asset) VALUES ( ?, ?, ?, ?, ?, ?, ?, ?, ?);",
				transfer.LedgerNumber,
				transfer.Index,
				transfer.LedgerTime,
				transfer.TxID.Bytes(),
				transfer.TxOrigin.Bytes(),
				transfer.Sender.Bytes(),
				transfer.Recipient.Bytes(),
				transfer.Amount.Bytes(),
				transfer.Asset.Bytes(),
			); err != nil {
				return errors.Wrap(err, "insert transfer")
			}
		}
		return nil
	})
}

func (lb *LedgerBatch) ForTransaction(txID meter.Bytes32, txOrigin meter.Address) struct {
	Insert func(tx.Events, tx.Transfers) *LedgerBatch
} {
	return struct {
		Insert func(events tx.Events, transfers tx.Transfers) *LedgerBatch
	}{
		func(events tx.Events, transfers tx.Transfers) *LedgerBatch {
			for _, event := range events {
				lb.events = append(lb.events, newEvent(lb.ref, uint32(len(lb.events)), txID, txOrigin, event))
			}
			for _, transfer := range transfers {
				lb.transfers = append(lb.transfers, newTransfer(lb.ref, uint32(len(lb.transfers)), txID, txOrigin, transfer))
			}
			return lb
		},
	}
}
