// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create tables and indexes if not exist
const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	ledgerNumber INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	ledgerTime INTEGER NOT NULL,
	txID BLOB(32) NOT NULL,
	txOrigin BLOB(20) NOT NULL,
	address BLOB(20) NOT NULL,
	topic0 BLOB(32),
	topic1 BLOB(32),
	topic2 BLOB(32),
	topic3 BLOB(32),
	topic4 BLOB(32),
	data BLOB,
	PRIMARY KEY (ledgerNumber, eventIndex)
);
CREATE INDEX IF NOT EXISTS eventTxIDIndex ON event(txID);
CREATE INDEX IF NOT EXISTS eventTopic1Index ON event(topic1);
`

	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	ledgerNumber INTEGER NOT NULL,
	transferIndex INTEGER NOT NULL,
	ledgerTime INTEGER NOT NULL,
	txID BLOB(32) NOT NULL,
	txOrigin BLOB(20) NOT NULL,
	sender BLOB(20) NOT NULL,
	recipient BLOB(20) NOT NULL,
	amount BLOB(32),
	asset BLOB(20) NOT NULL,
	PRIMARY KEY (ledgerNumber, transferIndex)
);
CREATE INDEX IF NOT EXISTS transferTxIDIndex ON transfer(txID);
CREATE INDEX IF NOT EXISTS transferSenderIndex ON transfer(sender);
CREATE INDEX IF NOT EXISTS transferRecipientIndex ON transfer(recipient);
`
)
