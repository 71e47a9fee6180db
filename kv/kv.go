// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter defines methods to read kv.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter defines methods to write kv.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// GetPutter defines methods to read/write kv.
type GetPutter interface {
	Getter
	Putter
}

// Batch defines batch write of kv.
type Batch interface {
	Putter
	Len() int
	Write() error
}

// Range is the key range [From, To) to iterate over.
type Range struct {
	From []byte
	To   []byte
}

// Iterator iterates over kv pairs in key order.
type Iterator interface {
	First() bool
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Store defines the full kv store used by the ledger.
type Store interface {
	GetPutter
	NewBatch() Batch
	NewIterator(r Range) Iterator
	Close() error
}

// BatchGetPutter defines a read/write kv which can commit writes in batch.
type BatchGetPutter interface {
	GetPutter
	NewBatch() Batch
}
