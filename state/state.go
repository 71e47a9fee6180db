// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/inconshreveable/log15"
	"github.com/meterio/nft-auction/kv"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/stackedmap"
)

var log = log15.New("pkg", "state")

// State is the ledger access shim. It keeps per contract address storage,
// renews entry lifetime on every touch and journals changes until committed.
type State struct {
	kv       kv.BatchGetPutter
	sm       *stackedmap.StackedMap // keeps revisions of storage entries
	ledger   uint32
	err      error
	setError func(err error)
}

type storageKey struct {
	addr meter.Address
	key  meter.Bytes32
}

// New create an state object.
func New(kv kv.BatchGetPutter) *State {
	state := State{
		kv: kv,
	}
	state.setError = func(err error) {
		if state.err == nil {
			state.err = err
		}
	}
	state.sm = stackedmap.New(func(key interface{}) (value interface{}, exist bool) {
		return state.cacheGetter(key.(storageKey))
	})
	return &state
}

// Err returns first occurred error.
func (s *State) Err() error {
	return s.err
}

// SetLedger sets the current ledger number, used for lifetime renewal.
func (s *State) SetLedger(number uint32) {
	s.ledger = number
}

// Ledger returns the current ledger number.
func (s *State) Ledger() uint32 {
	return s.ledger
}

func (s *State) cacheGetter(key storageKey) (interface{}, bool) {
	entry, err := loadEntry(s.kv, key)
	if err != nil {
		s.setError(err)
		return storageEntry{}, true
	}
	return entry, true
}

func (s *State) getEntry(key storageKey) storageEntry {
	v, _ := s.sm.Get(key)
	return v.(storageEntry)
}

// touch reads the entry and renews its lifetime when needed.
func (s *State) touch(key storageKey) storageEntry {
	entry := s.getEntry(key)
	if entry.isEmpty() {
		return entry
	}
	if renewed, ok := entry.renew(s.ledger); ok {
		s.sm.Put(key, renewed)
		return renewed
	}
	return entry
}

// GetStorage returns storage value for the given address and key, nil if absent.
func (s *State) GetStorage(addr meter.Address, key meter.Bytes32) []byte {
	return s.touch(storageKey{addr, key}).Value
}

// HasStorage returns whether a value is stored under the given address and key.
func (s *State) HasStorage(addr meter.Address, key meter.Bytes32) bool {
	return !s.touch(storageKey{addr, key}).isEmpty()
}

// SetStorage set storage value for the given address and key.
// An empty value deletes the entry.
func (s *State) SetStorage(addr meter.Address, key meter.Bytes32, value []byte) {
	k := storageKey{addr, key}
	if len(value) == 0 {
		s.sm.Put(k, storageEntry{})
		return
	}
	entry := s.getEntry(k)
	next := storageEntry{
		Value:     append([]byte(nil), value...),
		LiveUntil: entry.LiveUntil,
	}
	if renewed, ok := next.renew(s.ledger); ok {
		next = renewed
	}
	s.sm.Put(k, next)
}

// LiveUntil returns the ledger number until which the entry stays live.
// Zero means the entry is absent.
func (s *State) LiveUntil(addr meter.Address, key meter.Bytes32) uint32 {
	return s.getEntry(storageKey{addr, key}).LiveUntil
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr meter.Address, key meter.Bytes32, enc func() ([]byte, error)) {
	raw, err := enc()
	if err != nil {
		s.setError(err)
		return
	}
	s.SetStorage(addr, key, raw)
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr meter.Address, key meter.Bytes32, dec func([]byte) error) {
	raw := s.GetStorage(addr, key)
	if err := dec(raw); err != nil {
		s.setError(err)
	}
}

// GetStructedStorage decodes a rlp value into val. It returns false when absent.
func (s *State) GetStructedStorage(addr meter.Address, key meter.Bytes32, val interface{}) bool {
	raw := s.GetStorage(addr, key)
	if len(raw) == 0 {
		return false
	}
	if err := rlp.DecodeBytes(raw, val); err != nil {
		s.setError(err)
		return false
	}
	return true
}

// SetStructedStorage rlp encodes val and stores it.
func (s *State) SetStructedStorage(addr meter.Address, key meter.Bytes32, val interface{}) {
	s.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(val)
	})
}

// RangeStorage visits the given keys in order, skipping absent entries.
// Iteration stops when cb returns false.
func (s *State) RangeStorage(addr meter.Address, keys []meter.Bytes32, cb func(key meter.Bytes32, raw []byte) bool) {
	for _, key := range keys {
		entry := s.touch(storageKey{addr, key})
		if entry.isEmpty() {
			continue
		}
		if !cb(key, entry.Value) {
			return
		}
	}
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit all changes.
func (s *State) Stage() *Stage {
	if s.err != nil {
		return &Stage{err: s.err}
	}
	return newStage(s.kv, s.changes())
}

// Commit flushes all journaled changes into the kv store in one batch.
// On failure the changes stay journaled; call Reset to drop them.
func (s *State) Commit() error {
	if err := s.Stage().Commit(); err != nil {
		return err
	}
	s.Reset()
	return nil
}

// Reset drops every uncommitted change and the recorded error.
func (s *State) Reset() {
	s.sm = stackedmap.New(func(key interface{}) (value interface{}, exist bool) {
		return s.cacheGetter(key.(storageKey))
	})
	s.err = nil
}

func (s *State) changes() map[storageKey]storageEntry {
	changes := make(map[storageKey]storageEntry)
	s.sm.Journal(func(k, v interface{}) bool {
		changes[k.(storageKey)] = v.(storageEntry)
		return true
	})
	return changes
}
