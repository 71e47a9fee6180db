// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/meterio/nft-auction/kv"
	"github.com/meterio/nft-auction/meter"
)

const storagePrefix = byte('s')

var entryCache = newEntryCache()

// storageEntry is the persisted form of a storage value.
type storageEntry struct {
	Value     []byte
	LiveUntil uint32
}

func (e storageEntry) isEmpty() bool {
	return len(e.Value) == 0
}

// renew bumps the lifetime when fewer than LifetimeThreshold ledgers remain.
func (e storageEntry) renew(ledger uint32) (storageEntry, bool) {
	if e.LiveUntil >= ledger && e.LiveUntil-ledger >= meter.LifetimeThreshold {
		return e, false
	}
	return storageEntry{Value: e.Value, LiveUntil: ledger + meter.BumpAmount}, true
}

func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, 1+meter.AddressLength+32)
	b = append(b, storagePrefix)
	b = append(b, k.addr.Bytes()...)
	return append(b, k.key.Bytes()...)
}

type entryCacheKey struct {
	kv  kv.Getter
	key storageKey
}

type storageEntryCache struct {
	cache *lru.Cache
}

func newEntryCache() *storageEntryCache {
	cache, err := lru.New(4096)
	if err != nil {
		return nil
	}
	return &storageEntryCache{cache: cache}
}

func (c *storageEntryCache) get(g kv.Getter, key storageKey) (storageEntry, bool) {
	if v, ok := c.cache.Get(entryCacheKey{g, key}); ok {
		return v.(storageEntry), true
	}
	return storageEntry{}, false
}

func (c *storageEntryCache) add(g kv.Getter, key storageKey, entry storageEntry) {
	c.cache.Add(entryCacheKey{g, key}, entry)
}

func loadEntry(g kv.Getter, key storageKey) (storageEntry, error) {
	if entry, ok := entryCache.get(g, key); ok {
		return entry, nil
	}
	data, err := g.Get(key.dbKey())
	if err != nil {
		if !g.IsNotFound(err) {
			return storageEntry{}, err
		}
		entryCache.add(g, key, storageEntry{})
		return storageEntry{}, nil
	}
	var entry storageEntry
	if err := rlp.DecodeBytes(data, &entry); err != nil {
		return storageEntry{}, err
	}
	entryCache.add(g, key, entry)
	return entry, nil
}
