// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/kv"
)

// Stage abstracts pending changes of a state.
type Stage struct {
	err     error
	kv      kv.BatchGetPutter
	changes map[storageKey]storageEntry
}

func newStage(kv kv.BatchGetPutter, changes map[storageKey]storageEntry) *Stage {
	return &Stage{kv: kv, changes: changes}
}

// Len returns count of changed entries.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes in one batch.
func (s *Stage) Commit() error {
	if s.err != nil {
		return s.err
	}
	start := time.Now()
	batch := s.kv.NewBatch()
	for key, entry := range s.changes {
		if entry.isEmpty() {
			if err := batch.Delete(key.dbKey()); err != nil {
				return err
			}
			continue
		}
		data, err := rlp.EncodeToBytes(&entry)
		if err != nil {
			return err
		}
		if err := batch.Put(key.dbKey(), data); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return err
	}
	for key, entry := range s.changes {
		entryCache.add(s.kv, key, entry)
	}
	log.Debug("committed stage", "entries", len(s.changes), "elapsed", common.PrettyDuration(time.Since(start)))
	return nil
}
