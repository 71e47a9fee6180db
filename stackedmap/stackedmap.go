// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stackedmap provides a map with revisions. Values put after a Push
// can be discarded at once by popping back to that depth.
package stackedmap

// MapGetter defines getter method of map.
type MapGetter func(key interface{}) (value interface{}, exist bool)

type journalEntry struct {
	key   interface{}
	value interface{}
}

type level struct {
	kvs     map[interface{}]interface{}
	journal []journalEntry
}

// StackedMap maintains maps in a stack.
// Each map inherits key/value of map that is at lower level.
// It acts as a map with revision, and useful for journaling the state.
type StackedMap struct {
	src    MapGetter
	levels []*level
}

// New create an instance of StackedMap.
// src acts as source of data.
func New(src MapGetter) *StackedMap {
	return &StackedMap{
		src:    src,
		levels: []*level{newLevel()},
	}
}

func newLevel() *level {
	return &level{kvs: make(map[interface{}]interface{})}
}

// Depth returns depth of stack.
func (sm *StackedMap) Depth() int {
	return len(sm.levels)
}

// Push pushes a new map on stack.
// It returns stack depth before push.
func (sm *StackedMap) Push() int {
	sm.levels = append(sm.levels, newLevel())
	return len(sm.levels) - 1
}

// PopTo pops maps until stack depth reaches depth.
func (sm *StackedMap) PopTo(depth int) {
	if depth < 1 {
		depth = 1
	}
	for i := len(sm.levels) - 1; i >= depth; i-- {
		sm.levels[i] = nil
	}
	if depth < len(sm.levels) {
		sm.levels = sm.levels[:depth]
	}
}

// Get gets value for given key.
// The second return value indicates whether the given key is found.
func (sm *StackedMap) Get(key interface{}) (interface{}, bool) {
	for i := len(sm.levels) - 1; i >= 0; i-- {
		if v, ok := sm.levels[i].kvs[key]; ok {
			return v, true
		}
	}
	if sm.src != nil {
		return sm.src(key)
	}
	return nil, false
}

// Put puts key value into map at stack top.
func (sm *StackedMap) Put(key, value interface{}) {
	top := sm.levels[len(sm.levels)-1]
	top.kvs[key] = value
	top.journal = append(top.journal, journalEntry{key, value})
}

// Journal traverses journal entries of all levels, from bottom to top.
// Return false from cb to stop the traversal.
func (sm *StackedMap) Journal(cb func(key, value interface{}) bool) {
	for _, l := range sm.levels {
		for _, e := range l.journal {
			if !cb(e.key, e.value) {
				return
			}
		}
	}
}

// Reset drops all levels and journals, keeping the source.
func (sm *StackedMap) Reset() {
	sm.levels = []*level{newLevel()}
}
