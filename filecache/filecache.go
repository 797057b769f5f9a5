// Copyright (c) 2026 The mssb-asset-recovery authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of mssb-asset-recovery.
//
// mssb-asset-recovery is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// mssb-asset-recovery is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with mssb-asset-recovery.  If not, see <https://www.gnu.org/licenses/>.

// Package filecache provides a byte-budget-bounded, content-addressed cache
// for whole input files (main.dol, code archives, data archives, CHD
// materializations). Batch "-version ALL" runs reuse it so the same archive
// bytes are not re-decompressed or re-read from disk for every version that
// shares a container.
package filecache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultBudget is the default total byte budget for a Cache: room for one
// GameCube-sized (~1.4 GiB) data archive plus smaller inputs, so a batch run
// keeps at most about 2 GiB of file contents resident.
const DefaultBudget = 2 << 30 // 2 GiB

// Cache holds decoded file contents keyed by a caller-chosen resolved path
// (e.g. "US/ZZZZ.dat" or a CHD's absolute path), evicting least-recently-used
// entries once the sum of cached byte lengths would exceed its budget.
type Cache struct {
	mu     sync.Mutex
	lru    *lru.Cache[string, []byte]
	budget int64
	used   int64
}

// New creates a Cache bounded by budget total bytes across all entries.
// A non-positive budget falls back to DefaultBudget.
func New(budget int64) *Cache {
	if budget <= 0 {
		budget = DefaultBudget
	}

	c := &Cache{budget: budget}

	// Capacity is nominal; actual eviction is byte-budget driven via the
	// OnEvict callback, not entry count, so size it generously.
	inner, err := lru.NewWithEvict[string, []byte](1<<16, c.onEvict)
	if err != nil {
		// Only returns an error for a non-positive size, which 1<<16 never is.
		panic(err)
	}
	c.lru = inner

	return c
}

// onEvict is invoked by the underlying LRU whenever it drops an entry,
// whether from its own nominal capacity or from Cache.evictUntilFits.
func (c *Cache) onEvict(_ string, value []byte) {
	c.used -= int64(len(value))
}

// Get returns the cached bytes for key, if present, refreshing its
// recency.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Get(key)
}

// Put stores value under key, evicting least-recently-used entries (other
// than key itself) until the cache fits within its byte budget. A value
// larger than the entire budget is stored anyway — Put never rejects
// data, it only tries to keep memory bounded for the common case.
func (c *Cache) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.lru.Peek(key); ok {
		c.used -= int64(len(old))
	}

	c.used += int64(len(value))
	c.lru.Add(key, value)

	c.evictUntilFits()
}

// evictUntilFits removes the least-recently-used entry repeatedly until
// the tracked usage is within budget or only one entry remains.
func (c *Cache) evictUntilFits() {
	for c.used > c.budget && c.lru.Len() > 1 {
		if _, _, ok := c.lru.RemoveOldest(); !ok {
			break
		}
	}
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

// Used returns the tracked total byte size of cached entries.
func (c *Cache) Used() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.used
}

// Purge empties the cache.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
	c.used = 0
}
