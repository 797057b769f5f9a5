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

package filecache

import "testing"

func TestGetPutRoundTrip(t *testing.T) {
	t.Parallel()

	c := New(1 << 20)
	c.Put("US/ZZZZ.dat", []byte("hello"))

	got, ok := c.Get("US/ZZZZ.dat")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	t.Parallel()

	c := New(1 << 20)
	if _, ok := c.Get("missing"); ok {
		t.Error("expected cache miss")
	}
}

func TestPutEvictsLeastRecentlyUsedOverBudget(t *testing.T) {
	t.Parallel()

	c := New(10)
	c.Put("a", make([]byte, 4))
	c.Put("b", make([]byte, 4))

	// Touch "a" so "b" becomes the least-recently-used entry.
	c.Get("a")

	c.Put("c", make([]byte, 4))

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to have been evicted to stay within budget")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a to survive eviction (recently used)")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c (just inserted) to be present")
	}
}

func TestNewNonPositiveBudgetFallsBackToDefault(t *testing.T) {
	t.Parallel()

	c := New(0)
	c.Put("k", make([]byte, 1024))

	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected entry well within DefaultBudget to be retained")
	}
}

func TestPurgeEmptiesCache(t *testing.T) {
	t.Parallel()

	c := New(1 << 20)
	c.Put("a", []byte("x"))
	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Len() = %d after Purge, want 0", c.Len())
	}
	if c.Used() != 0 {
		t.Errorf("Used() = %d after Purge, want 0", c.Used())
	}
}

func TestUsedTracksByteLength(t *testing.T) {
	t.Parallel()

	c := New(1 << 20)
	c.Put("a", make([]byte, 100))
	c.Put("b", make([]byte, 50))

	if c.Used() != 150 {
		t.Errorf("Used() = %d, want 150", c.Used())
	}
}
