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

package recovery

import (
	"sort"

	"github.com/roeming/mssb-asset-recovery/descriptor"
)

// strongKey is the full-identity deduplication key for a descriptor within
// one finding set: source path plus every wire field. Rescanning the same
// blob twice (fingerprint scans are order-independent and idempotent) must
// not produce duplicate entries.
type strongKey struct {
	source                                        string
	repetitionBits, lookbackBits, compressionFlag uint8
	originalSize, diskOffset, compressedSize      uint32
}

func keyOf(e descriptor.Entry) strongKey {
	return strongKey{
		source:          e.Source,
		repetitionBits:  e.RepetitionBits,
		lookbackBits:    e.LookbackBits,
		compressionFlag: e.CompressionFlag,
		originalSize:    e.OriginalSize,
		diskOffset:      e.DiskOffset,
		compressedSize:  e.CompressedSize,
	}
}

// entrySet accumulates the five finding sets with set (not list) semantics.
type entrySet struct {
	compressed   map[strongKey]descriptor.Entry
	raw          map[strongKey]descriptor.Entry
	rels         map[strongKey]descriptor.Entry
	adGC         map[strongKey]descriptor.Entry
	unreferenced map[strongKey]descriptor.Entry
}

func newEntrySet() *entrySet {
	return &entrySet{
		compressed:   make(map[strongKey]descriptor.Entry),
		raw:          make(map[strongKey]descriptor.Entry),
		rels:         make(map[strongKey]descriptor.Entry),
		adGC:         make(map[strongKey]descriptor.Entry),
		unreferenced: make(map[strongKey]descriptor.Entry),
	}
}

func (s *entrySet) addCompressed(e descriptor.Entry)   { s.compressed[keyOf(e)] = e }
func (s *entrySet) addRaw(e descriptor.Entry)          { s.raw[keyOf(e)] = e }
func (s *entrySet) addRel(e descriptor.Entry)          { s.rels[keyOf(e)] = e }
func (s *entrySet) addAdGC(e descriptor.Entry)         { s.adGC[keyOf(e)] = e }
func (s *entrySet) addUnreferenced(e descriptor.Entry) { s.unreferenced[keyOf(e)] = e }

func (s *entrySet) compressedSlice() []descriptor.Entry {
	return sortedValues(s.compressed)
}

// replaceCompressed swaps the compressed set's contents, used after rel
// extraction removes reclassified entries.
func (s *entrySet) replaceCompressed(entries []descriptor.Entry) {
	s.compressed = make(map[strongKey]descriptor.Entry, len(entries))
	for _, e := range entries {
		s.compressed[keyOf(e)] = e
	}
}

// dataArchiveEntries returns every entry whose occupancy lives in the data
// archive (i.e. everything except rels, whose offsets are positions in the
// code archive's own address space).
func (s *entrySet) dataArchiveEntries() []descriptor.Entry {
	all := make([]descriptor.Entry, 0, len(s.compressed)+len(s.raw)+len(s.adGC))
	for _, e := range s.compressed {
		all = append(all, e)
	}
	for _, e := range s.raw {
		all = append(all, e)
	}
	for _, e := range s.adGC {
		all = append(all, e)
	}
	return all
}

func (s *entrySet) result() *Result {
	return &Result{
		Referenced:   sortedValues(s.compressed),
		Raw:          sortedValues(s.raw),
		Rels:         sortedValues(s.rels),
		AdGC:         sortedValues(s.adGC),
		Unreferenced: sortedValues(s.unreferenced),
	}
}

func sortedValues(m map[strongKey]descriptor.Entry) []descriptor.Entry {
	out := make([]descriptor.Entry, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
