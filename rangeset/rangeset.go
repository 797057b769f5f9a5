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

// Package rangeset maintains a sorted set of disjoint, non-touching
// half-open byte ranges [Start, End). It tracks which regions of the disc
// image are already accounted for by a recovered descriptor, so the gap
// sweep can tell occupied space from unexplored space.
package rangeset

import "sort"

// Range is a half-open interval [Start, End).
type Range struct {
	Start, End int64
}

func (r Range) empty() bool {
	return r.Start >= r.End
}

func (r Range) overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// overlapsOrTouches reports whether r and o overlap or are adjacent with no
// gap between them (so merging them loses no information).
func (r Range) overlapsOrTouches(o Range) bool {
	return r.Start <= o.End && o.Start <= r.End
}

func (r Range) union(o Range) Range {
	start := r.Start
	if o.Start < start {
		start = o.Start
	}
	end := r.End
	if o.End > end {
		end = o.End
	}
	return Range{Start: start, End: end}
}

// Set is a sorted collection of disjoint, non-touching ranges.
type Set struct {
	ranges []Range
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// Ranges returns the set's ranges in ascending order. The returned slice
// must not be modified.
func (s *Set) Ranges() []Range {
	return s.ranges
}

// Add merges r into the set, combining it with any range it overlaps or
// touches.
func (s *Set) Add(r Range) {
	if r.empty() {
		return
	}

	merged := r
	out := s.ranges[:0:0]
	for _, existing := range s.ranges {
		if merged.overlapsOrTouches(existing) {
			merged = merged.union(existing)
			continue
		}
		out = append(out, existing)
	}
	out = append(out, merged)

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	s.ranges = out
}

// Remove subtracts r from every range in the set, trimming or splitting
// ranges that overlap it. Ranges disjoint from r are preserved unchanged.
func (s *Set) Remove(r Range) {
	if r.empty() {
		return
	}

	out := make([]Range, 0, len(s.ranges))
	for _, existing := range s.ranges {
		if !existing.overlaps(r) {
			out = append(out, existing)
			continue
		}

		switch {
		case r.Start <= existing.Start && r.End >= existing.End:
			// r fully covers existing: drop it.
		case r.Start <= existing.Start:
			// overlap at the bottom: keep the remainder above r.
			out = append(out, Range{Start: r.End, End: existing.End})
		case r.End >= existing.End:
			// overlap at the top: keep the remainder below r.
			out = append(out, Range{Start: existing.Start, End: r.Start})
		default:
			// r sits entirely inside existing: split into two.
			out = append(out, Range{Start: existing.Start, End: r.Start})
			out = append(out, Range{Start: r.End, End: existing.End})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	s.ranges = out
}

// Contains reports whether offset falls inside any range in the set. It
// binary searches the sorted range list.
func (s *Set) Contains(offset int64) bool {
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End > offset })
	return i < len(s.ranges) && s.ranges[i].Start <= offset
}

// Overlaps reports whether r overlaps any range currently in the set.
func (s *Set) Overlaps(r Range) bool {
	for _, existing := range s.ranges {
		if existing.overlaps(r) {
			return true
		}
	}
	return false
}
