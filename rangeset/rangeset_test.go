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

package rangeset

import (
	"reflect"
	"testing"
)

func TestAddMergesOverlappingAndTouching(t *testing.T) {
	s := New()
	s.Add(Range{0, 10})
	s.Add(Range{10, 20}) // touching, not overlapping: must still merge
	s.Add(Range{30, 40})
	s.Add(Range{35, 50}) // overlaps the last range

	want := []Range{{0, 20}, {30, 50}}
	if got := s.Ranges(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Ranges() = %v, want %v", got, want)
	}
}

func TestRemovePreservesDisjointRanges(t *testing.T) {
	s := New()
	s.Add(Range{0, 10})
	s.Add(Range{100, 200})

	s.Remove(Range{0, 10})

	want := []Range{{100, 200}}
	if got := s.Ranges(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Ranges() = %v, want %v (disjoint range must survive Remove)", got, want)
	}
}

func TestRemoveTrimsAndSplits(t *testing.T) {
	cases := []struct {
		name    string
		initial Range
		remove  Range
		want    []Range
	}{
		{"full overlap drops range", Range{10, 20}, Range{0, 30}, nil},
		{"overlap at bottom trims", Range{10, 20}, Range{0, 15}, []Range{{15, 20}}},
		{"overlap at top trims", Range{10, 20}, Range{15, 30}, []Range{{10, 15}}},
		{"overlap in middle splits", Range{10, 20}, Range{12, 18}, []Range{{10, 12}, {18, 20}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := New()
			s.Add(c.initial)
			s.Remove(c.remove)
			got := s.Ranges()
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Ranges() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	s := New()
	s.Add(Range{100, 200})
	s.Add(Range{500, 600})

	cases := []struct {
		offset int64
		want   bool
	}{
		{50, false},
		{100, true},
		{150, true},
		{199, true},
		{200, false},
		{550, true},
		{700, false},
	}
	for _, c := range cases {
		if got := s.Contains(c.offset); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	s := New()
	s.Add(Range{100, 200})

	if !s.Overlaps(Range{150, 250}) {
		t.Error("expected overlap with {150,250}")
	}
	if s.Overlaps(Range{200, 300}) {
		t.Error("did not expect overlap with touching-but-disjoint {200,300}")
	}
	if s.Overlaps(Range{0, 50}) {
		t.Error("did not expect overlap with disjoint {0,50}")
	}
}
