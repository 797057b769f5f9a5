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

package lzss

import (
	"bytes"
	"testing"
)

func TestMinRepetition(t *testing.T) {
	cases := []struct {
		lookback, repetition, want int
	}{
		{11, 4, 2},
		{14, 5, 3},
	}
	for _, c := range cases {
		if got := MinRepetition(c.lookback, c.repetition); got != c.want {
			t.Errorf("MinRepetition(%d,%d) = %d, want %d", c.lookback, c.repetition, got, c.want)
		}
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 20)

	for _, widths := range [][2]int{{11, 4}, {14, 5}} {
		lookback, repetition := widths[0], widths[1]
		compressed := Compress(src, lookback, repetition)

		got, err := Decompress(compressed, 0, len(src), lookback, repetition)
		if err != nil {
			t.Fatalf("widths (%d,%d): Decompress: %v", lookback, repetition, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("widths (%d,%d): round trip mismatch", lookback, repetition)
		}
	}
}

func TestProbeCompressedSizeMatchesActualConsumption(t *testing.T) {
	src := bytes.Repeat([]byte{0xAA, 0xBB, 0xCC, 0xDD}, 64)
	compressed := Compress(src, DefaultLookbackBits, DefaultRepetitionBits)
	// pad with trailing garbage the probe must not consume.
	padded := append(append([]byte{}, compressed...), 0xFF, 0xFF, 0xFF, 0xFF)

	consumed := ProbeCompressedSize(padded, 0, len(src), DefaultLookbackBits, DefaultRepetitionBits)
	if consumed <= 0 {
		t.Fatalf("ProbeCompressedSize returned %d, want a positive byte count", consumed)
	}
	if consumed > len(compressed)+3 {
		// byte offset is word-rounded, so allow up to 3 bytes of trailing padding
		// within the same 32-bit word as the final flush.
		t.Fatalf("ProbeCompressedSize consumed %d bytes, compressed stream is only %d bytes", consumed, len(compressed))
	}

	if !TestDecompress(padded, 0, len(src), DefaultLookbackBits, DefaultRepetitionBits) {
		t.Fatal("TestDecompress should succeed on a well-formed stream")
	}
}

func TestProbeCompressedSizeRejectsGarbage(t *testing.T) {
	garbage := bytes.Repeat([]byte{0xFF}, 64)
	if got := ProbeCompressedSize(garbage, 0, 0x200, DefaultLookbackBits, DefaultRepetitionBits); got != -1 {
		t.Errorf("ProbeCompressedSize on garbage = %d, want -1", got)
	}
}

func TestProbeDecompressedSizeRunsToSliceEnd(t *testing.T) {
	src := bytes.Repeat([]byte("abcdefgh"), 8)
	compressed := Compress(src, DefaultLookbackBits, DefaultRepetitionBits)

	// The probe decodes until the slice is exhausted, so the zero bits that
	// pad the stream's last word decode as one more back-reference of
	// minimum length (lookback 0, length code 0).
	want := len(src) + MinRepetition(DefaultLookbackBits, DefaultRepetitionBits)
	got := ProbeDecompressedSize(compressed, 0, len(compressed), DefaultLookbackBits, DefaultRepetitionBits)
	if got != want {
		t.Errorf("ProbeDecompressedSize = %d, want %d", got, want)
	}
}

func TestDecompressIllegalSequence(t *testing.T) {
	// flag=0 (back-reference) with a lookback that reaches past the output
	// produced so far must be rejected rather than indexed out of range.
	bb := make([]byte, 4)
	bb[0] = 0x00 // all-zero word: flag bit (read from the LSB) is 0, lookback 0 into empty output
	if _, err := Decompress(bb, 0, 4, DefaultLookbackBits, DefaultRepetitionBits); err == nil {
		t.Fatal("expected an error for a back-reference into empty output")
	}
}
