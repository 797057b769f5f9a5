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

package descriptor

import (
	"encoding/json"
	"testing"
)

func TestParseDescriptor(t *testing.T) {
	buf := []byte{
		0x00, 0x00, // reserved
		0x04,                   // repetition_bits
		0x0B,                   // lookback_bits
		0x40, 0x00, 0x01, 0x00, // compression_flag=4 (top nibble), original_size=0x100
		0x00, 0x00, 0x08, 0x00, // disk_offset
		0x00, 0x00, 0x04, 0x00, // compressed_size
	}

	e, err := Parse(buf, "data.bin")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if e.LookbackBits != 11 || e.RepetitionBits != 4 || e.CompressionFlag != FlagCompressed {
		t.Fatalf("got L=%d R=%d flag=%d", e.LookbackBits, e.RepetitionBits, e.CompressionFlag)
	}
	if e.OriginalSize != 0x100 || e.DiskOffset != 0x800 || e.CompressedSize != 0x400 {
		t.Fatalf("got orig=%#x offset=%#x csize=%#x", e.OriginalSize, e.DiskOffset, e.CompressedSize)
	}
	if e.FooterSize() != 0x400 {
		t.Fatalf("FooterSize() = %#x, want 0x400", e.FooterSize())
	}

	r := e.Range()
	if r.Start != 0x800 || r.End != 0x1000 {
		t.Fatalf("Range() = [%#x, %#x), want [0x800, 0x1000)", r.Start, r.End)
	}
}

func TestParseRejectsNonzeroReserved(t *testing.T) {
	buf := make([]byte, Size)
	buf[0] = 0x01
	if _, err := Parse(buf, "x"); err == nil {
		t.Fatal("expected an error for nonzero reserved field")
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	e := Entry{
		Source:          "data.bin",
		RepetitionBits:  5,
		LookbackBits:    14,
		CompressionFlag: FlagCompressed,
		OriginalSize:    0x1234,
		DiskOffset:      0x1000,
		CompressedSize:  0x200,
	}

	got, err := Parse(e.Serialize(), e.Source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !e.Equal(got) {
		t.Fatalf("round trip mismatch: %+v != %+v", e, got)
	}
}

func TestEqualBesidesFilename(t *testing.T) {
	a := Entry{Source: "main", LookbackBits: 11, RepetitionBits: 4, CompressionFlag: FlagCompressed, DiskOffset: 0x800, CompressedSize: 0x400}
	b := Entry{Source: "code.dat", LookbackBits: 11, RepetitionBits: 4, CompressionFlag: FlagCompressed, DiskOffset: 0x800, CompressedSize: 0x400}

	if a.Equal(b) {
		t.Fatal("Equal should distinguish different source paths")
	}
	if !a.EqualBesidesFilename(b) {
		t.Fatal("EqualBesidesFilename should ignore source path")
	}
}

func TestOutputNameDefaultAndOverride(t *testing.T) {
	e := Entry{LookbackBits: 0x0B, RepetitionBits: 0x04, DiskOffset: 0x800}
	if got, want := e.OutputName(), "0b04 00000800.dat"; got != want {
		t.Fatalf("OutputName() = %q, want %q", got, want)
	}

	e.OutputNameOverride = "AdGCForm 00000800.dat"
	if got, want := e.OutputName(), "AdGCForm 00000800.dat"; got != want {
		t.Fatalf("OutputName() = %q, want %q", got, want)
	}
}

func TestJSONFieldNames(t *testing.T) {
	e := Entry{
		Source:          "ZZZZ.dat",
		LookbackBits:    11,
		RepetitionBits:  4,
		CompressionFlag: FlagCompressed,
		OriginalSize:    0x100,
		DiskOffset:      0x800,
		CompressedSize:  0x400,
	}

	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("Unmarshal to map: %v", err)
	}
	for _, key := range []string{"Input", "Output", "lookback_bit", "repetition_bit", "original_size", "offset", "compressed_size", "compression_flag", "footerSize"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing wire field %q in %s", key, out)
		}
	}

	var back Entry
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !e.Equal(back) {
		t.Fatalf("JSON round trip mismatch: %+v != %+v", e, back)
	}
}
