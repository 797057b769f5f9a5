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

package scanner

import (
	"encoding/binary"
	"testing"

	"github.com/roeming/mssb-asset-recovery/descriptor"
)

func recordBytes(repetitionBits, lookbackBits uint8, compressionFlag uint8, originalSize, diskOffset, compressedSize uint32) []byte {
	buf := make([]byte, descriptor.Size)
	buf[2] = repetitionBits
	buf[3] = lookbackBits
	word := uint32(compressionFlag)<<28 | (originalSize & 0x0FFFFFFF)
	binary.BigEndian.PutUint32(buf[4:8], word)
	binary.BigEndian.PutUint32(buf[8:12], diskOffset)
	binary.BigEndian.PutUint32(buf[12:16], compressedSize)
	return buf
}

func TestScanCompressedAcceptsAndRejects(t *testing.T) {
	data := make([]byte, 0x2000)

	good := recordBytes(4, 11, descriptor.FlagCompressed, 0x100, 0x1000, 0x80)
	copy(data[0x40:], good)

	zeroOffset := recordBytes(4, 11, descriptor.FlagCompressed, 0x100, 0, 0x80)
	copy(data[0x200:], zeroOffset)

	misaligned := recordBytes(4, 11, descriptor.FlagCompressed, 0x100, 0x801, 0x80)
	copy(data[0x400:], misaligned)

	found := ScanCompressed(data, "main")
	if len(found) != 1 {
		t.Fatalf("ScanCompressed found %d entries, want 1 (got %+v)", len(found), found)
	}
	if found[0].DiskOffset != 0x1000 {
		t.Fatalf("ScanCompressed found offset %#x, want 0x1000", found[0].DiskOffset)
	}
}

func TestScanCompressedAcceptsPlausibleOffset(t *testing.T) {
	data := make([]byte, 0x2000)
	rec := recordBytes(4, 11, descriptor.FlagCompressed, 0x100, 0x1000, 0x80)
	copy(data[0x40:], rec)

	rec2 := recordBytes(4, 11, descriptor.FlagCompressed, 0x100, 0x1000+descriptor.Sector, 0x80)
	copy(data[0x800:], rec2)

	found := ScanCompressed(data, "main")
	if len(found) != 2 {
		t.Fatalf("got %d entries, want 2", len(found))
	}
}

func TestScanUncompressedAcceptsWithinSlack(t *testing.T) {
	data := make([]byte, 0x1000)
	rec := recordBytes(0, 0, descriptor.FlagRaw, 0x100, 0x800, 0x101)
	copy(data[0x10:], rec)

	found := ScanUncompressed(data, "main")
	if len(found) != 1 {
		t.Fatalf("got %d entries, want 1", len(found))
	}
}

func TestScanUncompressedRejectsLargeSlack(t *testing.T) {
	data := make([]byte, 0x1000)
	rec := recordBytes(0, 0, descriptor.FlagRaw, 0x100, 0x800, 0x200)
	copy(data[0x10:], rec)

	if found := ScanUncompressed(data, "main"); len(found) != 0 {
		t.Fatalf("got %d entries, want 0", len(found))
	}
}

func TestScanAdGCFormRawContainer(t *testing.T) {
	data := make([]byte, 32)
	// prefix word: compression_flag=0, original_size=0 -> all zero.
	// info word: all zero.
	copy(data[8:], []byte("AdGCForm"))

	found := ScanAdGCForm(data, "ZZZZ.dat")
	if len(found) != 1 {
		t.Fatalf("got %d entries, want 1", len(found))
	}
	e := found[0]
	if e.CompressionFlag != descriptor.FlagRaw || e.OriginalSize != 0 {
		t.Fatalf("got flag=%d orig=%d, want flag=0 orig=0", e.CompressionFlag, e.OriginalSize)
	}
	if e.DiskOffset != 16 {
		t.Fatalf("got offset %d, want 16 (position after the literal)", e.DiskOffset)
	}
}
