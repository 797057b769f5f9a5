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

// Package descriptor defines the 16-byte "data entry" record that locates
// one asset on disk, however it was discovered: embedded in the main
// executable, in a relocatable code blob, or synthesized by the gap sweep.
package descriptor

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/roeming/mssb-asset-recovery/rangeset"
)

// Size is the on-disk byte length of a descriptor record.
const Size = 16

// Sector is the disc's physical sector size; disk offsets are always a
// non-zero multiple of this.
const Sector = 0x800

// CompressionFlag values. Any other nibble value is invalid.
const (
	FlagRaw        = 0
	FlagCompressed = 4
)

// ErrInvalidRecord indicates the bytes do not form a valid descriptor
// (fewer than 16 bytes, or a nonzero reserved field). Parse does not check
// the compression flag or the disk offset.
var ErrInvalidRecord = errors.New("descriptor: invalid record")

// Entry is a parsed descriptor record plus the path of the container it was
// extracted from, which determines which byte blob to read when extracting
// its payload.
type Entry struct {
	Source           string
	RepetitionBits   uint8
	LookbackBits     uint8
	CompressionFlag  uint8
	OriginalSize     uint32
	DiskOffset       uint32
	CompressedSize   uint32
	OutputNameOverride string
}

// Parse decodes a 16-byte big-endian record. It does not apply the
// scanner's acceptance rules (disk_offset alignment, flag-specific
// constraints) — callers that need those call a scan function instead of
// Parse directly; Parse itself only rejects structurally nonzero-reserved
// records.
func Parse(buf []byte, source string) (Entry, error) {
	if len(buf) < Size {
		return Entry{}, fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidRecord, Size, len(buf))
	}

	reserved := binary.BigEndian.Uint16(buf[0:2])
	if reserved != 0 {
		return Entry{}, fmt.Errorf("%w: reserved field %#x", ErrInvalidRecord, reserved)
	}

	repetitionBits := buf[2]
	lookbackBits := buf[3]

	word := binary.BigEndian.Uint32(buf[4:8])
	compressionFlag := uint8(word >> 28)
	originalSize := word & 0x0FFFFFFF

	diskOffset := binary.BigEndian.Uint32(buf[8:12])
	compressedSize := binary.BigEndian.Uint32(buf[12:16])

	return Entry{
		Source:          source,
		RepetitionBits:  repetitionBits,
		LookbackBits:    lookbackBits,
		CompressionFlag: compressionFlag,
		OriginalSize:    originalSize,
		DiskOffset:      diskOffset,
		CompressedSize:  compressedSize,
	}, nil
}

// Serialize encodes e back to its 16-byte big-endian wire form.
func (e Entry) Serialize() []byte {
	buf := make([]byte, Size)
	binary.BigEndian.PutUint16(buf[0:2], 0)
	buf[2] = e.RepetitionBits
	buf[3] = e.LookbackBits
	word := uint32(e.CompressionFlag)<<28 | (e.OriginalSize & 0x0FFFFFFF)
	binary.BigEndian.PutUint32(buf[4:8], word)
	binary.BigEndian.PutUint32(buf[8:12], e.DiskOffset)
	binary.BigEndian.PutUint32(buf[12:16], e.CompressedSize)
	return buf
}

// FooterSize returns the padding between this entry's on-disk payload and
// the next sector boundary.
func (e Entry) FooterSize() uint32 {
	return uint32((Sector - (int64(e.DiskOffset)+int64(e.CompressedSize))%Sector) % Sector)
}

// Range returns the half-open byte range this entry occupies, including its
// sector-alignment footer.
func (e Entry) Range() rangeset.Range {
	start := int64(e.DiskOffset)
	end := start + int64(e.CompressedSize) + int64(e.FooterSize())
	return rangeset.Range{Start: start, End: end}
}

// OutputName returns the file name this entry's extracted payload should be
// written under, honoring any override (AdGCForm prefix, known-file sidecar
// name) before falling back to the default "{lookback}{repetition}
// {offset}.dat" scheme.
func (e Entry) OutputName() string {
	if e.OutputNameOverride != "" {
		return e.OutputNameOverride
	}
	return fmt.Sprintf("%02x%02x %08x.dat", e.LookbackBits, e.RepetitionBits, e.DiskOffset)
}

// fields is the tuple of wire fields plus derived footer size used by both
// equality notions.
type fields struct {
	repetitionBits, lookbackBits, compressionFlag uint8
	originalSize, diskOffset, compressedSize, footerSize uint32
}

func (e Entry) fields() fields {
	return fields{
		repetitionBits:  e.RepetitionBits,
		lookbackBits:    e.LookbackBits,
		compressionFlag: e.CompressionFlag,
		originalSize:    e.OriginalSize,
		diskOffset:      e.DiskOffset,
		compressedSize:  e.CompressedSize,
		footerSize:      e.FooterSize(),
	}
}

// Equal reports full identity: source path, every wire field, and the
// derived footer size must match.
func (e Entry) Equal(o Entry) bool {
	return e.Source == o.Source && e.fields() == o.fields()
}

// EqualBesidesFilename reports weak equality used to deduplicate a
// descriptor discovered from two different containers (e.g. a rel found
// both embedded and via sector scanning): every field matches except the
// source path.
func (e Entry) EqualBesidesFilename(o Entry) bool {
	return e.fields() == o.fields()
}

// Less orders entries by disk offset, the sort order finding sets are
// serialized in.
func (e Entry) Less(o Entry) bool {
	return e.DiskOffset < o.DiskOffset
}
