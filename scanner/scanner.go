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

// Package scanner locates descriptor records and AdGCForm containers inside
// arbitrary binary blobs by fingerprint, under the alignment and
// field-range constraints that separate a real descriptor from an
// incidental byte match.
package scanner

import (
	"bytes"
	"encoding/binary"

	"github.com/roeming/mssb-asset-recovery/descriptor"
	"github.com/roeming/mssb-asset-recovery/lzss"
)

// Param is a supported (lookback_bits, repetition_bits) pairing the
// compressed fingerprint scan recognizes.
type Param struct {
	LookbackBits, RepetitionBits uint8
}

// UsableParams are the field-width pairs currently in use by the disc
// image's compressed streams.
var UsableParams = []Param{
	{LookbackBits: 11, RepetitionBits: 4},
	{LookbackBits: 14, RepetitionBits: 5},
}

// maxCompressedSizeBudget bounds a probed AdGCForm compressed length so a
// corrupt prefix cannot make the scanner claim an implausibly large region.
const maxCompressedSizeBudget = 1 << 24

// ScanCompressed searches data for the 4-byte tag [0, 0, R, L] of each
// supported (L, R) pairing and parses a candidate 16-byte descriptor at
// every hit, accepting records with compression_flag == 4 and a nonzero,
// sector-aligned disk_offset. Search advances by 4 bytes after each hit,
// since the tag itself is 4 bytes.
func ScanCompressed(data []byte, source string) []descriptor.Entry {
	var found []descriptor.Entry

	for _, p := range UsableParams {
		tag := []byte{0, 0, p.RepetitionBits, p.LookbackBits}

		i := 0
		for i < len(data) {
			hit := bytes.Index(data[i:], tag)
			if hit == -1 {
				break
			}
			pos := i + hit

			if pos+descriptor.Size <= len(data) {
				if e, ok := acceptCompressed(data[pos:pos+descriptor.Size], source); ok {
					found = append(found, e)
				}
			}

			i = pos + 4
		}
	}

	return found
}

func acceptCompressed(buf []byte, source string) (descriptor.Entry, bool) {
	e, err := descriptor.Parse(buf, source)
	if err != nil {
		return descriptor.Entry{}, false
	}
	if e.CompressionFlag != descriptor.FlagCompressed {
		return descriptor.Entry{}, false
	}
	if e.DiskOffset == 0 || e.DiskOffset%descriptor.Sector != 0 {
		return descriptor.Entry{}, false
	}
	return e, true
}

// ScanUncompressed searches data for any 4 zero bytes and parses a
// candidate 16-byte descriptor at every hit, accepting records with
// compression_flag == 0, a nonzero sector-aligned disk_offset, positive
// sizes, and a compressed/original size difference of at most 3 bytes (the
// rounding slack of a raw copy padded to a word boundary). Search advances
// by 1 byte between hits.
func ScanUncompressed(data []byte, source string) []descriptor.Entry {
	var found []descriptor.Entry

	for i := 0; i+4 <= len(data); i++ {
		if data[i] != 0 || data[i+1] != 0 || data[i+2] != 0 || data[i+3] != 0 {
			continue
		}
		if i+descriptor.Size > len(data) {
			continue
		}
		if e, ok := acceptUncompressed(data[i:i+descriptor.Size], source); ok {
			found = append(found, e)
		}
	}

	return found
}

func acceptUncompressed(buf []byte, source string) (descriptor.Entry, bool) {
	e, err := descriptor.Parse(buf, source)
	if err != nil {
		return descriptor.Entry{}, false
	}
	if e.CompressionFlag != descriptor.FlagRaw {
		return descriptor.Entry{}, false
	}
	if e.DiskOffset == 0 || e.DiskOffset%descriptor.Sector != 0 {
		return descriptor.Entry{}, false
	}
	if e.OriginalSize == 0 || e.CompressedSize == 0 {
		return descriptor.Entry{}, false
	}
	diff := int64(e.CompressedSize) - int64(e.OriginalSize)
	if diff < -3 || diff > 3 {
		return descriptor.Entry{}, false
	}
	return e, true
}

var adGCFormLiteral = []byte("AdGCForm")

// ScanAdGCForm searches data for the 8-byte literal "AdGCForm" and, at each
// hit, reads the 8 bytes immediately preceding it as a little-endian
// compression-parameter prefix: the first word's low 28 bits are
// original_size and its high 4 bits are compression_flag; the second
// word's low 8 bits are lookback_bits and the next 8 are repetition_bits.
// Raw containers (compression_flag == 0) use original_size as the payload
// length directly; compressed containers have their length determined by
// probing. Output names are prefixed "AdGCForm ".
func ScanAdGCForm(data []byte, source string) []descriptor.Entry {
	var found []descriptor.Entry

	i := 0
	for i < len(data) {
		hit := bytes.Index(data[i:], adGCFormLiteral)
		if hit == -1 {
			break
		}
		pos := i + hit

		if pos >= 8 {
			if e, ok := parseAdGCForm(data, pos, source); ok {
				found = append(found, e)
			}
		}

		i = pos + len(adGCFormLiteral)
	}

	return found
}

func parseAdGCForm(data []byte, literalOffset int, source string) (descriptor.Entry, bool) {
	prefixWord := binary.LittleEndian.Uint32(data[literalOffset-8 : literalOffset-4])
	infoWord := binary.LittleEndian.Uint32(data[literalOffset-4 : literalOffset])

	compressionFlag := uint8(prefixWord >> 28)
	originalSize := prefixWord & 0x0FFFFFFF
	lookbackBits := uint8(infoWord & 0xFF)
	repetitionBits := uint8((infoWord >> 8) & 0xFF)

	payloadOffset := literalOffset + len(adGCFormLiteral)
	if payloadOffset > len(data) {
		return descriptor.Entry{}, false
	}

	e := descriptor.Entry{
		Source:          source,
		CompressionFlag: compressionFlag,
		OriginalSize:    originalSize,
		LookbackBits:    lookbackBits,
		RepetitionBits:  repetitionBits,
		DiskOffset:      uint32(payloadOffset),
	}
	e.OutputNameOverride = "AdGCForm " + e.OutputName()

	if compressionFlag == descriptor.FlagRaw {
		e.CompressedSize = originalSize
		return e, true
	}

	consumed := lzss.ProbeCompressedSize(data, payloadOffset, int(originalSize), int(lookbackBits), int(repetitionBits))
	if consumed == -1 {
		return descriptor.Entry{}, false
	}
	size := consumed - payloadOffset
	if size < 0 || size > maxCompressedSizeBudget {
		return descriptor.Entry{}, false
	}
	e.CompressedSize = uint32(size)
	return e, true
}
