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
	"github.com/roeming/mssb-asset-recovery/descriptor"
	"github.com/roeming/mssb-asset-recovery/lzss"
	"github.com/roeming/mssb-asset-recovery/rangeset"
)

// sweepGaps walks data backward from its end in sector-sized strides,
// emitting synthetic descriptors for regions not already covered by
// occupied: a raw descriptor when the walk crosses back into an occupied
// range, and a compressed descriptor when a gap plausibly decompresses.
//
// The occupied range's disk_offset for the synthesized raw descriptor
// follows this package's reading of spec.md §4.6 ("synthesize a raw
// descriptor covering [prev_p, upper_segment_start)") rather than the
// original tool's literal field assignment, which leaves the raw entry's
// offset and size describing two different spans.
func sweepGaps(data []byte, source string, occupied *rangeset.Set) []descriptor.Entry {
	var out []descriptor.Entry

	const segmentSize = descriptor.Sector

	p := len(data)
	if rem := p % segmentSize; rem != 0 {
		p -= rem
	}
	upperSegmentStart := p
	prevP := p

	justWroteASegment := false

	for p >= 0 {
		wroteThisLoop := false

		if occupied.Contains(int64(p)) {
			beenInRangeAWhile := prevP == upperSegmentStart
			if !beenInRangeAWhile && !justWroteASegment {
				out = append(out, descriptor.Entry{
					Source:          source,
					LookbackBits:    0,
					RepetitionBits:  0,
					CompressionFlag: descriptor.FlagRaw,
					OriginalSize:    uint32(upperSegmentStart - prevP),
					DiskOffset:      uint32(prevP),
					CompressedSize:  uint32(upperSegmentStart - prevP),
				})
				wroteThisLoop = true
			}
			upperSegmentStart = p
		}

		inRangeNow := p == upperSegmentStart
		if !inRangeNow && lzss.TestDecompress(data, p, lzss.MinPlausibleBytes, lzss.DefaultLookbackBits, lzss.DefaultRepetitionBits) {
			compressedSize := upperSegmentStart - p
			// The probe decodes all of [p, upperSegmentStart), so bytes that
			// follow the stream inside that span (zero padding included) are
			// decoded too and originalSize can exceed the payload's length.
			originalSize := lzss.ProbeDecompressedSize(data, p, compressedSize, lzss.DefaultLookbackBits, lzss.DefaultRepetitionBits)
			out = append(out, descriptor.Entry{
				Source:          source,
				LookbackBits:    lzss.DefaultLookbackBits,
				RepetitionBits:  lzss.DefaultRepetitionBits,
				CompressionFlag: descriptor.FlagCompressed,
				OriginalSize:    uint32(originalSize),
				DiskOffset:      uint32(p),
				CompressedSize:  uint32(compressedSize),
			})
			upperSegmentStart = p
			wroteThisLoop = true
		}

		justWroteASegment = wroteThisLoop
		prevP = p
		p -= segmentSize
	}

	return out
}
