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
	"github.com/roeming/mssb-asset-recovery/descriptor"
	"github.com/roeming/mssb-asset-recovery/lzss"
)

// defaultLookbackBits and defaultRepetitionBits are the field widths used
// when probing the code archive for rel boundaries, matching lzss's
// package-level defaults.
const (
	defaultLookbackBits   = 11
	defaultRepetitionBits = 4
)

// ExtractRels walks every sector-aligned offset of the code archive and,
// for each one that plausibly starts a compressed stream, looks for a
// descriptor in compressed whose disk_offset matches. A match is
// reclassified as a rel (its source path rewritten to codeSource) once its
// declared original_size also probes successfully; everything not
// reclassified is returned unchanged as the remaining compressed set.
func ExtractRels(codeArchive []byte, codeSource string, compressed []descriptor.Entry) (rels, remaining []descriptor.Entry) {
	byOffset := make(map[uint32]int, len(compressed))
	for i, e := range compressed {
		byOffset[e.DiskOffset] = i
	}

	reclassified := make(map[int]bool)

	for offset := 0; offset+descriptor.Sector <= len(codeArchive); offset += descriptor.Sector {
		if !lzss.TestDecompress(codeArchive, offset, lzss.MinPlausibleBytes, defaultLookbackBits, defaultRepetitionBits) {
			continue
		}

		idx, ok := byOffset[uint32(offset)]
		if !ok || reclassified[idx] {
			continue
		}
		d := compressed[idx]

		if !lzss.TestDecompress(codeArchive, offset, int(d.OriginalSize), int(d.LookbackBits), int(d.RepetitionBits)) {
			continue
		}

		d.Source = codeSource
		rels = append(rels, d)
		reclassified[idx] = true
	}

	for i, e := range compressed {
		if !reclassified[i] {
			remaining = append(remaining, e)
		}
	}

	return rels, remaining
}
