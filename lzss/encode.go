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

import "github.com/roeming/mssb-asset-recovery/bitio"

// Compress encodes src with a greedy longest-match encoder. It exists for
// round-trip testing of Decompress, not as a production encoding path: the
// disc image is never re-authored by this tool.
func Compress(src []byte, lookbackBits, repetitionBits int) []byte {
	maxLookback := 1 << uint(lookbackBits)
	maxRun := (1 << uint(repetitionBits)) - 1
	minRep := MinRepetition(lookbackBits, repetitionBits)

	bb := bitio.NewBuffer(nil, 0)

	i := 0
	for i < len(src) {
		bestLen, bestDist := 0, 0

		windowStart := i - maxLookback
		if windowStart < 0 {
			windowStart = 0
		}
		for start := windowStart; start < i; start++ {
			length := matchLength(src, start, i, maxRun+minRep)
			if length >= minRep && length > bestLen {
				bestLen = length
				bestDist = i - 1 - start
			}
		}

		if bestLen >= minRep {
			bb.WriteBits(flagBackref, flagBits)
			bb.WriteBits(uint32(bestDist), uint(lookbackBits))
			bb.WriteBits(uint32(bestLen-minRep), uint(repetitionBits))
			i += bestLen
			continue
		}

		bb.WriteBits(flagLiteral, flagBits)
		bb.WriteBits(uint32(src[i]), literalBits)
		i++
	}

	bb.Finish()
	return bb.Bytes()
}

// matchLength returns how many bytes starting at cur match the bytes
// starting at start (cur > start), allowing the match to run into
// not-yet-emitted output the way a back-reference copy does, capped at max.
func matchLength(src []byte, start, cur, max int) int {
	n := 0
	for n < max && cur+n < len(src) && src[start+n] == src[cur+n] {
		n++
	}
	return n
}
