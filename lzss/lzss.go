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

// Package lzss implements the parametric LZSS-family codec used to compress
// the disc data and code archives: one flag bit per token selects a literal
// byte or a back-reference, with the distance and length field widths
// configurable per stream (see DefaultLookbackBits/DefaultRepetitionBits).
package lzss

import (
	"errors"
	"fmt"

	"github.com/roeming/mssb-asset-recovery/bitio"
)

// Default field widths, used by most streams in the disc image.
const (
	DefaultLookbackBits   = 11
	DefaultRepetitionBits = 4
)

const (
	flagBits    = 1
	flagBackref = 0
	flagLiteral = 1
	literalBits = 8
)

// MinPlausibleBytes is the minimum simulated output length TestDecompress
// requires before treating a candidate offset as a plausible compressed
// payload rather than a short random match; used by the gap sweep and rel
// extraction.
const MinPlausibleBytes = 0x200

// ErrIllegalSequence indicates a back-reference pointed at output that had
// not yet been produced.
var ErrIllegalSequence = errors.New("lzss: illegal back-reference sequence")

// MinRepetition returns the minimum back-reference length at which a token
// is cheaper than emitting the same bytes as literals: ceil((lookbackBits +
// repetitionBits + 1) / 9).
func MinRepetition(lookbackBits, repetitionBits int) int {
	return ceilDiv(lookbackBits+repetitionBits+flagBits, flagBits+literalBits)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Decompress decodes expectedSize bytes of the stream starting at offset in
// buf, using the given field widths. It returns ErrShortRead if the bit
// buffer runs out before expectedSize bytes are produced, and
// ErrIllegalSequence if a back-reference points at output not yet written.
func Decompress(buf []byte, offset, expectedSize, lookbackBits, repetitionBits int) ([]byte, error) {
	bb := bitio.NewBuffer(buf, offset)
	minRep := MinRepetition(lookbackBits, repetitionBits)

	out := make([]byte, 0, expectedSize)
	for len(out) < expectedSize {
		flag, err := bb.ReadBits(flagBits)
		if err != nil {
			return nil, err
		}

		if flag == flagLiteral {
			b, err := bb.ReadBits(literalBits)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(b))
			continue
		}

		lookback, err := bb.ReadBits(uint(lookbackBits))
		if err != nil {
			return nil, err
		}
		if int(lookback) >= len(out) {
			return nil, fmt.Errorf("%w: lookback %d at output length %d", ErrIllegalSequence, lookback, len(out))
		}

		lengthCode, err := bb.ReadBits(uint(repetitionBits))
		if err != nil {
			return nil, err
		}
		count := int(lengthCode) + minRep

		srcIndex := len(out) - 1 - int(lookback)
		for ; count > 0; count-- {
			out = append(out, out[srcIndex])
			srcIndex++
		}
	}

	return out, nil
}

// ProbeCompressedSize simulates decompression, tracking only the output
// length, and returns the number of bytes consumed from buf once the
// simulated output reaches expectedSize. It returns -1 (never an error) if
// any token is malformed or the stream underruns — callers never see
// ErrShortRead/ErrIllegalSequence from this function.
func ProbeCompressedSize(buf []byte, offset, expectedSize, lookbackBits, repetitionBits int) int {
	bb := bitio.NewBuffer(buf, offset)
	minRep := MinRepetition(lookbackBits, repetitionBits)

	size := 0
	for size < expectedSize {
		flag, err := bb.ReadBits(flagBits)
		if err != nil {
			return -1
		}

		if flag == flagLiteral {
			if _, err := bb.ReadBits(literalBits); err != nil {
				return -1
			}
			size++
			continue
		}

		lookback, err := bb.ReadBits(uint(lookbackBits))
		if err != nil {
			return -1
		}
		if int(lookback) >= size {
			return -1
		}

		lengthCode, err := bb.ReadBits(uint(repetitionBits))
		if err != nil {
			return -1
		}
		size += int(lengthCode) + minRep
	}

	return bb.ByteOffset()
}

// ProbeDecompressedSize simulates decompression against a slice of buf
// bounded by compressedSize bytes, so the bit buffer cannot read past the
// region believed to hold compressed data. It returns the simulated output
// length reached when the slice is exhausted or a back-reference points
// past the currently-simulated output (whichever comes first), rather than
// treating either as an error.
func ProbeDecompressedSize(buf []byte, offset, compressedSize, lookbackBits, repetitionBits int) int {
	end := offset + compressedSize
	if end > len(buf) {
		end = len(buf)
	}
	bb := bitio.NewBuffer(buf[:end], offset)
	minRep := MinRepetition(lookbackBits, repetitionBits)

	size := 0
	for {
		flag, err := bb.ReadBits(flagBits)
		if err != nil {
			return size
		}

		if flag == flagLiteral {
			if _, err := bb.ReadBits(literalBits); err != nil {
				return size
			}
			size++
			continue
		}

		lookback, err := bb.ReadBits(uint(lookbackBits))
		if err != nil {
			return size
		}
		if int(lookback) >= size {
			return size
		}

		lengthCode, err := bb.ReadBits(uint(repetitionBits))
		if err != nil {
			return size
		}
		size += int(lengthCode) + minRep
	}
}

// TestDecompress reports whether ProbeCompressedSize succeeds for at least
// minimumBytes of simulated output without the stream being malformed. This
// is the probe used for structural gap-sweeping.
func TestDecompress(buf []byte, offset, minimumBytes, lookbackBits, repetitionBits int) bool {
	return ProbeCompressedSize(buf, offset, minimumBytes, lookbackBits, repetitionBits) != -1
}
