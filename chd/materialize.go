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

package chd

import (
	"fmt"
	"io"
)

// materializeChunk bounds how much of the disc is decompressed per ReadAt
// call while draining a CHD's data track into memory.
const materializeChunk = 1 << 20

// Materialize decompresses every sector of path's first data track into a
// single in-memory byte slice, in logical disc order. GameCube discs carry
// their entire addressable image in one data track, so the scanner and
// recovery driver can treat the result exactly like a plain .iso read from
// disk.
func Materialize(path string) ([]byte, error) {
	disc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CHD: %w", err)
	}
	defer func() { _ = disc.Close() }()

	size := disc.DataTrackSize()
	out := make([]byte, size)

	reader := disc.DataTrackSectorReader()
	if err := readAllInto(reader, out); err != nil {
		return nil, fmt.Errorf("materialize CHD data track: %w", err)
	}

	return out, nil
}

// readAllInto fills dst by repeatedly calling r.ReadAt in materializeChunk
// windows, tolerating io.EOF only once the destination is exhausted.
func readAllInto(r io.ReaderAt, dst []byte) error {
	var off int64
	for off < int64(len(dst)) {
		end := off + materializeChunk
		if end > int64(len(dst)) {
			end = int64(len(dst))
		}

		n, err := r.ReadAt(dst[off:end], off)
		off += int64(n)

		if err == io.EOF && off < int64(len(dst)) {
			return io.ErrUnexpectedEOF
		}
		if err != nil && err != io.EOF {
			return err
		}
		if n == 0 {
			break
		}
	}
	return nil
}
