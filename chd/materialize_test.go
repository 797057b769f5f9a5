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
	"bytes"
	"errors"
	"io"
	"testing"
)

// fakeReaderAt serves ReadAt from an in-memory source, splitting each call
// into at most maxPerCall bytes to exercise readAllInto's looping.
type fakeReaderAt struct {
	data       []byte
	maxPerCall int
}

func (f *fakeReaderAt) ReadAt(dst []byte, off int64) (int, error) {
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(dst, f.data[off:])
	if n > f.maxPerCall {
		n = f.maxPerCall
	}
	var err error
	if int64(n)+off >= int64(len(f.data)) {
		err = io.EOF
	}
	return n, err
}

func TestReadAllIntoDrainsSmallerReads(t *testing.T) {
	t.Parallel()

	source := bytes.Repeat([]byte{0xAB, 0xCD}, 1000)
	reader := &fakeReaderAt{data: source, maxPerCall: 7}

	dst := make([]byte, len(source))
	if err := readAllInto(reader, dst); err != nil {
		t.Fatalf("readAllInto: %v", err)
	}

	if !bytes.Equal(dst, source) {
		t.Error("readAllInto did not reproduce the source bytes exactly")
	}
}

func TestReadAllIntoPropagatesNonEOFErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reader := errReaderAt{err: boom}

	dst := make([]byte, 16)
	if err := readAllInto(reader, dst); !errors.Is(err, boom) {
		t.Fatalf("expected boom error, got %v", err)
	}
}

type errReaderAt struct{ err error }

func (e errReaderAt) ReadAt(_ []byte, _ int64) (int, error) {
	return 0, e.err
}
