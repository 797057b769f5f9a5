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

package runner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLooksLikeGCBootAcceptsValidMagic(t *testing.T) {
	t.Parallel()

	main := make([]byte, 0x100)
	copy(main[gcBootMagicOffset:], gcBootMagic)

	if !looksLikeGCBoot(main) {
		t.Fatal("expected a header with the GameCube boot magic to be accepted")
	}
}

func TestLooksLikeGCBootRejectsWrongMagic(t *testing.T) {
	t.Parallel()

	main := make([]byte, 0x100)
	if looksLikeGCBoot(main) {
		t.Fatal("expected an all-zero header to be rejected")
	}
}

func TestLooksLikeGCBootRejectsTruncatedHeader(t *testing.T) {
	t.Parallel()

	if looksLikeGCBoot(make([]byte, 4)) {
		t.Fatal("expected a too-short header to be rejected")
	}
}

func TestOpenInputsRejectsMainWithoutBootMagic(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	inputDir := filepath.Join(root, "data", "US")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "main.dol"), make([]byte, 64), 0o644); err != nil {
		t.Fatalf("write main.dol: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "aaaa.dat"), []byte{}, 0o644); err != nil {
		t.Fatalf("write aaaa.dat: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "ZZZZ.dat"), []byte{}, 0o644); err != nil {
		t.Fatalf("write ZZZZ.dat: %v", err)
	}

	paths, err := NewVersionPaths(root, "US")
	if err != nil {
		t.Fatalf("NewVersionPaths: %v", err)
	}

	_, err = OpenInputs(paths, nil)
	if !errors.Is(err, ErrInvalidInputs) {
		t.Fatalf("OpenInputs error = %v, want wrapping ErrInvalidInputs", err)
	}
}
