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
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/roeming/mssb-asset-recovery/descriptor"
	"github.com/roeming/mssb-asset-recovery/lzss"
)

// writeVersionFixture builds a minimal US-version data/US/ directory with a
// single compressed asset embedded in ZZZZ.dat and referenced from
// main.dol, plus an empty aaaa.dat code archive.
func writeVersionFixture(t *testing.T, root string) descriptor.Entry {
	t.Helper()

	payload := bytes.Repeat([]byte("recovered-baseball-bytes"), 8)
	compressed := lzss.Compress(payload, lzss.DefaultLookbackBits, lzss.DefaultRepetitionBits)

	entry := descriptor.Entry{
		RepetitionBits:  lzss.DefaultRepetitionBits,
		LookbackBits:    lzss.DefaultLookbackBits,
		CompressionFlag: descriptor.FlagCompressed,
		OriginalSize:    uint32(len(payload)),
		DiskOffset:      0x800,
		CompressedSize:  uint32(len(compressed)),
	}

	data := make([]byte, int(entry.Range().End))
	copy(data[0x800:], compressed)

	main := bytes.Repeat([]byte{0xFF}, 0x100)
	copy(main[0x1c:], []byte{0xC2, 0x33, 0x9F, 0x3D})
	main = append(main, entry.Serialize()...)

	inputDir := filepath.Join(root, "data", "US")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}

	writeFile(t, filepath.Join(inputDir, "main.dol"), main)
	writeFile(t, filepath.Join(inputDir, "aaaa.dat"), []byte{})
	writeFile(t, filepath.Join(inputDir, "ZZZZ.dat"), data)

	entry.Source = "ZZZZ.dat"
	return entry
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunExtractsReferencedEntryAndWritesManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeVersionFixture(t, root)

	manifest, err := Run(context.Background(), root, "US", Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(manifest.Referenced) != 1 {
		t.Fatalf("Referenced = %d entries, want 1 (%+v)", len(manifest.Referenced), manifest.Referenced)
	}

	outName := manifest.Referenced[0].OutputName()
	outPath := filepath.Join(root, "outputs", "US", folderReferenced, outName, outName)
	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if !bytes.Contains(got, []byte("recovered-baseball-bytes")) {
		t.Errorf("extracted file does not contain expected payload: %q", got)
	}

	manifestPath := filepath.Join(root, "outputs", "US", "FoundFiles.json")
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		t.Fatalf("read FoundFiles.json: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("parse FoundFiles.json: %v", err)
	}
	for _, key := range []string{"Rels", "Raw files", "Referenced files", "AdGCForms", "Unreferenced files"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("FoundFiles.json missing key %q", key)
		}
	}
}

func TestRunSkipsWhenAlreadyExtractedUnlessForced(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeVersionFixture(t, root)

	if _, err := Run(context.Background(), root, "US", Options{}); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	if _, err := Run(context.Background(), root, "US", Options{}); err == nil {
		t.Fatal("expected ErrAlreadyExtracted on second Run without Force")
	}

	if _, err := Run(context.Background(), root, "US", Options{Force: true}); err != nil {
		t.Fatalf("forced re-run: %v", err)
	}
}

func TestRunReportsInvalidInputsForMissingFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	if _, err := Run(context.Background(), root, "US", Options{}); err == nil {
		t.Fatal("expected an error for a version with no input files at all")
	}
}

func TestRunRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := Run(context.Background(), root, "NOT_A_VERSION", Options{}); err == nil {
		t.Fatal("expected an error for an unknown version")
	}
}
