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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roeming/mssb-asset-recovery/descriptor"
	"github.com/roeming/mssb-asset-recovery/lzss"
	"github.com/roeming/mssb-asset-recovery/recovery"
)

// The folder* constants name the output subdirectory for each finding set,
// matching the keys used in FoundFiles.json.
const (
	folderRels         = "Rels"
	folderRaw          = "Raw files"
	folderReferenced   = "Referenced files"
	folderAdGC         = "AdGCForms"
	folderUnreferenced = "Unreferenced files"
)

// extractionContext bundles the per-run state every category extraction
// needs: the byte sources keyed by descriptor.Entry.Source, the
// FileNames.json rename table, and the capabilities injected into Run.
type extractionContext struct {
	outputDir  string
	sources    map[string][]byte
	codeSource string
	known      map[uint32]string
	logger     recovery.Logger
	progress   recovery.ProgressSink
}

// extractCategory writes every extractable entry in entries to
// ctx.outputDir/folder/<output name>/<output name>, renaming per
// ctx.known where applicable, and returns the entries that survived
// (decompression or raw-slice failures drop an entry from its set, mirroring
// spec.md §7's extraction-time error policy).
func extractCategory(ctx context.Context, ec *extractionContext, folder string, entries []descriptor.Entry) ([]descriptor.Entry, error) {
	survivors := make([]descriptor.Entry, 0, len(entries))

	for i, entry := range entries {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extracting %s: %w", folder, ctx.Err())
		}
		ec.progress.Progress(i, len(entries))

		out, ok := extractOne(ec, entry)
		if !ok {
			ec.logger.Log("dropping %s (extraction failed): %s", entry.OutputName(), folder)
			continue
		}

		if out != nil {
			renamed := applyKnownName(ec, entry)
			if err := writeEntryFile(ec.outputDir, folder, renamed, out); err != nil {
				return nil, err
			}
			survivors = append(survivors, renamed)
		} else {
			survivors = append(survivors, entry)
		}
	}

	return survivors, nil
}

// extractAll runs extractCategory over all five finding sets in result,
// populating manifest with the survivors of each.
func extractAll(ctx context.Context, ec *extractionContext, result *recovery.Result, manifest *Manifest) error {
	categories := []struct {
		folder  string
		entries []descriptor.Entry
		dest    *[]descriptor.Entry
	}{
		{folderRels, result.Rels, &manifest.Rels},
		{folderRaw, result.Raw, &manifest.Raw},
		{folderReferenced, result.Referenced, &manifest.Referenced},
		{folderAdGC, result.AdGC, &manifest.AdGC},
		{folderUnreferenced, result.Unreferenced, &manifest.Unreferenced},
	}

	for _, cat := range categories {
		ec.logger.Log("extracting %s (%d entries)", cat.folder, len(cat.entries))

		survivors, err := extractCategory(ctx, ec, cat.folder, cat.entries)
		if err != nil {
			return err
		}
		*cat.dest = survivors
	}

	return nil
}

// extractOne decompresses or raw-slices entry's payload from its source
// bytes. Returns (nil, true) for a zero-length descriptor (nothing to
// write, but the descriptor is kept), (data, true) on success, and
// (nil, false) when the payload could not be recovered.
func extractOne(ec *extractionContext, entry descriptor.Entry) ([]byte, bool) {
	if entry.OriginalSize == 0 {
		return nil, true
	}

	source, ok := ec.sources[entry.Source]
	if !ok {
		return nil, false
	}

	if entry.CompressionFlag == descriptor.FlagCompressed {
		out, err := lzss.Decompress(source, int(entry.DiskOffset), int(entry.OriginalSize),
			int(entry.LookbackBits), int(entry.RepetitionBits))
		if err != nil {
			return nil, false
		}
		return out, true
	}

	start := int64(entry.DiskOffset)
	end := start + int64(entry.OriginalSize)
	if start < 0 || end > int64(len(source)) {
		return nil, false
	}

	return source[start:end], true
}

// applyKnownName renames entry per the FileNames.json sidecar, mirroring
// search_game: the rename never applies to entries sourced from the code
// archive (rels keep their synthesized name).
func applyKnownName(ec *extractionContext, entry descriptor.Entry) descriptor.Entry {
	if entry.Source == ec.codeSource {
		return entry
	}
	if name, ok := ec.known[entry.DiskOffset]; ok {
		entry.OutputNameOverride = name
	}
	return entry
}

// writeEntryFile writes data to outputDir/folder/<name>/<name>, where name
// is entry.OutputName().
func writeEntryFile(outputDir, folder string, entry descriptor.Entry, data []byte) error {
	name := entry.OutputName()
	dir := filepath.Join(outputDir, folder, name)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // recovered asset bytes, non-sensitive
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
