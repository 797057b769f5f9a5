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

// Package recovery composes the bit-level codec, fingerprint scanner, and
// range set into the asset-discovery engine: it scans an executable and its
// code/data archives, recursively decompresses and rescans relocatable code
// blobs, and sweeps the data archive's unreferenced space, producing five
// categorized sets of descriptor records ready for extraction.
package recovery

import (
	"context"
	"fmt"

	"github.com/roeming/mssb-asset-recovery/descriptor"
	"github.com/roeming/mssb-asset-recovery/lzss"
	"github.com/roeming/mssb-asset-recovery/rangeset"
	"github.com/roeming/mssb-asset-recovery/scanner"
)

// Inputs are the three memory-resident byte sources a recovery run scans.
// MainSource/CodeSource/DataSource are the container paths recorded on
// every descriptor found in (or attributed to) that container, so a later
// extraction step knows which blob to read from.
type Inputs struct {
	Main       []byte
	MainSource string

	Code       []byte
	CodeSource string

	Data       []byte
	DataSource string
}

// Result holds the five disjoint finding sets a run accumulates, sorted by
// disk offset.
type Result struct {
	Referenced   []descriptor.Entry // compressed descriptors reachable from main or a rel
	Raw          []descriptor.Entry // uncompressed descriptors
	Rels         []descriptor.Entry // code blobs reclassified out of the code archive
	AdGC         []descriptor.Entry // AdGCForm containers
	Unreferenced []descriptor.Entry // gap-sweep discoveries
}

const numPhases = 6

// Run scans in and returns the five finding sets. Cancellation is polled at
// phase boundaries; a cancelled run returns an error wrapping ctx.Err() and
// a nil Result.
func Run(ctx context.Context, in Inputs, logger Logger, progress ProgressSink) (*Result, error) {
	if logger == nil {
		logger = NopLogger
	}
	if progress == nil {
		progress = NopProgress
	}

	set := newEntrySet()
	phase := 0
	advance := func(label string) error {
		phase++
		progress.Progress(phase, numPhases)
		logger.Log("recovery: %s", label)
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("recovery: cancelled during %s: %w", label, err)
		}
		return nil
	}

	if err := advance("scanning main executable"); err != nil {
		return nil, err
	}
	for _, e := range scanner.ScanCompressed(in.Main, in.DataSource) {
		set.addCompressed(e)
	}
	for _, e := range scanner.ScanUncompressed(in.Main, in.DataSource) {
		set.addRaw(e)
	}

	if err := advance("extracting rels from code archive"); err != nil {
		return nil, err
	}
	rels, remaining := scanner.ExtractRels(in.Code, in.CodeSource, set.compressedSlice())
	set.replaceCompressed(remaining)
	for _, rel := range rels {
		set.addRel(rel)
	}

	if err := advance("rescanning decompressed rels"); err != nil {
		return nil, err
	}
	for _, rel := range rels {
		decoded, err := lzss.Decompress(in.Code, int(rel.DiskOffset), int(rel.OriginalSize), int(rel.LookbackBits), int(rel.RepetitionBits))
		if err != nil {
			logger.Log("recovery: rel at %#x failed to decompress during rescan: %v", rel.DiskOffset, err)
			continue
		}
		for _, e := range scanner.ScanCompressed(decoded, in.DataSource) {
			set.addCompressed(e)
		}
		for _, e := range scanner.ScanUncompressed(decoded, in.DataSource) {
			set.addRaw(e)
		}
	}

	if err := advance("scanning data archive for AdGCForm containers"); err != nil {
		return nil, err
	}
	for _, e := range scanner.ScanAdGCForm(in.Data, in.DataSource) {
		set.addAdGC(e)
	}

	if err := advance("building occupancy range set"); err != nil {
		return nil, err
	}
	occupied := rangeset.New()
	for _, e := range set.dataArchiveEntries() {
		occupied.Add(e.Range())
	}

	if err := advance("sweeping data archive for unreferenced payloads"); err != nil {
		return nil, err
	}
	for _, e := range sweepGaps(in.Data, in.DataSource, occupied) {
		set.addUnreferenced(e)
	}

	return set.result(), nil
}
