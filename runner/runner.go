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

// Package runner drives one version's asset recovery end to end: resolving
// loose, archive-packed, or CHD-backed inputs, running the recovery driver,
// extracting every descriptor to disk, and writing the FoundFiles.json
// manifest.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roeming/mssb-asset-recovery/filecache"
	"github.com/roeming/mssb-asset-recovery/recovery"
)

// ErrAlreadyExtracted is returned by Run when the version's FoundFiles.json
// already exists and Options.Force is false.
var ErrAlreadyExtracted = errors.New("version already extracted")

// Options configures a single Run.
type Options struct {
	// Force re-runs extraction even if FoundFiles.json already exists.
	Force bool

	// Cache, if non-nil, is shared across versions in a batch run so a
	// container packed once (e.g. a single archive holding several
	// versions) is not re-read per version.
	Cache *filecache.Cache

	Logger   recovery.Logger
	Progress recovery.ProgressSink

	// Bundle, if true, additionally writes a .tar.xz of outputs/<VERSION>
	// next to it (outputs/<VERSION>.tar.xz) once extraction succeeds.
	Bundle bool
}

// Run resolves version's inputs under root, runs the recovery driver, and
// extracts every descriptor to outputs/<version>/, writing FoundFiles.json.
// A version whose FoundFiles.json already exists is skipped with
// ErrAlreadyExtracted unless opts.Force is set.
func Run(ctx context.Context, root, version string, opts Options) (*Manifest, error) {
	logger := opts.Logger
	if logger == nil {
		logger = recovery.NopLogger
	}
	progress := opts.Progress
	if progress == nil {
		progress = recovery.NopProgress
	}

	paths, err := NewVersionPaths(root, version)
	if err != nil {
		return nil, err
	}

	if !opts.Force {
		if _, err := os.Stat(paths.FoundFilesPath); err == nil {
			return nil, fmt.Errorf("%s: %w", version, ErrAlreadyExtracted)
		}
	}

	in, err := OpenInputs(paths, opts.Cache)
	if err != nil {
		return nil, err
	}

	known, err := loadKnownFiles(paths.KnownFilesPath)
	if err != nil {
		return nil, err
	}

	result, err := recovery.Run(ctx, in, logger, progress)
	if err != nil {
		return nil, fmt.Errorf("recovery run: %w", err)
	}

	ec := &extractionContext{
		outputDir: paths.OutputDir,
		sources: map[string][]byte{
			in.MainSource: in.Main,
			in.CodeSource: in.Code,
			in.DataSource: in.Data,
		},
		codeSource: in.CodeSource,
		known:      known,
		logger:     logger,
		progress:   progress,
	}

	manifest := &Manifest{}
	if err := extractAll(ctx, ec, result, manifest); err != nil {
		return nil, err
	}

	if err := writeManifest(paths.FoundFilesPath, manifest); err != nil {
		return nil, err
	}

	if opts.Bundle {
		bundlePath := paths.OutputDir + ".tar.xz"
		if err := BundleOutputs(paths.OutputDir, bundlePath); err != nil {
			return nil, fmt.Errorf("bundle outputs: %w", err)
		}
	}

	return manifest, nil
}
