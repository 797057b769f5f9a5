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
	"fmt"
	"path/filepath"
)

// Versions lists every release this tool knows how to recover assets from.
var Versions = []string{"US", "JP", "EU", "DEMO", "FS03"}

const mainDOLName = "main.dol"

// codeAndDataNames returns the per-version code archive and data archive
// file names. FS03 is the only release that deviates from the common
// aaaa.dat/ZZZZ.dat naming.
func codeAndDataNames(version string) (code, data string, err error) {
	switch version {
	case "US", "JP", "EU", "DEMO":
		return "aaaa.dat", "ZZZZ.dat", nil
	case "FS03":
		return "fqp.dat", "fq.dat", nil
	default:
		return "", "", fmt.Errorf("%w: unknown version %q", ErrInvalidInputs, version)
	}
}

// VersionPaths holds the resolved input/output directory layout for a
// single version's run.
type VersionPaths struct {
	Version string

	InputDir  string // data/<VERSION>
	OutputDir string // outputs/<VERSION>

	MainName string // main.dol
	CodeName string // aaaa.dat or fqp.dat
	DataName string // ZZZZ.dat or fq.dat

	KnownFilesPath string // data/<VERSION>/FileNames.json
	FoundFilesPath string // outputs/<VERSION>/FoundFiles.json
}

// NewVersionPaths lays out the input/output paths for version under root
// (the directory containing data/ and outputs/).
func NewVersionPaths(root, version string) (VersionPaths, error) {
	code, data, err := codeAndDataNames(version)
	if err != nil {
		return VersionPaths{}, err
	}

	inputDir := filepath.Join(root, "data", version)
	outputDir := filepath.Join(root, "outputs", version)

	return VersionPaths{
		Version:        version,
		InputDir:       inputDir,
		OutputDir:      outputDir,
		MainName:       mainDOLName,
		CodeName:       code,
		DataName:       data,
		KnownFilesPath: filepath.Join(inputDir, "FileNames.json"),
		FoundFilesPath: filepath.Join(outputDir, "FoundFiles.json"),
	}, nil
}
