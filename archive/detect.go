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

package archive

import (
	"path"
	"strings"
)

// IsCandidateName reports whether filename's base name matches one of the
// candidate input file names (main.dol, a code archive name, a data
// archive name), case-insensitively.
func IsCandidateName(filename string, candidates []string) bool {
	base := strings.ToLower(path.Base(filename))
	for _, c := range candidates {
		if base == strings.ToLower(c) {
			return true
		}
	}
	return false
}

// FindInputFile scans arc's file list and returns the internal path of the
// first entry whose base name matches one of candidates (the version's
// main.dol / code archive / data archive file name).
func FindInputFile(arc Archive, candidates []string) (string, error) {
	files, err := arc.List()
	if err != nil {
		return "", err
	}

	for _, file := range files {
		if IsCandidateName(file.Name, candidates) {
			return file.Name, nil
		}
	}

	return "", NoMatchingFileError{Archive: "archive", Candidates: candidates}
}
