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
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// knownFileEntry mirrors one element of FileNames.json: a disk offset
// (given as a "0x..."-prefixed hex string) and the display name it should
// rename the extracted descriptor's output to.
type knownFileEntry struct {
	Location string `json:"Location"`
	Name     string `json:"Name"`
}

// loadKnownFiles reads the optional FileNames.json sidecar at path, if it
// exists, returning an empty map (not an error) when the sidecar is absent.
func loadKnownFiles(path string) (map[uint32]string, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path is derived from the version's own input directory
	if err != nil {
		if os.IsNotExist(err) {
			return map[uint32]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var entries []knownFileEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	known := make(map[uint32]string, len(entries))
	for _, e := range entries {
		offset, err := strconv.ParseUint(trimHexPrefix(e.Location), 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parse %s: location %q: %w", path, e.Location, err)
		}
		known[uint32(offset)] = e.Name
	}

	return known, nil
}

// trimHexPrefix strips a leading "0x"/"0X" from s, if present.
func trimHexPrefix(s string) string {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
