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
	"path/filepath"

	"github.com/roeming/mssb-asset-recovery/descriptor"
)

// Manifest is the in-memory and on-disk (FoundFiles.json) form of a
// version's five finding sets.
type Manifest struct {
	Rels         []descriptor.Entry `json:"Rels"`
	Raw          []descriptor.Entry `json:"Raw files"`
	Referenced   []descriptor.Entry `json:"Referenced files"`
	AdGC         []descriptor.Entry `json:"AdGCForms"`
	Unreferenced []descriptor.Entry `json:"Unreferenced files"`
}

// writeManifest writes m as FoundFiles.json at path, creating its parent
// directory as needed.
func writeManifest(path string, m *Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil { //nolint:gosec // manifest is non-sensitive recovery output
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
