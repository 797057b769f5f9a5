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

import "testing"

func TestNewVersionPathsPerVersionFileNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version  string
		wantCode string
		wantData string
	}{
		{"US", "aaaa.dat", "ZZZZ.dat"},
		{"JP", "aaaa.dat", "ZZZZ.dat"},
		{"EU", "aaaa.dat", "ZZZZ.dat"},
		{"DEMO", "aaaa.dat", "ZZZZ.dat"},
		{"FS03", "fqp.dat", "fq.dat"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			paths, err := NewVersionPaths("/root", tt.version)
			if err != nil {
				t.Fatalf("NewVersionPaths: %v", err)
			}
			if paths.CodeName != tt.wantCode {
				t.Errorf("CodeName = %q, want %q", paths.CodeName, tt.wantCode)
			}
			if paths.DataName != tt.wantData {
				t.Errorf("DataName = %q, want %q", paths.DataName, tt.wantData)
			}
			if paths.MainName != "main.dol" {
				t.Errorf("MainName = %q, want main.dol", paths.MainName)
			}
		})
	}
}

func TestNewVersionPathsRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	if _, err := NewVersionPaths("/root", "PAL2"); err == nil {
		t.Fatal("expected an error for an unrecognized version")
	}
}
