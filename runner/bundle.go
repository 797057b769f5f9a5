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
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// BundleOutputs writes a .tar.xz archive of outputDir (a version's
// outputs/<VERSION> tree, including FoundFiles.json) to bundlePath, for
// archival transfer of a recovered version's assets in one file.
func BundleOutputs(outputDir, bundlePath string) error {
	out, err := os.Create(bundlePath) //nolint:gosec // bundlePath is operator-supplied, same trust level as outputDir
	if err != nil {
		return fmt.Errorf("create bundle %s: %w", bundlePath, err)
	}
	defer func() { _ = out.Close() }()

	xzw, err := xz.NewWriter(out)
	if err != nil {
		return fmt.Errorf("init xz writer: %w", err)
	}
	defer func() { _ = xzw.Close() }()

	tw := tar.NewWriter(xzw)
	defer func() { _ = tw.Close() }()

	if err := addTree(tw, outputDir); err != nil {
		return fmt.Errorf("bundle %s: %w", outputDir, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finalize tar: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("finalize xz stream: %w", err)
	}

	return nil
}

// addTree walks root and writes every regular file into tw with a path
// relative to root.
func addTree(tw *tar.Writer, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return fmt.Errorf("build tar header for %s: %w", path, err)
		}
		header.Name = filepath.ToSlash(rel)

		if err := tw.WriteHeader(header); err != nil {
			return fmt.Errorf("write tar header for %s: %w", path, err)
		}

		f, err := os.Open(path) //nolint:gosec // path comes from walking our own output tree
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()

		if _, err := io.Copy(tw, f); err != nil { //nolint:gosec // bounded by recovered asset sizes, not attacker input
			return fmt.Errorf("write %s into tar: %w", path, err)
		}

		return nil
	})
}
