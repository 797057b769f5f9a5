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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roeming/mssb-asset-recovery/archive"
	"github.com/roeming/mssb-asset-recovery/chd"
	"github.com/roeming/mssb-asset-recovery/filecache"
	"github.com/roeming/mssb-asset-recovery/recovery"
)

// archiveSiblingExtensions are tried, in order, for a version's packed
// container when the loose input files are absent.
var archiveSiblingExtensions = []string{".zip", ".7z", ".rar"}

// gcBootMagicOffset and gcBootMagic are the GameCube disc boot-header magic
// word location and value, read before fingerprint scanning begins so a
// misnamed or unrelated main.dol fails fast with a clear reason instead of
// simply yielding zero descriptors.
const gcBootMagicOffset = 0x1c

var gcBootMagic = []byte{0xC2, 0x33, 0x9F, 0x3D}

func looksLikeGCBoot(main []byte) bool {
	if len(main) < gcBootMagicOffset+len(gcBootMagic) {
		return false
	}
	magic := main[gcBootMagicOffset : gcBootMagicOffset+len(gcBootMagic)]
	for i, b := range gcBootMagic {
		if magic[i] != b {
			return false
		}
	}
	return true
}

// OpenInputs resolves main.dol, the code archive, and the data archive for
// paths, reading each from a loose file, (data archive only) a materialized
// loose CHD disc image, or a packed sibling archive, in that preference order.
// Resolved bytes are read through cache so repeated "-version ALL" runs that
// share a container do not re-decode it per version.
func OpenInputs(paths VersionPaths, cache *filecache.Cache) (recovery.Inputs, error) {
	main, mainSource, err := resolveInput(paths, []string{paths.MainName}, cache)
	if err != nil {
		return recovery.Inputs{}, fmt.Errorf("resolve main.dol: %w", err)
	}
	if !looksLikeGCBoot(main) {
		return recovery.Inputs{}, fmt.Errorf("%w: %s does not carry the GameCube boot magic at offset 0x1c",
			ErrInvalidInputs, paths.MainName)
	}

	code, codeSource, err := resolveInput(paths, []string{paths.CodeName}, cache)
	if err != nil {
		return recovery.Inputs{}, fmt.Errorf("resolve code archive: %w", err)
	}

	chdName := strings.TrimSuffix(paths.DataName, filepath.Ext(paths.DataName)) + ".chd"
	data, dataSource, err := resolveInput(paths, []string{paths.DataName, chdName}, cache)
	if err != nil {
		return recovery.Inputs{}, fmt.Errorf("resolve data archive: %w", err)
	}

	return recovery.Inputs{
		Main:       main,
		MainSource: mainSource,
		Code:       code,
		CodeSource: codeSource,
		Data:       data,
		DataSource: dataSource,
	}, nil
}

// resolveInput tries, in order: a loose file named (the first of)
// candidates directly in paths.InputDir; that same loose file materialized
// from a .chd disc image if its name ends in .chd; and finally each packed
// sibling archive (data/<VERSION>.zip, .7z, .rar) searched for any of
// candidates. Returns the resolved bytes and a source label suitable for
// descriptor.Entry.Source / descriptor output naming.
func resolveInput(paths VersionPaths, candidates []string, cache *filecache.Cache) ([]byte, string, error) {
	for _, name := range candidates {
		loosePath := filepath.Join(paths.InputDir, name)

		if strings.EqualFold(filepath.Ext(name), ".chd") {
			if _, err := os.Stat(loosePath); err == nil {
				data, err := cachedMaterializeCHD(loosePath, cache)
				if err != nil {
					return nil, "", err
				}
				return data, name, nil
			}
			continue
		}

		if _, err := os.Stat(loosePath); err == nil {
			data, err := cachedReadFile(loosePath, cache)
			if err != nil {
				return nil, "", err
			}
			return data, name, nil
		}
	}

	for _, ext := range archiveSiblingExtensions {
		archivePath := filepath.Join(filepath.Dir(paths.InputDir), paths.Version+ext)
		if _, err := os.Stat(archivePath); err != nil {
			continue
		}

		data, internalPath, err := cachedReadFromArchive(archivePath, candidates, cache)
		if err != nil {
			return nil, "", err
		}
		return data, internalPath, nil
	}

	return nil, "", fmt.Errorf("%w: none of %v found loose under %q or packed alongside it",
		ErrInvalidInputs, candidates, paths.InputDir)
}

// cachedReadFile reads path's full contents, through cache when non-nil.
func cachedReadFile(path string, cache *filecache.Cache) ([]byte, error) {
	if cache != nil {
		if data, ok := cache.Get(path); ok {
			return data, nil
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is a resolved version input, not arbitrary user input
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}

	if cache != nil {
		cache.Put(path, data)
	}
	return data, nil
}

// cachedMaterializeCHD decompresses path's data track, through cache when
// non-nil.
func cachedMaterializeCHD(path string, cache *filecache.Cache) ([]byte, error) {
	if cache != nil {
		if data, ok := cache.Get(path); ok {
			return data, nil
		}
	}

	data, err := chd.Materialize(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}

	if cache != nil {
		cache.Put(path, data)
	}
	return data, nil
}

// cachedReadFromArchive finds the first of candidates inside archivePath
// and reads it fully, through cache when non-nil. The cache key is the
// archive path joined with the internal path so distinct members of the
// same archive do not collide.
func cachedReadFromArchive(archivePath string, candidates []string, cache *filecache.Cache) (data []byte, internalPath string, err error) {
	arc, err := archive.Open(archivePath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: open archive %q: %w", ErrInvalidInputs, archivePath, err)
	}
	defer func() { _ = arc.Close() }()

	internalPath, err = archive.FindInputFile(arc, candidates)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidInputs, err)
	}

	cacheKey := archivePath + "!" + internalPath
	if cache != nil {
		if cached, ok := cache.Get(cacheKey); ok {
			return cached, internalPath, nil
		}
	}

	reader, size, err := arc.Open(internalPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: open %q in archive: %w", ErrInvalidInputs, internalPath, err)
	}
	defer func() { _ = reader.Close() }()

	buf := make([]byte, size)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return nil, "", fmt.Errorf("%w: read %q from archive: %w", ErrInvalidInputs, internalPath, err)
	}

	if cache != nil {
		cache.Put(cacheKey, buf)
	}
	return buf, internalPath, nil
}
