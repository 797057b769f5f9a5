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

import "errors"

// ErrInvalidInputs indicates that main.dol, the code archive, or the data
// archive could not be resolved for a version, loose or archive-packed.
// The run for that version is skipped rather than aborting a batch.
var ErrInvalidInputs = errors.New("invalid inputs")
