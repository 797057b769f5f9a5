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

package descriptor

import "encoding/json"

// wire mirrors the exact field names FoundFiles.json uses for every array
// element, so the output is consumable by the original tooling's sidecar
// and downstream scripts.
type wire struct {
	Input           string `json:"Input"`
	Output          string `json:"Output"`
	LookbackBit     uint8  `json:"lookback_bit"`
	RepetitionBit   uint8  `json:"repetition_bit"`
	OriginalSize    uint32 `json:"original_size"`
	Offset          uint32 `json:"offset"`
	CompressedSize  uint32 `json:"compressed_size"`
	CompressionFlag uint8  `json:"compression_flag"`
	FooterSize      uint32 `json:"footerSize"`
}

// MarshalJSON emits the entry under the wire field names.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{
		Input:           e.Source,
		Output:          e.OutputName(),
		LookbackBit:     e.LookbackBits,
		RepetitionBit:   e.RepetitionBits,
		OriginalSize:    e.OriginalSize,
		Offset:          e.DiskOffset,
		CompressedSize:  e.CompressedSize,
		CompressionFlag: e.CompressionFlag,
		FooterSize:      e.FooterSize(),
	})
}

// UnmarshalJSON reconstructs an entry from its wire representation. The
// resulting entry's OutputNameOverride is set to the wire Output value, so
// re-serializing an unmarshaled entry is idempotent even though OutputName()
// is normally derived.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Entry{
		Source:             w.Input,
		RepetitionBits:     w.RepetitionBit,
		LookbackBits:       w.LookbackBit,
		CompressionFlag:    w.CompressionFlag,
		OriginalSize:       w.OriginalSize,
		DiskOffset:         w.Offset,
		CompressedSize:     w.CompressedSize,
		OutputNameOverride: w.Output,
	}
	return nil
}
