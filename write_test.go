// go-lfrfid
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-lfrfid.
//
// go-lfrfid is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-lfrfid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-lfrfid; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package lfrfid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT5577BlocksFields(t *testing.T) {
	t.Parallel()
	blocks := T5577Blocks{BlocksToWrite: 2}
	blocks.Block[0] = T5577ModulationFSK2a | T5577BitrateRF50 | 4<<T5577MaxBlockShift
	blocks.Block[1] = 0x0001_0101

	assert.Equal(t, uint32(0x00107080), blocks.Block[0])
	assert.Equal(t, 4, blocks.MaxBlock())
	assert.Equal(t, T5577ModulationFSK2a, blocks.Modulation())
	assert.Equal(t, T5577BitrateRF50, blocks.Bitrate())
	assert.Equal(t, 50, blocks.BitrateCycles())
	assert.Equal(t, "Block 0: 00107080\nBlock 1: 00010101\n", blocks.String())
}

func TestT5577BitrateCycles(t *testing.T) {
	t.Parallel()
	tests := []struct {
		bitrate uint32
		cycles  int
	}{
		{T5577BitrateRF8, 8},
		{T5577BitrateRF16, 16},
		{T5577BitrateRF32, 32},
		{T5577BitrateRF40, 40},
		{T5577BitrateRF50, 50},
		{T5577BitrateRF64, 64},
		{T5577BitrateRF100, 100},
		{T5577BitrateRF128, 128},
	}
	for _, tt := range tests {
		blocks := T5577Blocks{}
		blocks.Block[0] = tt.bitrate | T5577ModulationManchester
		assert.Equal(t, tt.cycles, blocks.BitrateCycles())
		assert.Equal(t, T5577ModulationManchester, blocks.Modulation())
	}
}
