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

import "fmt"

// WriteType selects the reprogrammable transponder a WriteRequest targets.
type WriteType string

const (
	// WriteTypeT5577 targets the Atmel/Microchip T5577 (and compatible) chip.
	WriteTypeT5577 WriteType = "t5577"
	// WriteTypeEM4305 targets the EM Microelectronic EM4305 chip.
	WriteTypeEM4305 WriteType = "em4305"
)

// T5577 block 0 (configuration word) fields, bit positions as in the T5577 datasheet.
const (
	T5577BlockCount = 8

	T5577MaxBlockShift = 5

	T5577ModulationDirect     uint32 = 0x00000000
	T5577ModulationPSK1       uint32 = 0x00001000
	T5577ModulationPSK2       uint32 = 0x00002000
	T5577ModulationPSK3       uint32 = 0x00003000
	T5577ModulationFSK1       uint32 = 0x00004000
	T5577ModulationFSK2       uint32 = 0x00005000
	T5577ModulationFSK1a      uint32 = 0x00006000
	T5577ModulationFSK2a      uint32 = 0x00007000
	T5577ModulationManchester uint32 = 0x00008000
	T5577ModulationBiphase    uint32 = 0x00010000

	T5577BitrateRF8   uint32 = 0x00000000
	T5577BitrateRF16  uint32 = 0x00040000
	T5577BitrateRF32  uint32 = 0x00080000
	T5577BitrateRF40  uint32 = 0x000C0000
	T5577BitrateRF50  uint32 = 0x00100000
	T5577BitrateRF64  uint32 = 0x00140000
	T5577BitrateRF100 uint32 = 0x00180000
	T5577BitrateRF128 uint32 = 0x001C0000

	t5577ModulationMask uint32 = 0x0001F000
	t5577BitrateMask    uint32 = 0x001C0000
	t5577MaxBlockMask   uint32 = 0x000000E0
)

// T5577Blocks is the register image written to a T5577. Block[0] is the
// configuration word; blocks 1..BlocksToWrite-1 carry the emitted bitstream.
type T5577Blocks struct {
	Block         [T5577BlockCount]uint32
	BlocksToWrite int
}

// MaxBlock returns the MAXBLOCK field of the configuration word: the last
// data block the chip replays.
func (b *T5577Blocks) MaxBlock() int {
	return int((b.Block[0] & t5577MaxBlockMask) >> T5577MaxBlockShift)
}

// Modulation returns the modulation field of the configuration word.
func (b *T5577Blocks) Modulation() uint32 {
	return b.Block[0] & t5577ModulationMask
}

// Bitrate returns the data bitrate field of the configuration word.
func (b *T5577Blocks) Bitrate() uint32 {
	return b.Block[0] & t5577BitrateMask
}

// BitrateCycles returns the number of carrier cycles per data bit encoded in
// the configuration word.
func (b *T5577Blocks) BitrateCycles() int {
	return [...]int{8, 16, 32, 40, 50, 64, 100, 128}[b.Bitrate()>>18]
}

// String renders the register image one block per line.
func (b *T5577Blocks) String() string {
	out := ""
	for i := 0; i < b.BlocksToWrite; i++ {
		out += fmt.Sprintf("Block %d: %08X\n", i, b.Block[i])
	}
	return out
}

// WriteRequest asks a protocol for the register image of its current record.
type WriteRequest struct {
	Type  WriteType
	T5577 T5577Blocks
}
