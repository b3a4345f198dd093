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

package pyramid

// Frame geometry
const (
	PreambleSize = 3  // Preamble bytes
	DataSize     = 13 // Checksummed payload bytes

	// FrameBits is the length of one transmitted repetition.
	FrameBits = 8 * (PreambleSize + DataSize)

	// EncodedDataSize is the sliding window: a frame plus the next preamble.
	EncodedDataSize = 2*PreambleSize + DataSize
	// EncodedBitSize is the window length in bits.
	EncodedBitSize = 8 * EncodedDataSize
)

// Bit offsets inside the window
const (
	preambleOffset = 0
	trailerOffset  = FrameBits
	checksumOffset = 120
	crcFirstByte   = 2
	crcLastByte    = crcFirstByte + DataSize // exclusive

	// Region carrying one inserted odd parity bit per byte.
	parityRegionStart  = 8
	parityRegionLength = 15 * 8
	parityGroupLength  = 8

	// Stripped payload: start-bit search range and the Wiegand word end.
	payloadSearchBits = 105
	wiegandEnd        = 105
)

// Preamble pattern, checked as a 16-bit and an 8-bit field.
const (
	preambleWord uint32 = 0x0001
	preambleTail uint32 = 0x01
)
