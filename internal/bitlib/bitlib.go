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

// Package bitlib provides MSB-first bit addressing over byte buffers, the
// parity and checksum helpers used by low-frequency protocol codecs.
package bitlib

import "github.com/sigurn/crc8"

// Parity selects how a parity bit is derived from a group of data bits.
type Parity uint8

const (
	// ParityEven makes the total number of set bits (data + parity) even.
	ParityEven Parity = iota
	// ParityOdd makes the total number of set bits (data + parity) odd.
	ParityOdd
	// ParityAlways0 emits a constant zero bit.
	ParityAlways0
	// ParityAlways1 emits a constant one bit.
	ParityAlways1
)

var crcTable = crc8.MakeTable(crc8.CRC8_MAXIM)

// GetBit returns the bit at position, counting from the MSB of data[0].
func GetBit(data []byte, position int) bool {
	return data[position>>3]&(0x80>>(position&7)) != 0
}

// SetBit sets or clears the bit at position.
func SetBit(data []byte, position int, value bool) {
	mask := byte(0x80 >> (position & 7))
	if value {
		data[position>>3] |= mask
	} else {
		data[position>>3] &^= mask
	}
}

// GetBits reads length bits (at most 32) starting at position as a big-endian value.
func GetBits(data []byte, position, length int) uint32 {
	var value uint32
	for i := 0; i < length; i++ {
		value <<= 1
		if GetBit(data, position+i) {
			value |= 1
		}
	}
	return value
}

// SetBits writes the low length bits of value (at most 32) starting at position, MSB first.
func SetBits(data []byte, position int, value uint32, length int) {
	for i := 0; i < length; i++ {
		shift := length - 1 - i
		SetBit(data, position+i, (value>>shift)&1 == 1)
	}
}

// CopyBits copies length bits from src at srcPosition into dst at dstPosition.
func CopyBits(dst []byte, dstPosition, length int, src []byte, srcPosition int) {
	for i := 0; i < length; i++ {
		SetBit(dst, dstPosition+i, GetBit(src, srcPosition+i))
	}
}

// PushBit shifts the whole buffer left by one bit, dropping the oldest bit,
// and stores bit in the last position.
func PushBit(data []byte, bit bool) {
	last := len(data) - 1
	for i := 0; i < last; i++ {
		data[i] = data[i]<<1 | data[i+1]>>7
	}
	data[last] <<= 1
	if bit {
		data[last] |= 1
	}
}

// PopCount counts the set bits in the range [position, position+length).
func PopCount(data []byte, position, length int) int {
	count := 0
	for i := 0; i < length; i++ {
		if GetBit(data, position+i) {
			count++
		}
	}
	return count
}

// ParityBit computes the parity bit for the range [position, position+length)
// as (popcount mod 2) xor parity.
func ParityBit(data []byte, position, length int, parity Parity) bool {
	switch parity {
	case ParityAlways0:
		return false
	case ParityAlways1:
		return true
	case ParityEven, ParityOdd:
	}
	odd := PopCount(data, position, length)%2 == 1
	return odd != (parity == ParityOdd)
}

// AddParity copies sourceLength bits from src into dst, inserting a parity
// bit after every groupLength-1 data bits. The source is consumed in whole
// groups, so the last group may read past sourceLength. It returns the number
// of bits written to dst.
func AddParity(
	src []byte, srcPosition int,
	dst []byte, dstPosition int,
	sourceLength, groupLength int,
	parity Parity,
) int {
	dataBits := groupLength - 1
	written := 0
	for word := 0; word < sourceLength; word += dataBits {
		CopyBits(dst, dstPosition+written, dataBits, src, srcPosition+word)
		written += dataBits
		SetBit(dst, dstPosition+written, ParityBit(src, srcPosition+word, dataBits, parity))
		written++
	}
	return written
}

// RemoveBitEveryNth removes every n-th bit of the range [position, position+length)
// (the bits at relative offsets n-1, 2n-1, ...), packs the remaining bits
// contiguously from position and zero-fills the vacated tail of the range.
// It returns the number of bits kept.
func RemoveBitEveryNth(data []byte, position, length, n int) int {
	kept := 0
	for i := 0; i < length; i++ {
		if (i+1)%n == 0 {
			continue
		}
		SetBit(data, position+kept, GetBit(data, position+i))
		kept++
	}
	for i := kept; i < length; i++ {
		SetBit(data, position+i, false)
	}
	return kept
}

// CRC8 computes CRC-8/MAXIM (poly 0x31, init 0x00, reflected in/out, xorout 0x00).
func CRC8(data []byte) uint8 {
	return crc8.Checksum(data, crcTable)
}
