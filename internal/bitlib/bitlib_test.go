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

package bitlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetBits(t *testing.T) {
	t.Parallel()
	data := make([]byte, 4)

	SetBits(data, 4, 0xABC, 12)
	assert.Equal(t, []byte{0x0A, 0xBC, 0x00, 0x00}, data)
	assert.Equal(t, uint32(0xABC), GetBits(data, 4, 12))
	assert.True(t, GetBit(data, 4))
	assert.False(t, GetBit(data, 5))

	SetBit(data, 31, true)
	assert.Equal(t, byte(0x01), data[3])
	SetBit(data, 31, false)
	assert.Equal(t, byte(0x00), data[3])

	SetBits(data, 0, 0xDEADBEEF, 32)
	assert.Equal(t, uint32(0xDEADBEEF), GetBits(data, 0, 32))
}

func TestCopyBits(t *testing.T) {
	t.Parallel()
	src := []byte{0b1011_0000}
	dst := make([]byte, 2)

	CopyBits(dst, 6, 4, src, 0)

	assert.Equal(t, []byte{0b0000_0010, 0b1100_0000}, dst)
}

func TestPushBit(t *testing.T) {
	t.Parallel()
	data := []byte{0x80, 0x00, 0x01}

	PushBit(data, true)
	assert.Equal(t, []byte{0x00, 0x00, 0x03}, data)

	PushBit(data, false)
	assert.Equal(t, []byte{0x00, 0x00, 0x06}, data)

	for i := 0; i < 24; i++ {
		PushBit(data, true)
	}
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, data)
}

func TestParityBit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		data   []byte
		parity Parity
		want   bool
	}{
		{name: "even over even count", data: []byte{0b1100_0000}, parity: ParityEven, want: false},
		{name: "even over odd count", data: []byte{0b1110_0000}, parity: ParityEven, want: true},
		{name: "odd over even count", data: []byte{0b1100_0000}, parity: ParityOdd, want: true},
		{name: "odd over odd count", data: []byte{0b1110_0000}, parity: ParityOdd, want: false},
		{name: "odd over zeros", data: []byte{0x00}, parity: ParityOdd, want: true},
		{name: "always zero", data: []byte{0xFF}, parity: ParityAlways0, want: false},
		{name: "always one", data: []byte{0x00}, parity: ParityAlways1, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParityBit(tt.data, 0, 8, tt.parity))
		})
	}
}

func TestAddParityAndRemove(t *testing.T) {
	t.Parallel()
	src := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}
	dst := make([]byte, 6)

	written := AddParity(src, 0, dst, 0, 28, 8, ParityOdd)
	require.Equal(t, 32, written)

	for group := 0; group < 4; group++ {
		ones := PopCount(dst, group*8, 8)
		assert.Equal(t, 1, ones%2, "group %d must have odd parity", group)
	}

	kept := RemoveBitEveryNth(dst, 0, 32, 8)
	require.Equal(t, 28, kept)
	assert.Equal(t, GetBits(src, 0, 28), GetBits(dst, 0, 28))
	assert.Equal(t, uint32(0), GetBits(dst, 28, 4), "vacated tail must be zero")
}

func TestCRC8(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint8(0xA1), CRC8([]byte("123456789")))
	assert.Equal(t, uint8(0x00), CRC8(nil))
}
