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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
)

func TestRecordValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		wantErr error
		name    string
		record  Record
	}{
		{name: "26-bit max", record: Record{Format: Format26, Facility: 255, Card: 65535}},
		{name: "39-bit max", record: Record{Format: Format39, Facility: 131071, Card: 1048575}},
		{name: "26-bit facility overflow", record: Record{Format: Format26, Facility: 256}, wantErr: ErrFieldRange},
		{name: "26-bit card overflow", record: Record{Format: Format26, Card: 65536}, wantErr: ErrFieldRange},
		{name: "39-bit facility overflow", record: Record{Format: Format39, Facility: 1 << 17}, wantErr: ErrFieldRange},
		{name: "39-bit card overflow", record: Record{Format: Format39, Card: 1 << 20}, wantErr: ErrFieldRange},
		{name: "unknown format", record: Record{Format: 34}, wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.record.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordBytes(t *testing.T) {
	t.Parallel()

	r26 := Record{Format: Format26, Facility: 101, Card: 12345}
	assert.Equal(t, []byte{26, 101, 0x30, 0x39}, r26.Bytes())

	r39 := Record{Format: Format39, Facility: 131071, Card: 1}
	data := r39.Bytes()
	require.Len(t, data, 6)
	assert.Equal(t, byte(39), data[0])
	// 17 set facility bits at 8..24, bit 25 clear, card LSB at bit 45.
	assert.Equal(t, []byte{39, 0xFF, 0xFF, 0x80, 0x00, 0x04}, data)

	parsed, err := ParseRecord(data)
	require.NoError(t, err)
	assert.Equal(t, r39, parsed)

	parsed, err = ParseRecord(r26.Bytes())
	require.NoError(t, err)
	assert.Equal(t, r26, parsed)
}

func TestParseRecordErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseRecord(nil)
	require.ErrorIs(t, err, lfrfid.ErrInvalidData)

	_, err = ParseRecord([]byte{39, 0, 0, 0})
	require.ErrorIs(t, err, lfrfid.ErrInvalidData)

	_, err = ParseRecord([]byte{40, 0, 0, 0})
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRecordString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Format: 26\r\nFC: 101, Card: 12345",
		Record{Format: Format26, Facility: 101, Card: 12345}.String())
	assert.Equal(t, "Format: 39\r\nFC: 4000, Card: 500000",
		Record{Format: Format39, Facility: 4000, Card: 500000}.String())
	assert.Equal(t, "Format: 0\r\nData: unknown", Record{}.String())
}

func TestFormatLimits(t *testing.T) {
	t.Parallel()
	assert.Equal(t, uint32(255), Format26.MaxFacility())
	assert.Equal(t, uint32(65535), Format26.MaxCard())
	assert.Equal(t, uint32(131071), Format39.MaxFacility())
	assert.Equal(t, uint32(1048575), Format39.MaxCard())
	assert.Equal(t, 4, Format26.DataSize())
	assert.Equal(t, 6, Format39.DataSize())
	assert.Equal(t, uint32(0), Format(7).MaxCard())
}
