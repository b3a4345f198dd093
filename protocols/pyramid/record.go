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
	"errors"
	"fmt"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
	"github.com/ZaparooProject/go-lfrfid/internal/bitlib"
)

// Record errors
var (
	ErrUnknownFormat = errors.New("unknown pyramid format")
	ErrFieldRange    = errors.New("field out of range")
)

// Format is the Wiegand length carried in a frame; its value is the bit count.
type Format uint8

const (
	Format26 Format = 26
	Format39 Format = 39
)

// layout places one Wiegand format inside the stripped payload. The word
// runs from start to wiegandEnd: start bit, even parity, data, odd parity.
type layout struct {
	start          int
	facilityOffset int
	facilityBits   int
	cardOffset     int
	cardBits       int
	evenBits       int // data bits covered by the leading even parity
	oddBits        int // data bits covered by the trailing odd parity
	dataSize       int // decoded record bytes
}

var (
	layout26 = layout{
		start:          wiegandEnd - int(Format26),
		facilityOffset: 81,
		facilityBits:   8,
		cardOffset:     89,
		cardBits:       16,
		evenBits:       12,
		oddBits:        12,
		dataSize:       4,
	}
	layout39 = layout{
		start:          wiegandEnd - int(Format39),
		facilityOffset: 68,
		facilityBits:   17,
		cardOffset:     85,
		cardBits:       20,
		evenBits:       17,
		oddBits:        20,
		dataSize:       6,
	}
)

func (f Format) layout() (layout, error) {
	switch f {
	case Format26:
		return layout26, nil
	case Format39:
		return layout39, nil
	default:
		return layout{}, fmt.Errorf("%w: %d", ErrUnknownFormat, uint8(f))
	}
}

// MaxFacility returns the largest facility code the format can carry.
func (f Format) MaxFacility() uint32 {
	l, err := f.layout()
	if err != nil {
		return 0
	}
	return 1<<l.facilityBits - 1
}

// MaxCard returns the largest card number the format can carry.
func (f Format) MaxCard() uint32 {
	l, err := f.layout()
	if err != nil {
		return 0
	}
	return 1<<l.cardBits - 1
}

// DataSize returns the length of the raw record bytes for the format.
func (f Format) DataSize() int {
	l, err := f.layout()
	if err != nil {
		return layout26.dataSize
	}
	return l.dataSize
}

// Record is a decoded Pyramid card.
type Record struct {
	Facility uint32
	Card     uint32
	Format   Format
}

// Validate checks the format tag and field ranges.
func (r Record) Validate() error {
	if _, err := r.Format.layout(); err != nil {
		return err
	}
	if r.Facility > r.Format.MaxFacility() {
		return fmt.Errorf("%w: facility %d exceeds %d for format %d",
			ErrFieldRange, r.Facility, r.Format.MaxFacility(), r.Format)
	}
	if r.Card > r.Format.MaxCard() {
		return fmt.Errorf("%w: card %d exceeds %d for format %d",
			ErrFieldRange, r.Card, r.Format.MaxCard(), r.Format)
	}
	return nil
}

// Bytes returns the raw record: the format tag in byte 0 followed by the
// fields. Format26 is [26, fc, card hi, card lo]; Format39 packs the 17-bit
// facility at bit 8 and the 20-bit card at bit 26 of a 6-byte buffer.
func (r Record) Bytes() []byte {
	data := make([]byte, r.Format.DataSize())
	data[0] = byte(r.Format)
	switch r.Format {
	case Format39:
		bitlib.SetBits(data, 8, r.Facility, 17)
		bitlib.SetBits(data, 26, r.Card, 20)
	default:
		data[1] = byte(r.Facility)
		data[2] = byte(r.Card >> 8)
		data[3] = byte(r.Card)
	}
	return data
}

// ParseRecord is the inverse of Record.Bytes.
func ParseRecord(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, fmt.Errorf("%w: empty record", lfrfid.ErrInvalidData)
	}
	format := Format(data[0])
	if _, err := format.layout(); err != nil {
		return Record{}, err
	}
	if len(data) < format.DataSize() {
		return Record{}, fmt.Errorf("%w: format %d needs %d bytes, got %d",
			lfrfid.ErrInvalidData, format, format.DataSize(), len(data))
	}

	record := Record{Format: format}
	if format == Format39 {
		record.Facility = bitlib.GetBits(data, 8, 17)
		record.Card = bitlib.GetBits(data, 26, 20)
	} else {
		record.Facility = uint32(data[1])
		record.Card = uint32(data[2])<<8 | uint32(data[3])
	}
	return record, nil
}

// String renders the record as "Format: 26\r\nFC: 101, Card: 12345".
func (r Record) String() string {
	if _, err := r.Format.layout(); err != nil {
		return fmt.Sprintf("Format: %d\r\nData: unknown", uint8(r.Format))
	}
	return fmt.Sprintf("Format: %d\r\nFC: %d, Card: %d", uint8(r.Format), r.Facility, r.Card)
}
