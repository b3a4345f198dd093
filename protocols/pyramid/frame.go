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
	"encoding/hex"

	"github.com/ZaparooProject/go-lfrfid/internal/bitlib"
)

// Frame is the encoded window: one 128-bit transmission followed by the
// leading preamble of the next repetition.
type Frame [EncodedDataSize]byte

// String returns the frame as lowercase hex.
func (f *Frame) String() string {
	return hex.EncodeToString(f[:])
}

// Encode builds the checksummed, parity-protected frame for r.
func Encode(r Record) (Frame, error) {
	var frame Frame
	if err := r.Validate(); err != nil {
		return frame, err
	}
	l, _ := r.Format.layout()

	// Wiegand word in stripped-payload coordinates
	var payload [FrameBits / 8]byte
	bitlib.SetBit(payload[:], l.start, true)
	bitlib.SetBits(payload[:], l.facilityOffset, r.Facility, l.facilityBits)
	bitlib.SetBits(payload[:], l.cardOffset, r.Card, l.cardBits)
	bitlib.SetBit(payload[:], l.start+1,
		bitlib.ParityBit(payload[:], l.start+2, l.evenBits, bitlib.ParityEven))
	bitlib.SetBit(payload[:], wiegandEnd,
		bitlib.ParityBit(payload[:], wiegandEnd-l.oddBits, l.oddBits, bitlib.ParityOdd))

	bitlib.AddParity(payload[:], parityRegionStart, frame[:], parityRegionStart,
		parityRegionLength/parityGroupLength*(parityGroupLength-1), parityGroupLength, bitlib.ParityOdd)

	frame[checksumOffset/8] = bitlib.CRC8(frame[crcFirstByte:crcLastByte])
	copy(frame[trailerOffset/8:], frame[:PreambleSize])
	return frame, nil
}

// Strip removes the per-byte parity bits of the payload region in place,
// leaving the Wiegand payload at offsets 8..112.
func Strip(f *Frame) {
	bitlib.RemoveBitEveryNth(f[:], parityRegionStart, parityRegionLength, parityGroupLength)
}

// Validator recognizes a frame in a sliding window.
type Validator struct {
	// Strict rejects stripped payloads whose start bit matches neither
	// Format26 nor Format39 instead of classifying them as Format26.
	Strict bool
}

func hasPreamble(f *Frame, offset int) bool {
	return bitlib.GetBits(f[:], offset, 16) == preambleWord &&
		bitlib.GetBits(f[:], offset+16, 8) == preambleTail
}

// Validate checks both preambles and the checksum of window. On success the
// window is stripped of its parity bits in place (see Strip) and the
// classified format is returned; on failure the window is left untouched.
func (v Validator) Validate(window *Frame) (Format, bool) {
	if !hasPreamble(window, preambleOffset) || !hasPreamble(window, trailerOffset) {
		return 0, false
	}
	checksum := uint8(bitlib.GetBits(window[:], checksumOffset, 8))
	if bitlib.CRC8(window[crcFirstByte:crcLastByte]) != checksum {
		return 0, false
	}

	stripped := *window
	Strip(&stripped)

	start := payloadSearchBits
	for j := 0; j < payloadSearchBits; j++ {
		if bitlib.GetBit(stripped[:], j) {
			start = j
			break
		}
	}

	format := Format26
	switch Format(wiegandEnd - start) {
	case Format39:
		format = Format39
	case Format26:
	default:
		if v.Strict {
			return 0, false
		}
	}

	*window = stripped
	return format, true
}

// DecodeFields reads the record of the given format from a stripped frame.
func DecodeFields(stripped *Frame, format Format) Record {
	l, err := format.layout()
	if err != nil {
		l = layout26
		format = Format26
	}
	return Record{
		Format:   format,
		Facility: bitlib.GetBits(stripped[:], l.facilityOffset, l.facilityBits),
		Card:     bitlib.GetBits(stripped[:], l.cardOffset, l.cardBits),
	}
}
