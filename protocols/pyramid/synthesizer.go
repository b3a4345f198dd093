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
	lfrfid "github.com/ZaparooProject/go-lfrfid"
	"github.com/ZaparooProject/go-lfrfid/internal/bitlib"
)

// Oscillator produces the carrier period for each data bit.
type Oscillator interface {
	// Next returns whether to advance to the next bit and the full period
	Next(bit bool) (advance bool, period uint32)
	Reset()
}

// Synthesizer turns a frame into a cyclic FSK waveform, one half-period per
// Yield: the high half of a carrier period, then its low half.
type Synthesizer struct {
	osc     Oscillator
	frame   Frame
	cursor  int
	pending uint32
	lowHalf bool
}

// NewSynthesizer creates a synthesizer driven by osc.
func NewSynthesizer(osc Oscillator) *Synthesizer {
	return &Synthesizer{osc: osc}
}

// Start loads frame and rewinds the cursor and oscillator.
func (s *Synthesizer) Start(frame Frame) {
	s.frame = frame
	s.cursor = 0
	s.pending = 0
	s.lowHalf = false
	s.osc.Reset()
}

// Cursor returns the index of the frame bit being emitted.
func (s *Synthesizer) Cursor() int {
	return s.cursor
}

// Yield returns the next half-period in carrier cycles. The cursor wraps
// every FrameBits bits, so the frame repeats indefinitely.
func (s *Synthesizer) Yield() lfrfid.LevelDuration {
	if s.lowHalf {
		s.lowHalf = false
		duration := s.pending
		s.pending = 0
		return lfrfid.LevelDuration{Level: false, Duration: duration}
	}

	advance, period := s.osc.Next(bitlib.GetBit(s.frame[:], s.cursor))
	if advance {
		s.cursor = (s.cursor + 1) % FrameBits
	}
	s.pending = period / 2
	s.lowHalf = true
	return lfrfid.LevelDuration{Level: true, Duration: period / 2}
}
