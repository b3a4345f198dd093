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

import "github.com/ZaparooProject/go-lfrfid/internal/bitlib"

// Synchronizer slides an EncodedBitSize window over a demodulated bitstream
// and validates it after every bit. Invalid windows are the normal case and
// are ignored silently.
type Synchronizer struct {
	window    Frame
	record    Record
	validator Validator
	decoded   bool
}

// NewSynchronizer creates a synchronizer using validator for recognition.
func NewSynchronizer(validator Validator) *Synchronizer {
	return &Synchronizer{validator: validator}
}

// Reset clears the window and forgets any decoded record.
func (s *Synchronizer) Reset() {
	s.window = Frame{}
	s.record = Record{}
	s.decoded = false
}

// PushBit shifts bit into the window and reports a record when the window
// now holds a valid frame. A later frame overwrites the previous record.
func (s *Synchronizer) PushBit(bit bool) (Record, bool) {
	bitlib.PushBit(s.window[:], bit)
	format, ok := s.validator.Validate(&s.window)
	if !ok {
		return Record{}, false
	}
	s.record = DecodeFields(&s.window, format)
	s.decoded = true
	return s.record, true
}

// Decoded reports whether any frame has been recognized since the last Reset.
func (s *Synchronizer) Decoded() bool {
	return s.decoded
}

// Last returns the most recently decoded record.
func (s *Synchronizer) Last() (Record, bool) {
	return s.record, s.decoded
}
