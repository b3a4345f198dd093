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

package reader

import "bytes"

// DetectionState is the confirmation state of the card in the field.
type DetectionState int

const (
	// StateIdle means no decode is pending confirmation.
	StateIdle DetectionState = iota
	// StateCandidate means one or more identical decodes are pending.
	StateCandidate
	// StateConfirmed means the candidate reached its validate count and was reported.
	StateConfirmed
)

// String returns the state name
func (s DetectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCandidate:
		return "candidate"
	case StateConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// CardState tracks consecutive decodes of the card in the field.
type CardState struct {
	Protocol       string
	Data           []byte
	Matches        int
	SinceDecode    int // pulses since the last decode of any protocol
	DetectionState DetectionState
}

// Same reports whether a decode repeats the current candidate.
func (cs *CardState) Same(protocol string, data []byte) bool {
	return cs.DetectionState != StateIdle && cs.Protocol == protocol && bytes.Equal(cs.Data, data)
}

// TransitionToCandidate starts counting a new decode.
func (cs *CardState) TransitionToCandidate(protocol string, data []byte) {
	cs.DetectionState = StateCandidate
	cs.Protocol = protocol
	cs.Data = append(cs.Data[:0], data...)
	cs.Matches = 1
	cs.SinceDecode = 0
}

// Repeat counts another identical decode.
func (cs *CardState) Repeat() {
	cs.Matches++
	cs.SinceDecode = 0
}

// TransitionToConfirmed marks the candidate as reported.
func (cs *CardState) TransitionToConfirmed() {
	cs.DetectionState = StateConfirmed
}

// TransitionToIdle forgets the candidate.
func (cs *CardState) TransitionToIdle() {
	cs.DetectionState = StateIdle
	cs.Protocol = ""
	cs.Data = cs.Data[:0]
	cs.Matches = 0
	cs.SinceDecode = 0
}
