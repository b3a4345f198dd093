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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardStateTransitions(t *testing.T) {
	t.Parallel()
	var cs CardState
	assert.False(t, cs.Same("", nil), "idle state never matches")

	data := []byte{1, 2}
	cs.TransitionToCandidate("Pyramid", data)
	data[0] = 9
	assert.Equal(t, []byte{1, 2}, cs.Data, "candidate keeps its own copy")
	assert.True(t, cs.Same("Pyramid", []byte{1, 2}))
	assert.False(t, cs.Same("EM4100", []byte{1, 2}))
	assert.False(t, cs.Same("Pyramid", []byte{1, 3}))

	cs.SinceDecode = 10
	cs.Repeat()
	assert.Equal(t, 2, cs.Matches)
	assert.Zero(t, cs.SinceDecode)

	cs.TransitionToConfirmed()
	assert.Equal(t, StateConfirmed, cs.DetectionState)
	assert.True(t, cs.Same("Pyramid", []byte{1, 2}))

	cs.TransitionToIdle()
	assert.Equal(t, StateIdle, cs.DetectionState)
	assert.Empty(t, cs.Protocol)
	assert.Empty(t, cs.Data)
	assert.Zero(t, cs.Matches)
}

func TestDetectionStateString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "candidate", StateCandidate.String())
	assert.Equal(t, "confirmed", StateConfirmed.String())
	assert.Equal(t, "unknown", DetectionState(7).String())
}
