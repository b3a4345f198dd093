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

package testing

import (
	"io"
	"math/rand"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
)

// BuildNoisePulses creates n half-periods of random timing in [0, 200) µs,
// alternating levels like a real front end.
func BuildNoisePulses(seed int64, n int) []lfrfid.LevelDuration {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // test data
	pulses := make([]lfrfid.LevelDuration, n)
	for i := range pulses {
		pulses[i] = lfrfid.LevelDuration{
			Level:    i%2 == 0,
			Duration: uint32(rng.Intn(200)),
		}
	}
	return pulses
}

// BuildCapture records n half-periods emulated by protocol, in microseconds.
func BuildCapture(protocol lfrfid.Protocol, n int) ([]lfrfid.LevelDuration, error) {
	tag, err := NewVirtualTag(protocol)
	if err != nil {
		return nil, err
	}
	return tag.Pulses(n), nil
}

// SliceSource replays a fixed pulse list.
type SliceSource struct {
	Pulses []lfrfid.LevelDuration
	next   int
}

// NextPulse returns the next recorded half-period or io.EOF when the capture
// is exhausted.
func (s *SliceSource) NextPulse() (lfrfid.LevelDuration, error) {
	if s.next >= len(s.Pulses) {
		return lfrfid.LevelDuration{}, io.EOF
	}
	pulse := s.Pulses[s.next]
	s.next++
	return pulse, nil
}
