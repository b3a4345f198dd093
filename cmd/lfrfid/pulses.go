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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
)

var errMalformedPulse = errors.New("malformed pulse line")

// lineSource reads a text pulse capture.
type lineSource struct {
	scanner *bufio.Scanner
	line    int
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{scanner: bufio.NewScanner(r)}
}

// NextPulse returns the next half-period or io.EOF at the end of the capture.
func (s *lineSource) NextPulse() (lfrfid.LevelDuration, error) {
	for s.scanner.Scan() {
		s.line++
		text := strings.TrimSpace(s.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		pulse, err := parsePulse(text)
		if err != nil {
			return lfrfid.LevelDuration{}, fmt.Errorf("line %d: %w", s.line, err)
		}
		return pulse, nil
	}
	if err := s.scanner.Err(); err != nil {
		return lfrfid.LevelDuration{}, fmt.Errorf("failed to read capture: %w", err)
	}
	return lfrfid.LevelDuration{}, io.EOF
}

func parsePulse(text string) (lfrfid.LevelDuration, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return lfrfid.LevelDuration{}, fmt.Errorf("%w: %q", errMalformedPulse, text)
	}

	var level bool
	switch strings.ToUpper(fields[0]) {
	case "1", "H":
		level = true
	case "0", "L":
	default:
		return lfrfid.LevelDuration{}, fmt.Errorf("%w: level %q", errMalformedPulse, fields[0])
	}

	duration, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return lfrfid.LevelDuration{}, fmt.Errorf("%w: duration %q", errMalformedPulse, fields[1])
	}
	return lfrfid.LevelDuration{Level: level, Duration: uint32(duration)}, nil
}

func formatPulse(pulse lfrfid.LevelDuration) string {
	level := 0
	if pulse.Level {
		level = 1
	}
	return fmt.Sprintf("%d %d", level, pulse.Duration)
}
