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
	"errors"
	"fmt"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
	"github.com/ZaparooProject/go-lfrfid/fsk"
)

// ErrTagNotPresent is returned when pulses are requested from a removed tag.
var ErrTagNotPresent = errors.New("tag not present")

// ErrUnsupportedModulation is returned when a written configuration word asks
// for a modulation the virtual chip does not simulate.
var ErrUnsupportedModulation = errors.New("unsupported modulation")

// VirtualTag represents a simulated emulating transponder: it drives a
// protocol encoder and reports the waveform as a reader front end measures
// it, in microseconds.
type VirtualTag struct {
	protocol lfrfid.Protocol
	Present  bool // Whether the tag is currently in the field
}

// NewVirtualTag starts the protocol's encoder and returns a present tag.
func NewVirtualTag(protocol lfrfid.Protocol) (*VirtualTag, error) {
	if err := protocol.EncoderStart(); err != nil {
		return nil, fmt.Errorf("failed to start %s encoder: %w", protocol.Name(), err)
	}
	return &VirtualTag{protocol: protocol, Present: true}, nil
}

// NextPulse returns the next half-period in microseconds.
func (v *VirtualTag) NextPulse() (lfrfid.LevelDuration, error) {
	if !v.Present {
		return lfrfid.LevelDuration{}, ErrTagNotPresent
	}
	pulse := v.protocol.EncoderYield()
	pulse.Duration *= fsk.CarrierPeriodMicros
	return pulse, nil
}

// Pulses returns the next n half-periods, or fewer if the tag is removed.
func (v *VirtualTag) Pulses(n int) []lfrfid.LevelDuration {
	pulses := make([]lfrfid.LevelDuration, 0, n)
	for i := 0; i < n; i++ {
		pulse, err := v.NextPulse()
		if err != nil {
			break
		}
		pulses = append(pulses, pulse)
	}
	return pulses
}

// Remove sets the tag as not present
func (v *VirtualTag) Remove() {
	v.Present = false
}

// Insert sets the tag as present
func (v *VirtualTag) Insert() {
	v.Present = true
}

// VirtualT5577 represents a simulated T5577 chip. Blocks written through a
// WriteRequest are replayed MSB first from block 1 to MAXBLOCK, cyclically,
// using the modulation and bitrate of the configuration word.
type VirtualT5577 struct {
	osc     *fsk.Oscillator
	Blocks  [lfrfid.T5577BlockCount]uint32
	cursor  int
	pending uint32
	lowHalf bool
	Present bool // Whether the chip is currently in the field
}

// NewVirtualT5577 creates a blank chip.
func NewVirtualT5577() *VirtualT5577 {
	return &VirtualT5577{Present: true}
}

// Write stores the blocks of req and prepares the chip for replay.
func (t *VirtualT5577) Write(req *lfrfid.WriteRequest) error {
	if req.Type != lfrfid.WriteTypeT5577 {
		return fmt.Errorf("%w: %s", lfrfid.ErrUnsupportedWriteType, req.Type)
	}
	if req.T5577.BlocksToWrite < 1 || req.T5577.BlocksToWrite > lfrfid.T5577BlockCount {
		return fmt.Errorf("block count %d out of range", req.T5577.BlocksToWrite)
	}
	if req.T5577.Modulation() != lfrfid.T5577ModulationFSK2a {
		return fmt.Errorf("%w: %05X", ErrUnsupportedModulation, req.T5577.Modulation())
	}

	copy(t.Blocks[:req.T5577.BlocksToWrite], req.T5577.Block[:req.T5577.BlocksToWrite])

	// FSK2a: a 0 bit is fc/8, a 1 bit is fc/10.
	osc, err := fsk.NewOscillator(fsk.OscConfig{
		LowPeriod:  8,
		HighPeriod: 10,
		BitCycles:  uint32(req.T5577.BitrateCycles()),
	})
	if err != nil {
		return err
	}
	t.osc = osc
	t.cursor = 0
	t.pending = 0
	t.lowHalf = false
	return nil
}

func (t *VirtualT5577) maxBlock() int {
	return int((t.Blocks[0] >> lfrfid.T5577MaxBlockShift) & 0x7)
}

func (t *VirtualT5577) bit(index int) bool {
	block := t.Blocks[1+index/32]
	return block&(1<<(31-index%32)) != 0
}

// NextPulse returns the next half-period in microseconds.
func (t *VirtualT5577) NextPulse() (lfrfid.LevelDuration, error) {
	if !t.Present {
		return lfrfid.LevelDuration{}, ErrTagNotPresent
	}
	if t.osc == nil || t.maxBlock() == 0 {
		return lfrfid.LevelDuration{}, errors.New("chip is not programmed")
	}

	if t.lowHalf {
		t.lowHalf = false
		return lfrfid.LevelDuration{Level: false, Duration: t.pending * fsk.CarrierPeriodMicros}, nil
	}
	advance, period := t.osc.Next(t.bit(t.cursor))
	if advance {
		t.cursor = (t.cursor + 1) % (32 * t.maxBlock())
	}
	t.pending = period / 2
	t.lowHalf = true
	return lfrfid.LevelDuration{Level: true, Duration: (period / 2) * fsk.CarrierPeriodMicros}, nil
}
