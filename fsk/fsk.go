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

// Package fsk implements the frequency-shift-keyed pulse engine shared by
// low-frequency RFID protocols: a Demodulator that turns carrier half-periods
// into data bits and an Oscillator that turns data bits into carrier periods.
//
// Decoder input is measured in microseconds. Oscillator output is measured in
// carrier cycles; at 125 kHz one cycle is CarrierPeriodMicros microseconds.
package fsk

import (
	"errors"
	"fmt"
)

// CarrierPeriodMicros is the duration of one 125 kHz carrier cycle.
const CarrierPeriodMicros = 8

// ErrInvalidConfig is returned when demodulator or oscillator timing is inconsistent.
var ErrInvalidConfig = errors.New("invalid FSK configuration")

// DemodConfig holds the acceptance band and bit timing of a Demodulator.
type DemodConfig struct {
	// MinPeriod is the shortest full period (µs) accepted as a carrier pulse.
	MinPeriod uint32
	// MaxPeriod is the exclusive upper bound (µs) of accepted full periods.
	MaxPeriod uint32
	// BitPeriod is the duration (µs) of one data bit.
	BitPeriod uint32
	// Invert swaps the meaning of short and long periods.
	Invert bool
}

// DefaultDemodConfig returns the FSK2a RF/50 timing used by fc/8 / fc/10 tags:
// 64 µs and 80 µs periods with a 20 µs jitter band and 400 µs bits.
func DefaultDemodConfig() DemodConfig {
	return DemodConfig{
		MinPeriod: 64 - 20,
		MaxPeriod: 80 + 20,
		BitPeriod: 50 * CarrierPeriodMicros,
	}
}

// Validate checks that the acceptance band and bit period are usable.
func (c DemodConfig) Validate() error {
	if c.MinPeriod >= c.MaxPeriod {
		return fmt.Errorf("%w: min period %d must be below max period %d", ErrInvalidConfig, c.MinPeriod, c.MaxPeriod)
	}
	if c.BitPeriod == 0 {
		return fmt.Errorf("%w: bit period must be positive", ErrInvalidConfig)
	}
	return nil
}

// Demodulator classifies carrier periods as short (bit 0) or long (bit 1)
// and reports each completed run of equal periods as a number of bits.
//
// A Demodulator is owned by a single decode session and is not safe for
// concurrent use.
type Demodulator struct {
	config   DemodConfig
	mid      uint32
	period   uint32
	run      uint32
	lastLong bool
}

// NewDemodulator creates a Demodulator with the given timing.
func NewDemodulator(config DemodConfig) (*Demodulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Demodulator{
		config: config,
		mid:    config.MinPeriod + (config.MaxPeriod-config.MinPeriod)/2,
	}, nil
}

// Reset drops any partially measured period and run.
func (d *Demodulator) Reset() {
	d.period = 0
	d.run = 0
	d.lastLong = false
}

// Feed consumes one half-period. A rising half (level true) starts a new
// period; the falling half completes it. When the period class changes, the
// finished run is returned as count bits of value bit. count is zero when no
// run completed.
func (d *Demodulator) Feed(level bool, duration uint32) (bit bool, count int) {
	if level {
		d.period = duration
		return false, 0
	}
	d.period += duration

	if d.period < d.config.MinPeriod || d.period >= d.config.MaxPeriod {
		d.run = 0
		return false, 0
	}

	long := d.period >= d.mid
	if long == d.lastLong {
		d.run += d.period
		return false, 0
	}

	count = int((d.run + d.config.BitPeriod/2) / d.config.BitPeriod)
	bit = d.lastLong != d.config.Invert
	d.run = d.period
	d.lastLong = long
	return bit, count
}

// OscConfig holds the carrier divisors and bit length of an Oscillator.
type OscConfig struct {
	// LowPeriod is the full period (carrier cycles) emitted for a 0 bit.
	LowPeriod uint32
	// HighPeriod is the full period (carrier cycles) emitted for a 1 bit.
	HighPeriod uint32
	// BitCycles is the number of carrier cycles per data bit.
	BitCycles uint32
}

// DefaultOscConfig returns the fc/8 / fc/10 RF/50 oscillator.
func DefaultOscConfig() OscConfig {
	return OscConfig{LowPeriod: 8, HighPeriod: 10, BitCycles: 50}
}

// Validate checks that the oscillator can make progress through a bitstream.
func (c OscConfig) Validate() error {
	if c.LowPeriod == 0 || c.HighPeriod == 0 {
		return fmt.Errorf("%w: oscillator periods must be positive", ErrInvalidConfig)
	}
	if c.BitCycles < c.LowPeriod || c.BitCycles < c.HighPeriod {
		return fmt.Errorf("%w: bit cycles %d shorter than a carrier period", ErrInvalidConfig, c.BitCycles)
	}
	return nil
}

// Oscillator emits one carrier period per call using a phase accumulator,
// signalling when a full data bit has been emitted.
type Oscillator struct {
	config OscConfig
	phase  uint32
}

// NewOscillator creates an Oscillator with the given timing.
func NewOscillator(config OscConfig) (*Oscillator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Oscillator{config: config}, nil
}

// Reset returns the phase accumulator to zero.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Next returns the full period for bit and whether the caller should advance
// to the next data bit after emitting it.
func (o *Oscillator) Next(bit bool) (advance bool, period uint32) {
	period = o.config.LowPeriod
	if bit {
		period = o.config.HighPeriod
	}
	o.phase += period
	if o.phase > o.config.BitCycles {
		o.phase -= o.config.BitCycles
		advance = true
	}
	return advance, period
}
