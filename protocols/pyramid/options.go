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

	"go.uber.org/zap"

	"github.com/ZaparooProject/go-lfrfid/fsk"
)

// Option is a functional option for configuring a Codec
type Option func(*Codec) error

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.Logger) Option {
	return func(c *Codec) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		c.log = logger
		return nil
	}
}

// WithDemodulator replaces the FSK demodulator of the decode session
func WithDemodulator(demod Demodulator) Option {
	return func(c *Codec) error {
		c.demod = demod
		return nil
	}
}

// WithOscillator replaces the FSK oscillator of the encode session
func WithOscillator(osc Oscillator) Option {
	return func(c *Codec) error {
		c.osc = osc
		return nil
	}
}

// WithDemodConfig builds the demodulator from timing parameters
func WithDemodConfig(config fsk.DemodConfig) Option {
	return func(c *Codec) error {
		demod, err := fsk.NewDemodulator(config)
		if err != nil {
			return fmt.Errorf("failed to create demodulator: %w", err)
		}
		c.demod = demod
		return nil
	}
}

// WithOscConfig builds the oscillator from timing parameters
func WithOscConfig(config fsk.OscConfig) Option {
	return func(c *Codec) error {
		osc, err := fsk.NewOscillator(config)
		if err != nil {
			return fmt.Errorf("failed to create oscillator: %w", err)
		}
		c.osc = osc
		return nil
	}
}

// WithStrictFormat rejects frames whose start bit matches neither format
func WithStrictFormat() Option {
	return func(c *Codec) error {
		c.strict = true
		return nil
	}
}
