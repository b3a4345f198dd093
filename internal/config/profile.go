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

// Package config loads the FSK timing profile used by the command line tools.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ZaparooProject/go-lfrfid/fsk"
	"github.com/ZaparooProject/go-lfrfid/protocols/pyramid"
)

// DemodProfile is the decoder timing in microseconds.
type DemodProfile struct {
	MinPeriod uint32 `yaml:"min_period_us"`
	MaxPeriod uint32 `yaml:"max_period_us"`
	BitPeriod uint32 `yaml:"bit_period_us"`
	Invert    bool   `yaml:"invert,omitempty"`
}

// OscProfile is the encoder timing in carrier cycles.
type OscProfile struct {
	LowPeriod  uint32 `yaml:"low_period"`
	HighPeriod uint32 `yaml:"high_period"`
	BitCycles  uint32 `yaml:"bit_cycles"`
}

// Profile describes the carrier and FSK timing of a reader front end.
type Profile struct {
	CarrierPeriod uint32       `yaml:"carrier_period_us"`
	Demod         DemodProfile `yaml:"demod"`
	Osc           OscProfile   `yaml:"osc"`
}

// Default returns the 125 kHz, fc/8 / fc/10, RF/50 profile.
func Default() *Profile {
	demod := fsk.DefaultDemodConfig()
	osc := fsk.DefaultOscConfig()
	return &Profile{
		CarrierPeriod: fsk.CarrierPeriodMicros,
		Demod: DemodProfile{
			MinPeriod: demod.MinPeriod,
			MaxPeriod: demod.MaxPeriod,
			BitPeriod: demod.BitPeriod,
			Invert:    demod.Invert,
		},
		Osc: OscProfile{
			LowPeriod:  osc.LowPeriod,
			HighPeriod: osc.HighPeriod,
			BitCycles:  osc.BitCycles,
		},
	}
}

// Parse decodes a YAML profile. Keys missing from data keep their defaults.
func Parse(data []byte) (*Profile, error) {
	profile := Default()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

// Load reads a YAML profile from path. An empty path returns the default.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // user-supplied profile path
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return data, nil
}

// Validate checks the carrier period and both FSK timings.
func (p *Profile) Validate() error {
	if p.CarrierPeriod == 0 {
		return errors.New("carrier period must be positive")
	}
	if err := p.DemodConfig().Validate(); err != nil {
		return fmt.Errorf("demod: %w", err)
	}
	if err := p.OscConfig().Validate(); err != nil {
		return fmt.Errorf("osc: %w", err)
	}
	return nil
}

// DemodConfig returns the decoder timing.
func (p *Profile) DemodConfig() fsk.DemodConfig {
	return fsk.DemodConfig{
		MinPeriod: p.Demod.MinPeriod,
		MaxPeriod: p.Demod.MaxPeriod,
		BitPeriod: p.Demod.BitPeriod,
		Invert:    p.Demod.Invert,
	}
}

// OscConfig returns the encoder timing.
func (p *Profile) OscConfig() fsk.OscConfig {
	return fsk.OscConfig{
		LowPeriod:  p.Osc.LowPeriod,
		HighPeriod: p.Osc.HighPeriod,
		BitCycles:  p.Osc.BitCycles,
	}
}

// PyramidOptions returns codec options applying the profile timing.
func (p *Profile) PyramidOptions() []pyramid.Option {
	return []pyramid.Option{
		pyramid.WithDemodConfig(p.DemodConfig()),
		pyramid.WithOscConfig(p.OscConfig()),
	}
}
