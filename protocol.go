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

package lfrfid

// LevelDuration is one half-period of a carrier waveform: the line level and
// how long it is held. Decoders receive durations in microseconds; encoders
// emit durations in carrier cycles.
type LevelDuration struct {
	Duration uint32
	Level    bool
}

// Feature describes the modulation family a protocol uses.
type Feature uint8

const (
	// FeatureASK marks amplitude-shift-keyed protocols.
	FeatureASK Feature = 1 << iota
	// FeatureFSK marks frequency-shift-keyed protocols.
	FeatureFSK
	// FeaturePSK marks phase-shift-keyed protocols.
	FeaturePSK
)

// String returns the modulation names set in f.
func (f Feature) String() string {
	names := ""
	for _, item := range []struct {
		name string
		flag Feature
	}{{"ASK", FeatureASK}, {"FSK", FeatureFSK}, {"PSK", FeaturePSK}} {
		if f&item.flag == 0 {
			continue
		}
		if names != "" {
			names += "|"
		}
		names += item.name
	}
	if names == "" {
		return "none"
	}
	return names
}

// Protocol is the capability set every low-frequency card codec exposes to
// the read/write/emulate pipeline. A Protocol instance owns one decode
// session, one encode session and the record they share.
//
// Thread Safety: Protocol implementations are NOT thread-safe. The pipeline
// drives each instance from a single goroutine, one pulse at a time.
type Protocol interface {
	// Name returns the protocol name, e.g. "Pyramid"
	Name() string

	// Manufacturer returns the card manufacturer
	Manufacturer() string

	// Features returns the modulation family
	Features() Feature

	// ValidateCount is how many identical consecutive decodes confirm a read
	ValidateCount() int

	// Data returns the raw bytes of the current decoded record
	Data() []byte

	// SetData replaces the current record from raw bytes
	SetData(data []byte) error

	// DecoderStart resets the decode session
	DecoderStart()

	// DecoderFeed consumes one half-period and reports whether a record was decoded
	DecoderFeed(level bool, duration uint32) bool

	// EncoderStart derives the emitted frame from the current record
	EncoderStart() error

	// EncoderYield returns the next half-period of the emitted waveform
	EncoderYield() LevelDuration

	// RenderData returns a multi-line human readable rendering of the record
	RenderData() string

	// RenderBriefData returns a compact rendering of the record
	RenderBriefData() string

	// WriteData fills req with the register image that reproduces the record
	WriteData(req *WriteRequest) error
}
