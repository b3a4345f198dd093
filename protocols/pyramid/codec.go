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
	"fmt"

	"go.uber.org/zap"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
	"github.com/ZaparooProject/go-lfrfid/fsk"
	"github.com/ZaparooProject/go-lfrfid/internal/bitlib"
)

// Protocol metadata
const (
	Name          = "Pyramid"
	Manufacturer  = "Farpointe"
	ValidateCount = 3
)

// T5577Config is block 0 for a Pyramid clone: FSK2a, RF/50, four data blocks.
const T5577Config = lfrfid.T5577ModulationFSK2a | lfrfid.T5577BitrateRF50 |
	4<<lfrfid.T5577MaxBlockShift

// Demodulator turns carrier half-periods into data bits.
type Demodulator interface {
	// Feed returns count bits of value bit completed by this half-period
	Feed(level bool, duration uint32) (bit bool, count int)
	Reset()
}

// Codec is the Pyramid implementation of lfrfid.Protocol. It binds one
// decode session and one encode session to a single record.
//
// Thread Safety: Codec is NOT thread-safe.
type Codec struct {
	log    *zap.Logger
	demod  Demodulator
	osc    Oscillator
	sync   *Synchronizer
	synth  *Synthesizer
	record Record
	strict bool
}

var _ lfrfid.Protocol = (*Codec)(nil)

// New creates a Pyramid codec with the default fc/8 / fc/10 RF/50 timing.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{
		log:    zap.NewNop(),
		record: Record{Format: Format26},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.demod == nil {
		demod, err := fsk.NewDemodulator(fsk.DefaultDemodConfig())
		if err != nil {
			return nil, err
		}
		c.demod = demod
	}
	if c.osc == nil {
		osc, err := fsk.NewOscillator(fsk.DefaultOscConfig())
		if err != nil {
			return nil, err
		}
		c.osc = osc
	}

	c.sync = NewSynchronizer(Validator{Strict: c.strict})
	c.synth = NewSynthesizer(c.osc)
	return c, nil
}

// Factory returns an lfrfid.Factory creating codecs with opts.
func Factory(opts ...Option) lfrfid.Factory {
	return func() (lfrfid.Protocol, error) {
		return New(opts...)
	}
}

// Register adds the Pyramid protocol to registry.
func Register(registry *lfrfid.Registry, opts ...Option) error {
	return registry.Register(Name, Factory(opts...))
}

// Name returns the protocol name
func (*Codec) Name() string { return Name }

// Manufacturer returns the card manufacturer
func (*Codec) Manufacturer() string { return Manufacturer }

// Features reports FSK modulation
func (*Codec) Features() lfrfid.Feature { return lfrfid.FeatureFSK }

// ValidateCount returns the number of identical reads that confirm a card
func (*Codec) ValidateCount() int { return ValidateCount }

// Record returns the current record
func (c *Codec) Record() Record {
	return c.record
}

// SetRecord replaces the current record after validating its ranges
func (c *Codec) SetRecord(record Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	c.record = record
	return nil
}

// Data returns the raw bytes of the current record
func (c *Codec) Data() []byte {
	return c.record.Bytes()
}

// SetData replaces the current record from raw bytes
func (c *Codec) SetData(data []byte) error {
	record, err := ParseRecord(data)
	if err != nil {
		return err
	}
	return c.SetRecord(record)
}

// DecoderStart resets the decode session
func (c *Codec) DecoderStart() {
	c.sync.Reset()
	c.demod.Reset()
}

// DecoderFeed consumes one half-period (µs) and reports whether a frame was
// recognized. Every recognized frame replaces the current record.
func (c *Codec) DecoderFeed(level bool, duration uint32) bool {
	bit, count := c.demod.Feed(level, duration)
	decoded := false
	for i := 0; i < count; i++ {
		if c.FeedBit(bit) {
			decoded = true
		}
	}
	return decoded
}

// FeedBit pushes one already demodulated bit into the decode session.
func (c *Codec) FeedBit(bit bool) bool {
	record, ok := c.sync.PushBit(bit)
	if !ok {
		return false
	}
	c.record = record
	c.log.Debug("pyramid frame decoded",
		zap.Uint8("format", uint8(record.Format)),
		zap.Uint32("facility", record.Facility),
		zap.Uint32("card", record.Card))
	return true
}

// Frame encodes the current record.
func (c *Codec) Frame() (Frame, error) {
	return Encode(c.record)
}

// EncoderStart re-derives the frame from the current record and rewinds the
// pulse synthesizer.
func (c *Codec) EncoderStart() error {
	frame, err := Encode(c.record)
	if err != nil {
		return fmt.Errorf("failed to encode pyramid record: %w", err)
	}
	c.synth.Start(frame)
	c.log.Debug("pyramid encoder started", zap.Stringer("frame", &frame))
	return nil
}

// EncoderYield returns the next half-period in carrier cycles.
func (c *Codec) EncoderYield() lfrfid.LevelDuration {
	return c.synth.Yield()
}

// RenderData renders the current record
func (c *Codec) RenderData() string {
	return c.record.String()
}

// RenderBriefData renders the current record
func (c *Codec) RenderBriefData() string {
	return c.record.String()
}

// WriteData fills a T5577 register image for the current record. Only
// Format26 has a defined write mapping.
func (c *Codec) WriteData(req *lfrfid.WriteRequest) error {
	if req == nil {
		return fmt.Errorf("%w: nil request", lfrfid.ErrInvalidData)
	}
	if req.Type != lfrfid.WriteTypeT5577 {
		return fmt.Errorf("%w: %s", lfrfid.ErrUnsupportedWriteType, req.Type)
	}
	if c.record.Format != Format26 {
		return fmt.Errorf("%w: pyramid format %d", lfrfid.ErrUnsupportedFormat, uint8(c.record.Format))
	}

	frame, err := Encode(c.record)
	if err != nil {
		return fmt.Errorf("failed to encode pyramid record: %w", err)
	}
	// The record becomes exactly what a reader decodes from the written tag.
	stripped := frame
	Strip(&stripped)
	c.record = DecodeFields(&stripped, Format26)
	if err := c.EncoderStart(); err != nil {
		return err
	}

	req.T5577 = lfrfid.T5577Blocks{}
	req.T5577.Block[0] = T5577Config
	for i := 0; i < FrameBits/32; i++ {
		req.T5577.Block[i+1] = bitlib.GetBits(frame[:], i*32, 32)
	}
	req.T5577.BlocksToWrite = 1 + FrameBits/32
	c.log.Debug("pyramid write data prepared", zap.Int("blocks", req.T5577.BlocksToWrite))
	return nil
}
