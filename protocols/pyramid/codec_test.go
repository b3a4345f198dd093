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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
	"github.com/ZaparooProject/go-lfrfid/fsk"
	"github.com/ZaparooProject/go-lfrfid/internal/bitlib"
	testutil "github.com/ZaparooProject/go-lfrfid/internal/testing"
)

// maxHalfPeriods bounds the pulses needed for a first decode: one frame plus
// a full window at fc/8..fc/10 and RF/50 stays well below it.
const maxHalfPeriods = 2400

func newCodec(t *testing.T, opts ...Option) *Codec {
	t.Helper()
	codec, err := New(opts...)
	require.NoError(t, err)
	return codec
}

func feedFrame(c *Codec, frame Frame, bits int) bool {
	decoded := false
	for i := 0; i < bits; i++ {
		if c.FeedBit(bitlib.GetBit(frame[:], i%FrameBits)) {
			decoded = true
		}
	}
	return decoded
}

// decodePulses feeds pulses from next until the codec reports a frame.
func decodePulses(t *testing.T, c *Codec, next func() (lfrfid.LevelDuration, error)) int {
	t.Helper()
	c.DecoderStart()
	for i := 1; i <= maxHalfPeriods; i++ {
		pulse, err := next()
		require.NoError(t, err)
		if c.DecoderFeed(pulse.Level, pulse.Duration) {
			return i
		}
	}
	t.Fatalf("no frame decoded within %d half-periods", maxHalfPeriods)
	return 0
}

func TestCodecMetadata(t *testing.T) {
	t.Parallel()
	codec := newCodec(t)

	assert.Equal(t, "Pyramid", codec.Name())
	assert.Equal(t, "Farpointe", codec.Manufacturer())
	assert.Equal(t, lfrfid.FeatureFSK, codec.Features())
	assert.Equal(t, 3, codec.ValidateCount())
	assert.Equal(t, Record{Format: Format26}, codec.Record())
	assert.Equal(t, []byte{26, 0, 0, 0}, codec.Data())
}

func TestCodecDecode26(t *testing.T) {
	t.Parallel()
	source := newCodec(t)
	require.NoError(t, source.SetRecord(Record{Format: Format26, Facility: 101, Card: 12345}))
	frame, err := source.Frame()
	require.NoError(t, err)

	codec := newCodec(t)
	codec.DecoderStart()
	require.True(t, feedFrame(codec, frame, EncodedBitSize))

	assert.Equal(t, []byte{26, 101, 0x30, 0x39}, codec.Data())
	assert.Equal(t, "Format: 26\r\nFC: 101, Card: 12345", codec.RenderData())
	assert.Equal(t, codec.RenderData(), codec.RenderBriefData())
}

func TestCodecDecode39(t *testing.T) {
	t.Parallel()
	want := Record{Format: Format39, Facility: 4000, Card: 500000}
	frame, err := Encode(want)
	require.NoError(t, err)

	codec := newCodec(t)
	codec.DecoderStart()
	require.True(t, feedFrame(codec, frame, EncodedBitSize))
	assert.Equal(t, want, codec.Record())
	assert.Equal(t, "Format: 39\r\nFC: 4000, Card: 500000", codec.RenderData())

	req := &lfrfid.WriteRequest{Type: lfrfid.WriteTypeT5577}
	require.ErrorIs(t, codec.WriteData(req), lfrfid.ErrUnsupportedFormat)
	assert.Zero(t, req.T5577.BlocksToWrite)
}

func TestCodecDecoderStartForgetsWindow(t *testing.T) {
	t.Parallel()
	frame, err := Encode(Record{Format: Format26, Facility: 1, Card: 1})
	require.NoError(t, err)

	codec := newCodec(t)
	codec.DecoderStart()
	require.False(t, feedFrame(codec, frame, EncodedBitSize-1))
	codec.DecoderStart()
	require.False(t, codec.FeedBit(bitlib.GetBit(frame[:], (EncodedBitSize-1)%FrameBits)))
}

func TestCodecPulseRoundTrip(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(125))
	records := []Record{
		{Format: Format26, Facility: 101, Card: 12345},
		{Format: Format26},
		{Format: Format39, Facility: 131071, Card: 1048575},
	}
	for i := 0; i < 20; i++ {
		records = append(records, randomRecord(rng))
	}

	for _, record := range records {
		encoder := newCodec(t)
		require.NoError(t, encoder.SetRecord(record))
		tag, err := testutil.NewVirtualTag(encoder)
		require.NoError(t, err)

		decoder := newCodec(t)
		decodePulses(t, decoder, tag.NextPulse)
		assert.Equal(t, record, decoder.Record())
	}
}

func TestCodecIgnoresNoise(t *testing.T) {
	t.Parallel()
	codec := newCodec(t, WithStrictFormat())
	codec.DecoderStart()
	for _, pulse := range testutil.BuildNoisePulses(7, 20000) {
		require.False(t, codec.DecoderFeed(pulse.Level, pulse.Duration))
	}
	assert.Equal(t, Record{Format: Format26}, codec.Record())
}

func TestCodecWriteDataT5577(t *testing.T) {
	t.Parallel()
	codec := newCodec(t)
	require.NoError(t, codec.SetRecord(Record{Format: Format26, Facility: 101, Card: 12345}))

	req := &lfrfid.WriteRequest{Type: lfrfid.WriteTypeT5577}
	require.NoError(t, codec.WriteData(req))

	assert.Equal(t, 5, req.T5577.BlocksToWrite)
	assert.Equal(t, [lfrfid.T5577BlockCount]uint32{
		0x00107080, 0x00010101, 0x01010101, 0x0101014C, 0x5280E629,
	}, req.T5577.Block)
	assert.Equal(t, 4, req.T5577.MaxBlock())
	assert.Equal(t, lfrfid.T5577ModulationFSK2a, req.T5577.Modulation())
	assert.Equal(t, 50, req.T5577.BitrateCycles())
	assert.Equal(t, Record{Format: Format26, Facility: 101, Card: 12345}, codec.Record())
}

func TestCodecWriteDataReadBack(t *testing.T) {
	t.Parallel()
	record := Record{Format: Format26, Facility: 42, Card: 4242}
	writer := newCodec(t)
	require.NoError(t, writer.SetRecord(record))

	req := &lfrfid.WriteRequest{Type: lfrfid.WriteTypeT5577}
	require.NoError(t, writer.WriteData(req))

	chip := testutil.NewVirtualT5577()
	require.NoError(t, chip.Write(req))

	reader := newCodec(t)
	decodePulses(t, reader, chip.NextPulse)
	assert.Equal(t, record, reader.Record())
}

func TestCodecWriteDataErrors(t *testing.T) {
	t.Parallel()
	codec := newCodec(t)

	require.ErrorIs(t, codec.WriteData(nil), lfrfid.ErrInvalidData)

	req := &lfrfid.WriteRequest{Type: lfrfid.WriteTypeEM4305}
	require.ErrorIs(t, codec.WriteData(req), lfrfid.ErrUnsupportedWriteType)
	assert.Zero(t, req.T5577.BlocksToWrite)
}

func TestCodecSetData(t *testing.T) {
	t.Parallel()
	codec := newCodec(t)

	require.NoError(t, codec.SetData([]byte{26, 7, 0x01, 0x00}))
	assert.Equal(t, Record{Format: Format26, Facility: 7, Card: 256}, codec.Record())

	require.NoError(t, codec.SetData(Record{Format: Format39, Facility: 99999, Card: 77}.Bytes()))
	assert.Equal(t, Record{Format: Format39, Facility: 99999, Card: 77}, codec.Record())

	require.Error(t, codec.SetData([]byte{40, 1, 2, 3}))
	require.ErrorIs(t, codec.SetRecord(Record{Format: Format26, Card: 70000}), ErrFieldRange)
	assert.Equal(t, Record{Format: Format39, Facility: 99999, Card: 77}, codec.Record())
}

func TestCodecOptions(t *testing.T) {
	t.Parallel()

	_, err := New(WithLogger(nil))
	require.Error(t, err)

	_, err = New(WithDemodConfig(fsk.DemodConfig{MinPeriod: 100, MaxPeriod: 10, BitPeriod: 400}))
	require.ErrorIs(t, err, fsk.ErrInvalidConfig)

	_, err = New(WithOscConfig(fsk.OscConfig{}))
	require.ErrorIs(t, err, fsk.ErrInvalidConfig)

	core, logs := observer.New(zap.DebugLevel)
	codec := newCodec(t, WithLogger(zap.New(core)))
	frame, err := Encode(Record{Format: Format26, Facility: 5, Card: 6})
	require.NoError(t, err)
	codec.DecoderStart()
	require.True(t, feedFrame(codec, frame, EncodedBitSize))
	assert.Equal(t, 1, logs.FilterMessage("pyramid frame decoded").Len())
}

func TestRegister(t *testing.T) {
	t.Parallel()
	registry := lfrfid.NewRegistry()
	require.NoError(t, Register(registry))
	require.ErrorIs(t, Register(registry), lfrfid.ErrDuplicateProtocol)

	protocol, err := registry.New("pyramid")
	require.NoError(t, err)
	assert.Equal(t, Name, protocol.Name())
}
