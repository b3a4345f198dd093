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

/*
Package pyramid implements the Farpointe/Pyramid low-frequency proximity card
protocol (26-bit and 39-bit Wiegand variants over FSK2a RF/50).

Wire frame

One transmission is 128 bits, repeated back to back by the card:

	bytes 0..2    preamble 0x00 0x01 0x01
	bytes 1..14   7 payload bits + 1 odd parity bit per byte
	byte  15      CRC-8/MAXIM over bytes 2..14

A decoder keeps a 152-bit sliding window: one frame plus the leading preamble
of the next repetition. After the parity bits are stripped, the 105 payload
bits at offsets 8..112 hold a Wiegand word whose start bit position gives the
format length (105 - position).

Usage

	codec, err := pyramid.New(pyramid.WithLogger(logger))
	if err != nil {
	    return err
	}

	codec.DecoderStart()
	for _, p := range pulses {
	    if codec.DecoderFeed(p.Level, p.Duration) {
	        fmt.Println(codec.RenderData())
	    }
	}

Encoding works the other way around:

	_ = codec.SetRecord(pyramid.Record{Format: pyramid.Format26, Facility: 101, Card: 12345})
	if err := codec.EncoderStart(); err != nil {
	    return err
	}
	next := codec.EncoderYield() // one half-period, in carrier cycles
*/
package pyramid
