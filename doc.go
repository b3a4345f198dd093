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
Package lfrfid provides a pure Go toolkit for 125 kHz proximity card protocols.

Cards are described as protocols that turn a stream of carrier half-periods
into a decoded record and back again. A host feeds demodulator input
(alternating high and low half-periods, durations in microseconds) to every
protocol it cares about and asks each one whether a frame has been recognized.
The same protocol emulates a card by yielding half-periods, and prepares the
register image that clones the card onto a writable transponder.

Features:
  - Pyramid (Farpointe) 26-bit and 39-bit Wiegand over FSK2a RF/50
  - Sliding-window frame synchronization with checksum and preamble checks
  - Pulse synthesis for card emulation
  - T5577 register images for cloning
  - Confirmed reads over consecutive identical decodes (see package reader)

Basic Usage:

	import (
		"github.com/ZaparooProject/go-lfrfid/protocols"
		"github.com/ZaparooProject/go-lfrfid/reader"
	)

	registry, err := protocols.Default()
	if err != nil {
		log.Fatal(err)
	}

	r, err := reader.New(registry, nil)
	if err != nil {
		log.Fatal(err)
	}
	r.OnCardRead = func(card *reader.Card) error {
		fmt.Printf("%s: %s\n", card.Protocol, card.Brief)
		return nil
	}

	if err := r.Run(ctx, source); err != nil {
		log.Fatal(err)
	}

Cloning:

	codec, _ := pyramid.New()
	_ = codec.SetRecord(pyramid.Record{Format: pyramid.Format26, Facility: 101, Card: 12345})

	req := &lfrfid.WriteRequest{Type: lfrfid.WriteTypeT5577}
	if err := codec.WriteData(req); err != nil {
		log.Fatal(err)
	}
	fmt.Print(req.T5577.String())

Thread Safety:

Protocol instances hold decode and encode session state and are not safe for
concurrent use. Create one instance per pulse stream through a Registry.
*/
package lfrfid
