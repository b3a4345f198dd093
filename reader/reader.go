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

// Package reader confirms LF RFID cards from a stream of carrier half-periods.
//
// A Reader feeds every pulse to each protocol of a registry and reports a card
// once the same protocol has decoded the same data ValidateCount times in a
// row. Single decodes are never reported: a lone frame can pass the checksum
// of a protocol by chance.
package reader

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
)

// PulseSource yields demodulator input: half-periods in microseconds. It
// returns io.EOF when the capture ends.
type PulseSource interface {
	NextPulse() (lfrfid.LevelDuration, error)
}

// Card is a confirmed read.
type Card struct {
	Protocol     string
	Manufacturer string
	Rendered     string
	Brief        string
	Data         []byte
}

// Config holds configuration options for the Reader
type Config struct {
	// RemovalPulses is the number of half-periods without any decode after
	// which the card is considered gone. Zero disables removal tracking.
	RemovalPulses int
}

// DefaultConfig returns a removal window of roughly five Pyramid frames
func DefaultConfig() *Config {
	return &Config{RemovalPulses: 8192}
}

// Reader-specific errors
var (
	ErrReaderRunning = errors.New("reader is already running")
	ErrNoProtocols   = errors.New("registry has no protocols")
)

// Reader runs every registered protocol decoder over one pulse stream.
//
// Thread Safety: Feed and Reset must not be called concurrently with Run.
type Reader struct {
	log           *zap.Logger
	config        *Config
	OnCardRead    func(*Card) error
	OnCardRemoved func()
	protocols     []lfrfid.Protocol
	state         CardState
	running       atomic.Bool
}

// Option is a functional option for configuring a Reader
type Option func(*Reader) error

// WithLogger sets the logger used for read events
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		r.log = logger
		return nil
	}
}

// New creates a reader with one fresh instance of every protocol in registry.
func New(registry *lfrfid.Registry, config *Config, opts ...Option) (*Reader, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}
	if config == nil {
		config = DefaultConfig()
	}

	protocols, err := registry.NewAll()
	if err != nil {
		return nil, err
	}
	if len(protocols) == 0 {
		return nil, ErrNoProtocols
	}

	r := &Reader{
		log:       zap.NewNop(),
		config:    config,
		protocols: protocols,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.Reset()
	return r, nil
}

// Reset restarts every decoder and forgets the current card.
func (r *Reader) Reset() {
	for _, protocol := range r.protocols {
		protocol.DecoderStart()
	}
	r.state.TransitionToIdle()
}

// State returns the confirmation state of the card in the field
func (r *Reader) State() DetectionState {
	return r.state.DetectionState
}

// IsRunning returns whether Run is active
func (r *Reader) IsRunning() bool {
	return r.running.Load()
}

// Feed passes one half-period to every protocol. It returns the card when
// this pulse completes its confirmation.
func (r *Reader) Feed(pulse lfrfid.LevelDuration) (*Card, bool) {
	var card *Card
	decoded := false
	for _, protocol := range r.protocols {
		if !protocol.DecoderFeed(pulse.Level, pulse.Duration) {
			continue
		}
		decoded = true
		if confirmed := r.observe(protocol); confirmed != nil {
			card = confirmed
		}
	}

	if !decoded {
		r.expire()
	}
	return card, card != nil
}

func (r *Reader) observe(protocol lfrfid.Protocol) *Card {
	name := protocol.Name()
	data := protocol.Data()
	if r.state.Same(name, data) {
		r.state.Repeat()
	} else {
		r.state.TransitionToCandidate(name, data)
	}
	r.log.Debug("frame decoded",
		zap.String("protocol", name),
		zap.String("data", hex.EncodeToString(data)),
		zap.Int("matches", r.state.Matches))

	if r.state.DetectionState != StateCandidate || r.state.Matches < protocol.ValidateCount() {
		return nil
	}
	r.state.TransitionToConfirmed()

	card := &Card{
		Protocol:     name,
		Manufacturer: protocol.Manufacturer(),
		Data:         append([]byte(nil), data...),
		Rendered:     protocol.RenderData(),
		Brief:        protocol.RenderBriefData(),
	}
	r.log.Info("card read",
		zap.String("protocol", card.Protocol),
		zap.String("data", hex.EncodeToString(card.Data)))
	return card
}

func (r *Reader) expire() {
	if r.state.DetectionState == StateIdle || r.config.RemovalPulses <= 0 {
		return
	}
	r.state.SinceDecode++
	if r.state.SinceDecode < r.config.RemovalPulses {
		return
	}

	confirmed := r.state.DetectionState == StateConfirmed
	r.log.Debug("card left the field", zap.String("protocol", r.state.Protocol))
	r.state.TransitionToIdle()
	if confirmed && r.OnCardRemoved != nil {
		r.OnCardRemoved()
	}
}

// Run feeds pulses from src until the context is canceled, the source ends
// (nil error) or fails. Every confirmed card is passed to OnCardRead; an
// error from the callback stops the reader.
func (r *Reader) Run(ctx context.Context, src PulseSource) error {
	if src == nil {
		return errors.New("pulse source cannot be nil")
	}
	if !r.running.CompareAndSwap(false, true) {
		return ErrReaderRunning
	}
	defer r.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pulse, err := src.NextPulse()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read pulse: %w", err)
		}

		card, ok := r.Feed(pulse)
		if !ok || r.OnCardRead == nil {
			continue
		}
		if err := r.OnCardRead(card); err != nil {
			return fmt.Errorf("card read callback failed: %w", err)
		}
	}
}
