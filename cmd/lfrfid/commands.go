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

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	lfrfid "github.com/ZaparooProject/go-lfrfid"
	"github.com/ZaparooProject/go-lfrfid/internal/config"
	"github.com/ZaparooProject/go-lfrfid/protocols"
	"github.com/ZaparooProject/go-lfrfid/protocols/pyramid"
	"github.com/ZaparooProject/go-lfrfid/reader"
)

// cliOptions holds the persistent flags and what they resolve to.
type cliOptions struct {
	log         *zap.Logger
	profile     *config.Profile
	profilePath string
	debug       bool
}

// recordFlags selects a Pyramid record on the command line.
type recordFlags struct {
	format   uint8
	facility uint32
	card     uint32
}

func (f *recordFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Uint8Var(&f.format, "format", uint8(pyramid.Format26), "Wiegand format (26 or 39)")
	cmd.Flags().Uint32Var(&f.facility, "fc", 0, "Facility code")
	cmd.Flags().Uint32Var(&f.card, "card", 0, "Card number")
}

func (f *recordFlags) record() pyramid.Record {
	return pyramid.Record{
		Format:   pyramid.Format(f.format),
		Facility: f.facility,
		Card:     f.card,
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:   "lfrfid",
		Short: "125 kHz proximity card encoder and decoder",
		Long: `Encode, decode and clone 125 kHz proximity cards.

Supported protocols:
  - Pyramid (Farpointe) 26-bit and 39-bit Wiegand, FSK2a RF/50

Decoding reads text pulse captures (one "<level> <µs>" pair per line) and
reports a card once it has been decoded three times in a row.`,
		Example: `  # Show the frame and T5577 image for a card
  lfrfid encode --fc 101 --card 12345

  # Simulate a card and decode the simulated carrier
  lfrfid encode --fc 101 --card 12345 --pulses 6000 | lfrfid decode -

  # Print the T5577 blocks for cloning
  lfrfid write --fc 101 --card 12345`,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&opts.profilePath, "profile", "", "YAML timing profile (default: built-in 125 kHz profile)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug output")

	root.AddCommand(
		newProtocolsCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newWriteCmd(opts),
		newProfileCmd(opts),
	)
	return root
}

func (o *cliOptions) init() error {
	log, err := newLogger(o.debug)
	if err != nil {
		return err
	}
	profile, err := config.Load(o.profilePath)
	if err != nil {
		return err
	}
	o.log = log
	o.profile = profile
	o.log.Debug("profile loaded",
		zap.String("path", o.profilePath),
		zap.Uint32("carrier_period_us", profile.CarrierPeriod))
	return nil
}

func (o *cliOptions) pyramidOptions() []pyramid.Option {
	return append(o.profile.PyramidOptions(), pyramid.WithLogger(o.log))
}

func (o *cliOptions) newPyramid(flags *recordFlags) (*pyramid.Codec, error) {
	codec, err := pyramid.New(o.pyramidOptions()...)
	if err != nil {
		return nil, err
	}
	if err := codec.SetRecord(flags.record()); err != nil {
		return nil, err
	}
	return codec, nil
}

func multiline(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func newProtocolsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List supported protocols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			registry, err := protocols.Default(opts.pyramidOptions()...)
			if err != nil {
				return err
			}
			instances, err := registry.NewAll()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, protocol := range instances {
				_, _ = fmt.Fprintf(out, "%-10s %-10s %s\n",
					protocol.Name(), protocol.Manufacturer(), protocol.Features())
			}
			return nil
		},
	}
}

func newEncodeCmd(opts *cliOptions) *cobra.Command {
	flags := &recordFlags{}
	var pulses int
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a card record into a frame and, optionally, a pulse capture",
		Long: `Encode a Pyramid record.

With --pulses the simulated carrier is printed as a pulse capture and every
other line is commented out, so the output can be piped into 'lfrfid decode -'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runEncode(cmd.OutOrStdout(), opts, flags, pulses)
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVar(&pulses, "pulses", 0, "Number of half-periods to emit")
	return cmd
}

func runEncode(out io.Writer, opts *cliOptions, flags *recordFlags, pulses int) error {
	codec, err := opts.newPyramid(flags)
	if err != nil {
		return err
	}
	frame, err := codec.Frame()
	if err != nil {
		return err
	}

	prefix := ""
	if pulses > 0 {
		prefix = "# "
	}
	printf := func(format string, args ...any) {
		_, _ = fmt.Fprintf(out, prefix+format, args...)
	}
	printf("%s (%s)\n", codec.Name(), codec.Manufacturer())
	for _, line := range strings.Split(multiline(codec.RenderData()), "\n") {
		printf("%s\n", line)
	}
	printf("Data: %s\n", hex.EncodeToString(codec.Data()))
	printf("Frame: %s\n", frame.String())

	if pulses <= 0 {
		return nil
	}
	if err := codec.EncoderStart(); err != nil {
		return err
	}
	for i := 0; i < pulses; i++ {
		pulse := codec.EncoderYield()
		pulse.Duration *= opts.profile.CarrierPeriod
		_, _ = fmt.Fprintln(out, formatPulse(pulse))
	}
	return nil
}

func newDecodeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file|-]",
		Short: "Decode cards from a pulse capture",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open capture: %w", err)
				}
				defer func() { _ = file.Close() }()
				in = file
			}
			return runDecode(cmd, opts, in)
		},
	}
}

func runDecode(cmd *cobra.Command, opts *cliOptions, in io.Reader) error {
	registry, err := protocols.Default(opts.pyramidOptions()...)
	if err != nil {
		return err
	}
	r, err := reader.New(registry, nil, reader.WithLogger(opts.log))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	found := 0
	r.OnCardRead = func(card *reader.Card) error {
		found++
		_, _ = fmt.Fprintf(out, "%s: %s [%s]\n", card.Protocol,
			strings.ReplaceAll(card.Brief, "\r\n", ", "), hex.EncodeToString(card.Data))
		return nil
	}
	r.OnCardRemoved = func() {
		_, _ = fmt.Fprintln(out, "Card removed")
	}

	if err := r.Run(cmd.Context(), newLineSource(in)); err != nil {
		return err
	}
	if found == 0 {
		_, _ = fmt.Fprintln(out, "No card detected")
	}
	return nil
}

func newWriteCmd(opts *cliOptions) *cobra.Command {
	flags := &recordFlags{}
	var writeType string
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Print the register image that clones a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			codec, err := opts.newPyramid(flags)
			if err != nil {
				return err
			}
			req := &lfrfid.WriteRequest{Type: lfrfid.WriteType(writeType)}
			if err := codec.WriteData(req); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, multiline(codec.RenderData()))
			_, _ = fmt.Fprint(out, req.T5577.String())
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&writeType, "type", string(lfrfid.WriteTypeT5577), "Target chip (t5577)")
	return cmd
}

func newProfileCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Print the effective timing profile as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			data, err := opts.profile.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
