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

import (
	"fmt"
	"strings"
)

// Factory creates a fresh, independent Protocol instance.
type Factory func() (Protocol, error)

// Registry maps protocol names to factories. It holds no instances: every
// call to New returns a protocol with its own decode and encode sessions.
// Names are matched case-insensitively.
type Registry struct {
	factories map[string]Factory
	names     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a factory under name. Registering the same name twice fails.
func (r *Registry) Register(name string, factory Factory) error {
	key := normalizeName(name)
	if key == "" || factory == nil {
		return fmt.Errorf("invalid registration for protocol %q", name)
	}
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProtocol, name)
	}
	r.factories[key] = factory
	r.names = append(r.names, name)
	return nil
}

// New creates a protocol instance by name.
func (r *Registry) New(name string) (Protocol, error) {
	factory, ok := r.factories[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProtocol, name)
	}
	protocol, err := factory()
	if err != nil {
		return nil, fmt.Errorf("failed to create protocol %s: %w", name, err)
	}
	return protocol, nil
}

// NewAll creates one instance of every registered protocol, in registration order.
func (r *Registry) NewAll() ([]Protocol, error) {
	protocols := make([]Protocol, 0, len(r.names))
	for _, name := range r.names {
		protocol, err := r.New(name)
		if err != nil {
			return nil, err
		}
		protocols = append(protocols, protocol)
	}
	return protocols, nil
}

// Names returns the registered protocol names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
