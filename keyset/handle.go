// Copyright 2025 The Clavis Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keyset

import (
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/internal/outputprefix"
	"github.com/clavis-crypto/clavis-go/internal/primitiveset"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
)

// Handle is an immutable keyset with a designated primary key. Handles
// are safe for concurrent use.
type Handle struct {
	entries  []*Entry
	primary  int
	registry *registry.Registry
}

// NewHandle generates a fresh single-key keyset for params and returns
// its handle. The generated key is enabled and primary.
func NewHandle(params key.Parameters, opts ...ManagerOption) (*Handle, error) {
	m := NewManager(opts...)
	keyID, err := m.Add(params)
	if err != nil {
		return nil, err
	}
	if err := m.SetPrimary(keyID); err != nil {
		return nil, err
	}
	return m.Handle()
}

// NewHandleForTemplate generates a fresh single-key keyset from the named
// template of the manager's registry.
func NewHandleForTemplate(name string, opts ...ManagerOption) (*Handle, error) {
	m := NewManager(opts...)
	params, err := m.registry.Template(name)
	if err != nil {
		return nil, err
	}
	keyID, err := m.Add(params)
	if err != nil {
		return nil, err
	}
	if err := m.SetPrimary(keyID); err != nil {
		return nil, err
	}
	return m.Handle()
}

// Len returns the number of keys in the keyset.
func (h *Handle) Len() int { return len(h.entries) }

// Entry returns the i-th key of the keyset, in insertion order.
func (h *Handle) Entry(i int) (*Entry, error) {
	if i < 0 || i >= len(h.entries) {
		return nil, fmt.Errorf("keyset: entry index %d out of range [0, %d)", i, len(h.entries))
	}
	return h.entries[i], nil
}

// Primary returns the primary key of the keyset.
func (h *Handle) Primary() (*Entry, error) {
	if h.primary < 0 || h.primary >= len(h.entries) {
		return nil, fmt.Errorf("keyset: no primary key: %w", clavis.ErrInvalidKeysetState)
	}
	return h.entries[h.primary], nil
}

// publicKeyer is implemented by asymmetric private keys.
type publicKeyer interface {
	PublicKey() (key.Key, error)
}

// Public returns a handle holding the public keys of an asymmetric
// keyset, preserving IDs, statuses and the primary designation.
func (h *Handle) Public() (*Handle, error) {
	entries := make([]*Entry, len(h.entries))
	for i, e := range h.entries {
		if e.status == Destroyed {
			entries[i] = &Entry{status: Destroyed, keyID: e.keyID, isPrimary: e.isPrimary}
			continue
		}
		pk, ok := e.key.(publicKeyer)
		if !ok {
			return nil, fmt.Errorf("keyset: key %d has no public key", e.keyID)
		}
		pub, err := pk.PublicKey()
		if err != nil {
			return nil, err
		}
		entries[i] = &Entry{key: pub, status: e.status, keyID: e.keyID, isPrimary: e.isPrimary}
	}
	return &Handle{entries: entries, primary: h.primary, registry: h.registry}, nil
}

// Primitives constructs the primitive of every enabled key of h and
// groups them by output prefix. Factory functions of the per-primitive
// packages use this to build wrapped primitives.
func Primitives[T any](h *Handle) (*primitiveset.PrimitiveSet[T], error) {
	ps := primitiveset.New[T]()
	for i, e := range h.entries {
		if e.status != Enabled {
			continue
		}
		p, err := h.registry.Primitive(e.key)
		if err != nil {
			return nil, fmt.Errorf("keyset: primitive for key %d: %w", e.keyID, err)
		}
		typed, ok := p.(T)
		if !ok {
			return nil, fmt.Errorf("keyset: key %d yields a %T, not the requested primitive", e.keyID, p)
		}
		var prefix []byte
		if _, required := e.key.IDRequirement(); required {
			prefix = outputprefix.Prefixed(e.keyID)
		}
		if _, err := ps.Add(typed, e.keyID, prefix, i == h.primary); err != nil {
			return nil, err
		}
	}
	if ps.Primary == nil {
		return nil, fmt.Errorf("keyset: no enabled primary key: %w", clavis.ErrInvalidKeysetState)
	}
	return ps, nil
}
