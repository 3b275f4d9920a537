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
	"github.com/clavis-crypto/clavis-go/internal/random"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
)

// Manager builds a keyset entry by entry. It is not safe for concurrent
// use. Call [Manager.Handle] to obtain an immutable snapshot.
type Manager struct {
	registry *registry.Registry
	entries  []*Entry
	// primary is the index of the primary entry, or -1.
	primary int
}

// ManagerOption configures a [Manager].
type ManagerOption func(*Manager)

// WithRegistry makes the manager use r instead of the process-wide
// registry. This is mainly useful in tests, which should build a fresh
// registry per test case instead of mutating the shared one.
func WithRegistry(r *registry.Registry) ManagerOption {
	return func(m *Manager) { m.registry = r }
}

// NewManager returns a manager for an empty keyset.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{registry: registry.Default(), primary: -1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewManagerFromHandle returns a manager seeded with the keys of h, e.g.
// to rotate an existing keyset.
func NewManagerFromHandle(h *Handle, opts ...ManagerOption) *Manager {
	m := &Manager{registry: h.registry, primary: -1}
	for _, opt := range opts {
		opt(m)
	}
	for i, e := range h.entries {
		copied := *e
		m.entries = append(m.entries, &copied)
		if i == h.primary {
			m.primary = i
		}
	}
	return m
}

// KeyOption configures a key added with [Manager.AddKey].
type KeyOption func(*keyOptions)

type keyOptions struct {
	fixedID    uint32
	hasFixedID bool
	status     KeyStatus
	asPrimary  bool
}

// WithFixedID assigns the given keyset ID to the key instead of a random
// one.
func WithFixedID(id uint32) KeyOption {
	return func(o *keyOptions) { o.fixedID = id; o.hasFixedID = true }
}

// WithStatus sets the initial status of the key. The default is
// [Enabled].
func WithStatus(s KeyStatus) KeyOption {
	return func(o *keyOptions) { o.status = s }
}

// AsPrimary makes the key the primary of the keyset. The key must be
// enabled.
func AsPrimary() KeyOption {
	return func(o *keyOptions) { o.asPrimary = true }
}

// Add generates a fresh key for params and adds it enabled to the keyset,
// returning the assigned keyset ID. The new key does not become primary;
// see [Manager.SetPrimary].
func (m *Manager) Add(params key.Parameters) (uint32, error) {
	keyID := m.newKeyID()
	k, err := m.registry.NewKey(params, keyID)
	if err != nil {
		return 0, err
	}
	return m.AddKey(k, WithFixedID(keyID))
}

// AddKey adds an existing key to the keyset and returns its keyset ID.
//
// A key whose parameters carry an ID requirement must be added under
// exactly that ID; WithFixedID with a different value fails. Keys without
// an ID requirement get a fresh random ID unless one is fixed.
func (m *Manager) AddKey(k key.Key, opts ...KeyOption) (uint32, error) {
	o := keyOptions{status: Enabled}
	for _, opt := range opts {
		opt(&o)
	}
	keyID := o.fixedID
	if !o.hasFixedID {
		if requiredID, required := k.IDRequirement(); required {
			keyID = requiredID
		} else {
			keyID = m.newKeyID()
		}
	}
	if err := validateEntryID(k, keyID); err != nil {
		return 0, fmt.Errorf("keyset: %v: %w", err, clavis.ErrInvalidKeysetState)
	}
	if m.hasKeyID(keyID) {
		return 0, fmt.Errorf("keyset: key ID %d already in use: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	if o.status == Destroyed {
		return 0, fmt.Errorf("keyset: cannot add a key as destroyed: %w", clavis.ErrInvalidKeysetState)
	}
	if o.asPrimary && o.status != Enabled {
		return 0, fmt.Errorf("keyset: primary key must be enabled: %w", clavis.ErrInvalidKeysetState)
	}
	m.entries = append(m.entries, &Entry{key: k, status: o.status, keyID: keyID})
	if o.asPrimary {
		if err := m.SetPrimary(keyID); err != nil {
			m.entries = m.entries[:len(m.entries)-1]
			return 0, err
		}
	}
	return keyID, nil
}

// SetPrimary makes the enabled key with the given ID the primary of the
// keyset.
func (m *Manager) SetPrimary(keyID uint32) error {
	i, err := m.find(keyID)
	if err != nil {
		return err
	}
	if m.entries[i].status != Enabled {
		return fmt.Errorf("keyset: key %d is not enabled: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	if m.primary >= 0 {
		m.entries[m.primary].isPrimary = false
	}
	m.entries[i].isPrimary = true
	m.primary = i
	return nil
}

// Enable marks the key with the given ID enabled. A destroyed key cannot
// be enabled.
func (m *Manager) Enable(keyID uint32) error {
	i, err := m.find(keyID)
	if err != nil {
		return err
	}
	if m.entries[i].status == Destroyed {
		return fmt.Errorf("keyset: cannot enable the destroyed key %d: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	m.entries[i].status = Enabled
	return nil
}

// Disable marks the key with the given ID disabled. The primary key
// cannot be disabled, and a destroyed key stays destroyed.
func (m *Manager) Disable(keyID uint32) error {
	i, err := m.find(keyID)
	if err != nil {
		return err
	}
	if i == m.primary {
		return fmt.Errorf("keyset: cannot disable the primary key %d: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	if m.entries[i].status == Destroyed {
		return fmt.Errorf("keyset: cannot disable the destroyed key %d: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	m.entries[i].status = Disabled
	return nil
}

// Destroy drops the key material of the key with the given ID. The entry
// and its ID stay in the keyset with status [Destroyed]. The primary key
// cannot be destroyed.
func (m *Manager) Destroy(keyID uint32) error {
	i, err := m.find(keyID)
	if err != nil {
		return err
	}
	if i == m.primary {
		return fmt.Errorf("keyset: cannot destroy the primary key %d: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	m.entries[i].key = nil
	m.entries[i].status = Destroyed
	return nil
}

// Delete removes the key with the given ID from the keyset. The primary
// key cannot be deleted.
func (m *Manager) Delete(keyID uint32) error {
	i, err := m.find(keyID)
	if err != nil {
		return err
	}
	if i == m.primary {
		return fmt.Errorf("keyset: cannot delete the primary key %d: %w", keyID, clavis.ErrInvalidKeysetState)
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	if m.primary > i {
		m.primary--
	}
	return nil
}

// Handle returns an immutable snapshot of the keyset. It fails if the
// keyset is empty or has no enabled primary key. The manager stays usable
// afterwards; later mutations do not affect the returned handle.
func (m *Manager) Handle() (*Handle, error) {
	if len(m.entries) == 0 {
		return nil, fmt.Errorf("keyset: empty keyset: %w", clavis.ErrInvalidKeysetState)
	}
	if m.primary < 0 {
		return nil, fmt.Errorf("keyset: no primary key set: %w", clavis.ErrInvalidKeysetState)
	}
	if m.entries[m.primary].status != Enabled {
		return nil, fmt.Errorf("keyset: primary key %d is not enabled: %w", m.entries[m.primary].keyID, clavis.ErrInvalidKeysetState)
	}
	entries := make([]*Entry, len(m.entries))
	for i, e := range m.entries {
		copied := *e
		entries[i] = &copied
	}
	return &Handle{entries: entries, primary: m.primary, registry: m.registry}, nil
}

func (m *Manager) find(keyID uint32) (int, error) {
	for i, e := range m.entries {
		if e.keyID == keyID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("keyset: no key with ID %d: %w", keyID, clavis.ErrInvalidKeysetState)
}

func (m *Manager) hasKeyID(keyID uint32) bool {
	for _, e := range m.entries {
		if e.keyID == keyID {
			return true
		}
	}
	return false
}

// newKeyID draws random IDs until one is nonzero and unused.
func (m *Manager) newKeyID() uint32 {
	for {
		id := random.GetRandomUint32()
		if id != 0 && !m.hasKeyID(id) {
			return id
		}
	}
}
