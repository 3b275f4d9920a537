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

// Package keyset provides keysets: ordered collections of keys with a
// designated primary.
//
// A [Manager] builds and mutates a keyset; a [Handle] is an immutable
// snapshot from which primitives are obtained. New outputs are produced
// with the primary key, while all enabled keys participate in
// verification and decryption, so rotating the primary never invalidates
// existing outputs.
package keyset

import (
	"fmt"

	"github.com/clavis-crypto/clavis-go/key"
)

// KeyStatus is the status of a key in a keyset.
type KeyStatus int

const (
	// Enabled keys participate in cryptographic operations.
	Enabled KeyStatus = iota
	// Disabled keys are kept in the keyset but skipped by primitives. A
	// disabled key can be re-enabled.
	Disabled
	// Destroyed keys have had their key material dropped. The entry and its
	// ID are kept, but the key cannot be re-enabled or made primary.
	Destroyed
)

// String returns a human-readable name of the status.
func (s KeyStatus) String() string {
	switch s {
	case Enabled:
		return "ENABLED"
	case Disabled:
		return "DISABLED"
	case Destroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// Entry is a single key of a keyset.
type Entry struct {
	key       key.Key
	status    KeyStatus
	keyID     uint32
	isPrimary bool
}

// Key returns the key of the entry, or nil if the key was destroyed.
func (e *Entry) Key() key.Key { return e.key }

// KeyStatus returns the status of the entry.
func (e *Entry) KeyStatus() KeyStatus { return e.status }

// KeyID returns the keyset ID of the entry.
func (e *Entry) KeyID() uint32 { return e.keyID }

// IsPrimary tells whether the entry is the primary key of the keyset.
func (e *Entry) IsPrimary() bool { return e.isPrimary }

func validateEntryID(k key.Key, keyID uint32) error {
	if requiredID, required := k.IDRequirement(); required && requiredID != keyID {
		return fmt.Errorf("key requires ID %d, got %d", requiredID, keyID)
	}
	return nil
}
