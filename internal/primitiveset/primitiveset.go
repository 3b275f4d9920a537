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

// Package primitiveset groups the primitives of the enabled keys of a
// keyset, indexed by output prefix.
package primitiveset

import "fmt"

// Entry represents a single enabled key of a keyset together with its
// primitive.
type Entry[T any] struct {
	KeyID     uint32
	Primitive T
	// Prefix is the output prefix of the key; empty for raw keys.
	Prefix    string
	IsPrimary bool
}

// PrimitiveSet is a set of primitives indexed by output prefix. Raw keys
// share the empty prefix.
type PrimitiveSet[T any] struct {
	// Primary is the entry of the primary key; never nil in a set built from
	// a valid keyset.
	Primary *Entry[T]
	// Entries maps an output prefix to the entries of the keys sharing it,
	// in keyset order.
	Entries map[string][]*Entry[T]
	// EntriesInKeysetOrder holds all entries in the order of the keyset.
	EntriesInKeysetOrder []*Entry[T]
}

// New returns an empty PrimitiveSet.
func New[T any]() *PrimitiveSet[T] {
	return &PrimitiveSet[T]{Entries: make(map[string][]*Entry[T])}
}

// Add adds a primitive to the set and returns the created entry.
func (ps *PrimitiveSet[T]) Add(p T, keyID uint32, prefix []byte, isPrimary bool) (*Entry[T], error) {
	if isPrimary && ps.Primary != nil {
		return nil, fmt.Errorf("primitiveset: duplicate primary entry")
	}
	e := &Entry[T]{
		KeyID:     keyID,
		Primitive: p,
		Prefix:    string(prefix),
		IsPrimary: isPrimary,
	}
	ps.Entries[e.Prefix] = append(ps.Entries[e.Prefix], e)
	ps.EntriesInKeysetOrder = append(ps.EntriesInKeysetOrder, e)
	if isPrimary {
		ps.Primary = e
	}
	return e, nil
}

// EntriesForPrefix returns the entries whose keys share the given output
// prefix, in keyset order.
func (ps *PrimitiveSet[T]) EntriesForPrefix(prefix string) []*Entry[T] {
	return ps.Entries[prefix]
}

// RawEntries returns the entries of the raw keys, in keyset order.
func (ps *PrimitiveSet[T]) RawEntries() []*Entry[T] {
	return ps.Entries[""]
}
