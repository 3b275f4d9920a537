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

// Package mac provides message authentication codes backed by keysets.
package mac

import (
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/internal/outputprefix"
	"github.com/clavis-crypto/clavis-go/internal/primitiveset"
	"github.com/clavis-crypto/clavis-go/keyset"
)

var errInvalidMAC = errors.New("mac factory: invalid MAC")

// New returns a [clavis.MAC] backed by the keyset of h.
//
// Tags are computed with the primary key; the tag of a prefixed key
// starts with its 5-byte output prefix. Verification tries the keys
// whose prefix matches the tag first, then every raw key.
func New(h *keyset.Handle) (clavis.MAC, error) {
	ps, err := keyset.Primitives[clavis.MAC](h)
	if err != nil {
		return nil, fmt.Errorf("mac factory: %w", err)
	}
	return &wrappedMAC{ps: ps}, nil
}

type wrappedMAC struct {
	ps *primitiveset.PrimitiveSet[clavis.MAC]
}

func (m *wrappedMAC) ComputeMAC(data []byte) ([]byte, error) {
	primary := m.ps.Primary
	tag, err := primary.Primitive.ComputeMAC(data)
	if err != nil {
		return nil, err
	}
	if primary.Prefix == "" {
		return tag, nil
	}
	out := make([]byte, 0, len(primary.Prefix)+len(tag))
	out = append(out, primary.Prefix...)
	return append(out, tag...), nil
}

func (m *wrappedMAC) VerifyMAC(mac, data []byte) error {
	if len(mac) >= outputprefix.Size {
		prefix := string(mac[:outputprefix.Size])
		raw := mac[outputprefix.Size:]
		for _, e := range m.ps.EntriesForPrefix(prefix) {
			if e.Primitive.VerifyMAC(raw, data) == nil {
				return nil
			}
		}
	}
	for _, e := range m.ps.RawEntries() {
		if e.Primitive.VerifyMAC(mac, data) == nil {
			return nil
		}
	}
	return errInvalidMAC
}
