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

// Package aead provides authenticated encryption with associated data
// backed by keysets.
package aead

import (
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/internal/outputprefix"
	"github.com/clavis-crypto/clavis-go/internal/primitiveset"
	"github.com/clavis-crypto/clavis-go/keyset"
)

var errDecryption = errors.New("aead factory: decryption failed")

// New returns a [clavis.AEAD] backed by the keyset of h.
//
// Encryption uses the primary key; the ciphertext of a prefixed key
// starts with its 5-byte output prefix. Decryption tries the keys whose
// prefix matches the ciphertext first, then every raw key.
func New(h *keyset.Handle) (clavis.AEAD, error) {
	ps, err := keyset.Primitives[clavis.AEAD](h)
	if err != nil {
		return nil, fmt.Errorf("aead factory: %w", err)
	}
	return &wrappedAEAD{ps: ps}, nil
}

type wrappedAEAD struct {
	ps *primitiveset.PrimitiveSet[clavis.AEAD]
}

func (a *wrappedAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	primary := a.ps.Primary
	ct, err := primary.Primitive.Encrypt(plaintext, associatedData)
	if err != nil {
		return nil, err
	}
	if primary.Prefix == "" {
		return ct, nil
	}
	out := make([]byte, 0, len(primary.Prefix)+len(ct))
	out = append(out, primary.Prefix...)
	return append(out, ct...), nil
}

func (a *wrappedAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) >= outputprefix.Size {
		prefix := string(ciphertext[:outputprefix.Size])
		raw := ciphertext[outputprefix.Size:]
		for _, e := range a.ps.EntriesForPrefix(prefix) {
			if pt, err := e.Primitive.Decrypt(raw, associatedData); err == nil {
				return pt, nil
			}
		}
	}
	for _, e := range a.ps.RawEntries() {
		if pt, err := e.Primitive.Decrypt(ciphertext, associatedData); err == nil {
			return pt, nil
		}
	}
	return nil, errDecryption
}
