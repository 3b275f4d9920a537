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

// Package signature provides digital signature primitives backed by
// keysets.
package signature

import (
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/keyset"
)

// NewSigner returns a [clavis.Signer] backed by the keyset of h.
//
// Signatures are always produced with the primary key; the output of a
// prefixed key starts with its 5-byte output prefix.
func NewSigner(h *keyset.Handle) (clavis.Signer, error) {
	ps, err := keyset.Primitives[clavis.Signer](h)
	if err != nil {
		return nil, fmt.Errorf("signer factory: %w", err)
	}
	return &wrappedSigner{
		signer: ps.Primary.Primitive,
		prefix: []byte(ps.Primary.Prefix),
	}, nil
}

type wrappedSigner struct {
	signer clavis.Signer
	prefix []byte
}

func (s *wrappedSigner) Sign(data []byte) ([]byte, error) {
	rawSig, err := s.signer.Sign(data)
	if err != nil {
		return nil, err
	}
	if len(s.prefix) == 0 {
		return rawSig, nil
	}
	sig := make([]byte, 0, len(s.prefix)+len(rawSig))
	sig = append(sig, s.prefix...)
	return append(sig, rawSig...), nil
}
