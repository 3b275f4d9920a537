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

package signature

import (
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/internal/outputprefix"
	"github.com/clavis-crypto/clavis-go/internal/primitiveset"
	"github.com/clavis-crypto/clavis-go/keyset"
)

var errInvalidSignature = errors.New("verifier factory: invalid signature")

// NewVerifier returns a [clavis.Verifier] backed by the keyset of h.
//
// Verification tries the keys whose output prefix matches the signature
// first, then every raw key, and succeeds if any enabled key accepts the
// signature. Signatures made before a rotation therefore stay valid as
// long as their key remains enabled.
func NewVerifier(h *keyset.Handle) (clavis.Verifier, error) {
	ps, err := keyset.Primitives[clavis.Verifier](h)
	if err != nil {
		return nil, fmt.Errorf("verifier factory: %w", err)
	}
	return &wrappedVerifier{ps: ps}, nil
}

type wrappedVerifier struct {
	ps *primitiveset.PrimitiveSet[clavis.Verifier]
}

func (v *wrappedVerifier) Verify(signature, data []byte) error {
	if len(signature) >= outputprefix.Size {
		prefix := signature[:outputprefix.Size]
		rawSig := signature[outputprefix.Size:]
		for _, e := range v.ps.EntriesForPrefix(string(prefix)) {
			if e.Primitive.Verify(rawSig, data) == nil {
				return nil
			}
		}
	}
	for _, e := range v.ps.RawEntries() {
		if e.Primitive.Verify(signature, data) == nil {
			return nil
		}
	}
	return errInvalidSignature
}
