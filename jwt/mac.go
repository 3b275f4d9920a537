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

package jwt

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/internal/primitiveset"
	"github.com/clavis-crypto/clavis-go/keyset"
)

// MAC computes and verifies MAC-based tokens in compact serialization.
type MAC interface {
	// ComputeMACAndEncode returns the compact serialization of rawJWT,
	// authenticated with the primary key.
	ComputeMACAndEncode(rawJWT *RawJWT) (string, error)
	// VerifyMACAndDecode checks the MAC of the compact token against
	// every enabled key, validates the claims and returns the verified
	// token.
	VerifyMACAndDecode(compact string, validator *Validator) (*VerifiedJWT, error)
}

// macWithKID is the per-key primitive behind [MAC]. kid is the "kid"
// header value the key must use, or nil for keys without one.
type macWithKID interface {
	ComputeMACAndEncodeWithKID(rawJWT *RawJWT, kid *string) (string, error)
	VerifyMACAndDecodeWithKID(compact string, validator *Validator, kid *string) (*VerifiedJWT, error)
}

// KeyID returns the "kid" header value derived from a keyset ID: the
// unpadded base64url encoding of the big-endian ID.
func KeyID(keyID uint32) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], keyID)
	return base64.RawURLEncoding.EncodeToString(buf[:])
}

var errJWTVerification = errors.New("jwt: verification failed")

// NewMAC returns a [MAC] backed by the keyset of h.
func NewMAC(h *keyset.Handle) (MAC, error) {
	ps, err := keyset.Primitives[macWithKID](h)
	if err != nil {
		return nil, fmt.Errorf("jwt mac factory: %w", err)
	}
	return &wrappedMAC{ps: ps}, nil
}

type wrappedMAC struct {
	ps *primitiveset.PrimitiveSet[macWithKID]
}

func kidForEntry(e *primitiveset.Entry[macWithKID]) *string {
	if e.Prefix == "" {
		return nil
	}
	kid := KeyID(e.KeyID)
	return &kid
}

func (m *wrappedMAC) ComputeMACAndEncode(rawJWT *RawJWT) (string, error) {
	primary := m.ps.Primary
	return primary.Primitive.ComputeMACAndEncodeWithKID(rawJWT, kidForEntry(primary))
}

func (m *wrappedMAC) VerifyMACAndDecode(compact string, validator *Validator) (*VerifiedJWT, error) {
	var lastErr error
	for _, e := range m.ps.EntriesInKeysetOrder {
		verified, err := e.Primitive.VerifyMACAndDecodeWithKID(compact, validator, kidForEntry(e))
		if err == nil {
			return verified, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errJWTVerification
	}
	return nil, lastErr
}
