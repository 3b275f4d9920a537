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

// Package xchacha20poly1305 provides XChaCha20-Poly1305 keys and AEADs.
package xchacha20poly1305

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

// Variant selects the output prefix of ciphertexts.
type Variant int

const (
	// VariantUnknown is the zero value and is invalid.
	VariantUnknown Variant = iota
	// VariantPrefixed prepends a 5-byte ID-derived prefix to ciphertexts.
	VariantPrefixed
	// VariantRaw produces bare ciphertexts without a prefix.
	VariantRaw
)

func (v Variant) String() string {
	switch v {
	case VariantPrefixed:
		return "PREFIXED"
	case VariantRaw:
		return "RAW"
	default:
		return "UNKNOWN"
	}
}

// Parameters describes an XChaCha20-Poly1305 key configuration. The key
// size is fixed at 32 bytes.
type Parameters struct {
	variant Variant
}

var _ key.Parameters = (*Parameters)(nil)

// NewParameters returns the parameters object for the given variant.
func NewParameters(variant Variant) (*Parameters, error) {
	if variant == VariantUnknown {
		return nil, fmt.Errorf("xchacha20poly1305.NewParameters: unknown variant: %w", clavis.ErrInvalidParameters)
	}
	return &Parameters{variant: variant}, nil
}

// Variant returns the output prefix variant.
func (p *Parameters) Variant() Variant { return p.variant }

// HasIDRequirement tells whether keys with these parameters carry a fixed
// keyset ID.
func (p *Parameters) HasIDRequirement() bool { return p.variant != VariantRaw }

// Equal compares p with other structurally.
func (p *Parameters) Equal(other key.Parameters) bool {
	o, ok := other.(*Parameters)
	return ok && *p == *o
}

// Key is an XChaCha20-Poly1305 key.
type Key struct {
	parameters    *Parameters
	keyBytes      secretdata.Bytes
	idRequirement uint32
}

var _ key.Key = (*Key)(nil)

// NewKey creates a key from its material. idRequirement must be zero if
// the parameters have no ID requirement.
func NewKey(keyBytes secretdata.Bytes, idRequirement uint32, parameters *Parameters) (*Key, error) {
	if parameters == nil {
		return nil, fmt.Errorf("xchacha20poly1305.NewKey: nil parameters: %w", clavis.ErrInvalidParameters)
	}
	if !parameters.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("xchacha20poly1305.NewKey: ID %d given for parameters without ID requirement: %w", idRequirement, clavis.ErrInvalidParameters)
	}
	if keyBytes.Len() != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("xchacha20poly1305.NewKey: key has %d bytes, want %d: %w", keyBytes.Len(), chacha20poly1305.KeySize, clavis.ErrInvalidParameters)
	}
	return &Key{parameters: parameters, keyBytes: keyBytes, idRequirement: idRequirement}, nil
}

// KeyBytes returns the key material.
func (k *Key) KeyBytes() secretdata.Bytes { return k.keyBytes }

// Parameters returns the parameters of the key.
func (k *Key) Parameters() key.Parameters { return k.parameters }

// IDRequirement returns the required keyset ID of the key.
func (k *Key) IDRequirement() (uint32, bool) {
	return k.idRequirement, k.parameters.HasIDRequirement()
}

// Equal compares k with other.
func (k *Key) Equal(other key.Key) bool {
	o, ok := other.(*Key)
	return ok && k.parameters.Equal(o.parameters) &&
		k.keyBytes.Equal(o.keyBytes) &&
		k.idRequirement == o.idRequirement
}
