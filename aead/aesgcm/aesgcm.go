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

// Package aesgcm provides AES-GCM keys and AEADs.
package aesgcm

import (
	"fmt"

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

// Parameters describes an AES-GCM key configuration.
type Parameters struct {
	keySizeBytes int
	variant      Variant
}

var _ key.Parameters = (*Parameters)(nil)

// NewParameters validates the key size and variant and returns the
// corresponding parameters object.
func NewParameters(keySizeBytes int, variant Variant) (*Parameters, error) {
	if variant == VariantUnknown {
		return nil, fmt.Errorf("aesgcm.NewParameters: unknown variant: %w", clavis.ErrInvalidParameters)
	}
	if keySizeBytes != 16 && keySizeBytes != 32 {
		return nil, fmt.Errorf("aesgcm.NewParameters: key size %d, want 16 or 32: %w", keySizeBytes, clavis.ErrInvalidParameters)
	}
	return &Parameters{keySizeBytes: keySizeBytes, variant: variant}, nil
}

// KeySizeBytes returns the size of the key in bytes.
func (p *Parameters) KeySizeBytes() int { return p.keySizeBytes }

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

// Key is an AES-GCM key.
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
		return nil, fmt.Errorf("aesgcm.NewKey: nil parameters: %w", clavis.ErrInvalidParameters)
	}
	if !parameters.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("aesgcm.NewKey: ID %d given for parameters without ID requirement: %w", idRequirement, clavis.ErrInvalidParameters)
	}
	if keyBytes.Len() != parameters.KeySizeBytes() {
		return nil, fmt.Errorf("aesgcm.NewKey: key has %d bytes, parameters want %d: %w", keyBytes.Len(), parameters.KeySizeBytes(), clavis.ErrInvalidParameters)
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
