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

// Package hmac provides HMAC keys and MACs.
package hmac

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"fmt"
	"hash"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

// Variant selects the output prefix of tags.
type Variant int

const (
	// VariantUnknown is the zero value and is invalid.
	VariantUnknown Variant = iota
	// VariantPrefixed prepends a 5-byte ID-derived prefix to tags.
	VariantPrefixed
	// VariantRaw produces bare tags without a prefix.
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

// HashType is the hash function of the HMAC.
type HashType int

const (
	UnknownHashType HashType = iota
	SHA256
	SHA384
	SHA512
)

func (h HashType) String() string {
	switch h {
	case SHA256:
		return "SHA256"
	case SHA384:
		return "SHA384"
	case SHA512:
		return "SHA512"
	default:
		return "UNKNOWN"
	}
}

func (h HashType) newHash() (func() hash.Hash, error) {
	switch h {
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported hash %v", h)
	}
}

func (h HashType) size() int {
	switch h {
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	default:
		return 0
	}
}

// ParametersValues holds the values of an HMAC parameters object for
// [NewParameters].
type ParametersValues struct {
	KeySizeBytes int
	TagSizeBytes int
	HashType     HashType
	Variant      Variant
}

// Parameters describes an HMAC key configuration.
type Parameters struct {
	keySizeBytes int
	tagSizeBytes int
	hashType     HashType
	variant      Variant
}

var _ key.Parameters = (*Parameters)(nil)

// NewParameters validates values and returns the corresponding
// parameters object. Keys must have at least 16 bytes; tags must have at
// least 10 bytes and at most the hash output size.
func NewParameters(values ParametersValues) (*Parameters, error) {
	if values.Variant == VariantUnknown {
		return nil, fmt.Errorf("hmac.NewParameters: unknown variant: %w", clavis.ErrInvalidParameters)
	}
	if _, err := values.HashType.newHash(); err != nil {
		return nil, fmt.Errorf("hmac.NewParameters: %v: %w", err, clavis.ErrInvalidParameters)
	}
	if values.KeySizeBytes < 16 {
		return nil, fmt.Errorf("hmac.NewParameters: key size %d below 16 bytes: %w", values.KeySizeBytes, clavis.ErrInvalidParameters)
	}
	if values.TagSizeBytes < 10 {
		return nil, fmt.Errorf("hmac.NewParameters: tag size %d below 10 bytes: %w", values.TagSizeBytes, clavis.ErrInvalidParameters)
	}
	if max := values.HashType.size(); values.TagSizeBytes > max {
		return nil, fmt.Errorf("hmac.NewParameters: tag size %d above %v output size %d: %w", values.TagSizeBytes, values.HashType, max, clavis.ErrInvalidParameters)
	}
	return &Parameters{
		keySizeBytes: values.KeySizeBytes,
		tagSizeBytes: values.TagSizeBytes,
		hashType:     values.HashType,
		variant:      values.Variant,
	}, nil
}

// KeySizeBytes returns the size of the key in bytes.
func (p *Parameters) KeySizeBytes() int { return p.keySizeBytes }

// TagSizeBytes returns the size of the tag in bytes.
func (p *Parameters) TagSizeBytes() int { return p.tagSizeBytes }

// HashType returns the hash function of the HMAC.
func (p *Parameters) HashType() HashType { return p.hashType }

// Variant returns the output prefix variant.
func (p *Parameters) Variant() Variant { return p.variant }

// HasIDRequirement tells whether keys with these parameters carry a
// fixed keyset ID.
func (p *Parameters) HasIDRequirement() bool { return p.variant != VariantRaw }

// Equal compares p with other structurally.
func (p *Parameters) Equal(other key.Parameters) bool {
	o, ok := other.(*Parameters)
	return ok && *p == *o
}

// Key is an HMAC key.
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
		return nil, fmt.Errorf("hmac.NewKey: nil parameters: %w", clavis.ErrInvalidParameters)
	}
	if !parameters.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("hmac.NewKey: ID %d given for parameters without ID requirement: %w", idRequirement, clavis.ErrInvalidParameters)
	}
	if keyBytes.Len() != parameters.KeySizeBytes() {
		return nil, fmt.Errorf("hmac.NewKey: key has %d bytes, parameters want %d: %w", keyBytes.Len(), parameters.KeySizeBytes(), clavis.ErrInvalidParameters)
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

type keyedMAC struct {
	newHash func() hash.Hash
	key     []byte
	tagSize int
}

var _ clavis.MAC = (*keyedMAC)(nil)

// NewMAC returns a [clavis.MAC] for k.
func NewMAC(k *Key) (clavis.MAC, error) {
	newHash, err := k.parameters.HashType().newHash()
	if err != nil {
		return nil, fmt.Errorf("hmac.NewMAC: %v: %w", err, clavis.ErrInvalidParameters)
	}
	return &keyedMAC{
		newHash: newHash,
		key:     k.KeyBytes().Data(insecuresecretaccess.Token{}),
		tagSize: k.parameters.TagSizeBytes(),
	}, nil
}

func (m *keyedMAC) ComputeMAC(data []byte) ([]byte, error) {
	h := hmac.New(m.newHash, m.key)
	h.Write(data)
	return h.Sum(nil)[:m.tagSize], nil
}

func (m *keyedMAC) VerifyMAC(mac, data []byte) error {
	expected, err := m.ComputeMAC(data)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare(mac, expected) != 1 {
		return fmt.Errorf("hmac: invalid MAC")
	}
	return nil
}
