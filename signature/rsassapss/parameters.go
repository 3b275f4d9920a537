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

// Package rsassapss provides RSA-SSA-PSS keys and signatures.
package rsassapss

import (
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/key"
)

// Variant selects the output prefix of signatures.
type Variant int

const (
	// VariantUnknown is the zero value and is invalid.
	VariantUnknown Variant = iota
	// VariantPrefixed prepends a 5-byte ID-derived prefix to signatures.
	VariantPrefixed
	// VariantRaw produces bare signatures without a prefix.
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

// HashType is the hash function used for the message digest and MGF1.
type HashType int

const (
	UnknownHashType HashType = iota
	SHA1
	SHA224
	SHA256
	SHA384
	SHA512
)

func (h HashType) String() string {
	switch h {
	case SHA1:
		return "SHA1"
	case SHA224:
		return "SHA224"
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

const (
	// F4 is the public exponent 65537.
	F4 = 65537

	maxPublicExponent  = 1<<31 - 1
	minModulusSizeBits = 2048
)

// ParametersValues holds the values of an RSA-SSA-PSS parameters object
// for [NewParameters].
type ParametersValues struct {
	ModulusSizeBits int
	SigHashType     HashType
	MGF1HashType    HashType
	PublicExponent  int
	SaltLengthBytes int
	Variant         Variant
}

// Parameters describes an RSA-SSA-PSS key configuration.
type Parameters struct {
	modulusSizeBits int
	sigHashType     HashType
	mgf1HashType    HashType
	publicExponent  int
	saltLengthBytes int
	variant         Variant
}

var _ key.Parameters = (*Parameters)(nil)

// NewParameters validates values and returns the corresponding parameters
// object. All failures wrap [clavis.ErrInvalidParameters].
func NewParameters(values ParametersValues) (*Parameters, error) {
	if values.Variant == VariantUnknown {
		return nil, fmt.Errorf("rsassapss.NewParameters: unknown variant: %w", clavis.ErrInvalidParameters)
	}
	if values.SigHashType != values.MGF1HashType {
		return nil, fmt.Errorf("rsassapss.NewParameters: signature hash %v and MGF1 hash %v must match: %w", values.SigHashType, values.MGF1HashType, clavis.ErrInvalidParameters)
	}
	switch values.SigHashType {
	case SHA256, SHA384, SHA512:
	default:
		return nil, fmt.Errorf("rsassapss.NewParameters: unsupported hash %v: %w", values.SigHashType, clavis.ErrInvalidParameters)
	}
	if values.ModulusSizeBits < minModulusSizeBits {
		return nil, fmt.Errorf("rsassapss.NewParameters: modulus size %d is below %d bits: %w", values.ModulusSizeBits, minModulusSizeBits, clavis.ErrInvalidParameters)
	}
	if values.PublicExponent < F4 || values.PublicExponent > maxPublicExponent {
		return nil, fmt.Errorf("rsassapss.NewParameters: public exponent %d outside [%d, 2^31-1]: %w", values.PublicExponent, F4, clavis.ErrInvalidParameters)
	}
	if values.PublicExponent%2 == 0 {
		return nil, fmt.Errorf("rsassapss.NewParameters: public exponent %d must be odd: %w", values.PublicExponent, clavis.ErrInvalidParameters)
	}
	if values.SaltLengthBytes < 0 {
		return nil, fmt.Errorf("rsassapss.NewParameters: negative salt length %d: %w", values.SaltLengthBytes, clavis.ErrInvalidParameters)
	}
	return &Parameters{
		modulusSizeBits: values.ModulusSizeBits,
		sigHashType:     values.SigHashType,
		mgf1HashType:    values.MGF1HashType,
		publicExponent:  values.PublicExponent,
		saltLengthBytes: values.SaltLengthBytes,
		variant:         values.Variant,
	}, nil
}

// ModulusSizeBits returns the size of the modulus in bits.
func (p *Parameters) ModulusSizeBits() int { return p.modulusSizeBits }

// SigHashType returns the hash used for the message digest.
func (p *Parameters) SigHashType() HashType { return p.sigHashType }

// MGF1HashType returns the hash used for the mask generation function.
func (p *Parameters) MGF1HashType() HashType { return p.mgf1HashType }

// PublicExponent returns the public exponent.
func (p *Parameters) PublicExponent() int { return p.publicExponent }

// SaltLengthBytes returns the salt length in bytes.
func (p *Parameters) SaltLengthBytes() int { return p.saltLengthBytes }

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
