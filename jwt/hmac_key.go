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
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

// Algorithm is the MAC algorithm of a JWT HMAC key.
type Algorithm int

const (
	UnknownAlgorithm Algorithm = iota
	HS256
	HS384
	HS512
)

func (a Algorithm) String() string {
	switch a {
	case HS256:
		return "HS256"
	case HS384:
		return "HS384"
	case HS512:
		return "HS512"
	default:
		return "UNKNOWN"
	}
}

func (a Algorithm) minKeySizeBytes() int {
	switch a {
	case HS256:
		return 32
	case HS384:
		return 48
	case HS512:
		return 64
	default:
		return 0
	}
}

// KIDStrategy tells how the "kid" header of tokens relates to the keyset
// ID of the key.
type KIDStrategy int

const (
	// KIDStrategyUnknown is the zero value and is invalid.
	KIDStrategyUnknown KIDStrategy = iota
	// KIDStrategyBase64KeyID writes the base64url-encoded keyset ID into
	// the "kid" header and requires it on verification. Keys with this
	// strategy carry a fixed keyset ID.
	KIDStrategyBase64KeyID
	// KIDStrategyIgnored neither writes nor checks the "kid" header.
	KIDStrategyIgnored
)

func (s KIDStrategy) String() string {
	switch s {
	case KIDStrategyBase64KeyID:
		return "BASE64_KEY_ID"
	case KIDStrategyIgnored:
		return "IGNORED"
	default:
		return "UNKNOWN"
	}
}

// HMACParameters describes a JWT HMAC key configuration.
type HMACParameters struct {
	keySizeBytes int
	algorithm    Algorithm
	kidStrategy  KIDStrategy
}

var _ key.Parameters = (*HMACParameters)(nil)

// NewHMACParameters validates the values and returns the corresponding
// parameters object. The minimum key size depends on the algorithm: 32
// bytes for HS256, 48 for HS384 and 64 for HS512.
func NewHMACParameters(keySizeBytes int, algorithm Algorithm, kidStrategy KIDStrategy) (*HMACParameters, error) {
	if kidStrategy == KIDStrategyUnknown {
		return nil, fmt.Errorf("jwt.NewHMACParameters: unknown kid strategy: %w", clavis.ErrInvalidParameters)
	}
	min := algorithm.minKeySizeBytes()
	if min == 0 {
		return nil, fmt.Errorf("jwt.NewHMACParameters: unknown algorithm: %w", clavis.ErrInvalidParameters)
	}
	if keySizeBytes < min {
		return nil, fmt.Errorf("jwt.NewHMACParameters: key size %d below %d bytes for %v: %w", keySizeBytes, min, algorithm, clavis.ErrInvalidParameters)
	}
	return &HMACParameters{keySizeBytes: keySizeBytes, algorithm: algorithm, kidStrategy: kidStrategy}, nil
}

// KeySizeBytes returns the size of the key in bytes.
func (p *HMACParameters) KeySizeBytes() int { return p.keySizeBytes }

// Algorithm returns the MAC algorithm.
func (p *HMACParameters) Algorithm() Algorithm { return p.algorithm }

// KIDStrategy returns the kid strategy.
func (p *HMACParameters) KIDStrategy() KIDStrategy { return p.kidStrategy }

// HasIDRequirement tells whether keys with these parameters carry a
// fixed keyset ID.
func (p *HMACParameters) HasIDRequirement() bool { return p.kidStrategy == KIDStrategyBase64KeyID }

// Equal compares p with other structurally.
func (p *HMACParameters) Equal(other key.Parameters) bool {
	o, ok := other.(*HMACParameters)
	return ok && *p == *o
}

// HMACKey is a JWT HMAC key.
type HMACKey struct {
	parameters    *HMACParameters
	keyBytes      secretdata.Bytes
	idRequirement uint32
}

var _ key.Key = (*HMACKey)(nil)

// NewHMACKey creates a key from its material. idRequirement must be zero
// if the parameters have no ID requirement.
func NewHMACKey(keyBytes secretdata.Bytes, idRequirement uint32, parameters *HMACParameters) (*HMACKey, error) {
	if parameters == nil {
		return nil, fmt.Errorf("jwt.NewHMACKey: nil parameters: %w", clavis.ErrInvalidParameters)
	}
	if !parameters.HasIDRequirement() && idRequirement != 0 {
		return nil, fmt.Errorf("jwt.NewHMACKey: ID %d given for parameters without ID requirement: %w", idRequirement, clavis.ErrInvalidParameters)
	}
	if keyBytes.Len() != parameters.KeySizeBytes() {
		return nil, fmt.Errorf("jwt.NewHMACKey: key has %d bytes, parameters want %d: %w", keyBytes.Len(), parameters.KeySizeBytes(), clavis.ErrInvalidParameters)
	}
	return &HMACKey{parameters: parameters, keyBytes: keyBytes, idRequirement: idRequirement}, nil
}

// KeyBytes returns the key material.
func (k *HMACKey) KeyBytes() secretdata.Bytes { return k.keyBytes }

// Parameters returns the parameters of the key.
func (k *HMACKey) Parameters() key.Parameters { return k.parameters }

// IDRequirement returns the required keyset ID of the key.
func (k *HMACKey) IDRequirement() (uint32, bool) {
	return k.idRequirement, k.parameters.HasIDRequirement()
}

// Equal compares k with other.
func (k *HMACKey) Equal(other key.Key) bool {
	o, ok := other.(*HMACKey)
	return ok && k.parameters.Equal(o.parameters) &&
		k.keyBytes.Equal(o.keyBytes) &&
		k.idRequirement == o.idRequirement
}
