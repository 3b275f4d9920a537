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

package rsassapss

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

const (
	signerTypeID   = "type.clavis.dev/RsaSsaPssPrivateKey"
	verifierTypeID = "type.clavis.dev/RsaSsaPssPublicKey"
)

type signerKeyManager struct{}

var _ registry.KeyManager = (*signerKeyManager)(nil)

func (signerKeyManager) TypeID() string          { return signerTypeID }
func (signerKeyManager) FIPSStatus() fips.Status { return fips.StatusValidated }

func (signerKeyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	rsaParams, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("rsassapss: unexpected parameters type %T: %w", params, clavis.ErrInvalidParameters)
	}
	// crypto/rsa only generates keys with exponent F4.
	if rsaParams.PublicExponent() != F4 {
		return nil, fmt.Errorf("rsassapss: key generation requires public exponent %d, got %d: %w", F4, rsaParams.PublicExponent(), clavis.ErrInvalidParameters)
	}
	rsaKey, err := rsa.GenerateKey(rand.Reader, rsaParams.ModulusSizeBits())
	if err != nil {
		return nil, fmt.Errorf("rsassapss: key generation failed: %w", err)
	}
	if !rsaParams.HasIDRequirement() {
		idRequirement = 0
	}
	publicKey, err := NewPublicKey(rsaKey.N.Bytes(), idRequirement, rsaParams)
	if err != nil {
		return nil, err
	}
	token := insecuresecretaccess.Token{}
	return NewPrivateKey(publicKey, PrivateKeyValues{
		P: secretdata.NewBytesFromData(rsaKey.Primes[0].Bytes(), token),
		Q: secretdata.NewBytesFromData(rsaKey.Primes[1].Bytes(), token),
		D: secretdata.NewBytesFromData(rsaKey.D.Bytes(), token),
	})
}

func (signerKeyManager) Primitive(k key.Key) (any, error) {
	privateKey, ok := k.(*PrivateKey)
	if !ok {
		return nil, fmt.Errorf("rsassapss: unexpected key type %T", k)
	}
	return NewSigner(privateKey)
}

type verifierKeyManager struct{}

var _ registry.KeyManager = (*verifierKeyManager)(nil)

func (verifierKeyManager) TypeID() string          { return verifierTypeID }
func (verifierKeyManager) FIPSStatus() fips.Status { return fips.StatusValidated }

func (verifierKeyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	return nil, fmt.Errorf("rsassapss: public keys are derived from private keys, not generated")
}

func (verifierKeyManager) Primitive(k key.Key) (any, error) {
	publicKey, ok := k.(*PublicKey)
	if !ok {
		return nil, fmt.Errorf("rsassapss: unexpected key type %T", k)
	}
	return NewVerifier(publicKey)
}

// Register registers the RSA-SSA-PSS key managers and templates in r.
func Register(r *registry.Registry) error {
	if err := registry.RegisterKeyManager[*Parameters, *PrivateKey](r, signerKeyManager{}, true); err != nil {
		return err
	}
	if err := registry.RegisterKeyManager[*Parameters, *PublicKey](r, verifierKeyManager{}, false); err != nil {
		return err
	}
	for name, values := range templates {
		params, err := NewParameters(values)
		if err != nil {
			return err
		}
		if err := r.RegisterTemplate(name, params); err != nil {
			return err
		}
	}
	return nil
}

var templates = map[string]ParametersValues{
	"RSA_SSA_PSS_3072_SHA256_F4": {
		ModulusSizeBits: 3072,
		SigHashType:     SHA256,
		MGF1HashType:    SHA256,
		PublicExponent:  F4,
		SaltLengthBytes: 32,
		Variant:         VariantPrefixed,
	},
	"RSA_SSA_PSS_3072_SHA256_F4_RAW": {
		ModulusSizeBits: 3072,
		SigHashType:     SHA256,
		MGF1HashType:    SHA256,
		PublicExponent:  F4,
		SaltLengthBytes: 32,
		Variant:         VariantRaw,
	},
	"RSA_SSA_PSS_4096_SHA512_F4": {
		ModulusSizeBits: 4096,
		SigHashType:     SHA512,
		MGF1HashType:    SHA512,
		PublicExponent:  F4,
		SaltLengthBytes: 64,
		Variant:         VariantPrefixed,
	},
	"RSA_SSA_PSS_4096_SHA512_F4_RAW": {
		ModulusSizeBits: 4096,
		SigHashType:     SHA512,
		MGF1HashType:    SHA512,
		PublicExponent:  F4,
		SaltLengthBytes: 64,
		Variant:         VariantRaw,
	},
}

func init() {
	// A FIPS-restricted process rejects registration of non-approved
	// algorithms; that is not a programming error.
	if err := Register(registry.Default()); err != nil && !errors.Is(err, clavis.ErrSecurityConfiguration) {
		panic(fmt.Sprintf("rsassapss.init: %v", err))
	}
}
