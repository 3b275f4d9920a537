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

// Package kmsaead provides keys whose AEAD operations are delegated to a
// remote key-management service.
//
// A KMS AEAD key holds no local material, only the URI of the remote
// key. The primitive resolves the URI through the [kms] client registry.
package kmsaead

import (
	"context"
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/kms"
	"github.com/clavis-crypto/clavis-go/registry"
)

// Parameters describes a KMS AEAD key: the URI of the remote key.
type Parameters struct {
	keyURI string
}

var _ key.Parameters = (*Parameters)(nil)

// NewParameters returns the parameters object for keyURI.
func NewParameters(keyURI string) (*Parameters, error) {
	if keyURI == "" {
		return nil, fmt.Errorf("kmsaead.NewParameters: empty key URI: %w", clavis.ErrInvalidParameters)
	}
	return &Parameters{keyURI: keyURI}, nil
}

// KeyURI returns the URI of the remote key.
func (p *Parameters) KeyURI() string { return p.keyURI }

// HasIDRequirement is always false: remote keys produce bare
// ciphertexts.
func (p *Parameters) HasIDRequirement() bool { return false }

// Equal compares p with other structurally.
func (p *Parameters) Equal(other key.Parameters) bool {
	o, ok := other.(*Parameters)
	return ok && p.keyURI == o.keyURI
}

// Key is a KMS AEAD key.
type Key struct {
	parameters *Parameters
}

var _ key.Key = (*Key)(nil)

// NewKey creates a key for the given parameters.
func NewKey(parameters *Parameters) (*Key, error) {
	if parameters == nil {
		return nil, fmt.Errorf("kmsaead.NewKey: nil parameters: %w", clavis.ErrInvalidParameters)
	}
	return &Key{parameters: parameters}, nil
}

// Parameters returns the parameters of the key.
func (k *Key) Parameters() key.Parameters { return k.parameters }

// IDRequirement returns the required keyset ID of the key; KMS AEAD keys
// never require one.
func (k *Key) IDRequirement() (uint32, bool) { return 0, false }

// Equal compares k with other.
func (k *Key) Equal(other key.Key) bool {
	o, ok := other.(*Key)
	return ok && k.parameters.Equal(o.parameters)
}

// NewAEAD resolves the key URI through the client registry and returns
// the remote AEAD.
func NewAEAD(k *Key) (clavis.AEADWithContext, error) {
	client, err := kms.GetClient(k.parameters.KeyURI())
	if err != nil {
		return nil, err
	}
	return client.AEAD(k.parameters.KeyURI())
}

const typeID = "type.clavis.dev/KmsAeadKey"

type keyManager struct{}

var _ registry.KeyManager = (*keyManager)(nil)

func (keyManager) TypeID() string { return typeID }

// Remote KMS operations are outside the local cryptographic module.
func (keyManager) FIPSStatus() fips.Status { return fips.StatusNotValidated }

func (keyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	kmsParams, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("kmsaead: unexpected parameters type %T: %w", params, clavis.ErrInvalidParameters)
	}
	return NewKey(kmsParams)
}

// Primitive returns a context-free AEAD so that KMS keys compose with
// the aead factory; use [NewAEAD] directly to pass a context.
func (keyManager) Primitive(k key.Key) (any, error) {
	kmsKey, ok := k.(*Key)
	if !ok {
		return nil, fmt.Errorf("kmsaead: unexpected key type %T", k)
	}
	remote, err := NewAEAD(kmsKey)
	if err != nil {
		return nil, err
	}
	return WithoutContext(remote), nil
}

// contextAdapter exposes an AEADWithContext as a plain AEAD for use with
// the aead factory.
type contextAdapter struct {
	a clavis.AEADWithContext
}

var _ clavis.AEAD = (*contextAdapter)(nil)

// WithoutContext adapts a to the context-free [clavis.AEAD] interface
// using [context.Background].
func WithoutContext(a clavis.AEADWithContext) clavis.AEAD {
	return &contextAdapter{a: a}
}

func (c *contextAdapter) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	return c.a.EncryptWithContext(context.Background(), plaintext, associatedData)
}

func (c *contextAdapter) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	return c.a.DecryptWithContext(context.Background(), ciphertext, associatedData)
}

// Register registers the KMS AEAD key manager in r. It fails under a
// FIPS-restricted policy.
func Register(r *registry.Registry) error {
	return registry.RegisterKeyManager[*Parameters, *Key](r, keyManager{}, true)
}

func init() {
	if err := Register(registry.Default()); err != nil && !errors.Is(err, clavis.ErrSecurityConfiguration) {
		panic(fmt.Sprintf("kmsaead.init: %v", err))
	}
}
