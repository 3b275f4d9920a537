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

package xchacha20poly1305

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

const typeID = "type.clavis.dev/XChaCha20Poly1305Key"

type keyManager struct{}

var _ registry.KeyManager = (*keyManager)(nil)

func (keyManager) TypeID() string { return typeID }

// ChaCha20-Poly1305 is not a FIPS-approved algorithm.
func (keyManager) FIPSStatus() fips.Status { return fips.StatusNotValidated }

func (keyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	xParams, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("xchacha20poly1305: unexpected parameters type %T: %w", params, clavis.ErrInvalidParameters)
	}
	keyBytes, err := secretdata.NewBytesFromRand(chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	if !xParams.HasIDRequirement() {
		idRequirement = 0
	}
	return NewKey(keyBytes, idRequirement, xParams)
}

func (keyManager) Primitive(k key.Key) (any, error) {
	xKey, ok := k.(*Key)
	if !ok {
		return nil, fmt.Errorf("xchacha20poly1305: unexpected key type %T", k)
	}
	return NewAEAD(xKey)
}

// Register registers the XChaCha20-Poly1305 key manager and templates in r.
func Register(r *registry.Registry) error {
	if err := registry.RegisterKeyManager[*Parameters, *Key](r, keyManager{}, true); err != nil {
		return err
	}
	for name, variant := range map[string]Variant{
		"XCHACHA20_POLY1305":     VariantPrefixed,
		"XCHACHA20_POLY1305_RAW": VariantRaw,
	} {
		params, err := NewParameters(variant)
		if err != nil {
			return err
		}
		if err := r.RegisterTemplate(name, params); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	if err := Register(registry.Default()); err != nil && !errors.Is(err, clavis.ErrSecurityConfiguration) {
		panic(fmt.Sprintf("xchacha20poly1305.init: %v", err))
	}
}
