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

package aesgcm

import (
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

const typeID = "type.clavis.dev/AesGcmKey"

type keyManager struct{}

var _ registry.KeyManager = (*keyManager)(nil)

func (keyManager) TypeID() string          { return typeID }
func (keyManager) FIPSStatus() fips.Status { return fips.StatusValidated }

func (keyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	gcmParams, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("aesgcm: unexpected parameters type %T: %w", params, clavis.ErrInvalidParameters)
	}
	keyBytes, err := secretdata.NewBytesFromRand(uint32(gcmParams.KeySizeBytes()))
	if err != nil {
		return nil, err
	}
	if !gcmParams.HasIDRequirement() {
		idRequirement = 0
	}
	return NewKey(keyBytes, idRequirement, gcmParams)
}

func (keyManager) Primitive(k key.Key) (any, error) {
	gcmKey, ok := k.(*Key)
	if !ok {
		return nil, fmt.Errorf("aesgcm: unexpected key type %T", k)
	}
	return NewAEAD(gcmKey)
}

// Register registers the AES-GCM key manager and templates in r.
func Register(r *registry.Registry) error {
	if err := registry.RegisterKeyManager[*Parameters, *Key](r, keyManager{}, true); err != nil {
		return err
	}
	for name, t := range templates {
		params, err := NewParameters(t.keySizeBytes, t.variant)
		if err != nil {
			return err
		}
		if err := r.RegisterTemplate(name, params); err != nil {
			return err
		}
	}
	return nil
}

var templates = map[string]struct {
	keySizeBytes int
	variant      Variant
}{
	"AES128_GCM":     {16, VariantPrefixed},
	"AES256_GCM":     {32, VariantPrefixed},
	"AES256_GCM_RAW": {32, VariantRaw},
}

func init() {
	if err := Register(registry.Default()); err != nil && !errors.Is(err, clavis.ErrSecurityConfiguration) {
		panic(fmt.Sprintf("aesgcm.init: %v", err))
	}
}
