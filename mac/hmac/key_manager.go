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

package hmac

import (
	"errors"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/fips"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/registry"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

const typeID = "type.clavis.dev/HmacKey"

type keyManager struct{}

var _ registry.KeyManager = (*keyManager)(nil)

func (keyManager) TypeID() string          { return typeID }
func (keyManager) FIPSStatus() fips.Status { return fips.StatusValidated }

func (keyManager) NewKey(params key.Parameters, idRequirement uint32) (key.Key, error) {
	hmacParams, ok := params.(*Parameters)
	if !ok {
		return nil, fmt.Errorf("hmac: unexpected parameters type %T: %w", params, clavis.ErrInvalidParameters)
	}
	keyBytes, err := secretdata.NewBytesFromRand(uint32(hmacParams.KeySizeBytes()))
	if err != nil {
		return nil, err
	}
	if !hmacParams.HasIDRequirement() {
		idRequirement = 0
	}
	return NewKey(keyBytes, idRequirement, hmacParams)
}

func (keyManager) Primitive(k key.Key) (any, error) {
	hmacKey, ok := k.(*Key)
	if !ok {
		return nil, fmt.Errorf("hmac: unexpected key type %T", k)
	}
	return NewMAC(hmacKey)
}

// Register registers the HMAC key manager and templates in r.
func Register(r *registry.Registry) error {
	if err := registry.RegisterKeyManager[*Parameters, *Key](r, keyManager{}, true); err != nil {
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
	"HMAC_SHA256_128BITTAG": {
		KeySizeBytes: 32,
		TagSizeBytes: 16,
		HashType:     SHA256,
		Variant:      VariantPrefixed,
	},
	"HMAC_SHA256_256BITTAG": {
		KeySizeBytes: 32,
		TagSizeBytes: 32,
		HashType:     SHA256,
		Variant:      VariantPrefixed,
	},
	"HMAC_SHA512_512BITTAG": {
		KeySizeBytes: 64,
		TagSizeBytes: 64,
		HashType:     SHA512,
		Variant:      VariantPrefixed,
	},
	"HMAC_SHA256_256BITTAG_RAW": {
		KeySizeBytes: 32,
		TagSizeBytes: 32,
		HashType:     SHA256,
		Variant:      VariantRaw,
	},
}

func init() {
	if err := Register(registry.Default()); err != nil && !errors.Is(err, clavis.ErrSecurityConfiguration) {
		panic(fmt.Sprintf("hmac.init: %v", err))
	}
}
