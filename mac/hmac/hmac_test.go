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

package hmac_test

import (
	"errors"
	"testing"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/mac/hmac"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

func validValues() hmac.ParametersValues {
	return hmac.ParametersValues{
		KeySizeBytes: 32,
		TagSizeBytes: 16,
		HashType:     hmac.SHA256,
		Variant:      hmac.VariantPrefixed,
	}
}

func TestNewParametersFails(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*hmac.ParametersValues)
	}{
		{"unknown variant", func(v *hmac.ParametersValues) { v.Variant = hmac.VariantUnknown }},
		{"unknown hash", func(v *hmac.ParametersValues) { v.HashType = hmac.UnknownHashType }},
		{"key too short", func(v *hmac.ParametersValues) { v.KeySizeBytes = 8 }},
		{"tag too short", func(v *hmac.ParametersValues) { v.TagSizeBytes = 4 }},
		{"tag above hash size", func(v *hmac.ParametersValues) { v.TagSizeBytes = 33 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			values := validValues()
			tc.mutate(&values)
			if _, err := hmac.NewParameters(values); !errors.Is(err, clavis.ErrInvalidParameters) {
				t.Errorf("NewParameters(%v) err = %v, want ErrInvalidParameters", values, err)
			}
		})
	}
}

func TestComputeVerify(t *testing.T) {
	for _, tc := range []struct {
		name string
		hash hmac.HashType
		key  int
		tag  int
	}{
		{"SHA256-tag16", hmac.SHA256, 32, 16},
		{"SHA256-tag32", hmac.SHA256, 32, 32},
		{"SHA384-tag48", hmac.SHA384, 48, 48},
		{"SHA512-tag64", hmac.SHA512, 64, 64},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params, err := hmac.NewParameters(hmac.ParametersValues{
				KeySizeBytes: tc.key,
				TagSizeBytes: tc.tag,
				HashType:     tc.hash,
				Variant:      hmac.VariantRaw,
			})
			if err != nil {
				t.Fatalf("NewParameters() err = %v, want nil", err)
			}
			keyBytes, err := secretdata.NewBytesFromRand(uint32(tc.key))
			if err != nil {
				t.Fatalf("NewBytesFromRand() err = %v, want nil", err)
			}
			k, err := hmac.NewKey(keyBytes, 0, params)
			if err != nil {
				t.Fatalf("NewKey() err = %v, want nil", err)
			}
			m, err := hmac.NewMAC(k)
			if err != nil {
				t.Fatalf("NewMAC() err = %v, want nil", err)
			}
			data := []byte("data to authenticate")
			tag, err := m.ComputeMAC(data)
			if err != nil {
				t.Fatalf("ComputeMAC() err = %v, want nil", err)
			}
			if len(tag) != tc.tag {
				t.Errorf("len(ComputeMAC()) = %d, want %d", len(tag), tc.tag)
			}
			if err := m.VerifyMAC(tag, data); err != nil {
				t.Errorf("VerifyMAC() err = %v, want nil", err)
			}
			if err := m.VerifyMAC(tag, []byte("other data")); err == nil {
				t.Errorf("VerifyMAC() with wrong data err = nil, want error")
			}
			tag[0] ^= 0x01
			if err := m.VerifyMAC(tag, data); err == nil {
				t.Errorf("VerifyMAC() with corrupted tag err = nil, want error")
			}
		})
	}
}
