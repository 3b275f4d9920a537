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

package mac_test

import (
	"testing"

	"github.com/clavis-crypto/clavis-go/keyset"
	"github.com/clavis-crypto/clavis-go/mac"
	"github.com/clavis-crypto/clavis-go/mac/hmac"
	"github.com/clavis-crypto/clavis-go/registry"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := hmac.Register(r); err != nil {
		t.Fatalf("hmac.Register() err = %v, want nil", err)
	}
	return r
}

func TestComputeVerifyPerTemplate(t *testing.T) {
	r := testRegistry(t)
	for _, template := range []string{
		"HMAC_SHA256_128BITTAG",
		"HMAC_SHA256_256BITTAG",
		"HMAC_SHA512_512BITTAG",
		"HMAC_SHA256_256BITTAG_RAW",
	} {
		t.Run(template, func(t *testing.T) {
			h, err := keyset.NewHandleForTemplate(template, keyset.WithRegistry(r))
			if err != nil {
				t.Fatalf("NewHandleForTemplate(%q) err = %v, want nil", template, err)
			}
			m, err := mac.New(h)
			if err != nil {
				t.Fatalf("mac.New() err = %v, want nil", err)
			}
			data := []byte("data to authenticate")
			tag, err := m.ComputeMAC(data)
			if err != nil {
				t.Fatalf("ComputeMAC() err = %v, want nil", err)
			}
			if err := m.VerifyMAC(tag, data); err != nil {
				t.Errorf("VerifyMAC() err = %v, want nil", err)
			}
			if err := m.VerifyMAC(tag, []byte("other data")); err == nil {
				t.Errorf("VerifyMAC() with wrong data err = nil, want error")
			}
		})
	}
}

func TestVerifyAfterRotation(t *testing.T) {
	r := testRegistry(t)
	h, err := keyset.NewHandleForTemplate("HMAC_SHA256_128BITTAG", keyset.WithRegistry(r))
	if err != nil {
		t.Fatalf("NewHandleForTemplate() err = %v, want nil", err)
	}
	m, err := mac.New(h)
	if err != nil {
		t.Fatalf("mac.New() err = %v, want nil", err)
	}
	data := []byte("tagged before rotation")
	oldTag, err := m.ComputeMAC(data)
	if err != nil {
		t.Fatalf("ComputeMAC() err = %v, want nil", err)
	}

	manager := keyset.NewManagerFromHandle(h)
	params, err := r.Template("HMAC_SHA256_256BITTAG")
	if err != nil {
		t.Fatalf("Template() err = %v, want nil", err)
	}
	newID, err := manager.Add(params)
	if err != nil {
		t.Fatalf("Add() err = %v, want nil", err)
	}
	if err := manager.SetPrimary(newID); err != nil {
		t.Fatalf("SetPrimary() err = %v, want nil", err)
	}
	rotated, err := manager.Handle()
	if err != nil {
		t.Fatalf("Handle() err = %v, want nil", err)
	}
	rotatedMAC, err := mac.New(rotated)
	if err != nil {
		t.Fatalf("mac.New() err = %v, want nil", err)
	}
	if err := rotatedMAC.VerifyMAC(oldTag, data); err != nil {
		t.Errorf("VerifyMAC() of pre-rotation tag err = %v, want nil", err)
	}
}
