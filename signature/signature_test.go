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

package signature_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/clavis-crypto/clavis-go/keyset"
	"github.com/clavis-crypto/clavis-go/registry"
	"github.com/clavis-crypto/clavis-go/signature"
	"github.com/clavis-crypto/clavis-go/signature/rsassapss"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	if err := rsassapss.Register(r); err != nil {
		t.Fatalf("rsassapss.Register() err = %v, want nil", err)
	}
	return r
}

func rsaParams(t *testing.T, variant rsassapss.Variant) *rsassapss.Parameters {
	t.Helper()
	params, err := rsassapss.NewParameters(rsassapss.ParametersValues{
		ModulusSizeBits: 2048,
		SigHashType:     rsassapss.SHA256,
		MGF1HashType:    rsassapss.SHA256,
		PublicExponent:  rsassapss.F4,
		SaltLengthBytes: 32,
		Variant:         variant,
	})
	if err != nil {
		t.Fatalf("rsassapss.NewParameters() err = %v, want nil", err)
	}
	return params
}

func TestSignVerifyPrefixed(t *testing.T) {
	r := testRegistry(t)
	h, err := keyset.NewHandle(rsaParams(t, rsassapss.VariantPrefixed), keyset.WithRegistry(r))
	if err != nil {
		t.Fatalf("NewHandle() err = %v, want nil", err)
	}
	signer, err := signature.NewSigner(h)
	if err != nil {
		t.Fatalf("NewSigner() err = %v, want nil", err)
	}
	public, err := h.Public()
	if err != nil {
		t.Fatalf("Public() err = %v, want nil", err)
	}
	verifier, err := signature.NewVerifier(public)
	if err != nil {
		t.Fatalf("NewVerifier() err = %v, want nil", err)
	}
	data := []byte("data to be signed")
	sig, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign() err = %v, want nil", err)
	}
	primary, err := h.Primary()
	if err != nil {
		t.Fatalf("Primary() err = %v, want nil", err)
	}
	wantPrefix := make([]byte, 5)
	wantPrefix[0] = 0x01
	binary.BigEndian.PutUint32(wantPrefix[1:], primary.KeyID())
	if !bytes.HasPrefix(sig, wantPrefix) {
		t.Errorf("Sign() output prefix = %x, want %x", sig[:5], wantPrefix)
	}
	if err := verifier.Verify(sig, data); err != nil {
		t.Errorf("Verify() err = %v, want nil", err)
	}
	if err := verifier.Verify(sig, []byte("other data")); err == nil {
		t.Errorf("Verify() with wrong data err = nil, want error")
	}
}

func TestSignVerifyRaw(t *testing.T) {
	r := testRegistry(t)
	h, err := keyset.NewHandle(rsaParams(t, rsassapss.VariantRaw), keyset.WithRegistry(r))
	if err != nil {
		t.Fatalf("NewHandle() err = %v, want nil", err)
	}
	signer, err := signature.NewSigner(h)
	if err != nil {
		t.Fatalf("NewSigner() err = %v, want nil", err)
	}
	public, err := h.Public()
	if err != nil {
		t.Fatalf("Public() err = %v, want nil", err)
	}
	verifier, err := signature.NewVerifier(public)
	if err != nil {
		t.Fatalf("NewVerifier() err = %v, want nil", err)
	}
	data := []byte("data to be signed")
	sig, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign() err = %v, want nil", err)
	}
	// A raw signature of a 2048-bit key is exactly 256 bytes.
	if len(sig) != 256 {
		t.Errorf("len(Sign()) = %d, want 256", len(sig))
	}
	if err := verifier.Verify(sig, data); err != nil {
		t.Errorf("Verify() err = %v, want nil", err)
	}
}

func TestVerifyAfterRotation(t *testing.T) {
	r := testRegistry(t)
	h, err := keyset.NewHandle(rsaParams(t, rsassapss.VariantPrefixed), keyset.WithRegistry(r))
	if err != nil {
		t.Fatalf("NewHandle() err = %v, want nil", err)
	}
	signer, err := signature.NewSigner(h)
	if err != nil {
		t.Fatalf("NewSigner() err = %v, want nil", err)
	}
	data := []byte("signed before rotation")
	oldSig, err := signer.Sign(data)
	if err != nil {
		t.Fatalf("Sign() err = %v, want nil", err)
	}

	m := keyset.NewManagerFromHandle(h)
	newID, err := m.Add(rsaParams(t, rsassapss.VariantPrefixed))
	if err != nil {
		t.Fatalf("Add() err = %v, want nil", err)
	}
	if err := m.SetPrimary(newID); err != nil {
		t.Fatalf("SetPrimary() err = %v, want nil", err)
	}
	rotated, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle() err = %v, want nil", err)
	}
	public, err := rotated.Public()
	if err != nil {
		t.Fatalf("Public() err = %v, want nil", err)
	}
	verifier, err := signature.NewVerifier(public)
	if err != nil {
		t.Fatalf("NewVerifier() err = %v, want nil", err)
	}
	// Old signatures stay valid as long as their key is enabled.
	if err := verifier.Verify(oldSig, data); err != nil {
		t.Errorf("Verify() of pre-rotation signature err = %v, want nil", err)
	}
	rotatedSigner, err := signature.NewSigner(rotated)
	if err != nil {
		t.Fatalf("NewSigner() err = %v, want nil", err)
	}
	newSig, err := rotatedSigner.Sign(data)
	if err != nil {
		t.Fatalf("Sign() err = %v, want nil", err)
	}
	if bytes.Equal(oldSig[:5], newSig[:5]) {
		t.Errorf("rotated signer kept the old output prefix")
	}
	if err := verifier.Verify(newSig, data); err != nil {
		t.Errorf("Verify() of post-rotation signature err = %v, want nil", err)
	}
}
