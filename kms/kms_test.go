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

package kms_test

import (
	"errors"
	"testing"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/kms"
)

type stubClient struct {
	kms.PrefixClient
	name string
}

func (c *stubClient) AEAD(keyURI string) (clavis.AEADWithContext, error) {
	if err := c.ValidateKeyURI(keyURI); err != nil {
		return nil, err
	}
	return nil, nil
}

func TestGetClientMatchesByPrefix(t *testing.T) {
	kms.ClearClients()
	t.Cleanup(kms.ClearClients)
	a := &stubClient{PrefixClient: kms.PrefixClient{Prefix: "a-kms://"}, name: "a"}
	b := &stubClient{PrefixClient: kms.PrefixClient{Prefix: "b-kms://"}, name: "b"}
	if err := kms.RegisterClient(a); err != nil {
		t.Fatalf("RegisterClient() err = %v, want nil", err)
	}
	if err := kms.RegisterClient(b); err != nil {
		t.Fatalf("RegisterClient() err = %v, want nil", err)
	}
	got, err := kms.GetClient("b-kms://key/1")
	if err != nil {
		t.Fatalf("GetClient() err = %v, want nil", err)
	}
	if got.(*stubClient).name != "b" {
		t.Errorf("GetClient() = %q, want %q", got.(*stubClient).name, "b")
	}
	if _, err := kms.GetClient("c-kms://key/1"); err == nil {
		t.Errorf("GetClient() for an unregistered prefix err = nil, want error")
	}
}

func TestGetClientPrefersEarlierRegistration(t *testing.T) {
	kms.ClearClients()
	t.Cleanup(kms.ClearClients)
	first := &stubClient{PrefixClient: kms.PrefixClient{Prefix: "shared-kms://"}, name: "first"}
	second := &stubClient{PrefixClient: kms.PrefixClient{Prefix: "shared-kms://"}, name: "second"}
	if err := kms.RegisterClient(first); err != nil {
		t.Fatalf("RegisterClient() err = %v, want nil", err)
	}
	if err := kms.RegisterClient(second); err != nil {
		t.Fatalf("RegisterClient() err = %v, want nil", err)
	}
	got, err := kms.GetClient("shared-kms://key/1")
	if err != nil {
		t.Fatalf("GetClient() err = %v, want nil", err)
	}
	if got.(*stubClient).name != "first" {
		t.Errorf("GetClient() = %q, want %q", got.(*stubClient).name, "first")
	}
}

func TestRegisterNilClientFails(t *testing.T) {
	if err := kms.RegisterClient(nil); err == nil {
		t.Errorf("RegisterClient(nil) err = nil, want error")
	}
}

func TestValidateKeyURI(t *testing.T) {
	c := kms.PrefixClient{Prefix: "a-kms://"}
	if err := c.ValidateKeyURI("a-kms://key/1"); err != nil {
		t.Errorf("ValidateKeyURI() err = %v, want nil", err)
	}
	if err := c.ValidateKeyURI("b-kms://key/1"); !errors.Is(err, clavis.ErrInvalidParameters) {
		t.Errorf("ValidateKeyURI() err = %v, want ErrInvalidParameters", err)
	}
}
