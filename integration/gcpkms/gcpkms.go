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

// Package gcpkms provides a [kms.Client] backed by Google Cloud KMS.
//
// Key URIs have the form
// "gcp-kms://projects/*/locations/*/keyRings/*/cryptoKeys/*".
package gcpkms

import (
	"context"
	"fmt"
	"strings"

	gcpkmsapi "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/kms"
)

const prefix = "gcp-kms://"

// KeyManagementClient is the subset of the Cloud KMS API the client
// uses. It is satisfied by [gcpkmsapi.KeyManagementClient] and by test
// doubles.
type KeyManagementClient interface {
	Encrypt(ctx context.Context, req *kmspb.EncryptRequest, opts ...gax.CallOption) (*kmspb.EncryptResponse, error)
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest, opts ...gax.CallOption) (*kmspb.DecryptResponse, error)
}

// Client is a [kms.Client] for Google Cloud KMS.
type Client struct {
	kms.PrefixClient
	api KeyManagementClient
}

var _ kms.Client = (*Client)(nil)

// NewClient connects to Cloud KMS with the given client options, e.g.
// [option.WithCredentialsFile].
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	api, err := gcpkmsapi.NewKeyManagementClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcpkms.NewClient: %w", err)
	}
	return NewClientWithAPI(api), nil
}

// NewClientWithAPI wraps an existing API client; meant for tests.
func NewClientWithAPI(api KeyManagementClient) *Client {
	return &Client{PrefixClient: kms.PrefixClient{Prefix: prefix}, api: api}
}

// AEAD returns a remote AEAD for keyURI.
func (c *Client) AEAD(keyURI string) (clavis.AEADWithContext, error) {
	if err := c.ValidateKeyURI(keyURI); err != nil {
		return nil, err
	}
	return &gcpAEAD{
		keyName: strings.TrimPrefix(keyURI, prefix),
		api:     c.api,
	}, nil
}

type gcpAEAD struct {
	keyName string
	api     KeyManagementClient
}

var _ clavis.AEADWithContext = (*gcpAEAD)(nil)

func (a *gcpAEAD) EncryptWithContext(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	resp, err := a.api.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:                        a.keyName,
		Plaintext:                   plaintext,
		AdditionalAuthenticatedData: associatedData,
	})
	if err != nil {
		return nil, fmt.Errorf("gcpkms: encrypt with %q: %w", a.keyName, err)
	}
	return resp.GetCiphertext(), nil
}

func (a *gcpAEAD) DecryptWithContext(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	resp, err := a.api.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:                        a.keyName,
		Ciphertext:                  ciphertext,
		AdditionalAuthenticatedData: associatedData,
	})
	if err != nil {
		return nil, fmt.Errorf("gcpkms: decrypt with %q: %w", a.keyName, err)
	}
	return resp.GetPlaintext(), nil
}
