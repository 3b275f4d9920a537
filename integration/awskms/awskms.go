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

// Package awskms provides a [kms.Client] backed by AWS KMS.
//
// Key URIs have the form "aws-kms://arn:aws:kms:<region>:...".
package awskms

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awskmsapi "github.com/aws/aws-sdk-go-v2/service/kms"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/kms"
)

const prefix = "aws-kms://"

// API is the subset of the AWS KMS API the client uses. It is satisfied
// by [awskmsapi.Client] and by test doubles.
type API interface {
	Encrypt(ctx context.Context, params *awskmsapi.EncryptInput, optFns ...func(*awskmsapi.Options)) (*awskmsapi.EncryptOutput, error)
	Decrypt(ctx context.Context, params *awskmsapi.DecryptInput, optFns ...func(*awskmsapi.Options)) (*awskmsapi.DecryptOutput, error)
}

// Client is a [kms.Client] for AWS KMS.
type Client struct {
	kms.PrefixClient
	api API
}

var _ kms.Client = (*Client)(nil)

// NewClient loads the default AWS configuration and connects to KMS.
func NewClient(ctx context.Context, optFns ...func(*config.LoadOptions) error) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("awskms.NewClient: %w", err)
	}
	return NewClientWithAPI(awskmsapi.NewFromConfig(cfg)), nil
}

// NewClientWithAPI wraps an existing API client; meant for tests.
func NewClientWithAPI(api API) *Client {
	return &Client{PrefixClient: kms.PrefixClient{Prefix: prefix}, api: api}
}

// AEAD returns a remote AEAD for keyURI.
func (c *Client) AEAD(keyURI string) (clavis.AEADWithContext, error) {
	if err := c.ValidateKeyURI(keyURI); err != nil {
		return nil, err
	}
	return &awsAEAD{
		keyARN: strings.TrimPrefix(keyURI, prefix),
		api:    c.api,
	}, nil
}

type awsAEAD struct {
	keyARN string
	api    API
}

var _ clavis.AEADWithContext = (*awsAEAD)(nil)

// AWS KMS has no direct associated-data input; nonempty associated data
// is carried in the encryption context, which KMS authenticates.
func encryptionContext(associatedData []byte) map[string]string {
	if len(associatedData) == 0 {
		return nil
	}
	return map[string]string{"associatedData": hex.EncodeToString(associatedData)}
}

func (a *awsAEAD) EncryptWithContext(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	out, err := a.api.Encrypt(ctx, &awskmsapi.EncryptInput{
		KeyId:             aws.String(a.keyARN),
		Plaintext:         plaintext,
		EncryptionContext: encryptionContext(associatedData),
	})
	if err != nil {
		return nil, fmt.Errorf("awskms: encrypt with %q: %w", a.keyARN, err)
	}
	return out.CiphertextBlob, nil
}

func (a *awsAEAD) DecryptWithContext(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	out, err := a.api.Decrypt(ctx, &awskmsapi.DecryptInput{
		KeyId:             aws.String(a.keyARN),
		CiphertextBlob:    ciphertext,
		EncryptionContext: encryptionContext(associatedData),
	})
	if err != nil {
		return nil, fmt.Errorf("awskms: decrypt with %q: %w", a.keyARN, err)
	}
	return out.Plaintext, nil
}
