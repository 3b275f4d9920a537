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

package awskms_test

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	awskmsapi "github.com/aws/aws-sdk-go-v2/service/kms"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clavis-crypto/clavis-go/integration/awskms"
)

const (
	testKeyARN = "arn:aws:kms:us-east-1:123456789012:key/0987dead-beef-4321-aaaa-000011112222"
	testKeyURI = "aws-kms://" + testKeyARN
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Encrypt(ctx context.Context, params *awskmsapi.EncryptInput, optFns ...func(*awskmsapi.Options)) (*awskmsapi.EncryptOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*awskmsapi.EncryptOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) Decrypt(ctx context.Context, params *awskmsapi.DecryptInput, optFns ...func(*awskmsapi.Options)) (*awskmsapi.DecryptOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*awskmsapi.DecryptOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSupported(t *testing.T) {
	client := awskms.NewClientWithAPI(&mockAPI{})
	require.True(t, client.Supported(testKeyURI))
	require.False(t, client.Supported("gcp-kms://projects/p/locations/l/keyRings/r/cryptoKeys/k"))
}

func TestAEADRejectsForeignKeyURI(t *testing.T) {
	client := awskms.NewClientWithAPI(&mockAPI{})
	_, err := client.AEAD("gcp-kms://projects/p/locations/l/keyRings/r/cryptoKeys/k")
	require.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	api := &mockAPI{}
	plaintext := []byte("some plaintext")
	ciphertext := []byte("opaque ciphertext")
	associatedData := []byte("context")
	wantContext := map[string]string{"associatedData": hex.EncodeToString(associatedData)}
	api.On("Encrypt", mock.Anything, mock.MatchedBy(func(in *awskmsapi.EncryptInput) bool {
		return in.KeyId != nil && *in.KeyId == testKeyARN &&
			string(in.Plaintext) == string(plaintext) &&
			len(in.EncryptionContext) == 1 &&
			in.EncryptionContext["associatedData"] == wantContext["associatedData"]
	})).Return(&awskmsapi.EncryptOutput{CiphertextBlob: ciphertext}, nil)
	api.On("Decrypt", mock.Anything, mock.MatchedBy(func(in *awskmsapi.DecryptInput) bool {
		return in.KeyId != nil && *in.KeyId == testKeyARN &&
			string(in.CiphertextBlob) == string(ciphertext) &&
			in.EncryptionContext["associatedData"] == wantContext["associatedData"]
	})).Return(&awskmsapi.DecryptOutput{Plaintext: plaintext}, nil)

	client := awskms.NewClientWithAPI(api)
	a, err := client.AEAD(testKeyURI)
	require.NoError(t, err)
	ctx := context.Background()
	gotCiphertext, err := a.EncryptWithContext(ctx, plaintext, associatedData)
	require.NoError(t, err)
	require.Equal(t, ciphertext, gotCiphertext)
	gotPlaintext, err := a.DecryptWithContext(ctx, gotCiphertext, associatedData)
	require.NoError(t, err)
	require.Equal(t, plaintext, gotPlaintext)
	api.AssertExpectations(t)
}

func TestNoEncryptionContextWithoutAssociatedData(t *testing.T) {
	api := &mockAPI{}
	api.On("Encrypt", mock.Anything, mock.MatchedBy(func(in *awskmsapi.EncryptInput) bool {
		return in.EncryptionContext == nil
	})).Return(&awskmsapi.EncryptOutput{CiphertextBlob: []byte("ciphertext")}, nil)

	client := awskms.NewClientWithAPI(api)
	a, err := client.AEAD(testKeyURI)
	require.NoError(t, err)
	_, err = a.EncryptWithContext(context.Background(), []byte("plaintext"), nil)
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestDecryptPropagatesAPIErrors(t *testing.T) {
	api := &mockAPI{}
	apiErr := errors.New("access denied")
	api.On("Decrypt", mock.Anything, mock.Anything).Return(nil, apiErr)

	client := awskms.NewClientWithAPI(api)
	a, err := client.AEAD(testKeyURI)
	require.NoError(t, err)
	_, err = a.DecryptWithContext(context.Background(), []byte("ciphertext"), nil)
	require.ErrorIs(t, err, apiErr)
}
