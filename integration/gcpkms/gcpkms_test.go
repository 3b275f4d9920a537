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

package gcpkms_test

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clavis-crypto/clavis-go/integration/gcpkms"
)

const (
	testKeyURI  = "gcp-kms://projects/p/locations/l/keyRings/r/cryptoKeys/k"
	testKeyName = "projects/p/locations/l/keyRings/r/cryptoKeys/k"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Encrypt(ctx context.Context, req *kmspb.EncryptRequest, opts ...gax.CallOption) (*kmspb.EncryptResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*kmspb.EncryptResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAPI) Decrypt(ctx context.Context, req *kmspb.DecryptRequest, opts ...gax.CallOption) (*kmspb.DecryptResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*kmspb.DecryptResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSupported(t *testing.T) {
	client := gcpkms.NewClientWithAPI(&mockAPI{})
	require.True(t, client.Supported(testKeyURI))
	require.False(t, client.Supported("aws-kms://arn:aws:kms:us-east-1:key"))
}

func TestAEADRejectsForeignKeyURI(t *testing.T) {
	client := gcpkms.NewClientWithAPI(&mockAPI{})
	_, err := client.AEAD("aws-kms://arn:aws:kms:us-east-1:key")
	require.Error(t, err)
}

func TestEncryptDecrypt(t *testing.T) {
	api := &mockAPI{}
	plaintext := []byte("some plaintext")
	ciphertext := []byte("opaque ciphertext")
	associatedData := []byte("context")
	api.On("Encrypt", mock.Anything, mock.MatchedBy(func(req *kmspb.EncryptRequest) bool {
		return req.GetName() == testKeyName &&
			string(req.GetPlaintext()) == string(plaintext) &&
			string(req.GetAdditionalAuthenticatedData()) == string(associatedData)
	})).Return(&kmspb.EncryptResponse{Ciphertext: ciphertext}, nil)
	api.On("Decrypt", mock.Anything, mock.MatchedBy(func(req *kmspb.DecryptRequest) bool {
		return req.GetName() == testKeyName &&
			string(req.GetCiphertext()) == string(ciphertext) &&
			string(req.GetAdditionalAuthenticatedData()) == string(associatedData)
	})).Return(&kmspb.DecryptResponse{Plaintext: plaintext}, nil)

	client := gcpkms.NewClientWithAPI(api)
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

func TestEncryptPropagatesAPIErrors(t *testing.T) {
	api := &mockAPI{}
	apiErr := errors.New("permission denied")
	api.On("Encrypt", mock.Anything, mock.Anything).Return(nil, apiErr)

	client := gcpkms.NewClientWithAPI(api)
	a, err := client.AEAD(testKeyURI)
	require.NoError(t, err)
	_, err = a.EncryptWithContext(context.Background(), []byte("plaintext"), nil)
	require.ErrorIs(t, err, apiErr)
}
