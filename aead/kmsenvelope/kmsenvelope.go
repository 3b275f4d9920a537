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

// Package kmsenvelope provides envelope encryption with a KMS-held key
// encryption key.
//
// Each encryption generates a fresh data encryption key (DEK), encrypts
// it with the remote key, and encrypts the plaintext with the DEK. The
// ciphertext layout is
//
//	[4-byte big-endian length of encrypted DEK][encrypted DEK][DEK ciphertext]
package kmsenvelope

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/clavis-crypto/clavis-go/aead/aesgcm"
	"github.com/clavis-crypto/clavis-go/aead/xchacha20poly1305"
	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/key"
	"github.com/clavis-crypto/clavis-go/secretdata"
)

const (
	lenDEK = 4
	// maxLengthEncryptedDEK caps the length prefix to keep a corrupted
	// ciphertext from causing a huge allocation.
	maxLengthEncryptedDEK = 4096
)

// DEKParameters is the closed set of parameter types accepted for the
// data encryption key.
type DEKParameters interface {
	key.Parameters
}

type envelopeAEAD struct {
	remote    clavis.AEADWithContext
	dekParams key.Parameters
}

var _ clavis.AEADWithContext = (*envelopeAEAD)(nil)

// New returns an envelope AEAD using remote to wrap per-message data
// encryption keys generated from dekParams. Only raw AES-GCM and raw
// XChaCha20-Poly1305 DEK parameters are supported.
func New(remote clavis.AEADWithContext, dekParams DEKParameters) (clavis.AEADWithContext, error) {
	if remote == nil {
		return nil, fmt.Errorf("kmsenvelope.New: nil remote AEAD: %w", clavis.ErrInvalidParameters)
	}
	if dekParams.HasIDRequirement() {
		return nil, fmt.Errorf("kmsenvelope.New: DEK parameters must be raw: %w", clavis.ErrInvalidParameters)
	}
	switch dekParams.(type) {
	case *aesgcm.Parameters, *xchacha20poly1305.Parameters:
	default:
		return nil, fmt.Errorf("kmsenvelope.New: unsupported DEK parameters type %T: %w", dekParams, clavis.ErrInvalidParameters)
	}
	return &envelopeAEAD{remote: remote, dekParams: dekParams}, nil
}

func (a *envelopeAEAD) newDEK() (secretdata.Bytes, clavis.AEAD, error) {
	switch p := a.dekParams.(type) {
	case *aesgcm.Parameters:
		keyBytes, err := secretdata.NewBytesFromRand(uint32(p.KeySizeBytes()))
		if err != nil {
			return secretdata.Bytes{}, nil, err
		}
		k, err := aesgcm.NewKey(keyBytes, 0, p)
		if err != nil {
			return secretdata.Bytes{}, nil, err
		}
		dek, err := aesgcm.NewAEAD(k)
		return keyBytes, dek, err
	case *xchacha20poly1305.Parameters:
		keyBytes, err := secretdata.NewBytesFromRand(32)
		if err != nil {
			return secretdata.Bytes{}, nil, err
		}
		k, err := xchacha20poly1305.NewKey(keyBytes, 0, p)
		if err != nil {
			return secretdata.Bytes{}, nil, err
		}
		dek, err := xchacha20poly1305.NewAEAD(k)
		return keyBytes, dek, err
	default:
		return secretdata.Bytes{}, nil, fmt.Errorf("kmsenvelope: unsupported DEK parameters type %T", a.dekParams)
	}
}

func (a *envelopeAEAD) dekAEADFromBytes(keyBytes []byte) (clavis.AEAD, error) {
	token := insecuresecretaccess.Token{}
	switch p := a.dekParams.(type) {
	case *aesgcm.Parameters:
		k, err := aesgcm.NewKey(secretdata.NewBytesFromData(keyBytes, token), 0, p)
		if err != nil {
			return nil, err
		}
		return aesgcm.NewAEAD(k)
	case *xchacha20poly1305.Parameters:
		k, err := xchacha20poly1305.NewKey(secretdata.NewBytesFromData(keyBytes, token), 0, p)
		if err != nil {
			return nil, err
		}
		return xchacha20poly1305.NewAEAD(k)
	default:
		return nil, fmt.Errorf("kmsenvelope: unsupported DEK parameters type %T", a.dekParams)
	}
}

func (a *envelopeAEAD) EncryptWithContext(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	keyBytes, dek, err := a.newDEK()
	if err != nil {
		return nil, err
	}
	encryptedDEK, err := a.remote.EncryptWithContext(ctx, keyBytes.Data(insecuresecretaccess.Token{}), nil)
	if err != nil {
		return nil, fmt.Errorf("kmsenvelope: wrapping DEK: %w", err)
	}
	if len(encryptedDEK) > maxLengthEncryptedDEK {
		return nil, fmt.Errorf("kmsenvelope: encrypted DEK too large (%d bytes)", len(encryptedDEK))
	}
	payload, err := dek.Encrypt(plaintext, associatedData)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, lenDEK+len(encryptedDEK)+len(payload))
	out = binary.BigEndian.AppendUint32(out, uint32(len(encryptedDEK)))
	out = append(out, encryptedDEK...)
	return append(out, payload...), nil
}

func (a *envelopeAEAD) DecryptWithContext(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < lenDEK {
		return nil, fmt.Errorf("kmsenvelope: ciphertext too short")
	}
	edLen := binary.BigEndian.Uint32(ciphertext[:lenDEK])
	if edLen == 0 || edLen > maxLengthEncryptedDEK || int(edLen) > len(ciphertext)-lenDEK {
		return nil, fmt.Errorf("kmsenvelope: invalid encrypted DEK length %d", edLen)
	}
	encryptedDEK := ciphertext[lenDEK : lenDEK+edLen]
	payload := ciphertext[lenDEK+edLen:]
	keyBytes, err := a.remote.DecryptWithContext(ctx, encryptedDEK, nil)
	if err != nil {
		return nil, fmt.Errorf("kmsenvelope: unwrapping DEK: %w", err)
	}
	dek, err := a.dekAEADFromBytes(keyBytes)
	if err != nil {
		return nil, err
	}
	return dek.Decrypt(payload, associatedData)
}
