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

package aesgcm

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/internal/random"
)

const nonceSize = 12

type aead struct {
	cipher cipher.AEAD
}

var _ clavis.AEAD = (*aead)(nil)

// NewAEAD returns a [clavis.AEAD] for k. The nonce is drawn at random per
// encryption and prepended to the ciphertext.
func NewAEAD(k *Key) (clavis.AEAD, error) {
	block, err := aes.NewCipher(k.KeyBytes().Data(insecuresecretaccess.Token{}))
	if err != nil {
		return nil, fmt.Errorf("aesgcm.NewAEAD: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aesgcm.NewAEAD: %w", err)
	}
	return &aead{cipher: gcm}, nil
}

func (a *aead) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := random.GetRandomBytes(nonceSize)
	return a.cipher.Seal(nonce, nonce, plaintext, associatedData), nil
}

func (a *aead) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("aesgcm: ciphertext shorter than the nonce")
	}
	return a.cipher.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], associatedData)
}
