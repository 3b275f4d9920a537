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

package xchacha20poly1305

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/clavis-crypto/clavis-go/clavis"
	"github.com/clavis-crypto/clavis-go/insecuresecretaccess"
	"github.com/clavis-crypto/clavis-go/internal/random"
)

type aead struct {
	cipher cipher.AEAD
}

var _ clavis.AEAD = (*aead)(nil)

// NewAEAD returns a [clavis.AEAD] for k. The 24-byte nonce is drawn at
// random per encryption and prepended to the ciphertext.
func NewAEAD(k *Key) (clavis.AEAD, error) {
	c, err := chacha20poly1305.NewX(k.KeyBytes().Data(insecuresecretaccess.Token{}))
	if err != nil {
		return nil, fmt.Errorf("xchacha20poly1305.NewAEAD: %w", err)
	}
	return &aead{cipher: c}, nil
}

func (a *aead) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := random.GetRandomBytes(chacha20poly1305.NonceSizeX)
	return a.cipher.Seal(nonce, nonce, plaintext, associatedData), nil
}

func (a *aead) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("xchacha20poly1305: ciphertext shorter than the nonce")
	}
	nonce := ciphertext[:chacha20poly1305.NonceSizeX]
	return a.cipher.Open(nil, nonce, ciphertext[chacha20poly1305.NonceSizeX:], associatedData)
}
