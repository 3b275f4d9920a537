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

package rsassapss

import (
	"crypto"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/clavis-crypto/clavis-go/clavis"
)

type verifier struct {
	publicKey  *rsa.PublicKey
	hash       crypto.Hash
	saltLength int
}

var _ clavis.Verifier = (*verifier)(nil)

// NewVerifier returns a [clavis.Verifier] for publicKey.
func NewVerifier(publicKey *PublicKey) (clavis.Verifier, error) {
	params := publicKey.parameters
	hash, err := hashFunc(params.SigHashType())
	if err != nil {
		return nil, fmt.Errorf("rsassapss.NewVerifier: %v: %w", err, clavis.ErrInvalidParameters)
	}
	return &verifier{
		publicKey: &rsa.PublicKey{
			N: new(big.Int).SetBytes(publicKey.Modulus()),
			E: params.PublicExponent(),
		},
		hash:       hash,
		saltLength: params.SaltLengthBytes(),
	}, nil
}

func (v *verifier) Verify(signature, data []byte) error {
	h := v.hash.New()
	h.Write(data)
	return rsa.VerifyPSS(v.publicKey, v.hash, h.Sum(nil), signature, &rsa.PSSOptions{
		SaltLength: v.saltLength,
		Hash:       v.hash,
	})
}
